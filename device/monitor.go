package device

import (
	"sync"
	"time"
)

// monitor holds the presence-polling goroutine's lifecycle state.
type monitor struct {
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
	last bool
}

// subscribers is the set of presence-change callbacks.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(bool)
}

// Subscribe registers a callback for presence transitions. The callback
// fires on actual state changes only, never redundantly. The returned
// function removes the subscription.
func (c *Connector) Subscribe(fn func(connected bool)) (cancel func()) {
	c.subs.mu.Lock()
	defer c.subs.mu.Unlock()

	if c.subs.fns == nil {
		c.subs.fns = make(map[int]func(bool))
	}
	id := c.subs.next
	c.subs.next++
	c.subs.fns[id] = fn

	return func() {
		c.subs.mu.Lock()
		defer c.subs.mu.Unlock()
		delete(c.subs.fns, id)
	}
}

// StartMonitoring launches the presence poller. Starting an already
// running monitor is a no-op. The current state is taken as the
// baseline; no event fires until it changes.
func (c *Connector) StartMonitoring() {
	c.mon.mu.Lock()
	defer c.mon.mu.Unlock()

	if c.mon.stop != nil {
		return
	}

	c.mon.last = c.backend.Present()
	c.mon.stop = make(chan struct{})
	c.mon.done = make(chan struct{})
	go c.monitorLoop(c.mon.stop, c.mon.done)

	c.cfg.Logger.Debug("presence monitoring started", "interval", c.cfg.PollInterval)
}

// StopMonitoring stops the poller and waits for it to exit, so the
// caller holds exclusive use of the link once it returns.
func (c *Connector) StopMonitoring() {
	c.mon.mu.Lock()
	stop, done := c.mon.stop, c.mon.done
	c.mon.stop, c.mon.done = nil, nil
	c.mon.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done

	c.cfg.Logger.Debug("presence monitoring stopped")
}

func (c *Connector) monitorLoop(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		present := c.backend.Present()
		c.mon.mu.Lock()
		changed := present != c.mon.last
		c.mon.last = present
		c.mon.mu.Unlock()

		if changed {
			c.cfg.Logger.Info("device presence changed", "connected", present)
			c.notify(present)
		}
	}
}

func (c *Connector) notify(connected bool) {
	c.subs.mu.Lock()
	fns := make([]func(bool), 0, len(c.subs.fns))
	for _, fn := range c.subs.fns {
		fns = append(fns, fn)
	}
	c.subs.mu.Unlock()

	for _, fn := range fns {
		fn(connected)
	}
}
