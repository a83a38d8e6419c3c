package updater

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/PS4Diamonds/NFirmwareEditor/internal/logging"
)

// Guard is a try-acquire mutual exclusion over the device. At most one
// ticket is outstanding at any time.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire returns a ticket when the guard is free. It never blocks.
func (g *Guard) TryAcquire() (*Ticket, bool) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, false
	}
	return &Ticket{guard: g}, true
}

// Ticket represents one in-flight device operation. Release is
// idempotent and retires the ticket.
type Ticket struct {
	guard *Guard
	once  sync.Once
}

// Release retires the ticket, freeing the guard.
func (t *Ticket) Release() {
	t.once.Do(func() {
		t.guard.busy.Store(false)
	})
}

// Monitor is the presence-monitoring slice of the connector the session
// suspends around operations.
type Monitor interface {
	StartMonitoring()
	StopMonitoring()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDelivery sets the function that marshals callbacks to the
// caller's foreground context (a GUI main loop, typically). The default
// invokes them synchronously on the worker, which still preserves
// production order.
func WithDelivery(deliver func(func())) SessionOption {
	return func(s *Session) {
		if deliver != nil {
			s.deliver = deliver
		}
	}
}

// WithBusyCallback sets a hook toggled around every operation, meant to
// disable and re-enable operation-triggering affordances.
func WithBusyCallback(onBusy func(bool)) SessionOption {
	return func(s *Session) {
		s.onBusy = onBusy
	}
}

// WithSessionLogger sets a logger for session diagnostics.
func WithSessionLogger(logger logging.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session serializes device operations: one at a time, presence
// monitoring suspended for the duration, busy state and monitoring
// restored on every exit path including panics.
type Session struct {
	guard   Guard
	monitor Monitor
	deliver func(func())
	onBusy  func(bool)
	logger  logging.Logger
}

// NewSession creates a Session owning the given monitor.
func NewSession(monitor Monitor, opts ...SessionOption) *Session {
	if monitor == nil {
		panic("monitor cannot be nil")
	}

	s := &Session{
		monitor: monitor,
		deliver: func(f func()) { f() },
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Busy reports whether an operation is in flight.
func (s *Session) Busy() bool {
	return s.guard.busy.Load()
}

// Do runs op on a background worker. It returns ErrBusy without side
// effects when another operation is in flight; otherwise it suspends
// monitoring, disables affordances, runs op, and restores everything
// before delivering done(err). A panicking op is converted into an
// error; restoration still happens.
func (s *Session) Do(name string, op func() error, done func(error)) error {
	ticket, ok := s.guard.TryAcquire()
	if !ok {
		return ErrBusy
	}

	s.monitor.StopMonitoring()
	s.logger.Debug("operation started", "op", name)

	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: unexpected failure: %v", name, r)
				s.logger.Error("operation panicked", "op", name, "panic", r)
			}

			s.monitor.StartMonitoring()
			ticket.Release()

			s.deliver(func() {
				if s.onBusy != nil {
					s.onBusy(false)
				}
				if done != nil {
					done(err)
				}
			})
			s.logger.Debug("operation finished", "op", name, "err", err)
		}()

		if s.onBusy != nil {
			s.deliver(func() { s.onBusy(true) })
		}
		err = op()
	}()

	return nil
}
