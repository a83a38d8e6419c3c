package updater

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMonitor counts start/stop calls and tracks the running state.
type stubMonitor struct {
	mu      sync.Mutex
	running bool
	starts  int
	stops   int
}

func (m *stubMonitor) StartMonitoring() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	m.starts++
}

func (m *stubMonitor) StopMonitoring() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.stops++
}

func (m *stubMonitor) state() (running bool, starts, stops int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running, m.starts, m.stops
}

func waitDone(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(time.Second):
		t.Fatal("operation did not complete")
		return nil
	}
}

func TestSessionRunsOperation(t *testing.T) {
	mon := &stubMonitor{running: true}
	session := NewSession(mon)

	done := make(chan error, 1)
	err := session.Do("op", func() error { return nil }, func(e error) { done <- e })
	require.NoError(t, err)
	require.NoError(t, waitDone(t, done))

	running, starts, stops := mon.state()
	assert.True(t, running, "monitoring restored after completion")
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, stops)
	assert.False(t, session.Busy())
}

func TestSessionRejectsConcurrentOperations(t *testing.T) {
	mon := &stubMonitor{}
	session := NewSession(mon)

	release := make(chan struct{})
	done := make(chan error, 1)
	require.NoError(t, session.Do("slow", func() error {
		<-release
		return nil
	}, func(e error) { done <- e }))

	assert.True(t, session.Busy())
	err := session.Do("second", func() error { return nil }, nil)
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, waitDone(t, done))

	// Once the first operation retires its ticket, a new one may run.
	require.NoError(t, session.Do("third", func() error { return nil }, func(e error) { done <- e }))
	require.NoError(t, waitDone(t, done))
}

func TestSessionSuspendsMonitoringDuringOperation(t *testing.T) {
	mon := &stubMonitor{running: true}
	session := NewSession(mon)

	observed := make(chan bool, 1)
	done := make(chan error, 1)
	require.NoError(t, session.Do("op", func() error {
		running, _, _ := mon.state()
		observed <- running
		return nil
	}, func(e error) { done <- e }))

	require.NoError(t, waitDone(t, done))
	assert.False(t, <-observed, "monitor must be stopped while the operation runs")

	running, _, _ := mon.state()
	assert.True(t, running)
}

func TestSessionDeliversFailure(t *testing.T) {
	mon := &stubMonitor{}
	session := NewSession(mon)

	opErr := errors.New("device said no")
	done := make(chan error, 1)
	require.NoError(t, session.Do("op", func() error { return opErr }, func(e error) { done <- e }))

	assert.ErrorIs(t, waitDone(t, done), opErr)

	running, _, _ := mon.state()
	assert.True(t, running, "monitoring restored after failure")
	assert.False(t, session.Busy())
}

func TestSessionRecoversFromPanic(t *testing.T) {
	mon := &stubMonitor{}
	session := NewSession(mon)

	done := make(chan error, 1)
	require.NoError(t, session.Do("op", func() error {
		panic("unexpected")
	}, func(e error) { done <- e }))

	err := waitDone(t, done)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected")

	running, _, _ := mon.state()
	assert.True(t, running, "monitoring restored even after a panic")
	assert.False(t, session.Busy(), "ticket retired even after a panic")
}

func TestSessionBusyCallbackBracketsOperation(t *testing.T) {
	mon := &stubMonitor{}

	var transitions []bool
	var mu sync.Mutex
	session := NewSession(mon, WithBusyCallback(func(b bool) {
		mu.Lock()
		defer mu.Unlock()
		transitions = append(transitions, b)
	}))

	done := make(chan error, 1)
	require.NoError(t, session.Do("op", func() error { return nil }, func(e error) { done <- e }))
	require.NoError(t, waitDone(t, done))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, transitions)
}

func TestSessionCustomDeliveryPreservesOrder(t *testing.T) {
	mon := &stubMonitor{}

	// A single-goroutine dispatcher standing in for a GUI main loop.
	queue := make(chan func(), 16)
	var drained atomic.Bool
	go func() {
		for f := range queue {
			f()
		}
		drained.Store(true)
	}()

	var order []string
	var mu sync.Mutex
	record := func(tag string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, tag)
	}

	done := make(chan error, 1)
	session := NewSession(mon,
		WithDelivery(func(f func()) { queue <- f }),
		WithBusyCallback(func(b bool) {
			if b {
				record("busy")
			} else {
				record("idle")
			}
		}),
	)

	require.NoError(t, session.Do("op", func() error {
		queue <- func() { record("work") }
		return nil
	}, func(e error) { done <- e }))
	require.NoError(t, waitDone(t, done))
	close(queue)

	require.Eventually(t, drained.Load, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"busy", "work", "idle"}, order)
}

func TestGuardTicketIdempotentRelease(t *testing.T) {
	var g Guard

	ticket, ok := g.TryAcquire()
	require.True(t, ok)

	_, ok = g.TryAcquire()
	assert.False(t, ok)

	ticket.Release()
	ticket.Release()

	_, ok = g.TryAcquire()
	assert.True(t, ok)
}
