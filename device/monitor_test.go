package device

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	mu     sync.Mutex
	events []bool
}

func (e *eventLog) record(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, v)
}

func (e *eventLog) snapshot() []bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]bool(nil), e.events...)
}

func TestMonitorFiresOnChangeOnly(t *testing.T) {
	backend := &stubBackend{dev: &stubDevice{}}
	conn := New(backend, WithPollInterval(2*time.Millisecond))

	var log eventLog
	cancel := conn.Subscribe(log.record)
	defer cancel()

	conn.StartMonitoring()
	defer conn.StopMonitoring()

	// Baseline is disconnected; staying disconnected fires nothing.
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, log.snapshot())

	backend.setPresent(true)
	require.Eventually(t, func() bool {
		ev := log.snapshot()
		return len(ev) == 1 && ev[0]
	}, time.Second, time.Millisecond)

	// Holding the state steady must not re-announce it.
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, log.snapshot(), 1)

	backend.setPresent(false)
	require.Eventually(t, func() bool {
		ev := log.snapshot()
		return len(ev) == 2 && !ev[1]
	}, time.Second, time.Millisecond)
}

func TestStopMonitoringHaltsEvents(t *testing.T) {
	backend := &stubBackend{dev: &stubDevice{}}
	conn := New(backend, WithPollInterval(2*time.Millisecond))

	var log eventLog
	cancel := conn.Subscribe(log.record)
	defer cancel()

	conn.StartMonitoring()
	conn.StopMonitoring()

	backend.setPresent(true)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, log.snapshot())
}

func TestStartMonitoringIsIdempotent(t *testing.T) {
	backend := &stubBackend{dev: &stubDevice{}}
	conn := New(backend, WithPollInterval(2*time.Millisecond))

	conn.StartMonitoring()
	conn.StartMonitoring()
	conn.StopMonitoring()
	conn.StopMonitoring()
}

func TestUnsubscribe(t *testing.T) {
	backend := &stubBackend{dev: &stubDevice{}}
	conn := New(backend, WithPollInterval(2*time.Millisecond))

	var log eventLog
	cancel := conn.Subscribe(log.record)
	cancel()

	conn.StartMonitoring()
	defer conn.StopMonitoring()

	backend.setPresent(true)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, log.snapshot())
}
