package updater

import (
	"time"

	"github.com/PS4Diamonds/NFirmwareEditor/internal/logging"
)

// StateCallback is invoked on every workflow state transition.
type StateCallback func(State)

// ProgressCallback receives cumulative upload progress, 0-100.
type ProgressCallback func(percent int)

// Config holds the updater configuration. All waits are named here so
// tests can substitute fast values.
type Config struct {
	// Logger receives workflow diagnostics (optional)
	Logger logging.Logger

	// OnState is called on every state transition (optional)
	OnState StateCallback

	// OnProgress is called with upload percentage (optional)
	OnProgress ProgressCallback

	// RestartSettleDelay is the fixed wait after issuing a restart,
	// long enough for the device's internal reset to finish before
	// enumeration is polled
	RestartSettleDelay time.Duration

	// ReconnectPollInterval is how often presence is polled after the
	// settle delay
	ReconnectPollInterval time.Duration

	// ReconnectDeadline bounds the whole reconnect wait; the update
	// fails when it elapses without the device coming back
	ReconnectDeadline time.Duration

	// CompleteSettleDelay is the wait after the upload, giving the
	// device time to finish its internal flash commit
	CompleteSettleDelay time.Duration

	// SkipValidation bypasses the product-identifier compatibility
	// check. Deliberate operator override only.
	SkipValidation bool
}

func defaultConfig() Config {
	return Config{
		Logger:                logging.Nop(),
		RestartSettleDelay:    500 * time.Millisecond,
		ReconnectPollInterval: 100 * time.Millisecond,
		ReconnectDeadline:     5 * time.Second,
		CompleteSettleDelay:   300 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Updater.
type Option func(*Config)

// WithLogger sets a logger for workflow diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithStateCallback registers a state-transition callback.
func WithStateCallback(cb StateCallback) Option {
	return func(c *Config) {
		c.OnState = cb
	}
}

// WithProgressCallback registers an upload-progress callback.
func WithProgressCallback(cb ProgressCallback) Option {
	return func(c *Config) {
		c.OnProgress = cb
	}
}

// WithRestartSettleDelay overrides the post-restart settle delay.
func WithRestartSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.RestartSettleDelay = d
		}
	}
}

// WithReconnectPolicy overrides the reconnect poll interval and overall
// deadline.
func WithReconnectPolicy(interval, deadline time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.ReconnectPollInterval = interval
		}
		if deadline > 0 {
			c.ReconnectDeadline = deadline
		}
	}
}

// WithCompleteSettleDelay overrides the post-upload settle delay.
func WithCompleteSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.CompleteSettleDelay = d
		}
	}
}

// WithCompatibilityOverride disables the product-identifier check.
// This flashes whatever image it is given; it exists for operators who
// know exactly what they are doing and accept a possible brick.
func WithCompatibilityOverride() Option {
	return func(c *Config) {
		c.SkipValidation = true
	}
}
