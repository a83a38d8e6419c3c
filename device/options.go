package device

import (
	"time"

	"github.com/PS4Diamonds/NFirmwareEditor/internal/logging"
)

// Config holds the connector configuration.
type Config struct {
	// Logger receives connector diagnostics (optional)
	Logger logging.Logger

	// ReadTimeout bounds each report read; the whole transfer fails
	// with a TimeoutError when one report stays unanswered this long
	ReadTimeout time.Duration

	// PollInterval is the presence monitor's polling period
	PollInterval time.Duration
}

func defaultConfig() Config {
	return Config{
		Logger:       logging.Nop(),
		ReadTimeout:  time.Second,
		PollInterval: 500 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Connector.
type Option func(*Config)

// WithLogger sets a logger for connector diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithReadTimeout bounds each report read.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithPollInterval sets the presence monitor's polling period.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.PollInterval = interval
		}
	}
}
