// Package logging defines the logging seam used across the device and
// updater packages, and provides a zerolog-backed implementation.
//
// Core packages only ever see the Logger interface; where log lines end
// up is decided by whoever wires the tool together.
package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Logger accepts leveled messages with optional key-value pairs.
// Implementations must tolerate being called from a background worker.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning with optional key-value pairs
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// NewZerolog wraps a zerolog.Logger in the Logger interface.
func NewZerolog(l zerolog.Logger) Logger {
	return &zerologLogger{l: l}
}

type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, kv ...interface{}) { emit(z.l.Debug(), msg, kv) }
func (z *zerologLogger) Info(msg string, kv ...interface{})  { emit(z.l.Info(), msg, kv) }
func (z *zerologLogger) Warn(msg string, kv ...interface{})  { emit(z.l.Warn(), msg, kv) }
func (z *zerologLogger) Error(msg string, kv ...interface{}) { emit(z.l.Error(), msg, kv) }

func emit(ev *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		ev = ev.Interface(fmt.Sprint(kv[i]), kv[i+1])
	}
	if len(kv)%2 != 0 {
		ev = ev.Interface("arg", kv[len(kv)-1])
	}
	ev.Msg(msg)
}
