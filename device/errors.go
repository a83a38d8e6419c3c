package device

import (
	"errors"
	"fmt"
)

// TimeoutError indicates the device did not respond within the
// operation's bound. Recoverable: the caller may retry the operation as
// a fresh user action.
type TimeoutError struct {
	// Op names the operation that timed out
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: device did not respond in time", e.Op)
}

// IsTimeout reports whether err is, or wraps, a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
