package updater

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an operation is requested while another one
// is in flight. The request is rejected, not queued.
var ErrBusy = errors.New("another device operation is in progress")

// ErrReconnectTimeout means the device did not re-enumerate within the
// reconnect deadline after a restart. The update is aborted before any
// firmware bytes are sent.
var ErrReconnectTimeout = errors.New("device is not connected; update interrupted")

// CompatibilityError indicates the firmware image does not embed the
// connected device's product identifier. The update is aborted before
// any write; an explicit override may bypass the check.
type CompatibilityError struct {
	ProductID string
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("firmware image is not compatible with device %q", e.ProductID)
}
