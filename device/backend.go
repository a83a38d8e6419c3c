package device

import (
	"fmt"
	"time"

	"github.com/sstallion/go-hid"

	"github.com/PS4Diamonds/NFirmwareEditor/protocol"
)

// ReportDevice is one open HID link: report-sized writes and bounded
// reads. *hid.Device satisfies it directly.
type ReportDevice interface {
	Write(p []byte) (int, error)
	ReadWithTimeout(p []byte, timeout time.Duration) (int, error)
	Close() error
}

// Backend locates the physical device. Connector opens one link per
// operation and polls Present for the presence monitor.
type Backend interface {
	// Present reports whether a supported device is currently enumerated
	Present() bool

	// Open opens a link to the first supported device
	Open() (ReportDevice, error)
}

// HIDBackend returns the production backend over the HIDAPI library,
// matching devices by the Arctic Fox vendor and product IDs.
func HIDBackend() Backend {
	_ = hid.Init()
	return hidBackend{}
}

type hidBackend struct{}

func (hidBackend) Present() bool {
	found := false
	_ = hid.Enumerate(protocol.VendorID, protocol.ProductID, func(info *hid.DeviceInfo) error {
		found = true
		return nil
	})
	return found
}

func (hidBackend) Open() (ReportDevice, error) {
	dev, err := hid.OpenFirst(protocol.VendorID, protocol.ProductID)
	if err != nil {
		return nil, fmt.Errorf("open HID device %04X:%04X: %w",
			protocol.VendorID, protocol.ProductID, err)
	}
	return dev, nil
}
