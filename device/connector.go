package device

import (
	"fmt"
	"sync"

	"github.com/PS4Diamonds/NFirmwareEditor/protocol"
)

// ProgressFunc receives cumulative transfer progress, 0-100. Callbacks
// must return quickly; they run on the transfer path.
type ProgressFunc func(percent int)

// Connector owns the device link. Each operation is one open-transact-
// close exchange; the connector never retries, and at most one exchange
// runs at a time.
type Connector struct {
	backend Backend
	cfg     Config

	// opMu serializes link transactions
	opMu sync.Mutex

	mon  monitor
	subs subscribers
}

// New creates a Connector over the given backend.
//
// Example:
//
//	conn := device.New(device.HIDBackend(),
//	    device.WithReadTimeout(2*time.Second),
//	)
func New(backend Backend, opts ...Option) *Connector {
	if backend == nil {
		panic("backend cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Connector{backend: backend, cfg: cfg}
}

// IsConnected is a snapshot of current device presence.
func (c *Connector) IsConnected() bool {
	return c.backend.Present()
}

// ReadDataflash reads the full dataflash block. Returns exactly
// protocol.DataflashLength bytes, or a TimeoutError when the device
// stops answering mid-transfer.
func (c *Connector) ReadDataflash(progress ProgressFunc) ([]byte, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	dev, err := c.backend.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = dev.Close() }()

	if _, err := dev.Write(protocol.ReadDataflashCmd()); err != nil {
		c.cfg.Logger.Error("dataflash read request failed", "err", err)
		return nil, &TimeoutError{Op: "read dataflash"}
	}

	env := make([]byte, 0, protocol.DataflashEnvelopeLength)
	buf := make([]byte, protocol.ReportSize)
	for len(env) < protocol.DataflashEnvelopeLength {
		n, err := dev.ReadWithTimeout(buf, c.cfg.ReadTimeout)
		if err != nil {
			return nil, fmt.Errorf("read dataflash: %w", err)
		}
		if n == 0 {
			// hidapi signals an expired timeout as a zero-length read
			return nil, &TimeoutError{Op: "read dataflash"}
		}
		if need := protocol.DataflashEnvelopeLength - len(env); n > need {
			n = need
		}
		env = append(env, buf[:n]...)
		report(progress, len(env)*100/protocol.DataflashEnvelopeLength)
	}

	payload, err := protocol.UnwrapDataflash(env)
	if err != nil {
		return nil, fmt.Errorf("read dataflash: %w", err)
	}

	c.cfg.Logger.Debug("dataflash read", "bytes", len(payload))
	return payload, nil
}

// WriteDataflash writes a full dataflash block. The block must be
// exactly protocol.DataflashLength bytes; a mismatched length is a
// format error detected before any report is sent.
func (c *Connector) WriteDataflash(block []byte, progress ProgressFunc) error {
	env, err := protocol.WrapDataflash(block)
	if err != nil {
		return err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	dev, err := c.backend.Open()
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	if _, err := dev.Write(protocol.WriteDataflashCmd()); err != nil {
		c.cfg.Logger.Error("dataflash write request failed", "err", err)
		return &TimeoutError{Op: "write dataflash"}
	}

	if err := c.writeChunks(dev, env, "write dataflash", progress); err != nil {
		return err
	}

	c.cfg.Logger.Debug("dataflash written", "bytes", len(block))
	return nil
}

// ResetDataflash asks the device to restore factory dataflash defaults.
func (c *Connector) ResetDataflash() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	dev, err := c.backend.Open()
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	if _, err := dev.Write(protocol.ResetDataflashCmd()); err != nil {
		c.cfg.Logger.Error("dataflash reset failed", "err", err)
		return &TimeoutError{Op: "reset dataflash"}
	}

	c.cfg.Logger.Info("dataflash reset to defaults")
	return nil
}

// RestartDevice issues a soft restart. The device drops off the bus
// immediately, so a write error mid-command is expected and ignored;
// waiting for the device to come back is the caller's concern.
func (c *Connector) RestartDevice() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	dev, err := c.backend.Open()
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	if _, err := dev.Write(protocol.RestartCmd()); err != nil {
		c.cfg.Logger.Debug("restart command write interrupted", "err", err)
	}

	c.cfg.Logger.Info("device restart issued")
	return nil
}

// WriteFirmware streams a firmware image to the device in report-sized
// chunks, reporting cumulative percentage progress after each chunk.
func (c *Connector) WriteFirmware(data []byte, progress ProgressFunc) error {
	if len(data) == 0 {
		return fmt.Errorf("write firmware: image is empty")
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	dev, err := c.backend.Open()
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	if _, err := dev.Write(protocol.WriteFirmwareCmd(uint32(len(data)))); err != nil {
		c.cfg.Logger.Error("firmware write request failed", "err", err)
		return &TimeoutError{Op: "write firmware"}
	}

	if err := c.writeChunks(dev, data, "write firmware", progress); err != nil {
		return err
	}

	c.cfg.Logger.Info("firmware written", "bytes", len(data))
	return nil
}

// writeChunks sends data in fixed-size reports, zero-padding the tail.
// A chunk the device never drains surfaces as a write error from the
// HID layer and is reported as a TimeoutError.
func (c *Connector) writeChunks(dev ReportDevice, data []byte, op string, progress ProgressFunc) error {
	buf := make([]byte, protocol.ReportSize)
	total := len(data)

	for sent := 0; sent < total; {
		n := copy(buf, data[sent:])
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
		if _, err := dev.Write(buf); err != nil {
			c.cfg.Logger.Error("chunk unacknowledged", "op", op, "sent", sent, "err", err)
			return &TimeoutError{Op: op}
		}
		sent += n
		report(progress, sent*100/total)
	}
	return nil
}

func report(progress ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}
