package updater

import (
	"fmt"
	"time"

	"github.com/PS4Diamonds/NFirmwareEditor/dataflash"
	"github.com/PS4Diamonds/NFirmwareEditor/device"
	"github.com/PS4Diamonds/NFirmwareEditor/firmware"
)

// Transport is the slice of the device connector the updater needs.
// *device.Connector satisfies it; tests provide stubs.
type Transport interface {
	ReadDataflash(progress device.ProgressFunc) ([]byte, error)
	WriteDataflash(block []byte, progress device.ProgressFunc) error
	RestartDevice() error
	WriteFirmware(data []byte, progress device.ProgressFunc) error
	IsConnected() bool
}

// Updater runs the firmware update workflow against one transport.
type Updater struct {
	transport Transport
	cfg       Config
}

// New creates an Updater with the given transport and options.
func New(transport Transport, opts ...Option) *Updater {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Updater{transport: transport, cfg: cfg}
}

// Run performs the complete update sequence:
//
//  1. Read the dataflash and take the device identity from it.
//  2. Gate on image/device compatibility (unless overridden).
//  3. Switch the boot source to the loader region when needed, with a
//     restart and a bounded reconnect wait.
//  4. Upload the firmware image with progress reporting.
//
// Errors from any step terminate the workflow in StateFailed; nothing
// retries internally. The caller decides whether a retry is warranted.
func (u *Updater) Run(img *firmware.Image) error {
	if img == nil || len(img.Data) == 0 {
		return u.fail(fmt.Errorf("no firmware image loaded"))
	}

	start := time.Now()

	u.setState(StateReadingDataflash)
	block, err := u.transport.ReadDataflash(nil)
	if err != nil {
		return u.fail(fmt.Errorf("read dataflash: %w", err))
	}

	df, err := dataflash.Decode(block)
	if err != nil {
		return u.fail(err)
	}

	id := df.Identity()
	u.cfg.Logger.Info("device identified",
		"product", id.ProductID,
		"hardware", id.HardwareVersion,
		"firmware", id.FirmwareVersion,
		"boot", id.BootSource.String(),
	)

	// The gate runs before anything irreversible: a mismatched image
	// must never reach the device.
	if !u.cfg.SkipValidation {
		if !img.Validate(id.ProductID) {
			return u.fail(&CompatibilityError{ProductID: id.ProductID})
		}
	} else {
		u.cfg.Logger.Warn("compatibility check bypassed by operator override",
			"product", id.ProductID)
	}

	u.setState(StateEvaluatingBootMode)
	if df.HasFirmware() && !df.LoadFromLdrom() {
		if err := u.switchToLoader(df); err != nil {
			return err
		}
	} else {
		// Never-flashed devices and devices already in loader mode go
		// straight to upload; the loader region receives the image.
		u.cfg.Logger.Debug("boot-mode switch skipped",
			"has_firmware", df.HasFirmware(),
			"load_from_ldrom", df.LoadFromLdrom(),
		)
	}

	u.setState(StateUploading)
	if err := u.transport.WriteFirmware(img.Data, u.reportProgress); err != nil {
		return u.fail(fmt.Errorf("upload firmware: %w", err))
	}

	// Let the device finish its internal flash commit before handing
	// control back.
	time.Sleep(u.cfg.CompleteSettleDelay)

	u.setState(StateSucceeded)
	u.cfg.Logger.Info("firmware update complete",
		"bytes", len(img.Data),
		"elapsed", time.Since(start).String(),
	)
	return nil
}

// switchToLoader flips the boot flag, commits it, restarts the device,
// and waits for it to come back. Once the dataflash write lands, the
// flag is committed on the device even if the wait later fails.
func (u *Updater) switchToLoader(df *dataflash.Dataflash) error {
	u.setState(StateSwitchingBootMode)
	df.SetLoadFromLdrom(true)
	if err := u.transport.WriteDataflash(df.Encode(), nil); err != nil {
		return u.fail(fmt.Errorf("switch boot mode: %w", err))
	}

	u.setState(StateRestartAndWait)
	if err := u.transport.RestartDevice(); err != nil {
		return u.fail(fmt.Errorf("restart device: %w", err))
	}

	time.Sleep(u.cfg.RestartSettleDelay)

	if !u.waitReconnect() {
		return u.fail(ErrReconnectTimeout)
	}

	u.cfg.Logger.Debug("device reconnected in loader mode")
	return nil
}

// waitReconnect polls presence until the device re-enumerates or the
// deadline elapses.
func (u *Updater) waitReconnect() bool {
	deadline := time.Now().Add(u.cfg.ReconnectDeadline)
	for {
		if u.transport.IsConnected() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(u.cfg.ReconnectPollInterval)
	}
}

func (u *Updater) setState(s State) {
	u.cfg.Logger.Debug("update state", "state", s.String())
	if u.cfg.OnState != nil {
		u.cfg.OnState(s)
	}
}

func (u *Updater) reportProgress(percent int) {
	if u.cfg.OnProgress != nil {
		u.cfg.OnProgress(percent)
	}
}

func (u *Updater) fail(err error) error {
	u.cfg.Logger.Error("update failed", "err", err)
	u.setState(StateFailed)
	return err
}
