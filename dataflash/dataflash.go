package dataflash

import (
	"fmt"

	"github.com/PS4Diamonds/NFirmwareEditor/binstruct"
)

// BootSource identifies which program memory region the device boots.
type BootSource int

const (
	// BootApplication runs the normal device firmware
	BootApplication BootSource = iota

	// BootLoader runs the loader region, which receives firmware images
	BootLoader
)

func (s BootSource) String() string {
	if s == BootLoader {
		return "loader"
	}
	return "application"
}

// Material is the coil material selected for a profile.
type Material uint8

const (
	MaterialVariWatt Material = iota
	MaterialNickel
	MaterialTitanium
	MaterialStainless
	MaterialTCR
)

// LineContent selects what a display line shows. The values are the
// device firmware's own enumeration.
type LineContent uint8

const (
	LineNone LineContent = iota
	LineOutputVolts
	LineOutputAmps
	LineResistance
	LinePuffCount
	LinePuffTime
	LineBattery
	LineTemperature
)

// Dataflash is a typed view over one dataflash image. Mutating accessors
// change only the bits they model; the rest of the image is preserved
// exactly as read.
type Dataflash struct {
	rec *binstruct.Record
}

// Decode interprets a raw dataflash block. The buffer must be exactly
// BlockSize bytes; anything else fails with a binstruct.SizeError.
func Decode(b []byte) (*Dataflash, error) {
	rec, err := layout.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode dataflash: %w", err)
	}
	return &Dataflash{rec: rec}, nil
}

// Encode returns the full dataflash image, always exactly BlockSize bytes.
func (d *Dataflash) Encode() []byte {
	return d.rec.Encode()
}

// ProductID returns the device's product identifier, e.g. "E052".
func (d *Dataflash) ProductID() string {
	return d.rec.String("ProductID")
}

// HardwareVersion returns the stored hardware version, scaled by 100
// (161 means hardware 1.61).
func (d *Dataflash) HardwareVersion() uint32 {
	return d.rec.Uint("HardwareVersion")
}

// HardwareVersionString renders the hardware version for display.
func (d *Dataflash) HardwareVersionString() string {
	return d.rec.FormatFixed("HardwareVersion")
}

// FirmwareVersion returns the stored firmware version, scaled by 100.
// Zero means the device has never been flashed.
func (d *Dataflash) FirmwareVersion() uint32 {
	return d.rec.Uint("FirmwareVersion")
}

// FirmwareVersionString renders the firmware version for display.
func (d *Dataflash) FirmwareVersionString() string {
	return d.rec.FormatFixed("FirmwareVersion")
}

// FirmwareBuild returns the firmware build counter.
func (d *Dataflash) FirmwareBuild() uint32 {
	return d.rec.Uint("FirmwareBuild")
}

// HasFirmware reports whether the device has ever been flashed.
func (d *Dataflash) HasFirmware() bool {
	return d.FirmwareVersion() != 0
}

// LoadFromLdrom reports whether the device boots the loader region.
func (d *Dataflash) LoadFromLdrom() bool {
	return d.rec.Bool("LoadFromLdrom")
}

// SetLoadFromLdrom selects the boot region for the next restart.
func (d *Dataflash) SetLoadFromLdrom(v bool) {
	d.rec.SetBool("LoadFromLdrom", v)
}

// BootSource returns the boot region as a BootSource value.
func (d *Dataflash) BootSource() BootSource {
	if d.LoadFromLdrom() {
		return BootLoader
	}
	return BootApplication
}

// Brightness returns the display brightness (0-255).
func (d *Dataflash) Brightness() uint8 {
	return uint8(d.rec.Uint("Brightness"))
}

// SetBrightness sets the display brightness.
func (d *Dataflash) SetBrightness(v uint8) {
	d.rec.SetUint("Brightness", uint32(v))
}

// PuffCount returns the lifetime puff counter.
func (d *Dataflash) PuffCount() uint32 {
	return d.rec.Uint("PuffCount")
}

// Identity is a read-only snapshot of the connected device, produced by
// a dataflash read. A fresh read always supersedes it.
type Identity struct {
	ProductID       string
	HardwareVersion uint32
	FirmwareVersion uint32
	FirmwareBuild   uint32
	BootSource      BootSource
}

// Identity captures the device identity snapshot from this image.
func (d *Dataflash) Identity() Identity {
	return Identity{
		ProductID:       d.ProductID(),
		HardwareVersion: d.HardwareVersion(),
		FirmwareVersion: d.FirmwareVersion(),
		FirmwareBuild:   d.FirmwareBuild(),
		BootSource:      d.BootSource(),
	}
}

// Line is a typed view over one display line's shared content byte.
type Line struct {
	d *Dataflash
	n int
}

// Line returns display line n (0-3).
func (d *Dataflash) Line(n int) Line {
	if n < 0 || n >= 4 {
		panic(fmt.Sprintf("dataflash: line %d out of range", n))
	}
	return Line{d: d, n: n}
}

// Content returns what the line displays.
func (l Line) Content() LineContent {
	return LineContent(l.d.rec.Uint(lineField(l.n, "Content")))
}

// SetContent selects what the line displays, keeping the fire-time flag.
func (l Line) SetContent(c LineContent) {
	l.d.rec.SetUint(lineField(l.n, "Content"), uint32(c))
}

// ShowFireTime reports whether the line overlays the fire timer.
func (l Line) ShowFireTime() bool {
	return l.d.rec.Bool(lineField(l.n, "ShowFireTime"))
}

// SetShowFireTime toggles the fire-timer overlay, keeping the content.
func (l Line) SetShowFireTime(v bool) {
	l.d.rec.SetBool(lineField(l.n, "ShowFireTime"), v)
}

// Profile is a typed view over one vaping profile.
type Profile struct {
	d *Dataflash
	n int
}

// Profile returns profile n (0 through ProfileCount-1).
func (d *Dataflash) Profile(n int) Profile {
	if n < 0 || n >= ProfileCount {
		panic(fmt.Sprintf("dataflash: profile %d out of range", n))
	}
	return Profile{d: d, n: n}
}

// Name returns the profile's display name.
func (p Profile) Name() string {
	return p.d.rec.String(profileField(p.n, "Name"))
}

// SetName sets the profile's display name (at most 8 bytes).
func (p Profile) SetName(name string) error {
	return p.d.rec.SetString(profileField(p.n, "Name"), name)
}

// Power returns the configured power in watts.
func (p Profile) Power() float64 {
	return p.d.rec.Float(profileField(p.n, "Power"))
}

// PowerString renders the power for display, one decimal place.
func (p Profile) PowerString() string {
	return p.d.rec.FormatFixed(profileField(p.n, "Power"))
}

// SetPower sets the power in tenths of a watt (e.g. 405 for 40.5 W).
func (p Profile) SetPower(tenths uint16) {
	p.d.rec.SetUint(profileField(p.n, "Power"), uint32(tenths))
}

// Material returns the coil material.
func (p Profile) Material() Material {
	return Material(p.d.rec.Uint(profileField(p.n, "Material")))
}

// SetMaterial sets the coil material, keeping the temp-control flag.
func (p Profile) SetMaterial(m Material) {
	p.d.rec.SetUint(profileField(p.n, "Material"), uint32(m))
}

// TempControl reports whether the profile runs temperature-dominant.
func (p Profile) TempControl() bool {
	return p.d.rec.Bool(profileField(p.n, "TempControl"))
}

// SetTempControl toggles temperature control, keeping the material.
func (p Profile) SetTempControl(v bool) {
	p.d.rec.SetBool(profileField(p.n, "TempControl"), v)
}

// Temperature returns the target temperature in degrees.
func (p Profile) Temperature() uint16 {
	return uint16(p.d.rec.Uint(profileField(p.n, "Temperature")))
}

// Resistance returns the locked coil resistance in ohms.
func (p Profile) Resistance() float64 {
	return p.d.rec.Float(profileField(p.n, "Resistance"))
}
