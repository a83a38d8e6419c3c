package protocol

// USB identity of Arctic Fox devices (Nuvoton HID bootloader/application).
const (
	// VendorID is the Nuvoton USB vendor ID
	VendorID = 0x0416

	// ProductID is the HID product ID shared by all supported devices
	ProductID = 0x5020
)

// Report and command geometry.
const (
	// ReportSize is the fixed HID report payload size in bytes
	ReportSize = 64

	// CommandSize is the size of a command block:
	// CODE(1) + LEN(1) + ARG1(4) + ARG2(4) + SIGNATURE(4) = 14 used bytes,
	// padded to 18 on the wire
	CommandSize = 18

	// commandLen is the value of the command block's length byte
	commandLen = 14
)

// Signature marks a well-formed command block; the device firmware
// ignores commands without it.
var Signature = [4]byte{'H', 'I', 'D', 'C'}

// Command codes understood by the Arctic Fox HID endpoint.
const (
	// CmdReadDataflash requests the full dataflash envelope
	CmdReadDataflash = 0x35

	// CmdWriteDataflash sends a full dataflash envelope
	CmdWriteDataflash = 0x53

	// CmdResetDataflash restores factory dataflash defaults
	CmdResetDataflash = 0x7C

	// CmdRestart soft-restarts the device
	CmdRestart = 0xB4

	// CmdWriteFirmware begins a firmware upload of ARG2 bytes
	CmdWriteFirmware = 0xC3
)

// Dataflash geometry.
const (
	// DataflashLength is the exact dataflash block size in bytes
	DataflashLength = 2044

	// DataflashChecksumLength is the size of the envelope checksum prefix
	DataflashChecksumLength = 4

	// DataflashEnvelopeLength is checksum prefix plus block
	DataflashEnvelopeLength = DataflashChecksumLength + DataflashLength
)
