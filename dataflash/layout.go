package dataflash

import (
	"fmt"

	"github.com/PS4Diamonds/NFirmwareEditor/binstruct"
	"github.com/PS4Diamonds/NFirmwareEditor/protocol"
)

// BlockSize is the exact dataflash image size in bytes.
const BlockSize = protocol.DataflashLength

// ProfileCount is the number of vaping profiles stored in the dataflash.
const ProfileCount = 8

// Field offsets for the Arctic Fox settings block. The layout is fixed
// for a given firmware build; these match the build this tool targets.
const (
	offProductID       = 0
	offHardwareVersion = 4
	offFirmwareVersion = 8
	offFirmwareBuild   = 12
	offBootFlags       = 16
	offDisplayLines    = 17 // 4 line-content bytes
	offBrightness      = 21
	offPuffCount       = 24
	offPuffTime        = 28
	offProfiles        = 32
	profileStride      = 16
)

// Per-profile offsets relative to the profile base.
const (
	profName        = 0 // 8 chars
	profPower       = 8 // uint16, watts x10
	profMode        = 10
	profTemperature = 11 // uint16, degrees
	profResistance  = 13 // uint16, ohms x1000
)

// Bit assignments within shared bytes.
const (
	// boot flags byte
	maskLoadFromLdrom = 0x01

	// display line byte: content enum in the low bits, fire-time flag on top
	maskLineContent  = 0x7F
	maskShowFireTime = 0x80

	// profile mode byte: coil material enum plus temperature-control flag
	maskMaterial    = 0x0F
	maskTempControl = 0x80
)

// layout is the shared schema; built once, validated at init.
var layout = binstruct.NewLayout(BlockSize)

func init() {
	layout.String("ProductID", offProductID, 4)
	layout.Uint32("HardwareVersion", offHardwareVersion).Scaled(100)
	layout.Uint32("FirmwareVersion", offFirmwareVersion).Scaled(100)
	layout.Uint32("FirmwareBuild", offFirmwareBuild)
	layout.Flag("LoadFromLdrom", offBootFlags, maskLoadFromLdrom)
	layout.Uint8("Brightness", offBrightness)
	layout.Uint32("PuffCount", offPuffCount)
	layout.Uint32("PuffTime", offPuffTime).Scaled(10)

	for i := 0; i < 4; i++ {
		layout.Enum(lineField(i, "Content"), offDisplayLines+i, maskLineContent)
		layout.Flag(lineField(i, "ShowFireTime"), offDisplayLines+i, maskShowFireTime)
	}

	for i := 0; i < ProfileCount; i++ {
		base := offProfiles + i*profileStride
		layout.String(profileField(i, "Name"), base+profName, 8)
		layout.Uint16(profileField(i, "Power"), base+profPower).Scaled(10)
		layout.Enum(profileField(i, "Material"), base+profMode, maskMaterial)
		layout.Flag(profileField(i, "TempControl"), base+profMode, maskTempControl)
		layout.Uint16(profileField(i, "Temperature"), base+profTemperature)
		layout.Uint16(profileField(i, "Resistance"), base+profResistance).Scaled(1000)
	}
}

func lineField(line int, name string) string {
	return fmt.Sprintf("Line%d.%s", line, name)
}

func profileField(profile int, name string) string {
	return fmt.Sprintf("Profile%d.%s", profile, name)
}
