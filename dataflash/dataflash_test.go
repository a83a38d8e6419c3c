package dataflash

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PS4Diamonds/NFirmwareEditor/binstruct"
)

func sampleBlock() []byte {
	b := make([]byte, BlockSize)
	copy(b[offProductID:], "E052")
	binary.LittleEndian.PutUint32(b[offHardwareVersion:], 110)
	binary.LittleEndian.PutUint32(b[offFirmwareVersion:], 161)
	binary.LittleEndian.PutUint32(b[offFirmwareBuild:], 20240203)
	return b
}

func TestDecodeRejectsWrongSize(t *testing.T) {
	for _, n := range []int{0, BlockSize - 1, BlockSize + 1, BlockSize + 4} {
		_, err := Decode(make([]byte, n))
		require.Error(t, err, "size %d", n)

		var sizeErr *binstruct.SizeError
		require.ErrorAs(t, err, &sizeErr)
	}
}

func TestIdentitySnapshot(t *testing.T) {
	df, err := Decode(sampleBlock())
	require.NoError(t, err)

	id := df.Identity()
	assert.Equal(t, "E052", id.ProductID)
	assert.Equal(t, uint32(110), id.HardwareVersion)
	assert.Equal(t, uint32(161), id.FirmwareVersion)
	assert.Equal(t, uint32(20240203), id.FirmwareBuild)
	assert.Equal(t, BootApplication, id.BootSource)

	assert.Equal(t, "1.61", df.FirmwareVersionString())
	assert.Equal(t, "1.10", df.HardwareVersionString())
	assert.True(t, df.HasFirmware())
}

func TestUnflashedSentinel(t *testing.T) {
	b := sampleBlock()
	binary.LittleEndian.PutUint32(b[offFirmwareVersion:], 0)

	df, err := Decode(b)
	require.NoError(t, err)
	assert.False(t, df.HasFirmware())
	assert.Equal(t, "0.00", df.FirmwareVersionString())
}

func TestBootSourceFlip(t *testing.T) {
	df, err := Decode(sampleBlock())
	require.NoError(t, err)

	assert.False(t, df.LoadFromLdrom())
	df.SetLoadFromLdrom(true)
	assert.Equal(t, BootLoader, df.BootSource())

	// The flip must change exactly one bit of the image.
	out := df.Encode()
	want := sampleBlock()
	want[offBootFlags] |= maskLoadFromLdrom
	assert.Equal(t, want, out)
}

func TestRoundTripPreservesUnmodeledRegions(t *testing.T) {
	b := make([]byte, BlockSize)
	for i := range b {
		b[i] = byte(i % 251)
	}

	df, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, b, df.Encode())
}

func TestDisplayLineSharedByte(t *testing.T) {
	df, err := Decode(sampleBlock())
	require.NoError(t, err)

	line := df.Line(0)
	line.SetContent(LinePuffCount)
	line.SetShowFireTime(true)

	assert.Equal(t, LinePuffCount, line.Content())
	assert.True(t, line.ShowFireTime())

	line.SetContent(LineBattery)
	assert.True(t, line.ShowFireTime(), "content write must not clear the flag")

	line.SetShowFireTime(false)
	assert.Equal(t, LineBattery, line.Content(), "flag write must not clear the content")
}

func TestProfileAccessors(t *testing.T) {
	df, err := Decode(sampleBlock())
	require.NoError(t, err)

	p := df.Profile(2)
	require.NoError(t, p.SetName("COIL A"))
	p.SetPower(405)
	p.SetMaterial(MaterialStainless)
	p.SetTempControl(true)

	assert.Equal(t, "COIL A", p.Name())
	assert.Equal(t, "40.5", p.PowerString())
	assert.Equal(t, MaterialStainless, p.Material())
	assert.True(t, p.TempControl())

	// Neighboring profiles must be untouched.
	assert.Equal(t, "", df.Profile(1).Name())
	assert.Equal(t, 0.0, df.Profile(3).Power())

	assert.Panics(t, func() { df.Profile(ProfileCount) })
}
