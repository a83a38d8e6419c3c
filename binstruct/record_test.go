package binstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() *Layout {
	l := NewLayout(32)
	l.String("ProductID", 0, 4)
	l.Uint32("HardwareVersion", 4).Scaled(100)
	l.Uint32("FirmwareVersion", 8).Scaled(100)
	l.Uint32("FirmwareBuild", 12)
	l.Flag("LoadFromLdrom", 16, 0x01)
	l.Enum("LineContent", 17, 0x7F)
	l.Flag("ShowFireTime", 17, 0x80)
	l.Uint16("PuffCount", 18)
	return l
}

func TestDecodeSizeMismatch(t *testing.T) {
	l := testLayout()

	for _, n := range []int{0, 1, 31, 33, 2044} {
		_, err := l.Decode(make([]byte, n))
		require.Error(t, err, "size %d", n)

		var sizeErr *SizeError
		require.ErrorAs(t, err, &sizeErr)
		assert.Equal(t, 32, sizeErr.Expected)
		assert.Equal(t, n, sizeErr.Got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	l := testLayout()

	// Fill every byte, including regions no field covers, to prove
	// unmodeled bits survive the round trip.
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i*7 + 3)
	}

	rec, err := l.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, rec.Encode())
}

func TestReservedBitsPreservedAcrossWrites(t *testing.T) {
	l := testLayout()

	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = 0xFF
	}
	rec, err := l.Decode(raw)
	require.NoError(t, err)

	rec.SetBool("LoadFromLdrom", false)
	out := rec.Encode()

	// Only bit 0 of byte 16 changed; bits 1-7 are not modeled and must
	// come back untouched.
	assert.Equal(t, byte(0xFE), out[16])
	for i, b := range out {
		if i == 16 {
			continue
		}
		assert.Equal(t, byte(0xFF), b, "byte %d", i)
	}
}

func TestStringField(t *testing.T) {
	l := testLayout()
	rec := l.New()

	require.NoError(t, rec.SetString("ProductID", "E052"))
	assert.Equal(t, "E052", rec.String("ProductID"))

	require.NoError(t, rec.SetString("ProductID", "E0"))
	assert.Equal(t, "E0", rec.String("ProductID"))
	assert.Equal(t, []byte{'E', '0', 0, 0}, rec.Encode()[0:4])

	err := rec.SetString("ProductID", "TOOLONG")
	require.Error(t, err)
}

func TestScaledDisplay(t *testing.T) {
	l := testLayout()
	rec := l.New()

	rec.SetUint("FirmwareVersion", 161)
	assert.Equal(t, "1.61", rec.FormatFixed("FirmwareVersion"))
	assert.InDelta(t, 1.61, rec.Float("FirmwareVersion"), 1e-9)

	rec.SetUint("HardwareVersion", 100)
	assert.Equal(t, "1.00", rec.FormatFixed("HardwareVersion"))

	rec.SetUint("FirmwareBuild", 42)
	assert.Equal(t, "42", rec.FormatFixed("FirmwareBuild"))
}

func TestEnumAndFlagShareByte(t *testing.T) {
	l := testLayout()
	rec := l.New()

	rec.SetUint("LineContent", 0x15)
	rec.SetBool("ShowFireTime", true)

	assert.Equal(t, uint32(0x15), rec.Uint("LineContent"))
	assert.True(t, rec.Bool("ShowFireTime"))
	assert.Equal(t, byte(0x95), rec.Encode()[17])

	// Rewriting the enum must not clear the flag bit, and vice versa.
	rec.SetUint("LineContent", 0x02)
	assert.True(t, rec.Bool("ShowFireTime"))

	rec.SetBool("ShowFireTime", false)
	assert.Equal(t, uint32(0x02), rec.Uint("LineContent"))
	assert.Equal(t, byte(0x02), rec.Encode()[17])
}

func TestLittleEndianIntegers(t *testing.T) {
	l := testLayout()
	rec := l.New()

	rec.SetUint("PuffCount", 0x1234)
	out := rec.Encode()
	assert.Equal(t, byte(0x34), out[18])
	assert.Equal(t, byte(0x12), out[19])

	rec.SetUint("FirmwareBuild", 0xA1B2C3D4)
	assert.Equal(t, uint32(0xA1B2C3D4), rec.Uint("FirmwareBuild"))
}
