package firmware

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() []byte {
	payload := make([]byte, 1024)
	for i := range payload {
		payload[i] = byte(i * 31)
	}
	copy(payload[256:], "E052")
	return payload
}

func TestContainerRoundTrip(t *testing.T) {
	payload := samplePayload()

	enc := EncodeContainer(payload)
	require.True(t, IsContainer(enc))
	assert.False(t, bytes.Contains(enc, []byte("E052")), "obfuscation should hide the marker")

	dec, err := DecodeContainer(enc)
	require.NoError(t, err)
	assert.Equal(t, payload, dec)
}

func TestDecodeContainerErrors(t *testing.T) {
	_, err := DecodeContainer([]byte("not a container"))
	require.Error(t, err)

	_, err = DecodeContainer(containerMagic)
	require.Error(t, err)
}

func TestLoadRawPassthrough(t *testing.T) {
	payload := samplePayload()
	path := filepath.Join(t.TempDir(), "fw.bin")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, payload, img.Data)
	assert.False(t, img.FromContainer)
}

func TestLoadDecodesContainer(t *testing.T) {
	payload := samplePayload()
	path := filepath.Join(t.TempDir(), "fw.enc")
	require.NoError(t, os.WriteFile(path, EncodeContainer(payload), 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, payload, img.Data)
	assert.True(t, img.FromContainer)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	_, err := FromBytes(nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	img := &Image{Data: []byte("xxABC123yy")}

	assert.True(t, img.Validate("ABC123"))
	assert.True(t, img.Validate("x"))
	assert.False(t, img.Validate("ABD"))
	assert.False(t, img.Validate("123y_"))
	assert.False(t, img.Validate(""))
}

func TestValidateMarkerStraddle(t *testing.T) {
	// The marker must be contiguous; split halves do not validate.
	img := &Image{Data: []byte("ABCzz123")}
	assert.False(t, img.Validate("ABC123"))
}
