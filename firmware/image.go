package firmware

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Image is a loaded firmware payload, ready to hand to the transport.
// The payload is never modified after loading.
type Image struct {
	// Data is the raw flashable payload
	Data []byte

	// FromContainer records whether the source file was an obfuscated
	// container (informational; the payload is already decoded)
	FromContainer bool
}

// Load reads a firmware image from the given file path, transparently
// decoding the container format when present.
//
// Example:
//
//	img, err := firmware.Load("ArcticFox_E052.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read firmware file: %w", err)
	}
	return FromBytes(data)
}

// LoadReader reads a firmware image from any io.Reader. Useful for
// testing and for non-file sources.
func LoadReader(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read firmware: %w", err)
	}
	return FromBytes(data)
}

// FromBytes interprets already-loaded bytes as a firmware image,
// decoding the container format when present.
func FromBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("firmware image is empty")
	}

	if IsContainer(data) {
		payload, err := DecodeContainer(data)
		if err != nil {
			return nil, fmt.Errorf("decode firmware container: %w", err)
		}
		return &Image{Data: payload, FromContainer: true}, nil
	}

	return &Image{Data: data}, nil
}

// Validate reports whether the image embeds the given product
// identifier as a contiguous byte sequence. An empty identifier never
// validates; a device that reports no identity cannot be matched.
func (img *Image) Validate(productID string) bool {
	if productID == "" {
		return false
	}
	return bytes.Contains(img.Data, []byte(productID))
}
