package firmware

import (
	"bytes"
	"fmt"
)

// containerMagic marks an obfuscated firmware container.
var containerMagic = []byte{'A', 'F', 'E', 'N', 'C', 0x00}

// IsContainer reports whether data is an obfuscated container rather
// than a raw flashable payload.
func IsContainer(data []byte) bool {
	return bytes.HasPrefix(data, containerMagic)
}

// xorKey derives the rolling key byte for position i in a payload of
// the given length. The transform is its own inverse.
func xorKey(i, length int) byte {
	return byte(i + length)
}

// DecodeContainer strips the container magic and de-obfuscates the
// payload. Fails if the magic is missing or the container is empty.
func DecodeContainer(data []byte) ([]byte, error) {
	if !IsContainer(data) {
		return nil, fmt.Errorf("not a firmware container: missing %q magic", containerMagic[:5])
	}
	body := data[len(containerMagic):]
	if len(body) == 0 {
		return nil, fmt.Errorf("firmware container has no payload")
	}

	out := make([]byte, len(body))
	for i, b := range body {
		out[i] = b ^ xorKey(i, len(body))
	}
	return out, nil
}

// EncodeContainer wraps a raw payload in the obfuscated container
// format. DecodeContainer(EncodeContainer(p)) == p.
func EncodeContainer(payload []byte) []byte {
	out := make([]byte, 0, len(containerMagic)+len(payload))
	out = append(out, containerMagic...)
	for i, b := range payload {
		out = append(out, b^xorKey(i, len(payload)))
	}
	return out
}
