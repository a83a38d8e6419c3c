// Package firmware loads and validates Arctic Fox firmware images.
//
// # File formats
//
// A firmware file is either the raw flashable payload or an obfuscated
// container: the bytes "AFENC\x00" followed by the payload XORed with a
// rolling key derived from position and length. Load detects the
// container by its magic and decodes it transparently; raw files pass
// through unchanged.
//
//	img, err := firmware.Load("ArcticFox_E052.bin")
//	if err != nil { ... }
//
// # Compatibility
//
// Vendor images embed the target device's product identifier as plain
// ASCII. Validate checks that the connected device's identifier occurs
// as a contiguous byte sequence in the image:
//
//	if !img.Validate("E052") {
//	    // image was built for different hardware
//	}
//
// This is a heuristic guard against flashing the wrong variant, not a
// signature; callers that really mean it can bypass it with an explicit
// override at the orchestration layer.
package firmware
