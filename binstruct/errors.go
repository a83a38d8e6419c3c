package binstruct

import "fmt"

// SizeError indicates that a buffer does not match the exact size a layout
// declares. Decoding never truncates or pads; a mismatched buffer is
// rejected before any field is read.
type SizeError struct {
	Expected int
	Got      int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("buffer size mismatch: got %d bytes, layout declares %d", e.Got, e.Expected)
}
