package protocol

import "fmt"

// ChecksumError indicates that a dataflash envelope's checksum prefix
// does not match its payload. The read is discarded; the caller may
// retry the whole transaction.
type ChecksumError struct {
	Expected uint32
	Got      uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("dataflash checksum mismatch: envelope declares 0x%08X, payload sums to 0x%08X",
		e.Expected, e.Got)
}
