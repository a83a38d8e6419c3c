package protocol

import (
	"encoding/binary"

	"github.com/PS4Diamonds/NFirmwareEditor/binstruct"
)

// checksum is the byte sum of the payload, as computed by the device
// firmware.
func checksum(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return sum
}

// WrapDataflash prefixes a dataflash block with its checksum, producing
// the 2048-byte envelope the device expects. A payload of any other
// length is a format error; the block is never truncated or padded.
func WrapDataflash(payload []byte) ([]byte, error) {
	if len(payload) != DataflashLength {
		return nil, &binstruct.SizeError{Expected: DataflashLength, Got: len(payload)}
	}

	env := make([]byte, 0, DataflashEnvelopeLength)
	sum := make([]byte, DataflashChecksumLength)
	binary.LittleEndian.PutUint32(sum, checksum(payload))
	env = append(env, sum...)
	env = append(env, payload...)
	return env, nil
}

// UnwrapDataflash verifies a 2048-byte envelope and returns the
// 2044-byte dataflash block.
func UnwrapDataflash(envelope []byte) ([]byte, error) {
	if len(envelope) != DataflashEnvelopeLength {
		return nil, &binstruct.SizeError{Expected: DataflashEnvelopeLength, Got: len(envelope)}
	}

	payload := envelope[DataflashChecksumLength:]
	want := binary.LittleEndian.Uint32(envelope[:DataflashChecksumLength])
	if got := checksum(payload); got != want {
		return nil, &ChecksumError{Expected: want, Got: got}
	}

	out := make([]byte, DataflashLength)
	copy(out, payload)
	return out, nil
}
