package protocol

import "encoding/binary"

// BuildCommand constructs a command block for the given code and
// arguments. The block is fixed-size and always well-formed, so unlike
// payload framing there is nothing to validate here.
//
// Block structure:
//
//	[CODE][0x0E][ARG1(4, LE)][ARG2(4, LE)][SIGNATURE(4)]
func BuildCommand(code byte, arg1, arg2 uint32) []byte {
	cmd := make([]byte, CommandSize)
	cmd[0] = code
	cmd[1] = commandLen
	binary.LittleEndian.PutUint32(cmd[2:6], arg1)
	binary.LittleEndian.PutUint32(cmd[6:10], arg2)
	copy(cmd[10:14], Signature[:])
	return cmd
}

// ReadDataflashCmd requests the full dataflash envelope.
func ReadDataflashCmd() []byte {
	return BuildCommand(CmdReadDataflash, 0, DataflashEnvelopeLength)
}

// WriteDataflashCmd announces a dataflash envelope write.
func WriteDataflashCmd() []byte {
	return BuildCommand(CmdWriteDataflash, 0, DataflashEnvelopeLength)
}

// ResetDataflashCmd requests a factory reset of the dataflash.
func ResetDataflashCmd() []byte {
	return BuildCommand(CmdResetDataflash, 0, 0)
}

// RestartCmd soft-restarts the device. The device drops off the bus;
// it sends no acknowledgment.
func RestartCmd() []byte {
	return BuildCommand(CmdRestart, 0, 0)
}

// WriteFirmwareCmd announces a firmware upload of length bytes starting
// at the loader region's base.
func WriteFirmwareCmd(length uint32) []byte {
	return BuildCommand(CmdWriteFirmware, 0, length)
}
