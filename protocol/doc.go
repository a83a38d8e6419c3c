// Package protocol implements the Arctic Fox USB HID wire format.
//
// The device speaks a vendor-specific report protocol over USB HID.
// Every exchange starts with an 18-byte command block:
//
//	[CODE][0x0E][ARG1(4, LE)][ARG2(4, LE)]['H']['I']['D']['C']
//
// followed, for transfers, by the payload in 64-byte reports.
//
// # Dataflash envelope
//
// Dataflash travels as a 2048-byte envelope: a 4-byte little-endian
// checksum (the byte sum of the payload) followed by the 2044-byte
// block. WrapDataflash and UnwrapDataflash convert between the payload
// and its envelope, verifying size and checksum:
//
//	env, err := protocol.WrapDataflash(block)   // 2044 -> 2048
//	block, err := protocol.UnwrapDataflash(env) // 2048 -> 2044
//
// # Commands
//
// Command blocks are built with the Cmd helpers:
//
//	cmd := protocol.ReadDataflashCmd()
//	cmd := protocol.WriteFirmwareCmd(uint32(len(image)))
//
// The protocol has no response framing beyond the transferred payloads;
// acknowledgment is the device answering a read, and absence of an
// answer within the caller's deadline is a timeout.
package protocol
