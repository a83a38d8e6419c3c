// Package binstruct maps fixed-size binary memory blocks to typed records.
//
// Device memory such as a dataflash block is a flat byte buffer with a
// layout that is fixed for a given firmware build: integers at known
// offsets, fixed-width padded strings, fixed-point values stored scaled,
// and bytes shared between an enumeration and independent flag bits.
// This package describes such a layout declaratively and gives lossless
// access to it.
//
// # Declaring a layout
//
// A Layout is built once, at package init time, and validated as it is
// built. A field whose declared region falls outside the block size is a
// programming error and panics immediately:
//
//	var layout = binstruct.NewLayout(64)
//
//	func init() {
//	    layout.String("ProductID", 0, 4)
//	    layout.Uint32("FirmwareVersion", 8).Scaled(100)
//	    layout.Flag("LoadFromLdrom", 16, 0x01)
//	    layout.Enum("LineContent", 17, 0x7F)
//	    layout.Flag("ShowFireTime", 17, 0x80)
//	}
//
// Enum and Flag fields may share a backing byte; each reads and writes
// only its own masked bits.
//
// # Decoding and encoding
//
// Decode requires the buffer length to match the layout size exactly and
// fails with a SizeError otherwise. The record keeps the full raw buffer,
// so bits not covered by any field survive a decode/encode round trip
// untouched:
//
//	rec, err := layout.Decode(raw)
//	if err != nil { ... }
//	rec.SetBool("LoadFromLdrom", true)
//	out := rec.Encode() // differs from raw only in the one flag bit
//
// # Fixed-point fields
//
// A field declared Scaled(100) stores an integer one hundred times the
// displayed value; Record.Float and Record.FormatFixed apply the scale,
// so a stored 161 renders as "1.61".
package binstruct
