// Package dataflash models the Arctic Fox persistent configuration block.
//
// The dataflash is a 2044-byte memory image read from and written to the
// device as a whole; there are no partial writes. This package binds the
// parts of the image the tool interprets — device identity, boot source,
// display options, vaping profiles — to a binstruct layout and leaves
// everything else untouched, so a decode/encode round trip is always
// byte-identical.
//
//	df, err := dataflash.Decode(block)
//	if err != nil { ... }
//	fmt.Println(df.ProductID(), df.FirmwareVersionString())
//	df.SetLoadFromLdrom(true)
//	out := df.Encode() // full 2044-byte image, ready for the transport
package dataflash
