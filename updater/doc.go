// Package updater sequences the Arctic Fox firmware update workflow and
// serializes device operations.
//
// # Update workflow
//
// Updater runs the full update as one sequence with no mid-operation
// cancel; each step is a point of no return once started:
//
//  1. Read the current dataflash.
//  2. Check the firmware image against the device's product identifier.
//  3. If the device boots its application region and has firmware, flip
//     the boot flag, write the dataflash back, restart, and wait for the
//     device to re-enumerate within a bounded deadline.
//  4. Stream the firmware image, reporting percentage progress.
//
// A device already booting from the loader region, or one that has never
// been flashed (firmware version zero), goes straight to the upload: the
// loader region is what receives the image.
//
//	upd := updater.New(conn,
//	    updater.WithStateCallback(onState),
//	    updater.WithProgressCallback(onProgress),
//	)
//	err := upd.Run(img)
//
// All waits in the sequence are named, configurable durations so tests
// can substitute fast values.
//
// # Serializing operations
//
// Session guarantees at most one device operation at a time. While an
// operation runs, presence monitoring is suspended so the monitor and
// the operation cannot race for the link, and a busy callback lets a
// front end disable its controls. Monitoring and the busy state are
// restored on every exit path, panics included:
//
//	session := updater.NewSession(conn)
//	err := session.Do("update", func() error { return upd.Run(img) }, onDone)
//	if errors.Is(err, updater.ErrBusy) { ... }
package updater
