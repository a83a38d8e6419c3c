// Package device implements the USB HID transport for Arctic Fox devices.
//
// # Connector
//
// Connector owns the physical link. It runs each operation as one
// open-transact-close exchange against a Backend, which is the HID stack
// in production and a stub in tests:
//
//	conn := device.New(device.HIDBackend(),
//	    device.WithLogger(logger),
//	    device.WithReadTimeout(time.Second),
//	)
//	block, err := conn.ReadDataflash(nil)
//
// Operations never retry internally; a device that does not answer
// within the configured bound fails with a TimeoutError and the caller
// decides what to do next.
//
// # Presence monitoring
//
// A background monitor polls the link at a fixed interval and notifies
// subscribers on actual state changes only:
//
//	stop := conn.Subscribe(func(connected bool) { ... })
//	defer stop()
//	conn.StartMonitoring()
//
// The monitor and an active operation must not race for the link:
// whoever sequences operations stops monitoring first and restarts it
// when done.
package device
