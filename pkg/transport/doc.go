// Package transport defines the GATT boundary of the thermostat library
// and the split transfer protocol layered on top of it.
//
// The Adapter and Peripheral interfaces abstract the host BLE stack; a
// tinygo.org/x/bluetooth implementation is provided by NewBluetoothAdapter,
// and internal/testharness provides an in-memory fake for tests.
//
// # Split transfer
//
// Characteristics whose logical value exceeds one GATT operation travel as
// a sequence of frames. Each frame is one header byte followed by payload
// bytes. The header's low bits are a best-effort sequence counter and are
// not authoritative; bit 0x40 marks the final frame. SplitReader
// reassembles incoming frames and strips the device's trailing zero
// padding. SplitWriter always produces exactly two frames with a fixed
// settle delay between them, matching the device firmware's expectation.
// No multi-frame write beyond two frames has ever been observed; the
// sequence bits stay zero.
//
// # Errors
//
// Any link-level GATT failure is reported as a *TransportError. A
// TransportError invalidates the session's transport handle; the session
// must be reconnected before further use.
package transport
