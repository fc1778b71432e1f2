// Package discovery finds Ensto thermostats in BLE advertisements.
//
// The devices advertise a manufacturer-specific payload under company
// identifier 0x2806. The payload is an ASCII string of semicolon-joined
// fields; the second field is "1" while the device is in pairing mode
// (reset button held until the LED blinks). Pairing mode is evaluated
// against advertisement data only, never against a connected GATT
// characteristic.
package discovery
