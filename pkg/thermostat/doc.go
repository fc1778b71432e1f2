// Package thermostat is the typed command and query surface over one
// Ensto thermostat. A Device wraps a session and exposes every
// characteristic as a validated read or write operation; callers never
// touch raw payloads.
//
// All operations connect lazily through the session: the first call
// after a link loss transparently reconnects. Inputs are validated
// before any I/O happens, so an out-of-range value never reaches the
// device.
package thermostat
