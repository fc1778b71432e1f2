// Package session owns the BLE link to one thermostat.
//
// A Session walks the connection lifecycle
//
//	Disconnected -> Connecting -> Connected -> Pairing -> Authenticating -> Ready
//
// on demand: Connect starts it explicitly, EnsureReady starts it lazily
// before an operation, and any link loss or transport error drops the
// session back to Disconnected. Authentication is the factory-reset-id
// handshake: the id is read from the device on first pairing, persisted
// through the credential store, and written back to the device on every
// reconnect. The device never confirms acceptance; a write that does not
// raise a transport error is success.
//
// One session serves one device address. The connect lock makes Connect
// and EnsureReady safe for concurrent callers; every GATT operation goes
// through Exec (or the Read/Write helpers built on it), which serializes
// on a per-session operation lock since the link processes one request
// at a time.
package session
