package session

// State represents the session lifecycle state.
type State uint8

const (
	// StateDisconnected indicates no active link.
	StateDisconnected State = iota

	// StateConnecting indicates device discovery and link establishment
	// are in progress.
	StateConnecting

	// StateConnected indicates the link is up but not yet paired.
	StateConnected

	// StatePairing indicates pairing/bonding is in progress.
	StatePairing

	// StateAuthenticating indicates the factory-reset-id exchange is in
	// progress.
	StateAuthenticating

	// StateReady indicates the session is authenticated and usable.
	StateReady
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StatePairing:
		return "PAIRING"
	case StateAuthenticating:
		return "AUTHENTICATING"
	case StateReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}
