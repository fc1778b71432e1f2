package persistence

import (
	"time"
)

// StoreVersion is the current version of the credential file format.
const StoreVersion = 1

// Credential is what the controller must remember about one device.
type Credential struct {
	// FactoryResetID is the device's authentication id, read from the
	// device on first pairing. Immutable for the device's lifetime
	// unless the device is factory-reset.
	FactoryResetID uint32 `json:"factory_reset_id"`

	// PairedAt is when the credential was first obtained.
	PairedAt time.Time `json:"paired_at,omitempty"`
}

// CredentialStore persists device credentials keyed by link address.
// Implementations must be safe for concurrent access.
type CredentialStore interface {
	// Load returns the credential for a device address.
	// Returns nil, nil if no credential is stored.
	Load(address string) (*Credential, error)

	// Save stores the credential for a device address, replacing any
	// existing one.
	Save(address string, cred *Credential) error

	// Remove deletes the credential for a device address.
	// Removing an absent credential is not an error.
	Remove(address string) error
}

// Compile-time interface satisfaction checks.
var (
	_ CredentialStore = (*FileStore)(nil)
	_ CredentialStore = (*MemoryStore)(nil)
)
