package persistence

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory credential store. Used in tests and by
// hosts that bridge to their own storage facility.
type MemoryStore struct {
	mu    sync.Mutex
	creds map[string]Credential
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{creds: make(map[string]Credential)}
}

// Load returns the credential for address, or nil, nil if absent.
func (s *MemoryStore) Load(address string) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.creds[address]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

// Save stores the credential for address.
func (s *MemoryStore) Save(address string, cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *cred
	if c.PairedAt.IsZero() {
		c.PairedAt = time.Now()
	}
	s.creds[address] = c
	return nil
}

// Remove deletes the credential for address.
func (s *MemoryStore) Remove(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.creds, address)
	return nil
}
