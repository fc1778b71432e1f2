package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileState is the on-disk layout of the credential file.
type fileState struct {
	// Version is the file format version.
	Version int `json:"version"`

	// SavedAt is when the file was last written.
	SavedAt time.Time `json:"saved_at"`

	// Devices maps link addresses to their credentials.
	Devices map[string]Credential `json:"devices,omitempty"`
}

// FileStore persists credentials to a JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a credential store backed by the file at path.
// The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the credential for address, or nil, nil if the file or
// the entry does not exist.
func (s *FileStore) Load(address string) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	cred, ok := state.Devices[address]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

// Save stores the credential for address.
func (s *FileStore) Save(address string, cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return err
	}
	if state == nil {
		state = &fileState{}
	}
	if state.Devices == nil {
		state.Devices = make(map[string]Credential)
	}

	c := *cred
	if c.PairedAt.IsZero() {
		c.PairedAt = time.Now()
	}
	state.Devices[address] = c

	return s.write(state)
}

// Remove deletes the credential for address. Removing an absent
// credential is a no-op.
func (s *FileStore) Remove(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return err
	}
	if state == nil || state.Devices == nil {
		return nil
	}
	if _, ok := state.Devices[address]; !ok {
		return nil
	}
	delete(state.Devices, address)

	return s.write(state)
}

// read loads the state file. Returns nil, nil if it doesn't exist.
func (s *FileStore) read() (*fileState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// write persists the state file, creating parent directories as needed.
func (s *FileStore) write(state *fileState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StoreVersion
	state.SavedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}
