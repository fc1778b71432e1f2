package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const testAddr = "AA:BB:CC:DD:EE:FF"

// storeUnderTest runs the same contract checks against both
// implementations.
func storeUnderTest(t *testing.T) map[string]CredentialStore {
	t.Helper()
	return map[string]CredentialStore{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "devices.json")),
		"memory": NewMemoryStore(),
	}
}

func TestStoreLoadAbsent(t *testing.T) {
	for name, store := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			cred, err := store.Load(testAddr)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cred != nil {
				t.Errorf("Load absent = %+v, want nil", cred)
			}
		})
	}
}

func TestStoreSaveLoadRemove(t *testing.T) {
	for name, store := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Save(testAddr, &Credential{FactoryResetID: 0xDEADBEEF}); err != nil {
				t.Fatalf("Save: %v", err)
			}

			cred, err := store.Load(testAddr)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cred == nil || cred.FactoryResetID != 0xDEADBEEF {
				t.Fatalf("Load = %+v, want FactoryResetID 0xDEADBEEF", cred)
			}
			if cred.PairedAt.IsZero() {
				t.Error("PairedAt not stamped on Save")
			}

			// Overwrite keeps the latest value.
			if err := store.Save(testAddr, &Credential{FactoryResetID: 42}); err != nil {
				t.Fatalf("Save overwrite: %v", err)
			}
			cred, err = store.Load(testAddr)
			if err != nil {
				t.Fatalf("Load after overwrite: %v", err)
			}
			if cred.FactoryResetID != 42 {
				t.Errorf("FactoryResetID after overwrite = %d, want 42", cred.FactoryResetID)
			}

			if err := store.Remove(testAddr); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			cred, err = store.Load(testAddr)
			if err != nil {
				t.Fatalf("Load after Remove: %v", err)
			}
			if cred != nil {
				t.Errorf("Load after Remove = %+v, want nil", cred)
			}

			// Removing again is not an error.
			if err := store.Remove(testAddr); err != nil {
				t.Errorf("Remove absent: %v", err)
			}
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "devices.json")

	first := NewFileStore(path)
	if err := first.Save(testAddr, &Credential{FactoryResetID: 7}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Save("11:22:33:44:55:66", &Credential{FactoryResetID: 8}); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	second := NewFileStore(path)
	cred, err := second.Load(testAddr)
	if err != nil {
		t.Fatalf("Load from fresh instance: %v", err)
	}
	if cred == nil || cred.FactoryResetID != 7 {
		t.Fatalf("Load = %+v, want FactoryResetID 7", cred)
	}
}

func TestFileStoreFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.json")
	store := NewFileStore(path)
	if err := store.Save(testAddr, &Credential{FactoryResetID: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("state file is not valid JSON: %v", err)
	}
	if state.Version != StoreVersion {
		t.Errorf("Version = %d, want %d", state.Version, StoreVersion)
	}
	if state.SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store := NewFileStore(path)
	if _, err := store.Load(testAddr); err == nil {
		t.Fatal("Load on corrupt file succeeded, want error")
	}
}
