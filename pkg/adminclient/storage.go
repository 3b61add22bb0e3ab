package adminclient

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CredentialStorage persists the opaque credential string between
// process runs. An empty load means anonymous startup.
type CredentialStorage interface {
	Load() (string, error)
	Save(credential string) error
	Clear() error
}

// FileStorage keeps the credential in a single file under the user
// config directory, owner-readable only.
type FileStorage struct {
	path string
}

// NewFileStorage places the credential under
// <UserConfigDir>/teekoob-admin/credential.
func NewFileStorage() (*FileStorage, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &FileStorage{path: filepath.Join(dir, "teekoob-admin", "credential")}, nil
}

// NewFileStorageAt uses an explicit path.
func NewFileStorageAt(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the stored credential; a missing file is not an error.
func (f *FileStorage) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the credential with 0600 permissions.
func (f *FileStorage) Save(credential string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(credential), 0o600)
}

// Clear removes the credential file; already-absent is fine.
func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStorage is an in-process CredentialStorage for tests.
type MemoryStorage struct {
	mu         sync.Mutex
	credential string
}

// NewMemoryStorage builds an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the held credential.
func (m *MemoryStorage) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential, nil
}

// Save replaces the held credential.
func (m *MemoryStorage) Save(credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = credential
	return nil
}

// Clear drops the held credential.
func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = ""
	return nil
}
