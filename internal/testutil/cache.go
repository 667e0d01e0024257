package testutil

import (
	"fmt"

	"fotolink/internal/foto"
)

// MockCacheStore is an in-memory foto.CacheStore. Load before any Save
// reports foto.ErrCacheMissing, like the file store.
type MockCacheStore struct {
	Folders foto.FolderMap
	SaveErr error
}

// NewMockCacheStore creates an empty store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{}
}

func (m *MockCacheStore) Save(folders foto.FolderMap) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Folders = folders
	return nil
}

func (m *MockCacheStore) Load() (foto.FolderMap, error) {
	if m.Folders == nil {
		return nil, fmt.Errorf("nothing saved: %w", foto.ErrCacheMissing)
	}
	return m.Folders, nil
}

// Compile-time check
var _ foto.CacheStore = (*MockCacheStore)(nil)
