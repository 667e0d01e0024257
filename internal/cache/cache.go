// Package cache stores the folder mapping produced by the cache phase as a
// single JSON file consumed by the link phase.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fotolink/internal/foto"
)

// FileStore persists the folder mapping as one pretty-printed JSON file:
// an object keyed by folder id with ["<name>", <owner>] tuple values.
// Save replaces the whole file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the mapping atomically: the JSON is written to a temp file
// in the same directory and renamed over the destination, so a crashed
// run never leaves a half-written cache behind.
func (s *FileStore) Save(folders foto.FolderMap) error {
	data, err := json.MarshalIndent(folders, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding folder cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".cache-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing folder cache: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing folder cache: %w", err)
	}

	success = true
	return nil
}

// Load reads the mapping back. A store that has never been saved reports
// foto.ErrCacheMissing; unreadable or corrupt files are distinct errors.
func (s *FileStore) Load() (foto.FolderMap, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, foto.ErrCacheMissing)
		}
		return nil, fmt.Errorf("reading folder cache: %w", err)
	}

	var folders foto.FolderMap
	if err := json.Unmarshal(data, &folders); err != nil {
		return nil, fmt.Errorf("decoding folder cache %s: %w", s.path, err)
	}
	return folders, nil
}

// Compile-time check that FileStore implements foto.CacheStore
var _ foto.CacheStore = (*FileStore)(nil)
