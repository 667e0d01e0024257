package testutil

import "fotolink/internal/foto"

// MockLinks is an in-memory foto.Links that records every directory and
// link it is asked to create.
type MockLinks struct {
	Dirs  map[string]bool
	Links map[string]string // link path -> target

	// MkdirErr fails MkdirAll for specific directories.
	MkdirErr map[string]error

	// SymlinkErr fails link creation for specific link paths.
	SymlinkErr map[string]error
}

// NewMockLinks creates an empty mock link manager.
func NewMockLinks() *MockLinks {
	return &MockLinks{
		Dirs:       make(map[string]bool),
		Links:      make(map[string]string),
		MkdirErr:   make(map[string]error),
		SymlinkErr: make(map[string]error),
	}
}

func (m *MockLinks) MkdirAll(dir string) error {
	if err := m.MkdirErr[dir]; err != nil {
		return err
	}
	m.Dirs[dir] = true
	return nil
}

func (m *MockLinks) EnsureSymlink(target, link string) error {
	if err := m.SymlinkErr[link]; err != nil {
		return err
	}
	if _, ok := m.Links[link]; ok {
		return nil
	}
	m.Links[link] = target
	return nil
}

func (m *MockLinks) ReplaceSymlink(target, link string) (bool, error) {
	if err := m.SymlinkErr[link]; err != nil {
		return false, err
	}
	if existing, ok := m.Links[link]; ok && existing == target {
		return false, nil
	}
	m.Links[link] = target
	return true, nil
}

// Compile-time check
var _ foto.Links = (*MockLinks)(nil)
