package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"fotolink/internal/foto"
)

// OSLinks is the real filesystem implementation of foto.Links.
// It performs actual symlink operations using the os package.
type OSLinks struct{}

// NewOSLinks creates a link manager that operates on the real filesystem.
func NewOSLinks() *OSLinks {
	return &OSLinks{}
}

// MkdirAll creates dir and any missing parents.
func (*OSLinks) MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// EnsureSymlink creates link pointing to target unless something already
// sits at link. Lstat is used so an existing broken link also counts as
// present.
func (*OSLinks) EnsureSymlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", link, err)
	}

	if _, err := os.Lstat(link); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", link, err)
	}

	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("symlinking %s to %s: %w", link, target, err)
	}
	return nil
}

// ReplaceSymlink points link at target. An existing symlink already
// carrying the exact target is kept and created is false; anything else
// at link is removed first.
func (*OSLinks) ReplaceSymlink(target, link string) (bool, error) {
	info, err := os.Lstat(link)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			existing, readErr := os.Readlink(link)
			if readErr == nil && existing == target {
				return false, nil
			}
		}
		if err := os.Remove(link); err != nil {
			return false, fmt.Errorf("removing %s: %w", link, err)
		}
	case !os.IsNotExist(err):
		return false, fmt.Errorf("checking %s: %w", link, err)
	}

	if err := os.Symlink(target, link); err != nil {
		return false, fmt.Errorf("symlinking %s to %s: %w", link, target, err)
	}
	return true, nil
}

// Compile-time check that OSLinks implements foto.Links
var _ foto.Links = (*OSLinks)(nil)
