package foto

// Links provides an interface for the filesystem mutations the link
// builder performs. It abstracts symlink handling to enable testing
// without touching the real filesystem.
type Links interface {
	// MkdirAll creates a directory and any missing parents.
	MkdirAll(dir string) error

	// EnsureSymlink creates a symlink at link pointing to target, creating
	// parent directories as needed. If link already exists, whatever it is,
	// this is a no-op.
	EnsureSymlink(target, link string) error

	// ReplaceSymlink makes link a symlink pointing to target. An existing
	// symlink that already carries the exact target is left alone and
	// created is false; anything else at link is removed first. Broken
	// links are expected and not an error.
	ReplaceSymlink(target, link string) (created bool, err error)
}
