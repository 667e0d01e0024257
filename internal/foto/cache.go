package foto

import "errors"

// ErrCacheMissing reports that no folder cache exists yet. Implementations
// of CacheStore wrap it so callers can tell "not cached yet" from an
// unreadable or corrupt cache.
var ErrCacheMissing = errors.New("folder cache missing")

// CacheStore persists the folder mapping between the cache and link
// phases.
type CacheStore interface {
	// Save replaces the stored mapping.
	Save(folders FolderMap) error

	// Load returns the stored mapping. When none has been saved, the
	// error wraps ErrCacheMissing.
	Load() (FolderMap, error)
}
