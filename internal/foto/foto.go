// Package foto holds the domain model and core workflows for mirroring a
// Synology Photos library as a tree of symbolic links: collecting the folder
// hierarchy into a cache, and materializing album contents as links that
// resolve through per-owner photo roots.
package foto

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Space identifies which storage area a folder listing operates on.
type Space int

const (
	// SpacePersonal is a user's private photo storage.
	SpacePersonal Space = iota
	// SpaceShared is the team storage visible to multiple users.
	SpaceShared
)

func (s Space) String() string {
	switch s {
	case SpacePersonal:
		return "personal"
	case SpaceShared:
		return "shared"
	default:
		return fmt.Sprintf("space(%d)", int(s))
	}
}

// Folder is one entry from a folder listing. Name is the full path within
// its space, with a leading slash (e.g. "/Photos/2023").
type Folder struct {
	ID      int64
	Name    string
	OwnerID int64
}

// FolderRecord is what the cache retains about a folder: enough to build a
// link target. It serializes as a two-element [name, owner] tuple.
type FolderRecord struct {
	Name    string
	OwnerID int64
}

// MarshalJSON encodes the record as ["<name>", <owner>].
func (r FolderRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Name, r.OwnerID})
}

// UnmarshalJSON decodes a ["<name>", <owner>] tuple.
func (r *FolderRecord) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("folder record is not an array: %w", err)
	}
	if len(tuple) != 2 {
		return fmt.Errorf("folder record has %d elements, want 2", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &r.Name); err != nil {
		return fmt.Errorf("folder record name: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &r.OwnerID); err != nil {
		return fmt.Errorf("folder record owner: %w", err)
	}
	return nil
}

// FolderMap is the cached mapping from folder ID to its record. JSON keys
// are the decimal folder IDs.
type FolderMap map[int64]FolderRecord

// Merge copies all entries of other into m, later entries winning.
// It returns the IDs (sorted) that were already present with a different
// record — real conflicts, not re-listings of the same shared folder.
func (m FolderMap) Merge(other FolderMap) []int64 {
	var conflicts []int64
	for id, rec := range other {
		if existing, ok := m[id]; ok && existing != rec {
			conflicts = append(conflicts, id)
		}
		m[id] = rec
	}
	slices.Sort(conflicts)
	return conflicts
}

// Album is one album as listed by the service.
type Album struct {
	ID         int64
	Name       string
	OwnerID    int64
	CreateTime time.Time
}

// Item is one photo or video inside an album. FolderID locates the backing
// file via the folder cache; OwnerID is the user whose space holds it.
type Item struct {
	Filename string
	FolderID int64
	OwnerID  int64
}

// UserInfo describes the authenticated user.
type UserInfo struct {
	Name string
}
