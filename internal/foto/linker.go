package foto

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// usersDir is the directory under the albums root holding the per-owner
// links that all item links resolve through.
const usersDir = "users"

// LinkStats summarizes a link run.
type LinkStats struct {
	Albums       int // albums fully processed
	AlbumsFailed int // albums skipped because their directory could not be created
	Created      int // item links created
	Skipped      int // item links already correct
	Failed       int // item links that could not be created
}

// Linker materializes albums as directories of symbolic links. Each item
// link points through an owner link (<albums>/users/<owner> → photo root),
// so moving the albums tree never breaks it.
//
// A Linker is single-use: it memoizes the owner links it has verified
// during one run.
type Linker struct {
	links      Links
	folders    FolderMap
	photoRoots map[int64]string
	albumsDir  string
	logger     Logger

	ownerLinks map[int64]bool
	stats      LinkStats
}

// NewLinker creates a Linker writing under albumsDir, resolving items
// through the cached folders and the configured per-owner photo roots.
func NewLinker(links Links, folders FolderMap, photoRoots map[int64]string, albumsDir string, logger Logger) *Linker {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Linker{
		links:      links,
		folders:    folders,
		photoRoots: photoRoots,
		albumsDir:  albumsDir,
		logger:     logger,
		ownerLinks: make(map[int64]bool),
	}
}

// Stats returns the counters accumulated so far.
func (l *Linker) Stats() LinkStats { return l.stats }

// LinkAlbum creates the album's directory and links every item into it.
// A directory that cannot be created skips the album; an item that cannot
// be linked is logged and skipped. Inconsistencies between the items and
// the folder cache or the configured photo roots abort the run.
func (l *Linker) LinkAlbum(album Album, items []Item) error {
	dir := filepath.Join(l.albumsDir, strconv.Itoa(AlbumYear(album)), AlbumDirName(album.Name))
	if err := l.links.MkdirAll(dir); err != nil {
		l.logger.Error("creating album directory", "album", album.Name, "error", err)
		l.stats.AlbumsFailed++
		return nil
	}

	for _, item := range items {
		if err := l.linkItem(dir, album, item); err != nil {
			return err
		}
	}

	l.stats.Albums++
	l.logger.Debug("album linked", "album", album.Name, "items", len(items))
	return nil
}

// linkItem validates one item against the cache and the configuration,
// then creates its link. The target is relative, reaching the real file
// through the owner link two levels up.
func (l *Linker) linkItem(dir string, album Album, item Item) error {
	folder, ok := l.folders[item.FolderID]
	if !ok {
		return fmt.Errorf("folder id %d not in cache for %s in album %q (re-run the cache step)", item.FolderID, item.Filename, album.Name)
	}
	if item.OwnerID != folder.OwnerID {
		return fmt.Errorf("owner mismatch for %s in album %q: item owner %d, folder owner %d", item.Filename, album.Name, item.OwnerID, folder.OwnerID)
	}
	root, ok := l.photoRoots[item.OwnerID]
	if !ok {
		return fmt.Errorf("no photo root configured for owner %d (%s in album %q)", item.OwnerID, item.Filename, album.Name)
	}

	l.ensureOwnerLink(item.OwnerID, root)

	target := filepath.Join("..", "..", usersDir, strconv.FormatInt(item.OwnerID, 10), strings.TrimPrefix(folder.Name, "/"), item.Filename)
	link := filepath.Join(dir, item.Filename)

	created, err := l.links.ReplaceSymlink(target, link)
	switch {
	case err != nil:
		l.logger.Error("creating link", "file", item.Filename, "album", album.Name, "error", err)
		l.stats.Failed++
	case created:
		l.stats.Created++
	default:
		l.stats.Skipped++
	}
	return nil
}

// ensureOwnerLink creates <albums>/users/<owner> → root once per run.
// Failures are logged; the item links still get created and resolve as
// soon as the owner link exists.
func (l *Linker) ensureOwnerLink(ownerID int64, root string) {
	if l.ownerLinks[ownerID] {
		return
	}
	link := filepath.Join(l.albumsDir, usersDir, strconv.FormatInt(ownerID, 10))
	if err := l.links.EnsureSymlink(root, link); err != nil {
		l.logger.Error("creating owner link", "owner", ownerID, "error", err)
		return
	}
	l.ownerLinks[ownerID] = true
}
