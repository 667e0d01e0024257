package foto

import (
	"context"
	"errors"
	"fmt"
)

// Service is the orchestration layer that runs the two phases of the tool
// across all configured accounts: collecting the folder cache, and
// materializing album links from it.
type Service struct {
	accounts   []Account
	cache      CacheStore
	links      Links
	workers    int
	albumsDir  string
	photoRoots map[int64]string
	logger     Logger
}

// NewService creates a Service with the provided dependencies. workers
// bounds the folder listing fan-out per space.
func NewService(accounts []Account, cache CacheStore, links Links, workers int, albumsDir string, photoRoots map[int64]string, logger Logger) *Service {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Service{
		accounts:   accounts,
		cache:      cache,
		links:      links,
		workers:    workers,
		albumsDir:  albumsDir,
		photoRoots: photoRoots,
		logger:     logger,
	}
}

// CacheStats summarizes a cache run.
type CacheStats struct {
	Users    int // accounts processed
	Folders  int // distinct folders cached
	Warnings int // listings that failed
}

// CacheFolders enumerates the personal and shared folder trees of every
// account, merges them into one mapping, and saves it to the cache store.
// Folders seen by several accounts collapse to one entry; an id carrying
// two different records is logged and the later one wins.
func (s *Service) CacheFolders(ctx context.Context) (*CacheStats, error) {
	all := make(FolderMap)
	stats := &CacheStats{}

	for _, account := range s.accounts {
		if err := s.cacheAccountFolders(ctx, account, all, stats); err != nil {
			return nil, err
		}
		stats.Users++
	}

	if err := s.cache.Save(all); err != nil {
		return nil, fmt.Errorf("saving folder cache: %w", err)
	}

	stats.Folders = len(all)
	s.logger.Info("folder cache written", "folders", stats.Folders, "warnings", stats.Warnings)
	return stats, nil
}

// cacheAccountFolders collects both spaces for one account inside a
// login/logout bracket and merges the results into all.
func (s *Service) cacheAccountFolders(ctx context.Context, account Account, all FolderMap, stats *CacheStats) error {
	if err := account.Client.Login(ctx); err != nil {
		return fmt.Errorf("logging in %s: %w", account.Username, err)
	}
	defer s.logout(ctx, account)

	info, err := account.Client.UserInfo(ctx)
	if err != nil {
		return fmt.Errorf("fetching user info for %s: %w", account.Username, err)
	}
	s.logger.Info("collecting folders", "user", info.Name)

	collector := NewCollector(account.Client, s.workers, s.logger)
	for _, space := range []Space{SpacePersonal, SpaceShared} {
		folders, warnings := collector.Collect(ctx, space)
		stats.Warnings += len(warnings)
		for _, id := range all.Merge(folders) {
			s.logger.Warn("conflicting records for folder id", "folder_id", id, "space", space, "user", account.Username)
		}
		s.logger.Info("space collected", "user", account.Username, "space", space, "folders", len(folders))
	}
	return nil
}

// LinkAlbums loads the folder cache and links every album of every
// account. The cache must have been built by a prior CacheFolders run.
func (s *Service) LinkAlbums(ctx context.Context) (*LinkStats, error) {
	folders, err := s.cache.Load()
	if err != nil {
		if errors.Is(err, ErrCacheMissing) {
			return nil, fmt.Errorf("no folder cache: run the cache step first (%w)", err)
		}
		return nil, fmt.Errorf("loading folder cache: %w", err)
	}

	linker := NewLinker(s.links, folders, s.photoRoots, s.albumsDir, s.logger)
	for _, account := range s.accounts {
		if err := s.linkAccountAlbums(ctx, account, linker); err != nil {
			return nil, err
		}
	}

	stats := linker.Stats()
	s.logger.Info("album linking finished",
		"albums", stats.Albums, "created", stats.Created, "skipped", stats.Skipped, "failed", stats.Failed)
	return &stats, nil
}

// linkAccountAlbums links all albums visible to one account inside a
// login/logout bracket.
func (s *Service) linkAccountAlbums(ctx context.Context, account Account, linker *Linker) error {
	if err := account.Client.Login(ctx); err != nil {
		return fmt.Errorf("logging in %s: %w", account.Username, err)
	}
	defer s.logout(ctx, account)

	albums, err := account.Client.ListAlbums(ctx)
	if err != nil {
		return fmt.Errorf("listing albums for %s: %w", account.Username, err)
	}
	s.logger.Info("processing albums", "user", account.Username, "count", len(albums))

	for _, album := range albums {
		items, err := account.Client.ListAlbumItems(ctx, album.ID)
		if err != nil {
			return fmt.Errorf("listing items of album %q: %w", album.Name, err)
		}
		if err := linker.LinkAlbum(album, items); err != nil {
			return err
		}
	}
	return nil
}

// logout closes the account's session, logging instead of failing: the
// session expires on its own and the work is already done.
func (s *Service) logout(ctx context.Context, account Account) {
	if err := account.Client.Logout(ctx); err != nil {
		s.logger.Warn("logout failed", "user", account.Username, "error", err)
	}
}
