package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"fotolink/internal/cache"
	"fotolink/internal/config"
	"fotolink/internal/database"
	"fotolink/internal/foto"
	"fotolink/internal/fs"
	"fotolink/internal/synology"
)

// App is the application layer between the CLI and the foto.Service.
// It constructs all dependencies from config, exposes the high-level
// operations, and manages the run record and log file lifecycle on Close.
type App struct {
	cfg     *config.Config
	runlog  database.RunLog
	service *foto.Service
	logger  foto.Logger
	runID   int64
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// The caller must call Close when done. Users with empty passwords must
// have been filled in beforehand (see FillPasswords) if the command
// contacts the NAS.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	photoRoots, err := cfg.PhotoRootsByID()
	if err != nil {
		return nil, err
	}

	runlog, err := database.NewRunLogFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening run history: %w", err)
	}

	logDir := cfg.LogDir
	if logDir == "" {
		defaults, err := GetDefaults()
		if err != nil {
			runlog.Close()
			return nil, err
		}
		logDir = defaults["log_dir"]
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(logDir, opID)
	if err != nil {
		runlog.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapter := &slogAdapter{l: logger}

	session := cfg.Session
	if session == "" {
		session = "FotoLink"
	}

	accounts := make([]foto.Account, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		client := synology.NewClient(synology.Options{
			Host:              cfg.Host,
			Port:              cfg.Port,
			Username:          u.Username,
			Password:          u.Password,
			Session:           session,
			DeviceID:          cfg.DeviceID,
			VerifyCertificate: cfg.VerifyCertificate,
			Logger:            adapter,
		})
		accounts = append(accounts, foto.Account{Username: u.Username, Client: client})
	}

	store := cache.NewFileStore(cfg.CacheFile)
	links := fs.NewOSLinks()
	svc := foto.NewService(accounts, store, links, cfg.Workers, cfg.AlbumsDir, photoRoots, adapter)

	return &App{
		cfg:     cfg,
		runlog:  runlog,
		service: svc,
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// CacheFolders collects the folder trees of all configured users and
// writes the cache file. The run is recorded in the history.
func (a *App) CacheFolders(ctx context.Context) (*foto.CacheStats, error) {
	a.startRun("cache")
	stats, err := a.service.CacheFolders(ctx)
	if err != nil {
		a.failRun(err)
		return nil, err
	}
	a.finishRun(database.StatusSuccess, fmt.Sprintf("%d folders, %d warnings", stats.Folders, stats.Warnings))
	return stats, nil
}

// LinkAlbums builds the album symlink tree from the cached folder data.
// The run is recorded in the history.
func (a *App) LinkAlbums(ctx context.Context) (*foto.LinkStats, error) {
	a.startRun("link")
	stats, err := a.service.LinkAlbums(ctx)
	if err != nil {
		a.failRun(err)
		return nil, err
	}
	a.finishRun(database.StatusSuccess, fmt.Sprintf("%d albums, %d created, %d skipped, %d failed",
		stats.Albums, stats.Created, stats.Skipped, stats.Failed))
	return stats, nil
}

// Check walks the albums tree and reports symlinks whose targets no
// longer resolve. When prune is true, broken links and directories left
// empty by their removal are deleted.
func (a *App) Check(prune bool) (*fs.CheckReport, error) {
	return fs.CheckTree(a.cfg.AlbumsDir, prune, a.logger)
}

// History returns the most recent recorded runs.
func (a *App) History(limit int) ([]*database.Run, error) {
	return a.runlog.ListRuns(limit)
}

// Close closes the run history and the log file. An unfinished run
// record is marked failed first so interrupted runs are visible in the
// history.
func (a *App) Close() error {
	var firstErr error

	if a.runID != 0 {
		a.finishRun(database.StatusError, "interrupted")
	}

	if err := a.runlog.Close(); err != nil {
		firstErr = fmt.Errorf("closing run history: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
