package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for fotolink.
type Config struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	Session           string `toml:"session"`
	DeviceID          string `toml:"device_id"`
	VerifyCertificate bool   `toml:"verify_certificate"`
	AlbumsDir         string `toml:"albums_dir"`
	CacheFile         string `toml:"cache_file"`
	LogDir            string `toml:"log_dir"`
	Workers           int    `toml:"workers"`

	Users []UserConfig `toml:"users"`

	// PhotoRoots maps an owner user id (TOML keys are strings) to the
	// absolute path of that user's photo root. PhotoRootsByID returns the
	// parsed form.
	PhotoRoots map[string]string `toml:"photo_roots"`

	Database DatabaseConfig `toml:"database"`
}

// UserConfig is one service account to process. An empty password is
// collected interactively at startup.
type UserConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// DatabaseConfig represents configuration for the run history database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type string `toml:"type"`           // "sqlite" or "memory"
	Path string `toml:"path,omitempty"` // only used for type=sqlite
}

// DefaultConfig returns the configuration template written by `config
// init`, carrying the given device id and placeholder account values.
func DefaultConfig(deviceID string) *Config {
	return &Config{
		Host:              "your-nas-hostname",
		Port:              5001,
		Session:           "FotoLink",
		DeviceID:          deviceID,
		VerifyCertificate: false,
		AlbumsDir:         "albums",
		CacheFile:         "folders_cache.json",
		Workers:           10,
		Users: []UserConfig{
			{Username: "user1", Password: "password1"},
			{Username: "user2", Password: "password2"},
		},
		PhotoRoots: map[string]string{
			"0": "/volume1/homes/user1/Photos",
			"2": "/volume1/homes/user2/Photos",
		},
		Database: DatabaseConfig{Type: "sqlite", Path: "fotolink.db"},
	}
}

// Validate checks the configuration for problems that would surface only
// mid-run: everything here is reported before any network or filesystem
// activity.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if len(c.Users) == 0 {
		return fmt.Errorf("at least one user is required")
	}
	for i, u := range c.Users {
		if u.Username == "" {
			return fmt.Errorf("users[%d]: username is required", i)
		}
	}
	if c.CacheFile == "" {
		return fmt.Errorf("cache_file is required")
	}
	if c.AlbumsDir == "" {
		return fmt.Errorf("albums_dir is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if _, err := c.PhotoRootsByID(); err != nil {
		return err
	}
	switch c.Database.Type {
	case "", "sqlite":
		// Path defaults elsewhere; empty is fine.
	case "memory":
	default:
		return fmt.Errorf("unknown database type: %s", c.Database.Type)
	}
	return nil
}

// PhotoRootsByID parses the photo_roots table into its owner-id keyed
// form. Roots must be absolute paths so the owner links resolve no matter
// where the tool runs.
func (c *Config) PhotoRootsByID() (map[int64]string, error) {
	roots := make(map[int64]string, len(c.PhotoRoots))
	for key, root := range c.PhotoRoots {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("photo_roots key %q is not a user id", key)
		}
		if !filepath.IsAbs(root) {
			return nil, fmt.Errorf("photo root for owner %d is not absolute: %s", id, root)
		}
		roots[id] = root
	}
	return roots, nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
