package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// GetDefaults returns application default paths, checking environment variables first.
// A .env file in the working directory is loaded before the lookup if present.
// Environment variables:
//   - FOTOLINK_CONFIG: config file location (default: ~/.config/fotolink.toml)
//   - FOTOLINK_HOME: base directory for fotolink data (default: ~/.local/share/fotolink)
func GetDefaults() (map[string]string, error) {
	// A missing .env just means the environment is configured another way.
	_ = godotenv.Load()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking FOTOLINK_CONFIG env var first,
// then falling back to the default ~/.config/fotolink.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("FOTOLINK_CONFIG"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fotolink.toml"), nil
}

// getBaseDir returns the base directory for fotolink data, checking FOTOLINK_HOME env var first,
// then falling back to the XDG default ~/.local/share/fotolink.
func getBaseDir() (string, error) {
	if path := os.Getenv("FOTOLINK_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "fotolink"), nil
}
