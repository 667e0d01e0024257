package database

import (
	"fmt"

	"fotolink/internal/config"
)

// NewRunLogFromConfig creates a RunLog implementation based on the database config type.
// An empty type defaults to sqlite.
func NewRunLogFromConfig(cfg config.DatabaseConfig) (RunLog, error) {
	switch cfg.Type {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "fotolink.db"
		}
		return NewSQLiteRunLog(path)
	case "memory":
		return NewSQLiteRunLog(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
