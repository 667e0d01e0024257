package database

import (
	"database/sql"
	"fmt"
	"time"

	"fotolink/internal/database/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteRunLog implements the RunLog interface using SQLite.
type SQLiteRunLog struct {
	db   *sql.DB
	path string
}

// NewSQLiteRunLog opens (or creates) the run history database at path and
// brings its schema up to date. path can be a file path or ":memory:".
func NewSQLiteRunLog(path string) (*SQLiteRunLog, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating run history schema: %w", err)
	}

	return &SQLiteRunLog{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// This is exported for use in tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func (s *SQLiteRunLog) StartRun(operation string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (operation, started_at, status) VALUES (?, ?, ?)`,
		operation, time.Now(), StatusRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

func (s *SQLiteRunLog) FinishRun(id int64, status string, detail string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, status = ?, detail = ? WHERE id = ?`,
		time.Now(), status, detail, id,
	)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	return nil
}

func (s *SQLiteRunLog) ListRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, operation, started_at, finished_at, status, detail
		 FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Operation, &r.StartedAt, &r.FinishedAt, &r.Status, &r.Detail); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}
	return runs, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteRunLog) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteRunLog) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteRunLog implements RunLog
var _ RunLog = (*SQLiteRunLog)(nil)
