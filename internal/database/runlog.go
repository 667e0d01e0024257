// Package database records run history: one row per cache or link run,
// with its outcome. The ledger is observability only and never gates the
// runs themselves.
package database

import (
	"database/sql"
	"time"
)

// Run statuses.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Run is one recorded invocation of a mutating command.
type Run struct {
	ID         int64
	Operation  string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Status     string
	Detail     string
}

// RunLog provides an interface for run history storage.
type RunLog interface {
	// StartRun records the beginning of an operation and returns its id.
	StartRun(operation string) (int64, error)

	// FinishRun closes out a run with its final status and a short
	// human-readable detail (counts, or the error message).
	FinishRun(id int64, status string, detail string) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]*Run, error)

	// Close closes the underlying connection.
	Close() error
}
