package app

import (
	"fotolink/internal/database"
)

// startRun records the beginning of an operation in the run history.
// The history is observability only: failure to record is logged and
// the operation proceeds regardless.
func (a *App) startRun(operation string) {
	id, err := a.runlog.StartRun(operation)
	if err != nil {
		a.logger.Warn("recording run start failed", "operation", operation, "error", err)
		return
	}
	a.runID = id
}

// finishRun completes the current run record, if one was started.
func (a *App) finishRun(status string, detail string) {
	if a.runID == 0 {
		return
	}
	if err := a.runlog.FinishRun(a.runID, status, detail); err != nil {
		a.logger.Warn("recording run finish failed", "error", err)
	}
	a.runID = 0
}

// failRun marks the current run record as failed with the error text.
func (a *App) failRun(err error) {
	a.finishRun(database.StatusError, err.Error())
}
