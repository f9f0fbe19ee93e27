package state

import (
	"context"
	"database/sql"
	"time"

	"omnia-sync/internal/domain/model"
)

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusPartial RunStatus = "partial"
	RunStatusFailed  RunStatus = "failed"
)

// RunStore persists one row per reconciliation pass. The table:
//
//	CREATE TABLE sync_runs (
//	    pass_id      CHAR(36) PRIMARY KEY,
//	    triggered_by VARCHAR(32) NOT NULL,
//	    status       VARCHAR(16) NOT NULL,
//	    created_cnt  INT NOT NULL DEFAULT 0,
//	    updated_cnt  INT NOT NULL DEFAULT 0,
//	    deleted_cnt  INT NOT NULL DEFAULT 0,
//	    failed_cnt   INT NOT NULL DEFAULT 0,
//	    skipped_cnt  INT NOT NULL DEFAULT 0,
//	    duration_ms  BIGINT NOT NULL DEFAULT 0,
//	    error_text   TEXT,
//	    started_at   DATETIME NOT NULL,
//	    finished_at  DATETIME NULL
//	);
//
// A nil store is valid and records nothing, so deployments without MySQL
// keep working.
type RunStore struct {
	db *sql.DB
}

func NewRunStore(db *sql.DB) *RunStore {
	if db == nil {
		return nil
	}
	return &RunStore{db: db}
}

func (s *RunStore) StartRun(ctx context.Context, passID, triggeredBy string) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_runs (pass_id, triggered_by, status, started_at) VALUES (?, ?, ?, ?)`,
		passID, triggeredBy, string(RunStatusRunning), time.Now().UTC(),
	)
	return err
}

func (s *RunStore) FinishRun(ctx context.Context, report model.SyncReport, runErr error) error {
	if s == nil {
		return nil
	}

	status := RunStatusSuccess
	switch {
	case runErr != nil:
		status = RunStatusFailed
	case report.Failed > 0 || report.PartialFetch:
		status = RunStatusPartial
	}

	var errText sql.NullString
	if runErr != nil {
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE sync_runs
		 SET status = ?, created_cnt = ?, updated_cnt = ?, deleted_cnt = ?,
		     failed_cnt = ?, skipped_cnt = ?, duration_ms = ?, error_text = ?, finished_at = ?
		 WHERE pass_id = ?`,
		string(status), report.Created, report.Updated, report.Deleted,
		report.Failed, report.Skipped, report.Duration.Milliseconds(), errText, time.Now().UTC(),
		report.PassID,
	)
	return err
}
