// Package runhistory records each pipeline run in the local SQLite
// store, so operators can check when the ledger was last rebuilt and
// how many documents it carried.
package runhistory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run is one completed pipeline execution.
type Run struct {
	ID           string
	Mode         string
	Documents    int
	SIIDocuments int
	StartedAt    time.Time
	Duration     time.Duration
}

// Repository persists runs.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRepository creates a run-history repository.
func NewRepository(db *sql.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create records a completed run, assigning it an id when absent.
func (r *Repository) Create(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	query := `
		INSERT INTO runs (id, mode, documents, sii_documents, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Mode,
		run.Documents,
		run.SIIDocuments,
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		r.logger.Error("Failed to record run", zap.Error(err))
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Latest returns the most recent run, or nil when none is recorded.
func (r *Repository) Latest(ctx context.Context) (*Run, error) {
	query := `
		SELECT id, mode, documents, sii_documents, started_at, duration_ms
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1
	`

	var run Run
	var durationMS int64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&run.ID,
		&run.Mode,
		&run.Documents,
		&run.SIIDocuments,
		&run.StartedAt,
		&durationMS,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
