package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gomonte/domain/core"
	"gomonte/domain/estimate"
	"gomonte/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS estimation_runs (
	id          TEXT PRIMARY KEY,
	sampler     TEXT NOT NULL,
	rtol        DOUBLE PRECISION NOT NULL,
	max_trials  BIGINT NOT NULL,
	batch_size  INTEGER NOT NULL,
	workers     INTEGER NOT NULL,
	seed        BIGINT NOT NULL,
	mean        DOUBLE PRECISION NOT NULL,
	std_err     DOUBLE PRECISION NOT NULL,
	trials      BIGINT NOT NULL,
	elapsed_ms  BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
)`

// RunRepository persists run records in PostgreSQL
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// EnsureSchema creates the runs table if it does not exist
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure estimation_runs schema: %w", err)
	}
	return nil
}

// Save persists one run record
func (r *RunRepository) Save(ctx context.Context, record *estimate.RunRecord) error {
	query := `
		INSERT INTO estimation_runs
			(id, sampler, rtol, max_trials, batch_size, workers, seed,
			 mean, std_err, trials, elapsed_ms, created_at)
		VALUES
			(:id, :sampler, :rtol, :max_trials, :batch_size, :workers, :seed,
			 :mean, :std_err, :trials, :elapsed_ms, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}
	return nil
}

// Get retrieves a run by ID
func (r *RunRepository) Get(ctx context.Context, id core.RunID) (*estimate.RunRecord, error) {
	query := `SELECT * FROM estimation_runs WHERE id = $1`

	var record estimate.RunRecord
	if err := r.db.GetContext(ctx, &record, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run record: %w", err)
	}
	return &record, nil
}

// List returns stored runs, newest first
func (r *RunRepository) List(ctx context.Context) ([]estimate.RunRecord, error) {
	query := `SELECT * FROM estimation_runs ORDER BY created_at DESC`

	records := []estimate.RunRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	return records, nil
}

// Ensure RunRepository implements RunRepositoryPort
var _ ports.RunRepositoryPort = (*RunRepository)(nil)
