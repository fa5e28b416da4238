package ports

import (
	"context"

	"gomonte/domain/core"
	"gomonte/domain/estimate"
)

// RunRepositoryPort stores completed estimation runs
type RunRepositoryPort interface {
	// Save persists one run record
	Save(ctx context.Context, record *estimate.RunRecord) error

	// Get retrieves a run by ID; returns core.ErrRunNotFound if absent
	Get(ctx context.Context, id core.RunID) (*estimate.RunRecord, error)

	// List returns stored runs, newest first
	List(ctx context.Context) ([]estimate.RunRecord, error)
}
