package estimate

import (
	"runtime"

	"gomonte/domain/core"
)

// Params configures one estimation run
type Params struct {
	RTol      float64 `json:"rtol"`
	MaxTrials int64   `json:"max_trials"`
	BatchSize int     `json:"batch_size"`
	Workers   int     `json:"workers"`
	Seed      int64   `json:"seed,omitempty"`    // 0 means clock-derived master seed
	Sampler   string  `json:"sampler,omitempty"` // empty means uniform
}

// DefaultParams returns the standard run configuration
func DefaultParams() Params {
	return Params{
		RTol:      0.01,
		MaxTrials: 1_000_000,
		BatchSize: 500,
		Workers:   runtime.NumCPU(),
		Sampler:   "uniform",
	}
}

// Validate rejects invalid configuration before any worker starts
func (p Params) Validate() error {
	if p.RTol <= 0 {
		return core.NewValidationError("rtol", "must be positive")
	}
	if p.MaxTrials < 1 {
		return core.NewValidationError("max_trials", "must be at least 1")
	}
	if p.BatchSize < 1 {
		return core.NewValidationError("batch_size", "must be at least 1")
	}
	if p.Workers < 1 {
		return core.NewValidationError("workers", "must be at least 1")
	}
	return nil
}

// Criterion returns the termination test for these parameters
func (p Params) Criterion() Criterion {
	return Criterion{RTol: p.RTol, MaxTrials: p.MaxTrials}
}
