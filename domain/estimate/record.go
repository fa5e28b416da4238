package estimate

import (
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"gomonte/domain/core"
)

// RunRecord is the persisted outcome of one estimation run: the echoed
// configuration plus the final estimate.
type RunRecord struct {
	ID        core.RunID `json:"id" db:"id"`
	Sampler   string     `json:"sampler" db:"sampler"`
	RTol      float64    `json:"rtol" db:"rtol"`
	MaxTrials int64      `json:"max_trials" db:"max_trials"`
	BatchSize int        `json:"batch_size" db:"batch_size"`
	Workers   int        `json:"workers" db:"workers"`
	Seed      int64      `json:"seed" db:"seed"`
	Mean      float64    `json:"mean" db:"mean"`
	StdErr    float64    `json:"std_err" db:"std_err"`
	Trials    int64      `json:"trials" db:"trials"`
	ElapsedMs int64      `json:"elapsed_ms" db:"elapsed_ms"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// NewRunRecord builds a record from the final accumulator snapshot
func NewRunRecord(p Params, samplerName string, seed int64, final Snapshot, elapsed time.Duration) *RunRecord {
	return &RunRecord{
		ID:        core.NewRunID(),
		Sampler:   samplerName,
		RTol:      p.RTol,
		MaxTrials: p.MaxTrials,
		BatchSize: p.BatchSize,
		Workers:   p.Workers,
		Seed:      seed,
		Mean:      final.Mean(),
		StdErr:    final.StdErr(),
		Trials:    final.Count,
		ElapsedMs: elapsed.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	}
}

// Elapsed returns the wall-clock duration of the run
func (r *RunRecord) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMs) * time.Millisecond
}

// ConfidenceInterval returns the normal-approximation interval around
// the mean at the given level (e.g. 0.95).
func (r *RunRecord) ConfidenceInterval(level float64) (lo, hi float64) {
	if level <= 0 || level >= 1 {
		return r.Mean, r.Mean
	}
	z := distuv.UnitNormal.Quantile(0.5 + level/2)
	return r.Mean - z*r.StdErr, r.Mean + z*r.StdErr
}
