package estimate

import (
	"math"
	"sync"
)

// Batch holds the partial sums of one worker-local batch of trials.
// It is never shared; a worker accumulates into it and discards it
// after folding it into the shared RunningStats.
type Batch struct {
	SumX  float64
	SumX2 float64
	Count int64
}

// Add folds one observation into the batch
func (b *Batch) Add(x float64) {
	b.SumX += x
	b.SumX2 += x * x
	b.Count++
}

// Snapshot is a momentarily-consistent copy of the shared running sums.
// All derived quantities are computed on demand, never stored.
type Snapshot struct {
	SumX  float64 `json:"sum_x"`
	SumX2 float64 `json:"sum_x2"`
	Count int64   `json:"count"`
}

// Mean returns the running estimate of E[X]
func (s Snapshot) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.SumX / float64(s.Count)
}

// SecondMoment returns the running estimate of E[X^2]
func (s Snapshot) SecondMoment() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.SumX2 / float64(s.Count)
}

// Variance returns the running estimate of Var[X]
func (s Snapshot) Variance() float64 {
	mean := s.Mean()
	return s.SecondMoment() - mean*mean
}

// StdErr returns the 1-sigma uncertainty on the estimated mean,
// sqrt(variance/count)
func (s Snapshot) StdErr() float64 {
	if s.Count == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.Count))
}

// RunningStats is the shared accumulator for all workers of one run.
// The three sums are updated together under one mutex and are never
// observed half-updated. Created by the coordinator before any worker
// starts and read one final time after all workers have stopped.
type RunningStats struct {
	mu    sync.Mutex
	sumX  float64
	sumX2 float64
	count int64
}

// NewRunningStats creates an empty shared accumulator
func NewRunningStats() *RunningStats {
	return &RunningStats{}
}

// Fold merges a worker batch into the shared sums and returns the
// snapshots taken immediately before and after the merge, both inside
// the same critical section. The pair supports the worker's double
// convergence check with a single lock acquisition per batch.
func (r *RunningStats) Fold(b Batch) (pre, post Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pre = Snapshot{SumX: r.sumX, SumX2: r.sumX2, Count: r.count}
	r.sumX += b.SumX
	r.sumX2 += b.SumX2
	r.count += b.Count
	post = Snapshot{SumX: r.sumX, SumX2: r.sumX2, Count: r.count}
	return pre, post
}

// Snapshot returns a consistent copy of the current sums
func (r *RunningStats) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{SumX: r.sumX, SumX2: r.sumX2, Count: r.count}
}
