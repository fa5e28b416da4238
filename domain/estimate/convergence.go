package estimate

// Criterion is the adaptive termination test: a run is converged once
// the squared relative standard error of the mean drops below RTol^2,
// or the trial count exceeds MaxTrials.
//
// The test is a pure function of a snapshot, so it is safe to evaluate
// from any worker against sums captured under the accumulator's mutex.
// Convergence is monotone in the trial count: once met it stays met for
// every later snapshot of the same run.
//
// Known limitation: the relative-error ratio is undefined when the mean
// is exactly zero. That case is intentionally not special-cased; the
// arithmetic produces +Inf (or NaN) and the run proceeds to the trial
// cap. Callers sampling variables with true mean zero need an absolute
// criterion instead.
type Criterion struct {
	RTol      float64
	MaxTrials int64
}

// Met reports whether the snapshot satisfies the termination test.
// An empty snapshot is never converged.
func (c Criterion) Met(s Snapshot) bool {
	if s.Count == 0 {
		return false
	}
	n := float64(s.Count)
	mean := s.Mean()
	varX := s.SecondMoment() - mean*mean
	return varX/(mean*mean)/n < c.RTol*c.RTol || s.Count > c.MaxTrials
}
