package app

import (
	"math/rand"

	"gomonte/domain/estimate"
	"gomonte/domain/sampler"
)

// worker runs one sampling loop against the shared accumulator. The
// random stream is exclusively owned; the only shared state it touches
// is the accumulator, once per batch, inside Fold's critical section.
type worker struct {
	rng       *rand.Rand
	sampler   sampler.Sampler
	batchSize int
	shared    *estimate.RunningStats
	criterion estimate.Criterion
}

// run loops batches until the termination test passes. The test is
// evaluated twice per batch, on the pre-merge and post-merge snapshots:
// a worker whose peers already pushed the sums past the threshold still
// folds its batch in for accounting completeness, then stops without
// running another one. Termination is per-worker; nobody signals anyone,
// and the overshoot past global convergence is bounded by one batch per
// worker because the criterion is monotone in the trial count.
func (w *worker) run() {
	for {
		var batch estimate.Batch
		for i := 0; i < w.batchSize; i++ {
			batch.Add(w.sampler.Sample(w.rng))
		}

		pre, post := w.shared.Fold(batch)
		if w.criterion.Met(pre) || w.criterion.Met(post) {
			return
		}
	}
}
