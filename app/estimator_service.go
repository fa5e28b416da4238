package app

import (
	"context"
	"log"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"gomonte/domain/estimate"
	"gomonte/domain/sampler"
	"gomonte/internal/errors"
	"gomonte/internal/seed"
	"gomonte/ports"
)

// EstimatorService coordinates one adaptive Monte Carlo estimation:
// it validates the configuration, seeds and spawns the worker pool,
// waits for every worker to observe convergence, and turns the final
// accumulator state into a run record.
type EstimatorService struct {
	repo ports.RunRepositoryPort // nil disables persistence
}

// NewEstimatorService creates an estimator service
func NewEstimatorService(repo ports.RunRepositoryPort) *EstimatorService {
	return &EstimatorService{repo: repo}
}

// Run executes one estimation with the sampler named in the parameters
func (s *EstimatorService) Run(ctx context.Context, p estimate.Params) (*estimate.RunRecord, error) {
	smp, err := sampler.New(p.Sampler)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return s.RunWith(ctx, p, smp)
}

// RunWith executes one estimation with an explicit sampler. The engine
// is agnostic to what the sampler computes; any finite observation per
// draw works.
func (s *EstimatorService) RunWith(ctx context.Context, p estimate.Params, smp sampler.Sampler) (*estimate.RunRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	masterSeed := p.Seed
	if masterSeed == 0 {
		masterSeed = time.Now().UnixNano()
	}
	var seeds ports.SeedSourcePort = seed.NewSource(masterSeed)

	shared := estimate.NewRunningStats()
	criterion := p.Criterion()

	log.Printf("[Estimator] starting run: sampler=%s rtol=%g maxtrials=%d nbatch=%d workers=%d",
		smp.Name(), p.RTol, p.MaxTrials, p.BatchSize, p.Workers)

	start := time.Now()
	g := new(errgroup.Group)
	for i := 0; i < p.Workers; i++ {
		w := &worker{
			rng:       rand.New(rand.NewSource(seeds.Next())),
			sampler:   smp,
			batchSize: p.BatchSize,
			shared:    shared,
			criterion: criterion,
		}
		g.Go(func() error {
			w.run()
			return nil
		})
	}
	// Workers never fail; Wait only blocks until all of them have
	// observed convergence.
	_ = g.Wait()
	elapsed := time.Since(start)

	record := estimate.NewRunRecord(p, smp.Name(), masterSeed, shared.Snapshot(), elapsed)
	log.Printf("[Estimator] run %s done: mean=%g stderr=%g trials=%d elapsed=%s",
		record.ID, record.Mean, record.StdErr, record.Trials, elapsed)

	if s.repo != nil {
		if err := s.repo.Save(ctx, record); err != nil {
			return nil, errors.Wrap(err, "failed to persist run record")
		}
	}
	return record, nil
}
