package testkit

import (
	"context"
	"sort"
	"sync"
	"time"

	"gomonte/domain/core"
	"gomonte/domain/estimate"
	"gomonte/ports"
)

// MemoryRunRepository is an in-memory RunRepositoryPort for tests and
// for running the service without a database.
type MemoryRunRepository struct {
	mu      sync.RWMutex
	records map[core.RunID]estimate.RunRecord
}

// NewMemoryRunRepository creates an empty in-memory repository
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{records: make(map[core.RunID]estimate.RunRecord)}
}

// Save persists one run record
func (m *MemoryRunRepository) Save(ctx context.Context, record *estimate.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = *record
	return nil
}

// Get retrieves a run by ID
func (m *MemoryRunRepository) Get(ctx context.Context, id core.RunID) (*estimate.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return &record, nil
}

// List returns stored runs, newest first
func (m *MemoryRunRepository) List(ctx context.Context) ([]estimate.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]estimate.RunRecord, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Len returns the number of stored runs
func (m *MemoryRunRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Ensure MemoryRunRepository implements RunRepositoryPort
var _ ports.RunRepositoryPort = (*MemoryRunRepository)(nil)

// FixtureHistory builds a deterministic run history for report and
// export tests: count uniform runs with slightly varying means.
func FixtureHistory(count int) []estimate.RunRecord {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	records := make([]estimate.RunRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, estimate.RunRecord{
			ID:        core.NewRunID(),
			Sampler:   "uniform",
			RTol:      0.01,
			MaxTrials: 1_000_000,
			BatchSize: 500,
			Workers:   4,
			Seed:      int64(1000 + i),
			Mean:      0.5 + 0.001*float64(i%5-2),
			StdErr:    0.005,
			Trials:    int64(20000 + 500*i),
			ElapsedMs: int64(10 + i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return records
}
