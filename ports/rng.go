package ports

// SeedSourcePort is the master seed source for one estimation run.
// Implementations must return a distinct, non-zero seed on every call
// within a run, and must be safe for sequential reads from concurrent
// worker startup (reads happen under the implementation's own
// exclusion).
type SeedSourcePort interface {
	Next() int64
}
