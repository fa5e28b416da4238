package sampler

import (
	"fmt"
	"math/rand"

	"gomonte/domain/core"
)

// Sampler maps draws from a worker's private random stream to one
// observation value. Implementations must be stateless (or read-only)
// so one instance can serve every worker of a run; all per-worker state
// lives in the *rand.Rand passed to Sample.
type Sampler interface {
	Name() string
	Sample(rng *rand.Rand) float64
}

// Uniform is the default sampler: the observation is the raw uniform
// draw itself. Its true mean is 0.5, which makes it a self-test of the
// estimation engine.
type Uniform struct{}

func (Uniform) Name() string { return "uniform" }

func (Uniform) Sample(rng *rand.Rand) float64 {
	return rng.Float64()
}

// New resolves a sampler by name. An empty name selects the uniform
// default.
func New(name string) (Sampler, error) {
	switch name {
	case "", "uniform":
		return Uniform{}, nil
	case "normal":
		return NewNormal(0, 1), nil
	case "exponential":
		return NewExponential(1), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSampler, name)
	}
}

// Names lists the samplers New can resolve
func Names() []string {
	return []string{"uniform", "normal", "exponential"}
}
