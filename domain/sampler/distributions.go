package sampler

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Non-uniform samplers are built by inverse-CDF transform of the
// worker's own uniform stream. Routing every draw through the stream's
// Float64 keeps the per-worker determinism guarantee that a sampler
// with its own internal source would break.

// Normal samples X ~ N(mu, sigma)
type Normal struct {
	dist distuv.Normal
}

// NewNormal creates a normal sampler with the given mean and stddev
func NewNormal(mu, sigma float64) Normal {
	return Normal{dist: distuv.Normal{Mu: mu, Sigma: sigma}}
}

func (n Normal) Name() string { return "normal" }

func (n Normal) Sample(rng *rand.Rand) float64 {
	return n.dist.Quantile(nonzero(rng.Float64()))
}

// Exponential samples X ~ Exp(rate)
type Exponential struct {
	dist distuv.Exponential
}

// NewExponential creates an exponential sampler with the given rate
func NewExponential(rate float64) Exponential {
	return Exponential{dist: distuv.Exponential{Rate: rate}}
}

func (e Exponential) Name() string { return "exponential" }

func (e Exponential) Sample(rng *rand.Rand) float64 {
	return e.dist.Quantile(rng.Float64())
}

// nonzero keeps quantile arguments inside (0,1); Quantile(0) is -Inf
// for unbounded-below distributions and every observation must be finite.
func nonzero(u float64) float64 {
	if u == 0 {
		return math.SmallestNonzeroFloat64
	}
	return u
}
