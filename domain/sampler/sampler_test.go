package sampler

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gomonte/domain/core"
)

func sampleMean(t *testing.T, s Sampler, seed int64, n int) float64 {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	sum := 0.0
	for i := 0; i < n; i++ {
		x := s.Sample(rng)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("%s produced non-finite observation %v", s.Name(), x)
		}
		sum += x
	}
	return sum / float64(n)
}

func TestUniform_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := Uniform{}
	for i := 0; i < 10_000; i++ {
		x := s.Sample(rng)
		if x < 0 || x >= 1 {
			t.Fatalf("uniform draw out of range: %v", x)
		}
	}
}

func TestSamplers_MeanSanity(t *testing.T) {
	tests := []struct {
		name    string
		sampler Sampler
		want    float64
		tol     float64
	}{
		{"uniform", Uniform{}, 0.5, 0.01},
		{"standard normal", NewNormal(0, 1), 0.0, 0.02},
		{"shifted normal", NewNormal(3, 0.5), 3.0, 0.02},
		{"unit exponential", NewExponential(1), 1.0, 0.03},
		{"fast exponential", NewExponential(4), 0.25, 0.01},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sampleMean(t, tc.sampler, 7, 100_000)
			if math.Abs(got-tc.want) > tc.tol {
				t.Errorf("sample mean = %v, want %v +/- %v", got, tc.want, tc.tol)
			}
		})
	}
}

func TestSamplers_DeterministicPerSeed(t *testing.T) {
	for _, s := range []Sampler{Uniform{}, NewNormal(0, 1), NewExponential(1)} {
		a := rand.New(rand.NewSource(11))
		b := rand.New(rand.NewSource(11))
		for i := 0; i < 100; i++ {
			if s.Sample(a) != s.Sample(b) {
				t.Errorf("%s is not deterministic for a fixed seed", s.Name())
				break
			}
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range append(Names(), "") {
		s, err := New(name)
		if err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
			continue
		}
		if name != "" && s.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, s.Name())
		}
	}

	if _, err := New("cauchy"); !errors.Is(err, core.ErrUnknownSampler) {
		t.Errorf("New with unknown name: got %v, want ErrUnknownSampler", err)
	}
}
