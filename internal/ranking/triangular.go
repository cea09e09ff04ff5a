package ranking

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws values from triangular distributions. It is not safe for
// concurrent use.
type Sampler struct {
	rng    *rand.Rand
	method SamplingMethod
}

// NewSampler returns a sampler reading from rng. A nil rng is replaced by a
// randomly seeded generator.
func NewSampler(rng *rand.Rand, method SamplingMethod) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if method == "" {
		method = SamplingBranch
	}

	return &Sampler{
		rng:    rng,
		method: method,
	}
}

func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func ValidateTriangular(a, b, m float64, size int) error {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(m) {
		return invalidf("triangular parameters must be numbers")
	}
	if a > b {
		return invalidf("a > b")
	}
	if m < a {
		return invalidf("m < a")
	}
	if m > b {
		return invalidf("m > b")
	}
	if size <= 0 {
		return invalidf("size <= 0")
	}
	return nil
}

func ValidateSamplingMethod(method SamplingMethod) error {
	switch method {
	case SamplingBranch, SamplingInverseCDF:
		return nil
	}
	return invalidf("unknown sampling method %q", method)
}

// Triangular draws size values with lower limit a, upper limit b and mode m.
func (s *Sampler) Triangular(a, b, m float64, size int) ([]float64, error) {
	if err := ValidateTriangular(a, b, m, size); err != nil {
		return nil, err
	}

	samples := make([]float64, size)

	if a == b {
		for i := range samples {
			samples[i] = a
		}
		return samples, nil
	}

	switch s.method {
	case SamplingInverseCDF:
		dist := distuv.NewTriangle(a, b, m, s.rng)
		for i := range samples {
			samples[i] = dist.Rand()
		}
	case SamplingBranch:
		p := (m - a) / (b - a)
		for i := range samples {
			if s.rng.Float64() < p {
				samples[i] = a + (m-a)*math.Sqrt(s.rng.Float64())
			} else {
				samples[i] = m + (b-m)*(1-math.Sqrt(s.rng.Float64()))
			}
		}
	default:
		return nil, ValidateSamplingMethod(s.method)
	}

	return samples, nil
}

func (s *Sampler) Method() SamplingMethod {
	return s.method
}
