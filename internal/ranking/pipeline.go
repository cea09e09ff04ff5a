package ranking

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankgen/internal/utils/logger"
)

// Generator runs one "generate" action: realise both rankings, compare them
// and optionally run the difference search. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	sampler *Sampler

	RankMethod      RankMethod
	SamplingMethod  SamplingMethod
	HalveRankMetric bool
	MaxSize         int

	rng *rand.Rand
}

type GeneratorOption func(*Generator)

func WithSeed(seed uint64) GeneratorOption {
	return func(g *Generator) {
		g.rng = NewSeededRand(seed)
	}
}

func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = rng
	}
}

func WithRankMethod(method RankMethod) GeneratorOption {
	return func(g *Generator) {
		g.RankMethod = method
	}
}

func WithSamplingMethod(method SamplingMethod) GeneratorOption {
	return func(g *Generator) {
		g.SamplingMethod = method
	}
}

func WithHalveRankMetric(halve bool) GeneratorOption {
	return func(g *Generator) {
		g.HalveRankMetric = halve
	}
}

func WithMaxSize(maxSize int) GeneratorOption {
	return func(g *Generator) {
		g.MaxSize = maxSize
	}
}

func NewGenerator(opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{
		RankMethod:     RankAverage,
		SamplingMethod: SamplingBranch,
		MaxSize:        DefaultMaxSize,
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := ValidateRankMethod(g.RankMethod); err != nil {
		return nil, err
	}
	if err := ValidateSamplingMethod(g.SamplingMethod); err != nil {
		return nil, err
	}
	if g.MaxSize < MinSize || g.MaxSize > LargeMaxSize {
		return nil, invalidf("max size must be within [%d, %d], got %d", MinSize, LargeMaxSize, g.MaxSize)
	}

	g.sampler = NewSampler(g.rng, g.SamplingMethod)

	return g, nil
}

func isManual(req GenerateRequest) bool {
	return req.R1.Mode == SourceManual || req.R2.Mode == SourceManual
}

// ValidateSize checks size against the generator limits and the manual mode cap.
func (g *Generator) ValidateSize(req GenerateRequest) error {
	if isManual(req) && req.Size > MaxManualSize {
		return invalidf("In manual mode, size can't be > %d", MaxManualSize)
	}
	if req.Size < MinSize {
		return invalidf("Size should be > %d", MinSize-1)
	}
	if req.Size > g.MaxSize {
		return invalidf("size can't be > %d", g.MaxSize)
	}
	return nil
}

func manualValues(values []float64, size int) ([]float64, error) {
	if len(values) < size {
		return nil, invalidf("manual ranking has %d values, need %d", len(values), size)
	}
	out := make([]float64, size)
	for i, v := range values[:size] {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, invalidf("manual value a%d must be within [0, 1], got %v", i, v)
		}
		out[i] = v
	}
	return out, nil
}

// realise must be called with g.mu held.
func (g *Generator) realise(src Source, size int) ([]float64, error) {
	switch src.Mode {
	case SourceManual:
		return manualValues(src.Values, size)
	case SourceTriangular, "":
		p := src.Triangular
		return g.sampler.Triangular(p.A, p.B, p.M, size)
	}
	return nil, invalidf("unknown source mode %q", src.Mode)
}

// Generate recomputes every artefact for req. On error nothing is returned.
func (g *Generator) Generate(req GenerateRequest) (*Generation, error) {
	startTime := time.Now()

	if err := g.ValidateSize(req); err != nil {
		return nil, err
	}
	if req.Thresholds != nil {
		if err := ValidateThresholds(*req.Thresholds); err != nil {
			return nil, err
		}
		if err := ValidateSearchSize(req.Size); err != nil {
			return nil, err
		}
	}

	g.mu.Lock()
	r1, err := g.realise(req.R1, req.Size)
	if err != nil {
		g.mu.Unlock()
		log.Debug().Err(err).Msg("failed to realise R1")
		return nil, err
	}
	r2, err := g.realise(req.R2, req.Size)
	g.mu.Unlock()
	if err != nil {
		log.Debug().Err(err).Msg("failed to realise R2")
		return nil, err
	}

	comparison, err := Compare(r1, r2, CompareOptions{
		RankMethod:      g.RankMethod,
		HalveRankMetric: g.HalveRankMetric,
	})
	if err != nil {
		return nil, err
	}

	generation := &Generation{
		ID:         uuid.New(),
		CreatedAt:  startTime,
		Size:       req.Size,
		Comparison: comparison,
	}

	if req.Thresholds != nil {
		generation.R1Search, generation.R2Search, err = DifferenceSearchPair(comparison.R1Normed, comparison.R2Normed, *req.Thresholds)
		if err != nil {
			return nil, err
		}
	}

	logger.Sugar().Infow("Generated rankings",
		"id", generation.ID.String(),
		"size", req.Size,
		"rankMethod", g.RankMethod,
		"valueMetric", comparison.ValueMetric,
		"rankMetric", comparison.RankMetric,
	)
	log.Debug().
		Str("id", generation.ID.String()).
		Bool("differenceSearch", req.Thresholds != nil).
		Dur("elapsed", time.Since(startTime)).
		Msg("generation complete")

	return generation, nil
}
