package ranking

import (
	"fmt"
	"testing"
)

func BenchmarkGenerate(b *testing.B) {
	gen, err := NewGenerator(WithSeed(1))
	if err != nil {
		b.Fatal(err)
	}
	th := DefaultThresholds()

	sizes := []int{10, 100, 1000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("Size%d", size), func(b *testing.B) {
			req := GenerateRequest{
				Size:       size,
				R1:         TriangularSource(0, 10, 3),
				R2:         TriangularSource(0, 10, 7),
				Thresholds: &th,
			}

			b.ResetTimer()
			for b.Loop() {
				_, _ = gen.Generate(req)
			}
		})
	}
}

func BenchmarkRankAveraged(b *testing.B) {
	sampler := NewSampler(NewSeededRand(1), SamplingBranch)
	values, err := sampler.Triangular(0, 1, 0.5, 1000)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for b.Loop() {
		_ = RankAveraged(values)
	}
}
