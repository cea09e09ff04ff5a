package ranking

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type CompareOptions struct {
	RankMethod      RankMethod
	HalveRankMetric bool
}

func checkSameLength(a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return invalidf("rankings must not be empty")
	}
	if len(a) != len(b) {
		return invalidf("rankings have different lengths: %d and %d", len(a), len(b))
	}
	return nil
}

// ValueMetric is the total absolute discrepancy of two normalized rankings.
func ValueMetric(r1Normed, r2Normed []float64) (float64, error) {
	if err := checkSameLength(r1Normed, r2Normed); err != nil {
		return 0, err
	}
	return floats.Distance(r1Normed, r2Normed, 1), nil
}

// RankMetric is the total absolute discrepancy of two rank vectors.
func RankMetric(ranks1, ranks2 []float64) (float64, error) {
	if err := checkSameLength(ranks1, ranks2); err != nil {
		return 0, err
	}
	return floats.Distance(ranks1, ranks2, 1), nil
}

func absDiff(a, b []float64) []float64 {
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	for i, d := range diff {
		diff[i] = math.Abs(d)
	}
	return diff
}

// Compare normalizes and ranks both raw rankings and computes the per
// alternative differences together with both scalar metrics.
func Compare(r1, r2 []float64, opts CompareOptions) (*Comparison, error) {
	if err := checkSameLength(r1, r2); err != nil {
		return nil, err
	}
	if opts.RankMethod == "" {
		opts.RankMethod = RankAverage
	}

	r1Normed := Normalize(r1)
	r2Normed := Normalize(r2)

	r1Ranks, err := Rank(r1Normed, opts.RankMethod)
	if err != nil {
		return nil, err
	}
	r2Ranks, err := Rank(r2Normed, opts.RankMethod)
	if err != nil {
		return nil, err
	}

	valueMetric, err := ValueMetric(r1Normed, r2Normed)
	if err != nil {
		return nil, err
	}
	rankMetric, err := RankMetric(r1Ranks, r2Ranks)
	if err != nil {
		return nil, err
	}
	if opts.HalveRankMetric {
		rankMetric /= 2
	}

	return &Comparison{
		R1:          append([]float64(nil), r1...),
		R2:          append([]float64(nil), r2...),
		R1Normed:    r1Normed,
		R2Normed:    r2Normed,
		Diff:        absDiff(r1Normed, r2Normed),
		R1Ranks:     r1Ranks,
		R2Ranks:     r2Ranks,
		RankDiff:    absDiff(r1Ranks, r2Ranks),
		RankMethod:  opts.RankMethod,
		ValueMetric: valueMetric,
		RankMetric:  rankMetric,
	}, nil
}
