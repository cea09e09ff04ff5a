package ranking

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

func ValidateRankMethod(method RankMethod) error {
	switch method {
	case RankAverage, RankOrdinal:
		return nil
	}
	return invalidf("unknown rank method %q", method)
}

// Rank dispatches to the ranking variant named by method.
func Rank(values []float64, method RankMethod) ([]float64, error) {
	switch method {
	case RankAverage:
		return RankAveraged(values), nil
	case RankOrdinal:
		return RankOrdinalPositions(values), nil
	}
	return nil, ValidateRankMethod(method)
}

// RankAveraged assigns 1-based ascending ranks. Equal values share the mean
// rank of their block, so the rank sum matches a tie-free permutation.
func RankAveraged(values []float64) []float64 {
	n := len(values)
	ranks := make([]float64, n)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] < values[order[j]]
	})

	rank := 1.0
	for i := 0; i < n; {
		j := i
		for j < n-1 && values[order[j]] == values[order[j+1]] {
			j++
		}
		block := j - i + 1

		for k := 0; k < block; k++ {
			ranks[order[i+k]] = rank + float64(block-1)*0.5
		}

		rank += float64(block)
		i += block
	}

	return ranks
}

// RankOrdinalPositions ranks by double argsort: every element gets a distinct
// 1-based rank even when values are equal.
func RankOrdinalPositions(values []float64) []float64 {
	n := len(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	order := make([]int, n)
	floats.ArgsortStable(sorted, order)

	ranks := make([]float64, n)
	for position, idx := range order {
		ranks[idx] = float64(position + 1)
	}

	return ranks
}
