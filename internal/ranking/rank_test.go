package ranking

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestRankAveraged(t *testing.T) {
	cases := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"distinct", []float64{3, 1, 2}, []float64{3, 1, 2}},
		{"leading tie", []float64{1, 1, 2}, []float64{1.5, 1.5, 3}},
		{"all equal", []float64{0.2, 0.2, 0.2, 0.2}, []float64{2.5, 2.5, 2.5, 2.5}},
		{"two blocks", []float64{5, 1, 5, 1, 3}, []float64{4.5, 1.5, 4.5, 1.5, 3}},
		{"single", []float64{9}, []float64{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RankAveraged(tc.in))
		})
	}
}

func TestRankAveragedPreservesRankSum(t *testing.T) {
	in := []float64{0.1, 0.4, 0.1, 0.3, 0.4, 0.4, 0.0}
	n := float64(len(in))
	assert.InDelta(t, n*(n+1)/2, floats.Sum(RankAveraged(in)), 1e-12)
}

func TestRankOrdinalPositions(t *testing.T) {
	assert.Equal(t, []float64{3, 1, 2}, RankOrdinalPositions([]float64{3, 1, 2}))
	// ties keep distinct ranks, earlier index first
	assert.Equal(t, []float64{1, 2, 3}, RankOrdinalPositions([]float64{1, 1, 2}))
	assert.Equal(t, []float64{3, 1, 4, 2}, RankOrdinalPositions([]float64{5, 1, 5, 1}))
}

func TestRankOrdinalIsPermutation(t *testing.T) {
	in := []float64{0.3, 0.3, 0.1, 0.9, 0.3, 0.0, 0.9}
	ranks := RankOrdinalPositions(in)
	sort.Float64s(ranks)
	for i, r := range ranks {
		assert.Equal(t, float64(i+1), r)
	}
}

func TestRankDispatch(t *testing.T) {
	in := []float64{1, 1, 2}

	avg, err := Rank(in, RankAverage)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 1.5, 3}, avg)

	ord, err := Rank(in, RankOrdinal)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, ord)

	_, err = Rank(in, RankMethod("dense"))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
