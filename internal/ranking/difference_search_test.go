package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestAdvantage(t *testing.T) {
	th := Thresholds{P7: 0.1, Q1: 0.1}

	cases := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{1, 7},
		{0.95, 7},
		{0.9, 3},
		{0.5, 3},
		{0.1, 3},
		{0.05, 1},
		{-1, 1.0 / 7},
		{-0.5, 1.0 / 3},
		{-0.05, 1},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, Advantage(tc.x, th), 1e-12, "x=%v", tc.x)
	}
}

func TestPercentGuardsZeroMax(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0.3, 0))
	assert.Equal(t, 0.5, Percent(0.15, 0.3))
}

func TestDifferenceSearch(t *testing.T) {
	r := []float64{0.2, 0.3, 0.5}
	res, err := DifferenceSearch(r, Thresholds{P7: 0.1, Q1: 0.1})
	require.NoError(t, err)

	assert.InDelta(t, 0.3, res.MaxDiff, 1e-12)

	n := len(r)
	for i := range n {
		assert.Equal(t, 0.0, res.Diff.At(i, i))
		assert.Equal(t, 1.0, res.Advantage.At(i, i))
		for j := range n {
			assert.InDelta(t, -res.Diff.At(j, i), res.Diff.At(i, j), 1e-12)
			if i != j {
				assert.InDelta(t, 1/res.Advantage.At(j, i), res.Advantage.At(i, j), 1e-12)
			}
		}
	}

	// 0.5-0.2 is the largest difference, so it maps to 100% and the strong advantage
	assert.InDelta(t, 1.0, res.Percent.At(2, 0), 1e-12)
	assert.Equal(t, 7.0, res.Advantage.At(2, 0))
	assert.InDelta(t, 1.0/7, res.Advantage.At(0, 2), 1e-12)
	// 0.3-0.2 is a third of the largest difference
	assert.InDelta(t, 1.0/3, res.Percent.At(1, 0), 1e-12)
	assert.Equal(t, 3.0, res.Advantage.At(1, 0))

	// row 2: 7, 3, 1 -> geometric mean 21^(1/3)
	assert.InDelta(t, math.Cbrt(21), res.GeoMean[2], 1e-9)
	assert.InDelta(t, 1.0, floats.Sum(res.GeoMeanNormed), 1e-12)
	assert.Greater(t, res.GeoMeanNormed[2], res.GeoMeanNormed[1])
	assert.Greater(t, res.GeoMeanNormed[1], res.GeoMeanNormed[0])
}

func TestDifferenceSearchAllEqual(t *testing.T) {
	res, err := DifferenceSearch([]float64{0.25, 0.25, 0.25, 0.25}, DefaultThresholds())
	require.NoError(t, err)

	assert.Zero(t, res.MaxDiff)
	for i := range 4 {
		for j := range 4 {
			assert.Zero(t, res.Percent.At(i, j))
			assert.Equal(t, 1.0, res.Advantage.At(i, j))
		}
	}
	assert.InDeltaSlice(t, []float64{1, 1, 1, 1}, res.GeoMean, 1e-12)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, res.GeoMeanNormed, 1e-12)
}

func TestDifferenceSearchInvalidThresholds(t *testing.T) {
	r := []float64{0.5, 0.5}

	cases := []Thresholds{
		{P7: 0.6, Q1: 0.5},
		{P7: -0.1, Q1: 0.1},
		{P7: 0.1, Q1: 1.2},
		{P7: math.NaN(), Q1: 0.1},
	}
	for _, th := range cases {
		_, err := DifferenceSearch(r, th)
		assert.ErrorIs(t, err, ErrInvalidParameter, "thresholds %+v", th)
	}

	_, err := DifferenceSearch(nil, DefaultThresholds())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDifferenceSearchSizeCap(t *testing.T) {
	_, err := DifferenceSearch(Normalize(make([]float64, SearchMaxSize)), DefaultThresholds())
	assert.NoError(t, err)

	_, err = DifferenceSearch(Normalize(make([]float64, SearchMaxSize+1)), DefaultThresholds())
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "difference search size")
}

func TestDifferenceSearchBoundaryThresholds(t *testing.T) {
	_, err := DifferenceSearch([]float64{0.1, 0.9}, Thresholds{P7: 0.55, Q1: 0.45})
	assert.NoError(t, err)
}

func TestDifferenceSearchPair(t *testing.T) {
	r1Search, r2Search, err := DifferenceSearchPair([]float64{0.2, 0.8}, []float64{0.6, 0.4}, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, 7.0, r1Search.Advantage.At(1, 0))
	assert.Equal(t, 7.0, r2Search.Advantage.At(0, 1))
}

func TestMatrixRows(t *testing.T) {
	rows := MatrixRows(DifferenceMatrix([]float64{1, 3}))
	assert.Equal(t, [][]float64{{0, -2}, {2, 0}}, rows)
}
