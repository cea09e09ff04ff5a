package ranking

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func ValidateThresholds(th Thresholds) error {
	if math.IsNaN(th.P7) || th.P7 < 0 || th.P7 > 1 {
		return invalidf("p7 must be within [0, 1], got %v", th.P7)
	}
	if math.IsNaN(th.Q1) || th.Q1 < 0 || th.Q1 > 1 {
		return invalidf("q1 must be within [0, 1], got %v", th.Q1)
	}
	// Thresholds arrive as two-decimal inputs, so allow rounding slack.
	if th.P7+th.Q1 > 1+1e-9 {
		return invalidf("p7 + q1 > 1")
	}
	return nil
}

// ValidateSearchSize rejects rankings too large for the difference search.
func ValidateSearchSize(n int) error {
	if n > SearchMaxSize {
		return invalidf("difference search size can't be > %d, got %d", SearchMaxSize, n)
	}
	return nil
}

// Percent returns x as a share of the largest difference, 0 when maxDiff is 0.
func Percent(x, maxDiff float64) float64 {
	if maxDiff == 0 {
		return 0
	}
	return x / maxDiff
}

func advantagePositive(x, maxThreshold, minThreshold float64) float64 {
	if x > maxThreshold {
		return AdvantageStrong
	}
	if x < minThreshold {
		return AdvantageEqual
	}
	return AdvantageModerate
}

// Advantage maps a percentage difference to the reciprocal 1/7..7 scale.
func Advantage(x float64, th Thresholds) float64 {
	if x == 0 {
		return AdvantageEqual
	}

	maxThreshold := 1 - th.P7

	if x > 0 {
		return advantagePositive(x, maxThreshold, th.Q1)
	}
	return 1 / advantagePositive(math.Abs(x), maxThreshold, th.Q1)
}

// DifferenceMatrix returns the antisymmetric matrix D[i][j] = r[i] - r[j].
func DifferenceMatrix(r []float64) *mat.Dense {
	n := len(r)
	diff := mat.NewDense(n, n, nil)
	for i := range n {
		for j := range n {
			diff.Set(i, j, r[i]-r[j])
		}
	}
	return diff
}

// RowGeometricMeans computes exp(mean(log(row))) for every row of m.
func RowGeometricMeans(m mat.Matrix) []float64 {
	rows, _ := m.Dims()

	means := make([]float64, rows)
	for rowIdx := range rows {
		means[rowIdx] = stat.GeometricMean(mat.Row(nil, rowIdx, m), nil)
	}

	return means
}

// DifferenceSearch runs the pairwise comparison of one normalized ranking and
// derives the geometric-mean re-ranking from its advantage matrix.
func DifferenceSearch(r []float64, th Thresholds) (*DifferenceSearchResult, error) {
	if len(r) == 0 {
		return nil, invalidf("ranking must not be empty")
	}
	if err := ValidateSearchSize(len(r)); err != nil {
		return nil, err
	}
	if err := ValidateThresholds(th); err != nil {
		return nil, err
	}

	n := len(r)

	diff := DifferenceMatrix(r)
	maxDiff := mat.Max(diff)

	percent := mat.NewDense(n, n, nil)
	percent.Apply(func(_, _ int, v float64) float64 {
		return Percent(v, maxDiff)
	}, diff)

	advantage := mat.NewDense(n, n, nil)
	advantage.Apply(func(_, _ int, v float64) float64 {
		return Advantage(v, th)
	}, percent)

	geoMean := RowGeometricMeans(advantage)

	return &DifferenceSearchResult{
		Diff:          diff,
		Percent:       percent,
		Advantage:     advantage,
		MaxDiff:       maxDiff,
		GeoMean:       geoMean,
		GeoMeanNormed: Normalize(geoMean),
		Thresholds:    th,
	}, nil
}

// DifferenceSearchPair runs DifferenceSearch on both normalized rankings.
func DifferenceSearchPair(r1Normed, r2Normed []float64, th Thresholds) (*DifferenceSearchResult, *DifferenceSearchResult, error) {
	r1Search, err := DifferenceSearch(r1Normed, th)
	if err != nil {
		return nil, nil, err
	}
	r2Search, err := DifferenceSearch(r2Normed, th)
	if err != nil {
		return nil, nil, err
	}
	return r1Search, r2Search, nil
}

// MatrixRows copies m into a row-major slice of rows.
func MatrixRows(m mat.Matrix) [][]float64 {
	if m == nil {
		return nil
	}
	rows, _ := m.Dims()
	out := make([][]float64, rows)
	for i := range rows {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
