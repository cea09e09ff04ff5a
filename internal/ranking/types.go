package ranking

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

type SourceMode string

const (
	SourceTriangular SourceMode = "triangular"
	SourceManual     SourceMode = "manual"
)

type RankMethod string

const (
	// RankAverage gives tied values the mean rank of their tied block.
	RankAverage RankMethod = "average"
	// RankOrdinal gives distinct ranks by double argsort, ties broken by position.
	RankOrdinal RankMethod = "ordinal"
)

type SamplingMethod string

const (
	SamplingBranch     SamplingMethod = "branch"
	SamplingInverseCDF SamplingMethod = "inverse-cdf"
)

type TriangularParams struct {
	A float64 `json:"a"` // lower limit
	B float64 `json:"b"` // upper limit
	M float64 `json:"m"` // mode
}

// Source describes how one ranking is produced for a generation.
type Source struct {
	Mode       SourceMode       `json:"mode"`
	Triangular TriangularParams `json:"triangular"`
	Values     []float64        `json:"values,omitempty"` // manual per-alternative values in [0,1]
}

func TriangularSource(a, b, m float64) Source {
	return Source{
		Mode:       SourceTriangular,
		Triangular: TriangularParams{A: a, B: b, M: m},
	}
}

func ManualSource(values ...float64) Source {
	return Source{
		Mode:   SourceManual,
		Values: values,
	}
}

// Thresholds are the quantile widths of the advantage scale.
type Thresholds struct {
	P7 float64 `json:"p7"` // upper quantile width, percentages above 1-P7 score 7
	Q1 float64 `json:"q1"` // lower quantile width, percentages below Q1 score 1
}

type GenerateRequest struct {
	Size       int         `json:"size"`
	R1         Source      `json:"r1"`
	R2         Source      `json:"r2"`
	Thresholds *Thresholds `json:"thresholds,omitempty"` // nil skips the difference search
}

type Comparison struct {
	R1         []float64 // 1D: raw R1 values
	R2         []float64 // 1D: raw R2 values
	R1Normed   []float64 // 1D: R1 scaled to sum 1
	R2Normed   []float64 // 1D: R2 scaled to sum 1
	Diff       []float64 // 1D: |R1Normed - R2Normed|
	R1Ranks    []float64 // 1D: ranks of R1Normed
	R2Ranks    []float64 // 1D: ranks of R2Normed
	RankDiff   []float64 // 1D: |R1Ranks - R2Ranks|
	RankMethod RankMethod

	ValueMetric float64
	RankMetric  float64
}

type DifferenceSearchResult struct {
	Diff          *mat.Dense // 2D: r[i] - r[j]
	Percent       *mat.Dense // 2D: Diff / MaxDiff
	Advantage     *mat.Dense // 2D: advantage scale of Percent
	MaxDiff       float64
	GeoMean       []float64 // 1D: row geometric means of Advantage
	GeoMeanNormed []float64 // 1D: GeoMean scaled to sum 1
	Thresholds    Thresholds
}

type Generation struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Size       int
	Comparison *Comparison
	R1Search   *DifferenceSearchResult
	R2Search   *DifferenceSearchResult
}
