package ranking

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"
)

const Ellipsis = "..."

// Table is the display form of a result: named columns, one row per
// alternative, values already formatted.
type Table struct {
	Columns []string   `json:"columns"`
	Index   []string   `json:"index"`
	Rows    [][]string `json:"rows"`
}

var ComparisonColumns = []string{
	"R1", "R2", "R1 normed", "R2 normed", "diff", "R1 rank", "R2 rank", "rank diff",
}

func FormatValue(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(int32(precision))
}

func AlternativeLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("a%d", i)
	}
	return labels
}

func ComparisonTable(c *Comparison, precision int) Table {
	columns := [][]float64{
		c.R1, c.R2, c.R1Normed, c.R2Normed, c.Diff, c.R1Ranks, c.R2Ranks, c.RankDiff,
	}

	n := len(c.R1)
	rows := make([][]string, n)
	for i := range n {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = FormatValue(col[i], precision)
		}
		rows[i] = row
	}

	return Table{
		Columns: append([]string(nil), ComparisonColumns...),
		Index:   AlternativeLabels(n),
		Rows:    rows,
	}
}

func MatrixTable(m mat.Matrix, precision int) Table {
	r, c := m.Dims()

	rows := make([][]string, r)
	for i := range r {
		row := make([]string, c)
		for j := range c {
			row[j] = FormatValue(m.At(i, j), precision)
		}
		rows[i] = row
	}

	return Table{
		Columns: AlternativeLabels(c),
		Index:   AlternativeLabels(r),
		Rows:    rows,
	}
}

// VectorTable builds a table with one column per named vector.
func VectorTable(names []string, precision int, vectors ...[]float64) Table {
	n := 0
	for _, v := range vectors {
		n = max(n, len(v))
	}

	rows := make([][]string, n)
	for i := range n {
		row := make([]string, len(vectors))
		for j, v := range vectors {
			if i < len(v) {
				row[j] = FormatValue(v[i], precision)
			}
		}
		rows[i] = row
	}

	return Table{
		Columns: append([]string(nil), names...),
		Index:   AlternativeLabels(n),
		Rows:    rows,
	}
}

// Truncate keeps the first limit rows and columns, marking the cut with an
// ellipsis row and column. limit <= 0 returns t unchanged.
func (t Table) Truncate(limit int) Table {
	if limit <= 0 {
		return t
	}

	cutCols := len(t.Columns) > limit
	cutRows := len(t.Rows) > limit

	out := Table{}

	if cutCols {
		out.Columns = append(append([]string(nil), t.Columns[:limit]...), Ellipsis)
	} else {
		out.Columns = append([]string(nil), t.Columns...)
	}

	keep := len(t.Rows)
	if cutRows {
		keep = limit
	}

	out.Rows = make([][]string, 0, keep+1)
	for _, row := range t.Rows[:keep] {
		if cutCols && len(row) > limit {
			out.Rows = append(out.Rows, append(append([]string(nil), row[:limit]...), Ellipsis))
		} else {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	out.Index = append([]string(nil), t.Index[:min(keep, len(t.Index))]...)

	if cutRows {
		filler := make([]string, len(out.Columns))
		for i := range filler {
			filler[i] = Ellipsis
		}
		out.Rows = append(out.Rows, filler)
		out.Index = append(out.Index, Ellipsis)
	}

	return out
}
