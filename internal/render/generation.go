package render

import (
	"fmt"
	"io"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

type Options struct {
	Precision int
	// Limit truncates tables past this many rows and columns; 0 shows all.
	Limit int
	Plot  bool
}

func DefaultOptions() Options {
	return Options{
		Precision: ranking.DefaultPrecision,
		Limit:     ranking.DisplayLimit,
	}
}

// Generation writes the comparison table, both metrics and, when present,
// the difference search artefacts of each ranking.
func Generation(w io.Writer, g *ranking.Generation, opts Options) {
	fmt.Fprintf(w, "Generation %s (size %d)\n", g.ID, g.Size)
	fmt.Fprintln(w, Table(ranking.ComparisonTable(g.Comparison, opts.Precision).Truncate(opts.Limit)))
	fmt.Fprintf(w, "Metric (values): %s\n", ranking.FormatValue(g.Comparison.ValueMetric, opts.Precision))
	fmt.Fprintf(w, "Metric (ranks):  %s\n", ranking.FormatValue(g.Comparison.RankMetric, opts.Precision))

	if g.R1Search != nil {
		DifferenceSearch(w, "R1", g.R1Search, opts)
	}
	if g.R2Search != nil {
		DifferenceSearch(w, "R2", g.R2Search, opts)
	}
}

func DifferenceSearch(w io.Writer, name string, res *ranking.DifferenceSearchResult, opts Options) {
	fmt.Fprintf(w, "\n%s difference search (p7=%s, q1=%s, max diff=%s)\n",
		name,
		ranking.FormatValue(res.Thresholds.P7, 2),
		ranking.FormatValue(res.Thresholds.Q1, 2),
		ranking.FormatValue(res.MaxDiff, opts.Precision),
	)

	sections := []struct {
		title string
		table ranking.Table
	}{
		{"differences", ranking.MatrixTable(res.Diff, opts.Precision)},
		{"percent of max difference", ranking.MatrixTable(res.Percent, opts.Precision)},
		{"advantages", ranking.MatrixTable(res.Advantage, opts.Precision)},
		{"geometric means", ranking.VectorTable([]string{"geo mean", "geo mean normed"}, opts.Precision, res.GeoMean, res.GeoMeanNormed)},
	}
	for _, s := range sections {
		fmt.Fprintf(w, "%s %s\n", name, s.title)
		fmt.Fprintln(w, Table(s.table.Truncate(opts.Limit)))
	}

	if opts.Plot {
		Bars(w, name+" geometric mean weights", nil, res.GeoMeanNormed)
	}
}
