package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const maxBarWidth = 50

// Bars writes a horizontal bar chart of values in ascending order.
func Bars(w io.Writer, title string, labels []string, values []float64) {
	if len(values) == 0 {
		return
	}

	type labelledValue struct {
		Label string
		Value float64
	}

	items := make([]labelledValue, len(values))
	for i := range values {
		label := fmt.Sprintf("a%d", i)
		if i < len(labels) {
			label = labels[i]
		}
		items[i] = labelledValue{Label: label, Value: values[i]}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value < items[j].Value
	})

	minValue := items[0].Value
	maxValue := items[len(items)-1].Value

	fmt.Fprintf(w, "\n%s (ascending):\n", title)
	fmt.Fprintln(w, "Alt      | Value    | Bar Chart")
	fmt.Fprintln(w, "---------|----------|"+strings.Repeat("-", maxBarWidth))

	for _, it := range items {
		var barWidth int
		if maxValue != minValue {
			barWidth = int((it.Value - minValue) / (maxValue - minValue) * float64(maxBarWidth))
		} else {
			barWidth = maxBarWidth / 2
		}

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Fprintf(w, "%8s | %.6f | %s\n", it.Label, it.Value, bar)
	}

	fmt.Fprintf(w, "\nScale: Min=%.6f, Max=%.6f\n", minValue, maxValue)
}
