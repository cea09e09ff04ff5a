// Package render draws ranking tables and plots on a terminal.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Table renders t with its index as the first column.
func Table(t ranking.Table) string {
	headers := append([]string{""}, t.Columns...)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		label := ""
		if i < len(t.Index) {
			label = t.Index[i]
		}
		rows[i] = append([]string{label}, row...)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
