// ABOUTME: Horizontal bar chart of characters written per day.
// ABOUTME: Bars are scaled to the longest day in the window.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harper/gratitude/internal/stats"
)

// ChartWidth is the length of the longest bar in cells.
const ChartWidth = 30

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(7)
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// RenderChart draws one bar per point, oldest at the top.
func RenderChart(points []stats.Point) string {
	peak := 0
	for _, p := range points {
		if p.Count > peak {
			peak = p.Count
		}
	}

	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(labelStyle.Render(p.Label))
		sb.WriteString(" ")
		if n := barLength(p.Count, peak); n > 0 {
			sb.WriteString(barStyle.Render(strings.Repeat("█", n)))
			sb.WriteString(" ")
		}
		sb.WriteString(countStyle.Render(fmt.Sprintf("%d", p.Count)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// barLength scales count to ChartWidth; any non-zero count gets at least one cell.
func barLength(count, peak int) int {
	if count <= 0 || peak <= 0 {
		return 0
	}
	n := count * ChartWidth / peak
	if n == 0 {
		n = 1
	}
	return n
}
