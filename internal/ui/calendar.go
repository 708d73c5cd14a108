// ABOUTME: Month calendar rendering with lipgloss.
// ABOUTME: Marks days with entries, today, and the days that may still be edited.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/stats"
)

// CalendarOptions styles each kind of calendar cell.
type CalendarOptions struct {
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	EditableStyle lipgloss.Style
	OutsideStyle  lipgloss.Style
	Language      string
}

func DefaultCalendarOptions() CalendarOptions {
	return CalendarOptions{
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		EntryStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("29")),
		TodayStyle:    lipgloss.NewStyle().Underline(true).Bold(true),
		EditableStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		OutsideStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

var weekdayNames = map[string][7]string{
	"english":  {"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	"japanese": {"日", "月", "火", "水", "木", "金", "土"},
	"chinese":  {"日", "一", "二", "三", "四", "五", "六"},
}

// WeekdayHeaders returns the seven column headings starting at weekStart.
func WeekdayHeaders(language string, weekStart time.Weekday) []string {
	names, ok := weekdayNames[language]
	if !ok {
		names = weekdayNames["english"]
	}
	out := make([]string, 7)
	for i := range out {
		out[i] = names[(int(weekStart)+i)%7]
	}
	return out
}

const cellWidth = 4

// RenderCalendar draws a month grid. today and editable days get their own styles.
func RenderCalendar(grid [][]stats.Cell, title string, today models.Day, editable func(models.Day) bool, opts CalendarOptions) string {
	var sb strings.Builder
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right)

	sb.WriteString(opts.HeaderStyle.Render(title))
	sb.WriteString("\n")

	if len(grid) > 0 {
		var heads []string
		for _, h := range WeekdayHeaders(opts.Language, grid[0][0].Day.Weekday()) {
			heads = append(heads, cell.Render(opts.HeaderStyle.Render(h)))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, heads...))
		sb.WriteString("\n")
	}

	for _, week := range grid {
		var cols []string
		for _, c := range week {
			label := fmt.Sprintf("%d", c.Day.Day)
			style := opts.EmptyStyle
			switch {
			case !c.InMonth:
				style = opts.OutsideStyle
			case c.HasEntry:
				style = opts.EntryStyle
			case editable != nil && editable(c.Day):
				style = opts.EditableStyle
			}
			if c.Day == today {
				style = style.Inherit(opts.TodayStyle)
			}
			cols = append(cols, cell.Render(style.Render(label)))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		sb.WriteString("\n")
	}
	return sb.String()
}

// CalendarLegend explains the cell styles.
func CalendarLegend(opts CalendarOptions) string {
	return fmt.Sprintf("%s written  %s can still write  %s today\n",
		opts.EntryStyle.Render(" ■ "),
		opts.EditableStyle.Render("■"),
		opts.TodayStyle.Render("_"))
}
