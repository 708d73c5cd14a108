// ABOUTME: Month grid layout for the calendar view.
// ABOUTME: Pads the month to whole weeks starting on the configured weekday.

package stats

import (
	"time"

	"github.com/harper/gratitude/internal/models"
)

// Cell is one day in a month grid.
type Cell struct {
	Day      models.Day
	InMonth  bool
	HasEntry bool
}

// MonthGrid returns the weeks covering year/month, each exactly seven cells,
// with the first column on weekStart.
func (c *Calculator) MonthGrid(entries []models.Entry, year int, month time.Month, weekStart time.Weekday) [][]Cell {
	has := make(map[models.Day]bool, len(entries))
	for _, e := range entries {
		has[e.Day(c.loc)] = true
	}

	first := models.Day{Year: year, Month: month, Day: 1}
	last := first.AddDays(daysIn(year, month) - 1)

	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	start := first.AddDays(-lead)
	trail := (int(weekStart) + 6 - int(last.Weekday()) + 7) % 7
	end := last.AddDays(trail)

	var weeks [][]Cell
	for d := start; !d.After(end); d = d.AddDays(7) {
		week := make([]Cell, 7)
		for i := range week {
			day := d.AddDays(i)
			week[i] = Cell{
				Day:      day,
				InMonth:  day.Month == month && day.Year == year,
				HasEntry: has[day],
			}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}
