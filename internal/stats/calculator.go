// ABOUTME: Calculator derives streaks, windows, and calendar data from an entry collection.
// ABOUTME: All methods are pure; "now" is always passed in by the caller.

package stats

import (
	"sort"
	"time"

	"github.com/harper/gratitude/internal/models"
)

// Calculator compares entries by calendar day in a fixed location.
type Calculator struct {
	loc *time.Location
}

// NewCalculator returns a Calculator for loc (nil means time.Local).
func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{loc: loc}
}

func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Today returns the calendar day of now.
func (c *Calculator) Today(now time.Time) models.Day {
	return models.DayOf(now, c.loc)
}

// days returns the distinct entry days in ascending order.
func (c *Calculator) days(entries []models.Entry) []models.Day {
	seen := make(map[models.Day]struct{}, len(entries))
	days := make([]models.Day, 0, len(entries))
	for _, e := range entries {
		d := e.Day(c.loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// Recent returns up to n entries, newest first.
func Recent(entries []models.Entry, n int) []models.Entry {
	sorted := make([]models.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
