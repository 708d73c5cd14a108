// ABOUTME: Trailing per-day window of entry lengths for the bar chart.
// ABOUTME: Always yields exactly the requested number of points, oldest first.

package stats

import (
	"time"

	"github.com/harper/gratitude/internal/models"
)

// LabelLayout formats point labels.
const LabelLayout = "Jan 02"

// DefaultWindowDays is the chart length used by the home screen.
const DefaultWindowDays = 14

// Point is one day of the trailing window.
type Point struct {
	Day   models.Day `json:"-"`
	Date  string     `json:"date"`
	Label string     `json:"label"`
	Count int        `json:"count"`
}

// TrailingWindow returns days points ending at referenceDate's day inclusive.
// Count is the entry length in characters for that day, or 0.
func (c *Calculator) TrailingWindow(entries []models.Entry, days int, referenceDate time.Time) []Point {
	if days <= 0 {
		return []Point{}
	}

	counts := make(map[models.Day]int, len(entries))
	for _, e := range entries {
		counts[e.Day(c.loc)] = e.Length()
	}

	end := models.DayOf(referenceDate, c.loc)
	points := make([]Point, days)
	for i := range points {
		d := end.AddDays(i - (days - 1))
		points[i] = Point{
			Day:   d,
			Date:  d.String(),
			Label: d.Format(LabelLayout),
			Count: counts[d],
		}
	}
	return points
}
