// ABOUTME: Shared fixtures for statistics tests.
// ABOUTME: Builds entries on given calendar days in a fixed zone.

package stats

import (
	"strings"
	"time"

	"github.com/harper/gratitude/internal/models"
)

var loc = time.FixedZone("JST", 9*60*60)

func day(y int, m time.Month, d int) models.Day {
	return models.Day{Year: y, Month: m, Day: d}
}

// entryOn returns an entry at the given local time with content of length n.
func entryOn(d models.Day, hour, minute, n int) models.Entry {
	ts := time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
	return models.NewEntry(strings.Repeat("x", n), ts)
}

func entriesOn(days ...models.Day) []models.Entry {
	out := make([]models.Entry, len(days))
	for i, d := range days {
		out[i] = entryOn(d, 9, 0, 10)
	}
	return out
}
