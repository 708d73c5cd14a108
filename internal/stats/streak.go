// ABOUTME: Consecutive-day streak computation and milestone flags.
// ABOUTME: A streak stays alive while the latest entry is today or yesterday.

package stats

import (
	"time"

	"github.com/harper/gratitude/internal/models"
)

// Milestones are the trophy thresholds reached by a streak.
type Milestones struct {
	ReachedThree bool `json:"reached_three"`
	ReachedSeven bool `json:"reached_seven"`
	ReachedTen   bool `json:"reached_ten"`
}

// MilestonesFor returns the milestone flags for a streak length.
func MilestonesFor(streak int) Milestones {
	return Milestones{
		ReachedThree: streak >= 3,
		ReachedSeven: streak >= 7,
		ReachedTen:   streak >= 10,
	}
}

// Thresholds returns the milestone day counts with their reached flags, ascending.
func (m Milestones) Thresholds() []Threshold {
	return []Threshold{
		{Days: 3, Reached: m.ReachedThree},
		{Days: 7, Reached: m.ReachedSeven},
		{Days: 10, Reached: m.ReachedTen},
	}
}

type Threshold struct {
	Days    int
	Reached bool
}

// CurrentStreak counts consecutive days ending at asOf's day or the day before it.
// Entries dated after asOf are ignored.
func (c *Calculator) CurrentStreak(entries []models.Entry, asOf time.Time) int {
	today := models.DayOf(asOf, c.loc)
	days := c.days(entries)

	// Walk from the newest day that is not in the future.
	i := len(days) - 1
	for i >= 0 && days[i].After(today) {
		i--
	}
	if i < 0 {
		return 0
	}
	if days[i] != today && days[i] != today.AddDays(-1) {
		return 0
	}

	streak := 1
	for ; i > 0; i-- {
		if days[i-1] != days[i].AddDays(-1) {
			break
		}
		streak++
	}
	return streak
}

// MaxStreak returns the longest run of consecutive days anywhere in entries.
func (c *Calculator) MaxStreak(entries []models.Entry) int {
	days := c.days(entries)

	best, run := 0, 0
	for i, d := range days {
		if i > 0 && d == days[i-1].AddDays(1) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
