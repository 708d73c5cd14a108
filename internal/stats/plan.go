// ABOUTME: Two-week gratitude programme: which task belongs to which day.
// ABOUTME: Day 1 and the final day are survey check-ins, the rest are diary days.

package stats

import (
	"fmt"

	"github.com/harper/gratitude/internal/models"
)

// ProgramLength is the number of days in the programme.
const ProgramLength = 14

type Task int

const (
	TaskDiary Task = iota
	TaskBaselineSurvey
	TaskFollowUpSurvey
)

func (t Task) String() string {
	switch t {
	case TaskBaselineSurvey:
		return "baseline survey"
	case TaskFollowUpSurvey:
		return "follow-up survey"
	default:
		return "diary entry"
	}
}

// Message is the status line shown for a programme day.
func (t Task) Message(day int) string {
	switch t {
	case TaskBaselineSurvey:
		return "Today, check your starting point with the engagement survey."
	case TaskFollowUpSurvey:
		return "Today, check how you feel after the gratitude diary with the survey."
	default:
		return fmt.Sprintf("Day %d of your gratitude diary.", day)
	}
}

// ProgramStart is the earliest entry day, or today when there are no entries.
func (c *Calculator) ProgramStart(entries []models.Entry, today models.Day) models.Day {
	days := c.days(entries)
	if len(days) == 0 || days[0].After(today) {
		return today
	}
	return days[0]
}

// ProgramDay returns the 1-based programme day of today for a programme started on start.
func ProgramDay(start, today models.Day) int {
	return start.DaysUntil(today) + 1
}

// TaskFor returns the task scheduled on a programme day.
func TaskFor(day int) Task {
	switch day {
	case 1:
		return TaskBaselineSurvey
	case ProgramLength:
		return TaskFollowUpSurvey
	default:
		return TaskDiary
	}
}
