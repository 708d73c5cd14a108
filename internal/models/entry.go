// ABOUTME: Entry model representing one day's gratitude diary record.
// ABOUTME: The timestamp doubles as the day key and the sort key.

package models

import (
	"time"
	"unicode/utf8"
)

// MaxContentLength is the per-entry character cap.
const MaxContentLength = 10000

type Entry struct {
	Content   string
	Timestamp time.Time
}

func NewEntry(content string, timestamp time.Time) Entry {
	return Entry{
		Content:   content,
		Timestamp: timestamp,
	}
}

// Day returns the calendar day of the entry in loc.
func (e Entry) Day(loc *time.Location) Day {
	return DayOf(e.Timestamp, loc)
}

// Length returns the content length in characters.
func (e Entry) Length() int {
	return utf8.RuneCountInString(e.Content)
}

// Preview returns at most n characters of content, with an ellipsis when cut.
func (e Entry) Preview(n int) string {
	if utf8.RuneCountInString(e.Content) <= n {
		return e.Content
	}
	return string([]rune(e.Content)[:n]) + "..."
}
