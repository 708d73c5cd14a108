// ABOUTME: Tests for the Entry model.
// ABOUTME: Validates character counting and preview truncation.

package models

import (
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	ts := time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)
	e := NewEntry("thankful for coffee", ts)

	if e.Content != "thankful for coffee" {
		t.Errorf("unexpected content %q", e.Content)
	}
	if !e.Timestamp.Equal(ts) {
		t.Errorf("expected timestamp %v, got %v", ts, e.Timestamp)
	}
	if e.Day(time.UTC) != (Day{2024, time.January, 2}) {
		t.Errorf("unexpected day %s", e.Day(time.UTC))
	}
}

func TestEntryLengthCountsCharacters(t *testing.T) {
	e := NewEntry("ありがとう", time.Now())

	if e.Length() != 5 {
		t.Errorf("expected 5 characters, got %d", e.Length())
	}
}

func TestEntryPreview(t *testing.T) {
	e := NewEntry("abcdefghij", time.Now())

	if got := e.Preview(20); got != "abcdefghij" {
		t.Errorf("short content should be untouched, got %q", got)
	}
	if got := e.Preview(4); got != "abcd..." {
		t.Errorf("expected truncated preview, got %q", got)
	}
}
