// ABOUTME: Edit window policy for interactive writes.
// ABOUTME: Only today and yesterday may be written; imports bypass this check.

package diary

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/harper/gratitude/internal/models"
)

var (
	ErrNotEditable  = errors.New("only today's and yesterday's entries can be edited")
	ErrContentEmpty = errors.New("entry content cannot be empty")
)

// Editable reports whether day may be written when the current day is today.
func Editable(day, today models.Day) bool {
	return day == today || day == today.AddDays(-1)
}

// CheckEditable returns ErrNotEditable when day is outside the edit window.
func CheckEditable(day, today models.Day) error {
	if !Editable(day, today) {
		return ErrNotEditable
	}
	return nil
}

// ValidateContent rejects blank content and content over the length limit.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentEmpty
	}
	if utf8.RuneCountInString(content) > models.MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}
