// ABOUTME: Tests for JSON and markdown export formats.
// ABOUTME: Verifies round trips and date recovery from file names.

package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harper/gratitude/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokyo = time.FixedZone("JST", 9*60*60)

func sample() []models.Entry {
	return []models.Entry{
		models.NewEntry("second day", time.Date(2026, 3, 2, 22, 0, 0, 0, tokyo)),
		models.NewEntry("first day\n\nwith a paragraph", time.Date(2026, 3, 1, 8, 30, 0, 0, tokyo)),
	}
}

func TestJSONRoundTrip(t *testing.T) {
	exportedAt := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	data, err := JSON(sample(), tokyo, exportedAt)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.0"`)
	assert.Less(t, strings.Index(string(data), "2026-03-01"), strings.Index(string(data), "2026-03-02"))

	entries, err := ParseJSON(data, tokyo)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first day\n\nwith a paragraph", entries[0].Content)
	assert.True(t, entries[0].Timestamp.Equal(time.Date(2026, 3, 1, 8, 30, 0, 0, tokyo)))
}

func TestJSONEmpty(t *testing.T) {
	data, err := JSON(nil, time.UTC, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries": []`)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON([]byte("[1,2"), time.UTC)
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"entries":[{"content":"x"}]}`), time.UTC)
	assert.True(t, errors.Is(err, ErrNoDate))
}

func TestParseJSONDateOnlyUsesZone(t *testing.T) {
	// UTC+14: noon there is still the previous day in UTC and most local zones.
	kiritimati := time.FixedZone("LINT", 14*60*60)
	data := []byte(`{"entries":[{"date":"2024-03-05","content":"hi"}]}`)

	for _, loc := range []*time.Location{kiritimati, tokyo, time.FixedZone("HST", -10*60*60)} {
		entries, err := ParseJSON(data, loc)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "2024-03-05", entries[0].Day(loc).String(), loc.String())
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	files, err := Markdown(sample(), tokyo)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "2026-03-01.md", files[0].Name)
	assert.True(t, strings.HasPrefix(string(files[0].Data), "---\n"))
	assert.Contains(t, string(files[0].Data), "characters: 27")

	e, err := ParseMarkdown(files[1].Name, files[1].Data, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "second day", e.Content)
	assert.Equal(t, models.Day{Year: 2026, Month: time.March, Day: 2}, e.Day(tokyo))
}

func TestParseMarkdownWithoutFrontmatter(t *testing.T) {
	e, err := ParseMarkdown("/tmp/backup/2026-02-14.md", []byte("  roses  \n"), tokyo)
	require.NoError(t, err)
	assert.Equal(t, "roses", e.Content)
	assert.Equal(t, models.Day{Year: 2026, Month: time.February, Day: 14}, e.Day(tokyo))
	assert.Equal(t, 12, e.Timestamp.In(tokyo).Hour())

	_, err = ParseMarkdown("notes.md", []byte("no date here"), tokyo)
	assert.ErrorIs(t, err, ErrNoDate)
}
