// ABOUTME: Backup formats for journal entries: one JSON document or markdown files.
// ABOUTME: Markdown files carry YAML frontmatter with the day and original timestamp.

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harper/gratitude/internal/models"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into JSON exports.
const FormatVersion = "1.0"

var ErrNoDate = errors.New("markdown entry has no date")

type ExportEntry struct {
	Date       string    `json:"date" yaml:"date"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Characters int       `json:"characters" yaml:"characters"`
	Content    string    `json:"content" yaml:"-"`
}

type ExportData struct {
	ExportedAt time.Time     `json:"exported_at"`
	Version    string        `json:"version"`
	Entries    []ExportEntry `json:"entries"`
}

func toExport(e models.Entry, loc *time.Location) ExportEntry {
	return ExportEntry{
		Date:       e.Day(loc).String(),
		Timestamp:  e.Timestamp.In(loc),
		Characters: e.Length(),
		Content:    e.Content,
	}
}

// sorted returns entries oldest first without touching the input.
func sorted(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// JSON renders every entry, oldest first, as one indented document.
func JSON(entries []models.Entry, loc *time.Location, exportedAt time.Time) ([]byte, error) {
	data := ExportData{
		ExportedAt: exportedAt,
		Version:    FormatVersion,
		Entries:    []ExportEntry{},
	}
	for _, e := range sorted(entries) {
		data.Entries = append(data.Entries, toExport(e, loc))
	}
	return json.MarshalIndent(data, "", "  ")
}

// ParseJSON reads a JSON export back into entries.
// Records carrying only a date are placed at noon of that day in loc.
func ParseJSON(data []byte, loc *time.Location) ([]models.Entry, error) {
	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	entries := make([]models.Entry, 0, len(export.Entries))
	for i, ee := range export.Entries {
		ts := ee.Timestamp
		if ts.IsZero() {
			day, err := models.ParseDay(ee.Date)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i+1, ErrNoDate)
			}
			ts = day.Noon(loc)
		}
		entries = append(entries, models.NewEntry(ee.Content, ts))
	}
	return entries, nil
}

// MarkdownFile is one exported entry.
type MarkdownFile struct {
	Name string
	Data []byte
}

// Markdown renders each entry as YYYY-MM-DD.md with YAML frontmatter.
func Markdown(entries []models.Entry, loc *time.Location) ([]MarkdownFile, error) {
	files := make([]MarkdownFile, 0, len(entries))
	for _, e := range sorted(entries) {
		ee := toExport(e, loc)

		var sb strings.Builder
		sb.WriteString("---\n")
		frontmatter, err := yaml.Marshal(ee)
		if err != nil {
			return nil, err
		}
		sb.Write(frontmatter)
		sb.WriteString("---\n\n")
		sb.WriteString(e.Content)
		sb.WriteString("\n")

		files = append(files, MarkdownFile{Name: ee.Date + ".md", Data: []byte(sb.String())})
	}
	return files, nil
}

// ParseMarkdown reads one markdown entry. Without frontmatter the day comes from
// a YYYY-MM-DD file name and the entry is placed at noon in loc.
func ParseMarkdown(name string, data []byte, loc *time.Location) (models.Entry, error) {
	content := string(data)
	var ts time.Time
	var date string

	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) >= 3 {
			var frontmatter struct {
				Date      string    `yaml:"date"`
				Timestamp time.Time `yaml:"timestamp"`
			}
			if err := yaml.Unmarshal([]byte(parts[1]), &frontmatter); err == nil {
				ts = frontmatter.Timestamp
				date = frontmatter.Date
				content = parts[2]
			}
		}
	}

	if ts.IsZero() {
		if date == "" {
			date = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		}
		day, err := models.ParseDay(date)
		if err != nil {
			return models.Entry{}, ErrNoDate
		}
		ts = day.Noon(loc)
	}

	return models.NewEntry(strings.TrimSpace(content), ts), nil
}
