// ABOUTME: MCP tools for writing and reading gratitude entries.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/gratitude/internal/diary"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/settings"
	"github.com/harper/gratitude/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	// write_entry
	s.server.AddTool(&mcp.Tool{
		Name:        "write_entry",
		Description: "Write today's (or yesterday's) gratitude entry. Replaces any entry already written that day.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"content": {"type": "string", "description": "What you are grateful for (up to 10000 characters)"},
				"date": {"type": "string", "description": "Day to write (YYYY-MM-DD), today or yesterday; defaults to today"}
			},
			"required": ["content"]
		}`),
	}, s.handleWriteEntry)

	// get_entry
	s.server.AddTool(&mcp.Tool{
		Name:        "get_entry",
		Description: "Get the entry written on a day",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"date": {"type": "string", "description": "Day (YYYY-MM-DD); defaults to today"}
			}
		}`),
	}, s.handleGetEntry)

	// list_entries
	s.server.AddTool(&mcp.Tool{
		Name:        "list_entries",
		Description: "List recent entries, newest first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListEntries)

	// streak
	s.server.AddTool(&mcp.Tool{
		Name:        "streak",
		Description: "Current and longest streaks of consecutive writing days, with trophy milestones",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleStreak)

	// chart
	s.server.AddTool(&mcp.Tool{
		Name:        "chart",
		Description: "Characters written per day over a trailing window ending today",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {"type": "integer", "description": "Window length", "default": 14}
			}
		}`),
	}, s.handleChart)

	// settings
	s.server.AddTool(&mcp.Tool{
		Name:        "settings",
		Description: "Read preferences, or update them when any field is given",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"font_size": {"type": "string", "enum": ["small", "medium", "large"]},
				"calendar_start_day": {"type": "string", "enum": ["sunday", "monday"]},
				"language": {"type": "string", "enum": ["japanese", "english", "chinese"]}
			}
		}`),
	}, s.handleSettings)
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

// entryView is the JSON shape of an entry returned to agents.
type entryView struct {
	Date       string `json:"date"`
	Content    string `json:"content"`
	Characters int    `json:"characters"`
	WrittenAt  string `json:"written_at"`
}

func (s *Server) view(e models.Entry) entryView {
	loc := s.entries.Location()
	return entryView{
		Date:       e.Day(loc).String(),
		Content:    e.Content,
		Characters: e.Length(),
		WrittenAt:  e.Timestamp.In(loc).Format("2006-01-02T15:04:05Z07:00"),
	}
}

// dayArg parses an optional YYYY-MM-DD argument, defaulting to today.
func (s *Server) dayArg(raw string) (models.Day, error) {
	if strings.TrimSpace(raw) == "" {
		return s.calc.Today(s.now()), nil
	}
	return models.ParseDay(raw)
}

// Tool handlers.
func (s *Server) handleWriteEntry(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Content string `json:"content"`
		Date    string `json:"date"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	params.Content = strings.TrimSpace(params.Content)
	if err := diary.ValidateContent(params.Content); err != nil {
		return errorResult("%v", err), nil
	}

	now := s.now()
	today := s.calc.Today(now)
	day, err := s.dayArg(params.Date)
	if err != nil {
		return errorResult("invalid date %q: %v", params.Date, err), nil
	}
	if err := diary.CheckEditable(day, today); err != nil {
		return errorResult("%v", err), nil
	}

	ts := now
	if day != today {
		ts = day.Noon(s.entries.Location())
	}
	if err := s.entries.Upsert(models.NewEntry(params.Content, ts)); err != nil {
		s.logger.Error("write_entry failed", zap.Error(err))
		return errorResult("failed to save entry: %v", err), nil
	}

	return textResult(fmt.Sprintf("Saved entry for %s", day)), nil
}

func (s *Server) handleGetEntry(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	day, err := s.dayArg(params.Date)
	if err != nil {
		return errorResult("invalid date %q: %v", params.Date, err), nil
	}

	entry, err := s.entries.FindByDay(day)
	if errors.Is(err, diary.ErrEntryNotFound) {
		return errorResult("no entry for %s", day), nil
	}
	if err != nil {
		return errorResult("failed to get entry: %v", err), nil
	}

	return jsonResult(s.view(entry)), nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Limit int `json:"limit"`
	}
	params.Limit = 20 // default
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	entries, err := s.entries.All()
	if err != nil {
		return errorResult("failed to list entries: %v", err), nil
	}

	recent := stats.Recent(entries, params.Limit)
	views := make([]entryView, len(recent))
	for i, e := range recent {
		views[i] = s.view(e)
	}
	return jsonResult(views), nil
}

func (s *Server) handleStreak(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.entries.All()
	if err != nil {
		return errorResult("failed to read entries: %v", err), nil
	}

	current := s.calc.CurrentStreak(entries, s.now())
	longest := s.calc.MaxStreak(entries)
	return jsonResult(struct {
		Current    int              `json:"current"`
		Longest    int              `json:"longest"`
		Entries    int              `json:"entries"`
		Milestones stats.Milestones `json:"milestones"`
	}{
		Current:    current,
		Longest:    longest,
		Entries:    len(entries),
		Milestones: stats.MilestonesFor(longest),
	}), nil
}

func (s *Server) handleChart(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Days int `json:"days"`
	}
	params.Days = stats.DefaultWindowDays
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}
	if params.Days < 1 || params.Days > 366 {
		return errorResult("days must be between 1 and 366"), nil
	}

	entries, err := s.entries.All()
	if err != nil {
		return errorResult("failed to read entries: %v", err), nil
	}
	return jsonResult(s.calc.TrailingWindow(entries, params.Days, s.now())), nil
}

// settingsView never exposes the stored passcode hash.
type settingsView struct {
	FontSize         settings.FontSize `json:"font_size"`
	CalendarStartDay settings.StartDay `json:"calendar_start_day"`
	Language         settings.Language `json:"language"`
	HasPasscode      bool              `json:"has_passcode"`
}

func (s *Server) handleSettings(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		FontSize         string `json:"font_size"`
		CalendarStartDay string `json:"calendar_start_day"`
		Language         string `json:"language"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	current, err := s.settings.Load()
	if err != nil {
		return errorResult("failed to load settings: %v", err), nil
	}

	changed := false
	if params.FontSize != "" {
		current.FontSize = settings.FontSize(params.FontSize)
		changed = true
	}
	if params.CalendarStartDay != "" {
		current.CalendarStartDay = settings.StartDay(params.CalendarStartDay)
		changed = true
	}
	if params.Language != "" {
		current.Language = settings.Language(params.Language)
		changed = true
	}
	if changed {
		if err := s.settings.Save(current); err != nil {
			return errorResult("failed to save settings: %v", err), nil
		}
	}

	return jsonResult(settingsView{
		FontSize:         current.FontSize,
		CalendarStartDay: current.CalendarStartDay,
		Language:         current.Language,
		HasPasscode:      current.HasPasscode(),
	}), nil
}
