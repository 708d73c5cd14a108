// ABOUTME: Tests for MCP tool, resource and prompt handlers.
// ABOUTME: Handlers are called directly against in-memory stores with a fixed clock.

package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harper/gratitude/internal/diary"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/settings"
	"github.com/harper/gratitude/internal/stats"
	"github.com/harper/gratitude/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 10, 21, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *diary.Store) {
	t.Helper()
	kv := storage.NewMemory()
	entries := diary.NewStore(kv, diary.WithLocation(time.UTC))
	prefs := settings.NewStore(kv)
	s := NewServer(entries, prefs, WithClock(func() time.Time { return fixedNow }))
	return s, entries
}

func callTool(t *testing.T, h func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error), args string) (*mcp.CallToolResult, string) {
	t.Helper()
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)}}
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestWriteAndGetEntry(t *testing.T) {
	s, entries := newTestServer(t)

	res, text := callTool(t, s.handleWriteEntry, `{"content":"warm soup"}`)
	assert.False(t, res.IsError, text)
	assert.Contains(t, text, "2026-03-10")

	all, err := entries.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Timestamp.Equal(fixedNow))

	res, text = callTool(t, s.handleGetEntry, `{}`)
	assert.False(t, res.IsError, text)
	var got entryView
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, "warm soup", got.Content)
	assert.Equal(t, 9, got.Characters)
}

func TestWriteEntryTrimsContent(t *testing.T) {
	s, entries := newTestServer(t)

	res, text := callTool(t, s.handleWriteEntry, `{"content":"\n  warm soup \t\n"}`)
	require.False(t, res.IsError, text)

	e, err := entries.FindByDay(models.Day{Year: 2026, Month: time.March, Day: 10})
	require.NoError(t, err)
	assert.Equal(t, "warm soup", e.Content)
	assert.Equal(t, 9, e.Length())
}

func TestWriteEntryYesterdayUsesNoon(t *testing.T) {
	s, entries := newTestServer(t)

	res, text := callTool(t, s.handleWriteEntry, `{"content":"late note","date":"2026-03-09"}`)
	require.False(t, res.IsError, text)

	e, err := entries.FindByDay(models.Day{Year: 2026, Month: time.March, Day: 9})
	require.NoError(t, err)
	assert.Equal(t, 12, e.Timestamp.Hour())
}

func TestWriteEntryRejections(t *testing.T) {
	s, entries := newTestServer(t)

	tests := []struct {
		name string
		args string
		want string
	}{
		{"empty", `{"content":"   "}`, "empty"},
		{"too old", `{"content":"x","date":"2026-03-01"}`, "edited"},
		{"future", `{"content":"x","date":"2026-03-11"}`, "edited"},
		{"bad date", `{"content":"x","date":"March 9"}`, "invalid date"},
		{"too long", `{"content":"` + strings.Repeat("a", models.MaxContentLength+1) + `"}`, "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, text := callTool(t, s.handleWriteEntry, tt.args)
			assert.True(t, res.IsError)
			assert.Contains(t, text, tt.want)
		})
	}

	all, err := entries.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetEntryMissing(t *testing.T) {
	s, _ := newTestServer(t)

	res, text := callTool(t, s.handleGetEntry, `{"date":"2026-01-01"}`)
	assert.True(t, res.IsError)
	assert.Contains(t, text, "no entry for 2026-01-01")
}

func seed(t *testing.T, entries *diary.Store, days ...int) {
	t.Helper()
	for _, d := range days {
		ts := time.Date(2026, time.March, d, 20, 0, 0, 0, time.UTC)
		require.NoError(t, entries.Upsert(models.NewEntry(strings.Repeat("x", d), ts)))
	}
}

func TestListEntries(t *testing.T) {
	s, entries := newTestServer(t)
	seed(t, entries, 1, 5, 3)

	_, text := callTool(t, s.handleListEntries, `{"limit":2}`)
	var got []entryView
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-05", got[0].Date)
	assert.Equal(t, "2026-03-03", got[1].Date)
}

func TestStreakTool(t *testing.T) {
	s, entries := newTestServer(t)
	seed(t, entries, 2, 3, 4, 8, 9)

	_, text := callTool(t, s.handleStreak, `{}`)
	var got struct {
		Current    int              `json:"current"`
		Longest    int              `json:"longest"`
		Entries    int              `json:"entries"`
		Milestones stats.Milestones `json:"milestones"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, 2, got.Current)
	assert.Equal(t, 3, got.Longest)
	assert.Equal(t, 5, got.Entries)
	assert.True(t, got.Milestones.ReachedThree)
	assert.False(t, got.Milestones.ReachedSeven)
}

func TestChartTool(t *testing.T) {
	s, entries := newTestServer(t)
	seed(t, entries, 10)

	_, text := callTool(t, s.handleChart, `{"days":3}`)
	var points []stats.Point
	require.NoError(t, json.Unmarshal([]byte(text), &points))
	require.Len(t, points, 3)
	assert.Equal(t, "2026-03-08", points[0].Date)
	assert.Equal(t, "Mar 10", points[2].Label)
	assert.Equal(t, 10, points[2].Count)

	res, _ := callTool(t, s.handleChart, `{"days":0}`)
	assert.True(t, res.IsError)
}

func TestSettingsTool(t *testing.T) {
	s, _ := newTestServer(t)

	_, text := callTool(t, s.handleSettings, `{}`)
	var got settingsView
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, settings.FontMedium, got.FontSize)

	_, text = callTool(t, s.handleSettings, `{"language":"english","calendar_start_day":"monday"}`)
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.Equal(t, settings.LangEnglish, got.Language)
	assert.Equal(t, settings.StartMonday, got.CalendarStartDay)
	assert.NotContains(t, text, "passcode\":\"")

	res, _ := callTool(t, s.handleSettings, `{"font_size":"giant"}`)
	assert.True(t, res.IsError)
}

func TestReadResource(t *testing.T) {
	s, entries := newTestServer(t)
	seed(t, entries, 4)

	res, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "gratitude://entry/2026-03-04"},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "Wednesday, March 4, 2026")
	assert.Contains(t, res.Contents[0].Text, "xxxx")

	_, err = s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "gratitude://entry/2026-03-05"},
	})
	assert.ErrorIs(t, err, diary.ErrEntryNotFound)

	_, err = s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "gratitude://diary/2026-03-05"},
	})
	assert.Error(t, err)
}

func TestReflectionPrompt(t *testing.T) {
	s, entries := newTestServer(t)
	seed(t, entries, 9)

	res, err := s.getReflectionPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{}},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "Tuesday, March 10")
	assert.Contains(t, text, "2026-03-09")

	_, err = s.getReflectionPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{"date": "soon"}},
	})
	assert.Error(t, err)
}
