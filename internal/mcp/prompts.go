// ABOUTME: MCP prompt for guided gratitude reflection.
// ABOUTME: Pulls in recent entries so the agent can avoid repeating them.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "gratitude-reflection",
		Description: "Reflect on the day and draft a gratitude entry",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "date",
				Description: "Day to reflect on (YYYY-MM-DD); defaults to today",
				Required:    false,
			},
		},
	}, s.getReflectionPrompt)
}

func (s *Server) getReflectionPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	day := s.calc.Today(s.now())
	if raw := req.Params.Arguments["date"]; raw != "" {
		parsed, err := models.ParseDay(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		day = parsed
	}

	var recent strings.Builder
	if entries, err := s.entries.All(); err == nil {
		for _, e := range stats.Recent(entries, 3) {
			recent.WriteString(fmt.Sprintf("- %s: %s\n", e.Day(s.entries.Location()), e.Preview(80)))
		}
	}
	if recent.Len() == 0 {
		recent.WriteString("- (no entries yet)\n")
	}

	template := fmt.Sprintf(`Help me write my gratitude entry for %s.

Ask me, one at a time:
1. Something small that went well today
2. A person I'm thankful for, and why
3. Something I usually take for granted

Then draft a short entry in my own words, under %d characters.
Avoid repeating what I wrote recently:
%s
When I approve the draft, save it with the write_entry tool (date %s).`,
		day.Format("Monday, January 2"), models.MaxContentLength, recent.String(), day)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: template},
			},
		},
	}, nil
}
