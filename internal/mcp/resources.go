// ABOUTME: MCP resources for exposing entries as readable resources.
// ABOUTME: Allows AI agents to read a day's entry via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/gratitude/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const entryURIPrefix = "gratitude://entry/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: entryURIPrefix + "{date}",
			Name:        "Entry",
			Description: "The gratitude entry written on a day (YYYY-MM-DD)",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// Parse URI: gratitude://entry/{date}
	raw, ok := strings.CutPrefix(req.Params.URI, entryURIPrefix)
	if !ok {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}
	day, err := models.ParseDay(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	entry, err := s.entries.FindByDay(day)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	content := fmt.Sprintf("# %s\n\n%s\n", day.Format("Monday, January 2, 2006"), entry.Content)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}
