// ABOUTME: MCP server for gratitude integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for journal entries.

package mcp

import (
	"context"
	"time"

	"github.com/harper/gratitude/internal/diary"
	"github.com/harper/gratitude/internal/settings"
	"github.com/harper/gratitude/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type Server struct {
	server   *mcp.Server
	entries  *diary.Store
	settings *settings.Store
	calc     *stats.Calculator
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now for deciding which day is today.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func NewServer(entries *diary.Store, prefs *settings.Store, opts ...Option) *Server {
	s := &Server{
		entries:  entries,
		settings: prefs,
		calc:     stats.NewCalculator(entries.Location()),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "gratitude",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", zap.String("transport", "stdio"))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
