// ABOUTME: MCP server implementation for rsshub-mcp
// ABOUTME: Exposes RSSHub route discovery, subscriptions, and feed fetching to AI agents

package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/rsshub-mcp/internal/catalog"
	"github.com/harper/rsshub-mcp/internal/config"
	"github.com/harper/rsshub-mcp/internal/fetcher"
	"github.com/harper/rsshub-mcp/internal/store"
)

// Server wraps the MCP server with the RSSHub-facing collaborators every
// handler needs: the route catalog cache, the subscription store, and the
// feed fetch client.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
	cache     *catalog.Cache
	store     *store.Store
	fetcher   *fetcher.Client
	logger    *slog.Logger
}

// NewServer creates a new MCP server instance with all tools, resources,
// and prompts registered.
func NewServer(version string, cfg *config.Config, cache *catalog.Cache, st *store.Store, fc *fetcher.Client, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		cache:   cache,
		store:   st,
		fetcher: fc,
		logger:  logger,
	}

	s.mcpServer = server.NewMCPServer(
		"rsshub-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio, blocking until the client
// disconnects. Logging must go to stderr: stdout carries the protocol.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP on stdio",
		slog.String("instance", s.cfg.Instance),
		slog.String("store", s.store.Path()))
	return server.ServeStdio(s.mcpServer)
}

// registerTools is implemented in tools.go
// registerResources is implemented in resources.go
// registerPrompts is implemented in prompts.go
