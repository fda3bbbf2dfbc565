package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/MKLambda/uscsearch/internal/corpus"
	"github.com/MKLambda/uscsearch/internal/search"
	"github.com/MKLambda/uscsearch/internal/tracker"
)

const (
	// ServerName is the MCP server name
	ServerName = "uscsearch"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies. The tracker
// is optional; status reporting degrades gracefully without it.
type Server struct {
	mcp     *server.MCPServer
	store   *corpus.DirStore
	engine  *search.Engine
	tracker *tracker.Tracker
}

// NewServer wires an already-constructed store, engine, and tracker into
// an MCP server and registers the tools.
func NewServer(store *corpus.DirStore, engine *search.Engine, tr *tracker.Tracker) *Server {
	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion),
		store:   store,
		engine:  engine,
		tracker: tr,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	defer func() {
		if s.tracker != nil {
			_ = s.tracker.Close()
		}
	}()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchTool(), s.handleSearch)
	s.mcp.AddTool(suggestTool(), s.handleSuggest)
	s.mcp.AddTool(getTitleTool(), s.handleGetTitle)
	s.mcp.AddTool(listTitlesTool(), s.handleListTitles)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
