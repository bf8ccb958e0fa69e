package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roundtable/internal/game/engine"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Roundtable MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the MCP surface over the game engine.
type Server struct {
	mcpServer *mcp.Server
	engine    *engine.Engine
}

// New creates a configured MCP server exposing the table tools and resources.
func New(eng *engine.Engine) (*Server, error) {
	if eng == nil {
		return nil, fmt.Errorf("engine is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	registerTools(mcpServer, eng)
	registerResources(mcpServer, eng)

	return &Server{mcpServer: mcpServer, engine: eng}, nil
}

// registerTools wires the table tools into the MCP server.
func registerTools(mcpServer *mcp.Server, eng *engine.Engine) {
	mcp.AddTool(mcpServer, ActionSubmitTool(), ActionSubmitHandler(eng))
	mcp.AddTool(mcpServer, TurnSkipTool(), TurnSkipHandler(eng))
	mcp.AddTool(mcpServer, SceneSetTool(), SceneSetHandler(eng))
	mcp.AddTool(mcpServer, GameResetTool(), GameResetHandler(eng))
	mcp.AddTool(mcpServer, CharacterShowTool(), CharacterShowHandler(eng))
	mcp.AddTool(mcpServer, ParticipantListTool(), ParticipantListHandler(eng))
}

// registerResources wires readable resources into the MCP server.
func registerResources(mcpServer *mcp.Server, eng *engine.Engine) {
	mcpServer.AddResource(StateResource(), StateResourceHandler(eng))
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
