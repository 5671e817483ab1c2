// Package mcptool exposes the resolver as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"PinResolver/internal/domain"
	"PinResolver/internal/ports"
	"PinResolver/internal/usecase"
)

// ToolResolvePin is the name clients call.
const ToolResolvePin = "resolve_pin"

// Server wraps an MCP server whose only tool resolves pin URLs.
type Server struct {
	resolver  ports.Resolver
	mcpServer *server.MCPServer
}

// New registers the resolve tool on a fresh MCP server.
func New(resolver ports.Resolver, version string) *Server {
	s := &Server{
		resolver: resolver,
		mcpServer: server.NewMCPServer(
			"pinresolver",
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	resolveTool := mcp.NewTool(ToolResolvePin,
		mcp.WithDescription("Resolve a public Pinterest pin URL into its direct video or image URL plus title, author, description and hashtags."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("https URL of the pin, e.g. https://www.pinterest.com/pin/123/ or https://pin.it/abc"),
		),
	)
	s.mcpServer.AddTool(resolveTool, s.handleResolve)

	return s
}

// ServeStdio speaks MCP over in and out until in is exhausted or ctx is done.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// HTTPHandler serves the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer)
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pinURL := request.GetString("url", "")
	if pinURL == "" {
		return mcp.NewToolResultError(usecase.MsgURLRequired), nil
	}

	result, err := s.resolver.Resolve(ctx, pinURL)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		return mcp.NewToolResultError(err.Error()), nil
	case errors.Is(err, domain.ErrNotFound):
		return mcp.NewToolResultError(usecase.MsgNoMedia), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("resolve failed: %v", err)), nil
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
