// Package mcpserver exposes redelim's conversion as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for redelim.
type Server struct {
	mcp     *server.MCPServer
	version string
}

// New creates a server with the convert_file and preview_file tools.
func New(version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{version: version}
	s.mcp = server.NewMCPServer(
		"redelim",
		version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP requests on stdin/stdout until stdin closes.
func (s *Server) ServeStdio() error {
	slog.Debug("starting MCP stdio server", "version", s.version)
	return server.ServeStdio(s.mcp)
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }
