package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/salmonumbrella/redelim/internal/mcp"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the convert_file and preview_file tools over MCP stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout.

Tools:
  convert_file  Rewrite a delimited file (destructive: overwrites the output)
  preview_file  Parse a file and return its first records

Example client config:
  {"mcpServers": {"redelim": {"command": "redelim", "args": ["mcp"]}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcpserver.New(app.Version).ServeStdio()
		},
	}
}
