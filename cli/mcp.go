// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"github.com/drylogics/marketingos/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs go to stderr
			logger := a.stderrLogger(cmd)
			logger.Info("starting marketing os mcp server", "version", a.version)

			server := handlers.NewServer(a.data, logger, a.version)

			// Run server on stdio transport
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
