package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tendera/internal/adapters/driving/mcp"
	"github.com/custodia-labs/tendera/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can analyse
tender documents.

Tools:
  analyse_documents       analyse downloaded files and return summary and queries
  extract_search_queries  parse queries out of an existing analysis

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Prompt templates in ~/.tendera/prompts are reloaded when edited.

Examples:
  # Stdio mode (default)
  tendera mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  tendera mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "tendera": {
        "command": "/path/to/tendera",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	ports := &mcp.Ports{
		Analysis: analysisService,
		Prompts:  promptStore,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if watchPrompts != nil {
		stop, err := watchPrompts(cmd.Context())
		if err != nil {
			logger.Warn("prompt hot reload disabled: %v", err)
		} else {
			defer stop()
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
