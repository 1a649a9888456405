package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prospector/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can run
prospect discovery.

Tools exposed:
  discover_prospects  run a discovery for an ICP
  select_sources      preview the ranked sources for an ICP
  list_sources        show per-platform configuration

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead; prometheus metrics are then available at /metrics.

Examples:
  # Stdio mode
  prospector mcp serve

  # HTTP mode
  prospector mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "prospector": {
        "command": "/path/to/prospector",
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

	ports := &mcp.Ports{
		Discovery: discoveryService,
		Selector:  selectorService,
		Source:    sourceService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
