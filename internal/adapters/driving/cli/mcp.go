package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/friesencafe/statusportal/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so assistants can read the
portal and add entries.

Tools: get_portal, add_status, add_action, add_document, export_portal.
Resource: portal://document.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

The add tools respect edit mode; run with --no-edit for a read-only server.

Examples:
  # Stdio mode (default)
  portal mcp serve

  # HTTP mode
  portal mcp serve --port 8080

Desktop client configuration:
  {
    "mcpServers": {
      "friesencafe": {
        "command": "/path/to/portal",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
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

	server, err := newMCPServer()
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

func newMCPServer() (*mcp.Server, error) {
	portal, err := requirePortal()
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(&mcp.Ports{
		Portal:   portal,
		EditMode: editMode(),
	})
}
