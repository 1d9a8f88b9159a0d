package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aretw0/turbo-editor/internal/cli"
	"github.com/aretw0/turbo-editor/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCommand(a *app) *cobra.Command {
	var (
		transport string
		port      int
	)
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts the editor as an MCP Server so AI agents can build scenes through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: a.withSession(func(cmd *cobra.Command, args []string, s *session) error {
			srv := mcp.NewServer(s.ed, s.logger)

			switch transport {
			case "stdio":
				// Ensure logs don't corrupt JSON-RPC on Stdout
				log.SetOutput(os.Stderr)
				s.logger.Info("Starting MCP Server (Stdio)")
				return srv.ServeStdio()
			case "sse":
				s.logger.Info("Starting MCP Server (SSE)", "port", port)
				sig := cli.NewSignalContext(cmd.Context())
				defer sig.Cancel()
				if err := srv.ServeSSE(sig, port); err != nil {
					return err
				}
				s.logger.Info("MCP Server stopped gracefully")
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		}),
	}
	mcpCmd.Flags().StringVar(&transport, "transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (only for SSE)")
	return mcpCmd
}
