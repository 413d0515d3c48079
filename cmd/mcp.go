package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the page-inspection tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the page
snapshots as tools. An orchestrating agent visits pages and reads them
without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  websurfer mcp
  websurfer mcp --transport streamable-http --port 8080
  websurfer mcp --attach ws://127.0.0.1:9222/... --cache-ttl 0`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	mcpCmd.Flags().Int("cache-ttl", 500, "Snapshot cache TTL in milliseconds (0 to disable)")
	mcpCmd.Flags().String("attach", "", "DevTools websocket URL of a running Chrome")
	mcpCmd.Flags().Bool("headed", false, "Launch Chrome with a visible window")
	mcpCmd.Flags().Int("timeout", 30, "Navigation timeout in seconds")
}

func runMCP(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	attach, _ := cmd.Flags().GetString("attach")
	headed, _ := cmd.Flags().GetBool("headed")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")

	srv := newMCPServer(MCPConfig{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Attach:    attach,
		Headed:    headed,
		Timeout:   time.Duration(timeoutSec) * time.Second,
	})

	return srv.serve()
}
