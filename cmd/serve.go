package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/axlocate/axlocate/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the locator tools",
	Long: `Start a Model Context Protocol (MCP) server over stdio that exposes
locator_resolve, locator_apps, tree_dump, and config_reload as tools, so
AI agents can query trees without spawning a process per call.

Examples:
  axlocate serve
  axlocate serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("cache-ttl", 500, "Tree cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ttl := settings.Server.CacheTTL
	if cmd.Flags().Changed("cache-ttl") {
		cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
		ttl = time.Duration(cacheTTLMs) * time.Millisecond
	}

	srv, err := server.New(server.Config{
		Locators: settings.Locators,
		MaxDepth: settings.MaxDepth,
		CacheTTL: ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return srv.ServeStdio()
}
