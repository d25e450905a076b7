// Package server exposes the locator engine over the Model Context Protocol
// so agents and editor tooling can resolve elements, dump trees, and reload
// configuration without spawning a process per call.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/axlocate/axlocate/internal/appconfig"
	"github.com/axlocate/axlocate/internal/axtree"
	"github.com/axlocate/axlocate/internal/locator"
	"github.com/axlocate/axlocate/internal/observability"
	"github.com/axlocate/axlocate/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	// Locators is the locator document path. Empty searches the standard
	// locations.
	Locators string

	// MaxDepth bounds tree walks. A value <= 0 selects the default.
	MaxDepth int

	// CacheTTL is how long a captured tree keeps answering tool calls
	// before the next call re-reads it. 0 disables caching.
	CacheTTL time.Duration
}

// Server wraps the MCP server with the locator registry, engine, and tree
// cache.
type Server struct {
	cfg      Config
	registry *locator.Registry
	engine   *locator.Engine
	cache    *TreeCache
	log      *zap.Logger

	// sourceMu serializes live platform reads; accessibility APIs are not
	// safe for concurrent access from one process.
	sourceMu sync.Mutex

	// loadMu serializes config_reload. Queries take no lock: the registry
	// swap is atomic.
	loadMu sync.Mutex
	// loadedFrom is the document path the current model came from.
	loadedFrom string

	mcp *mcpserver.MCPServer
}

// New loads the locator document and builds a configured MCP server.
func New(cfg Config) (*Server, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = axtree.DefaultMaxDepth
	}

	model, path, err := appconfig.Load(cfg.Locators)
	if err != nil {
		return nil, fmt.Errorf("failed to load locator config: %w", err)
	}

	registry := locator.NewRegistry(model)
	s := &Server{
		cfg:        cfg,
		registry:   registry,
		engine:     locator.NewEngine(registry, cfg.MaxDepth),
		cache:      NewTreeCache(cfg.CacheTTL),
		log:        observability.GetLogger().Named("server"),
		loadedFrom: path,
	}

	s.mcp = mcpserver.NewMCPServer(
		"axlocate",
		version.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	s.registerTools()
	return s, nil
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP over stdio",
		zap.String("locators", s.loadedFrom),
		zap.Duration("cache_ttl", s.cfg.CacheTTL))
	return mcpserver.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	// locator_resolve
	s.mcp.AddTool(
		mcp.NewTool("locator_resolve",
			mcp.WithDescription("Resolve a configured element name to a concrete node in an accessibility tree. Returns the node's role and attributes, or found=false when nothing in the tree matches."),
			mcp.WithString("app", mcp.Description("Configured application name"), mcp.Required()),
			mcp.WithString("element", mcp.Description("Configured element name"), mcp.Required()),
			mcp.WithString("tree", mcp.Description("Snapshot file to resolve against (default: the app's live tree)")),
			mcp.WithBoolean("all", mcp.Description("Return every candidate in document order instead of the indexed one")),
			mcp.WithBoolean("fresh", mcp.Description("Drop the cached tree and re-read before resolving")),
		),
		s.handleResolve,
	)

	// locator_apps
	s.mcp.AddTool(
		mcp.NewTool("locator_apps",
			mcp.WithDescription("List the configured applications with their process identifiers and element names"),
			mcp.WithString("app", mcp.Description("Show one app in detail, including pattern summaries")),
		),
		s.handleApps,
	)

	// tree_dump
	s.mcp.AddTool(
		mcp.NewTool("tree_dump",
			mcp.WithDescription("Dump an accessibility tree as indented text, one node per line, for authoring locator patterns"),
			mcp.WithString("app", mcp.Description("Configured application name (reads the live tree)")),
			mcp.WithString("tree", mcp.Description("Snapshot file to dump instead of a live tree")),
			mcp.WithNumber("depth", mcp.Description("Max depth to render (0 = configured default)")),
			mcp.WithBoolean("fresh", mcp.Description("Drop the cached tree and re-read before dumping")),
		),
		s.handleDump,
	)

	// config_reload
	s.mcp.AddTool(
		mcp.NewTool("config_reload",
			mcp.WithDescription("Re-read the locator document and atomically swap in the new model. In-flight queries finish against the old one."),
		),
		s.handleReload,
	)
}
