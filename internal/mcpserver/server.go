// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes swagg generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/swagg-dev/swagg"
	"github.com/swagg-dev/swagg/parser"
)

const serverInstructions = `swagg MCP server: generates typed Go HTTP bindings from OpenAPI 3 documents.

Use inspect first to see which components and routes a document produces and which schemas are skipped. Use generate to write the Go files, or omit output_dir to receive them inline.

Configuration: defaults are read from SWAGG_* environment variables set in your MCP client config.

Key settings:
- SWAGG_PACKAGE (default: api): package name of generated code
- SWAGG_RUNTIME: import path of the runtime package
- SWAGG_STRICT (default: false): fail when anything is skipped
- SWAGG_CACHE_ENABLED (default: true): cache parsed specs per session
- SWAGG_CACHE_FILE_TTL (default: 15m), SWAGG_CACHE_CONTENT_TTL (default: 15m)
- SWAGG_MAX_INLINE_SIZE (default: 10485760): largest accepted inline document`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, logger parser.Logger) error {
	if logger == nil {
		logger = parser.NopLogger{}
	}
	cfg = loadConfig(logger)
	documents.resize(cfg.CacheMaxSize)
	if cfg.CacheEnabled {
		documents.run(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagg", Version: swagg.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, logger)
	logger.Info("mcp server started", "version", swagg.Version())
	return server.Run(ctx, &mcp.StdioTransport{})
}

// tools holds the dependencies shared by the tool handlers.
type tools struct {
	logger parser.Logger
}

func registerAllTools(server *mcp.Server, logger parser.Logger) {
	t := &tools{logger: logger}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate typed Go HTTP bindings from an OpenAPI 3 document: component types, one response union per operation and a service type with Bind methods. Writes the files to output_dir, or returns their content inline when output_dir is omitted. strict=true fails instead of skipping unsupported schemas. Defaults are configurable via SWAGG_PACKAGE, SWAGG_RUNTIME and SWAGG_STRICT.",
	}, t.handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect what swagg would generate for an OpenAPI 3 document without writing files. Returns the generated components (name, kind, origin), the routes grouped by path template with each operation's response union and statuses, and every warning about skipped schemas, payloads or operations.",
	}, t.handleInspect)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
