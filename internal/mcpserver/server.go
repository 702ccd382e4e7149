// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasvalid capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/calquist/oasvalid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasvalid MCP server — parses OpenAPI specs and generates typed validation layers.

Configuration: All defaults are configurable via OASVALID_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASVALID_CACHE_FILE_TTL (default: 15m) — cache TTL for local file specs
- OASVALID_CACHE_URL_TTL (default: 5m) — cache TTL for URL-fetched specs
- OASVALID_CACHE_ENABLED (default: true) — disable spec caching entirely
- OASVALID_MAX_INLINE_SIZE (default: 4194304) — max inline spec content in bytes

Caching: Parsed specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasvalid", Version: oasvalid.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse an OpenAPI Specification document (2.0, 3.0, or 3.1). Returns a structural summary: title, version, OAS version, path/operation/schema counts, servers, and derived operation ids.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a typed validation layer from an OpenAPI Specification document. Validator constructors are always generated; set client and/or server to also produce a typed HTTP client or server request validation. Requires output_dir. Returns a manifest of generated files.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile_schema",
		Description: "Compile a single JSON Schema / OAS schema object (JSON or YAML) into a validator-construction expression in the validate DSL. Returns the expression and the component schemas it references. Use strict=true for reject-unknown-keys object mode.",
	}, handleCompileSchema)
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

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
