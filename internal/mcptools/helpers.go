// Package mcptools exposes the read-only analytics operations as MCP
// tools. Each tool is a small struct with a Definition for registration
// and a Handle method; domain failures become tool error results, never
// Go errors, so the protocol layer keeps serving.
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/stackless-dev/gooddata-cli/internal/gderr"
)

// jsonResult renders any value as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult maps a domain error to a tool error result, tagged with
// its taxonomy kind so callers can react programmatically.
func errorResult(tool string, err error) (*mcp.CallToolResult, error) {
	kind := gderr.Kind(err)
	log.Debug().Str("tool", tool).Str("kind", kind).Err(err).Msg("tool call failed")
	return mcp.NewToolResultError(fmt.Sprintf("[%s] %v", kind, err)), nil
}
