// Package resources implements MCP resource handlers.
//
// Resources provide read-only data the host can pull for context. They
// use URI-based addressing (gooddata://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// Handler manages the analytics resource endpoints.
type Handler struct {
	sess *session.Session
}

// NewHandler creates a resource Handler for one session.
func NewHandler(sess *session.Session) *Handler {
	return &Handler{sess: sess}
}

// ConfigResource returns the MCP resource definition for the resolved
// connection settings.
func (h *Handler) ConfigResource() mcp.Resource {
	return mcp.NewResource(
		"gooddata://config",
		"Connection Configuration",
		mcp.WithResourceDescription("The resolved backend host and default workspace. The API token is never exposed."),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleConfig returns the connection settings as JSON. The token is
// deliberately absent.
func (h *Handler) HandleConfig(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cfg := h.sess.Config()
	data, err := json.MarshalIndent(map[string]string{
		"host":              cfg.Host,
		"default_workspace": cfg.Workspace,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
