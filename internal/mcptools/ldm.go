package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// LDMTool returns a workspace's logical data model.
type LDMTool struct {
	sess *session.Session
}

// NewLDMTool creates the get_logical_data_model tool.
func NewLDMTool(sess *session.Session) *LDMTool {
	return &LDMTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *LDMTool) Definition() mcp.Tool {
	return mcp.NewTool("get_logical_data_model",
		mcp.WithDescription(
			"Retrieve the workspace's schema graph: a per-dataset summary "+
				"(attribute, fact, and reference counts) plus the complete model "+
				"document with datasets, date dimensions, and relationships.",
		),
		mcp.WithString("workspace_id",
			mcp.Description("Workspace to model. Falls back to the configured default workspace."),
		),
	)
}

// Handle processes the get_logical_data_model tool call.
func (t *LDMTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspace, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
	if err != nil {
		return errorResult("get_logical_data_model", err)
	}

	model, err := catalog.GetLogicalDataModel(ctx, t.sess.Backend(), workspace)
	if err != nil {
		return errorResult("get_logical_data_model", err)
	}
	return jsonResult(model)
}
