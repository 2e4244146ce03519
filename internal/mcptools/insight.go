package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// InsightMetadataTool returns the full descriptor of one insight.
type InsightMetadataTool struct {
	sess *session.Session
}

// NewInsightMetadataTool creates the get_insight_metadata tool.
func NewInsightMetadataTool(sess *session.Session) *InsightMetadataTool {
	return &InsightMetadataTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *InsightMetadataTool) Definition() mcp.Tool {
	return mcp.NewTool("get_insight_metadata",
		mcp.WithDescription(
			"Describe one insight: title, description, tags, audit trail, "+
				"visualization type, and the metrics, attributes, and filters "+
				"of its definition.",
		),
		mcp.WithString("insight_id",
			mcp.Required(),
			mcp.Description("Insight to describe"),
		),
		mcp.WithString("workspace_id",
			mcp.Description("Workspace holding the insight. Falls back to the configured default workspace."),
		),
	)
}

// Handle processes the get_insight_metadata tool call.
func (t *InsightMetadataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	insightID := req.GetString("insight_id", "")
	if insightID == "" {
		return mcp.NewToolResultError("'insight_id' is required"), nil
	}
	workspace, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
	if err != nil {
		return errorResult("get_insight_metadata", err)
	}

	meta, err := catalog.GetInsightMetadata(ctx, t.sess.Backend(), workspace, insightID)
	if err != nil {
		return errorResult("get_insight_metadata", err)
	}
	return jsonResult(meta)
}

// InsightDataTool executes an insight and returns its table.
type InsightDataTool struct {
	sess *session.Session
}

// NewInsightDataTool creates the get_insight_data tool.
func NewInsightDataTool(sess *session.Session) *InsightDataTool {
	return &InsightDataTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *InsightDataTool) Definition() mcp.Tool {
	return mcp.NewTool("get_insight_data",
		mcp.WithDescription(
			"Execute an insight's stored query and return the result as a "+
				"table of column names and data rows.",
		),
		mcp.WithString("insight_id",
			mcp.Required(),
			mcp.Description("Insight to execute"),
		),
		mcp.WithString("workspace_id",
			mcp.Description("Workspace holding the insight. Falls back to the configured default workspace."),
		),
	)
}

// Handle processes the get_insight_data tool call.
func (t *InsightDataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	insightID := req.GetString("insight_id", "")
	if insightID == "" {
		return mcp.NewToolResultError("'insight_id' is required"), nil
	}
	workspace, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
	if err != nil {
		return errorResult("get_insight_data", err)
	}

	table, err := catalog.GetInsightData(ctx, t.sess.Backend(), workspace, insightID)
	if err != nil {
		return errorResult("get_insight_data", err)
	}
	return jsonResult(table)
}
