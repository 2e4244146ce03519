package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// DashboardInsightsTool resolves which insights a dashboard shows.
type DashboardInsightsTool struct {
	sess *session.Session
}

// NewDashboardInsightsTool creates the get_dashboard_insights tool.
func NewDashboardInsightsTool(sess *session.Session) *DashboardInsightsTool {
	return &DashboardInsightsTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *DashboardInsightsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_dashboard_insights",
		mcp.WithDescription(
			"List the insights placed on a dashboard's layout, with both the "+
				"insight's own title and the title shown on the dashboard widget.",
		),
		mcp.WithString("dashboard_id",
			mcp.Required(),
			mcp.Description("Dashboard to inspect"),
		),
		mcp.WithString("workspace_id",
			mcp.Description("Workspace holding the dashboard. Falls back to the configured default workspace."),
		),
	)
}

// Handle processes the get_dashboard_insights tool call.
func (t *DashboardInsightsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dashboardID := req.GetString("dashboard_id", "")
	if dashboardID == "" {
		return mcp.NewToolResultError("'dashboard_id' is required"), nil
	}
	workspace, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
	if err != nil {
		return errorResult("get_dashboard_insights", err)
	}

	result, err := catalog.GetDashboardInsights(ctx, t.sess.Backend(), workspace, dashboardID)
	if err != nil {
		return errorResult("get_dashboard_insights", err)
	}
	return jsonResult(result)
}

// DashboardFiltersTool resolves a dashboard's filter context.
type DashboardFiltersTool struct {
	sess *session.Session
}

// NewDashboardFiltersTool creates the get_dashboard_filters tool.
func NewDashboardFiltersTool(sess *session.Session) *DashboardFiltersTool {
	return &DashboardFiltersTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *DashboardFiltersTool) Definition() mcp.Tool {
	return mcp.NewTool("get_dashboard_filters",
		mcp.WithDescription(
			"Show the attribute and date filters configured on a dashboard, "+
				"including current selections.",
		),
		mcp.WithString("dashboard_id",
			mcp.Required(),
			mcp.Description("Dashboard to inspect"),
		),
		mcp.WithString("workspace_id",
			mcp.Description("Workspace holding the dashboard. Falls back to the configured default workspace."),
		),
	)
}

// Handle processes the get_dashboard_filters tool call.
func (t *DashboardFiltersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dashboardID := req.GetString("dashboard_id", "")
	if dashboardID == "" {
		return mcp.NewToolResultError("'dashboard_id' is required"), nil
	}
	workspace, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
	if err != nil {
		return errorResult("get_dashboard_filters", err)
	}

	result, err := catalog.GetDashboardFilters(ctx, t.sess.Backend(), workspace, dashboardID)
	if err != nil {
		return errorResult("get_dashboard_filters", err)
	}
	return jsonResult(result)
}
