package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
	"github.com/stackless-dev/gooddata-cli/internal/export"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// Tool is what every MCP tool in this package provides.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// All returns every tool of the catalog, wired to one session. The
// server registers them in this order.
func All(sess *session.Session) []Tool {
	return []Tool{
		NewListTool(sess, catalog.KindWorkspace),
		NewListTool(sess, catalog.KindDashboard),
		NewListTool(sess, catalog.KindInsight),
		NewListTool(sess, catalog.KindMetric),
		NewListTool(sess, catalog.KindDataset),
		NewDashboardInsightsTool(sess),
		NewDashboardFiltersTool(sess),
		NewInsightMetadataTool(sess),
		NewInsightDataTool(sess),
		NewLDMTool(sess),
		NewUsersTool(sess),
		NewUserGroupsTool(sess),
		NewGroupMembersTool(sess),
		NewChatTool(sess),
		NewExportTool(sess, export.FormatPDF),
		NewExportTool(sess, export.FormatCSV),
		NewExportTool(sess, export.FormatXLSX),
	}
}
