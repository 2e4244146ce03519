package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/export"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// ExportTool writes one export artifact to the local filesystem. The
// same handler serves all formats; each format registers under its own
// tool name.
type ExportTool struct {
	sess   *session.Session
	format export.Format
}

// NewExportTool creates an export tool for one artifact format.
func NewExportTool(sess *session.Session, format export.Format) *ExportTool {
	return &ExportTool{sess: sess, format: format}
}

func (t *ExportTool) name() string {
	if t.format == export.FormatPDF {
		return "export_dashboard_pdf"
	}
	return fmt.Sprintf("export_insight_%s", t.format)
}

// Definition returns the MCP tool definition for registration.
func (t *ExportTool) Definition() mcp.Tool {
	sourceParam, sourceDesc := "insight_id", "Insight to export"
	desc := fmt.Sprintf(
		"Export an insight's data as %s. The file is written locally and the "+
			"absolute path is returned. Defaults to ./exports/<insight-id>.%s.",
		t.format, t.format,
	)
	if t.format == export.FormatPDF {
		sourceParam, sourceDesc = "dashboard_id", "Dashboard to export"
		desc = "Export a dashboard as a PDF document. The file is written locally and the " +
			"absolute path is returned. Defaults to ./exports/<dashboard-id>.pdf."
	}
	return mcp.NewTool(t.name(),
		mcp.WithDescription(desc),
		mcp.WithString(sourceParam,
			mcp.Required(),
			mcp.Description(sourceDesc),
		),
		mcp.WithString("workspace_id",
			mcp.Description("Workspace holding the object. Falls back to the configured default workspace."),
		),
		mcp.WithString("output_path",
			mcp.Description("Target file or directory. Defaults to ./exports/."),
		),
	)
}

// Handle processes the export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceParam := "insight_id"
	if t.format == export.FormatPDF {
		sourceParam = "dashboard_id"
	}
	sourceID := req.GetString(sourceParam, "")
	if sourceID == "" {
		return mcp.NewToolResultError(fmt.Sprintf("'%s' is required", sourceParam)), nil
	}
	workspace, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
	if err != nil {
		return errorResult(t.name(), err)
	}

	path, err := export.Run(ctx, t.sess.Backend(), workspace, t.format, sourceID, req.GetString("output_path", ""))
	if err != nil {
		return errorResult(t.name(), err)
	}
	return jsonResult(map[string]any{
		"path":   path,
		"format": string(t.format),
		"source": sourceID,
	})
}
