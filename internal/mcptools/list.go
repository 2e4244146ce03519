package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// ListTool lists one kind of analytics resource. The same handler
// serves all five kinds; each kind registers under its own tool name.
type ListTool struct {
	sess *session.Session
	kind catalog.Kind
}

// NewListTool creates a listing tool for one resource kind.
func NewListTool(sess *session.Session, kind catalog.Kind) *ListTool {
	return &ListTool{sess: sess, kind: kind}
}

var listDescriptions = map[catalog.Kind]string{
	catalog.KindWorkspace: "List all workspaces the configured token can see. Returns id and title per workspace.",
	catalog.KindDashboard: "List the dashboards of a workspace. Returns id and title per dashboard.",
	catalog.KindInsight:   "List the insights (saved visualizations) of a workspace. Returns id and title per insight.",
	catalog.KindMetric:    "List the metrics of a workspace. Returns id, title, and display format per metric.",
	catalog.KindDataset:   "List the datasets of a workspace's semantic model. Returns id and title per dataset.",
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(listDescriptions[t.kind])}
	if t.kind.WorkspaceScoped() {
		opts = append(opts, mcp.WithString("workspace_id",
			mcp.Description("Workspace to list from. Falls back to the configured default workspace."),
		))
	}
	return mcp.NewTool(fmt.Sprintf("list_%ss", t.kind), opts...)
}

// Handle processes the listing call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspace := ""
	if t.kind.WorkspaceScoped() {
		ws, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
		if err != nil {
			return errorResult(t.Definition().Name, err)
		}
		workspace = ws
	}

	resources, err := catalog.ListResources(ctx, t.sess.Backend(), workspace, t.kind)
	if err != nil {
		return errorResult(t.Definition().Name, err)
	}
	return jsonResult(map[string]any{
		string(t.kind) + "s": resources,
		"count":              len(resources),
	})
}
