// Package server wires all MCP components and creates the server
// instance. This is the composition root: it resolves the session and
// injects it into the tools and resources. No business logic lives
// here, only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/stackless-dev/gooddata-cli/internal/config"
	"github.com/stackless-dev/gooddata-cli/internal/mcptools"
	"github.com/stackless-dev/gooddata-cli/internal/resources"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and
// resources registered against one session.
func New(cfg config.Config) *server.MCPServer {
	sess := session.New(cfg)

	s := server.NewMCPServer(
		"gooddata-cli",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	for _, tool := range mcptools.All(sess) {
		s.AddTool(tool.Definition(), tool.Handle)
	}

	resourceHandler := resources.NewHandler(sess)
	s.AddResource(resourceHandler.ConfigResource(), resourceHandler.HandleConfig)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// serverInstructions returns the system instructions that tell the AI
// how to use the analytics tools effectively.
func serverInstructions() string {
	return `You have access to a read-only GoodData analytics server.

## What it offers
- Discovery: list_workspaces, list_dashboards, list_insights, list_metrics, list_datasets
- Dashboards: get_dashboard_insights (which insights a dashboard shows),
  get_dashboard_filters (its configured attribute and date filters)
- Insights: get_insight_metadata (definition, audit trail, referenced
  metrics and attributes), get_insight_data (execute and return the table)
- Modeling: get_logical_data_model (datasets, date dimensions, relationships)
- Identity: list_users, list_user_groups, get_user_group_members
- Conversation: ai_chat asks the analytics backend a natural-language
  question; history is kept per workspace, pass reset=true to start over
- Export: export_dashboard_pdf, export_insight_csv, export_insight_xlsx
  write local files and return the absolute path

## How to work
1. Unless the user names a workspace, omit workspace_id — the configured
   default applies. If no default exists, ask the user to pick one from
   list_workspaces.
2. Prefer get_insight_data over ai_chat when the user asks for numbers a
   saved insight already answers; it is exact and repeatable.
3. Use get_insight_metadata before interpreting get_insight_data so you
   know what the columns mean.
4. Errors are tagged with a kind in brackets, e.g. [not_found] or
   [workspace_not_specified]. React to the kind, not the message text.

## Hard limits
All tools are read-only. Nothing on the analytics backend can be created,
changed, or deleted through this server. Exports only write local files.`
}
