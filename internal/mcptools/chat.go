package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// ChatTool asks the analytics backend a natural-language question and
// keeps the per-workspace conversation going across calls.
type ChatTool struct {
	sess *session.Session
}

// NewChatTool creates the ai_chat tool.
func NewChatTool(sess *session.Session) *ChatTool {
	return &ChatTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *ChatTool) Definition() mcp.Tool {
	return mcp.NewTool("ai_chat",
		mcp.WithDescription(
			"Ask the analytics assistant a natural-language question about the "+
				"workspace's data. The conversation history is kept per workspace, "+
				"so follow-up questions see earlier turns. Pass reset=true to start "+
				"a fresh conversation.",
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask"),
		),
		mcp.WithString("workspace_id",
			mcp.Description("Workspace to converse about. Falls back to the configured default workspace."),
		),
		mcp.WithBoolean("reset",
			mcp.Description("Discard the existing conversation before asking (default false)"),
		),
	)
}

// Handle processes the ai_chat tool call.
func (t *ChatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question := req.GetString("question", "")
	if question == "" {
		return mcp.NewToolResultError("'question' is required"), nil
	}
	workspace, err := t.sess.ResolveWorkspace(req.GetString("workspace_id", ""))
	if err != nil {
		return errorResult("ai_chat", err)
	}
	reset := req.GetBool("reset", false)

	answer, err := t.sess.Chat().Converse(ctx, t.sess.Backend(), workspace, question, reset)
	if err != nil {
		return errorResult("ai_chat", err)
	}
	return mcp.NewToolResultText(answer), nil
}
