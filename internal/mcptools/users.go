package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

// UsersTool lists the organization's users.
type UsersTool struct {
	sess *session.Session
}

// NewUsersTool creates the list_users tool.
func NewUsersTool(sess *session.Session) *UsersTool {
	return &UsersTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *UsersTool) Definition() mcp.Tool {
	return mcp.NewTool("list_users",
		mcp.WithDescription("List all users of the organization with id, name, and email."),
	)
}

// Handle processes the list_users tool call.
func (t *UsersTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	users, err := catalog.ListUsers(ctx, t.sess.Backend())
	if err != nil {
		return errorResult("list_users", err)
	}
	return jsonResult(map[string]any{"users": users, "count": len(users)})
}

// UserGroupsTool lists the organization's user groups.
type UserGroupsTool struct {
	sess *session.Session
}

// NewUserGroupsTool creates the list_user_groups tool.
func NewUserGroupsTool(sess *session.Session) *UserGroupsTool {
	return &UserGroupsTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *UserGroupsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_user_groups",
		mcp.WithDescription("List all user groups of the organization with id and name."),
	)
}

// Handle processes the list_user_groups tool call.
func (t *UserGroupsTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := catalog.ListUserGroups(ctx, t.sess.Backend())
	if err != nil {
		return errorResult("list_user_groups", err)
	}
	return jsonResult(map[string]any{"groups": groups, "count": len(groups)})
}

// GroupMembersTool resolves the members of one user group.
type GroupMembersTool struct {
	sess *session.Session
}

// NewGroupMembersTool creates the get_user_group_members tool.
func NewGroupMembersTool(sess *session.Session) *GroupMembersTool {
	return &GroupMembersTool{sess: sess}
}

// Definition returns the MCP tool definition for registration.
func (t *GroupMembersTool) Definition() mcp.Tool {
	return mcp.NewTool("get_user_group_members",
		mcp.WithDescription("List the user ids that belong to one user group."),
		mcp.WithString("group_id",
			mcp.Required(),
			mcp.Description("User group to resolve"),
		),
	)
}

// Handle processes the get_user_group_members tool call.
func (t *GroupMembersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID := req.GetString("group_id", "")
	if groupID == "" {
		return mcp.NewToolResultError("'group_id' is required"), nil
	}

	members, err := catalog.GetUserGroupMembers(ctx, t.sess.Backend(), groupID)
	if err != nil {
		return errorResult("get_user_group_members", err)
	}
	return jsonResult(members)
}
