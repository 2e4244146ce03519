package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the organization's users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSession()
		if err != nil {
			return err
		}

		users, err := catalog.ListUsers(cmd.Context(), s.Backend())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]any{"users": users, "count": len(users)})
		}

		printHeader(fmt.Sprintf("Found %d user(s)", len(users)))
		w := newTable("ID", "Name", "Email")
		for _, u := range users {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n",
				idStyle.Render(u.ID),
				valueStyle.Render(truncate(u.Name, 40)),
				dimStyle.Render(u.Email),
			)
		}
		return w.Flush()
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the organization's user groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSession()
		if err != nil {
			return err
		}

		groups, err := catalog.ListUserGroups(cmd.Context(), s.Backend())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]any{"groups": groups, "count": len(groups)})
		}

		printHeader(fmt.Sprintf("Found %d group(s)", len(groups)))
		w := newTable("ID", "Name")
		for _, g := range groups {
			_, _ = fmt.Fprintf(w, "%s\t%s\t\n",
				idStyle.Render(g.ID),
				valueStyle.Render(truncate(g.Name, 50)),
			)
		}
		return w.Flush()
	},
}

var groupMembersCmd = &cobra.Command{
	Use:   "members <group-id>",
	Short: "List the members of one user group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSession()
		if err != nil {
			return err
		}

		members, err := catalog.GetUserGroupMembers(cmd.Context(), s.Backend(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(members)
		}

		printHeader(fmt.Sprintf("%s — %d member(s)", members.GroupID, len(members.Members)))
		for _, id := range members.Members {
			fmt.Println(idStyle.Render(id))
		}
		return nil
	},
}

func init() {
	groupsCmd.AddCommand(groupMembersCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(groupsCmd)
}
