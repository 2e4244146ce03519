package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list {workspaces|dashboards|insights|metrics|datasets}",
	Short: "List analytics resources",
	Long: `List entities of one kind.

Workspaces are organization-wide; the other kinds need a workspace,
either via --workspace or the configured default.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"workspaces", "dashboards", "insights", "metrics", "datasets"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalog.ParseKind(singular(args[0]))
		if err != nil {
			return err
		}

		s, err := getSession()
		if err != nil {
			return err
		}
		workspace := ""
		if kind.WorkspaceScoped() {
			if workspace, err = resolveWorkspace(); err != nil {
				return err
			}
		}

		resources, err := catalog.ListResources(cmd.Context(), s.Backend(), workspace, kind)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]any{
				args[0]: resources,
				"count": len(resources),
			})
		}

		if len(resources) == 0 {
			printHeader(fmt.Sprintf("No %s found", args[0]))
			return nil
		}
		printHeader(fmt.Sprintf("Found %d %s", len(resources), args[0]))

		columns := []string{"ID", "Title"}
		if kind == catalog.KindMetric {
			columns = append(columns, "Format")
		}
		w := newTable(columns...)
		for _, r := range resources {
			row := idStyle.Render(r.ID) + "\t" + valueStyle.Render(truncate(r.Title, 50)) + "\t"
			if kind == catalog.KindMetric {
				row += dimStyle.Render(r.Format) + "\t"
			}
			_, _ = fmt.Fprintln(w, row)
		}
		return w.Flush()
	},
}

// singular maps the plural command argument to the kind name.
func singular(plural string) string {
	if plural == "" {
		return plural
	}
	return plural[:len(plural)-1]
}

func init() {
	rootCmd.AddCommand(listCmd)
}
