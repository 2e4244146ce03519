package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Inspect dashboards",
}

var dashboardInsightsCmd = &cobra.Command{
	Use:   "insights <dashboard-id>",
	Short: "List the insights placed on a dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSession()
		if err != nil {
			return err
		}
		workspace, err := resolveWorkspace()
		if err != nil {
			return err
		}

		result, err := catalog.GetDashboardInsights(cmd.Context(), s.Backend(), workspace, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}

		printHeader(fmt.Sprintf("%s — %d insight(s)", result.DashboardTitle, result.Count))
		if result.Count == 0 {
			return nil
		}
		w := newTable("ID", "Title", "Widget Title")
		for _, insight := range result.Insights {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n",
				idStyle.Render(insight.ID),
				valueStyle.Render(truncate(insight.Title, 45)),
				dimStyle.Render(truncate(insight.WidgetTitle, 35)),
			)
		}
		return w.Flush()
	},
}

var dashboardFiltersCmd = &cobra.Command{
	Use:   "filters <dashboard-id>",
	Short: "Show the filters configured on a dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSession()
		if err != nil {
			return err
		}
		workspace, err := resolveWorkspace()
		if err != nil {
			return err
		}

		result, err := catalog.GetDashboardFilters(cmd.Context(), s.Backend(), workspace, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(result)
		}

		printHeader(fmt.Sprintf("%s — filters", result.DashboardTitle))
		if len(result.AttributeFilters) == 0 && len(result.DateFilters) == 0 {
			fmt.Println(dimStyle.Render("No filters configured"))
			return nil
		}

		for _, af := range result.AttributeFilters {
			mode := "include"
			if af.NegativeSelection {
				mode = "exclude"
			}
			fmt.Printf("%s %s %v\n",
				valueStyle.Render(af.DisplayForm),
				dimStyle.Render(mode),
				af.SelectedValues,
			)
		}
		for _, df := range result.DateFilters {
			fmt.Printf("%s %s %v .. %v\n",
				valueStyle.Render("date"),
				dimStyle.Render(df.Granularity),
				df.From, df.To,
			)
		}
		return nil
	},
}

func init() {
	dashboardCmd.AddCommand(dashboardInsightsCmd)
	dashboardCmd.AddCommand(dashboardFiltersCmd)
	rootCmd.AddCommand(dashboardCmd)
}
