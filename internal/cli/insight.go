package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Inspect and execute insights",
}

var insightShowCmd = &cobra.Command{
	Use:   "show <insight-id>",
	Short: "Show an insight's definition and audit trail",
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

		meta, err := catalog.GetInsightMetadata(cmd.Context(), s.Backend(), workspace, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(meta)
		}

		printHeader(meta.Title)
		fmt.Printf("%s %s\n", dimStyle.Render("id:"), idStyle.Render(meta.ID))
		if meta.VisualizationType != "" {
			fmt.Printf("%s %s\n", dimStyle.Render("type:"), valueStyle.Render(meta.VisualizationType))
		}
		if meta.Description != "" {
			fmt.Printf("%s %s\n", dimStyle.Render("description:"), meta.Description)
		}
		if len(meta.Tags) > 0 {
			fmt.Printf("%s %v\n", dimStyle.Render("tags:"), meta.Tags)
		}
		if meta.CreatedBy != nil {
			fmt.Printf("%s %s %s (%s)\n", dimStyle.Render("created by:"),
				meta.CreatedBy.FirstName, meta.CreatedBy.LastName, dimStyle.Render(meta.CreatedAt))
		}
		if meta.ModifiedBy != nil {
			fmt.Printf("%s %s %s (%s)\n", dimStyle.Render("modified by:"),
				meta.ModifiedBy.FirstName, meta.ModifiedBy.LastName, dimStyle.Render(meta.ModifiedAt))
		}
		if len(meta.Metrics) > 0 {
			fmt.Println(titleStyle.Render("Metrics"))
			for _, m := range meta.Metrics {
				fmt.Printf("  %s %s\n", idStyle.Render(m.ID), valueStyle.Render(m.Title))
			}
		}
		if len(meta.Attributes) > 0 {
			fmt.Println(titleStyle.Render("Attributes"))
			for _, a := range meta.Attributes {
				fmt.Printf("  %s\n", idStyle.Render(a.ID))
			}
		}
		if len(meta.Filters) > 0 {
			fmt.Println(titleStyle.Render("Filters"))
			for _, f := range meta.Filters {
				fmt.Printf("  %s %s %v\n", valueStyle.Render(f.Attribute), dimStyle.Render(f.Type), f.Values)
			}
		}
		return nil
	},
}

var insightDataCmd = &cobra.Command{
	Use:   "data <insight-id>",
	Short: "Execute an insight and print the resulting table",
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

		table, err := catalog.GetInsightData(cmd.Context(), s.Backend(), workspace, args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(table)
		}

		printHeader(fmt.Sprintf("%s — %d row(s)", table.Title, len(table.Rows)))
		w := newTable(table.Columns...)
		for _, row := range table.Rows {
			line := ""
			for _, cell := range row {
				line += valueStyle.Render(truncate(fmt.Sprintf("%v", cell), 40)) + "\t"
			}
			_, _ = fmt.Fprintln(w, line)
		}
		return w.Flush()
	},
}

func init() {
	insightCmd.AddCommand(insightShowCmd)
	insightCmd.AddCommand(insightDataCmd)
	rootCmd.AddCommand(insightCmd)
}
