package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export {pdf|csv|xlsx} <dashboard-or-insight-id>",
	Short: "Export a dashboard or insight to a local file",
	Long: `Export analytics content to a local file and print the absolute path.

pdf exports a dashboard; csv and xlsx export an insight's data. Without
--output the file lands in ./exports/<id>.<ext>. Partial files are
never left behind: on failure nothing is written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		sourceID := args[1]

		s, err := getSession()
		if err != nil {
			return err
		}
		workspace, err := resolveWorkspace()
		if err != nil {
			return err
		}

		path, err := export.Run(cmd.Context(), s.Backend(), workspace, format, sourceID, exportOutput)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]string{
				"path":   path,
				"format": string(format),
				"source": sourceID,
			})
		}
		fmt.Println(valueStyle.Render("Exported to ") + idStyle.Render(path))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Target file or directory (default ./exports/)")
	rootCmd.AddCommand(exportCmd)
}
