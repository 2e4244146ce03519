package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/catalog"
)

var ldmCmd = &cobra.Command{
	Use:   "ldm",
	Short: "Show the workspace's logical data model",
	Long: `Summarize the workspace's schema graph: one line per dataset with
attribute, fact, and reference counts. With --json the complete model
document is included under "ldm".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSession()
		if err != nil {
			return err
		}
		workspace, err := resolveWorkspace()
		if err != nil {
			return err
		}

		model, err := catalog.GetLogicalDataModel(cmd.Context(), s.Backend(), workspace)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(model)
		}

		printHeader(fmt.Sprintf("%s — %d dataset(s), %d date dimension(s)",
			model.WorkspaceID, model.DatasetCount, model.DateInstanceCount))
		w := newTable("ID", "Title", "Attributes", "Facts", "References")
		for _, ds := range model.Datasets {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				idStyle.Render(ds.ID),
				valueStyle.Render(truncate(ds.Title, 40)),
				dimStyle.Render(strconv.Itoa(ds.AttributeCount)),
				dimStyle.Render(strconv.Itoa(ds.FactCount)),
				dimStyle.Render(strconv.Itoa(ds.ReferenceCount)),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(ldmCmd)
}
