package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/updater"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Update to the latest released version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "Checking for updates...")

		result := updater.CheckVersion(version)
		if !result.UpdateAvailable {
			fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
			return nil
		}

		fmt.Fprintf(os.Stderr, "New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
		if err := updater.SelfUpdate(version); err != nil {
			return fmt.Errorf("update failed: %w (download manually from %s)", err, result.ReleaseURL)
		}

		fmt.Fprintf(os.Stderr, "Updated to v%s\n", result.LatestVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}
