package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/config"
	"github.com/stackless-dev/gooddata-cli/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP tool server on stdio",
	Long: `Expose every operation as an MCP tool over stdin/stdout, for use by
AI hosts. The server runs until the client disconnects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		server.Version = version

		if err := server.ServeStdio(server.New(cfg)); err != nil {
			return fmt.Errorf("serving MCP: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
