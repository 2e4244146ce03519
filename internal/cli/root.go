// Package cli implements the command-line surface. Commands share one
// lazily resolved session and render either styled terminal output or
// plain JSON.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stackless-dev/gooddata-cli/internal/config"
	"github.com/stackless-dev/gooddata-cli/internal/gderr"
	"github.com/stackless-dev/gooddata-cli/internal/session"
)

var (
	verbose       bool
	jsonOutput    bool
	workspaceFlag string

	version string = "dev"
)

var (
	sessOnce sync.Once
	sess     *session.Session
	sessErr  error
)

// getSession resolves the configuration once and returns the shared
// session. Commands call this from RunE so --help and completion never
// require credentials.
func getSession() (*session.Session, error) {
	sessOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			sessErr = err
			return
		}
		sess = session.New(cfg)
	})
	return sess, sessErr
}

// resolveWorkspace applies the --workspace flag over the configured
// default.
func resolveWorkspace() (string, error) {
	s, err := getSession()
	if err != nil {
		return "", err
	}
	return s.ResolveWorkspace(workspaceFlag)
}

var rootCmd = &cobra.Command{
	Use:   "gooddata-cli",
	Short: "Explore GoodData workspaces from the terminal",
	Long: `A read-only command-line client for GoodData Cloud.

Browse workspaces, dashboards, insights, metrics, and datasets; execute
insights and inspect their definitions; export dashboards and insight
data to local files; or ask the analytics backend questions in natural
language.

Connection settings come from GOODDATA_HOST, GOODDATA_TOKEN, and
GOODDATA_WORKSPACE, or from a gooddata.yaml file in the working
directory or ~/.config/gooddata/.

Quick Start:
  gooddata-cli list workspaces            # What can this token see?
  gooddata-cli list insights -w <ws-id>   # Insights of one workspace
  gooddata-cli insight data <insight-id>  # Execute and print the table
  gooddata-cli serve                      # Run as an MCP tool server`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command. Failures print a human message on
// stderr; with --json the error object additionally goes to stdout so
// scripted callers can branch on the kind.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if jsonOutput {
			data, mErr := json.Marshal(gderr.JSONObject(err))
			if mErr == nil {
				fmt.Println(string(data))
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON instead of styled text")
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace id (overrides the configured default)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
