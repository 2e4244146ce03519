package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatReset bool

var chatCmd = &cobra.Command{
	Use:   "chat <question...>",
	Short: "Ask the analytics backend a question in natural language",
	Long: `Ask the workspace's AI assistant a question about its data.

The conversation history is kept in memory for the lifetime of the
process and per workspace, so within one interactive session follow-up
questions see earlier turns. Use --reset to start over.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getSession()
		if err != nil {
			return err
		}
		workspace, err := resolveWorkspace()
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		answer, err := s.Chat().Converse(cmd.Context(), s.Backend(), workspace, question, chatReset)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]string{
				"workspace": workspace,
				"question":  question,
				"answer":    answer,
			})
		}
		fmt.Println(answer)
		return nil
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatReset, "reset", false, "Discard the conversation before asking")
	rootCmd.AddCommand(chatCmd)
}
