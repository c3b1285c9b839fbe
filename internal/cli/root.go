// Package cli implements the sensei command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pablasso/sensei/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sensei",
	Short: "AI schedule review for Microsoft Project exports",
	Long: `Sensei parses a Microsoft Project XML export into a task list and sends it
to a chat-completion service for a full schedule audit or a targeted question.
Run without arguments for the interactive UI.`,
	Version:      fmt.Sprintf("%s (%s, %s)", version.Version, version.CommitSHA, version.BuildDate),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
