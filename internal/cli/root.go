// Package cli wires the revue commands.
package cli

import (
	"github.com/spf13/cobra"
)

// Exit codes for check and diff runs.
const (
	ExitClean       = 0
	ExitSuggestions = 1
	ExitBlockers    = 2
)

var rootCmd = &cobra.Command{
	Use:   "revue",
	Short: "Rule-based review for frontend changes",
	Long: `revue extracts facts from frontend source files and evaluates a battery
of review rules against them: the checks a careful reviewer repeats on
every pull request, ranked by severity and grouped by dimension.`,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (default .revue.json)")
	rootCmd.AddCommand(checkCmd, diffCmd, factsCmd, rulesCmd, serveCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
