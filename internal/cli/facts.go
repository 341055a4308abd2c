package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/revue-dev/revue/internal/fact"
)

var factsCmd = &cobra.Command{
	Use:   "facts [path]",
	Short: "Print the facts extracted from a file or directory",
	Long: `Extract review facts without evaluating any rules and print them as
JSON. This is the exact input rules run against, useful for debugging
extraction and for building review payloads for the API.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacts,
}

func init() {
	factsCmd.Flags().String("framework", "", "force framework rules: react, vue, angular")
}

func runFacts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	units, err := resolveUnits(args)
	if err != nil {
		return err
	}
	applyFramework(units, cfg.Framework)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if len(units) == 1 {
		return enc.Encode(units[0].Facts)
	}

	type entry struct {
		Path  string    `json:"path"`
		Facts *fact.Set `json:"facts"`
	}
	out := make([]entry, len(units))
	for i, u := range units {
		out[i] = entry{Path: u.Path, Facts: u.Facts}
	}
	return enc.Encode(out)
}
