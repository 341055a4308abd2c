package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/rule"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered review rules",
	Long: `List every registered rule with its default severity, grouped by
dimension. Severity overrides from the configuration are already
applied.`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringSlice("dimensions", nil, "restrict review to these dimensions")
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	byDimension := make(map[model.Dimension][]rule.Rule)
	for _, rl := range reg.Rules() {
		byDimension[rl.Dimension] = append(byDimension[rl.Dimension], rl)
	}

	for _, d := range model.CanonicalOrder() {
		rules := byDimension[d]
		if len(rules) == 0 {
			continue
		}
		status := ""
		if !reg.Enabled(d) {
			status = " (disabled)"
		}
		fmt.Printf("%s%s\n", d.Label(), status)
		for _, rl := range rules {
			fmt.Printf("  %-26s %s\n", rl.ID, rl.Severity)
		}
		fmt.Println()
	}
	return nil
}
