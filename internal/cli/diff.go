package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revue-dev/revue/internal/engine"
	"github.com/revue-dev/revue/internal/extract"
	"github.com/revue-dev/revue/internal/report"
)

var diffCmd = &cobra.Command{
	Use:   "diff [commit-range]",
	Short: "Review only the lines a git diff touches",
	Long: `Parse a unified diff and review the added lines of every changed
frontend file. Whole-file rules stay quiet for files the diff only
modifies. By default diffs the working tree against HEAD.

Examples:
  revue diff                   # working tree vs HEAD
  revue diff main...HEAD       # branch vs main
  git diff | revue diff -      # pipe any diff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

func init() {
	addReviewFlags(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	raw, err := readDiffInput(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		fmt.Println("No changes to review.")
		return nil
	}

	units, err := extract.FromDiffString(raw)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		fmt.Println("No frontend changes to review.")
		return nil
	}
	applyFramework(units, cfg.Framework)

	res, err := engine.New(reg).EvaluateAll(cmd.Context(), evalUnits(units))
	if err != nil {
		return err
	}

	rep := report.Aggregate(diffUnitName(args), res.Findings, res.Errors)
	if err := renderReport(cmd, cfg, rep); err != nil {
		return err
	}

	if code := exitFor(rep); code != ExitClean {
		os.Exit(code)
	}
	return nil
}

// readDiffInput returns the raw diff: stdin when "-" is passed, otherwise
// git diff against HEAD or the given commit range.
func readDiffInput(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	repoDir, err := extract.RepoRoot(".")
	if err != nil {
		return "", err
	}
	if len(args) == 1 {
		return extract.GitDiffRange(repoDir, args[0])
	}
	return extract.GitDiff(repoDir, "HEAD")
}

func diffUnitName(args []string) string {
	if len(args) == 0 {
		return "HEAD"
	}
	if args[0] == "-" {
		return ""
	}
	return args[0]
}
