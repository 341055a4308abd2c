package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revue-dev/revue/internal/config"
	"github.com/revue-dev/revue/internal/engine"
	"github.com/revue-dev/revue/internal/extract"
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/output"
	"github.com/revue-dev/revue/internal/report"
	"github.com/revue-dev/revue/internal/rule"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Review files or directories and output a report",
	Long: `Extract facts from the given paths, evaluate every enabled rule, and
render the aggregated report. Directories are walked recursively;
vendored and generated trees are skipped.

Exit codes:
  0 — clean, at worst nitpicks
  1 — suggestions found
  2 — blockers found`,
	RunE: runCheck,
}

func init() {
	addReviewFlags(checkCmd)
}

// addReviewFlags registers the flags shared by the reviewing commands.
func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "output format: text, json, markdown, sarif")
	cmd.Flags().StringSlice("dimensions", nil, "restrict review to these dimensions")
	cmd.Flags().Int("max-file-lines", 0, "file length ceiling for the file-too-long rule")
	cmd.Flags().String("framework", "", "force framework rules: react, vue, angular")
	cmd.Flags().Bool("snippets", false, "include highlighted source snippets in text output")
	cmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}

	units, err := resolveUnits(args)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		fmt.Println("No files to check.")
		return nil
	}
	applyFramework(units, cfg.Framework)

	res, err := engine.New(reg).EvaluateAll(cmd.Context(), evalUnits(units))
	if err != nil {
		return err
	}

	rep := report.Aggregate(unitName(args), res.Findings, res.Errors)
	if err := renderReport(cmd, cfg, rep); err != nil {
		return err
	}

	if code := exitFor(rep); code != ExitClean {
		os.Exit(code)
	}
	return nil
}

// loadConfig resolves the effective configuration: defaults, then config
// file and environment, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("dimensions") {
		cfg.Dimensions, _ = cmd.Flags().GetStringSlice("dimensions")
	}
	if cmd.Flags().Changed("max-file-lines") {
		cfg.MaxFileLines, _ = cmd.Flags().GetInt("max-file-lines")
	}
	if cmd.Flags().Changed("framework") {
		cfg.Framework, _ = cmd.Flags().GetString("framework")
	}
	if cmd.Flags().Changed("snippets") {
		cfg.Snippets, _ = cmd.Flags().GetBool("snippets")
	}
	return cfg, nil
}

func newRegistry(cfg config.Config) (*rule.Registry, error) {
	opts, err := cfg.RuleOptions()
	if err != nil {
		return nil, err
	}
	return rule.NewRegistry(opts)
}

// resolveUnits extracts facts for every argument. Directories are walked,
// files are taken as given. No arguments means the current directory.
func resolveUnits(args []string) ([]extract.Unit, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var units []extract.Unit
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dirUnits, err := extract.ScanDir(arg)
			if err != nil {
				return nil, err
			}
			units = append(units, dirUnits...)
			continue
		}
		files = append(files, arg)
	}
	if len(files) > 0 {
		fileUnits, err := extract.ScanFiles(files)
		if err != nil {
			return nil, err
		}
		units = append(units, fileUnits...)
	}
	return units, nil
}

// applyFramework pins the framework fact on every unit when the
// configuration forces one, overriding per-file detection.
func applyFramework(units []extract.Unit, fw string) {
	if fw == "" {
		return
	}
	for i := range units {
		units[i].Facts = units[i].Facts.With(fact.Framework, fact.StringValue(fw))
	}
}

func evalUnits(units []extract.Unit) []engine.Unit {
	out := make([]engine.Unit, len(units))
	for i, u := range units {
		out[i] = engine.Unit{Name: u.Path, Facts: u.Facts}
	}
	return out
}

// unitName labels the report with what was reviewed.
func unitName(args []string) string {
	switch len(args) {
	case 0:
		return "."
	case 1:
		return args[0]
	default:
		return strings.Join(args, " ")
	}
}

func renderReport(cmd *cobra.Command, cfg config.Config, rep *report.Report) error {
	wr, err := output.Get(cfg.Format)
	if err != nil {
		return err
	}
	switch w := wr.(type) {
	case *output.TextWriter:
		if cfg.Snippets {
			w.Source = os.ReadFile
		}
	case *output.SARIFWriter:
		w.Version = version
	}
	outPath, _ := cmd.Flags().GetString("output")
	return output.WriteReport(rep, wr, outPath)
}

// exitFor maps a finished report to the process exit code. Blockers fail
// hard, suggestions fail soft, nitpicks alone stay green.
func exitFor(rep *report.Report) int {
	switch {
	case rep.Counts.Blockers > 0:
		return ExitBlockers
	case rep.Counts.Suggestions > 0:
		return ExitSuggestions
	default:
		return ExitClean
	}
}
