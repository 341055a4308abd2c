package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revue-dev/revue/internal/extract"
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/report"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, want := range []string{"check", "diff", "facts", "rules", "serve", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
}

func TestExitFor(t *testing.T) {
	tests := []struct {
		name     string
		findings []model.Finding
		want     int
	}{
		{name: "clean", want: ExitClean},
		{
			name:     "nitpicks only",
			findings: []model.Finding{{RuleID: "leftover-todos", Severity: model.Nitpick}},
			want:     ExitClean,
		},
		{
			name:     "suggestions",
			findings: []model.Finding{{RuleID: "file-too-long", Severity: model.Suggestion}},
			want:     ExitSuggestions,
		},
		{
			name: "blockers win",
			findings: []model.Finding{
				{RuleID: "file-too-long", Severity: model.Suggestion},
				{RuleID: "no-eval", Severity: model.Blocker},
			},
			want: ExitBlockers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := report.Aggregate("", tt.findings, nil)
			if got := exitFor(rep); got != tt.want {
				t.Errorf("exitFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveUnits(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(sub, "cart.ts"), "console.log(1)\n")
	writeTestFile(t, filepath.Join(sub, "notes.txt"), "not source\n")

	units, err := resolveUnits([]string{dir})
	if err != nil {
		t.Fatalf("resolveUnits: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Path != "src/cart.ts" {
		t.Errorf("unit path = %q, want src/cart.ts", units[0].Path)
	}

	units, err = resolveUnits([]string{filepath.Join(sub, "cart.ts")})
	if err != nil {
		t.Fatalf("resolveUnits file: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit for a file argument, got %d", len(units))
	}
}

func TestApplyFramework(t *testing.T) {
	units := []extract.Unit{{Path: "src/cart.ts", Facts: fact.Empty()}}

	applyFramework(units, "")
	if units[0].Facts.Has(fact.Framework) {
		t.Error("empty override should leave facts alone")
	}

	applyFramework(units, fact.FrameworkReact)
	if fw, _ := units[0].Facts.String(fact.Framework); fw != fact.FrameworkReact {
		t.Errorf("framework = %q, want react", fw)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	if err := checkCmd.Flags().Set("format", "sarif"); err != nil {
		t.Fatal(err)
	}
	if err := checkCmd.Flags().Set("max-file-lines", "120"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(checkCmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Format != "sarif" {
		t.Errorf("format = %q, want sarif", cfg.Format)
	}
	if cfg.MaxFileLines != 120 {
		t.Errorf("maxFileLines = %d, want 120", cfg.MaxFileLines)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
