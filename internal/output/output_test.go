package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/report"
)

func sampleReport() *report.Report {
	findings := []model.Finding{
		{
			RuleID:    "inline-styles",
			Dimension: model.Styling,
			Severity:  model.Nitpick,
			Message:   "move inline styles into a stylesheet",
			Locations: []model.Location{{File: "src/cart.ts", Line: 14}},
		},
		{
			RuleID:    "no-eval",
			Dimension: model.Security,
			Severity:  model.Blocker,
			Message:   "eval executes arbitrary strings",
			Locations: []model.Location{{File: "src/cart.ts", Line: 3}},
		},
		{
			RuleID:    "file-too-long",
			Dimension: model.Quality,
			Severity:  model.Suggestion,
			Message:   "file has 520 lines, over the 300 line limit; split it up",
			Locations: []model.Location{{File: "src/cart.ts"}},
		},
	}
	errs := []model.RuleError{{RuleID: "exploding-rule", Message: "boom"}}
	return report.Aggregate("src/cart.ts", findings, errs)
}

func TestGet(t *testing.T) {
	for _, format := range []string{"text", "json", "markdown", "md", "sarif", ""} {
		if _, err := Get(format); err != nil {
			t.Errorf("Get(%q) error: %v", format, err)
		}
	}
	if _, err := Get("yaml"); err == nil {
		t.Error("Get(yaml) should fail")
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &TextWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Findings: 3 (1 blockers, 1 suggestions, 1 nitpicks)") {
		t.Errorf("missing counts line in %q", out)
	}
	// Blockers come first.
	if strings.Index(out, "no-eval") > strings.Index(out, "file-too-long") {
		t.Error("blocker should be rendered before suggestion")
	}
	for _, want := range []string{"no-eval", "BLOCKER", "src/cart.ts:3", "exploding-rule: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTextWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := &TextWriter{}
	if err := w.Write(&buf, report.Aggregate("", nil, nil)); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "No findings.") {
		t.Errorf("empty report output = %q", buf.String())
	}
}

func TestTextWriterSnippets(t *testing.T) {
	src := "const a = 1\nconst b = 2\neval(payload)\n"
	w := &TextWriter{
		Source: func(path string) ([]byte, error) {
			if path != "src/cart.ts" {
				t.Errorf("unexpected source load for %s", path)
			}
			return []byte(src), nil
		},
	}

	var buf bytes.Buffer
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "3 │") {
		t.Error("missing line-number gutter for the eval snippet")
	}
	if !strings.Contains(out, "payload") {
		t.Error("missing snippet source text")
	}
}

func TestMarkdownWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := &MarkdownWriter{}
	if err := w.Write(&buf, report.Aggregate("", nil, nil)); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Code review") {
		t.Error("missing heading")
	}
	if !strings.Contains(out, "No findings. :white_check_mark:") {
		t.Error("missing empty-report line")
	}
}

func TestMarkdownWriterChecklist(t *testing.T) {
	var buf bytes.Buffer
	w := &MarkdownWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Code review: src/cart.ts") {
		t.Error("missing unit heading")
	}
	if !strings.Contains(out, "**3 findings** (1 blockers, 1 suggestions, 1 nitpicks)") {
		t.Error("missing summary line")
	}
	for _, want := range []string{
		"- [ ] 🔴 **no-eval** eval executes arbitrary strings (src/cart.ts:3)",
		"- [ ] 🟡 **file-too-long**",
		"- [ ] 🟢 **inline-styles**",
		"- `exploding-rule`: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Dimension sections follow the canonical order.
	security := strings.Index(out, "### Security")
	quality := strings.Index(out, "### Quality")
	styling := strings.Index(out, "### Styling")
	if security < 0 || quality < 0 || styling < 0 {
		t.Fatalf("missing dimension sections in %q", out)
	}
	if !(security < quality && quality < styling) {
		t.Error("dimension sections out of canonical order")
	}
}

func TestJSONWriterDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&first, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := w.Write(&second, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("identical reports should render to identical JSON")
	}
	if !strings.Contains(first.String(), `"tool": "revue"`) {
		t.Error("missing tool field")
	}
}

func TestSARIFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &SARIFWriter{Version: "1.2.3"}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if log.Version != "2.1.0" {
		t.Errorf("version = %s, want 2.1.0", log.Version)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(log.Runs))
	}

	run := log.Runs[0]
	if run.Tool.Driver.Name != "revue" {
		t.Errorf("driver name = %s", run.Tool.Driver.Name)
	}
	if run.Tool.Driver.Version != "1.2.3" {
		t.Errorf("driver version = %s", run.Tool.Driver.Version)
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}

	levels := map[string]string{}
	for _, r := range run.Results {
		levels[r.RuleID] = r.Level
	}
	wantLevels := map[string]string{
		"no-eval":       "error",
		"file-too-long": "warning",
		"inline-styles": "note",
	}
	for id, want := range wantLevels {
		if levels[id] != want {
			t.Errorf("level[%s] = %s, want %s", id, levels[id], want)
		}
	}

	// A located finding carries a region; a whole-file one does not.
	for _, r := range run.Results {
		switch r.RuleID {
		case "no-eval":
			if r.Locations[0].PhysicalLocation.Region == nil ||
				r.Locations[0].PhysicalLocation.Region.StartLine != 3 {
				t.Error("no-eval should have a region at line 3")
			}
		case "file-too-long":
			if r.Locations[0].PhysicalLocation.Region != nil {
				t.Error("whole-file finding should have no region")
			}
		}
	}
}

func TestWriteReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteReport(sampleReport(), &JSONWriter{}, path); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if !strings.Contains(string(data), `"tool": "revue"`) {
		t.Error("file output missing report body")
	}
}
