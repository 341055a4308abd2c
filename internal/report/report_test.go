package report

import (
	"bytes"
	"testing"

	"github.com/revue-dev/revue/internal/model"
)

func loc(file string, line int) model.Location {
	return model.Location{File: file, Line: line}
}

func TestAggregateSortsCanonically(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "inline-styles", Dimension: model.Styling, Severity: model.Nitpick},
		{RuleID: "file-too-long", Dimension: model.Quality, Severity: model.Suggestion},
		{RuleID: "no-eval", Dimension: model.Security, Severity: model.Blocker},
		{RuleID: "no-explicit-any", Dimension: model.TypeSafety, Severity: model.Suggestion},
		{RuleID: "dom-xss-sink", Dimension: model.Security, Severity: model.Suggestion},
	}
	r := Aggregate("src/app.tsx", findings, nil)

	want := []string{"no-eval", "dom-xss-sink", "no-explicit-any", "file-too-long", "inline-styles"}
	if len(r.Findings) != len(want) {
		t.Fatalf("got %d findings, want %d", len(r.Findings), len(want))
	}
	for i, id := range want {
		if r.Findings[i].RuleID != id {
			t.Errorf("position %d = %s, want %s", i, r.Findings[i].RuleID, id)
		}
	}
	// Severities never increase down the report.
	for i := 1; i < len(r.Findings); i++ {
		if r.Findings[i].Severity > r.Findings[i-1].Severity {
			t.Errorf("severity rises at position %d", i)
		}
	}
}

func TestAggregateDedupes(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "leftover-todos", Dimension: model.Quality, Severity: model.Nitpick,
			Message: "2 TODO markers left in the file", Locations: []model.Location{loc("src/a.ts", 3)}},
		{RuleID: "leftover-todos", Dimension: model.Quality, Severity: model.Nitpick,
			Message: "2 TODO markers left in the file", Locations: []model.Location{loc("src/a.ts", 3)}},
		{RuleID: "leftover-todos", Dimension: model.Quality, Severity: model.Nitpick,
			Message: "1 TODO markers left in the file", Locations: []model.Location{loc("src/b.ts", 9)}},
	}
	r := Aggregate("", findings, nil)
	if len(r.Findings) != 2 {
		t.Fatalf("got %d findings, want 2 after dedupe: %+v", len(r.Findings), r.Findings)
	}
	if r.Counts.Nitpicks != 2 {
		t.Errorf("nitpick count = %d, want 2", r.Counts.Nitpicks)
	}
}

func TestAggregateDedupeKeepsMostSevere(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "dom-xss-sink", Dimension: model.Security, Severity: model.Suggestion,
			Locations: []model.Location{loc("src/render.ts", 88)}},
		{RuleID: "dom-xss-sink", Dimension: model.Security, Severity: model.Blocker,
			Locations: []model.Location{loc("src/render.ts", 88)}},
	}
	r := Aggregate("", findings, nil)
	if len(r.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(r.Findings))
	}
	if r.Findings[0].Severity != model.Blocker {
		t.Errorf("kept severity = %s, want blocker", r.Findings[0].Severity)
	}
	if r.Counts.Blockers != 1 || r.Counts.Suggestions != 0 {
		t.Errorf("counts = %+v, want one blocker", r.Counts)
	}
}

func TestAggregateCounts(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "no-eval", Dimension: model.Security, Severity: model.Blocker},
		{RuleID: "file-too-long", Dimension: model.Quality, Severity: model.Suggestion},
		{RuleID: "debug-logging", Dimension: model.Quality, Severity: model.Suggestion},
		{RuleID: "inline-styles", Dimension: model.Styling, Severity: model.Nitpick},
	}
	r := Aggregate("src/app.tsx", findings, nil)

	if r.Counts.Blockers != 1 || r.Counts.Suggestions != 2 || r.Counts.Nitpicks != 1 {
		t.Errorf("counts = %+v", r.Counts)
	}
	if r.Dimensions[model.Quality] != 2 {
		t.Errorf("quality dimension count = %d, want 2", r.Dimensions[model.Quality])
	}
	if r.Dimensions[model.Styling] != 1 {
		t.Errorf("styling dimension count = %d, want 1", r.Dimensions[model.Styling])
	}
	if !r.HasBlockers() {
		t.Error("HasBlockers() = false with a blocker present")
	}
	if r.Total() != 4 {
		t.Errorf("Total() = %d, want 4", r.Total())
	}
}

func TestAggregateEmpty(t *testing.T) {
	r := Aggregate("src/app.tsx", nil, nil)
	if r.Total() != 0 || r.HasBlockers() {
		t.Errorf("empty aggregate = %+v", r)
	}
	if r.Tool != Tool {
		t.Errorf("tool = %q, want %q", r.Tool, Tool)
	}
	if r.VocabularyVersion == "" {
		t.Error("vocabulary version missing")
	}
}

func TestAggregateImmutableFromInput(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "no-eval", Dimension: model.Security, Severity: model.Blocker},
	}
	r := Aggregate("", findings, nil)
	findings[0].RuleID = "mutated"
	if r.Findings[0].RuleID != "no-eval" {
		t.Error("report shares backing storage with its input")
	}
}

func TestAggregateIdempotent(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "inline-styles", Dimension: model.Styling, Severity: model.Nitpick},
		{RuleID: "no-eval", Dimension: model.Security, Severity: model.Blocker,
			Locations: []model.Location{loc("src/app.tsx", 5)}},
		{RuleID: "no-eval", Dimension: model.Security, Severity: model.Blocker,
			Locations: []model.Location{loc("src/app.tsx", 5)}},
	}
	errs := []model.RuleError{{RuleID: "exploding-rule", Message: "fact shape not understood"}}

	once := Aggregate("src/app.tsx", findings, errs)
	twice := Aggregate("src/app.tsx", once.Findings, once.RuleErrors)

	first, err := once.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	second, err := twice.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("re-aggregating a report changed it:\n%s\n%s", first, second)
	}
}

func TestReportJSONDeterministic(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "no-eval", Dimension: model.Security, Severity: model.Blocker,
			Message: "eval executes arbitrary strings as code",
			Locations: []model.Location{loc("src/app.tsx", 5)}},
		{RuleID: "file-too-long", Dimension: model.Quality, Severity: model.Suggestion,
			Message: "file has 520 lines, over the 300 line limit; split it up"},
	}
	errs := []model.RuleError{{RuleID: "exploding-rule", Message: "fact shape not understood"}}

	first, err := Aggregate("src/app.tsx", findings, errs).JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	second, err := Aggregate("src/app.tsx", findings, errs).JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("same evaluation serialized differently:\n%s\n%s", first, second)
	}
	if !bytes.Contains(first, []byte(`"tool": "revue"`)) {
		t.Errorf("serialized report missing tool name: %s", first)
	}
}

func TestByDimension(t *testing.T) {
	findings := []model.Finding{
		{RuleID: "no-eval", Dimension: model.Security, Severity: model.Blocker},
		{RuleID: "file-too-long", Dimension: model.Quality, Severity: model.Suggestion},
		{RuleID: "dom-xss-sink", Dimension: model.Security, Severity: model.Suggestion},
	}
	r := Aggregate("", findings, nil)
	sec := r.ByDimension(model.Security)
	if len(sec) != 2 {
		t.Fatalf("got %d security findings, want 2", len(sec))
	}
	if sec[0].RuleID != "no-eval" {
		t.Errorf("security findings out of report order: %+v", sec)
	}
	if got := r.ByDimension(model.Testing); len(got) != 0 {
		t.Errorf("testing dimension should be empty, got %+v", got)
	}
}
