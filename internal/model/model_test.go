package model

import (
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{Nitpick, "nitpick"},
		{Suggestion, "suggestion"},
		{Blocker, "blocker"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestSeverityEscalated(t *testing.T) {
	tests := []struct {
		sev  Severity
		want Severity
	}{
		{Nitpick, Suggestion},
		{Suggestion, Blocker},
		{Blocker, Blocker},
	}
	for _, tt := range tests {
		if got := tt.sev.Escalated(); got != tt.want {
			t.Errorf("%s.Escalated() = %s, want %s", tt.sev, got, tt.want)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(Nitpick.Rank() < Suggestion.Rank() && Suggestion.Rank() < Blocker.Rank()) {
		t.Errorf("severity ranks out of order: nitpick=%d suggestion=%d blocker=%d",
			Nitpick.Rank(), Suggestion.Rank(), Blocker.Rank())
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"blocker", Blocker, false},
		{"Suggestion", Suggestion, false},
		{" nitpick ", Nitpick, false},
		{"critical", Nitpick, true},
		{"", Nitpick, true},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeverity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseSeverity(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDimensionString(t *testing.T) {
	tests := []struct {
		dim  Dimension
		want string
	}{
		{Quality, "quality"},
		{TypeSafety, "type-safety"},
		{Architecture, "architecture"},
		{Performance, "performance"},
		{Accessibility, "accessibility"},
		{Security, "security"},
		{Testing, "testing"},
		{Styling, "styling"},
		{Dimension(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.dim.String(); got != tt.want {
			t.Errorf("Dimension(%d).String() = %q, want %q", tt.dim, got, tt.want)
		}
	}
}

func TestParseDimensionRoundTrip(t *testing.T) {
	for _, dim := range Dimensions() {
		got, err := ParseDimension(dim.String())
		if err != nil {
			t.Fatalf("ParseDimension(%q): %v", dim.String(), err)
		}
		if got != dim {
			t.Errorf("ParseDimension(%q) = %v, want %v", dim.String(), got, dim)
		}
	}
	if _, err := ParseDimension("cosmic"); err == nil {
		t.Error("ParseDimension(\"cosmic\") expected error")
	}
}

func TestCanonicalOrder(t *testing.T) {
	order := CanonicalOrder()
	if len(order) != len(Dimensions()) {
		t.Fatalf("canonical order has %d dimensions, want %d", len(order), len(Dimensions()))
	}
	if order[0] != Security {
		t.Errorf("canonical order starts with %s, want security", order[0])
	}
	if order[len(order)-1] != Styling {
		t.Errorf("canonical order ends with %s, want styling", order[len(order)-1])
	}
	seen := make(map[Dimension]bool)
	for _, d := range order {
		if seen[d] {
			t.Errorf("dimension %s appears twice in canonical order", d)
		}
		seen[d] = true
	}
	if Security.CanonicalRank() >= Styling.CanonicalRank() {
		t.Errorf("security rank %d should come before styling rank %d",
			Security.CanonicalRank(), Styling.CanonicalRank())
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{File: "src/app.tsx", Line: 42}, "src/app.tsx:42"},
		{Location{File: "src/app.tsx"}, "src/app.tsx"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("Location%+v.String() = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want Location
	}{
		{"src/app.tsx:42", Location{File: "src/app.tsx", Line: 42}},
		{"src/app.tsx", Location{File: "src/app.tsx"}},
		{"src/app.tsx:", Location{File: "src/app.tsx:"}},
		{"src/app.tsx:abc", Location{File: "src/app.tsx:abc"}},
		{":12", Location{File: ":12"}},
	}
	for _, tt := range tests {
		if got := ParseLocation(tt.in); got != tt.want {
			t.Errorf("ParseLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFindingKey(t *testing.T) {
	a := Finding{
		RuleID:    "no-explicit-any",
		Severity:  Suggestion,
		Locations: []Location{{File: "src/app.tsx", Line: 10}},
	}
	b := Finding{
		RuleID:    "no-explicit-any",
		Severity:  Blocker,
		Message:   "different message",
		Locations: []Location{{File: "src/app.tsx", Line: 10}},
	}
	if a.Key() != b.Key() {
		t.Errorf("findings with same rule and locations should share a key: %q vs %q", a.Key(), b.Key())
	}
	c := Finding{
		RuleID:    "no-explicit-any",
		Locations: []Location{{File: "src/app.tsx", Line: 11}},
	}
	if a.Key() == c.Key() {
		t.Errorf("findings at different locations should not share a key: %q", a.Key())
	}
}

func TestCompareFindings(t *testing.T) {
	blockerSec := Finding{RuleID: "no-eval", Dimension: Security, Severity: Blocker}
	suggSec := Finding{RuleID: "dom-xss-sink", Dimension: Security, Severity: Suggestion}
	suggQual := Finding{RuleID: "file-too-long", Dimension: Quality, Severity: Suggestion}
	suggTS := Finding{RuleID: "no-explicit-any", Dimension: TypeSafety, Severity: Suggestion}

	if CompareFindings(blockerSec, suggSec) >= 0 {
		t.Error("blocker should sort before suggestion")
	}
	if CompareFindings(suggSec, suggQual) >= 0 {
		t.Error("security should sort before quality at equal severity")
	}
	if CompareFindings(suggTS, suggQual) >= 0 {
		t.Error("type-safety should sort before quality at equal severity")
	}

	a := Finding{RuleID: "aaa", Dimension: Quality, Severity: Nitpick}
	b := Finding{RuleID: "bbb", Dimension: Quality, Severity: Nitpick}
	if CompareFindings(a, b) >= 0 {
		t.Error("equal severity and dimension should fall back to rule id order")
	}
}
