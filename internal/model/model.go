// Package model defines the core data types shared across revue.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity is the priority tier of a finding.
type Severity int

const (
	Nitpick Severity = iota
	Suggestion
	Blocker
)

func (s Severity) String() string {
	switch s {
	case Nitpick:
		return "nitpick"
	case Suggestion:
		return "suggestion"
	case Blocker:
		return "blocker"
	default:
		return "unknown"
	}
}

// Rank returns a numeric rank for ordering (higher = more severe).
func (s Severity) Rank() int { return int(s) }

// Escalated returns the next severity up, capped at Blocker.
func (s Severity) Escalated() Severity {
	if s >= Blocker {
		return Blocker
	}
	return s + 1
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	parsed, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a severity name to its Severity value.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nitpick":
		return Nitpick, nil
	case "suggestion":
		return Suggestion, nil
	case "blocker":
		return Blocker, nil
	}
	return Nitpick, fmt.Errorf("unknown severity %q", name)
}

// Dimension is the fixed category a rule or finding belongs to.
type Dimension int

const (
	Quality Dimension = iota
	TypeSafety
	Architecture
	Performance
	Accessibility
	Security
	Testing
	Styling
)

func (d Dimension) String() string {
	switch d {
	case Quality:
		return "quality"
	case TypeSafety:
		return "type-safety"
	case Architecture:
		return "architecture"
	case Performance:
		return "performance"
	case Accessibility:
		return "accessibility"
	case Security:
		return "security"
	case Testing:
		return "testing"
	case Styling:
		return "styling"
	default:
		return "unknown"
	}
}

// Label returns the display name used in rendered reports.
func (d Dimension) Label() string {
	switch d {
	case TypeSafety:
		return "Type Safety"
	case Quality:
		return "Quality"
	case Architecture:
		return "Architecture"
	case Performance:
		return "Performance"
	case Accessibility:
		return "Accessibility"
	case Security:
		return "Security"
	case Testing:
		return "Testing"
	case Styling:
		return "Styling"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Dimension) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dimension) UnmarshalText(b []byte) error {
	parsed, err := ParseDimension(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDimension converts a dimension name to its Dimension value.
// Both "type-safety" and "typesafety" spellings are accepted.
func ParseDimension(name string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quality":
		return Quality, nil
	case "type-safety", "typesafety":
		return TypeSafety, nil
	case "architecture":
		return Architecture, nil
	case "performance":
		return Performance, nil
	case "accessibility":
		return Accessibility, nil
	case "security":
		return Security, nil
	case "testing":
		return Testing, nil
	case "styling":
		return Styling, nil
	}
	return Quality, fmt.Errorf("unknown dimension %q", name)
}

// Dimensions returns all dimensions in declaration order.
func Dimensions() []Dimension {
	return []Dimension{Quality, TypeSafety, Architecture, Performance, Accessibility, Security, Testing, Styling}
}

// CanonicalOrder returns dimensions in report order: security concerns
// first, cosmetic concerns last.
func CanonicalOrder() []Dimension {
	return []Dimension{Security, TypeSafety, Quality, Architecture, Performance, Accessibility, Testing, Styling}
}

// CanonicalRank returns the position of d in the canonical report order.
func (d Dimension) CanonicalRank() int {
	for i, dim := range CanonicalOrder() {
		if dim == d {
			return i
		}
	}
	return len(CanonicalOrder())
}

// Location identifies a place in a source unit. Line 0 means the finding
// applies to the whole file.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line,omitempty"`
}

func (l Location) String() string {
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// ParseLocation parses a "path:line" reference as carried in fact values.
// A missing or malformed line suffix yields a file-level location.
func ParseLocation(s string) Location {
	idx := strings.LastIndex(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return Location{File: s}
	}
	line, err := strconv.Atoi(s[idx+1:])
	if err != nil || line < 0 {
		return Location{File: s}
	}
	return Location{File: s[:idx], Line: line}
}

// Finding is one concrete, severity-tagged issue produced by a rule.
// Findings are value objects: two findings with the same rule id and the
// same locations are structural duplicates.
type Finding struct {
	RuleID    string     `json:"ruleId"`
	Dimension Dimension  `json:"dimension"`
	Severity  Severity   `json:"severity"`
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

// Key returns the structural identity of the finding.
func (f Finding) Key() string {
	var b strings.Builder
	b.WriteString(f.RuleID)
	for _, loc := range f.Locations {
		b.WriteByte('|')
		b.WriteString(loc.String())
	}
	return b.String()
}

// RuleError records a rule predicate that failed during evaluation. The
// review continues without that rule; the error travels with the report so
// a reviewer knows the heuristic degraded.
type RuleError struct {
	RuleID  string `json:"ruleId"`
	Message string `json:"message"`
}

// CompareFindings defines the total order of findings in a report:
// severity (most severe first), then canonical dimension order, then rule
// id, then locations. Returns negative when a sorts before b.
func CompareFindings(a, b Finding) int {
	if a.Severity != b.Severity {
		return b.Severity.Rank() - a.Severity.Rank()
	}
	if ar, br := a.Dimension.CanonicalRank(), b.Dimension.CanonicalRank(); ar != br {
		return ar - br
	}
	if a.RuleID != b.RuleID {
		return strings.Compare(a.RuleID, b.RuleID)
	}
	return strings.Compare(a.Key(), b.Key())
}
