package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/report"
)

var (
	blockerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")).Bold(true)
	nitpickStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	ruleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd"))
	dimmedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
	titleStyle      = lipgloss.NewStyle().Bold(true)
)

// TextWriter renders a human-readable terminal report. When Source is
// set it is used to load the reviewed files so each finding can show its
// offending line, syntax highlighted.
type TextWriter struct {
	Source func(path string) ([]byte, error)
}

func (t *TextWriter) Write(w io.Writer, rep *report.Report) error {
	ew := &errWriter{w: w}

	title := rep.Tool
	if rep.Unit != "" {
		title += ": " + rep.Unit
	}
	ew.println(titleStyle.Render(title))
	ew.println(dimmedStyle.Render(strings.Repeat("─", 60)))

	if rep.Total() == 0 {
		ew.println("No findings.")
	} else {
		ew.printf("Findings: %d (%d blockers, %d suggestions, %d nitpicks)\n",
			rep.Total(),
			rep.Counts.Blockers,
			rep.Counts.Suggestions,
			rep.Counts.Nitpicks,
		)
	}

	for _, f := range rep.Findings {
		style := severityStyle(f.Severity)
		ew.printf("\n%s %s  %s %s\n",
			severityGlyph(f.Severity),
			style.Render(strings.ToUpper(f.Severity.String())),
			ruleStyle.Render(f.RuleID),
			dimmedStyle.Render("["+f.Dimension.String()+"]"),
		)
		ew.printf("   %s\n", f.Message)
		if len(f.Locations) > 0 {
			ew.printf("   %s\n", dimmedStyle.Render("at "+joinLocations(f.Locations)))
		}
		t.snippet(ew, f)
	}

	if len(rep.RuleErrors) > 0 {
		ew.printf("\n%s\n", titleStyle.Render("Rule errors"))
		for _, re := range rep.RuleErrors {
			ew.printf("  %s: %s\n", re.RuleID, re.Message)
		}
	}

	return ew.err
}

// snippet prints the first located line of a finding. Unreadable files
// and out-of-range lines are skipped quietly; the finding already stands
// on its own.
func (t *TextWriter) snippet(ew *errWriter, f model.Finding) {
	if t.Source == nil || len(f.Locations) == 0 {
		return
	}
	loc := f.Locations[0]
	if loc.Line <= 0 {
		return
	}
	data, err := t.Source(loc.File)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	if loc.Line > len(lines) {
		return
	}
	text := strings.TrimRight(lines[loc.Line-1], "\r")
	ew.printf("   %s %s\n",
		dimmedStyle.Render(fmt.Sprintf("%4d │", loc.Line)),
		highlightLine(loc.File, text),
	)
}

func severityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.Blocker:
		return blockerStyle
	case model.Suggestion:
		return suggestionStyle
	default:
		return nitpickStyle
	}
}

// errWriter wraps an io.Writer and keeps the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
