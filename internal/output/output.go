// Package output renders finished reports for terminals, pull requests,
// and CI tooling.
//
// Four formats are supported:
//   - text     — lipgloss-styled terminal output (default)
//   - json     — the full structured report
//   - markdown — the review checklist, grouped by dimension
//   - sarif    — SARIF v2.1.0 for code-scanning uploads
//
// Writers present; they never reorder, drop, or re-rank findings.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/report"
)

// Writer renders one report in one format.
type Writer interface {
	Write(w io.Writer, rep *report.Report) error
}

// Get returns the writer for a format name.
func Get(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport renders rep to outPath, or to stdout when outPath is
// empty.
func WriteReport(rep *report.Report, wr Writer, outPath string) error {
	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}
	return wr.Write(w, rep)
}

// severityGlyph is the marker the review checklist uses for each
// severity.
func severityGlyph(s model.Severity) string {
	switch s {
	case model.Blocker:
		return "🔴"
	case model.Suggestion:
		return "🟡"
	default:
		return "🟢"
	}
}

func joinLocations(locs []model.Location) string {
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}
