package output

import (
	"io"

	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/report"
)

// MarkdownWriter renders the review checklist: findings grouped by
// dimension in canonical order, one checkbox per finding.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, rep *report.Report) error {
	ew := &errWriter{w: w}

	if rep.Unit != "" {
		ew.printf("## Code review: %s\n\n", rep.Unit)
	} else {
		ew.printf("## Code review\n\n")
	}

	if rep.Total() == 0 {
		ew.println("No findings. :white_check_mark:")
		m.ruleErrors(ew, rep)
		return ew.err
	}

	ew.printf("**%d findings** (%d blockers, %d suggestions, %d nitpicks)\n\n",
		rep.Total(),
		rep.Counts.Blockers,
		rep.Counts.Suggestions,
		rep.Counts.Nitpicks,
	)

	for _, d := range model.CanonicalOrder() {
		findings := rep.ByDimension(d)
		if len(findings) == 0 {
			continue
		}
		ew.printf("### %s\n\n", d.Label())
		for _, f := range findings {
			ew.printf("- [ ] %s **%s** %s", severityGlyph(f.Severity), f.RuleID, f.Message)
			if len(f.Locations) > 0 {
				ew.printf(" (%s)", joinLocations(f.Locations))
			}
			ew.println("")
		}
		ew.println("")
	}

	m.ruleErrors(ew, rep)
	return ew.err
}

func (m *MarkdownWriter) ruleErrors(ew *errWriter, rep *report.Report) {
	if len(rep.RuleErrors) == 0 {
		return
	}
	ew.printf("### Rule errors\n\n")
	for _, re := range rep.RuleErrors {
		ew.printf("- `%s`: %s\n", re.RuleID, re.Message)
	}
	ew.println("")
}
