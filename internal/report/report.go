// Package report aggregates raw evaluation output into the final review
// report.
//
// Reports are value snapshots: Aggregate copies everything it is handed,
// sorts findings into the canonical order, and collapses structural
// duplicates, so serializing the same evaluation twice yields identical
// bytes.
package report

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// Tool names the producer in serialized reports.
const Tool = "revue"

// SeverityCounts tallies findings per severity tier.
type SeverityCounts struct {
	Blockers    int `json:"blockers"`
	Suggestions int `json:"suggestions"`
	Nitpicks    int `json:"nitpicks"`
}

// Report is the finished result of one review.
type Report struct {
	Tool              string                  `json:"tool"`
	VocabularyVersion string                  `json:"vocabularyVersion"`
	Unit              string                  `json:"unit,omitempty"`
	Findings          []model.Finding         `json:"findings"`
	RuleErrors        []model.RuleError       `json:"ruleErrors,omitempty"`
	Counts            SeverityCounts          `json:"counts"`
	Dimensions        map[model.Dimension]int `json:"dimensions,omitempty"`
}

// Aggregate builds a report from evaluation output. Structural duplicates,
// same rule id and same locations, collapse into one finding; when the
// duplicates disagree on severity the most severe copy is kept. Findings
// sort by severity, canonical dimension order, then rule id.
func Aggregate(unit string, findings []model.Finding, ruleErrors []model.RuleError) *Report {
	deduped := dedupe(findings)
	slices.SortFunc(deduped, model.CompareFindings)

	errs := make([]model.RuleError, len(ruleErrors))
	copy(errs, ruleErrors)
	slices.SortFunc(errs, func(a, b model.RuleError) int {
		if a.RuleID != b.RuleID {
			return strings.Compare(a.RuleID, b.RuleID)
		}
		return strings.Compare(a.Message, b.Message)
	})
	if len(errs) == 0 {
		errs = nil
	}

	r := &Report{
		Tool:              Tool,
		VocabularyVersion: fact.VocabularyVersion,
		Unit:              unit,
		Findings:          deduped,
		RuleErrors:        errs,
	}
	for _, f := range deduped {
		switch f.Severity {
		case model.Blocker:
			r.Counts.Blockers++
		case model.Suggestion:
			r.Counts.Suggestions++
		case model.Nitpick:
			r.Counts.Nitpicks++
		}
		if r.Dimensions == nil {
			r.Dimensions = make(map[model.Dimension]int)
		}
		r.Dimensions[f.Dimension]++
	}
	return r
}

func dedupe(findings []model.Finding) []model.Finding {
	out := make([]model.Finding, 0, len(findings))
	seen := make(map[string]int, len(findings))
	for _, f := range findings {
		key := f.Key()
		if idx, ok := seen[key]; ok {
			if f.Severity > out[idx].Severity {
				out[idx] = f
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, f)
	}
	return out
}

// Total returns the number of findings.
func (r *Report) Total() int { return len(r.Findings) }

// HasBlockers reports whether any blocker survived aggregation.
func (r *Report) HasBlockers() bool { return r.Counts.Blockers > 0 }

// ByDimension returns the findings of one dimension in report order.
func (r *Report) ByDimension(d model.Dimension) []model.Finding {
	var out []model.Finding
	for _, f := range r.Findings {
		if f.Dimension == d {
			out = append(out, f)
		}
	}
	return out
}

// JSON returns the canonical serialized form. Equal reports marshal to
// identical bytes.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
