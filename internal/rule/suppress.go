package rule

import "github.com/revue-dev/revue/internal/model"

// suppression links two rules that flag the same underlying issue from
// different angles, usually a general rule and its framework-specific
// counterpart. When both trigger on one unit only one finding survives.
type suppression struct {
	a, b   string
	prefer string
}

var suppressions = []suppression{
	{a: "no-explicit-any", b: "missing-return-types", prefer: "no-explicit-any"},
	{a: "dom-xss-sink", b: "react-dangerous-html", prefer: "react-dangerous-html"},
	{a: "dom-xss-sink", b: "vue-v-html", prefer: "vue-v-html"},
	{a: "dom-xss-sink", b: "angular-bypass-sanitizer", prefer: "angular-bypass-sanitizer"},
	{a: "inline-styles", b: "react-style-prop", prefer: "react-style-prop"},
	{a: "inline-styles", b: "vue-static-style", prefer: "vue-static-style"},
}

// Suppress resolves overlapping findings from one evaluation. The more
// severe member of a pair wins; severities are compared after escalation.
// On a tie the pair's designated side wins, which keeps the framework
// phrasing when a framework rule overlaps a general one.
func Suppress(findings []model.Finding) []model.Finding {
	if len(findings) < 2 {
		return findings
	}
	byRule := make(map[string]int, len(findings))
	for i, f := range findings {
		byRule[f.RuleID] = i
	}
	drop := make(map[int]bool)
	for _, pair := range suppressions {
		ai, aok := byRule[pair.a]
		bi, bok := byRule[pair.b]
		if !aok || !bok {
			continue
		}
		var loser int
		switch {
		case findings[ai].Severity > findings[bi].Severity:
			loser = bi
		case findings[bi].Severity > findings[ai].Severity:
			loser = ai
		case pair.prefer == pair.a:
			loser = bi
		default:
			loser = ai
		}
		drop[loser] = true
	}
	if len(drop) == 0 {
		return findings
	}
	out := make([]model.Finding, 0, len(findings)-len(drop))
	for i, f := range findings {
		if !drop[i] {
			out = append(out, f)
		}
	}
	return out
}
