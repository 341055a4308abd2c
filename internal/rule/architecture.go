package rule

import (
	"fmt"
	"strings"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// architectureRules watches module boundaries: coupling, layering, and
// component shape.
func architectureRules() []Rule {
	return []Rule{
		{
			ID:        "import-fan-out",
			Dimension: model.Architecture,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				count, ok := s.Int(fact.ImportCount)
				if !ok || count <= 15 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("file imports %d modules; it likely has more than one responsibility", count),
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "deep-relative-imports",
			Dimension: model.Architecture,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.DeepImportLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "deeply nested relative imports; add a path alias",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "layer-violation",
			Dimension: model.Architecture,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.LayerViolationLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "UI layer imports persistence internals directly",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "circular-imports",
			Dimension: model.Architecture,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				chains, _ := s.Seq(fact.CircularImportChains)
				if len(chains) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("circular imports: %s", strings.Join(chains, "; ")),
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "prop-overload",
			Dimension: model.Architecture,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				count, ok := s.Int(fact.PropCount)
				if !ok || count <= 10 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("component takes %d props; group them or split the component", count),
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "fetch-in-component",
			Dimension: model.Architecture,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				fetches, _ := s.Bool(fact.FetchInComponent)
				renders, _ := s.Bool(fact.HasJSX)
				if !fetches || !renders {
					return nil, nil
				}
				return &Outcome{
					Message:   "network calls inside a rendering component; move data access behind a hook or service",
					Locations: fileLocation(s),
				}, nil
			},
		},
	}
}
