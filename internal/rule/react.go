package rule

import (
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// reactRules only trigger when the framework fact says react. The pack is
// always registered so registries stay shareable across units.
func reactRules() []Rule {
	return []Rule{
		{
			ID:        "react-missing-effect-deps",
			Dimension: model.Quality,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkReact) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.EffectsMissingDepsLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "useEffect without a dependency array runs after every render",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "react-dangerous-html",
			Dimension: model.Security,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkReact) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.DangerousHTMLLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "dangerouslySetInnerHTML renders raw HTML; sanitize the value first",
					Locations: locations(refs),
				}, nil
			},
			Escalate: sinkHasUserInput,
		},
		{
			ID:        "react-index-keys",
			Dimension: model.Performance,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkReact) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.IndexKeyLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "array index used as key; reordering breaks reconciliation",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "react-state-mutation",
			Dimension: model.Quality,
			Severity:  model.Blocker,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkReact) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.StateMutationLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "state mutated in place; React will not re-render, use the setter",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "react-style-prop",
			Dimension: model.Styling,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkReact) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.ReactStylePropLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "style prop objects allocate on every render",
					Locations: locations(refs),
				}, nil
			},
		},
	}
}
