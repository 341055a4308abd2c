package rule

import (
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

func stylingRules() []Rule {
	return []Rule{
		{
			ID:        "inline-styles",
			Dimension: model.Styling,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.InlineStyleLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "inline styles; move them into the stylesheet layer",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "important-overuse",
			Dimension: model.Styling,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.ImportantLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "avoid !important; raise selector specificity instead",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "hardcoded-colors",
			Dimension: model.Styling,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.HexColorLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "hardcoded hex colors; use the design tokens",
					Locations: locations(refs),
				}, nil
			},
		},
	}
}
