package rule

import (
	"fmt"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

func accessibilityRules() []Rule {
	return []Rule{
		{
			ID:        "img-alt-text",
			Dimension: model.Accessibility,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.ImagesMissingAlt)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d images without alt text", len(refs)),
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "click-without-keyboard",
			Dimension: model.Accessibility,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.ClickWithoutKeyLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "click handlers on non-interactive elements without keyboard support",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "unlabeled-inputs",
			Dimension: model.Accessibility,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.InputsMissingLabel)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "form inputs without an associated label",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "positive-tabindex",
			Dimension: model.Accessibility,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.PositiveTabIndexLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "positive tabindex values fight the natural tab order",
					Locations: locations(refs),
				}, nil
			},
		},
	}
}
