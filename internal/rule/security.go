package rule

import (
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// securityRules covers injection sinks and leaked credentials. Sink rules
// escalate when the flowing value is user input.
func securityRules() []Rule {
	return []Rule{
		{
			ID:        "dom-xss-sink",
			Dimension: model.Security,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.DOMSinkLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "raw HTML written to the DOM; sanitize before assigning",
					Locations: locations(refs),
				}, nil
			},
			Escalate: sinkHasUserInput,
		},
		{
			ID:        "no-eval",
			Dimension: model.Security,
			Severity:  model.Blocker,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.EvalLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "eval executes arbitrary strings as code",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "hardcoded-secrets",
			Dimension: model.Security,
			Severity:  model.Blocker,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.SecretLiteralLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "credentials committed in source; rotate them and load from the environment",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "javascript-url",
			Dimension: model.Security,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.JavascriptURLLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "javascript: URLs execute whatever lands in them",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "target-blank-opener",
			Dimension: model.Security,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.TargetBlankLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   `target="_blank" without rel="noopener" hands the opener to the new page`,
					Locations: locations(refs),
				}, nil
			},
		},
	}
}
