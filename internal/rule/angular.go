package rule

import (
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// angularRules only trigger when the framework fact says angular.
func angularRules() []Rule {
	return []Rule{
		{
			ID:        "angular-bypass-sanitizer",
			Dimension: model.Security,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkAngular) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.BypassSanitizerLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "bypassSecurityTrust disables the built-in sanitizer",
					Locations: locations(refs),
				}, nil
			},
			Escalate: sinkHasUserInput,
		},
		{
			ID:        "angular-template-calls",
			Dimension: model.Performance,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkAngular) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.TemplateFunctionCallLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "function calls in templates run on every change detection cycle",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "angular-default-change-detection",
			Dimension: model.Performance,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkAngular) {
					return nil, nil
				}
				usesDefault, _ := s.Bool(fact.DefaultChangeDetection)
				if !usesDefault {
					return nil, nil
				}
				return &Outcome{
					Message:   "component uses default change detection; consider OnPush",
					Locations: fileLocation(s),
				}, nil
			},
		},
	}
}
