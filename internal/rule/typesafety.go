package rule

import (
	"fmt"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// typeSafetyRules flags code that opts out of the type system.
func typeSafetyRules() []Rule {
	return []Rule{
		{
			ID:        "no-explicit-any",
			Dimension: model.TypeSafety,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				usesAny, _ := s.Bool(fact.UsesAnyType)
				refs, _ := s.Seq(fact.AnyTypeLines)
				if !usesAny && len(refs) == 0 {
					return nil, nil
				}
				locs := locations(refs)
				if len(locs) == 0 {
					locs = fileLocation(s)
				}
				return &Outcome{
					Message:   "avoid `any`; it opts the code out of type checking",
					Locations: locs,
				}, nil
			},
		},
		{
			ID:        "missing-return-types",
			Dimension: model.TypeSafety,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.MissingReturnTypeLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d exported functions without return type annotations", len(refs)),
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "no-ts-suppressions",
			Dimension: model.TypeSafety,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.TSSuppressLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "`@ts-ignore` silences the compiler instead of fixing the type error",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "non-null-assertions",
			Dimension: model.TypeSafety,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				count, ok := s.Int(fact.NonNullAssertionCount)
				if !ok || count <= 3 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d non-null assertions; handle the absent case instead", count),
					Locations: fileLocation(s),
				}, nil
			},
		},
	}
}
