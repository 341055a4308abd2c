package rule

import (
	"fmt"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

func performanceRules() []Rule {
	return []Rule{
		{
			ID:        "whole-library-import",
			Dimension: model.Performance,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.WholeLibraryImportLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "whole utility library imported; import the specific functions to keep the bundle small",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "nested-loops",
			Dimension: model.Performance,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				depth, ok := s.Int(fact.MaxLoopNesting)
				if !ok || depth < 3 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("loops nested %d deep; consider indexing the inner collection", depth),
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "blocking-main-thread",
			Dimension: model.Performance,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.BlockingCallLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "synchronous calls that block the main thread",
					Locations: locations(refs),
				}, nil
			},
		},
	}
}
