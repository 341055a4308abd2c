package rule

import (
	"fmt"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

func testingRules() []Rule {
	return []Rule{
		{
			ID:        "missing-tests",
			Dimension: model.Testing,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				covered, known := s.Bool(fact.HasTestFile)
				isTest, _ := s.Bool(fact.IsTestFile)
				if !known || covered || isTest {
					return nil, nil
				}
				return &Outcome{
					Message:   "no test file covers this module",
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "skipped-tests",
			Dimension: model.Testing,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.SkippedTestLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d skipped tests; fix them or delete them", len(refs)),
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "focused-tests",
			Dimension: model.Testing,
			Severity:  model.Blocker,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.FocusedTestLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   ".only commits would silence the rest of the suite in CI",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "assertion-free-tests",
			Dimension: model.Testing,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				tests, ok := s.Int(fact.TestCount)
				if !ok || tests == 0 {
					return nil, nil
				}
				asserts, _ := s.Int(fact.AssertionCount)
				if asserts > 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d tests without a single assertion", tests),
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "snapshot-overuse",
			Dimension: model.Testing,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				count, ok := s.Int(fact.SnapshotTestCount)
				if !ok || count <= 5 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d snapshot tests; prefer assertions on the behavior that matters", count),
					Locations: fileLocation(s),
				}, nil
			},
		},
	}
}
