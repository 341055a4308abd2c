package rule

import (
	"fmt"
	"strings"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// qualityRules covers general maintainability: file size, leftover debug
// artifacts, duplication, nesting, and naming.
func qualityRules(opts Options) []Rule {
	limit := opts.MaxFileLines
	return []Rule{
		{
			ID:        "file-too-long",
			Dimension: model.Quality,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				lines, ok := s.Int(fact.FileLines)
				if !ok || lines <= limit {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("file has %d lines, over the %d line limit; split it up", lines, limit),
					Locations: fileLocation(s),
				}, nil
			},
			// Twice the limit is no longer a style concern.
			Escalate: func(s *fact.Set) bool {
				lines, ok := s.Int(fact.FileLines)
				return ok && lines > 2*limit
			},
		},
		{
			ID:        "leftover-todos",
			Dimension: model.Quality,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.TodoLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d TODO markers left in the file", len(refs)),
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "commented-out-code",
			Dimension: model.Quality,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.CommentedCodeLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "commented-out code left in the file; delete it, version control keeps the history",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "debug-logging",
			Dimension: model.Quality,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.ConsoleLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d console statements left in production code", len(refs)),
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "magic-numbers",
			Dimension: model.Quality,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.MagicNumberLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "unexplained numeric literals; name them as constants",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "duplicate-blocks",
			Dimension: model.Quality,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				refs, _ := s.Seq(fact.DuplicateBlockLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "duplicated code blocks; extract a shared helper",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "deep-nesting",
			Dimension: model.Quality,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				depth, ok := s.Int(fact.MaxNestingDepth)
				if !ok || depth <= 4 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("control flow nests %d levels deep; flatten with early returns", depth),
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "unclear-names",
			Dimension: model.Quality,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				names, ok := s.Members(fact.ShortIdentifiers)
				if !ok || len(names) < 3 {
					return nil, nil
				}
				sample := names
				if len(sample) > 3 {
					sample = sample[:3]
				}
				return &Outcome{
					Message:   fmt.Sprintf("%d cryptic identifiers (%s); use descriptive names", len(names), strings.Join(sample, ", ")),
					Locations: fileLocation(s),
				}, nil
			},
		},
		{
			ID:        "mixed-naming",
			Dimension: model.Quality,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				names, ok := s.Members(fact.SnakeCaseIdentifiers)
				if !ok || len(names) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   fmt.Sprintf("snake_case identifiers (%s) mixed into a camelCase codebase", strings.Join(names, ", ")),
					Locations: fileLocation(s),
				}, nil
			},
		},
	}
}
