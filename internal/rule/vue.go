package rule

import (
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// vueRules only trigger when the framework fact says vue.
func vueRules() []Rule {
	return []Rule{
		{
			ID:        "vue-v-html",
			Dimension: model.Security,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkVue) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.VHTMLLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "v-html renders raw HTML; sanitize the value first",
					Locations: locations(refs),
				}, nil
			},
			Escalate: sinkHasUserInput,
		},
		{
			ID:        "vue-vfor-missing-key",
			Dimension: model.Performance,
			Severity:  model.Suggestion,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkVue) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.VForNoKeyLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "v-for without :key; updates fall back to in-place patching",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "vue-prop-mutation",
			Dimension: model.Quality,
			Severity:  model.Blocker,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkVue) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.PropMutationLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "props mutated by the child component; emit an event instead",
					Locations: locations(refs),
				}, nil
			},
		},
		{
			ID:        "vue-static-style",
			Dimension: model.Styling,
			Severity:  model.Nitpick,
			Check: func(s *fact.Set) (*Outcome, error) {
				if !isFramework(s, fact.FrameworkVue) {
					return nil, nil
				}
				refs, _ := s.Seq(fact.StaticStyleAttrLines)
				if len(refs) == 0 {
					return nil, nil
				}
				return &Outcome{
					Message:   "static style attributes; move them into the component stylesheet",
					Locations: locations(refs),
				}, nil
			},
		},
	}
}
