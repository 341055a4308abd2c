// Package rule defines the review rule battery and the registry that
// configures it.
//
// Rules are pure: Check reads facts and reports an outcome without touching
// shared state, so the engine can run them in parallel. Each rule triggers
// at most once per fact set.
package rule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
)

// ErrDuplicateRuleID is returned when two rules register under the same id.
var ErrDuplicateRuleID = errors.New("duplicate rule id")

// DefaultMaxFileLines is the file length ceiling used when the options
// leave MaxFileLines unset.
const DefaultMaxFileLines = 300

// Outcome is a triggered rule's contribution. Severity is attached by the
// engine from the rule itself, so outcomes stay severity-free.
type Outcome struct {
	Message   string
	Locations []model.Location
}

// Rule is one review heuristic.
//
// Check inspects a fact set and returns a non-nil outcome when the rule
// triggers, (nil, nil) when it does not, and an error when the predicate
// itself failed. Escalate, when set, raises the finding one severity level
// if it reports true.
type Rule struct {
	ID        string
	Dimension model.Dimension
	Severity  model.Severity
	Check     func(*fact.Set) (*Outcome, error)
	Escalate  func(*fact.Set) bool
}

// Options configures a registry.
type Options struct {
	// EnabledDimensions restricts evaluation to the listed dimensions.
	// Empty means all dimensions are enabled.
	EnabledDimensions []model.Dimension

	// SeverityOverrides replaces the default severity of individual rules
	// by id. An override naming an unregistered rule is a configuration
	// error.
	SeverityOverrides map[string]model.Severity

	// MaxFileLines is the file length ceiling used by the file-too-long
	// rule. Zero means DefaultMaxFileLines.
	MaxFileLines int
}

func (o Options) withDefaults() Options {
	if o.MaxFileLines <= 0 {
		o.MaxFileLines = DefaultMaxFileLines
	}
	return o
}

// Registry holds the configured rule set in registration order.
type Registry struct {
	rules   []Rule
	byID    map[string]int
	enabled map[model.Dimension]bool
	opts    Options
}

// NewRegistry builds a registry carrying the builtin battery, with the
// options' severity overrides already applied.
func NewRegistry(opts Options) (*Registry, error) {
	opts = opts.withDefaults()
	r := &Registry{
		byID: make(map[string]int),
		opts: opts,
	}
	if len(opts.EnabledDimensions) > 0 {
		r.enabled = make(map[model.Dimension]bool, len(opts.EnabledDimensions))
		for _, d := range opts.EnabledDimensions {
			r.enabled[d] = true
		}
	}
	for _, rl := range builtinRules(opts) {
		if err := r.Register(rl); err != nil {
			return nil, err
		}
	}
	if err := r.checkOverrides(opts.SeverityOverrides); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a rule. Registration order is evaluation order. A second
// rule under an existing id fails with ErrDuplicateRuleID.
func (r *Registry) Register(rl Rule) error {
	if rl.ID == "" {
		return errors.New("rule has no id")
	}
	if rl.Check == nil {
		return fmt.Errorf("rule %s has no check", rl.ID)
	}
	if _, dup := r.byID[rl.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateRuleID, rl.ID)
	}
	if sev, ok := r.opts.SeverityOverrides[rl.ID]; ok {
		rl.Severity = sev
	}
	r.byID[rl.ID] = len(r.rules)
	r.rules = append(r.rules, rl)
	return nil
}

func (r *Registry) checkOverrides(overrides map[string]model.Severity) error {
	var unknown []string
	for id := range overrides {
		if _, ok := r.byID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("severity override for unknown rule %q", unknown[0])
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Lookup returns the rule registered under id.
func (r *Registry) Lookup(id string) (Rule, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// Enabled reports whether findings from the given dimension are emitted.
func (r *Registry) Enabled(d model.Dimension) bool {
	if r.enabled == nil {
		return true
	}
	return r.enabled[d]
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }

// MaxFileLines returns the configured file length ceiling.
func (r *Registry) MaxFileLines() int { return r.opts.MaxFileLines }

func builtinRules(opts Options) []Rule {
	var rules []Rule
	rules = append(rules, qualityRules(opts)...)
	rules = append(rules, typeSafetyRules()...)
	rules = append(rules, architectureRules()...)
	rules = append(rules, performanceRules()...)
	rules = append(rules, accessibilityRules()...)
	rules = append(rules, securityRules()...)
	rules = append(rules, testingRules()...)
	rules = append(rules, stylingRules()...)
	rules = append(rules, reactRules()...)
	rules = append(rules, vueRules()...)
	rules = append(rules, angularRules()...)
	return rules
}

// locations converts "path:line" references into locations, preserving
// order.
func locations(refs []string) []model.Location {
	if len(refs) == 0 {
		return nil
	}
	locs := make([]model.Location, 0, len(refs))
	for _, ref := range refs {
		locs = append(locs, model.ParseLocation(ref))
	}
	return locs
}

// fileLocation anchors a whole-file finding to the unit under review.
func fileLocation(s *fact.Set) []model.Location {
	path, ok := s.String(fact.FilePath)
	if !ok || path == "" {
		return nil
	}
	return []model.Location{{File: path}}
}

func isFramework(s *fact.Set, name string) bool {
	fw, ok := s.String(fact.Framework)
	return ok && fw == name
}

func sinkHasUserInput(s *fact.Set) bool {
	v, _ := s.Bool(fact.SinkHasUserInput)
	return v
}
