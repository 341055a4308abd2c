// Package engine runs the rule battery against fact sets.
//
// Rules are pure, so they evaluate concurrently; results are collected in
// registration order to keep output deterministic regardless of scheduling.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/rule"
)

// Result carries everything one evaluation produced. Errors are per-rule
// failures; they never abort the run.
type Result struct {
	Findings []model.Finding   `json:"findings"`
	Errors   []model.RuleError `json:"errors,omitempty"`
}

// Unit pairs a name, usually a file path, with the facts extracted from it.
type Unit struct {
	Name  string
	Facts *fact.Set
}

// Engine evaluates a configured registry.
type Engine struct {
	registry *rule.Registry
	workers  int
}

// New returns an engine for the given registry.
func New(reg *rule.Registry) *Engine {
	return &Engine{registry: reg, workers: runtime.GOMAXPROCS(0)}
}

// Evaluate runs every enabled rule against the facts and returns the
// surviving findings plus any per-rule errors.
//
// Escalation is applied before suppression, so overlapping findings are
// compared at their final severity. A canceled context discards all
// partial work and returns the context's error.
func (e *Engine) Evaluate(ctx context.Context, facts *fact.Set) (*Result, error) {
	if facts == nil {
		facts = fact.Empty()
	}
	rules := e.registry.Rules()

	type slot struct {
		finding *model.Finding
		err     *model.RuleError
	}
	slots := make([]slot, len(rules))

	workers := min(e.workers, len(rules))
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				f, rerr := runRule(rules[idx], facts)
				slots[idx] = slot{finding: f, err: rerr}
			}
		}()
	}

feed:
	for idx := range rules {
		if !e.registry.Enabled(rules[idx].Dimension) {
			continue
		}
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, s := range slots {
		if s.err != nil {
			res.Errors = append(res.Errors, *s.err)
		}
		if s.finding != nil {
			res.Findings = append(res.Findings, *s.finding)
		}
	}
	res.Findings = rule.Suppress(res.Findings)
	return res, nil
}

// EvaluateAll reviews several units and merges their results in unit
// order. Suppression applies within each unit, never across units.
func (e *Engine) EvaluateAll(ctx context.Context, units []Unit) (*Result, error) {
	merged := &Result{}
	for _, u := range units {
		res, err := e.Evaluate(ctx, u.Facts)
		if err != nil {
			return nil, err
		}
		merged.Findings = append(merged.Findings, res.Findings...)
		merged.Errors = append(merged.Errors, res.Errors...)
	}
	return merged, nil
}

// runRule executes one rule, converting predicate errors and panics into
// RuleErrors so a single bad heuristic cannot take down the review.
func runRule(rl rule.Rule, facts *fact.Set) (f *model.Finding, rerr *model.RuleError) {
	defer func() {
		if r := recover(); r != nil {
			f = nil
			rerr = &model.RuleError{RuleID: rl.ID, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()

	out, err := rl.Check(facts)
	if err != nil {
		return nil, &model.RuleError{RuleID: rl.ID, Message: err.Error()}
	}
	if out == nil {
		return nil, nil
	}

	severity := rl.Severity
	if rl.Escalate != nil && rl.Escalate(facts) {
		severity = severity.Escalated()
	}
	return &model.Finding{
		RuleID:    rl.ID,
		Dimension: rl.Dimension,
		Severity:  severity,
		Message:   out.Message,
		Locations: out.Locations,
	}, nil
}
