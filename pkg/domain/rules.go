package domain

import "context"

// PlanDraft is the exclusively-owned mutable state for one correction pass.
// It holds a deep copy of the incoming plan, the case context, and the
// catalog capability; rules mutate the draft and report what they changed.
type PlanDraft struct {
	Plan    Plan
	Case    CaseContext
	Catalog CatalogLookup
}

// NewPlanDraft builds a draft around a deep copy of the plan.
func NewPlanDraft(plan Plan, caseCtx CaseContext, catalog CatalogLookup) *PlanDraft {
	return &PlanDraft{
		Plan:    plan.Clone(),
		Case:    caseCtx,
		Catalog: catalog,
	}
}

// CorrectionRule defines one deterministic repair pass over a plan draft.
type CorrectionRule interface {
	Name() string
	Apply(ctx context.Context, draft *PlanDraft) (Result, error)
}

// RulesEngine orchestrates correction rule application.
type RulesEngine struct {
	rules []CorrectionRule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine. Rules run in registration order.
func (e *RulesEngine) Register(rule CorrectionRule) {
	if rule == nil {
		return
	}
	e.rules = append(e.rules, rule)
}

// Rules returns a copy of the registered rules.
func (e *RulesEngine) Rules() []CorrectionRule {
	out := make([]CorrectionRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Apply executes all registered rules against the draft and aggregates their
// corrections. A rule error aborts the pass.
func (e *RulesEngine) Apply(ctx context.Context, draft *PlanDraft) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Apply(ctx, draft)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
