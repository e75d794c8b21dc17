package core

import (
	"context"

	"denticore/pkg/domain"
)

// Engine runs the full correction pipeline over one plan. It holds no
// per-call state and is safe for concurrent use across independent plans.
type Engine struct {
	tables  RuleTables
	catalog domain.CatalogLookup
	rules   *domain.RulesEngine
}

// NewEngine builds an engine with the default rule sequence: shade-role
// correction, brand alias normalization, then incisal-effects augmentation.
func NewEngine(catalog domain.CatalogLookup, tables RuleTables) *Engine {
	rules := domain.NewRulesEngine()
	rules.Register(NewShadeRoleRule(tables))
	rules.Register(NewBrandAliasRule(tables))
	rules.Register(NewIncisalEffectsRule(tables))
	return &Engine{tables: tables, catalog: catalog, rules: rules}
}

// Tables returns the rule tables the engine was built with.
func (e *Engine) Tables() RuleTables { return e.tables }

// Normalize applies every correction rule to a copy of the plan and returns
// the corrected plan with alert messages appended in discovery order. Plans
// without layers pass through untouched; the engine never fails a plan for
// content it cannot repair.
func (e *Engine) Normalize(ctx context.Context, plan domain.Plan, caseCtx domain.CaseContext) (domain.Plan, domain.Result, error) {
	if len(plan.Layers) == 0 {
		return plan, domain.Result{}, nil
	}
	draft := domain.NewPlanDraft(plan, caseCtx, e.catalog)
	res, err := e.rules.Apply(ctx, draft)
	if err != nil {
		return plan, domain.Result{}, err
	}
	draft.Plan.Alerts = append(draft.Plan.Alerts, res.Messages()...)
	return draft.Plan, res, nil
}
