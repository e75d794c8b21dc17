package core

import (
	"context"

	"denticore/pkg/domain"
)

// NewBrandAliasRule returns the rule that normalizes brand-specific shade
// notation (e.g. WT written for a line whose canonical translucent token is
// CT). A straight token alias independent of layer role; it emits no alert
// but still synchronizes checklist text.
func NewBrandAliasRule(tables RuleTables) domain.CorrectionRule {
	return brandAliasRule{tables: tables}
}

type brandAliasRule struct {
	tables RuleTables
}

func (brandAliasRule) Name() string { return "brand_alias" }

func (r brandAliasRule) Apply(_ context.Context, draft *domain.PlanDraft) (domain.Result, error) {
	res := domain.Result{}
	for i := range draft.Plan.Layers {
		layer := &draft.Plan.Layers[i]
		aliases := r.tables.AliasesFor(layer.ResinBrand)
		if len(aliases) == 0 {
			continue
		}
		canonical, ok := aliases[layer.Shade]
		if !ok || canonical == layer.Shade {
			continue
		}
		from := layer.Shade
		layer.Shade = canonical
		draft.Plan.Checklist = ReplaceShadeToken(draft.Plan.Checklist, from, canonical)
		res.Corrections = append(res.Corrections, domain.Correction{
			Rule:       r.Name(),
			LayerOrder: layer.Order,
			Field:      "shade",
			From:       from,
			To:         canonical,
			Severity:   domain.SeverityNormalize,
		})
	}
	return res, nil
}
