package core

import (
	"context"
	"fmt"

	"denticore/pkg/domain"
)

// NewShadeRoleRule returns the rule that removes enamel/bleach shades from
// body-classified layers, resolving replacements through the shade catalog
// with a hard fallback.
func NewShadeRoleRule(tables RuleTables) domain.CorrectionRule {
	return shadeRoleRule{tables: tables}
}

type shadeRoleRule struct {
	tables RuleTables
}

func (shadeRoleRule) Name() string { return "shade_role" }

func (r shadeRoleRule) Apply(ctx context.Context, draft *domain.PlanDraft) (domain.Result, error) {
	res := domain.Result{}
	for i := range draft.Plan.Layers {
		layer := &draft.Plan.Layers[i]
		if ClassifyLayerName(layer.Name, r.tables) != domain.RoleBody {
			continue
		}
		if !r.tables.IsProhibitedBodyShade(layer.Shade) {
			continue
		}
		replacement := r.resolveBodyShade(ctx, draft.Catalog, layer.ResinBrand)
		from := layer.Shade
		layer.Shade = replacement
		draft.Plan.Checklist = ReplaceShadeToken(draft.Plan.Checklist, from, replacement)
		res.Corrections = append(res.Corrections, domain.Correction{
			Rule:       r.Name(),
			LayerOrder: layer.Order,
			Field:      "shade",
			From:       from,
			To:         replacement,
			Severity:   domain.SeverityCorrect,
			Message: fmt.Sprintf(
				"Camada %d (%s): cor de esmalte %s não é indicada para camada de dentina/corpo; substituída por %s",
				layer.Order, layer.Name, from, replacement,
			),
		})
	}
	return res, nil
}

// resolveBodyShade picks the replacement shade for a prohibited body shade.
// Catalog errors, nil results, and empty results all collapse to the
// configured fallback; the fallback itself is never validated.
func (r shadeRoleRule) resolveBodyShade(ctx context.Context, catalog domain.CatalogLookup, resinBrand string) string {
	if catalog == nil {
		return r.tables.FallbackShade
	}
	rows, err := catalog.Lookup(ctx, resinBrand)
	if err != nil || len(rows) == 0 {
		return r.tables.FallbackShade
	}
	for _, eligible := range r.tables.BodyShadeTypes {
		for _, row := range rows {
			if row.Type == eligible && row.Shade != "" {
				return row.Shade
			}
		}
	}
	return r.tables.FallbackShade
}
