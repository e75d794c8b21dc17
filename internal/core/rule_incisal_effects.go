package core

import (
	"context"
	"fmt"

	"denticore/pkg/domain"
)

// NewIncisalEffectsRule returns the rule that inserts an optional synthetic
// incisal-effects layer into anterior aesthetic plans and renumbers the
// sequence. It runs at most once per plan and never removes or reorders
// layers it did not insert.
func NewIncisalEffectsRule(tables RuleTables) domain.CorrectionRule {
	return incisalEffectsRule{tables: tables}
}

type incisalEffectsRule struct {
	tables RuleTables
}

func (incisalEffectsRule) Name() string { return "incisal_effects" }

func (r incisalEffectsRule) Apply(_ context.Context, draft *domain.PlanDraft) (domain.Result, error) {
	layers := draft.Plan.Layers
	if len(layers) < 3 {
		return domain.Result{}, nil
	}
	if !r.tables.IsAnteriorTooth(draft.Case.Tooth) {
		return domain.Result{}, nil
	}
	if !r.tables.IsAestheticClass(draft.Case.CavityClass) {
		return domain.Result{}, nil
	}
	for _, layer := range layers {
		if r.tables.DenotesIncisalEffects(layer.Name) {
			return domain.Result{}, nil
		}
	}

	// Insert immediately before the final vestibular enamel step; when no
	// layer names that step, append at the end.
	insertAt := len(layers)
	for i, layer := range layers {
		if containsNormalized(normalizeText(layer.Name), r.tables.EnamelAnchorPhrase) {
			insertAt = i
			break
		}
	}

	neighbor := layers[len(layers)-1]
	if insertAt < len(layers) {
		neighbor = layers[insertAt]
	}
	injected := r.tables.NewIncisalEffectsLayer(neighbor.ResinBrand)

	updated := make([]domain.Layer, 0, len(layers)+1)
	updated = append(updated, layers[:insertAt]...)
	updated = append(updated, injected)
	updated = append(updated, layers[insertAt:]...)
	for i := range updated {
		updated[i].Order = i + 1
	}
	draft.Plan.Layers = updated

	res := domain.Result{}
	res.Corrections = append(res.Corrections, domain.Correction{
		Rule:       r.Name(),
		LayerOrder: insertAt + 1,
		Field:      "layers",
		To:         injected.Name,
		Severity:   domain.SeverityAugment,
		Message: fmt.Sprintf(
			"Camada opcional de efeitos incisais adicionada para caso estético anterior (dente %s)",
			draft.Case.Tooth,
		),
	})
	return res, nil
}
