package core

import (
	"fmt"

	"denticore/pkg/domain"
)

// ValidateMinimumLayerCount is the advisory layer-count check. It is pure
// and independent of the correction pipeline: it never mutates its inputs
// and returns nil when the plan meets the recommended minimum (or when no
// layers were supplied at all). The caller owns appending the warning to the
// plan.
func ValidateMinimumLayerCount(layers []domain.Layer, caseCtx domain.CaseContext, tables RuleTables) *string {
	if len(layers) == 0 {
		return nil
	}
	anteriorAesthetic := tables.IsAnteriorTooth(caseCtx.Tooth) && tables.IsAestheticClass(caseCtx.CavityClass)
	if anteriorAesthetic {
		if len(layers) < tables.MinimumAnteriorLayers {
			msg := fmt.Sprintf(
				"Restaurações estéticas anteriores: mínimo recomendado de %d camadas (plano tem %d)",
				tables.MinimumAnteriorLayers, len(layers),
			)
			return &msg
		}
		return nil
	}
	if len(layers) < tables.MinimumPosteriorLayers {
		msg := fmt.Sprintf(
			"Mínimo recomendado de %d camadas para este caso (plano tem %d)",
			tables.MinimumPosteriorLayers, len(layers),
		)
		return &msg
	}
	return nil
}
