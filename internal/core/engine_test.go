package core

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"denticore/pkg/domain"
)

func engineFixturePlan() domain.Plan {
	return domain.Plan{
		Layers: []domain.Layer{
			{Order: 1, Name: "Dentina", ResinBrand: filtekLine, Shade: "BL1"},
			{Order: 2, Name: "Corpo", ResinBrand: filtekLine, Shade: "A2"},
			{Order: 3, Name: "Esmalte Vestibular Final", ResinBrand: vittraLine, Shade: "WT"},
		},
		Checklist: []string{
			"Estratificar dentina BL1",
			"Finalizar esmalte com WT",
		},
		Confidence: "0.87",
	}
}

func TestEngineNormalizeFullPipeline(t *testing.T) {
	engine := NewEngine(filtekCatalog(), DefaultRuleTables())
	plan := engineFixturePlan()

	corrected, res, err := engine.Normalize(context.Background(), plan, anteriorCase())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if len(corrected.Layers) != 4 {
		t.Fatalf("expected 4 layers, got %d", len(corrected.Layers))
	}
	if corrected.Layers[0].Shade != "WB" {
		t.Errorf("dentin shade = %s, want WB", corrected.Layers[0].Shade)
	}
	if corrected.Layers[3].Shade != "CT" {
		t.Errorf("final enamel shade = %s, want aliased CT", corrected.Layers[3].Shade)
	}
	if corrected.Layers[2].Name != "Efeitos Incisais" {
		t.Errorf("injected layer misplaced: %+v", corrected.Layers)
	}
	for i, layer := range corrected.Layers {
		if layer.Order != i+1 {
			t.Errorf("layers[%d].Order = %d, want %d", i, layer.Order, i+1)
		}
	}

	if corrected.Checklist[0] != "Estratificar dentina WB" {
		t.Errorf("checklist shade not synchronized: %s", corrected.Checklist[0])
	}
	if corrected.Checklist[1] != "Finalizar esmalte com CT" {
		t.Errorf("checklist alias not synchronized: %s", corrected.Checklist[1])
	}

	// Alerts accumulate in discovery order: shade correction first, then
	// the injection; the alias contributes none.
	if len(corrected.Alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %v", corrected.Alerts)
	}
	if !strings.Contains(corrected.Alerts[0], "BL1") || !strings.Contains(corrected.Alerts[0], "WB") {
		t.Errorf("first alert must name the shade correction: %s", corrected.Alerts[0])
	}
	if !strings.Contains(corrected.Alerts[1], "11") {
		t.Errorf("second alert must name the injection for tooth 11: %s", corrected.Alerts[1])
	}

	if corrected.Confidence != "0.87" {
		t.Errorf("passthrough confidence changed: %s", corrected.Confidence)
	}

	if len(res.Corrections) != 3 {
		t.Errorf("expected 3 corrections (shade, alias, injection), got %d", len(res.Corrections))
	}
}

func TestEngineNormalizeIdempotent(t *testing.T) {
	engine := NewEngine(filtekCatalog(), DefaultRuleTables())

	first, _, err := engine.Normalize(context.Background(), engineFixturePlan(), anteriorCase())
	if err != nil {
		t.Fatalf("first normalize: %v", err)
	}
	second, res, err := engine.Normalize(context.Background(), first, anteriorCase())
	if err != nil {
		t.Fatalf("second normalize: %v", err)
	}
	if len(res.Corrections) != 0 {
		t.Errorf("second pass applied corrections: %+v", res.Corrections)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass changed the plan:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEngineNormalizeBodyInvariant(t *testing.T) {
	engine := NewEngine(&fakeCatalog{}, DefaultRuleTables())
	tables := DefaultRuleTables()
	plan := domain.Plan{Layers: []domain.Layer{
		{Order: 1, Name: "Dentina", Shade: "BL1"},
		{Order: 2, Name: "Corpo", Shade: "BL2"},
		{Order: 3, Name: "Body", Shade: "BL3"},
	}}

	corrected, _, err := engine.Normalize(context.Background(), plan, domain.CaseContext{Tooth: "36"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, layer := range corrected.Layers {
		if ClassifyLayerName(layer.Name, tables) == RoleBody && tables.IsProhibitedBodyShade(layer.Shade) {
			t.Errorf("body layer %q still carries prohibited shade %s", layer.Name, layer.Shade)
		}
	}
}

func TestEngineNormalizeEmptyPlanNoop(t *testing.T) {
	engine := NewEngine(filtekCatalog(), DefaultRuleTables())

	plan := domain.Plan{Checklist: []string{"keep"}}
	out, res, err := engine.Normalize(context.Background(), plan, anteriorCase())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(res.Corrections) != 0 {
		t.Errorf("empty plan produced corrections: %+v", res.Corrections)
	}
	if !reflect.DeepEqual(out, plan) {
		t.Errorf("empty plan changed: %+v", out)
	}
}

func TestEngineNormalizeDoesNotMutateInput(t *testing.T) {
	engine := NewEngine(filtekCatalog(), DefaultRuleTables())
	plan := engineFixturePlan()

	if _, _, err := engine.Normalize(context.Background(), plan, anteriorCase()); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if plan.Layers[0].Shade != "BL1" {
		t.Errorf("input plan mutated: %s", plan.Layers[0].Shade)
	}
	if len(plan.Layers) != 3 {
		t.Errorf("input plan grew layers: %d", len(plan.Layers))
	}
}
