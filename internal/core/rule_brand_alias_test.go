package core

import (
	"context"
	"testing"

	"denticore/pkg/domain"
)

const vittraLine = "FGM - Vittra APS"

func TestBrandAliasRuleNormalizesTranslucentToken(t *testing.T) {
	rule := NewBrandAliasRule(DefaultRuleTables())
	draft := newDraft(domain.Plan{
		Layers: []domain.Layer{
			{Order: 1, Name: "Dentina", ResinBrand: vittraLine, Shade: "DA1"},
			{Order: 2, Name: "Translucidez Incisal", ResinBrand: vittraLine, Shade: "WT"},
		},
		Checklist: []string{"Aplicar WT na borda incisal"},
	}, domain.CaseContext{}, nil)

	res, err := rule.Apply(context.Background(), draft)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := draft.Plan.Layers[1].Shade; got != "CT" {
		t.Errorf("shade = %s, want brand-canonical CT", got)
	}
	if draft.Plan.Checklist[0] != "Aplicar CT na borda incisal" {
		t.Errorf("checklist not synchronized: %s", draft.Plan.Checklist[0])
	}
	if len(res.Corrections) != 1 {
		t.Fatalf("expected 1 correction, got %d", len(res.Corrections))
	}
	if res.Corrections[0].Message != "" {
		t.Errorf("alias normalization must not emit an alert: %q", res.Corrections[0].Message)
	}
	if res.Corrections[0].Severity != SeverityNormalize {
		t.Errorf("severity = %s, want normalize", res.Corrections[0].Severity)
	}
}

func TestBrandAliasRuleAppliesRegardlessOfRole(t *testing.T) {
	rule := NewBrandAliasRule(DefaultRuleTables())
	draft := newDraft(domain.Plan{
		Layers: []domain.Layer{{Order: 1, Name: "Adesivo", ResinBrand: vittraLine, Shade: "WT"}},
	}, domain.CaseContext{}, nil)

	if _, err := rule.Apply(context.Background(), draft); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := draft.Plan.Layers[0].Shade; got != "CT" {
		t.Errorf("alias skipped on RoleOther layer: %s", got)
	}
}

func TestBrandAliasRuleIgnoresOtherBrands(t *testing.T) {
	rule := NewBrandAliasRule(DefaultRuleTables())
	draft := newDraft(domain.Plan{
		Layers: []domain.Layer{{Order: 1, Name: "Translucidez", ResinBrand: filtekLine, Shade: "WT"}},
	}, domain.CaseContext{}, nil)

	res, err := rule.Apply(context.Background(), draft)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Corrections) != 0 {
		t.Errorf("alias applied to unrelated brand: %+v", res.Corrections)
	}
	if got := draft.Plan.Layers[0].Shade; got != "WT" {
		t.Errorf("shade changed for unrelated brand: %s", got)
	}
}

func TestBrandAliasRuleIdempotent(t *testing.T) {
	rule := NewBrandAliasRule(DefaultRuleTables())
	draft := newDraft(domain.Plan{
		Layers: []domain.Layer{{Order: 1, Name: "Translucidez", ResinBrand: vittraLine, Shade: "WT"}},
	}, domain.CaseContext{}, nil)

	if _, err := rule.Apply(context.Background(), draft); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	res, err := rule.Apply(context.Background(), draft)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(res.Corrections) != 0 {
		t.Errorf("CT re-aliased on second pass: %+v", res.Corrections)
	}
}
