package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"denticore/pkg/domain"
)

// LayerTemplate describes the synthetic layer the incisal-effects rule
// inserts. ResinBrand is inherited from the surrounding plan at insertion
// time and is not part of the template.
type LayerTemplate struct {
	Name      string `yaml:"name"`
	Shade     string `yaml:"shade"`
	Thickness string `yaml:"thickness"`
	Purpose   string `yaml:"purpose"`
	Technique string `yaml:"technique"`
}

// RuleTables holds every domain table the correction rules consult. Keeping
// the tables as data lets new layer-naming conventions, brand aliases, and
// tooth classifications ship without touching rule code.
type RuleTables struct {
	// BodyKeywords and EnamelKeywords classify layers by name containment
	// after lower-casing and accent folding. Body keywords win ties.
	BodyKeywords   []string `yaml:"body_keywords"`
	EnamelKeywords []string `yaml:"enamel_keywords"`

	// ProhibitedBodyShades must never appear on a body/dentin layer.
	ProhibitedBodyShades []string `yaml:"prohibited_body_shades"`
	// BodyShadeTypes lists catalog shade types eligible to replace a
	// prohibited body shade, in priority order.
	BodyShadeTypes []ShadeType `yaml:"body_shade_types"`
	// FallbackShade absorbs every catalog failure mode. It is never itself
	// validated against the catalog.
	FallbackShade string `yaml:"fallback_shade"`

	// BrandAliases maps a normalized brand fragment to shade token aliases
	// canonical for that brand. Matched by containment against the layer's
	// normalized resin brand.
	BrandAliases map[string]map[string]string `yaml:"brand_aliases"`

	// AnteriorTeeth lists FDI tooth numbers considered anterior.
	AnteriorTeeth []string `yaml:"anterior_teeth"`
	// AestheticCavityClasses lists cavity-class fragments that mark a case
	// as aesthetic, matched by normalized containment.
	AestheticCavityClasses []string `yaml:"aesthetic_cavity_classes"`

	// IncisalEffectsKeywords detect a pre-existing incisal-effects layer.
	IncisalEffectsKeywords []string `yaml:"incisal_effects_keywords"`
	// EnamelAnchorPhrase names the final vestibular enamel step the
	// synthetic layer is inserted before.
	EnamelAnchorPhrase string `yaml:"enamel_anchor_phrase"`
	// IncisalEffectsLayer is the template for the injected layer.
	IncisalEffectsLayer LayerTemplate `yaml:"incisal_effects_layer"`

	// MinimumAnteriorLayers / MinimumPosteriorLayers drive the advisory
	// layer-count check.
	MinimumAnteriorLayers  int `yaml:"minimum_anterior_layers"`
	MinimumPosteriorLayers int `yaml:"minimum_posterior_layers"`
}

// DefaultRuleTables returns the built-in rule tables.
func DefaultRuleTables() RuleTables {
	return RuleTables{
		BodyKeywords:         []string{"dentina", "corpo", "body"},
		EnamelKeywords:       []string{"esmalte", "enamel", "translucidez", "incisal", "efeito"},
		ProhibitedBodyShades: []string{"BL1", "BL2", "BL3"},
		BodyShadeTypes:       []ShadeType{ShadeTypeBody, ShadeTypeUniversal},
		FallbackShade:        "WB",
		BrandAliases: map[string]map[string]string{
			"vittra aps": {"WT": "CT"},
		},
		AnteriorTeeth: []string{
			"11", "12", "13", "21", "22", "23",
			"31", "32", "33", "41", "42", "43",
		},
		AestheticCavityClasses: []string{
			"classe iii", "classe iv", "classe v",
			"faceta", "veneer", "fechamento de diastema",
		},
		IncisalEffectsKeywords: []string{
			"efeitos incisais", "efeito incisal", "incisal effect",
		},
		EnamelAnchorPhrase: "esmalte vestibular final",
		IncisalEffectsLayer: LayerTemplate{
			Name:      "Efeitos Incisais",
			Shade:     "Trans",
			Thickness: "0.2-0.3mm",
			Purpose:   "Caracterização incisal (mamelos e halo opalescente)",
			Technique: "Aplicação pontual com pincel fino antes do esmalte final",
		},
		MinimumAnteriorLayers:  3,
		MinimumPosteriorLayers: 2,
	}
}

// LoadRuleTables reads rule tables from a YAML file. Fields absent from the
// file keep their defaults.
func LoadRuleTables(path string) (RuleTables, error) {
	tables := DefaultRuleTables()
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleTables{}, fmt.Errorf("read rule tables: %w", err)
	}
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return RuleTables{}, fmt.Errorf("decode rule tables: %w", err)
	}
	if err := tables.Validate(); err != nil {
		return RuleTables{}, err
	}
	return tables, nil
}

// Validate rejects tables that would make the engine non-total.
func (t RuleTables) Validate() error {
	if t.FallbackShade == "" {
		return fmt.Errorf("rule tables: fallback shade is required")
	}
	if len(t.BodyShadeTypes) == 0 {
		return fmt.Errorf("rule tables: at least one body shade type is required")
	}
	for _, shade := range t.ProhibitedBodyShades {
		if shade == t.FallbackShade {
			return fmt.Errorf("rule tables: fallback shade %s cannot be prohibited", shade)
		}
	}
	if t.MinimumAnteriorLayers < t.MinimumPosteriorLayers {
		return fmt.Errorf("rule tables: anterior minimum cannot be below posterior minimum")
	}
	return nil
}

// IsProhibitedBodyShade reports whether the shade may not appear on a body layer.
func (t RuleTables) IsProhibitedBodyShade(shade string) bool {
	for _, s := range t.ProhibitedBodyShades {
		if s == shade {
			return true
		}
	}
	return false
}

// AliasesFor returns the shade alias map for a resin brand, or nil.
func (t RuleTables) AliasesFor(resinBrand string) map[string]string {
	brand := normalizeText(resinBrand)
	for fragment, aliases := range t.BrandAliases {
		if fragment != "" && containsNormalized(brand, fragment) {
			return aliases
		}
	}
	return nil
}

// IsAnteriorTooth reports whether the FDI tooth number is anterior.
func (t RuleTables) IsAnteriorTooth(tooth string) bool {
	for _, candidate := range t.AnteriorTeeth {
		if candidate == tooth {
			return true
		}
	}
	return false
}

// IsAestheticClass reports whether the cavity class marks an aesthetic case.
func (t RuleTables) IsAestheticClass(cavityClass string) bool {
	normalized := normalizeText(cavityClass)
	for _, fragment := range t.AestheticCavityClasses {
		if containsNormalized(normalized, fragment) {
			return true
		}
	}
	return false
}

// DenotesIncisalEffects reports whether a layer name already names the
// incisal-effects refinement.
func (t RuleTables) DenotesIncisalEffects(layerName string) bool {
	normalized := normalizeText(layerName)
	for _, fragment := range t.IncisalEffectsKeywords {
		if containsNormalized(normalized, fragment) {
			return true
		}
	}
	return false
}

// NewIncisalEffectsLayer materialises the template as an optional layer.
// Order is assigned by the renumbering pass after insertion.
func (t RuleTables) NewIncisalEffectsLayer(resinBrand string) domain.Layer {
	return domain.Layer{
		Name:       t.IncisalEffectsLayer.Name,
		ResinBrand: resinBrand,
		Shade:      t.IncisalEffectsLayer.Shade,
		Thickness:  t.IncisalEffectsLayer.Thickness,
		Purpose:    t.IncisalEffectsLayer.Purpose,
		Technique:  t.IncisalEffectsLayer.Technique,
		Optional:   true,
	}
}
