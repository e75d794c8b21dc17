// Package domain defines the treatment-plan value types, shade catalog
// primitives, and correction-rule interfaces used by denticore.
package domain

// Role classifies a restoration layer by its clinical function.
type Role string

// Layer roles recognised by the correction rules. Layers outside the
// body/enamel families are RoleOther and are exempt from shade-role rules.
const (
	// RoleBody identifies structural dentin/body layers.
	RoleBody Role = "body"
	// RoleEnamel identifies enamel, incisal, translucent, and effect layers.
	RoleEnamel Role = "enamel"
	// RoleOther identifies layers with no recognised role keywords.
	RoleOther Role = "other"
)

// ShadeType categorises a catalog shade within a product line.
type ShadeType string

// Canonical shade types as they appear in manufacturer catalogs.
const (
	ShadeTypeBody        ShadeType = "body"
	ShadeTypeDentin      ShadeType = "dentina"
	ShadeTypeUniversal   ShadeType = "universal"
	ShadeTypeEnamel      ShadeType = "esmalte"
	ShadeTypeTranslucent ShadeType = "esmalte translucido"
	ShadeTypeEffect      ShadeType = "efeito"
)

// Severity captures the weight of a correction.
type Severity string

const (
	// SeverityCorrect marks a substitution applied to the plan.
	SeverityCorrect Severity = "correct"
	// SeverityAugment marks a structural addition to the plan.
	SeverityAugment Severity = "augment"
	// SeverityNormalize marks a notation normalization with no clinical impact.
	SeverityNormalize Severity = "normalize"
)

// Layer is one material application step in a stratified restoration plan.
type Layer struct {
	Order      int    `json:"order"`
	Name       string `json:"name"`
	ResinBrand string `json:"resinBrand"`
	Shade      string `json:"shade"`
	Thickness  string `json:"thickness,omitempty"`
	Purpose    string `json:"purpose,omitempty"`
	Technique  string `json:"technique,omitempty"`
	Optional   bool   `json:"optional,omitempty"`
}

// Plan is a machine-generated stratification protocol for one restoration.
// Confidence and Alternative are upstream passthrough fields; the engine
// never reads or writes them.
type Plan struct {
	Layers      []Layer  `json:"layers"`
	Checklist   []string `json:"checklist,omitempty"`
	Alerts      []string `json:"alerts,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Confidence  string   `json:"confidence,omitempty"`
	Alternative string   `json:"alternative,omitempty"`
}

// Clone returns a deep copy of the plan. Correction rules operate on a clone
// so callers never observe partial mutation.
func (p Plan) Clone() Plan {
	out := p
	if p.Layers != nil {
		out.Layers = append([]Layer(nil), p.Layers...)
	}
	if p.Checklist != nil {
		out.Checklist = append([]string(nil), p.Checklist...)
	}
	if p.Alerts != nil {
		out.Alerts = append([]string(nil), p.Alerts...)
	}
	if p.Warnings != nil {
		out.Warnings = append([]string(nil), p.Warnings...)
	}
	return out
}

// CaseContext carries the clinical case parameters supplied alongside a plan.
type CaseContext struct {
	Tooth          string `json:"tooth"`
	CavityClass    string `json:"cavityClass"`
	AestheticGoals string `json:"aestheticGoals,omitempty"`
}

// CatalogShade is one valid shade entry within a manufacturer product line.
type CatalogShade struct {
	Shade       string    `json:"shade"`
	Type        ShadeType `json:"type"`
	ProductLine string    `json:"productLine"`
}

// Correction records one change a rule applied to a plan.
type Correction struct {
	Rule       string
	LayerOrder int
	Field      string
	From       string
	To         string
	Message    string
	Severity   Severity
}

// Result aggregates corrections from the rules engine.
type Result struct {
	Corrections []Correction
}

// Merge appends corrections from another result.
func (r *Result) Merge(other Result) {
	if len(other.Corrections) == 0 {
		return
	}
	r.Corrections = append(r.Corrections, other.Corrections...)
}

// Messages returns the alert messages of corrections that carry one, in
// application order.
func (r Result) Messages() []string {
	var out []string
	for _, c := range r.Corrections {
		if c.Message != "" {
			out = append(out, c.Message)
		}
	}
	return out
}
