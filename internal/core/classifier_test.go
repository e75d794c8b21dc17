package core

import (
	"testing"

	"denticore/pkg/domain"
)

func TestClassifyLayerName(t *testing.T) {
	tables := DefaultRuleTables()
	cases := []struct {
		name string
		want domain.Role
	}{
		{"Dentina", RoleBody},
		{"Camada de corpo", RoleBody},
		{"Body shade", RoleBody},
		{"DENTINA ARTIFICIAL", RoleBody},
		{"Esmalte Vestibular Final", RoleEnamel},
		{"Enamel layer", RoleEnamel},
		{"Translucidez incisal", RoleEnamel},
		{"Efeitos Incisais", RoleEnamel},
		{"Adesivo", RoleOther},
		{"", RoleOther},
	}
	for _, tc := range cases {
		if got := ClassifyLayerName(tc.name, tables); got != tc.want {
			t.Errorf("ClassifyLayerName(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestClassifyLayerNameAccentInsensitive(t *testing.T) {
	tables := DefaultRuleTables()
	// Accented spellings must classify the same as their plain forms.
	if got := ClassifyLayerName("Camada de Côrpo", tables); got != RoleBody {
		t.Errorf("accented body name classified as %s", got)
	}
	if got := ClassifyLayerName("Translucidêz", tables); got != RoleEnamel {
		t.Errorf("accented enamel name classified as %s", got)
	}
}

func TestClassifyLayerNameBodyWinsTies(t *testing.T) {
	tables := DefaultRuleTables()
	// A name matching both keyword families takes the stricter body role.
	if got := ClassifyLayerName("Dentina com efeito incisal", tables); got != RoleBody {
		t.Errorf("mixed-keyword name classified as %s, want body", got)
	}
}
