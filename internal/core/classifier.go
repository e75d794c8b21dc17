package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"denticore/pkg/domain"
)

// normalizeText lower-cases and accent-folds free text so keyword matching
// treats "Translucidez" and "translucidez" (and their accented spellings)
// alike.
func normalizeText(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// containsNormalized reports whether already-normalized haystack contains
// the normalized form of fragment.
func containsNormalized(haystack, fragment string) bool {
	return strings.Contains(haystack, normalizeText(fragment))
}

// ClassifyLayerName assigns a role from the layer's declared name. Names
// matching a body keyword classify as RoleBody even when an enamel keyword
// also matches; shade-role protection errs toward the stricter role.
func ClassifyLayerName(name string, tables RuleTables) domain.Role {
	normalized := normalizeText(name)
	for _, keyword := range tables.BodyKeywords {
		if containsNormalized(normalized, keyword) {
			return domain.RoleBody
		}
	}
	for _, keyword := range tables.EnamelKeywords {
		if containsNormalized(normalized, keyword) {
			return domain.RoleEnamel
		}
	}
	return domain.RoleOther
}
