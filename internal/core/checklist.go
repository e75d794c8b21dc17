package core

import "regexp"

// ReplaceShadeToken rewrites whole-token occurrences of oldShade with
// newShade across checklist strings, returning the updated slice. Matching
// is token-bounded so replacing "A1" leaves "A1E" untouched; strings without
// the old token are returned byte-for-byte unchanged.
func ReplaceShadeToken(checklist []string, oldShade, newShade string) []string {
	if len(checklist) == 0 || oldShade == "" || oldShade == newShade {
		return checklist
	}
	token := regexp.MustCompile(`\b` + regexp.QuoteMeta(oldShade) + `\b`)
	for i, entry := range checklist {
		if token.MatchString(entry) {
			checklist[i] = token.ReplaceAllLiteralString(entry, newShade)
		}
	}
	return checklist
}
