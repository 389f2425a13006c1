package models

import (
	"regexp"
	"strings"
)

var (
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// JoinKeyNormalize canonicalizes a value for equality-based join keys:
// trim, uppercase, empty collapses to the missing sentinel. Two values
// normalize equal exactly when they are equal after trimming and case
// folding.
func JoinKeyNormalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// JoinKeyMissing is what JoinKeyNormalize returns for blank input. Join
// indexes never contain it, so rows with a missing key match nothing.
const JoinKeyMissing = ""

// TextNormalize canonicalizes free text for tolerant state-name matching:
// non-breaking spaces become ordinary spaces, lowercase, punctuation
// stripped, whitespace runs collapsed, then all remaining spaces removed.
// "Tamil Nadu", "TAMILNADU" and "tamil-nadu" all normalize identically.
func TextNormalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ToLower(strings.TrimSpace(s))
	s = punctuationPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "")
}

// NormalizeForCompare prepares a state name for the state-match rule:
// trim, then drop internal spaces. Case is preserved on purpose; the rule
// is case-sensitive.
func NormalizeForCompare(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// BuildCanonicalStateMap maps TextNormalize(state) to the trimmed canonical
// state name, built from the FC reference data. States that normalize to
// the empty string are excluded; later duplicates overwrite earlier ones.
func BuildCanonicalStateMap(centers []FulfillmentCenter) map[string]string {
	canon := make(map[string]string, len(centers))
	for _, fc := range centers {
		state := strings.TrimSpace(fc.State)
		norm := TextNormalize(state)
		if norm == "" {
			continue
		}
		canon[norm] = state
	}
	return canon
}

// SafeCorrect replaces raw with the canonical state name when its
// normalized form is known, else returns raw unchanged. Exact
// normalized-string match only: no partial or fuzzy matching.
func SafeCorrect(raw string, canon map[string]string) string {
	if corrected, ok := canon[TextNormalize(raw)]; ok {
		return corrected
	}
	return raw
}
