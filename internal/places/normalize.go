// Package places holds the static city and airport tables used to turn
// human-typed place names into coordinates and IATA codes.
package places

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, collapses whitespace and composes combining marks,
// so "  MÜNCHEN" and "münchen" produce the same key. Diacritics are kept.
func Normalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	// cases.Caser is stateful; one per call.
	return cases.Lower(language.German).String(s)
}

var (
	umlautExpand = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
	umlautStrip  = strings.NewReplacer("ä", "a", "ö", "o", "ü", "u", "ß", "ss")
)

// keyVariants returns the normalized key followed by its ASCII transliterations.
func keyVariants(name string) []string {
	key := Normalize(name)
	out := []string{key}
	for _, r := range []*strings.Replacer{umlautExpand, umlautStrip} {
		v := r.Replace(key)
		if v != key && !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
