// Package library locates series folders and episode files on disk by
// fuzzy name equivalence against a set of candidate titles.
package library

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduces a title or folder name to its comparable form:
// everything from the first parenthesis or bracket onward is discarded,
// the remainder is lowercased, and every character outside [a-z0-9] is
// stripped. Idempotent.
func Normalize(name string) string {
	if i := strings.IndexAny(name, "(["); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Variants returns the normalized forms of a name: the strict
// normalization plus, when it differs, an accent-folded normalization
// ("Pokémon" yields both "pokmon" and "pokemon"). Used to widen
// candidate sets; directory entries are always compared with the
// strict form only.
func Variants(name string) []string {
	strict := Normalize(name)
	folded := Normalize(removeAccents(name))
	if folded == strict || folded == "" {
		if strict == "" {
			return nil
		}
		return []string{strict}
	}
	if strict == "" {
		return []string{folded}
	}
	return []string{strict, folded}
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Equivalent reports whether two normalized names refer to the same
// series: equal, one contains the other, or one is a prefix of the
// other. Symmetric. Empty strings never match.
func Equivalent(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	// Prefix containment is subsumed by the substring checks above but
	// is part of the documented contract; keep it explicit.
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
