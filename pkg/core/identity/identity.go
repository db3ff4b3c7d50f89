// Package identity normalises staff names so that a course coordinator
// recorded in the schedule can be recognised in the faculty roster.
package identity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	trailingPhonePattern = regexp.MustCompile(`\s+\d{6,}$`)
	honorificPattern     = regexp.MustCompile(`\b(dr|mr|ms|mrs|prof|professor)\b`)
	nonAlnumPattern      = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// Canonical trims a raw display name: anything from the first '[' onwards
// (titles, departments) and a trailing phone number are dropped, and
// whitespace is collapsed.
func Canonical(raw string) string {
	s := strings.Map(toPlainSpace, raw)
	if idx := strings.Index(s, "["); idx >= 0 {
		s = s[:idx]
	}
	s = trailingPhonePattern.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Normalize returns the matching key for a display name: canonicalised,
// diacritics removed, case folded, honorifics and punctuation stripped.
func Normalize(raw string) string {
	s := stripMarks(Canonical(raw))
	s = cases.Fold().String(s)
	s = honorificPattern.ReplaceAllString(s, " ")
	s = nonAlnumPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Matches reports whether two normalised identities refer to the same person.
// Equality or containment in either direction counts, so "rao" matches
// "rao kumar". Every coordinator comparison goes through here.
func Matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func toPlainSpace(r rune) rune {
	if unicode.IsSpace(r) || r == '\u200b' {
		return ' '
	}
	return r
}
