package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// markStripper decomposes characters (NFD) and drops the combining marks,
// so "María" and "Maria" normalize to the same string.
var markStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Text canonicalizes free text for comparison: lower-case, accent-strip,
// drop everything outside [a-z0-9\s-] and collapse whitespace runs to a
// single space. The result is stable under repeated application and the
// function never fails; unconvertible input degrades to whatever survives
// the character filter.
func Text(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	if stripped, _, err := transform.String(markStripper, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Terms normalizes every element and drops the ones that come out empty.
func Terms(terms []string) []string {
	result := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Text(t); n != "" {
			result = append(result, n)
		}
	}
	return result
}
