package synonyms

import (
	"strings"

	"github.com/medvault-org/medvault/normalize"
)

// TagMatches reports whether any of the document's tags matches the search
// term or one of its synonyms. Containment is checked in both directions so
// that "dor" matches a "dor de cabeca" tag and a "dores" tag matches the
// term "dor". Short tags can therefore over-match; that is the intended
// behavior of the search surface.
func (e *Expander) TagMatches(tags []string, term string) bool {
	if len(tags) == 0 {
		return false
	}
	expansion := e.Expand(term)
	if len(expansion) == 0 {
		return false
	}

	normalized := normalize.Terms(tags)
	for _, expanded := range expansion {
		for _, tag := range normalized {
			if strings.Contains(tag, expanded) || strings.Contains(expanded, tag) {
				return true
			}
		}
	}
	return false
}
