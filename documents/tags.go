package documents

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/medvault-org/medvault/normalize"
)

const (
	// MaxAutoTags caps the automatically extracted tags kept per document.
	MaxAutoTags = 15
	// MaxTagsPerDocument caps automatic plus manual tags.
	MaxTagsPerDocument = 20
	MinTagLength       = 2
	MaxTagLength       = 50
)

var (
	ErrTagTooShort = errors.New("tag is too short")
	ErrTagTooLong  = errors.New("tag is too long")
	ErrTagExists   = errors.New("tag already exists on document")
	ErrTooManyTags = errors.New("document has the maximum number of tags")
	ErrTagNotFound = errors.New("tag not found on document")
)

// SanitizeAutoTags normalizes classifier-produced tags, drops the ones
// outside the length bounds, removes duplicates preserving extraction
// order, and caps the result at MaxAutoTags.
func SanitizeAutoTags(raw []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		normalized := normalize.Text(tag)
		if len(normalized) < MinTagLength || len(normalized) > MaxTagLength {
			continue
		}
		if !seen.Add(normalized) {
			continue
		}
		tags = append(tags, normalized)
		if len(tags) == MaxAutoTags {
			break
		}
	}
	return tags
}

// validateManualTag checks a user-entered tag against the document's
// current tag sets and returns its normalized form.
func validateManualTag(doc *Document, raw string) (string, error) {
	normalized := normalize.Text(raw)
	if len(normalized) < MinTagLength {
		return "", ErrTagTooShort
	}
	if len(normalized) > MaxTagLength {
		return "", ErrTagTooLong
	}

	all := doc.AllTags()
	if len(all) >= MaxTagsPerDocument {
		return "", ErrTooManyTags
	}
	for _, existing := range all {
		if normalize.Text(existing) == normalized {
			return "", ErrTagExists
		}
	}
	return normalized, nil
}
