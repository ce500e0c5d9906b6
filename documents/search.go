package documents

import (
	"strings"

	"github.com/medvault-org/medvault/normalize"
	"github.com/medvault-org/medvault/synonyms"
)

// SearchFilter holds the structured filters applied on top of the free-text
// query. Nil fields are inactive; active fields are strict equality checks
// combined with AND.
type SearchFilter struct {
	Type           *string
	Specialty      *string
	PatientId      *string
	ReviewRequired *bool
}

// PatientGroup is one partition of the filtered result set. PatientId is
// nil for the "unassigned" group.
type PatientGroup struct {
	PatientId *string    `json:"patientId"`
	Documents []Document `json:"documents"`
}

// Filter selects the documents matching the query and the structured
// filters. It preserves the relative order of the input; it never reranks.
//
// A non-empty query matches a document when the lower-cased query is
// contained in one of the plain-text fields, when a tag matches the query
// through synonym expansion, or when one of the expanded terms occurs in
// the extracted text.
func Filter(docs []Document, query string, filter SearchFilter, expander *synonyms.Expander) []Document {
	query = strings.TrimSpace(query)
	queryLower := strings.ToLower(query)
	var expandedTerms []string
	if query != "" {
		expandedTerms = expander.Expand(query)
	}

	result := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if query != "" && !matchesQuery(&doc, queryLower, expandedTerms, expander, query) {
			continue
		}
		if !matchesFilter(&doc, filter) {
			continue
		}
		result = append(result, doc)
	}
	return result
}

func matchesQuery(doc *Document, queryLower string, expandedTerms []string, expander *synonyms.Expander, query string) bool {
	plainFields := []string{
		doc.FinalName,
		doc.OriginalName,
		doc.ExtractedText,
		doc.Type,
		doc.Specialty,
	}
	for _, field := range plainFields {
		if field != "" && strings.Contains(strings.ToLower(field), queryLower) {
			return true
		}
	}

	if expander.TagMatches(doc.AllTags(), query) {
		return true
	}

	if doc.ExtractedText != "" {
		content := strings.ToLower(doc.ExtractedText)
		normalizedContent := normalize.Text(doc.ExtractedText)
		for _, term := range expandedTerms {
			if strings.Contains(content, term) || strings.Contains(normalizedContent, term) {
				return true
			}
		}
	}

	return false
}

func matchesFilter(doc *Document, filter SearchFilter) bool {
	if filter.Type != nil && doc.Type != *filter.Type {
		return false
	}
	if filter.Specialty != nil && doc.Specialty != *filter.Specialty {
		return false
	}
	if filter.PatientId != nil {
		if doc.PatientId == nil || *doc.PatientId != *filter.PatientId {
			return false
		}
	}
	if filter.ReviewRequired != nil && doc.ReviewRequired != *filter.ReviewRequired {
		return false
	}
	return true
}

// GroupByPatient partitions documents by patient id, with a dedicated group
// for unassigned documents. Groups appear in order of first appearance and
// empty groups are never emitted, so the grouping is stable within a call.
func GroupByPatient(docs []Document) []PatientGroup {
	const unassignedKey = ""

	order := make([]string, 0)
	grouped := make(map[string][]Document)
	for _, doc := range docs {
		key := unassignedKey
		if doc.PatientId != nil {
			key = *doc.PatientId
		}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], doc)
	}

	groups := make([]PatientGroup, 0, len(order))
	for _, key := range order {
		group := PatientGroup{Documents: grouped[key]}
		if key != unassignedKey {
			patientId := key
			group.PatientId = &patientId
		}
		groups = append(groups, group)
	}
	return groups
}
