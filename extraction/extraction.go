package extraction

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoClassification = errors.New("response contains no classification payload")

// Role identifies why a name appears in a document. Only names with
// RolePatient identify who the document is about; physicians and
// guardians are mentioned but are never matching subjects.
type Role string

const (
	RolePatient   Role = "paciente"
	RolePhysician Role = "physician"
	RoleGuardian  Role = "responsavel"
)

// ExtractedName is one person mentioned in the document text.
type ExtractedName struct {
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Confidence int    `json:"confidence"`
}

type Classification struct {
	Type       string  `json:"type"`
	Specialty  string  `json:"specialty"`
	Date       *string `json:"date"`
	Confidence int     `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type DocumentMetadata struct {
	ExtractionQuality string `json:"extraction_quality"`
	IsHandwritten     bool   `json:"is_handwritten"`
	Language          string `json:"language"`
}

// ClassificationResult is the structured output of the document
// classifier.
type ClassificationResult struct {
	Classification Classification   `json:"classification"`
	PatientNames   []ExtractedName  `json:"patient_names"`
	KeyFindings    []string         `json:"key_findings"`
	Tags           []string         `json:"tags"`
	Metadata       DocumentMetadata `json:"document_metadata"`
}

// SubjectNames returns the names with the patient role, in extraction
// order. These are the candidates for roster matching. A nil result has
// no subjects.
func (r *ClassificationResult) SubjectNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.PatientNames))
	for _, extracted := range r.PatientNames {
		if extracted.Role == RolePatient && extracted.Name != "" {
			names = append(names, extracted.Name)
		}
	}
	return names
}

// Parse decodes a classifier response. Models wrap the JSON payload in
// prose from time to time, so everything outside the outermost braces is
// discarded before unmarshalling.
func Parse(response []byte) (*ClassificationResult, error) {
	text := string(response)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, ErrNoClassification
	}

	result := &ClassificationResult{}
	if err := json.Unmarshal([]byte(text[start:end+1]), result); err != nil {
		return nil, err
	}
	return result, nil
}
