package processor

import (
	"fmt"
	"strings"
	"time"

	"github.com/medvault-org/medvault/normalize"
)

const unassignedSlug = "sem_paciente"

// FinalName builds the standardized document name
// AAAA-MM-DD-slug_do_paciente-tipo-especialidade.ext. Missing parts fall
// back to neutral placeholders so the name is always well formed.
func FinalName(date *string, patientName string, docType string, specialty string, originalName string) string {
	dateStr := time.Now().Format("2006-01-02")
	if date != nil && *date != "" {
		dateStr = *date
	}

	slug := unassignedSlug
	if normalized := normalize.Text(patientName); normalized != "" {
		slug = strings.ReplaceAll(normalized, " ", "_")
	}

	typeStr := "documento"
	if normalized := normalize.Text(docType); normalized != "" {
		typeStr = strings.ReplaceAll(normalized, " ", "_")
	}

	specStr := "geral"
	if normalized := normalize.Text(specialty); normalized != "" {
		specStr = strings.ReplaceAll(normalized, " ", "_")
	}

	ext := "pdf"
	if i := strings.LastIndex(originalName, "."); i >= 0 && i < len(originalName)-1 {
		ext = strings.ToLower(originalName[i+1:])
	}

	return fmt.Sprintf("%s-%s-%s-%s.%s", dateStr, slug, typeStr, specStr, ext)
}
