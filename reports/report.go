package reports

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/medvault-org/medvault/documents"
)

const (
	SheetNameSummary   = "Summary"
	SheetNameDocuments = "Documents"

	UnassignedGroupLabel = "Sem paciente"
)

// Report renders a user's document archive, grouped by patient, as a
// spreadsheet with a summary sheet and a detail sheet.
type Report struct {
	patientNames map[string]string
	groups       []documents.PatientGroup
}

// NewReport builds a report over the given groups. patientNames maps
// patient ids to display names; unknown ids fall back to the raw id.
func NewReport(patientNames map[string]string, groups []documents.PatientGroup) Report {
	return Report{
		patientNames: patientNames,
		groups:       groups,
	}
}

func (r Report) Generate() (*xlsx.File, error) {
	report := xlsx.NewFile()

	components := []func(report *xlsx.File) error{
		r.addSummarySheet,
		r.addDocumentsSheet,
	}
	for _, fn := range components {
		if err := fn(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (r Report) addSummarySheet(report *xlsx.File) error {
	sh, err := report.AddSheet(SheetNameSummary)
	if err != nil {
		return err
	}

	sh.AddRow().AddCell().SetValue("DOCUMENT ARCHIVE SUMMARY")
	sh.AddRow()

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Patient")
	currentRow.AddCell().SetValue("Documents")
	currentRow.AddCell().SetValue("Needs Review")

	total := 0
	totalReview := 0
	for _, group := range r.groups {
		review := 0
		for _, doc := range group.Documents {
			if doc.ReviewRequired {
				review++
			}
		}
		total += len(group.Documents)
		totalReview += review

		currentRow = sh.AddRow()
		currentRow.AddCell().SetValue(r.groupLabel(group))
		currentRow.AddCell().SetValue(len(group.Documents))
		currentRow.AddCell().SetValue(review)
	}

	sh.AddRow()
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Total")
	currentRow.AddCell().SetValue(total)
	currentRow.AddCell().SetValue(totalReview)

	return nil
}

func (r Report) addDocumentsSheet(report *xlsx.File) error {
	sh, err := report.AddSheet(SheetNameDocuments)
	if err != nil {
		return err
	}

	currentRow := sh.AddRow()
	for _, header := range []string{"Patient", "Name", "Type", "Specialty", "Date", "Status", "Confidence", "Tags"} {
		currentRow.AddCell().SetValue(header)
	}

	for _, group := range r.groups {
		label := r.groupLabel(group)
		for _, doc := range group.Documents {
			currentRow = sh.AddRow()
			currentRow.AddCell().SetValue(label)
			currentRow.AddCell().SetValue(doc.FinalName)
			currentRow.AddCell().SetValue(doc.Type)
			currentRow.AddCell().SetValue(doc.Specialty)
			currentRow.AddCell().SetValue(doc.DocumentDate)
			currentRow.AddCell().SetValue(string(doc.Status))
			if doc.MatchConfidence != nil {
				currentRow.AddCell().SetValue(fmt.Sprintf("%d%%", *doc.MatchConfidence))
			} else {
				currentRow.AddCell()
			}
			currentRow.AddCell().SetValue(strings.Join(doc.AllTags(), ", "))
		}
	}

	return nil
}

func (r Report) groupLabel(group documents.PatientGroup) string {
	if group.PatientId == nil {
		return UnassignedGroupLabel
	}
	if name, ok := r.patientNames[*group.PatientId]; ok {
		return name
	}
	return *group.PatientId
}
