package reports

import (
	"context"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/patients"
	"github.com/medvault-org/medvault/store"
)

type Generator struct {
	documents documents.Service
	patients  patients.Service
}

func NewGenerator(documentsService documents.Service, patientsService patients.Service) *Generator {
	return &Generator{
		documents: documentsService,
		patients:  patientsService,
	}
}

// Archive renders the caller's complete document archive.
func (g *Generator) Archive(ctx context.Context, userId string) (*xlsx.File, error) {
	pagination := store.Pagination{Offset: 0, Limit: 1000}
	list, err := g.patients.List(ctx, &patients.Filter{UserId: userId}, pagination)
	if err != nil {
		return nil, fmt.Errorf("unable to list patients for report: %w", err)
	}

	names := make(map[string]string, len(list))
	for _, patient := range list {
		if patient.Id != nil {
			names[patient.Id.Hex()] = patient.Name
		}
	}

	groups, err := g.documents.Search(ctx, userId, "", documents.SearchFilter{})
	if err != nil {
		return nil, fmt.Errorf("unable to list documents for report: %w", err)
	}

	return NewReport(names, groups).Generate()
}
