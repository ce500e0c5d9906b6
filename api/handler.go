package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/patients"
	"github.com/medvault-org/medvault/processor"
	"github.com/medvault-org/medvault/reports"
	"github.com/medvault-org/medvault/store"
)

type Handler struct {
	patients   patients.Service
	documents  documents.Service
	processor  *processor.Processor
	matcher    *matching.Matcher
	thresholds matching.Thresholds
	reports    *reports.Generator
}

type Params struct {
	fx.In

	Patients   patients.Service
	Documents  documents.Service
	Processor  *processor.Processor
	Matcher    *matching.Matcher
	Thresholds matching.Thresholds
	Reports    *reports.Generator
}

func NewHandler(p Params) *Handler {
	return &Handler{
		patients:   p.Patients,
		documents:  p.Documents,
		processor:  p.Processor,
		matcher:    p.Matcher,
		thresholds: p.Thresholds,
		reports:    p.Reports,
	}
}

func queryPagination(c echo.Context) store.Pagination {
	page := store.DefaultPagination()
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil && offset >= 0 {
		page.Offset = offset
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		page.Limit = limit
	}
	return page
}
