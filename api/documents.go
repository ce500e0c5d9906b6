package api

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/errors"
)

type CreateDocumentDto struct {
	OriginalName  string   `json:"originalName"`
	Type          string   `json:"type,omitempty"`
	Specialty     string   `json:"specialty,omitempty"`
	DocumentDate  string   `json:"documentDate,omitempty"`
	ExtractedText string   `json:"extractedText,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

type TagDto struct {
	Tag string `json:"tag"`
}

func (h *Handler) ListDocuments(c echo.Context) error {
	list, err := h.documents.List(c.Request().Context(), c.Param("userId"), queryPagination(c))
	if err != nil {
		return mapDocumentError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateDocument(c echo.Context) error {
	dto := CreateDocumentDto{}
	if err := c.Bind(&dto); err != nil {
		return errors.BadRequest
	}
	if dto.OriginalName == "" {
		return errors.BadRequest
	}

	created, err := h.documents.Create(c.Request().Context(), documents.Document{
		UserId:        c.Param("userId"),
		OriginalName:  dto.OriginalName,
		Type:          dto.Type,
		Specialty:     dto.Specialty,
		DocumentDate:  dto.DocumentDate,
		ExtractedText: dto.ExtractedText,
		Tags:          dto.Tags,
	})
	if err != nil {
		return mapDocumentError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetDocument(c echo.Context) error {
	document, err := h.documents.Get(c.Request().Context(), c.Param("userId"), c.Param("documentId"))
	if err != nil {
		return mapDocumentError(err)
	}
	return c.JSON(http.StatusOK, document)
}

func (h *Handler) DeleteDocument(c echo.Context) error {
	if err := h.documents.Delete(c.Request().Context(), c.Param("userId"), c.Param("documentId")); err != nil {
		return mapDocumentError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddDocumentTag(c echo.Context) error {
	dto := TagDto{}
	if err := c.Bind(&dto); err != nil {
		return errors.BadRequest
	}

	updated, err := h.documents.AddManualTag(c.Request().Context(), c.Param("userId"), c.Param("documentId"), dto.Tag)
	if err != nil {
		return mapDocumentError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) RemoveDocumentTag(c echo.Context) error {
	updated, err := h.documents.RemoveManualTag(c.Request().Context(), c.Param("userId"), c.Param("documentId"), c.Param("tag"))
	if err != nil {
		return mapDocumentError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// SearchDocuments combines a free-text query with structured filters and
// returns the hits grouped by patient.
func (h *Handler) SearchDocuments(c echo.Context) error {
	filter := documents.SearchFilter{}
	if v := c.QueryParam("type"); v != "" {
		filter.Type = &v
	}
	if v := c.QueryParam("specialty"); v != "" {
		filter.Specialty = &v
	}
	if v := c.QueryParam("patientId"); v != "" {
		filter.PatientId = &v
	}
	if v := c.QueryParam("reviewRequired"); v != "" {
		reviewRequired, err := strconv.ParseBool(v)
		if err != nil {
			return errors.BadRequest
		}
		filter.ReviewRequired = &reviewRequired
	}

	groups, err := h.documents.Search(c.Request().Context(), c.Param("userId"), c.QueryParam("q"), filter)
	if err != nil {
		return mapDocumentError(err)
	}
	return c.JSON(http.StatusOK, groups)
}

func mapDocumentError(err error) error {
	switch {
	case stderrors.Is(err, documents.ErrNotFound):
		return errors.NotFound
	case stderrors.Is(err, documents.ErrTagExists):
		return errors.Duplicate
	case stderrors.Is(err, documents.ErrTagTooShort),
		stderrors.Is(err, documents.ErrTagTooLong),
		stderrors.Is(err, documents.ErrTagNotFound):
		return errors.BadRequest
	case stderrors.Is(err, documents.ErrTooManyTags):
		return errors.ConstraintViolation
	}
	return err
}
