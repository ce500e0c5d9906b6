package api

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medvault-org/medvault/errors"
	"github.com/medvault-org/medvault/extraction"
	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/processor"
)

type ConfirmPatientDto struct {
	// PatientId is the chosen patient, or null for an explicit skip.
	PatientId *string `json:"patientId"`
}

type MatchRequestDto struct {
	SearchName    string `json:"searchName"`
	MinConfidence *int   `json:"minConfidence,omitempty"`
}

type MatchResponseDto struct {
	Scenario   matching.Scenario    `json:"scenario"`
	Candidates []matching.Candidate `json:"candidates"`
}

// ResolveDocument runs the matching stage for a classified document.
func (h *Handler) ResolveDocument(c echo.Context) error {
	result := &extraction.ClassificationResult{}
	if err := c.Bind(result); err != nil {
		return errors.BadRequest
	}

	outcome, err := h.processor.Resolve(c.Request().Context(), c.Param("userId"), c.Param("documentId"), result)
	if err != nil {
		return mapProcessorError(err)
	}
	return c.JSON(http.StatusOK, outcome)
}

func (h *Handler) ConfirmDocumentPatient(c echo.Context) error {
	dto := ConfirmPatientDto{}
	if err := c.Bind(&dto); err != nil {
		return errors.BadRequest
	}

	document, err := h.processor.Confirm(c.Request().Context(), c.Param("userId"), c.Param("documentId"), dto.PatientId)
	if err != nil {
		return mapProcessorError(err)
	}
	return c.JSON(http.StatusOK, document)
}

func (h *Handler) CancelDocumentConfirmation(c echo.Context) error {
	document, err := h.processor.Cancel(c.Request().Context(), c.Param("userId"), c.Param("documentId"))
	if err != nil {
		return mapProcessorError(err)
	}
	return c.JSON(http.StatusOK, document)
}

// MatchPatients runs ad-hoc fuzzy matching of a name against the caller's
// roster, without touching any document.
func (h *Handler) MatchPatients(c echo.Context) error {
	ctx := c.Request().Context()
	dto := MatchRequestDto{}
	if err := c.Bind(&dto); err != nil {
		return errors.BadRequest
	}

	roster, err := h.patients.Roster(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	minConfidence := h.thresholds.ReviewRequired
	if dto.MinConfidence != nil {
		minConfidence = *dto.MinConfidence
	}

	candidates, err := h.matcher.FindAllMatches(dto.SearchName, roster, minConfidence)
	if err != nil {
		return errors.Validation(err)
	}

	return c.JSON(http.StatusOK, MatchResponseDto{
		Scenario:   h.thresholds.Classify(candidates),
		Candidates: candidates,
	})
}

func mapProcessorError(err error) error {
	switch {
	case stderrors.Is(err, processor.ErrNotAwaitingConfirmation):
		return errors.Conflict
	case stderrors.Is(err, matching.ErrInvalidConfidence),
		stderrors.Is(err, matching.ErrInvalidThreshold):
		return errors.Validation(err)
	}
	return mapPatientError(mapDocumentError(err))
}
