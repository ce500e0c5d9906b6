package api

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medvault-org/medvault/errors"
	"github.com/medvault-org/medvault/patients"
)

type PatientDto struct {
	Id       string   `json:"id"`
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases,omitempty"`
	IsShared bool     `json:"isShared"`
}

type CreatePatientDto struct {
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases,omitempty"`
	IsShared bool     `json:"isShared"`
}

type UpdatePatientDto struct {
	Name     *string `json:"name,omitempty"`
	IsShared *bool   `json:"isShared,omitempty"`
}

type AliasDto struct {
	Alias string `json:"alias"`
}

func (h *Handler) ListPatients(c echo.Context) error {
	ctx := c.Request().Context()
	userId := c.Param("userId")

	filter := patients.Filter{UserId: userId}
	if search := c.QueryParam("search"); search != "" {
		filter.Search = &search
	}

	list, err := h.patients.List(ctx, &filter, queryPagination(c))
	if err != nil {
		return mapPatientError(err)
	}

	dtos := make([]PatientDto, 0, len(list))
	for _, patient := range list {
		dtos = append(dtos, newPatientDto(patient))
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	ctx := c.Request().Context()
	userId := c.Param("userId")

	dto := CreatePatientDto{}
	if err := c.Bind(&dto); err != nil {
		return errors.BadRequest
	}

	created, err := h.patients.Create(ctx, patients.Patient{
		UserId:   userId,
		Name:     dto.Name,
		Aliases:  dto.Aliases,
		IsShared: dto.IsShared,
	})
	if err != nil {
		return mapPatientError(err)
	}
	return c.JSON(http.StatusCreated, newPatientDto(created))
}

func (h *Handler) GetPatient(c echo.Context) error {
	patient, err := h.patients.Get(c.Request().Context(), c.Param("userId"), c.Param("patientId"))
	if err != nil {
		return mapPatientError(err)
	}
	return c.JSON(http.StatusOK, newPatientDto(patient))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	dto := UpdatePatientDto{}
	if err := c.Bind(&dto); err != nil {
		return errors.BadRequest
	}

	updated, err := h.patients.Update(c.Request().Context(), c.Param("userId"), c.Param("patientId"), patients.Update{
		Name:     dto.Name,
		IsShared: dto.IsShared,
	})
	if err != nil {
		return mapPatientError(err)
	}
	return c.JSON(http.StatusOK, newPatientDto(updated))
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.patients.Delete(c.Request().Context(), c.Param("userId"), c.Param("patientId")); err != nil {
		return mapPatientError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddPatientAlias(c echo.Context) error {
	dto := AliasDto{}
	if err := c.Bind(&dto); err != nil {
		return errors.BadRequest
	}

	updated, err := h.patients.AddAlias(c.Request().Context(), c.Param("userId"), c.Param("patientId"), dto.Alias)
	if err != nil {
		return mapPatientError(err)
	}
	return c.JSON(http.StatusOK, newPatientDto(updated))
}

func (h *Handler) RemovePatientAlias(c echo.Context) error {
	updated, err := h.patients.RemoveAlias(c.Request().Context(), c.Param("userId"), c.Param("patientId"), c.Param("alias"))
	if err != nil {
		return mapPatientError(err)
	}
	return c.JSON(http.StatusOK, newPatientDto(updated))
}

func newPatientDto(patient *patients.Patient) PatientDto {
	dto := PatientDto{
		Name:     patient.Name,
		Aliases:  patient.Aliases,
		IsShared: patient.IsShared,
	}
	if patient.Id != nil {
		dto.Id = patient.Id.Hex()
	}
	return dto
}

func mapPatientError(err error) error {
	switch {
	case stderrors.Is(err, patients.ErrNotFound):
		return errors.NotFound
	case stderrors.Is(err, patients.ErrDuplicate):
		return errors.Duplicate
	case stderrors.Is(err, patients.ErrNameRequired),
		stderrors.Is(err, patients.ErrAliasRequired):
		return errors.BadRequest
	case stderrors.Is(err, patients.ErrDuplicateAlias),
		stderrors.Is(err, patients.ErrTooManyAliases):
		return errors.ConstraintViolation
	}
	return err
}
