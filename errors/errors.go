package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	NotFound            = HttpError{http.StatusNotFound, errors.New("not found")}
	Duplicate           = HttpError{http.StatusConflict, errors.New("duplicate")}
	ConstraintViolation = HttpError{http.StatusUnprocessableEntity, errors.New("constraint violation")}
	BadRequest          = HttpError{http.StatusBadRequest, errors.New("bad request")}
	Unauthorized        = HttpError{http.StatusUnauthorized, errors.New("unauthorized")}
	Forbidden           = HttpError{http.StatusForbidden, errors.New("forbidden")}
	InternalServerError = HttpError{http.StatusInternalServerError, errors.New("internal server error")}
	Conflict            = HttpError{http.StatusConflict, errors.New("conflict")}
)

type HttpError struct {
	Code int
	Err  error
}

func (h HttpError) Unwrap() error {
	return h.Err
}

func (h HttpError) Error() string {
	return h.Err.Error()
}

// Validation wraps a caller contract violation (bad threshold, confidence
// out of range) so it surfaces as a 400 at the API boundary instead of a
// silent clamp.
func Validation(err error) error {
	return HttpError{http.StatusBadRequest, fmt.Errorf("validation: %w", err)}
}
