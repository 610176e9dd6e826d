package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the consultation workflow. Handlers translate these to
// HTTP statuses via Status; wrapping with fmt.Errorf("...: %w", err) keeps the
// class intact.
var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidState        = errors.New("operation not valid for current consultation status")
	ErrNotFound            = errors.New("resource not found")
	ErrForbidden           = errors.New("forbidden")
	ErrExtraction          = errors.New("text extraction failed")
	ErrAnalysisUnavailable = errors.New("analysis service unavailable")
	ErrAnalysisTimeout     = errors.New("analysis timed out")
	ErrPayloadTooLarge     = errors.New("payload too large")
)

// Status maps a workflow error to its HTTP status code.
// Unrecognized errors map to 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAnalysisUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrAnalysisTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrExtraction):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Validation wraps ErrValidation with a reason.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidState wraps ErrInvalidState with a reason.
func InvalidState(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
