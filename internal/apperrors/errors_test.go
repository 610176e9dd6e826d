package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrValidation, http.StatusBadRequest},
		{"payload too large", ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid state", ErrInvalidState, http.StatusUnprocessableEntity},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"analysis unavailable", ErrAnalysisUnavailable, http.StatusBadGateway},
		{"analysis timeout", ErrAnalysisTimeout, http.StatusGatewayTimeout},
		{"extraction", ErrExtraction, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("analyze consultation: %w", ErrInvalidState)
	if got := Status(err); got != http.StatusUnprocessableEntity {
		t.Errorf("wrapped Status = %d, want %d", got, http.StatusUnprocessableEntity)
	}

	err = InvalidState("consultation is %s", "completed")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("InvalidState result does not match ErrInvalidState")
	}
}
