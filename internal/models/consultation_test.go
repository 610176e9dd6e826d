package models

import (
	"errors"
	"testing"

	"gorm.io/datatypes"

	"ai-doctor-server/internal/apperrors"
)

func TestConsultationTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ConsultationStatus
		to      ConsultationStatus
		allowed bool
	}{
		{"draft to active", ConsultationDraft, ConsultationActive, true},
		{"draft to cancelled", ConsultationDraft, ConsultationCancelled, true},
		{"active to completed", ConsultationActive, ConsultationCompleted, true},
		{"active to cancelled", ConsultationActive, ConsultationCancelled, true},
		{"draft to completed", ConsultationDraft, ConsultationCompleted, false},
		{"active to draft", ConsultationActive, ConsultationDraft, false},
		{"completed to active", ConsultationCompleted, ConsultationActive, false},
		{"completed to cancelled", ConsultationCompleted, ConsultationCancelled, false},
		{"cancelled to active", ConsultationCancelled, ConsultationActive, false},
		{"cancelled to completed", ConsultationCancelled, ConsultationCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Consultation{Status: tt.from}
			err := c.Transition(tt.to)
			if tt.allowed {
				if err != nil {
					t.Fatalf("Transition(%s -> %s) failed: %v", tt.from, tt.to, err)
				}
				if c.Status != tt.to {
					t.Errorf("status = %s, want %s", c.Status, tt.to)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrInvalidState) {
				t.Fatalf("Transition(%s -> %s) error = %v, want ErrInvalidState", tt.from, tt.to, err)
			}
			if c.Status != tt.from {
				t.Errorf("failed transition mutated status to %s", c.Status)
			}
		})
	}
}

func TestAcceptsSymptoms(t *testing.T) {
	for status, want := range map[ConsultationStatus]bool{
		ConsultationDraft:     true,
		ConsultationActive:    true,
		ConsultationCompleted: false,
		ConsultationCancelled: false,
	} {
		c := Consultation{Status: status}
		if got := c.AcceptsSymptoms(); got != want {
			t.Errorf("AcceptsSymptoms() in %s = %v, want %v", status, got, want)
		}
	}
}

func TestHasSymptoms(t *testing.T) {
	c := Consultation{}
	if c.HasSymptoms() {
		t.Error("empty consultation reports symptoms")
	}
	c.Symptoms = datatypes.JSON(`{"symptoms":[{"symptom":"headache","severity":8}]}`)
	if !c.HasSymptoms() {
		t.Error("consultation with payload reports no symptoms")
	}
}

func TestValidateStatus(t *testing.T) {
	if _, err := ValidateStatus("active"); err != nil {
		t.Errorf("ValidateStatus(active) failed: %v", err)
	}
	if _, err := ValidateStatus("archived"); err == nil {
		t.Error("ValidateStatus(archived) did not fail")
	}
}
