package models

import (
	"fmt"

	"gorm.io/datatypes"

	"ai-doctor-server/internal/apperrors"
)

// ConsultationStatus represents the lifecycle state of a consultation
type ConsultationStatus string

const (
	ConsultationDraft     ConsultationStatus = "draft"
	ConsultationActive    ConsultationStatus = "active"
	ConsultationCompleted ConsultationStatus = "completed"
	ConsultationCancelled ConsultationStatus = "cancelled"
)

// allowedTransitions is the full lifecycle: draft -> active -> completed,
// with cancellation terminal from any non-completed state.
var allowedTransitions = map[ConsultationStatus][]ConsultationStatus{
	ConsultationDraft:  {ConsultationActive, ConsultationCancelled},
	ConsultationActive: {ConsultationCompleted, ConsultationCancelled},
}

// Consultation bundles one patient session: chief complaint, symptom payload,
// uploaded reports, the symptom timeline and all AI analyses produced for it.
type Consultation struct {
	BaseModel
	UserID         string             `gorm:"size:36;index;not null" json:"userId"`
	ChiefComplaint string             `gorm:"type:text" json:"chiefComplaint,omitempty"`
	Symptoms       datatypes.JSON     `json:"symptoms,omitempty"`
	Status         ConsultationStatus `gorm:"size:20;default:'draft'" json:"status"`

	// Relations
	User            User                   `gorm:"foreignKey:UserID" json:"-"`
	TestReports     []TestReport           `gorm:"foreignKey:ConsultationID" json:"testReports,omitempty"`
	TimelineEntries []SymptomTimelineEntry `gorm:"foreignKey:ConsultationID" json:"timelineEntries,omitempty"`
	Analyses        []Analysis             `gorm:"foreignKey:ConsultationID" json:"analyses,omitempty"`
	ChatMessages    []ChatMessage          `gorm:"foreignKey:ConsultationID" json:"chatMessages,omitempty"`
}

// CanTransition reports whether the status change is allowed by the lifecycle.
func (c *Consultation) CanTransition(next ConsultationStatus) bool {
	for _, allowed := range allowedTransitions[c.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the consultation to the next status, or fails with an
// invalid-state error without mutating it.
func (c *Consultation) Transition(next ConsultationStatus) error {
	if !c.CanTransition(next) {
		return apperrors.InvalidState("cannot transition consultation from %s to %s", c.Status, next)
	}
	c.Status = next
	return nil
}

// AcceptsSymptoms reports whether symptom submission is valid in the current
// status (draft or active only).
func (c *Consultation) AcceptsSymptoms() bool {
	return c.Status == ConsultationDraft || c.Status == ConsultationActive
}

// HasSymptoms reports whether a symptom payload has been submitted.
func (c *Consultation) HasSymptoms() bool {
	return len(c.Symptoms) > 0
}

// ValidateStatus checks a raw status string coming from a request.
func ValidateStatus(s string) (ConsultationStatus, error) {
	switch status := ConsultationStatus(s); status {
	case ConsultationDraft, ConsultationActive, ConsultationCompleted, ConsultationCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown consultation status %q", s)
	}
}
