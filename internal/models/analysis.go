package models

import (
	"gorm.io/datatypes"
)

// RiskLevel represents the AI-assessed risk of a consultation
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ValidRiskLevel reports whether the value is one of the allowed risk levels.
func ValidRiskLevel(level string) bool {
	switch RiskLevel(level) {
	case RiskLow, RiskModerate, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Analysis is one AI-assessment result attached to a consultation.
// Rows are append-only: a consultation accumulates a history of analyses and
// prior rows are never mutated. AIAnalysis retains the complete upstream
// response for audit.
type Analysis struct {
	BaseModel
	ConsultationID      string         `gorm:"size:36;index;not null" json:"consultationId"`
	AIAnalysis          datatypes.JSON `gorm:"not null" json:"aiAnalysis"`
	RiskLevel           RiskLevel      `gorm:"size:20;not null" json:"riskLevel"`
	Summary             string         `gorm:"type:text" json:"summary,omitempty"`
	KeyFindings         datatypes.JSON `json:"keyFindings,omitempty"`
	Recommendations     datatypes.JSON `json:"recommendations,omitempty"`
	EmergencyActions    datatypes.JSON `json:"emergencyActions,omitempty"`
	FollowUpSuggestions datatypes.JSON `json:"followUpSuggestions,omitempty"`
	ConfidenceScore     int            `json:"confidenceScore"` // 0..100
	ModelVersion        string         `gorm:"size:100" json:"modelVersion,omitempty"`
	Disclaimer          string         `gorm:"type:text" json:"disclaimer"`

	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
}
