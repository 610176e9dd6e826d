package ai

import (
	"ai-doctor-server/internal/models"
)

// DefaultDisclaimer is attached to every analysis served by this system. The
// wording is a user-facing policy contract and must not be altered.
const DefaultDisclaimer = "This AI analysis is for informational purposes only and should not replace " +
	"professional medical advice, diagnosis, or treatment. Always consult with a " +
	"qualified healthcare provider for medical concerns. In case of emergency, " +
	"call emergency services immediately."

// AnalysisInput carries everything the orchestrator gathers for one analysis
// request: the consultation's complaint and symptom payload, extracted text of
// completed test reports, the sorted symptom timeline and a medical history
// snapshot.
type AnalysisInput struct {
	ChiefComplaint string
	SymptomsJSON   string
	ReportTexts    []ReportText
	Timeline       []models.SymptomTimelineEntry
	History        *HistorySnapshot
}

// ReportText is the extracted text of one completed test report.
type ReportText struct {
	FileName string
	Text     string
}

// HistorySnapshot is the medical history as flat string lists.
type HistorySnapshot struct {
	Allergies     []string
	Medications   []string
	Conditions    []string
	Surgeries     []string
	FamilyHistory []string
}

// HasContent reports whether there is anything to analyze.
func (in *AnalysisInput) HasContent() bool {
	return in.SymptomsJSON != "" || len(in.ReportTexts) > 0
}

// PossibleCondition is one differential suggested by the model.
type PossibleCondition struct {
	Condition   string `json:"condition"`
	Probability string `json:"probability"`
	Reasoning   string `json:"reasoning"`
}

// Recommendation is one ordered recommendation from the model.
type Recommendation struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Timeline string `json:"timeline"`
}

// EmergencyAlert is surfaced distinctly to the caller when the model flags an
// emergency.
type EmergencyAlert struct {
	IsEmergency       bool     `json:"is_emergency"`
	SeverityLevel     string   `json:"severity_level"`
	ImmediateActions  []string `json:"immediate_actions"`
	EmergencyContacts []string `json:"emergency_contacts"`
	Message           string   `json:"message"`
}

// AnalysisResult is the schema the upstream model must produce. Any structural
// deviation is treated as a parse failure feeding the fallback-model chain.
type AnalysisResult struct {
	Summary             string              `json:"summary"`
	RiskLevel           string              `json:"risk_level"`
	KeyFindings         []string            `json:"key_findings"`
	PossibleConditions  []PossibleCondition `json:"possible_conditions"`
	Recommendations     []Recommendation    `json:"recommendations"`
	EmergencyIndicators []string            `json:"emergency_indicators"`
	IsEmergency         bool                `json:"is_emergency"`
	EmergencyActions    []string            `json:"emergency_actions"`
	FollowUpSuggestions []string            `json:"follow_up_suggestions"`
	ConfidenceScore     int                 `json:"confidence_score"`
	Disclaimer          string              `json:"disclaimer"`

	// RawResponse is the unmodified upstream payload, retained for audit.
	RawResponse string `json:"-"`
	// ModelUsed is the model identifier that produced this result.
	ModelUsed string `json:"-"`
}

// Alert builds the emergency payload for a result that flagged an emergency,
// or nil.
func (r *AnalysisResult) Alert() *EmergencyAlert {
	if !r.IsEmergency {
		return nil
	}
	return &EmergencyAlert{
		IsEmergency:       true,
		SeverityLevel:     r.RiskLevel,
		ImmediateActions:  r.EmergencyActions,
		EmergencyContacts: []string{"911", "Local Emergency Services"},
		Message:           "This appears to be a medical emergency. Seek immediate medical attention.",
	}
}

// chatRequest is the OpenRouter chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat-completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
