package ai

import (
	"strings"
	"testing"
)

const validResponse = `{
	"summary": "Likely tension headache with no red flags.",
	"risk_level": "moderate",
	"key_findings": ["recurring headache", "no neurological deficits"],
	"possible_conditions": [
		{"condition": "tension headache", "probability": "high", "reasoning": "pattern and quality of pain"}
	],
	"recommendations": [
		{"category": "follow_up", "action": "See a primary care physician", "priority": "medium", "timeline": "within a week"}
	],
	"emergency_indicators": [],
	"is_emergency": false,
	"emergency_actions": [],
	"follow_up_suggestions": ["keep a symptom diary"],
	"confidence_score": 82,
	"disclaimer": "model-provided wording"
}`

func TestParseResponseValid(t *testing.T) {
	result, err := ParseResponse(validResponse, "primary-model")
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if result.RiskLevel != "moderate" {
		t.Errorf("RiskLevel = %s, want moderate", result.RiskLevel)
	}
	if result.ConfidenceScore != 82 {
		t.Errorf("ConfidenceScore = %d, want 82", result.ConfidenceScore)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("Recommendations length = %d, want 1", len(result.Recommendations))
	}
	if result.ModelUsed != "primary-model" {
		t.Errorf("ModelUsed = %s", result.ModelUsed)
	}
	if result.RawResponse != validResponse {
		t.Error("RawResponse does not retain the unmodified payload")
	}
	// The disclaimer is pinned regardless of what the model wrote.
	if result.Disclaimer != DefaultDisclaimer {
		t.Errorf("Disclaimer = %q, want the fixed disclaimer", result.Disclaimer)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	result, err := ParseResponse(fenced, "m")
	if err != nil {
		t.Fatalf("ParseResponse(fenced) failed: %v", err)
	}
	if result.Summary == "" {
		t.Error("fenced response parsed to empty summary")
	}
}

func TestParseResponseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I am sorry, I cannot help with that."},
		{"missing summary", `{"risk_level": "low", "confidence_score": 50}`},
		{"invalid risk level", strings.Replace(validResponse, `"moderate"`, `"severe"`, 1)},
		{"confidence out of range", strings.Replace(validResponse, `"confidence_score": 82`, `"confidence_score": 140`, 1)},
		{"truncated json", validResponse[:len(validResponse)/2]},
		{"trailing prose after json", validResponse + "\nLet me know if you need anything else!"},
		{"second json value", validResponse + " " + validResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseResponse(tt.raw, "m"); err == nil {
				t.Errorf("ParseResponse accepted %s", tt.name)
			}
		})
	}
}

func TestParseResponseNormalizesRiskLevel(t *testing.T) {
	raw := strings.Replace(validResponse, `"moderate"`, `"HIGH"`, 1)
	result, err := ParseResponse(raw, "m")
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if result.RiskLevel != "high" {
		t.Errorf("RiskLevel = %s, want high", result.RiskLevel)
	}
}

func TestAlert(t *testing.T) {
	result := &AnalysisResult{IsEmergency: false, RiskLevel: "low"}
	if result.Alert() != nil {
		t.Error("non-emergency result produced an alert")
	}

	result = &AnalysisResult{
		IsEmergency:      true,
		RiskLevel:        "critical",
		EmergencyActions: []string{"Call 911"},
	}
	alert := result.Alert()
	if alert == nil {
		t.Fatal("emergency result produced no alert")
	}
	if alert.SeverityLevel != "critical" || len(alert.ImmediateActions) != 1 {
		t.Errorf("alert = %+v", alert)
	}
}
