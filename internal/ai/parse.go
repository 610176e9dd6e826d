package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-doctor-server/internal/models"
)

// ParseResponse decodes the model's free-text reply into the structured
// analysis schema. Any structural mismatch is an error so the caller can fall
// back to the next model in the chain.
func ParseResponse(raw, modelID string) (*AnalysisResult, error) {
	cleaned := stripCodeFences(raw)

	var result AnalysisResult
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	// Decode stops at the end of the first JSON value; anything after it means
	// the reply was not a single JSON object.
	if decoder.More() {
		return nil, fmt.Errorf("analysis response has trailing content after JSON object")
	}

	if result.Summary == "" {
		return nil, fmt.Errorf("analysis response missing summary")
	}
	result.RiskLevel = strings.ToLower(strings.TrimSpace(result.RiskLevel))
	if !models.ValidRiskLevel(result.RiskLevel) {
		return nil, fmt.Errorf("analysis response has invalid risk_level %q", result.RiskLevel)
	}
	if result.ConfidenceScore < 0 || result.ConfidenceScore > 100 {
		return nil, fmt.Errorf("analysis response confidence_score %d out of range", result.ConfidenceScore)
	}

	// The disclaimer is a policy contract; never trust the model to word it.
	result.Disclaimer = DefaultDisclaimer

	result.RawResponse = raw
	result.ModelUsed = modelID
	return &result, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
