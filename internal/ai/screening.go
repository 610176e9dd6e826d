package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-doctor-server/internal/apperrors"
)

// Emergency screening runs on a task-specific model chain instead of the
// configured general chain: the screening task favors models tuned for fast,
// conservative triage, independent of which model the full analysis uses.
var screeningModels = []string{
	"microsoft/wizardlm-2-8x22b:free",
	"meta-llama/llama-3.1-8b-instruct:free",
	"google/gemma-2-9b-it:free",
}

const (
	screeningMaxTokens   = 1000
	screeningTemperature = 0.1 // very conservative for emergency detection
)

const screeningSystemPrompt = "You are an emergency medicine AI specialist performing rapid triage. " +
	"Focus on sensitivity over specificity and err on the side of caution. Always respond with valid JSON."

// Screening enums. The model output is normalized to lowercase and validated
// against these sets; anything else is a parse failure.
var (
	emergencyLevels = map[string]bool{
		"none": true, "low": true, "moderate": true, "high": true, "critical": true,
	}
	timeToCareValues = map[string]bool{
		"immediate": true, "within_1_hour": true, "within_4_hours": true, "within_24_hours": true,
	}
	emergencySpecialties = map[string]bool{
		"emergency": true, "cardiology": true, "neurology": true, "surgery": true, "psychiatry": true,
	}
)

// ScreeningResult is the rapid-triage schema: whether the presentation looks
// like an emergency, how urgent care is, and which specialty should see it.
type ScreeningResult struct {
	IsEmergency        bool     `json:"is_emergency"`
	EmergencyLevel     string   `json:"emergency_level"`
	RedFlags           []string `json:"red_flags"`
	ImmediateActions   []string `json:"immediate_actions"`
	TimeToCare         string   `json:"time_to_care"`
	EmergencySpecialty string   `json:"emergency_specialty"`
	Confidence         int      `json:"confidence"`
	Reasoning          string   `json:"reasoning"`

	// ModelUsed is the model identifier that produced this result.
	ModelUsed string `json:"-"`
}

// BuildScreeningPrompt wraps the consultation context in the triage checklist
// and the screening JSON schema.
func BuildScreeningPrompt(in *AnalysisInput) string {
	return fmt.Sprintf(`Perform rapid emergency screening based on the following patient information:

%s

EMERGENCY SCREENING CHECKLIST:
Evaluate for these critical conditions:
- Acute coronary syndrome (chest pain, dyspnea, diaphoresis)
- Stroke (FAST criteria: Face, Arms, Speech, Time)
- Respiratory distress (severe dyspnea, oxygen saturation issues)
- Shock (hypotension, altered mental status, poor perfusion)
- Severe bleeding or trauma
- Sepsis or severe infection
- Acute abdomen (severe abdominal pain with guarding)
- Severe allergic reaction (anaphylaxis)
- Acute psychotic episode or suicidal ideation

Respond with JSON format:

{
    "is_emergency": false,
    "emergency_level": "none|low|moderate|high|critical",
    "red_flags": ["specific emergency indicators found"],
    "immediate_actions": ["urgent actions if emergency"],
    "time_to_care": "immediate|within_1_hour|within_4_hours|within_24_hours",
    "emergency_specialty": "emergency|cardiology|neurology|surgery|psychiatry",
    "confidence": 95,
    "reasoning": "brief explanation of emergency assessment"
}

Focus on sensitivity over specificity - err on the side of caution for emergency detection. Respond with valid JSON only.`, BuildContext(in))
}

// ParseScreening decodes the model's reply into the screening schema. The same
// strictness as ParseResponse applies: any deviation feeds the fallback chain.
func ParseScreening(raw, modelID string) (*ScreeningResult, error) {
	cleaned := stripCodeFences(raw)

	var result ScreeningResult
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode screening response: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("screening response has trailing content after JSON object")
	}

	result.EmergencyLevel = strings.ToLower(strings.TrimSpace(result.EmergencyLevel))
	if !emergencyLevels[result.EmergencyLevel] {
		return nil, fmt.Errorf("screening response has invalid emergency_level %q", result.EmergencyLevel)
	}
	result.TimeToCare = strings.ToLower(strings.TrimSpace(result.TimeToCare))
	if !timeToCareValues[result.TimeToCare] {
		return nil, fmt.Errorf("screening response has invalid time_to_care %q", result.TimeToCare)
	}
	result.EmergencySpecialty = strings.ToLower(strings.TrimSpace(result.EmergencySpecialty))
	if !emergencySpecialties[result.EmergencySpecialty] {
		return nil, fmt.Errorf("screening response has invalid emergency_specialty %q", result.EmergencySpecialty)
	}
	if result.Confidence < 0 || result.Confidence > 100 {
		return nil, fmt.Errorf("screening response confidence %d out of range", result.Confidence)
	}

	result.ModelUsed = modelID
	return &result, nil
}

// Screen runs rapid emergency screening over the consultation context. It
// walks the screening model chain under one deadline, with the same error
// semantics as Analyze.
func (c *Client) Screen(ctx context.Context, in *AnalysisInput) (*ScreeningResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: upstream API key not configured", apperrors.ErrAnalysisUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := BuildScreeningPrompt(in)

	var lastErr error
	for _, model := range screeningModels {
		raw, err := c.complete(ctx, model, screeningSystemPrompt, prompt, screeningMaxTokens, screeningTemperature)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrAnalysisTimeout, ctx.Err())
			}
			log.Printf("screening model %s failed: %v", model, err)
			lastErr = err
			continue
		}

		result, err := ParseScreening(raw, model)
		if err != nil {
			log.Printf("screening model %s returned unparseable response: %v", model, err)
			lastErr = err
			continue
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: all screening models failed, last error: %v", apperrors.ErrAnalysisUnavailable, lastErr)
}
