package ai

import (
	"fmt"
	"strings"
)

const (
	// maxContextChars bounds the assembled medical context so the request fits
	// the upstream model's context budget. Oversized sections are truncated
	// from the end, test reports first.
	maxContextChars       = 12000
	maxReportSectionChars = 6000

	truncationMarker = "\n[... truncated ...]"
)

const systemPrompt = "You are a knowledgeable medical AI assistant that provides thorough analysis " +
	"while always emphasizing the need for professional medical consultation. Always respond with valid JSON."

// BuildContext formats the gathered consultation data into the textual medical
// context sent to the model.
func BuildContext(in *AnalysisInput) string {
	var parts []string

	if in.ChiefComplaint != "" {
		parts = append(parts, "CHIEF COMPLAINT:\n"+in.ChiefComplaint+"\n")
	}

	if in.SymptomsJSON != "" {
		parts = append(parts, "SYMPTOMS:\n"+in.SymptomsJSON+"\n")
	}

	if len(in.ReportTexts) > 0 {
		var reports []string
		for _, r := range in.ReportTexts {
			reports = append(reports, fmt.Sprintf("File: %s\n%s", r.FileName, r.Text))
		}
		section := strings.Join(reports, "\n\n")
		parts = append(parts, "TEST RESULTS:\n"+truncate(section, maxReportSectionChars)+"\n")
	}

	if len(in.Timeline) > 0 {
		var lines []string
		lines = append(lines, "SYMPTOM TIMELINE (chronological):")
		for _, e := range in.Timeline {
			line := fmt.Sprintf("- %s: %s, severity %d/10", e.RecordedAt.Format("2006-01-02 15:04"), e.Symptom, e.Severity)
			if e.Location != "" {
				line += ", location: " + e.Location
			}
			if e.Duration != "" {
				line += ", duration: " + e.Duration
			}
			lines = append(lines, line)
		}
		for _, trend := range SeverityTrends(in.Timeline) {
			lines = append(lines, "- Trend "+trend.String())
		}
		parts = append(parts, strings.Join(lines, "\n")+"\n")
	}

	if in.History != nil {
		var lines []string
		lines = append(lines, "MEDICAL HISTORY:")
		if len(in.History.Allergies) > 0 {
			lines = append(lines, "- Allergies: "+strings.Join(in.History.Allergies, ", "))
		}
		if len(in.History.Medications) > 0 {
			lines = append(lines, "- Current medications: "+strings.Join(in.History.Medications, ", "))
		}
		if len(in.History.Conditions) > 0 {
			lines = append(lines, "- Chronic conditions: "+strings.Join(in.History.Conditions, ", "))
		}
		if len(in.History.Surgeries) > 0 {
			lines = append(lines, "- Past surgeries: "+strings.Join(in.History.Surgeries, ", "))
		}
		if len(in.History.FamilyHistory) > 0 {
			lines = append(lines, "- Family history: "+strings.Join(in.History.FamilyHistory, ", "))
		}
		if len(lines) > 1 {
			parts = append(parts, strings.Join(lines, "\n")+"\n")
		}
	}

	return truncate(strings.Join(parts, "\n"), maxContextChars)
}

// BuildPrompt wraps the medical context in the fixed instruction template
// requesting the structured analysis schema.
func BuildPrompt(in *AnalysisInput) string {
	return fmt.Sprintf(`You are an AI medical assistant analyzing a patient consultation. Please provide a comprehensive analysis based on the following information:

%s

Please provide your analysis in the following JSON format:

{
    "summary": "Brief summary of the medical situation",
    "risk_level": "low|moderate|high|critical",
    "key_findings": ["finding1", "finding2"],
    "possible_conditions": [
        {"condition": "condition name", "probability": "low|moderate|high", "reasoning": "explanation"}
    ],
    "recommendations": [
        {"category": "immediate|follow_up|lifestyle|medication", "action": "specific recommendation", "priority": "high|medium|low", "timeline": "when to act"}
    ],
    "emergency_indicators": ["indicator1"],
    "is_emergency": false,
    "emergency_actions": ["action if emergency"],
    "follow_up_suggestions": ["suggestion1"],
    "confidence_score": 85,
    "disclaimer": "Important medical disclaimer"
}

IMPORTANT GUIDELINES:
1. Always err on the side of caution
2. Recommend professional medical consultation for serious symptoms
3. Never provide definitive diagnoses - only suggest possibilities
4. Include emergency indicators clearly
5. Provide actionable recommendations
6. Include appropriate medical disclaimers
7. Consider all provided information comprehensively

Please analyze the patient information and respond with valid JSON only.`, BuildContext(in))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-len(truncationMarker)] + truncationMarker
}
