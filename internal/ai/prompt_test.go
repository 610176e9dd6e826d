package ai

import (
	"strings"
	"testing"
	"time"

	"ai-doctor-server/internal/models"
)

func sampleInput() *AnalysisInput {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &AnalysisInput{
		ChiefComplaint: "severe headache for two days",
		SymptomsJSON:   `{"symptoms":[{"symptom":"headache","severity":8}]}`,
		ReportTexts: []ReportText{
			{FileName: "cbc.pdf", Text: "Hemoglobin 13.5 g/dL\nWBC 6.1"},
		},
		Timeline: []models.SymptomTimelineEntry{
			{Symptom: "headache", Severity: 5, RecordedAt: base, Seq: 1},
			{Symptom: "headache", Severity: 8, RecordedAt: base.Add(6 * time.Hour), Seq: 2},
		},
		History: &HistorySnapshot{
			Allergies:   []string{"penicillin"},
			Medications: []string{"ibuprofen"},
		},
	}
}

func TestBuildContextIncludesAllSections(t *testing.T) {
	ctx := BuildContext(sampleInput())

	for _, want := range []string{
		"CHIEF COMPLAINT:",
		"severe headache for two days",
		"SYMPTOMS:",
		"TEST RESULTS:",
		"File: cbc.pdf",
		"SYMPTOM TIMELINE",
		"severity 5/10",
		"MEDICAL HISTORY:",
		"Allergies: penicillin",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q", want)
		}
	}
}

func TestBuildContextIncludesTrendLine(t *testing.T) {
	ctx := BuildContext(sampleInput())
	if !strings.Contains(ctx, "Trend headache: severity increasing") {
		t.Errorf("context missing trend narrative:\n%s", ctx)
	}
}

func TestBuildContextTruncatesOversizedReports(t *testing.T) {
	in := sampleInput()
	in.ReportTexts = []ReportText{
		{FileName: "huge.pdf", Text: strings.Repeat("lab value 42 mg/dl\n", 2000)},
	}

	ctx := BuildContext(in)
	if len(ctx) > maxContextChars {
		t.Errorf("context length = %d, exceeds budget %d", len(ctx), maxContextChars)
	}
	if !strings.Contains(ctx, truncationMarker) {
		t.Error("oversized context lacks truncation marker")
	}
	// Sections after the reports must survive the per-section truncation.
	if !strings.Contains(ctx, "MEDICAL HISTORY:") {
		t.Error("truncation dropped the medical history section")
	}
}

func TestBuildPromptRequestsSchema(t *testing.T) {
	prompt := BuildPrompt(sampleInput())
	for _, want := range []string{
		`"risk_level": "low|moderate|high|critical"`,
		`"confidence_score"`,
		"respond with valid JSON only",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestHasContent(t *testing.T) {
	in := &AnalysisInput{}
	if in.HasContent() {
		t.Error("empty input reports content")
	}
	in.SymptomsJSON = "{}"
	if !in.HasContent() {
		t.Error("input with symptoms reports no content")
	}
	in = &AnalysisInput{ReportTexts: []ReportText{{FileName: "a.pdf", Text: "x"}}}
	if !in.HasContent() {
		t.Error("input with report text reports no content")
	}
}
