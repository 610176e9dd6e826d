package report

import (
	"bytes"
	"testing"
	"time"

	"ai-doctor-server/internal/models"
)

func TestGenerateConsultationPDF(t *testing.T) {
	user := &models.User{Name: "Jane Roe"}
	consultation := &models.Consultation{
		ChiefComplaint: "severe headache",
		Status:         models.ConsultationActive,
	}
	consultation.ID = "11111111-2222-3333-4444-555555555555"

	timeline := []models.SymptomTimelineEntry{
		{Symptom: "headache", Severity: 8, RecordedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
	}
	latest := &models.Analysis{
		RiskLevel:       models.RiskModerate,
		Summary:         "Likely tension headache.",
		ConfidenceScore: 80,
		KeyFindings:     models.MarshalList([]string{"recurring headache"}),
	}

	data, err := GenerateConsultationPDF(consultation, user, timeline, latest)
	if err != nil {
		t.Fatalf("GenerateConsultationPDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, first bytes: %q", data[:min(8, len(data))])
	}
}

func TestGenerateConsultationPDFWithoutAnalysis(t *testing.T) {
	user := &models.User{Name: "Jane Roe"}
	consultation := &models.Consultation{Status: models.ConsultationDraft}
	consultation.ID = "11111111-2222-3333-4444-555555555555"

	data, err := GenerateConsultationPDF(consultation, user, nil, nil)
	if err != nil {
		t.Fatalf("GenerateConsultationPDF failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty PDF output")
	}
}
