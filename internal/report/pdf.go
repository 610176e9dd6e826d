package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ai-doctor-server/internal/ai"
	"ai-doctor-server/internal/models"
)

const lineWidth = 180.0

// GenerateConsultationPDF renders a printable summary of a consultation: the
// complaint, symptom timeline and the latest analysis, closed by the fixed
// disclaimer.
func GenerateConsultationPDF(
	consultation *models.Consultation,
	user *models.User,
	timeline []models.SymptomTimelineEntry,
	latest *models.Analysis,
) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(lineWidth, 10, "Consultation Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(lineWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(lineWidth, 6, fmt.Sprintf("Patient: %s", user.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(lineWidth, 6, fmt.Sprintf("Consultation: %s (%s)", consultation.ID, consultation.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if consultation.ChiefComplaint != "" {
		section(pdf, "Chief Complaint")
		pdf.MultiCell(lineWidth, 5, consultation.ChiefComplaint, "", "L", false)
		pdf.Ln(3)
	}

	if len(timeline) > 0 {
		section(pdf, "Symptom Timeline")
		for _, e := range timeline {
			line := fmt.Sprintf("%s - %s, severity %d/10", e.RecordedAt.Format("2006-01-02 15:04"), e.Symptom, e.Severity)
			if e.Notes != "" {
				line += " (" + e.Notes + ")"
			}
			pdf.MultiCell(lineWidth, 5, line, "", "L", false)
		}
		pdf.Ln(3)
	}

	if latest != nil {
		section(pdf, fmt.Sprintf("Latest AI Analysis (risk: %s, confidence: %d/100)", latest.RiskLevel, latest.ConfidenceScore))
		if latest.Summary != "" {
			pdf.MultiCell(lineWidth, 5, latest.Summary, "", "L", false)
			pdf.Ln(2)
		}
		for _, finding := range models.UnmarshalList(latest.KeyFindings) {
			pdf.MultiCell(lineWidth, 5, "- "+finding, "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(lineWidth, 4, ai.DefaultDisclaimer, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write consultation pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(lineWidth, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}
