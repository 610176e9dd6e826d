package ai

import (
	"math"
	"testing"
	"time"

	"ai-doctor-server/internal/models"
)

func entry(symptom string, severity int, at time.Time, seq uint64) models.SymptomTimelineEntry {
	return models.SymptomTimelineEntry{Symptom: symptom, Severity: severity, RecordedAt: at, Seq: seq}
}

func TestSeverityTrendsIncreasing(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.SymptomTimelineEntry{
		entry("Headache", 4, base, 1),
		entry("headache", 6, base.Add(2*time.Hour), 2),
		entry("headache", 8, base.Add(4*time.Hour), 3),
	}

	trends := SeverityTrends(entries)
	if len(trends) != 1 {
		t.Fatalf("got %d trends, want 1", len(trends))
	}
	if trends[0].Direction != "increasing" {
		t.Errorf("Direction = %s, want increasing", trends[0].Direction)
	}
	if math.Abs(trends[0].Slope-1.0) > 1e-9 {
		t.Errorf("Slope = %f, want 1.0", trends[0].Slope)
	}
	if trends[0].Samples != 3 {
		t.Errorf("Samples = %d, want 3", trends[0].Samples)
	}
}

func TestSeverityTrendsStableAndDecreasing(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.SymptomTimelineEntry{
		entry("nausea", 5, base, 1),
		entry("nausea", 5, base.Add(3*time.Hour), 2),
		entry("back pain", 8, base, 3),
		entry("back pain", 3, base.Add(5*time.Hour), 4),
	}

	trends := SeverityTrends(entries)
	if len(trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(trends))
	}
	if trends[0].Symptom != "nausea" || trends[0].Direction != "stable" {
		t.Errorf("trends[0] = %+v, want stable nausea", trends[0])
	}
	if trends[1].Symptom != "back pain" || trends[1].Direction != "decreasing" {
		t.Errorf("trends[1] = %+v, want decreasing back pain", trends[1])
	}
}

func TestSeverityTrendsSkipsSingletons(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.SymptomTimelineEntry{
		entry("fever", 6, base, 1),
	}
	if trends := SeverityTrends(entries); len(trends) != 0 {
		t.Errorf("singleton symptom produced trends: %+v", trends)
	}
}

func TestSeverityTrendsZeroDuration(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	entries := []models.SymptomTimelineEntry{
		entry("fever", 6, at, 1),
		entry("fever", 9, at, 2),
	}
	trends := SeverityTrends(entries)
	if len(trends) != 1 || trends[0].Direction != "stable" {
		t.Errorf("same-instant entries trend = %+v, want stable", trends)
	}
}
