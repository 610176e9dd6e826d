package ai

import (
	"fmt"
	"strings"

	"ai-doctor-server/internal/models"
)

// SeverityTrend summarises how the severity of one symptom moved over the
// timeline.
type SeverityTrend struct {
	Symptom   string
	Direction string // increasing, decreasing, stable
	Slope     float64
	Samples   int
}

const trendSlopeThreshold = 0.1 // severity points per hour

// SeverityTrends fits a least-squares line through severity over time for each
// symptom with at least two entries. Entries are expected in timeline order.
// This is the only local pattern heuristic; everything else is narrative for
// the upstream model.
func SeverityTrends(entries []models.SymptomTimelineEntry) []SeverityTrend {
	bySymptom := make(map[string][]models.SymptomTimelineEntry)
	var order []string
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Symptom))
		if key == "" {
			continue
		}
		if _, seen := bySymptom[key]; !seen {
			order = append(order, key)
		}
		bySymptom[key] = append(bySymptom[key], e)
	}

	var trends []SeverityTrend
	for _, symptom := range order {
		group := bySymptom[symptom]
		if len(group) < 2 {
			continue
		}
		slope := severitySlope(group)
		trends = append(trends, SeverityTrend{
			Symptom:   symptom,
			Direction: classifySlope(slope),
			Slope:     slope,
			Samples:   len(group),
		})
	}
	return trends
}

// severitySlope returns the least-squares slope of severity against hours
// since the first entry.
func severitySlope(entries []models.SymptomTimelineEntry) float64 {
	start := entries[0].RecordedAt
	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(entries))
	for _, e := range entries {
		x := e.RecordedAt.Sub(start).Hours()
		y := float64(e.Severity)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func classifySlope(slope float64) string {
	switch {
	case slope > trendSlopeThreshold:
		return "increasing"
	case slope < -trendSlopeThreshold:
		return "decreasing"
	default:
		return "stable"
	}
}

func (t SeverityTrend) String() string {
	return fmt.Sprintf("%s: severity %s (%.2f points/hour over %d entries)",
		t.Symptom, t.Direction, t.Slope, t.Samples)
}
