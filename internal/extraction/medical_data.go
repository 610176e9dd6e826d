package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// MedicalData is the structured information mined from extracted report text.
// It is stored alongside the raw text and included in analysis context. This is
// a lightweight keyword scan, not clinical NLP.
type MedicalData struct {
	TestResults  []TestResult  `json:"test_results"`
	Measurements []Measurement `json:"measurements"`
	Dates        []string      `json:"dates"`
}

// TestResult is a line mentioning a known lab test.
type TestResult struct {
	Test    string `json:"test"`
	RawLine string `json:"raw_line"`
}

// Measurement is a numeric value with a recognized medical unit.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// testPatterns are common lab test names scanned for in report text.
var testPatterns = []string{
	"blood pressure", "cholesterol", "glucose", "hemoglobin", "hgb",
	"white blood cell", "wbc", "red blood cell", "rbc", "platelet",
	"creatinine", "bun", "ast", "alt", "bilirubin", "albumin",
}

var (
	measurementRe = regexp.MustCompile(`(\d+\.?\d*)\s*(mg/dl|mmol/l|g/dl|mmhg|bpm|mg|ml|%)`)
	dateRe        = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// MineMedicalData scans extracted text for known test names, numeric
// measurements with units, and dates.
func MineMedicalData(text string) MedicalData {
	data := MedicalData{
		TestResults:  []TestResult{},
		Measurements: []Measurement{},
		Dates:        []string{},
	}

	lines := strings.Split(text, "\n")
	for _, pattern := range testPatterns {
		for _, line := range lines {
			if strings.Contains(strings.ToLower(line), pattern) {
				data.TestResults = append(data.TestResults, TestResult{
					Test:    pattern,
					RawLine: strings.TrimSpace(line),
				})
			}
		}
	}

	for _, match := range measurementRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		data.Measurements = append(data.Measurements, Measurement{Value: value, Unit: match[2]})
	}

	data.Dates = append(data.Dates, dateRe.FindAllString(text, -1)...)

	return data
}
