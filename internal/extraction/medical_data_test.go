package extraction

import (
	"testing"
)

func TestMineMedicalData(t *testing.T) {
	text := "Lab report 03/12/2025\n" +
		"Hemoglobin: 13.5 g/dl\n" +
		"Glucose 98 mg/dl fasting\n" +
		"Blood Pressure 120 mmhg\n"

	data := MineMedicalData(text)

	if len(data.TestResults) == 0 {
		t.Fatal("no test results mined")
	}
	found := map[string]bool{}
	for _, tr := range data.TestResults {
		found[tr.Test] = true
	}
	for _, want := range []string{"hemoglobin", "glucose", "blood pressure"} {
		if !found[want] {
			t.Errorf("test %q not mined, got %v", want, found)
		}
	}

	if len(data.Measurements) != 3 {
		t.Errorf("got %d measurements, want 3: %+v", len(data.Measurements), data.Measurements)
	}
	if data.Measurements[0].Value != 13.5 || data.Measurements[0].Unit != "g/dl" {
		t.Errorf("Measurements[0] = %+v", data.Measurements[0])
	}

	if len(data.Dates) != 1 || data.Dates[0] != "03/12/2025" {
		t.Errorf("Dates = %v", data.Dates)
	}
}

func TestMineMedicalDataEmptyText(t *testing.T) {
	data := MineMedicalData("")
	if len(data.TestResults) != 0 || len(data.Measurements) != 0 || len(data.Dates) != 0 {
		t.Errorf("empty text mined data: %+v", data)
	}
}
