package analysis

import (
	"math"
	"testing"
	"time"

	"airimpact/internal/models"
)

func makeSeries(phase string, during, control []float64) []models.DailyRecord {
	var series []models.DailyRecord
	for i, v := range control {
		series = append(series, models.DailyRecord{
			Date:   models.Day(2015, time.January, i+1),
			PM25:   v,
			NO2:    v / 2,
			Status: models.Control(phase),
		})
	}
	for i, v := range during {
		series = append(series, models.DailyRecord{
			Date:   models.Day(2016, time.January, i+1),
			PM25:   v,
			NO2:    v / 2,
			Status: models.During(phase),
		})
	}
	// Surrounding context days never enter the comparison.
	series = append(series,
		models.DailyRecord{Date: models.Day(2016, time.June, 1), PM25: 500, NO2: 250, Status: models.Normal()},
		models.DailyRecord{Date: models.Day(2015, time.December, 20), PM25: 500, NO2: 250, Status: models.Before(phase)},
	)
	return series
}

func TestCompareSignificantReduction(t *testing.T) {
	series := makeSeries("Phase 1",
		[]float64{49, 50, 51, 50},
		[]float64{99, 100, 101, 100})

	cmp, err := Compare(series, "Phase 1")
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}

	if cmp.DuringMean != 50 {
		t.Errorf("DuringMean = %v, want 50", cmp.DuringMean)
	}
	if cmp.ControlMean != 100 {
		t.Errorf("ControlMean = %v, want 100", cmp.ControlMean)
	}
	if math.Abs(cmp.PercentChange-(-50)) > 1e-9 {
		t.Errorf("PercentChange = %v, want -50", cmp.PercentChange)
	}
	if cmp.PValue >= SignificanceLevel {
		t.Errorf("PValue = %v, want below %v", cmp.PValue, SignificanceLevel)
	}
	if cmp.Verdict != VerdictSignificantReduction {
		t.Errorf("Verdict = %v, want significant reduction", cmp.Verdict)
	}
}

func TestCompareNotSignificant(t *testing.T) {
	series := makeSeries("Phase 1",
		[]float64{100, 98, 102, 101},
		[]float64{99, 103, 97, 100})

	cmp, err := Compare(series, "Phase 1")
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}

	if cmp.Verdict != VerdictNotSignificant {
		t.Errorf("Verdict = %v (p=%v), want not significant", cmp.Verdict, cmp.PValue)
	}
}

func TestCompareInconclusiveOnEmptyGroup(t *testing.T) {
	series := makeSeries("Phase 1", []float64{50, 51}, []float64{100, 101})

	cmp, err := Compare(series, "Phase 2")
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}
	if cmp.Verdict != VerdictInconclusive {
		t.Errorf("Verdict = %v, want inconclusive for an unmatched phase", cmp.Verdict)
	}
	if len(cmp.During) != 0 || len(cmp.Control) != 0 {
		t.Errorf("groups = %d/%d days, want empty", len(cmp.During), len(cmp.Control))
	}
}

func TestCompareIgnoresOtherStatuses(t *testing.T) {
	series := makeSeries("Phase 1", []float64{50, 51, 52}, []float64{60, 61, 62})

	cmp, err := Compare(series, "Phase 1")
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}
	// The 500s carried by the Normal and Before days must not leak in.
	if len(cmp.During) != 3 || len(cmp.Control) != 3 {
		t.Fatalf("groups = %d/%d days, want 3/3", len(cmp.During), len(cmp.Control))
	}
	for _, v := range append(append([]float64{}, cmp.During...), cmp.Control...) {
		if v == 500 {
			t.Error("context day leaked into a comparison group")
		}
	}
}

func TestVerdictString(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    string
	}{
		{VerdictInconclusive, "Inconclusive"},
		{VerdictSignificantReduction, "Significant Reduction"},
		{VerdictNotSignificant, "Not Significant"},
	}
	for _, tt := range tests {
		if got := tt.verdict.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
