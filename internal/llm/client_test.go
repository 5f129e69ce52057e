package llm

import (
	"strings"
	"testing"

	"airimpact/internal/analysis"
)

func TestBuildPrompt(t *testing.T) {
	c := NewClient("test-key", "gpt-4.1")
	cmp := analysis.Comparison{
		Phase:         "Phase 1",
		Pollutant:     "PM2.5",
		During:        []float64{50},
		Control:       []float64{100},
		DuringMean:    50,
		ControlMean:   100,
		PercentChange: -50,
		PValue:        0.0142,
		Verdict:       analysis.VerdictSignificantReduction,
	}

	prompt, err := c.buildPrompt(cmp, "Delhi")
	if err != nil {
		t.Fatalf("buildPrompt() failed: %v", err)
	}

	for _, want := range []string{"Phase 1", "Delhi", "\"p_value\": 0.0142", "\"percent_change\": -50"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
