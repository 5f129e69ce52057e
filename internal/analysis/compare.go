package analysis

import (
	"gonum.org/v1/gonum/stat"

	"airimpact/internal/logger"
	"airimpact/internal/models"
)

// SignificanceLevel is the p-value threshold below which a reduction is
// called statistically significant.
const SignificanceLevel = 0.05

// Verdict is the outcome of a phase comparison.
type Verdict int

const (
	// VerdictInconclusive means one or both comparison groups were empty.
	VerdictInconclusive Verdict = iota
	// VerdictSignificantReduction means p < SignificanceLevel for the
	// one-sided "during < control" alternative.
	VerdictSignificantReduction
	// VerdictNotSignificant means the test ran but found no significant
	// reduction.
	VerdictNotSignificant
)

// String returns the string representation of the verdict
func (v Verdict) String() string {
	switch v {
	case VerdictInconclusive:
		return "Inconclusive"
	case VerdictSignificantReduction:
		return "Significant Reduction"
	case VerdictNotSignificant:
		return "Not Significant"
	default:
		return "Unknown"
	}
}

// Comparison summarizes the During vs Control PM2.5 test for one phase.
type Comparison struct {
	Phase         string    `json:"phase"`
	Pollutant     string    `json:"pollutant"`
	During        []float64 `json:"during"`
	Control       []float64 `json:"control"`
	DuringMean    float64   `json:"during_mean"`
	ControlMean   float64   `json:"control_mean"`
	PercentChange float64   `json:"percent_change"`
	UStatistic    float64   `json:"u_statistic"`
	PValue        float64   `json:"p_value"`
	Verdict       Verdict   `json:"verdict"`
}

// Compare extracts the During and Control PM2.5 samples for phaseName from
// the labeled series and runs the one-sided rank-sum test with the
// alternative "pollution was lower during the policy". An empty group is a
// normal outcome (VerdictInconclusive), not an error. The input series is
// never mutated.
func Compare(series []models.DailyRecord, phaseName string) (Comparison, error) {
	cmp := Comparison{
		Phase:     phaseName,
		Pollutant: "PM2.5",
		During:    extractPM25(series, models.During(phaseName)),
		Control:   extractPM25(series, models.Control(phaseName)),
	}

	if len(cmp.During) == 0 || len(cmp.Control) == 0 {
		logger.Warnf("Not enough data for %s: %d during days, %d control days",
			phaseName, len(cmp.During), len(cmp.Control))
		cmp.Verdict = VerdictInconclusive
		return cmp, nil
	}

	cmp.DuringMean = stat.Mean(cmp.During, nil)
	cmp.ControlMean = stat.Mean(cmp.Control, nil)
	cmp.PercentChange = (cmp.DuringMean - cmp.ControlMean) / cmp.ControlMean * 100

	res, err := MannWhitneyU(cmp.During, cmp.Control, Less)
	if err != nil {
		return cmp, err
	}
	cmp.UStatistic = res.U
	cmp.PValue = res.P

	if cmp.PValue < SignificanceLevel {
		cmp.Verdict = VerdictSignificantReduction
	} else {
		cmp.Verdict = VerdictNotSignificant
	}

	logger.Infof("Compared %s: during mean %.2f, control mean %.2f, p=%.4f (%s)",
		phaseName, cmp.DuringMean, cmp.ControlMean, cmp.PValue, cmp.Verdict)
	return cmp, nil
}

func extractPM25(series []models.DailyRecord, status models.PolicyStatus) []float64 {
	var out []float64
	for _, rec := range series {
		if rec.Status == status {
			out = append(out, rec.PM25)
		}
	}
	return out
}
