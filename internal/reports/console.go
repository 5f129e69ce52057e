package reports

import (
	"fmt"
	"io"

	"airimpact/internal/analysis"
)

// WriteConsole prints the analysis verdict in the compact terminal form.
func WriteConsole(w io.Writer, cmp analysis.Comparison) {
	fmt.Fprintf(w, "--- Statistical Analysis for %s ---\n", cmp.Phase)

	if cmp.Verdict == analysis.VerdictInconclusive {
		fmt.Fprintln(w, "Not enough data for a meaningful statistical test.")
		return
	}

	fmt.Fprintf(w, "Comparing '%s' vs. Control Period for %s:\n", cmp.Phase, cmp.Pollutant)
	fmt.Fprintf(w, "  - Mean %s During Policy: %.2f\n", cmp.Pollutant, cmp.DuringMean)
	fmt.Fprintf(w, "  - Mean %s Control Period: %.2f\n", cmp.Pollutant, cmp.ControlMean)
	fmt.Fprintf(w, "  - Mann-Whitney U test p-value: %.4f\n", cmp.PValue)

	if cmp.Verdict == analysis.VerdictSignificantReduction {
		fmt.Fprintf(w, "  - Result: The reduction in %s is statistically significant.\n", cmp.Pollutant)
	} else {
		fmt.Fprintf(w, "  - Result: The reduction in %s is not statistically significant.\n", cmp.Pollutant)
	}
}
