package charts

import (
	"airimpact/internal/analysis"
	"airimpact/internal/models"
)

// ChartSnippet represents an embeddable chart fragment for the HTML report.
// HTML carries the complete snippet (markup plus init script) ready for
// template substitution.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

// Generator handles creation of chart images and embeddable chart snippets
type Generator struct {
	outputDir string
}

// NewGenerator creates a new chart generator writing PNG files to outputDir
func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

// GeneratePNGCharts creates the static chart images for the report and
// returns the written file paths. Charts that need both comparison groups
// are skipped when the comparison was inconclusive.
func (g *Generator) GeneratePNGCharts(series []models.DailyRecord, cmp analysis.Comparison) ([]string, error) {
	var files []string

	if cmp.Verdict != analysis.VerdictInconclusive {
		if f, err := g.generateMeansBarChart(cmp); err == nil {
			files = append(files, f)
		} else {
			return files, err
		}
	}

	if f, err := g.generateTimelineChart(series, cmp.Phase); err == nil {
		files = append(files, f)
	} else {
		return files, err
	}

	return files, nil
}

// GenerateSnippets creates the embeddable chart snippets for the report.
// Returns whatever could be built; the report renders the rest without them.
func (g *Generator) GenerateSnippets(series []models.DailyRecord, phase models.PolicyPhase, cmp analysis.Comparison) []ChartSnippet {
	var snippets []ChartSnippet

	if cmp.Verdict != analysis.VerdictInconclusive {
		if s, err := g.MeansBarSnippet(cmp); err == nil {
			snippets = append(snippets, s)
		}
		if s, err := g.DistributionSnippet(cmp); err == nil {
			snippets = append(snippets, s)
		}
	}

	snippets = append(snippets, g.CalendarSnippets(series, phase)...)
	return snippets
}
