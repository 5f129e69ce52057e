package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"airimpact/internal/analysis"
	"airimpact/internal/charts"
	"airimpact/internal/models"
)

// Generator handles report generation and HTML conversion
type Generator struct {
	city string
}

// NewGenerator creates a new report generator for one city
func NewGenerator(city string) *Generator {
	return &Generator{city: city}
}

// BuildMarkdown produces the deterministic markdown summary of a comparison.
// narrative, when non-empty, is an LLM-written commentary appended verbatim;
// advisories are recent feed items listed for context.
func (g *Generator) BuildMarkdown(cmp analysis.Comparison, narrative string, advisories []models.Advisory) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Air Quality Impact Analysis: %s (%s)\n\n", cmp.Phase, g.city)
	fmt.Fprintf(&b, "One-sided Mann-Whitney U test of daily %s, comparing days during the "+
		"vehicle-restriction policy against the same calendar window one year earlier. "+
		"The alternative hypothesis is that pollution was *lower* during the policy.\n\n", cmp.Pollutant)

	if cmp.Verdict == analysis.VerdictInconclusive {
		fmt.Fprintf(&b, "## Result\n\n")
		fmt.Fprintf(&b, "**Inconclusive.** One or both comparison groups contain no data "+
			"(%d during days, %d control days); there is not enough data for a meaningful statistical test.\n\n",
			len(cmp.During), len(cmp.Control))
	} else {
		fmt.Fprintf(&b, "## Result\n\n")
		fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Mean %s during policy | %.2f µg/m³ (%d days) |\n", cmp.Pollutant, cmp.DuringMean, len(cmp.During))
		fmt.Fprintf(&b, "| Mean %s control period | %.2f µg/m³ (%d days) |\n", cmp.Pollutant, cmp.ControlMean, len(cmp.Control))
		fmt.Fprintf(&b, "| Change | %+.1f%% |\n", cmp.PercentChange)
		fmt.Fprintf(&b, "| U statistic | %.1f |\n", cmp.UStatistic)
		fmt.Fprintf(&b, "| p-value (one-sided) | %.4f |\n\n", cmp.PValue)

		if cmp.Verdict == analysis.VerdictSignificantReduction {
			fmt.Fprintf(&b, "The reduction in %s is **statistically significant** (p < %.2f).\n\n",
				cmp.Pollutant, analysis.SignificanceLevel)
		} else {
			fmt.Fprintf(&b, "The reduction in %s is **not** statistically significant (p >= %.2f).\n\n",
				cmp.Pollutant, analysis.SignificanceLevel)
		}
	}

	if narrative != "" {
		fmt.Fprintf(&b, "## Commentary\n\n%s\n\n", strings.TrimSpace(narrative))
	}

	if len(advisories) > 0 {
		fmt.Fprintf(&b, "## Recent Air Quality Advisories\n\n")
		for _, a := range advisories {
			when := ""
			if !a.Published.IsZero() {
				when = a.Published.Format("2006-01-02") + ": "
			}
			if a.Link != "" {
				fmt.Fprintf(&b, "- %s[%s](%s)\n", when, a.Title, a.Link)
			} else {
				fmt.Fprintf(&b, "- %s%s\n", when, a.Title)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// MarkdownToHTML converts markdown to HTML
func (g *Generator) MarkdownToHTML(markdownText string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(markdownText))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return string(markdown.Render(doc, renderer))
}

// BuildCompleteHTML assembles the full report document: header, summary
// cards, the converted markdown content and the chart snippets.
func (g *Generator) BuildCompleteHTML(content string, cmp analysis.Comparison, snippets []charts.ChartSnippet, generated time.Time) string {
	var chartSections strings.Builder
	for _, s := range snippets {
		fmt.Fprintf(&chartSections, "        <div class=\"chart-container\">\n%s\n        </div>\n", s.HTML)
	}

	duringMean, controlMean, change, pValue := "n/a", "n/a", "n/a", "n/a"
	if cmp.Verdict != analysis.VerdictInconclusive {
		duringMean = fmt.Sprintf("%.1f", cmp.DuringMean)
		controlMean = fmt.Sprintf("%.1f", cmp.ControlMean)
		change = fmt.Sprintf("%+.1f%%", cmp.PercentChange)
		pValue = fmt.Sprintf("%.4f", cmp.PValue)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Air Quality Impact Report - %s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1100px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .header {
            background: linear-gradient(135deg, #1d976c 0%%, #93f9b9 100%%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 { margin: 0; font-size: 2.2em; }
        .header .timestamp { opacity: 0.9; margin-top: 10px; }
        .summary-cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .card {
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            border-left: 4px solid #1d976c;
        }
        .card h3 { margin-top: 0; color: #1d976c; }
        .metric { font-size: 1.5em; font-weight: bold; color: #333; }
        .content, .charts-section {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            margin-bottom: 30px;
        }
        .chart-container { margin-bottom: 40px; }
        .footer { text-align: center; color: #666; font-size: 0.9em; margin-top: 30px; }
        h1, h2, h3 { color: #333; }
        h2 { border-bottom: 2px solid #1d976c; padding-bottom: 5px; }
        table { border-collapse: collapse; width: 100%%; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
        th { background-color: #f8f9fa; font-weight: bold; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Air Quality Impact Report</h1>
        <div class="timestamp">%s &middot; %s &middot; Generated: %s</div>
    </div>

    <div class="summary-cards">
        <div class="card">
            <h3>During Policy</h3>
            <div class="metric">%s</div>
            <div>Mean PM2.5 (µg/m³)</div>
        </div>
        <div class="card">
            <h3>Control Period</h3>
            <div class="metric">%s</div>
            <div>Mean PM2.5 (µg/m³)</div>
        </div>
        <div class="card">
            <h3>Change</h3>
            <div class="metric">%s</div>
            <div>During vs. Control</div>
        </div>
        <div class="card">
            <h3>Verdict</h3>
            <div class="metric">%s</div>
            <div>p-value: %s</div>
        </div>
    </div>

    <div class="content">
        %s
    </div>

    <div class="charts-section">
        <h2>Visualizations</h2>
%s    </div>

    <div class="footer">
        <p>Report generated by airimpact | One-sided Mann-Whitney U test at the %.2f significance level</p>
    </div>
</body>
</html>`,
		cmp.Phase,
		g.city,
		cmp.Phase,
		generated.Format("2006-01-02 15:04 UTC"),
		duringMean,
		controlMean,
		change,
		cmp.Verdict,
		pValue,
		content,
		chartSections.String(),
		analysis.SignificanceLevel,
	)
}
