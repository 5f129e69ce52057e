package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"airimpact/internal/analysis"
)

// generateMeansBarChart renders the headline result: mean PM2.5 during the
// policy next to the prior-year control mean, percent change in the title.
func (g *Generator) generateMeansBarChart(cmp analysis.Comparison) (string, error) {
	filename := filepath.Join(g.outputDir, "means_bar.png")

	graph := chart.BarChart{
		Title: fmt.Sprintf("Impact of %s on Average %s (%+.1f%% change)",
			cmp.Phase, cmp.Pollutant, cmp.PercentChange),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   40,
				Right:  20,
				Bottom: 40,
			},
		},
		Height:   420,
		Width:    640,
		BarWidth: 120,
		YAxis: chart.YAxis{
			Name: "Average PM2.5 (µg/m³)",
			NameStyle: chart.Style{
				FontSize: 11,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Bars: []chart.Value{
			{
				Value: cmp.DuringMean,
				Label: fmt.Sprintf("During Policy (%.1f)", cmp.DuringMean),
				Style: chart.Style{
					FillColor:   drawing.Color{R: 102, G: 179, B: 255, A: 255},
					StrokeColor: drawing.Color{R: 102, G: 179, B: 255, A: 255},
				},
			},
			{
				Value: cmp.ControlMean,
				Label: fmt.Sprintf("Control Prior Year (%.1f)", cmp.ControlMean),
				Style: chart.Style{
					FillColor:   drawing.Color{R: 255, G: 153, B: 153, A: 255},
					StrokeColor: drawing.Color{R: 255, G: 153, B: 153, A: 255},
				},
			},
		},
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create means chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render means chart: %w", err)
	}

	return filename, nil
}
