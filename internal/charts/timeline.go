package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"airimpact/internal/models"
)

// generateTimelineChart renders the full daily PM2.5 series with the days
// belonging to the selected phase's During and Control windows drawn as
// colored dots on top of the base line.
func (g *Generator) generateTimelineChart(series []models.DailyRecord, phaseName string) (string, error) {
	filename := filepath.Join(g.outputDir, "pm25_timeline.png")

	if len(series) == 0 {
		return "", fmt.Errorf("empty series, nothing to plot")
	}

	var xValues []time.Time
	var yValues []float64
	for _, rec := range series {
		xValues = append(xValues, rec.Date)
		yValues = append(yValues, rec.PM25)
	}

	mainSeries := chart.TimeSeries{
		Name: "Daily PM2.5",
		Style: chart.Style{
			StrokeColor: drawing.Color{R: 120, G: 120, B: 120, A: 255},
			StrokeWidth: 1,
		},
		XValues: xValues,
		YValues: yValues,
	}

	duringSeries := windowSeries(series, models.During(phaseName), "During Policy",
		drawing.Color{R: 51, G: 102, B: 204, A: 255})
	controlSeries := windowSeries(series, models.Control(phaseName), "Control (Prior Year)",
		drawing.Color{R: 204, G: 51, B: 51, A: 255})

	allSeries := []chart.Series{mainSeries}
	if len(duringSeries.XValues) > 0 {
		allSeries = append(allSeries, duringSeries)
	}
	if len(controlSeries.XValues) > 0 {
		allSeries = append(allSeries, controlSeries)
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Daily PM2.5 with %s windows", phaseName),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   60,
				Right:  20,
				Bottom: 50,
			},
		},
		Height: 360,
		Width:  900,
		XAxis: chart.XAxis{
			Name: "Date",
			NameStyle: chart.Style{
				FontSize: 11,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("2006-01")
				}
				if f, ok := v.(float64); ok {
					return chart.TimeFromFloat64(f).Format("2006-01")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "PM2.5 (µg/m³)",
			NameStyle: chart.Style{
				FontSize: 11,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: allSeries,
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create timeline chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render timeline chart: %w", err)
	}

	return filename, nil
}

// windowSeries collects the days carrying one policy status as a dot-only
// overlay series.
func windowSeries(series []models.DailyRecord, status models.PolicyStatus, name string, color drawing.Color) chart.TimeSeries {
	out := chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    color,
			DotWidth:    4,
		},
	}
	for _, rec := range series {
		if rec.Status == status {
			out.XValues = append(out.XValues, rec.Date)
			out.YValues = append(out.YValues, rec.PM25)
		}
	}
	return out
}
