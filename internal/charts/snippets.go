package charts

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/gonum/stat"

	"airimpact/internal/analysis"
)

var groupLabels = []string{"During Policy", "Control (Prior Year)"}

// MeansBarSnippet builds an interactive bar chart of the two group means.
func (g *Generator) MeansBarSnippet(cmp analysis.Comparison) (ChartSnippet, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "700px",
			Height: "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Impact of %s on Average %s", cmp.Phase, cmp.Pollutant),
			Subtitle: fmt.Sprintf("%+.1f%% change vs. prior-year control", cmp.PercentChange),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Average PM2.5 (µg/m³)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(groupLabels).
		AddSeries("Mean PM2.5", []opts.BarData{
			{Value: cmp.DuringMean},
			{Value: cmp.ControlMean},
		})

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return ChartSnippet{}, err
	}

	return ChartSnippet{
		ID:    "chart-means",
		Title: "Group Means",
		HTML:  buf.String(),
	}, nil
}

// DistributionSnippet builds a box plot of both groups with the individual
// daily values scattered on top (the strip overlay).
func (g *Generator) DistributionSnippet(cmp analysis.Comparison) (ChartSnippet, error) {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "700px",
			Height: "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Distribution: Policy vs. Control (%s)", cmp.Pollutant, cmp.Phase),
			Subtitle: "Daily values overlaid on quartile boxes",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Daily PM2.5 (µg/m³)",
		}),
	)

	box.SetXAxis(groupLabels).
		AddSeries("PM2.5", []opts.BoxPlotData{
			{Value: fiveNumberSummary(cmp.During)},
			{Value: fiveNumberSummary(cmp.Control)},
		})

	scatter := charts.NewScatter()
	var points []opts.ScatterData
	for _, v := range cmp.During {
		points = append(points, opts.ScatterData{Value: []interface{}{0, v}, SymbolSize: 6})
	}
	for _, v := range cmp.Control {
		points = append(points, opts.ScatterData{Value: []interface{}{1, v}, SymbolSize: 6})
	}
	scatter.AddSeries("Daily values", points)

	box.Overlap(scatter)

	var buf bytes.Buffer
	if err := box.Render(&buf); err != nil {
		return ChartSnippet{}, err
	}

	return ChartSnippet{
		ID:    "chart-distribution",
		Title: "Distribution",
		HTML:  buf.String(),
	}, nil
}

// fiveNumberSummary computes [min, q1, median, q3, max] for a box plot.
func fiveNumberSummary(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return []float64{
		sorted[0],
		stat.Quantile(0.25, stat.Empirical, sorted, nil),
		stat.Quantile(0.5, stat.Empirical, sorted, nil),
		stat.Quantile(0.75, stat.Empirical, sorted, nil),
		sorted[len(sorted)-1],
	}
}
