package charts

import (
	"encoding/json"
	"fmt"

	"airimpact/internal/models"
)

// CalendarSnippets builds two day-by-day calendar heatmaps for the selected
// phase: the policy year's During days and the prior year's Control days.
// The calendar coordinate is driven through a raw ECharts option map.
func (g *Generator) CalendarSnippets(series []models.DailyRecord, phase models.PolicyPhase) []ChartSnippet {
	var snippets []ChartSnippet

	if s, err := g.calendarHeatmapSnippet(
		"chart-calendar-control",
		fmt.Sprintf("Control Year: Daily PM2.5 (%d)", phase.ControlYear()),
		phase.ControlYear(),
		series, models.Control(phase.Name),
	); err == nil {
		snippets = append(snippets, s)
	}

	if s, err := g.calendarHeatmapSnippet(
		"chart-calendar-during",
		fmt.Sprintf("Policy Year: Daily PM2.5 (%d)", phase.Start.Year()),
		phase.Start.Year(),
		series, models.During(phase.Name),
	); err == nil {
		snippets = append(snippets, s)
	}

	return snippets
}

// calendarHeatmapSnippet renders one year calendar with the days carrying
// the given status colored by PM2.5 value.
func (g *Generator) calendarHeatmapSnippet(id, title string, year int, series []models.DailyRecord, status models.PolicyStatus) (ChartSnippet, error) {
	var data [][]interface{}
	min, max := 0.0, 0.0
	for _, rec := range series {
		if rec.Status != status || rec.Date.Year() != year {
			continue
		}
		if len(data) == 0 || rec.PM25 < min {
			min = rec.PM25
		}
		if rec.PM25 > max {
			max = rec.PM25
		}
		data = append(data, []interface{}{rec.Date.Format("2006-01-02"), rec.PM25})
	}
	if len(data) == 0 {
		return ChartSnippet{}, fmt.Errorf("no %s days in %d", status.Label(), year)
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{"position": "top"},
		"visualMap": map[string]interface{}{
			"min":        min,
			"max":        max,
			"calculable": true,
			"orient":     "horizontal",
			"left":       "center",
			"top":        "top",
			"inRange": map[string]interface{}{
				"color": []string{"#ffffcc", "#fd8d3c", "#bd0026"},
			},
		},
		"calendar": map[string]interface{}{
			"range":    year,
			"cellSize": []interface{}{"auto", 14},
			"dayLabel": map[string]interface{}{"firstDay": 1},
		},
		"series": []interface{}{map[string]interface{}{
			"type":             "heatmap",
			"coordinateSystem": "calendar",
			"data":             data,
		}},
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:220px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, title, div, script)

	return ChartSnippet{ID: id, Title: title, HTML: completeHTML}, nil
}
