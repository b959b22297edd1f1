package portfolio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/papertrade/internal/models"
)

// RenderPerformanceChart renders a PNG line chart of portfolio value over time.
// The range controls the x-axis label format. Returns raw PNG bytes.
func RenderPerformanceChart(points []models.HistoricalPoint, r models.PerformanceRange) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.Time
		yValues[i] = p.Value
	}

	// green when the window closed up, red when down
	color := "16a34a"
	if yValues[len(yValues)-1] < yValues[0] {
		color = "dc2626"
	}

	layout := "Jan 02"
	switch r {
	case models.Range1D:
		layout = "15:04"
	case models.Range1Y:
		layout = "Jan 06"
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Portfolio Value (%s)", r),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format(layout)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Portfolio Value",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(color),
					StrokeWidth: 2.5,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
