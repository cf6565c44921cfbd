package charts

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"kasa/internal/core"
)

// ErrNotEnoughData is returned when the range covers fewer than two
// months; a line chart needs at least two points per series.
var ErrNotEnoughData = errors.New("not enough data to render a trend")

// palette cycles across category series.
var palette = []chart.Style{
	{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
	{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
	{StrokeColor: chart.ColorRed, StrokeWidth: 2},
	{StrokeColor: chart.ColorOrange, StrokeWidth: 2},
	{StrokeColor: chart.ColorCyan, StrokeWidth: 2},
}

// EarnTrend renders the monthly income buckets as a PNG line chart,
// one series per selected category.
func EarnTrend(buckets []core.MonthBucket, categories []string) ([]byte, error) {
	if len(buckets) < 2 || len(categories) == 0 {
		return nil, ErrNotEnoughData
	}

	xValues := make([]time.Time, len(buckets))
	for i, b := range buckets {
		xValues[i] = time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC)
	}

	series := make([]chart.Series, 0, len(categories))
	for i, cat := range categories {
		yValues := make([]float64, len(buckets))
		for j, b := range buckets {
			yValues[j] = b.Sums[cat]
		}
		series = append(series, chart.TimeSeries{
			Name:    cat,
			XValues: xValues,
			YValues: yValues,
			Style:   palette[i%len(palette)],
		})
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 500,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01.2006"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v any) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return fmt.Sprintf("%.0f", f)
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render earn trend: %w", err)
	}
	return buf.Bytes(), nil
}
