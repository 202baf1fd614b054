package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNotEnoughData is returned when fewer than two distinct days carry a
// weight measurement.
var ErrNotEnoughData = errors.New("not enough data to plot")

type Point struct {
	At         time.Time
	WeightKG   float64
	BodyFatPct *float64
}

type Labels struct {
	Weight  string
	BodyFat string
	Trend   string
}

// movingAverage smooths values over a trailing window.
func movingAverage(values []float64, window int) []float64 {
	result := make([]float64, len(values))
	for i := range values {
		count := 0
		sum := 0.0
		for j := max(0, i-window+1); j <= i; j++ {
			sum += values[j]
			count++
		}
		result[i] = sum / float64(count)
	}
	return result
}

func paddedRange(values []float64, pad float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return &chart.ContinuousRange{Min: math.Floor(lo - pad), Max: math.Ceil(hi + pad)}
}

// RenderProgress draws weight over time, its trailing trend, and body fat on
// a secondary axis when present. Points must be ordered oldest first.
func RenderProgress(points []Point, labels Labels) ([]byte, error) {
	if len(points) < 2 || !points[0].At.Before(points[len(points)-1].At) {
		return nil, ErrNotEnoughData
	}

	xValues := make([]time.Time, len(points))
	weights := make([]float64, len(points))
	var fatX []time.Time
	var fatValues []float64
	for i, p := range points {
		xValues[i] = p.At
		weights[i] = p.WeightKG
		if p.BodyFatPct != nil {
			fatX = append(fatX, p.At)
			fatValues = append(fatValues, *p.BodyFatPct)
		}
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    labels.Weight,
			XValues: xValues,
			YValues: weights,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 3,
				DotWidth:    4,
				DotColor:    chart.ColorBlue,
			},
		},
		chart.TimeSeries{
			Name:    labels.Trend,
			XValues: xValues,
			YValues: movingAverage(weights, 3),
			Style: chart.Style{
				StrokeColor:     chart.ColorBlue.WithAlpha(100),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02/01"),
			Style: chart.Style{
				FontSize:  11,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			Range: paddedRange(weights, 1),
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f kg", v.(float64))
			},
			Style: chart.Style{
				FontSize:  11,
				FontColor: chart.ColorBlack,
			},
		},
	}

	if len(fatValues) >= 2 {
		graph.YAxisSecondary = chart.YAxis{
			Range: paddedRange(fatValues, 1),
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f%%", v.(float64))
			},
			Style: chart.Style{
				FontSize:  11,
				FontColor: chart.ColorOrange,
			},
		}
		series = append(series, chart.TimeSeries{
			Name:    labels.BodyFat,
			XValues: fatX,
			YValues: fatValues,
			YAxis:   chart.YAxisSecondary,
			Style: chart.Style{
				StrokeColor: chart.ColorOrange,
				StrokeWidth: 2,
			},
		})
	}

	graph.Series = series
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  11,
			FontColor: chart.ColorBlack,
		}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render progress chart: %w", err)
	}
	return buffer.Bytes(), nil
}
