package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ProfitChart/internal/model"
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no finite points to plot")

// PNG renders the profit curve as a static image. It shares the Y domain
// and X label thinning of BuildChart.
func PNG(w io.Writer, points []model.ChartPoint, opts ChartOptions, labels Labels) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultChartOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.Color == "" {
		opts.Color = DefaultChartOptions().Color
	}

	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for i, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, p.Value)
	}
	if len(xs) == 0 {
		return ErrNoChartData
	}

	color := drawing.ColorFromHex(strings.TrimPrefix(opts.Color, "#"))
	series := chart.ContinuousSeries{
		Name:    labels.SeriesName,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
			FillColor:   color.WithAlpha(96),
		},
	}

	lo, hi, step := yDomain(points)
	var yTicks []chart.Tick
	for v := lo; v <= hi+step/2; v += step {
		yTicks = append(yTicks, chart.Tick{Value: v, Label: formatTick(v, step)})
	}

	n := len(points)
	every := labelEvery(n, float64(opts.Width)-marginLeft-marginRight)
	var xTicks []chart.Tick
	for i, p := range points {
		if i%every == 0 || i == n-1 {
			xTicks = append(xTicks, chart.Tick{Value: float64(i), Label: p.DateFormatted})
		}
	}

	ch := chart.Chart{
		Title:  labels.ChartTitle,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 16, Right: int(marginRight), Bottom: 16},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(float64(n-1), 1)},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  labels.YAxis,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks: yTicks,
		},
		Series: []chart.Series{series},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}
