package render

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"ProfitChart/internal/model"
)

// ChartOptions controls the SVG geometry and styling.
type ChartOptions struct {
	Width  int
	Height int
	Color  string
}

// DefaultChartOptions is a 900x400 chart in the default series colour.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 900, Height: 400, Color: "#82ca9d"}
}

// Margins around the plot area. The left margin includes the Y axis,
// the bottom one the rotated X labels.
const (
	marginTop    = 5.0
	marginRight  = 30.0
	marginLeft   = 20.0 + 60.0
	marginBottom = 5.0 + 80.0

	yTickCount  = 5
	xLabelWidth = 40.0
	tooltipW    = 170.0
	tooltipLine = 18.0
)

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Tick is an axis label with its anchor.
type Tick struct {
	X, Y  float64
	Label string
}

// Marker is one data point with its hover target and tooltip.
type Marker struct {
	X, Y     float64
	Finite   bool
	HitX     float64
	HitW     float64
	TipX     float64
	TipY     float64
	TipH     float64
	Tooltip  []TooltipLine
	Title    string
	DateText string
}

// Chart is the fully laid-out area chart consumed by the page template.
type Chart struct {
	Width, Height int
	Plot          Rect
	AreaPaths     []string
	LinePaths     []string
	XTicks        []Tick
	YTicks        []Tick
	Baseline      float64
	Markers       []Marker
	Color         string
	SeriesName    string
	YLabel        string
	YLabelX       float64
	YLabelY       float64
}

// BuildChart lays out points on a categorical X axis and a linear Y axis
// whose domain always contains zero. Non-finite values are left as gaps.
func BuildChart(points []model.ChartPoint, opts ChartOptions, labels Labels) Chart {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultChartOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.Color == "" {
		opts.Color = DefaultChartOptions().Color
	}

	plot := Rect{
		X: marginLeft,
		Y: marginTop,
		W: float64(opts.Width) - marginLeft - marginRight,
		H: float64(opts.Height) - marginTop - marginBottom,
	}
	c := Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Plot:       plot,
		Color:      opts.Color,
		SeriesName: labels.SeriesName,
		YLabel:     labels.YAxis,
		YLabelX:    marginLeft - 55,
		YLabelY:    plot.Y + plot.H/2,
	}

	lo, hi, step := yDomain(points)
	yOf := func(v float64) float64 {
		return plot.Y + plot.H - (v-lo)/(hi-lo)*plot.H
	}
	c.Baseline = yOf(0)

	for v := lo; v <= hi+step/2; v += step {
		c.YTicks = append(c.YTicks, Tick{X: plot.X, Y: yOf(v), Label: formatTick(v, step)})
	}

	n := len(points)
	xOf := func(i int) float64 {
		if n == 1 {
			return plot.X + plot.W/2
		}
		return plot.X + float64(i)*plot.W/float64(n-1)
	}
	band := plot.W
	if n > 1 {
		band = plot.W / float64(n-1)
	}

	every := labelEvery(n, plot.W)

	var segment []Marker
	flush := func() {
		if len(segment) > 0 {
			c.LinePaths = append(c.LinePaths, linePath(segment))
			c.AreaPaths = append(c.AreaPaths, areaPath(segment, c.Baseline))
		}
		segment = segment[:0]
	}

	for i, p := range points {
		finite := !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0)
		m := Marker{
			X:        xOf(i),
			Finite:   finite,
			HitX:     xOf(i) - band/2,
			HitW:     band,
			DateText: p.DateFormatted,
		}
		if finite {
			m.Y = yOf(p.Value)
		} else {
			m.Y = c.Baseline
		}
		m.Tooltip = FormatTooltip(Tooltip{
			Active:  true,
			Label:   p.DateFormatted,
			Payload: []TooltipEntry{{Name: labels.SeriesName, Value: p.Value, Color: opts.Color}},
		}, labels.TooltipDate)
		m.Title = joinLines(m.Tooltip)
		m.TipH = float64(len(m.Tooltip))*tooltipLine + 12
		m.TipX = clamp(m.X+10, plot.X, plot.X+plot.W-tooltipW)
		m.TipY = clamp(m.Y-m.TipH-10, plot.Y, plot.Y+plot.H-m.TipH)
		if m.HitX < plot.X {
			m.HitW -= plot.X - m.HitX
			m.HitX = plot.X
		}
		if m.HitX+m.HitW > plot.X+plot.W {
			m.HitW = plot.X + plot.W - m.HitX
		}
		c.Markers = append(c.Markers, m)

		if i%every == 0 || i == n-1 {
			c.XTicks = append(c.XTicks, Tick{X: m.X, Y: plot.Y + plot.H + 12, Label: p.DateFormatted})
		}

		if finite {
			segment = append(segment, m)
		} else {
			flush()
		}
	}
	flush()

	return c
}

// yDomain returns a rounded [lo, hi] range covering zero and every finite value.
func yDomain(points []model.ChartPoint) (lo, hi, step float64) {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0) {
			values = append(values, p.Value)
		}
	}
	lo, hi = 0, 0
	if len(values) > 0 {
		lo = math.Min(0, floats.Min(values))
		hi = math.Max(0, floats.Max(values))
	}
	if hi-lo == 0 {
		hi = lo + 1
	}
	step = niceStep((hi - lo) / float64(yTickCount-1))
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	return lo, hi, step
}

// labelEvery returns the stride between X labels that fit into width.
func labelEvery(n int, width float64) int {
	if maxLabels := int(width / xLabelWidth); maxLabels > 0 && n > maxLabels {
		return int(math.Ceil(float64(n) / float64(maxLabels)))
	}
	return 1
}

func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

func formatTick(v, step float64) string {
	if math.Abs(v) < step/1e6 {
		v = 0
	}
	if step >= 1 && step == math.Trunc(step) {
		return fmt.Sprintf("%.0f", v)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func linePath(seg []Marker) string {
	var b strings.Builder
	for i, m := range seg {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.2f,%.2f ", cmd, m.X, m.Y)
	}
	return strings.TrimSpace(b.String())
}

func areaPath(seg []Marker, baseline float64) string {
	first, last := seg[0], seg[len(seg)-1]
	return fmt.Sprintf("%s L%.2f,%.2f L%.2f,%.2f Z", linePath(seg), last.X, baseline, first.X, baseline)
}

func joinLines(lines []TooltipLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
