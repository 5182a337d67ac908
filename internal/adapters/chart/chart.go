// Package chart renders dashboard views as SVG documents with go-chart.
package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default chart size in pixels.
const (
	DefaultWidth  = 960
	DefaultHeight = 480
)

// Point is one (x, y) sample of a line chart; Label annotates the x tick.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
}

// Stack is one bar split into labelled segments.
type Stack struct {
	Label    string
	Segments []Bar
}

var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
}

func color(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Renderer draws charts at a fixed size.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a Renderer with default size.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the configured width and height.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// String renders into memory and returns the SVG markup.
func String(draw func(io.Writer) error) (string, error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Line draws a single series with one tick per point.
func (r *Renderer) Line(w io.Writer, title, xName, yName string, points []Point) error {
	if len(points) == 0 {
		return ErrNoData
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ticks := make([]gochart.Tick, len(points))
	maxY := 0.0
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
		label := p.Label
		if label == "" {
			label = strconv.FormatFloat(p.X, 'f', -1, 64)
		}
		ticks[i] = gochart.Tick{Value: p.X, Label: html.EscapeString(label)}
		maxY = math.Max(maxY, p.Y)
	}

	// a single sample has no x extent; pad it so the range is never empty
	xRange := &gochart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]}
	if xRange.Min == xRange.Max {
		xRange.Min--
		xRange.Max++
	}

	ch := gochart.Chart{
		Title:      html.EscapeString(title),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: html.EscapeString(xName), Range: xRange, Ticks: ticks},
		YAxis:      gochart.YAxis{Name: html.EscapeString(yName), Range: &gochart.ContinuousRange{Min: 0, Max: ceiling(maxY)}},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    yName,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: color(0),
					StrokeWidth: 2,
					DotColor:    color(0),
					DotWidth:    4,
				},
			},
		},
	}
	return render(w, func(out io.Writer) error { return ch.Render(gochart.SVG, out) })
}

// Bar draws vertical bars with rotated labels.
func (r *Renderer) Bar(w io.Writer, title string, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	values := make([]gochart.Value, len(bars))
	maxV := 0.0
	for i, b := range bars {
		values[i] = gochart.Value{
			Label: html.EscapeString(truncate(b.Label, 22)),
			Value: b.Value,
			Style: gochart.Style{FillColor: color(0), StrokeColor: color(0)},
		}
		maxV = math.Max(maxV, b.Value)
	}

	barWidth := (r.width - 200) / (len(bars) * 2)
	barWidth = max(6, min(barWidth, 60))

	bc := gochart.BarChart{
		Title:      html.EscapeString(title),
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 110}},
		XAxis:      gochart.Style{TextRotationDegrees: 45},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: ceiling(maxV)},
		},
		Bars: values,
	}
	return render(w, func(out io.Writer) error { return bc.Render(gochart.SVG, out) })
}

// Pie draws each bar as a slice labelled with its share.
func (r *Renderer) Pie(w io.Writer, title string, slices []Bar) error {
	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	if len(slices) == 0 || total <= 0 {
		return ErrNoData
	}
	values := make([]gochart.Value, 0, len(slices))
	for i, s := range slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %.1f%%", html.EscapeString(s.Label), s.Value/total*100),
			Value: s.Value,
			Style: gochart.Style{FillColor: color(i), StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}

	pc := gochart.PieChart{
		Title:  html.EscapeString(title),
		Width:  r.height,
		Height: r.height,
		Values: values,
	}
	return render(w, func(out io.Writer) error { return pc.Render(gochart.SVG, out) })
}

func render(w io.Writer, draw func(io.Writer) error) error {
	if err := draw(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// ceiling leaves headroom above the largest value and never returns zero,
// since go-chart rejects an empty range.
func ceiling(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return math.Ceil(v * 1.1)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
