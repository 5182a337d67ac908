package chart

import (
	"fmt"
	"html"
	"io"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	hbarTitleHeight = 40
	hbarPadding     = 12
	hbarLabelRatio  = 0.34
)

// HorizontalBar draws one row per bar in the given order, bar length
// proportional to value. It is drawn from go-chart primitives because
// go-chart's bar charts are vertical or normalized to full length.
func (r *Renderer) HorizontalBar(w io.Writer, title string, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	maxV := 0.0
	for _, b := range bars {
		maxV = max(maxV, b.Value)
	}
	if maxV <= 0 {
		maxV = 1
	}

	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	rend, err := gochart.SVG(r.width, r.height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	rend.SetFont(font)

	text := func(size float64) gochart.Style {
		return gochart.Style{Font: font, FontSize: size, FontColor: drawing.ColorFromHex("333333")}
	}

	gochart.Draw.Text(rend, html.EscapeString(title), hbarPadding, hbarTitleHeight/2+6, text(14))

	labelWidth := int(float64(r.width) * hbarLabelRatio)
	plotLeft := hbarPadding + labelWidth
	plotWidth := r.width - plotLeft - 60
	rowHeight := (r.height - hbarTitleHeight - hbarPadding) / len(bars)
	rowHeight = max(rowHeight, 4)
	fontSize := min(10.0, float64(rowHeight)*0.6)

	for i, b := range bars {
		top := hbarTitleHeight + i*rowHeight
		mid := top + rowHeight/2 + int(fontSize/2)

		gochart.Draw.Text(rend, html.EscapeString(truncate(b.Label, 40)), hbarPadding, mid, text(fontSize))

		length := int(b.Value / maxV * float64(plotWidth))
		if length > 0 {
			gochart.Draw.Box(rend, gochart.Box{
				Top:    top + 2,
				Left:   plotLeft,
				Right:  plotLeft + length,
				Bottom: top + rowHeight - 2,
			}, gochart.Style{FillColor: color(0), StrokeColor: color(0), StrokeWidth: 1})
		}
		gochart.Draw.Text(rend, strconv.FormatFloat(b.Value, 'f', -1, 64), plotLeft+length+4, mid, text(fontSize))
	}

	return render(w, rend.Save)
}
