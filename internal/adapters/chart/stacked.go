package chart

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	stackedLegendHeight = 20
	stackedMinRow       = 14
)

// StackedBar draws one horizontal row per stack with segments laid end to end,
// each segment length proportional to its count. Stacks whose segments are all
// zero are left out. The canvas grows taller when rows would be thinner than
// stackedMinRow, so every stack stays inside the drawing.
func (r *Renderer) StackedBar(w io.Writer, title string, stacks []Stack) error {
	var (
		rows     []Stack
		legend   []string
		colorOf  = map[string]int{}
		maxTotal float64
	)
	for _, s := range stacks {
		total := 0.0
		for _, seg := range s.Segments {
			if seg.Value > 0 {
				total += seg.Value
			}
			if _, ok := colorOf[seg.Label]; !ok {
				colorOf[seg.Label] = len(legend)
				legend = append(legend, seg.Label)
			}
		}
		if total <= 0 {
			continue
		}
		rows = append(rows, s)
		maxTotal = max(maxTotal, total)
	}
	if len(rows) == 0 {
		return ErrNoData
	}

	top := hbarTitleHeight + stackedLegendHeight
	height := r.height
	rowHeight := (height - top - hbarPadding) / len(rows)
	if rowHeight < stackedMinRow {
		rowHeight = stackedMinRow
		height = top + len(rows)*rowHeight + hbarPadding
	}

	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	rend, err := gochart.SVG(r.width, height)
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
	plotWidth := r.width - plotLeft - 90

	x := plotLeft
	for i, name := range legend {
		gochart.Draw.Box(rend, gochart.Box{
			Top: hbarTitleHeight, Left: x, Right: x + 10, Bottom: hbarTitleHeight + 10,
		}, gochart.Style{FillColor: color(i), StrokeColor: color(i), StrokeWidth: 1})
		gochart.Draw.Text(rend, html.EscapeString(name), x+14, hbarTitleHeight+9, text(9))
		x += 24 + 7*len([]rune(name))
	}

	fontSize := min(10.0, float64(rowHeight)*0.6)
	for i, s := range rows {
		rowTop := top + i*rowHeight
		mid := rowTop + rowHeight/2 + int(fontSize/2)

		gochart.Draw.Text(rend, html.EscapeString(truncate(s.Label, 40)), hbarPadding, mid, text(fontSize))

		left := plotLeft
		counts := make([]string, 0, len(s.Segments))
		for _, seg := range s.Segments {
			if seg.Value <= 0 {
				counts = append(counts, "0")
				continue
			}
			counts = append(counts, strconv.FormatFloat(seg.Value, 'f', -1, 64))
			length := int(seg.Value / maxTotal * float64(plotWidth))
			if length <= 0 {
				continue
			}
			c := color(colorOf[seg.Label])
			gochart.Draw.Box(rend, gochart.Box{
				Top:    rowTop + 2,
				Left:   left,
				Right:  left + length,
				Bottom: rowTop + rowHeight - 2,
			}, gochart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1})
			left += length
		}
		gochart.Draw.Text(rend, strings.Join(counts, " / "), left+4, mid, text(fontSize))
	}

	return render(w, rend.Save)
}
