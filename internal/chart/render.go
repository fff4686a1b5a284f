package chart

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"chartview/internal/model"
)

// Number of horizontal grid levels across the price scale.
const gridLevels = 5

var dashPattern = []float64{4, 4}

// frame is everything one repaint consumes. It is assembled by the
// engine and never outlives the render call.
type frame struct {
	series *model.Series
	from   int
	to     int
	m      *Mapper

	price    float64
	hasPrice bool

	cross   crosshairState
	tooltip tooltipState
	mode    interactionMode

	fmtPrice PriceFormatter
}

// renderPlaceholder paints the neutral "no data" frame. No coordinate
// math happens on this path.
func renderPlaceholder(s Surface) {
	s.Clear(colorBackground)
	w, h := s.Size()
	msg := "no data"
	s.Text(w/2-s.TextWidth(msg)/2, h/2, msg, colorPlaceholder)
}

// render repaints one full frame in fixed order; later layers occlude
// earlier ones where they overlap.
func render(s Surface, f frame) {
	s.Clear(colorBackground)
	drawGrid(s, f)
	drawCandles(s, f)
	drawCurrentPrice(s, f)
	drawVolume(s, f)
	drawCrosshair(s, f)
	drawRange(s, f)
	drawTooltipReadout(s, f)
}

func drawGrid(s Surface, f frame) {
	x0, _, x1, _ := f.m.PlotRect()
	lo, hi := f.m.PriceBounds()
	for i := 0; i < gridLevels; i++ {
		p := lo + (hi-lo)*float64(i)/float64(gridLevels-1)
		y := f.m.YForPrice(p)
		s.Line(x0, y, x1, y, colorGrid, 1, nil)
		s.Text(x1+6, y+4, f.fmtPrice(p), colorLabel)
	}
}

func drawCandles(s Surface, f frame) {
	slice := f.series.Slice(f.from, f.to)
	bodyW := f.m.BodyWidth()
	for col, c := range slice {
		x := f.m.XForCol(col)
		color := colorDown
		if c.Bullish() {
			color = colorUp
		}

		// Wick spans high to low.
		s.Line(x, f.m.YForPrice(c.High), x, f.m.YForPrice(c.Low), color, 1, nil)

		// Body spans open to close; a doji still gets a 1px sliver.
		top := f.m.YForPrice(maxf(c.Open, c.Close))
		bot := f.m.YForPrice(minf(c.Open, c.Close))
		h := bot - top
		if h < 1 {
			h = 1
		}
		s.FillRect(x-bodyW/2, top, bodyW, h, color)
	}
}

func drawCurrentPrice(s Surface, f frame) {
	if !f.hasPrice || !f.m.PriceVisible(f.price) {
		return
	}
	x0, _, x1, _ := f.m.PlotRect()
	y := f.m.YForPrice(f.price)
	s.Line(x0, y, x1, y, colorPriceLine, 1, dashPattern)
	drawPriceBadge(s, f, x1, y, f.price, colorPriceLine)
}

// drawPriceBadge fills a label chip in the right gutter at height y.
func drawPriceBadge(s Surface, f frame, x, y, p float64, c drawing.Color) {
	label := f.fmtPrice(p)
	tw := s.TextWidth(label)
	s.FillRect(x+2, y-8, tw+8, 16, c)
	s.Text(x+6, y+4, label, colorBackground)
}

func drawVolume(s Surface, f frame) {
	maxV := f.series.MaxVolume(f.from, f.to)
	bodyW := f.m.BodyWidth()
	for col := 0; col < f.to-f.from; col++ {
		v := f.series.VolumeAt(f.from + col)
		if v <= 0 {
			continue
		}
		c := f.series.At(f.from + col)
		color := colorDown
		if c.Bullish() {
			color = colorUp
		}
		x := f.m.XForCol(col)
		top, h := f.m.VolumeBar(v, maxV)
		s.FillRect(x-bodyW/2, top, bodyW, h, color)
	}
}

func drawCrosshair(s Surface, f frame) {
	if !f.cross.active {
		return
	}
	x0, y0, x1, y1 := f.m.PlotRect()
	s.Line(f.cross.x, y0, f.cross.x, y1, colorCrosshair, 1, dashPattern)
	s.Line(x0, f.cross.y, x1, f.cross.y, colorCrosshair, 1, dashPattern)
	drawPriceBadge(s, f, x1, f.cross.y, f.m.PriceAt(f.cross.y), colorCrosshair)
}

func drawRange(s Surface, f frame) {
	switch mode := f.mode.(type) {
	case rangeArmed:
		// First anchor placed: a single dashed guide until confirmed.
		if x, ok := clipColumnX(f, mode.anchor); ok {
			_, y0, _, y1 := f.m.PlotRect()
			s.Line(x, y0, x, y1, colorRangeEdge, 1, dashPattern)
		}
	case rangeSet:
		drawRangeBand(s, f, mode.anchor, mode.target)
	case dragging:
		if r, ok := mode.resume.(rangeSet); ok {
			drawRangeBand(s, f, r.anchor, r.target)
		}
	case idle:
	}
}

func drawRangeBand(s Surface, f frame, a, b int) {
	sum := summarizeRange(f.series, a, b)
	x0, y0, x1, y1 := f.m.PlotRect()

	xa := f.m.XForIndex(sum.From)
	xb := f.m.XForIndex(sum.To)
	if xb < x0 || xa > x1 {
		return // fully panned out of view
	}
	xa = clampf(xa, x0, x1)
	xb = clampf(xb, x0, x1)

	s.FillRect(xa, y0, xb-xa, y1-y0, colorRangeFill)
	s.Line(xa, y0, xa, y1, colorRangeEdge, 1, dashPattern)
	s.Line(xb, y0, xb, y1, colorRangeEdge, 1, dashPattern)

	label := fmt.Sprintf("%d candles  %+.2f (%+.2f%%)", sum.Candles, sum.PriceDelta, sum.Percent)
	s.Text((xa+xb)/2-s.TextWidth(label)/2, y0+14, label, colorRangeEdge)
}

// drawTooltipReadout writes the hovered candle's OHLCV line top-left.
func drawTooltipReadout(s Surface, f frame) {
	if !f.tooltip.active {
		return
	}
	c := f.series.At(f.tooltip.index)
	line := fmt.Sprintf("O %s  H %s  L %s  C %s  V %.0f",
		f.fmtPrice(c.Open), f.fmtPrice(c.High), f.fmtPrice(c.Low), f.fmtPrice(c.Close),
		f.tooltip.volume)
	x0, y0, _, _ := f.m.PlotRect()
	s.Text(x0+4, y0+12, line, colorLabel)
}

// clipColumnX returns the pixel-x of an absolute index if it lies
// within the plot, clamping to the plot edge when slightly outside.
func clipColumnX(f frame, i int) (float64, bool) {
	x0, _, x1, _ := f.m.PlotRect()
	x := f.m.XForIndex(i)
	if x < x0-f.m.Gap() || x > x1+f.m.Gap() {
		return 0, false
	}
	return clampf(x, x0, x1), true
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
