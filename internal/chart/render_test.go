package chart

import (
	"math"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"chartview/internal/model"
)

// recordSurface captures every draw call so tests can assert on the
// emitted primitives without rasterizing anything.
type recordSurface struct {
	w, h   float64
	clears int
	lines  []recordedLine
	rects  []recordedRect
	texts  []recordedText
}

type recordedLine struct {
	x1, y1, x2, y2 float64
	color          drawing.Color
	dashed         bool
}

type recordedRect struct {
	x, y, w, h float64
	color      drawing.Color
}

type recordedText struct {
	x, y  float64
	s     string
	color drawing.Color
}

func newRecordSurface() *recordSurface {
	return &recordSurface{w: 960, h: 540}
}

func (r *recordSurface) Size() (float64, float64) { return r.w, r.h }
func (r *recordSurface) Clear(drawing.Color)      { r.clears++ }

func (r *recordSurface) Line(x1, y1, x2, y2 float64, c drawing.Color, _ float64, dash []float64) {
	r.lines = append(r.lines, recordedLine{x1, y1, x2, y2, c, dash != nil})
}

func (r *recordSurface) FillRect(x, y, w, h float64, c drawing.Color) {
	r.rects = append(r.rects, recordedRect{x, y, w, h, c})
}

func (r *recordSurface) Text(x, y float64, s string, c drawing.Color) {
	r.texts = append(r.texts, recordedText{x, y, s, c})
}

// 7px per rune keeps label centering math deterministic.
func (r *recordSurface) TextWidth(s string) float64 { return float64(7 * len(s)) }

func (r *recordSurface) rectsOf(c drawing.Color) []recordedRect {
	var out []recordedRect
	for _, rect := range r.rects {
		if rect.color == c {
			out = append(out, rect)
		}
	}
	return out
}

func (r *recordSurface) linesOf(c drawing.Color) []recordedLine {
	var out []recordedLine
	for _, l := range r.lines {
		if l.color == c {
			out = append(out, l)
		}
	}
	return out
}

func (r *recordSurface) hasText(sub string) bool {
	for _, t := range r.texts {
		if strings.Contains(t.s, sub) {
			return true
		}
	}
	return false
}

func TestRender_EmptySeriesPlaceholder(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(model.NewSeries("TEST", model.TF1m, nil, nil))

	s := newRecordSurface()
	e.Render(s)

	if s.clears != 1 {
		t.Fatalf("expected one clear, got %d", s.clears)
	}
	if len(s.lines) != 0 || len(s.rects) != 0 {
		t.Fatalf("placeholder frame drew %d lines and %d rects", len(s.lines), len(s.rects))
	}
	if !s.hasText("no data") {
		t.Fatal("placeholder text missing")
	}
}

func TestRender_CandleBodiesAndWicks(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())

	s := newRecordSurface()
	e.Render(s)

	// One body rect per candle, colored by direction.
	up := s.rectsOf(colorUp)
	down := s.rectsOf(colorDown)
	if len(up) != 1 || len(down) != 1 {
		t.Fatalf("expected 1 up and 1 down body, got %d and %d", len(up), len(down))
	}

	// One wick per candle, vertical, spanning high to low.
	wicks := append(s.linesOf(colorUp), s.linesOf(colorDown)...)
	if len(wicks) != 2 {
		t.Fatalf("expected 2 wicks, got %d", len(wicks))
	}
	for _, w := range wicks {
		if w.x1 != w.x2 {
			t.Errorf("wick is not vertical: %+v", w)
		}
		if w.y2 <= w.y1 {
			t.Errorf("wick high..low span inverted: %+v", w)
		}
	}

	// Candle 1 spans 9..11 against candle 0's 10..11, so its body
	// must be roughly twice as tall.
	if down[0].h <= up[0].h {
		t.Errorf("expected taller down body: h=%v vs %v", down[0].h, up[0].h)
	}
}

func TestRender_GridAndLabels(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())

	s := newRecordSurface()
	e.Render(s)

	grid := s.linesOf(colorGrid)
	if len(grid) != gridLevels {
		t.Fatalf("expected %d grid lines, got %d", gridLevels, len(grid))
	}
	labels := 0
	for _, txt := range s.texts {
		if txt.color == colorLabel {
			labels++
		}
	}
	if labels != gridLevels {
		t.Fatalf("expected %d price labels, got %d", gridLevels, labels)
	}
	// Labels live in the right gutter, past the plot edge.
	for _, txt := range s.texts {
		if txt.color == colorLabel && txt.x <= 960-padRight {
			t.Errorf("price label inside the plot at x=%v", txt.x)
		}
	}
}

func TestRender_VolumeBarsScaleToVisibleMax(t *testing.T) {
	candles := []model.Candle{
		{Time: 60, Open: 10, High: 11, Low: 9, Close: 10.5},
		{Time: 120, Open: 10.5, High: 11, Low: 10, Close: 10.2},
	}
	samples := []model.VolumeSample{
		{Time: 60, Volume: 10},
		{Time: 120, Volume: 5},
	}
	e := NewEngine(960, 540)
	e.SetSeries(model.NewSeries("TEST", model.TF1m, candles, samples))

	s := newRecordSurface()
	e.Render(s)

	// Volume bars are the second fill per candle color: bodies paint the
	// price area, bars the strip below it. Split them by vertical band.
	plotH := 540.0 - padTop - padBottom
	volTop := padTop + plotH*(1-volumeFrac) + volumeGap
	var bars []recordedRect
	for _, rect := range s.rects {
		if rect.y >= volTop-1e-9 && (rect.color == colorUp || rect.color == colorDown) {
			bars = append(bars, rect)
		}
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 volume bars, got %d", len(bars))
	}
	// The visible max (10) fills the strip; the half volume is half as tall.
	tall, short := bars[0], bars[1]
	if short.h > tall.h {
		tall, short = short, tall
	}
	if math.Abs(short.h-tall.h/2) > 1e-9 {
		t.Fatalf("expected half-height second bar, got %v of %v", short.h, tall.h)
	}
}

func TestRender_ZeroVolumeSkipsBar(t *testing.T) {
	candles := []model.Candle{
		{Time: 60, Open: 10, High: 11, Low: 9, Close: 10.5},
		{Time: 120, Open: 10.5, High: 11, Low: 10, Close: 10.2},
	}
	samples := []model.VolumeSample{{Time: 60, Volume: 10}}
	e := NewEngine(960, 540)
	e.SetSeries(model.NewSeries("TEST", model.TF1m, candles, samples))

	s := newRecordSurface()
	e.Render(s)

	plotH := 540.0 - padTop - padBottom
	volTop := padTop + plotH*(1-volumeFrac) + volumeGap
	bars := 0
	for _, rect := range s.rects {
		if rect.y >= volTop-1e-9 && (rect.color == colorUp || rect.color == colorDown) {
			bars++
		}
	}
	if bars != 1 {
		t.Fatalf("expected the unmatched candle to draw no bar, got %d bars", bars)
	}
}

func TestRender_CurrentPriceLine(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())
	e.SetCurrentPrice(10)

	s := newRecordSurface()
	e.Render(s)

	lines := s.linesOf(colorPriceLine)
	if len(lines) != 1 {
		t.Fatalf("expected one current-price line, got %d", len(lines))
	}
	if !lines[0].dashed {
		t.Error("current-price line should be dashed")
	}
	if lines[0].y1 != lines[0].y2 {
		t.Error("current-price line should be horizontal")
	}
	if !s.hasText("10.00") {
		t.Error("price badge label missing")
	}
}

func TestRender_OffScaleCurrentPriceHidden(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())
	e.SetCurrentPrice(500) // far above the visible scale

	s := newRecordSurface()
	e.Render(s)

	if got := len(s.linesOf(colorPriceLine)); got != 0 {
		t.Fatalf("off-scale price drew %d lines", got)
	}
}

func TestRender_NoPriceNoLine(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())

	s := newRecordSurface()
	e.Render(s)

	if got := len(s.linesOf(colorPriceLine)); got != 0 {
		t.Fatalf("price line drawn before any price arrived: %d", got)
	}
}

func TestRender_CrosshairGuides(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())
	e.PointerMove(230, 200)

	s := newRecordSurface()
	e.Render(s)

	guides := s.linesOf(colorCrosshair)
	if len(guides) != 2 {
		t.Fatalf("expected 2 crosshair guides, got %d", len(guides))
	}
	vertical, horizontal := false, false
	for _, g := range guides {
		if !g.dashed {
			t.Errorf("crosshair guide should be dashed: %+v", g)
		}
		if g.x1 == g.x2 && g.x1 == 230 {
			vertical = true
		}
		if g.y1 == g.y2 && g.y1 == 200 {
			horizontal = true
		}
	}
	if !vertical || !horizontal {
		t.Fatalf("crosshair guides misplaced: %+v", guides)
	}
	// The hovered candle's OHLCV readout rides along.
	if !s.hasText("O 10.00") {
		t.Error("tooltip readout missing")
	}
}

func TestRender_RangeArmedSingleGuide(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())
	e.PointerDown(230, 200, true)

	s := newRecordSurface()
	e.Render(s)

	if got := len(s.linesOf(colorRangeEdge)); got != 1 {
		t.Fatalf("expected a single armed-anchor guide, got %d", got)
	}
	if got := len(s.rectsOf(colorRangeFill)); got != 0 {
		t.Fatalf("armed range must not fill a band, got %d rects", got)
	}
}

func TestRender_RangeBandAndLabel(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())
	e.PointerDown(230, 200, true)
	e.PointerDown(674, 200, true)

	s := newRecordSurface()
	e.Render(s)

	fills := s.rectsOf(colorRangeFill)
	if len(fills) != 1 {
		t.Fatalf("expected one translucent band, got %d", len(fills))
	}
	if got := len(s.linesOf(colorRangeEdge)); got != 2 {
		t.Fatalf("expected two band edges, got %d", got)
	}
	if !s.hasText("2 candles  -1.00 (-10.00%)") {
		t.Fatalf("range label wrong; texts: %+v", s.texts)
	}
}

func TestRender_RangeBandSurvivesDragFrame(t *testing.T) {
	e := NewEngine(960, 540)
	e.SetSeries(twoCandleSeries())
	e.PointerDown(230, 200, true)
	e.PointerDown(674, 200, true)
	e.PointerDown(400, 200, false) // drag in progress

	s := newRecordSurface()
	e.Render(s)

	if got := len(s.rectsOf(colorRangeFill)); got != 1 {
		t.Fatalf("expected the band during a drag, got %d fills", got)
	}
}
