package chart

import (
	"math"

	"chartview/internal/model"
)

// Fixed surface layout. The right gutter holds price labels, the strip
// below the price area holds volume bars.
const (
	padLeft   = 8.0
	padRight  = 64.0
	padTop    = 8.0
	padBottom = 8.0

	volumeFrac = 0.18 // share of the plot height given to volume bars
	volumeGap  = 4.0  // separation between price area and volume strip

	minBodyWidth = 2.0
	bodyFrac     = 0.7 // candle body share of its column
)

// Mapper converts between (candle index, price) and surface pixels for
// one visible slice and one surface size. It is rebuilt per frame; all
// fields are derived, none are mutated after construction.
type Mapper struct {
	w, h  float64
	from  int // absolute index of the first visible candle
	count int // visible candle count

	gap   float64 // column width per candle
	bodyW float64

	paddedMin float64 // price scale lower bound
	paddedMax float64 // price scale upper bound

	priceTop, priceH float64
	volTop, volH     float64
}

// NewMapper builds a mapper for a surface of w×h pixels showing the
// given visible slice, whose first candle sits at absolute index from.
// The slice must be non-empty; callers short-circuit rendering before
// coordinate math when there is no data.
func NewMapper(w, h float64, slice []model.Candle, from int) *Mapper {
	m := &Mapper{w: w, h: h, from: from, count: len(slice)}

	plotW := w - padLeft - padRight
	m.gap = plotW / float64(m.count)
	m.bodyW = m.gap * bodyFrac
	if m.bodyW < minBodyWidth {
		m.bodyW = minBodyWidth
	}

	plotH := h - padTop - padBottom
	m.priceTop = padTop
	m.priceH = plotH * (1 - volumeFrac)
	m.volTop = padTop + m.priceH + volumeGap
	m.volH = plotH - m.priceH - volumeGap

	lo, hi := slice[0].Low, slice[0].High
	for _, c := range slice[1:] {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		// Degenerate range: every visible price identical. Pad relative
		// to the price itself so the vertical scale stays finite.
		pad = math.Abs(lo) * 0.01
		if pad == 0 {
			pad = 1
		}
	}
	m.paddedMin = lo - pad
	m.paddedMax = hi + pad

	return m
}

// Gap returns the column width per visible candle, in pixels.
func (m *Mapper) Gap() float64 { return m.gap }

// BodyWidth returns the candle body width in pixels.
func (m *Mapper) BodyWidth() float64 { return m.bodyW }

// PriceBounds returns the padded price scale [min, max].
func (m *Mapper) PriceBounds() (min, max float64) {
	return m.paddedMin, m.paddedMax
}

// XForCol returns the pixel-x of the column center for a slice-relative
// candle index.
func (m *Mapper) XForCol(col int) float64 {
	return padLeft + float64(col)*m.gap + m.gap/2
}

// XForIndex returns the pixel-x of the column center for an absolute
// series index.
func (m *Mapper) XForIndex(i int) float64 {
	return m.XForCol(i - m.from)
}

// YForPrice maps a price onto the (inverted) vertical pixel axis.
func (m *Mapper) YForPrice(p float64) float64 {
	return m.priceTop + (m.paddedMax-p)/(m.paddedMax-m.paddedMin)*m.priceH
}

// PriceAt is the algebraic inverse of YForPrice.
func (m *Mapper) PriceAt(y float64) float64 {
	return m.paddedMax - (y-m.priceTop)/m.priceH*(m.paddedMax-m.paddedMin)
}

// ColAt resolves a pixel-x to a slice-relative column index. ok is
// false when x falls outside the plottable column region.
func (m *Mapper) ColAt(x float64) (col int, ok bool) {
	col = int(math.Floor((x - padLeft) / m.gap))
	if col < 0 || col >= m.count {
		return 0, false
	}
	return col, true
}

// IndexAt resolves a pixel-x to an absolute series index. ok is false
// outside the plottable column region.
func (m *Mapper) IndexAt(x float64) (int, bool) {
	col, ok := m.ColAt(x)
	if !ok {
		return 0, false
	}
	return m.from + col, true
}

// PriceVisible reports whether price p falls inside the padded scale.
func (m *Mapper) PriceVisible(p float64) bool {
	return p >= m.paddedMin && p <= m.paddedMax
}

// VolumeBar returns the top-y and height of a volume bar for volume v
// against the visible maximum maxV. Height is proportional to v/maxV.
func (m *Mapper) VolumeBar(v, maxV float64) (top, height float64) {
	if maxV < 1 {
		maxV = 1
	}
	height = v / maxV * m.volH
	return m.volTop + (m.volH - height), height
}

// PlotRect returns the price-area bounds (left, top, right, bottom).
func (m *Mapper) PlotRect() (x0, y0, x1, y1 float64) {
	return padLeft, m.priceTop, m.w - padRight, m.priceTop + m.priceH
}

// InPlot reports whether the pixel position is inside the full plot
// area (price area plus volume strip); the crosshair is cleared when
// the pointer is outside it.
func (m *Mapper) InPlot(x, y float64) bool {
	return x >= padLeft && x <= m.w-padRight && y >= m.priceTop && y <= m.volTop+m.volH
}
