package chart

import (
	"math"
	"strconv"

	"chartview/internal/model"
)

// PriceFormatter converts a price into its label text. The engine is
// parameterized on this so hosts can match the instrument's tick size.
type PriceFormatter func(float64) string

// DefaultPriceFormatter renders two decimal places.
func DefaultPriceFormatter() PriceFormatter {
	return func(p float64) string {
		return strconv.FormatFloat(p, 'f', 2, 64)
	}
}

// Engine owns the viewport, interaction, crosshair and tooltip state
// for one mounted chart instance. The hosting view owns the Series and
// the Surface; the engine never mutates the series and never performs
// I/O. One goroutine owns one Engine; all methods assume the host
// delivers at most one event at a time.
type Engine struct {
	series *model.Series
	vp     Viewport

	mode    interactionMode
	cross   crosshairState
	tooltip tooltipState

	price    float64
	hasPrice bool

	w, h     float64
	fmtPrice PriceFormatter
}

// NewEngine creates an engine for a surface of w×h logical pixels.
func NewEngine(w, h float64) *Engine {
	return &Engine{
		mode:     idle{},
		w:        w,
		h:        h,
		fmtPrice: DefaultPriceFormatter(),
	}
}

// SetPriceFormatter replaces the price label formatter.
func (e *Engine) SetPriceFormatter(f PriceFormatter) {
	if f != nil {
		e.fmtPrice = f
	}
}

// SetSeries installs a new candle series (symbol or timeframe change).
// All in-flight interaction state is discarded and the viewport
// re-initializes to its auto-fit window.
func (e *Engine) SetSeries(s *model.Series) {
	e.series = s
	e.vp.Init(s.Len())
	e.mode = idle{}
	e.cross = crosshairState{}
	e.tooltip = tooltipState{}
}

// SetCurrentPrice updates the current-price scalar. It refreshes
// independently of the candle series.
func (e *Engine) SetCurrentPrice(p float64) {
	e.price = p
	e.hasPrice = true
}

// Resize records a new logical surface size. The viewport is expressed
// in candle counts, so resizing never desynchronizes it.
func (e *Engine) Resize(w, h float64) {
	if w > 0 {
		e.w = w
	}
	if h > 0 {
		e.h = h
	}
}

// Size returns the logical surface size the engine maps against.
func (e *Engine) Size() (w, h float64) { return e.w, e.h }

// Viewport exposes the viewport for inspection (zoom buttons, tests).
func (e *Engine) Viewport() *Viewport { return &e.vp }

// mapper builds the coordinate mapper for the current viewport, or nil
// when there is no data to map.
func (e *Engine) mapper() *Mapper {
	if e.series.Len() == 0 {
		return nil
	}
	from, to := e.vp.VisibleRange()
	return NewMapper(e.w, e.h, e.series.Slice(from, to), from)
}

// PointerDown handles a pointer press at (x, y). measure is true for a
// modifier-qualified click, which drives the two-click range protocol
// instead of starting a pan drag.
func (e *Engine) PointerDown(x, y float64, measure bool) {
	m := e.mapper()
	if m == nil {
		return
	}

	if measure {
		i, ok := m.IndexAt(x)
		if !ok {
			return
		}
		switch mode := e.mode.(type) {
		case idle, rangeSet:
			e.mode = rangeArmed{anchor: i}
		case rangeArmed:
			e.mode = rangeSet{anchor: mode.anchor, target: i}
		case dragging:
			// Button already held; qualified click cannot arrive.
		}
		return
	}

	switch mode := e.mode.(type) {
	case idle:
		e.mode = dragging{startX: x, startPan: e.vp.Pan(), resume: idle{}}
	case rangeSet:
		// Pan drags do not discard a confirmed measurement.
		e.mode = dragging{startX: x, startPan: e.vp.Pan(), resume: mode}
	case rangeArmed:
		// Plain click while armed abandons the anchor and starts a drag.
		e.mode = dragging{startX: x, startPan: e.vp.Pan(), resume: idle{}}
	case dragging:
	}
}

// PointerMove handles pointer motion: it always refreshes crosshair and
// tooltip state, and while dragging repositions the pan offset relative
// to the drag start.
func (e *Engine) PointerMove(x, y float64) {
	m := e.mapper()
	if m == nil {
		return
	}

	if m.InPlot(x, y) {
		e.cross = crosshairState{active: true, x: x, y: y}
	} else {
		e.cross = crosshairState{}
	}

	if i, ok := m.IndexAt(x); ok && m.InPlot(x, y) {
		e.tooltip = tooltipState{active: true, index: i, volume: e.series.VolumeAt(i)}
	} else {
		e.tooltip = tooltipState{}
	}

	if d, ok := e.mode.(dragging); ok {
		shift := int(math.Round(-(x - d.startX) / m.Gap()))
		e.vp.SetPan(d.startPan + shift)
	}
}

// PointerUp ends a drag, restoring the mode the drag preserved.
func (e *Engine) PointerUp() {
	if d, ok := e.mode.(dragging); ok {
		e.mode = d.resume
	}
}

// PointerLeave clears crosshair and tooltip, implicitly cancels a drag,
// and discards an unconfirmed range anchor.
func (e *Engine) PointerLeave() {
	e.cross = crosshairState{}
	e.tooltip = tooltipState{}
	switch mode := e.mode.(type) {
	case dragging:
		e.mode = mode.resume
	case rangeArmed:
		e.mode = idle{}
	case idle, rangeSet:
	}
}

// Wheel zooms around the wheel step factor; negative deltas zoom in.
// Wheel events never touch drag or range state.
func (e *Engine) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		e.vp.ZoomIn(WheelZoomFactor)
	case deltaY > 0:
		e.vp.ZoomOut(WheelZoomFactor)
	}
}

// ZoomIn applies one explicit zoom-in step (toolbar button).
func (e *Engine) ZoomIn() { e.vp.ZoomIn(ZoomStepFactor) }

// ZoomOut applies one explicit zoom-out step.
func (e *Engine) ZoomOut() { e.vp.ZoomOut(ZoomStepFactor) }

// ClearRange resets any armed or set range measurement.
func (e *Engine) ClearRange() {
	switch mode := e.mode.(type) {
	case rangeArmed, rangeSet:
		e.mode = idle{}
	case dragging:
		mode.resume = idle{}
		e.mode = mode
	case idle:
	}
}

// Range returns the measured-range summary when both anchors are set.
func (e *Engine) Range() (RangeSummary, bool) {
	a, b, ok := e.activeRange()
	if !ok {
		return RangeSummary{}, false
	}
	return summarizeRange(e.series, a, b), true
}

// activeRange returns the two anchors of a confirmed measurement,
// including one preserved across an in-progress pan drag.
func (e *Engine) activeRange() (a, b int, ok bool) {
	switch mode := e.mode.(type) {
	case rangeSet:
		return mode.anchor, mode.target, true
	case dragging:
		if r, is := mode.resume.(rangeSet); is {
			return r.anchor, r.target, true
		}
	}
	return 0, 0, false
}

// Tooltip returns the candle and matched volume under the crosshair.
func (e *Engine) Tooltip() (c model.Candle, volume float64, ok bool) {
	if !e.tooltip.active {
		return model.Candle{}, 0, false
	}
	return e.series.At(e.tooltip.index), e.tooltip.volume, true
}

// Apply dispatches one host input event to the matching handler.
// Hosts that deliver events over a queue funnel through this.
func (e *Engine) Apply(ev model.InputEvent) {
	switch ev.Kind {
	case model.EvPointerDown:
		e.PointerDown(ev.X, ev.Y, ev.Measure)
	case model.EvPointerMove:
		e.PointerMove(ev.X, ev.Y)
	case model.EvPointerUp:
		e.PointerUp()
	case model.EvPointerLeave:
		e.PointerLeave()
	case model.EvWheel:
		e.Wheel(ev.DeltaY)
	case model.EvZoomIn:
		e.ZoomIn()
	case model.EvZoomOut:
		e.ZoomOut()
	case model.EvResize:
		e.Resize(ev.W, ev.H)
	case model.EvClearRange:
		e.ClearRange()
	case model.EvPrice:
		e.SetCurrentPrice(ev.Price)
	}
}

// Render repaints the full frame onto s. The pipeline never diffs
// frames: drawing cost is linear in the visible candle count, which the
// zoom floor keeps small.
func (e *Engine) Render(s Surface) {
	m := e.mapper()
	if m == nil {
		renderPlaceholder(s)
		return
	}
	from, to := e.vp.VisibleRange()
	render(s, frame{
		series:   e.series,
		from:     from,
		to:       to,
		m:        m,
		price:    e.price,
		hasPrice: e.hasPrice,
		cross:    e.cross,
		tooltip:  e.tooltip,
		mode:     e.mode,
		fmtPrice: e.fmtPrice,
	})
}
