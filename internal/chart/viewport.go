// Package chart implements the interactive OHLC price-chart engine:
// a logical viewport (zoom + pan) over a candle series, the coordinate
// mapping between (index, price) and surface pixels, a pointer-driven
// interaction state machine, and a stateless render pipeline drawing
// onto an immediate-mode Surface.
//
// The engine is single-threaded by contract: one goroutine owns one
// Engine for the lifetime of a mounted chart, all mutation happens
// inside input-event handlers, and there is no I/O anywhere in this
// package.
package chart

import "math"

// Viewport bounds for the visible candle window.
const (
	defaultVisible = 10 // auto-fit target on series load
	minVisible     = 5  // floor for the visible window
	minZoomSlice   = 3  // zoom ceiling keeps at least 3 candles visible

	// WheelZoomFactor is applied per wheel step, ZoomStepFactor per
	// explicit zoom-in/out action.
	WheelZoomFactor = 1.3
	ZoomStepFactor  = 1.5
)

// Viewport owns the zoom level and pan offset over a candle series.
// Zoom is expressed as the ratio of total to visible candle count
// (zoom = 1 shows everything), so the logical window is independent of
// the rendering-surface size and resizing never desynchronizes it.
// Both fields are re-clamped on every read.
type Viewport struct {
	total int
	zoom  float64
	pan   int // index of the left-most visible candle
}

// Init re-initializes the viewport for a series of total candles,
// auto-fitting to the most recent defaultVisible candles when the
// series is longer than that. Called once per series identity change,
// never mid-session.
func (v *Viewport) Init(total int) {
	v.total = total
	if total > defaultVisible {
		v.zoom = float64(total) / float64(defaultVisible)
		v.pan = total - v.VisibleCount()
	} else {
		v.zoom = 1
		v.pan = 0
	}
	v.clamp()
}

// Total returns the candle count the viewport was initialized with.
func (v *Viewport) Total() int { return v.total }

// Pan returns the clamped index of the left-most visible candle.
func (v *Viewport) Pan() int {
	v.clamp()
	return v.pan
}

// Zoom returns the clamped zoom level.
func (v *Viewport) Zoom() float64 {
	v.clamp()
	return v.zoom
}

// VisibleCount returns the number of candles in the visible window:
// max(minVisible, floor(total/zoom)), bounded by the series itself.
func (v *Viewport) VisibleCount() int {
	if v.total == 0 {
		return 0
	}
	// The epsilon absorbs float error when total/zoom is a whole number.
	n := int(math.Floor(float64(v.total)/v.maxClampedZoom() + 1e-9))
	if n < minVisible {
		n = minVisible
	}
	if n > v.total {
		n = v.total
	}
	return n
}

// VisibleRange returns the clamped half-open window [from, to) of
// visible candle indices, the only slice the render pipeline consumes.
func (v *Viewport) VisibleRange() (from, to int) {
	v.clamp()
	return v.pan, v.pan + v.VisibleCount()
}

// ZoomIn multiplies the zoom level by factor, clamped to total/minZoomSlice.
func (v *Viewport) ZoomIn(factor float64) {
	if factor <= 0 {
		return
	}
	v.zoom *= factor
	v.clamp()
}

// ZoomOut divides the zoom level by factor, clamped to 1.
func (v *Viewport) ZoomOut(factor float64) {
	if factor <= 0 {
		return
	}
	v.zoom /= factor
	v.clamp()
}

// PanBy shifts the pan offset by delta candles and re-clamps.
func (v *Viewport) PanBy(delta int) {
	v.pan += delta
	v.clamp()
}

// SetPan sets the pan offset to an absolute value and re-clamps.
// Drag handling computes the offset from the drag start rather than
// incrementally, so rounding never accumulates drift.
func (v *Viewport) SetPan(pan int) {
	v.pan = pan
	v.clamp()
}

func (v *Viewport) maxClampedZoom() float64 {
	z := v.zoom
	maxZoom := float64(v.total) / float64(minZoomSlice)
	if maxZoom < 1 {
		maxZoom = 1
	}
	if z > maxZoom {
		z = maxZoom
	}
	if z < 1 {
		z = 1
	}
	return z
}

// clamp enforces the viewport invariant on both fields.
func (v *Viewport) clamp() {
	v.zoom = v.maxClampedZoom()
	maxPan := v.total - v.VisibleCount()
	if maxPan < 0 {
		maxPan = 0
	}
	if v.pan > maxPan {
		v.pan = maxPan
	}
	if v.pan < 0 {
		v.pan = 0
	}
}
