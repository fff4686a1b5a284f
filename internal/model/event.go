package model

// EventKind discriminates chart input events delivered by a host.
type EventKind int

const (
	EvPointerDown EventKind = iota
	EvPointerMove
	EvPointerUp
	EvPointerLeave
	EvWheel
	EvZoomIn
	EvZoomOut
	EvResize
	EvClearRange
	EvPrice
)

// InputEvent is one pointer/wheel/resize/price event in host (client-
// relative) coordinates. Exactly the fields relevant to Kind are set.
type InputEvent struct {
	Kind    EventKind
	X, Y    float64 // pointer position
	Measure bool    // modifier-qualified click (range measurement)
	DeltaY  float64 // wheel delta, negative = zoom in
	W, H    float64 // resize dimensions
	Price   float64 // current-price refresh
}
