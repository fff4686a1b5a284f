package gateway

import (
	"fmt"

	"chartview/internal/model"
)

// LoadMsg asks the session to mount a new series (symbol or timeframe
// change). Any in-flight interaction state is discarded per the
// engine's series-switch contract.
type LoadMsg struct {
	Type    string `json:"type"` // "LOAD"
	Symbol  string `json:"symbol"`
	TF      string `json:"tf"`
	Candles int    `json:"candles,omitempty"` // history depth, default 500
	ReqID   string `json:"req_id,omitempty"`
}

// EventMsg is one pointer/wheel/resize input event from the hosting UI,
// in client-relative logical pixels.
type EventMsg struct {
	Type    string  `json:"type"`  // "EVENT"
	Event   string  `json:"event"` // see parseEvent
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Measure bool    `json:"measure,omitempty"` // modifier-qualified click
	DeltaY  float64 `json:"delta_y,omitempty"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`
}

// eventKinds maps wire event names onto engine event kinds.
var eventKinds = map[string]model.EventKind{
	"pointer_down":  model.EvPointerDown,
	"pointer_move":  model.EvPointerMove,
	"pointer_up":    model.EvPointerUp,
	"pointer_leave": model.EvPointerLeave,
	"wheel":         model.EvWheel,
	"zoom_in":       model.EvZoomIn,
	"zoom_out":      model.EvZoomOut,
	"resize":        model.EvResize,
	"clear_range":   model.EvClearRange,
}

// parseEvent converts a wire event into the engine's representation.
func parseEvent(msg EventMsg) (model.InputEvent, error) {
	kind, ok := eventKinds[msg.Event]
	if !ok {
		return model.InputEvent{}, fmt.Errorf("unknown event %q", msg.Event)
	}
	return model.InputEvent{
		Kind:    kind,
		X:       msg.X,
		Y:       msg.Y,
		Measure: msg.Measure,
		DeltaY:  msg.DeltaY,
		W:       msg.W,
		H:       msg.H,
	}, nil
}

// eventKindNames labels event kinds for metrics.
var eventKindNames = map[model.EventKind]string{
	model.EvPointerDown:  "pointer_down",
	model.EvPointerMove:  "pointer_move",
	model.EvPointerUp:    "pointer_up",
	model.EvPointerLeave: "pointer_leave",
	model.EvWheel:        "wheel",
	model.EvZoomIn:       "zoom_in",
	model.EvZoomOut:      "zoom_out",
	model.EvResize:       "resize",
	model.EvClearRange:   "clear_range",
	model.EvPrice:        "price",
}

// ViewportOut reports the logical window alongside each frame.
type ViewportOut struct {
	Zoom    float64 `json:"zoom"`
	Pan     int     `json:"pan"`
	Visible int     `json:"visible"`
}

// TooltipOut is the hovered candle plus its matched volume.
type TooltipOut struct {
	Candle model.Candle `json:"candle"`
	Volume float64      `json:"volume"`
}

// RangeOut is the measured-range summary attached to frames while a
// measurement is set.
type RangeOut struct {
	From       int     `json:"from"`
	To         int     `json:"to"`
	Candles    int     `json:"candles"`
	PriceDelta float64 `json:"price_delta"`
	Percent    float64 `json:"percent"`
}

// FrameOut is the rendered frame envelope pushed after every state
// change: base64 PNG plus the state the hosting UI mirrors in chrome.
type FrameOut struct {
	Type     string      `json:"type"` // "frame"
	Seq      int64       `json:"seq"`
	Symbol   string      `json:"symbol"`
	TF       string      `json:"tf"`
	PNG      string      `json:"png"`
	Viewport ViewportOut `json:"viewport"`
	Tooltip  *TooltipOut `json:"tooltip,omitempty"`
	Range    *RangeOut   `json:"range,omitempty"`
	ReqID    string      `json:"req_id,omitempty"`
}

// ErrorOut reports a rejected request; the session stays alive.
type ErrorOut struct {
	Type    string `json:"type"` // "error"
	ReqID   string `json:"req_id,omitempty"`
	Message string `json:"message"`
}
