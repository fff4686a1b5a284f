package chart

import "github.com/wcharczuk/go-chart/v2/drawing"

// Surface is the immediate-mode drawing target the render pipeline
// draws onto. Hosts mount exactly one Surface per engine instance;
// coordinates are in logical pixels (device-pixel-ratio scaling is the
// surface's concern, not the engine's).
type Surface interface {
	// Size returns the drawable width and height in logical pixels.
	Size() (w, h float64)

	// Clear fills the whole surface with the background color.
	Clear(c drawing.Color)

	// Line strokes a straight line. A nil dash draws solid; otherwise
	// dash holds on/off lengths in pixels.
	Line(x1, y1, x2, y2 float64, c drawing.Color, width float64, dash []float64)

	// FillRect fills an axis-aligned rectangle. Translucency comes from
	// the color's alpha channel.
	FillRect(x, y, w, h float64, c drawing.Color)

	// Text draws s with its baseline-left corner at (x, y).
	Text(x, y float64, s string, c drawing.Color)

	// TextWidth measures the rendered width of s in pixels.
	TextWidth(s string) float64
}

// Fixed two-color candle palette plus chrome colors. No themes.
var (
	colorBackground  = drawing.Color{R: 0x13, G: 0x17, B: 0x22, A: 0xff}
	colorGrid        = drawing.Color{R: 0x2a, G: 0x2e, B: 0x39, A: 0xff}
	colorLabel       = drawing.Color{R: 0x8b, G: 0x92, B: 0xa4, A: 0xff}
	colorUp          = drawing.Color{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}
	colorDown        = drawing.Color{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
	colorPriceLine   = drawing.Color{R: 0xf5, G: 0xa6, B: 0x23, A: 0xff}
	colorCrosshair   = drawing.Color{R: 0x75, G: 0x7c, B: 0x8d, A: 0xff}
	colorRangeFill   = drawing.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 0x30}
	colorRangeEdge   = drawing.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	colorPlaceholder = drawing.Color{R: 0x5c, G: 0x63, B: 0x70, A: 0xff}
)
