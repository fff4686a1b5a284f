// Package raster implements the chart engine's Surface on top of
// go-chart's raster PNG renderer. It owns device-pixel-ratio scaling:
// the engine draws in logical pixels, the backing image is dpr× larger.
package raster

import (
	"fmt"
	"io"

	"github.com/golang/freetype/truetype"
	chartdraw "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const fontSize = 10 // points; at 72 DPI one point is one pixel

// Surface is a raster drawing surface for one engine instance.
// Not safe for concurrent use; one session goroutine owns it.
type Surface struct {
	w, h float64 // logical pixels
	dpr  float64
	r    chartdraw.Renderer
	font *truetype.Font
}

// New allocates a raster surface of w×h logical pixels at the given
// device pixel ratio (<=0 means 1).
func New(w, h, dpr float64) (*Surface, error) {
	if dpr <= 0 {
		dpr = 1
	}
	r, err := chartdraw.PNG(int(w*dpr), int(h*dpr))
	if err != nil {
		return nil, fmt.Errorf("raster renderer: %w", err)
	}
	font, err := chartdraw.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("raster font: %w", err)
	}
	// 72 DPI makes font points equal logical pixels; scaling the DPI by
	// dpr keeps text in step with the geometry.
	r.SetDPI(72 * dpr)
	return &Surface{w: w, h: h, dpr: dpr, r: r, font: font}, nil
}

// Size returns the logical dimensions.
func (s *Surface) Size() (w, h float64) { return s.w, s.h }

// Clear fills the whole surface with c.
func (s *Surface) Clear(c drawing.Color) {
	s.FillRect(0, 0, s.w, s.h, c)
}

// Line strokes a line, dashed when dash is non-nil.
func (s *Surface) Line(x1, y1, x2, y2 float64, c drawing.Color, width float64, dash []float64) {
	s.r.SetStrokeColor(c)
	s.r.SetStrokeWidth(width * s.dpr)
	if len(dash) > 0 {
		scaled := make([]float64, len(dash))
		for i, d := range dash {
			scaled[i] = d * s.dpr
		}
		s.r.SetStrokeDashArray(scaled)
	} else {
		s.r.SetStrokeDashArray(nil)
	}
	s.r.MoveTo(s.px(x1), s.px(y1))
	s.r.LineTo(s.px(x2), s.px(y2))
	s.r.Stroke()
}

// FillRect fills an axis-aligned rectangle.
func (s *Surface) FillRect(x, y, w, h float64, c drawing.Color) {
	s.r.SetFillColor(c)
	s.r.MoveTo(s.px(x), s.px(y))
	s.r.LineTo(s.px(x+w), s.px(y))
	s.r.LineTo(s.px(x+w), s.px(y+h))
	s.r.LineTo(s.px(x), s.px(y+h))
	s.r.Close()
	s.r.Fill()
}

// Text draws s with its baseline-left corner at (x, y).
func (s *Surface) Text(x, y float64, body string, c drawing.Color) {
	s.r.SetFont(s.font)
	s.r.SetFontSize(fontSize)
	s.r.SetFontColor(c)
	s.r.Text(body, s.px(x), s.px(y))
}

// TextWidth measures body at the surface's font settings.
func (s *Surface) TextWidth(body string) float64 {
	s.r.SetFont(s.font)
	s.r.SetFontSize(fontSize)
	box := s.r.MeasureText(body)
	return float64(box.Width()) / s.dpr
}

// EncodePNG writes the current frame as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.r.Save(w)
}

func (s *Surface) px(v float64) int {
	return int(v*s.dpr + 0.5)
}
