// Package snapshot renders a non-interactive chart frame of a series:
// the second, thinner hosting view over the same engine the gateway
// sessions use.
package snapshot

import (
	"bytes"
	"fmt"

	"chartview/internal/chart"
	"chartview/internal/model"
	"chartview/internal/surface/raster"
)

// Options control one snapshot render.
type Options struct {
	Width, Height float64
	DPR           float64
	Price         float64 // current price; drawn only when HasPrice
	HasPrice      bool
}

// Render mounts the series on a fresh engine, auto-fits, and returns
// the encoded PNG frame.
func Render(series *model.Series, opts Options) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.Height <= 0 {
		opts.Height = 540
	}

	eng := chart.NewEngine(opts.Width, opts.Height)
	eng.SetSeries(series)
	if opts.HasPrice {
		eng.SetCurrentPrice(opts.Price)
	}

	surf, err := raster.New(opts.Width, opts.Height, opts.DPR)
	if err != nil {
		return nil, fmt.Errorf("snapshot surface: %w", err)
	}
	eng.Render(surf)

	var buf bytes.Buffer
	if err := surf.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("snapshot encode: %w", err)
	}
	return buf.Bytes(), nil
}
