// cmd/chartsnap renders one auto-fitted chart frame to a PNG file.
// It is the minimal hosting view: load history, resample, render, exit.
//
// Usage:
//
//	go run ./cmd/chartsnap --db=data/candles.db --symbol=BTCUSD --tf=15m --out=chart.png
package main

import (
	"flag"
	"log"
	"os"

	"chartview/internal/marketdata/resample"
	"chartview/internal/model"
	"chartview/internal/snapshot"
	sqlitestore "chartview/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	// Flags
	dbPath := flag.String("db", "data/candles.db", "Path to SQLite candle history")
	symbol := flag.String("symbol", "BTCUSD", "Symbol to chart")
	tfStr := flag.String("tf", "15m", "Timeframe label or seconds")
	candles := flag.Int("candles", 500, "History depth in candles")
	out := flag.String("out", "chart.png", "Output PNG path")
	width := flag.Int("w", 960, "Surface width in logical pixels")
	height := flag.Int("h", 540, "Surface height in logical pixels")
	dpr := flag.Float64("dpr", 1, "Device pixel ratio")
	flag.Parse()

	tf, err := model.ParseTimeframe(*tfStr)
	if err != nil {
		log.Fatalf("[chartsnap] %v", err)
	}

	reader, err := sqlitestore.NewReader(*dbPath)
	if err != nil {
		log.Fatalf("[chartsnap] sqlite open failed: %v", err)
	}
	defer reader.Close()

	baseLimit := *candles * int(tf.Seconds()/model.TF1m.Seconds())
	base, vol, err := reader.ReadHistory(*symbol, baseLimit)
	if err != nil {
		log.Fatalf("[chartsnap] history read failed: %v", err)
	}
	if len(base) == 0 {
		log.Fatalf("[chartsnap] no history for %s", *symbol)
	}

	series := resample.Series(*symbol, tf, base, vol)

	png, err := snapshot.Render(series, snapshot.Options{
		Width:  float64(*width),
		Height: float64(*height),
		DPR:    *dpr,
	})
	if err != nil {
		log.Fatalf("[chartsnap] render failed: %v", err)
	}

	if err := os.WriteFile(*out, png, 0o644); err != nil {
		log.Fatalf("[chartsnap] write failed: %v", err)
	}
	log.Printf("[chartsnap] wrote %s (%d candles, tf=%s)", *out, series.Len(), tf.Label())
}
