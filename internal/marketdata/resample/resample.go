// Package resample folds base-resolution candles into wider timeframe
// buckets. Unlike a streaming resampler it works on fully materialized
// history: the chart engine consumes one immutable series per
// symbol/timeframe, so resampling happens once per series load.
package resample

import (
	"chartview/internal/model"
)

// Candles resamples time-ordered base candles into tf buckets:
// first open, max high, min low, last close per bucket. Input order is
// preserved in the output. Candles already at or above tf width simply
// land one per bucket.
func Candles(base []model.Candle, tf model.Timeframe) []model.Candle {
	if len(base) == 0 {
		return nil
	}
	width := tf.Seconds()
	out := make([]model.Candle, 0, len(base))

	var cur model.Candle
	started := false
	for _, c := range base {
		bucket := c.Time - (c.Time % width)
		if !started || bucket != cur.Time {
			if started {
				out = append(out, cur)
			}
			cur = model.Candle{Time: bucket, Open: c.Open, High: c.High, Low: c.Low, Close: c.Close}
			started = true
			continue
		}
		if c.High > cur.High {
			cur.High = c.High
		}
		if c.Low < cur.Low {
			cur.Low = c.Low
		}
		cur.Close = c.Close
	}
	out = append(out, cur)
	return out
}

// Volume folds volume samples into tf buckets by summation, keyed the
// same way as Candles so sample times line up with resampled candles.
func Volume(base []model.VolumeSample, tf model.Timeframe) []model.VolumeSample {
	if len(base) == 0 {
		return nil
	}
	width := tf.Seconds()
	out := make([]model.VolumeSample, 0, len(base))

	var cur model.VolumeSample
	started := false
	for _, v := range base {
		bucket := v.Time - (v.Time % width)
		if !started || bucket != cur.Time {
			if started {
				out = append(out, cur)
			}
			cur = model.VolumeSample{Time: bucket, Volume: v.Volume}
			started = true
			continue
		}
		cur.Volume += v.Volume
	}
	out = append(out, cur)
	return out
}

// Series resamples candles and volume together and assembles the
// immutable series a chart session mounts.
func Series(symbol string, tf model.Timeframe, base []model.Candle, vol []model.VolumeSample) *model.Series {
	return model.NewSeries(symbol, tf, Candles(base, tf), Volume(vol, tf))
}
