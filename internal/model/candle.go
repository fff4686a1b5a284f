package model

import "encoding/json"

// Candle represents one OHLC price sample for a fixed time bucket.
// Time is the bucket start in Unix seconds; the series a candle belongs
// to is ordered by Time, strictly increasing.
type Candle struct {
	Time  int64   `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Bullish reports whether the candle closed at or above its open.
// Rendering keys the up/down color off this single predicate.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}

// JSON returns the JSON-encoded candle (ignoring errors for hot-path usage).
func (c Candle) JSON() []byte {
	b, _ := json.Marshal(c)
	return b
}

// VolumeSample is the traded volume for one time bucket. Samples are
// matched to candles by exact Time equality; unmatched samples are
// dropped and unmatched candles render zero volume.
type VolumeSample struct {
	Time   int64   `json:"time"`
	Volume float64 `json:"volume"`
}
