package model

// Series is the immutable input to one mounted chart: a time-ordered
// candle sequence plus a derived time-to-volume index. A Series is replaced
// wholesale when the symbol or timeframe changes; it is never mutated.
type Series struct {
	Symbol    string
	Timeframe Timeframe

	candles []Candle
	volume  map[int64]float64
}

// NewSeries builds a Series from a candle sequence and its volume
// samples. Samples whose Time matches no candle are ignored.
func NewSeries(symbol string, tf Timeframe, candles []Candle, samples []VolumeSample) *Series {
	byTime := make(map[int64]bool, len(candles))
	for _, c := range candles {
		byTime[c.Time] = true
	}
	vol := make(map[int64]float64, len(samples))
	for _, s := range samples {
		if byTime[s.Time] {
			vol[s.Time] = s.Volume
		}
	}
	return &Series{
		Symbol:    symbol,
		Timeframe: tf,
		candles:   candles,
		volume:    vol,
	}
}

// Len returns the total candle count.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.candles)
}

// At returns the candle at index i. The index must be in [0, Len()).
func (s *Series) At(i int) Candle {
	return s.candles[i]
}

// Slice returns the contiguous sub-sequence [from, to). The bounds must
// already be clamped by the viewport.
func (s *Series) Slice(from, to int) []Candle {
	return s.candles[from:to]
}

// VolumeAt returns the volume matched to the candle at index i,
// or 0 if no sample shares its time.
func (s *Series) VolumeAt(i int) float64 {
	return s.volume[s.candles[i].Time]
}

// MaxVolume returns the maximum volume over [from, to), and at least 1
// so bar heights never divide by zero.
func (s *Series) MaxVolume(from, to int) float64 {
	max := 1.0
	for i := from; i < to; i++ {
		if v := s.volume[s.candles[i].Time]; v > max {
			max = v
		}
	}
	return max
}
