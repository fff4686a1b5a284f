package chart

import "chartview/internal/model"

// interactionMode is the sealed sum type behind the pointer state
// machine. Exactly one mode is active at a time; modeling drag and
// range measurement as variants (rather than independent flags) makes
// illegal combinations unrepresentable.
type interactionMode interface {
	mode()
}

// idle: no drag in progress, no range measurement pending or set.
type idle struct{}

// dragging: a plain pointer-down started a pan drag. The pan offset is
// recomputed from these start values on every move, never incrementally.
// resume is the mode restored on pointer-up (idle, or a set range so a
// measurement survives panning).
type dragging struct {
	startX   float64
	startPan int
	resume   interactionMode
}

// rangeArmed: one modifier-qualified click placed the first range
// anchor; the measurement is not persisted until the second click.
type rangeArmed struct {
	anchor int // absolute series index
}

// rangeSet: both anchors placed. Indices are order-independent; the
// renderer and summary always use min/max of the two. Absolute indices
// are kept so a measurement survives pans and zooms.
type rangeSet struct {
	anchor int
	target int
}

func (idle) mode()       {}
func (dragging) mode()   {}
func (rangeArmed) mode() {}
func (rangeSet) mode()   {}

// crosshairState is the optional pointer-tracking guide position,
// cleared when the pointer leaves the plottable region.
type crosshairState struct {
	active bool
	x, y   float64
}

// tooltipState references the nearest visible candle under the
// crosshair and its matched volume, recomputed on every pointer move.
type tooltipState struct {
	active bool
	index  int // absolute series index
	volume float64
}

// RangeSummary is the measured-range readout: candle count, absolute
// price delta (close of the later candle minus open of the earlier
// one), and the same delta as a percentage of the earlier open.
type RangeSummary struct {
	From, To   int // absolute indices, From <= To
	Candles    int
	PriceDelta float64
	Percent    float64
}

// summarizeRange computes the range readout for two anchors in either
// order. Measuring A to B and B to A yield identical summaries.
func summarizeRange(s *model.Series, a, b int) RangeSummary {
	from, to := a, b
	if from > to {
		from, to = to, from
	}
	open := s.At(from).Open
	close_ := s.At(to).Close
	delta := close_ - open
	pct := 0.0
	if open != 0 {
		pct = delta / open * 100
	}
	return RangeSummary{
		From:       from,
		To:         to,
		Candles:    to - from + 1,
		PriceDelta: delta,
		Percent:    pct,
	}
}
