package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Timeframe is a candle bucket width in seconds. Only the fixed set
// below is valid; anything else is rejected at the parse boundary.
type Timeframe int

const (
	TF1m  Timeframe = 60
	TF5m  Timeframe = 300
	TF15m Timeframe = 900
	TF1h  Timeframe = 3600
	TF4h  Timeframe = 14400
	TF1d  Timeframe = 86400
)

var tfLabels = map[Timeframe]string{
	TF1m:  "1m",
	TF5m:  "5m",
	TF15m: "15m",
	TF1h:  "1h",
	TF4h:  "4h",
	TF1d:  "1d",
}

// Seconds returns the bucket width in seconds.
func (tf Timeframe) Seconds() int64 {
	return int64(tf)
}

// Label returns the short display label, e.g. "5m".
func (tf Timeframe) Label() string {
	if l, ok := tfLabels[tf]; ok {
		return l
	}
	return strconv.Itoa(int(tf)) + "s"
}

// Valid reports whether tf is one of the enumerated buckets.
func (tf Timeframe) Valid() bool {
	_, ok := tfLabels[tf]
	return ok
}

// ParseTimeframe accepts either a label ("15m") or raw seconds ("900").
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.TrimSpace(s)
	for tf, l := range tfLabels {
		if s == l {
			return tf, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		tf := Timeframe(n)
		if tf.Valid() {
			return tf, nil
		}
	}
	return 0, fmt.Errorf("unknown timeframe %q", s)
}

// ParseTimeframes parses a comma-separated list (config idiom, e.g.
// "60,300,900"), skipping invalid entries, and returns the result sorted
// ascending.
func ParseTimeframes(csv string) []Timeframe {
	parts := strings.Split(csv, ",")
	tfs := make([]Timeframe, 0, len(parts))
	for _, p := range parts {
		tf, err := ParseTimeframe(p)
		if err != nil {
			continue
		}
		tfs = append(tfs, tf)
	}
	sort.Slice(tfs, func(i, j int) bool { return tfs[i] < tfs[j] })
	return tfs
}
