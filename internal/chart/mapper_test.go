package chart

import (
	"math"
	"testing"

	"chartview/internal/model"
)

func testSlice() []model.Candle {
	return []model.Candle{
		{Time: 60, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: 120, Open: 11, High: 11, Low: 8, Close: 9},
		{Time: 180, Open: 9, High: 10, Low: 9, Close: 10},
		{Time: 240, Open: 10, High: 13, Low: 10, Close: 12},
	}
}

func TestMapper_PriceRoundTrip(t *testing.T) {
	m := NewMapper(960, 540, testSlice(), 0)

	for _, p := range []float64{8, 9.5, 10, 11.37, 13} {
		y := m.YForPrice(p)
		back := m.PriceAt(y)
		if math.Abs(back-p) > 1e-9 {
			t.Errorf("round trip of %v drifted to %v", p, back)
		}
	}
}

func TestMapper_PriceAxisInverted(t *testing.T) {
	m := NewMapper(960, 540, testSlice(), 0)

	// Higher prices sit higher on screen, i.e. at smaller y.
	if m.YForPrice(13) >= m.YForPrice(8) {
		t.Fatalf("expected y(13) < y(8), got %v vs %v", m.YForPrice(13), m.YForPrice(8))
	}
}

func TestMapper_PaddedBoundsCoverSlice(t *testing.T) {
	m := NewMapper(960, 540, testSlice(), 0)

	lo, hi := m.PriceBounds()
	if lo >= 8 {
		t.Errorf("expected padding below slice low 8, got min %v", lo)
	}
	if hi <= 13 {
		t.Errorf("expected padding above slice high 13, got max %v", hi)
	}
	// 5% of the 8..13 spread on each side.
	if math.Abs(lo-7.75) > 1e-9 || math.Abs(hi-13.25) > 1e-9 {
		t.Errorf("expected bounds [7.75, 13.25], got [%v, %v]", lo, hi)
	}
}

func TestMapper_DegenerateRange(t *testing.T) {
	flat := []model.Candle{
		{Time: 60, Open: 100, High: 100, Low: 100, Close: 100},
		{Time: 120, Open: 100, High: 100, Low: 100, Close: 100},
	}
	m := NewMapper(960, 540, flat, 0)

	lo, hi := m.PriceBounds()
	if hi <= lo {
		t.Fatalf("degenerate slice produced empty scale [%v, %v]", lo, hi)
	}
	y := m.YForPrice(100)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		t.Fatalf("flat price mapped to %v", y)
	}
	if math.Abs(m.PriceAt(y)-100) > 1e-9 {
		t.Errorf("flat price round trip drifted to %v", m.PriceAt(y))
	}
}

func TestMapper_DegenerateRangeAtZero(t *testing.T) {
	flat := []model.Candle{{Time: 60, Open: 0, High: 0, Low: 0, Close: 0}}
	m := NewMapper(960, 540, flat, 0)

	lo, hi := m.PriceBounds()
	if hi-lo <= 0 {
		t.Fatalf("zero-price slice produced empty scale [%v, %v]", lo, hi)
	}
}

func TestMapper_ColumnHitTesting(t *testing.T) {
	slice := testSlice()
	m := NewMapper(960, 540, slice, 20)

	for col := range slice {
		x := m.XForCol(col)
		got, ok := m.ColAt(x)
		if !ok || got != col {
			t.Errorf("center of column %d resolved to (%d, %v)", col, got, ok)
		}
		idx, ok := m.IndexAt(x)
		if !ok || idx != 20+col {
			t.Errorf("expected absolute index %d, got (%d, %v)", 20+col, idx, ok)
		}
	}

	// Left of the first column and inside the right gutter: no hit.
	if _, ok := m.ColAt(2); ok {
		t.Error("x left of the plot should not resolve to a column")
	}
	if _, ok := m.ColAt(950); ok {
		t.Error("x inside the price gutter should not resolve to a column")
	}
}

func TestMapper_XForIndexOffsetsBySliceStart(t *testing.T) {
	m := NewMapper(960, 540, testSlice(), 50)
	if m.XForIndex(50) != m.XForCol(0) {
		t.Errorf("expected index 50 at column 0, got %v vs %v", m.XForIndex(50), m.XForCol(0))
	}
	if m.XForIndex(53) != m.XForCol(3) {
		t.Errorf("expected index 53 at column 3, got %v vs %v", m.XForIndex(53), m.XForCol(3))
	}
}

func TestMapper_BodyWidthFloor(t *testing.T) {
	// 500 visible candles on a small surface: the column is under 2px,
	// the body must not be.
	many := make([]model.Candle, 500)
	for i := range many {
		many[i] = model.Candle{Time: int64(i), Open: 1, High: 2, Low: 0.5, Close: 1.5}
	}
	m := NewMapper(400, 300, many, 0)
	if m.BodyWidth() != minBodyWidth {
		t.Fatalf("expected body width floor %v, got %v", minBodyWidth, m.BodyWidth())
	}
}

func TestMapper_VolumeBarProportional(t *testing.T) {
	m := NewMapper(960, 540, testSlice(), 0)

	_, full := m.VolumeBar(10, 10)
	_, half := m.VolumeBar(5, 10)
	if full <= 0 {
		t.Fatalf("expected positive bar height, got %v", full)
	}
	if math.Abs(half-full/2) > 1e-9 {
		t.Errorf("expected half-height bar, got %v of %v", half, full)
	}

	topFull, _ := m.VolumeBar(10, 10)
	topHalf, _ := m.VolumeBar(5, 10)
	if topHalf <= topFull {
		t.Errorf("smaller bar should start lower: top %v vs %v", topHalf, topFull)
	}
}

func TestMapper_PriceVisible(t *testing.T) {
	m := NewMapper(960, 540, testSlice(), 0)
	if !m.PriceVisible(10) {
		t.Error("in-range price reported invisible")
	}
	if m.PriceVisible(50) {
		t.Error("far out-of-range price reported visible")
	}
}

func TestMapper_InPlot(t *testing.T) {
	m := NewMapper(960, 540, testSlice(), 0)
	if !m.InPlot(480, 270) {
		t.Error("surface center should be inside the plot")
	}
	if m.InPlot(930, 270) {
		t.Error("price gutter should be outside the plot")
	}
	if m.InPlot(480, 2) {
		t.Error("top padding should be outside the plot")
	}
}
