package chart

import "testing"

// checkInvariant asserts the window a viewport reports is a valid
// sub-range of the series in every state a test drives it into.
func checkInvariant(t *testing.T, v *Viewport) {
	t.Helper()
	from, to := v.VisibleRange()
	if from < 0 {
		t.Fatalf("visible range start %d < 0", from)
	}
	if to > v.Total() {
		t.Fatalf("visible range end %d > total %d", to, v.Total())
	}
	if v.Total() > 0 && to <= from {
		t.Fatalf("empty visible range [%d, %d) over %d candles", from, to, v.Total())
	}
}

func TestViewport_AutoFitOnInit(t *testing.T) {
	var v Viewport
	v.Init(100)

	if got := v.VisibleCount(); got != 10 {
		t.Fatalf("expected auto-fit to 10 visible candles, got %d", got)
	}
	if got := v.Pan(); got != 90 {
		t.Fatalf("expected pan 90 (latest window), got %d", got)
	}
	checkInvariant(t, &v)
}

func TestViewport_ShortSeriesShowsEverything(t *testing.T) {
	var v Viewport
	v.Init(7)

	from, to := v.VisibleRange()
	if from != 0 || to != 7 {
		t.Fatalf("expected full window [0, 7), got [%d, %d)", from, to)
	}
	if v.Zoom() != 1 {
		t.Errorf("expected zoom 1 for short series, got %v", v.Zoom())
	}
}

func TestViewport_WheelZoomOutWidensWindow(t *testing.T) {
	var v Viewport
	v.Init(100)

	v.ZoomOut(WheelZoomFactor)
	if got := v.VisibleCount(); got != 13 {
		t.Fatalf("expected 13 visible after one wheel step out, got %d", got)
	}
	// The window grew at the right edge boundary, so pan must retreat.
	from, to := v.VisibleRange()
	if to != 100 {
		t.Errorf("expected window still pinned to latest candle, got [%d, %d)", from, to)
	}
	checkInvariant(t, &v)
}

func TestViewport_ZoomCeilingKeepsMinimumSlice(t *testing.T) {
	var v Viewport
	v.Init(100)

	for i := 0; i < 50; i++ {
		v.ZoomIn(ZoomStepFactor)
	}
	if got := v.VisibleCount(); got != minVisible {
		t.Fatalf("expected zoom-in to bottom out at %d visible, got %d", minVisible, got)
	}
	checkInvariant(t, &v)
}

func TestViewport_ZoomFloorIsWholeSeries(t *testing.T) {
	var v Viewport
	v.Init(100)

	for i := 0; i < 50; i++ {
		v.ZoomOut(ZoomStepFactor)
	}
	from, to := v.VisibleRange()
	if from != 0 || to != 100 {
		t.Fatalf("expected full series at max zoom-out, got [%d, %d)", from, to)
	}
}

func TestViewport_PanClampsAtBothEdges(t *testing.T) {
	var v Viewport
	v.Init(100)

	v.SetPan(-50)
	if got := v.Pan(); got != 0 {
		t.Fatalf("expected pan clamped to 0, got %d", got)
	}
	v.SetPan(10_000)
	if got := v.Pan(); got != 100-v.VisibleCount() {
		t.Fatalf("expected pan clamped to right edge, got %d", got)
	}
	checkInvariant(t, &v)
}

func TestViewport_PanByAccumulates(t *testing.T) {
	var v Viewport
	v.Init(100)

	v.PanBy(-30)
	if got := v.Pan(); got != 60 {
		t.Fatalf("expected pan 60 after shifting left by 30, got %d", got)
	}
	v.PanBy(5)
	if got := v.Pan(); got != 65 {
		t.Fatalf("expected pan 65, got %d", got)
	}
}

func TestViewport_ZoomPreservedAcrossStates(t *testing.T) {
	var v Viewport
	v.Init(200)
	v.ZoomIn(ZoomStepFactor)
	v.PanBy(-40)

	// A pan must never perturb the zoom level.
	before := v.Zoom()
	v.PanBy(12)
	v.SetPan(3)
	if v.Zoom() != before {
		t.Fatalf("pan changed zoom from %v to %v", before, v.Zoom())
	}
}

func TestViewport_InvariantUnderRandomWalk(t *testing.T) {
	// Deterministic mixed sequence of every mutation; the reported
	// window must stay valid after each step.
	var v Viewport
	v.Init(37)
	steps := []func(){
		func() { v.ZoomIn(WheelZoomFactor) },
		func() { v.PanBy(-9) },
		func() { v.ZoomOut(ZoomStepFactor) },
		func() { v.SetPan(100) },
		func() { v.ZoomOut(WheelZoomFactor) },
		func() { v.PanBy(4) },
		func() { v.ZoomIn(ZoomStepFactor) },
		func() { v.SetPan(-3) },
	}
	for round := 0; round < 5; round++ {
		for i, step := range steps {
			step()
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("round %d step %d panicked: %v", round, i, r)
					}
				}()
				checkInvariant(t, &v)
			}()
		}
	}
}
