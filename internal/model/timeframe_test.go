package model

import "testing"

func TestParseTimeframe(t *testing.T) {
	cases := []struct {
		in      string
		want    Timeframe
		wantErr bool
	}{
		{"1m", TF1m, false},
		{"15m", TF15m, false},
		{"1h", TF1h, false},
		{"900", TF15m, false},
		{"86400", TF1d, false},
		{" 5m ", TF5m, false},
		{"2m", 0, true},
		{"bogus", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeframe(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeframe(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeframe(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeframe(%q): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestParseTimeframes_SkipsInvalidAndSorts(t *testing.T) {
	tfs := ParseTimeframes("900,oops,60,3600")
	want := []Timeframe{TF1m, TF15m, TF1h}
	if len(tfs) != len(want) {
		t.Fatalf("expected %d TFs, got %d (%v)", len(want), len(tfs), tfs)
	}
	for i := range want {
		if tfs[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], tfs[i])
		}
	}
}

func TestTimeframeLabel(t *testing.T) {
	if got := TF5m.Label(); got != "5m" {
		t.Errorf("expected 5m, got %s", got)
	}
	if got := Timeframe(42).Label(); got != "42s" {
		t.Errorf("expected fallback 42s, got %s", got)
	}
}
