package crop

import (
	"math"
	"testing"
)

func TestParseAspect(t *testing.T) {
	tests := []struct {
		in      string
		want    AspectRatio
		wantErr bool
	}{
		{"", Free, false},
		{"free", Free, false},
		{"Free", Free, false},
		{"16:9", 16.0 / 9, false},
		{"3/2", 1.5, false},
		{"4x3", 4.0 / 3, false},
		{"1.5", 1.5, false},
		{"0", Free, false},
		{"-2", Free, true},
		{"1:0", Free, true},
		{"0:1", Free, true},
		{"-1:2", Free, true},
		{"nan", Free, true},
		{"NaN", Free, true},
		{"inf", Free, true},
		{"+Inf", Free, true},
		{"-inf", Free, true},
		{"inf:1", Free, true},
		{"1:inf", Free, true},
		{"1:nan", Free, true},
		{"1e308:1e-308", Free, true},
		{"1e-308:1e308", Free, true},
		{"wide", Free, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAspect(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAspect(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAspect(%q): %v", tt.in, err)
			}
			if math.Abs(float64(got-tt.want)) > 1e-12 {
				t.Fatalf("ParseAspect(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsedAspectKeepsRegionFinite(t *testing.T) {
	for _, in := range []string{"16:9", "9:16", "1.25", "free"} {
		a, err := ParseAspect(in)
		if err != nil {
			t.Fatalf("ParseAspect(%q): %v", in, err)
		}
		r := newPlaced(t)
		r.SetAspect(a)
		rect := r.Rect()
		for _, v := range []float64{rect.X, rect.Y, rect.Width, rect.Height} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("aspect %q produced non-finite rect %v", in, rect)
			}
		}
		checkInvariant(t, r)
	}
}
