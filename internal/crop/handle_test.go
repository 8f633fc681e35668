package crop

import (
	"errors"
	"testing"

	"github.com/example/shineycrop/internal/geom"
)

func TestHitTest(t *testing.T) {
	r := geom.R(10, 10, 200, 100)
	tests := []struct {
		name string
		p    geom.Point
		want Handle
	}{
		{"top left corner", geom.Pt(10, 10), HandleTopLeft},
		{"top right corner", geom.Pt(210, 10), HandleTopRight},
		{"bottom left corner", geom.Pt(10, 110), HandleBottomLeft},
		{"bottom right near", geom.Pt(215, 115), HandleBottomRight},
		{"top middle", geom.Pt(110, 12), HandleTopMiddle},
		{"bottom middle", geom.Pt(110, 108), HandleBottomMiddle},
		{"middle left", geom.Pt(5, 60), HandleMiddleLeft},
		{"middle right", geom.Pt(212, 60), HandleMiddleRight},
		{"interior", geom.Pt(110, 60), HandleMove},
		{"edge counts as inside", geom.Pt(60, 10), HandleMove},
		{"far away", geom.Pt(500, 500), HandleNone},
		{"just outside radius", geom.Pt(10, -11), HandleNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(tt.p, r, DefaultHandleRadius); got != tt.want {
				t.Fatalf("HitTest(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestHitTestTieBreakUsesTableOrder(t *testing.T) {
	// On a 30x30 box every anchor is within 20px of the centre-top area, so
	// the first entry in table order must win even when another is closer.
	r := geom.R(0, 0, 30, 30)
	p := geom.Pt(15, 2) // nearest is top-middle
	if got := HitTest(p, r, DefaultHandleRadius); got != HandleTopLeft {
		t.Fatalf("got %v, want top-left", got)
	}
}

func TestParseHandle(t *testing.T) {
	for _, h := range ResizeHandles() {
		got, err := ParseHandle(h.String())
		if err != nil {
			t.Fatalf("ParseHandle(%q): %v", h, err)
		}
		if got != h {
			t.Errorf("ParseHandle(%q) = %v", h, got)
		}
	}
	if _, err := ParseHandle("diagonal"); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
}

func TestAnchorUnknownHandle(t *testing.T) {
	if _, ok := Anchor(HandleMove, geom.R(0, 0, 10, 10)); ok {
		t.Fatal("move has no anchor")
	}
}
