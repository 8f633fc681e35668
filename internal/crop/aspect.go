package crop

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AspectRatio is width/height. Free (zero) means unconstrained.
type AspectRatio float64

// Free disables aspect locking.
const Free AspectRatio = 0

// IsFree reports whether the ratio leaves the box unconstrained.
func (a AspectRatio) IsFree() bool { return a <= 0 }

func (a AspectRatio) String() string {
	if a.IsFree() {
		return "free"
	}
	for _, p := range Presets {
		if p.Ratio == a {
			return p.Label
		}
	}
	return strconv.FormatFloat(float64(a), 'g', 6, 64)
}

// Preset is a named aspect ratio offered to the user.
type Preset struct {
	Label string
	Ratio AspectRatio
}

// Presets lists the selectable ratios in display order.
var Presets = []Preset{
	{"1:1", 1},
	{"4:3", 4.0 / 3},
	{"3:4", 3.0 / 4},
	{"16:9", 16.0 / 9},
	{"9:16", 9.0 / 16},
	{"3:2", 3.0 / 2},
	{"2:3", 2.0 / 3},
	{"Free", Free},
}

// ParseAspect accepts a preset label, "W:H", "W/H", a decimal ratio, or
// "free". Zero also means free.
func ParseAspect(s string) (AspectRatio, error) {
	text := strings.TrimSpace(s)
	if text == "" || strings.EqualFold(text, "free") {
		return Free, nil
	}
	for _, p := range Presets {
		if strings.EqualFold(p.Label, text) {
			return p.Ratio, nil
		}
	}
	sep := strings.IndexAny(text, ":/x")
	if sep > 0 {
		w, err := strconv.ParseFloat(text[:sep], 64)
		if err != nil {
			return Free, fmt.Errorf("invalid aspect %q: %w", s, err)
		}
		h, err := strconv.ParseFloat(text[sep+1:], 64)
		if err != nil {
			return Free, fmt.Errorf("invalid aspect %q: %w", s, err)
		}
		if !finite(w) || !finite(h) || w <= 0 || h <= 0 {
			return Free, fmt.Errorf("invalid aspect %q: sides must be positive", s)
		}
		r := w / h
		if !finite(r) || r <= 0 {
			return Free, fmt.Errorf("invalid aspect %q: ratio out of range", s)
		}
		return AspectRatio(r), nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Free, fmt.Errorf("invalid aspect %q: %w", s, err)
	}
	if !finite(v) || v < 0 {
		return Free, fmt.Errorf("invalid aspect %q: must be a finite, non-negative ratio", s)
	}
	return AspectRatio(v), nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
