package crop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/shineycrop/internal/geom"
)

// ErrInvalidHandle is returned when a drag update names a handle that has no
// resize rule.
var ErrInvalidHandle = errors.New("invalid handle")

// Handle identifies what a pointer grabbed: one of the eight resize handles,
// the box body (HandleMove) or nothing (HandleNone).
type Handle int

const (
	HandleNone Handle = iota
	HandleMove
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
	HandleTopMiddle
	HandleBottomMiddle
	HandleMiddleLeft
	HandleMiddleRight
)

// handleNames is indexed by Handle.
var handleNames = [...]string{
	HandleNone:         "none",
	HandleMove:         "move",
	HandleTopLeft:      "top-left",
	HandleTopRight:     "top-right",
	HandleBottomLeft:   "bottom-left",
	HandleBottomRight:  "bottom-right",
	HandleTopMiddle:    "top-middle",
	HandleBottomMiddle: "bottom-middle",
	HandleMiddleLeft:   "middle-left",
	HandleMiddleRight:  "middle-right",
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return fmt.Sprintf("handle(%d)", int(h))
	}
	return handleNames[h]
}

// ParseHandle resolves a handle by its hyphenated name.
func ParseHandle(name string) (Handle, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for h, n := range handleNames {
		if n == name {
			return Handle(h), nil
		}
	}
	return HandleNone, fmt.Errorf("%q: %w", name, ErrInvalidHandle)
}

// resizeRule says how a pointer delta feeds each field of the box. x and
// width follow dx, y and height follow dy. left/top mark handles whose name
// contains that word; they pin the opposite edge during fixups.
type resizeRule struct {
	x, y, width, height float64
	left, top           bool
	vertical            bool // name contains "top" or "bottom"
}

// resizeRules is the canonical sign table. Its order is the hit-test order.
var resizeRules = [...]struct {
	handle Handle
	rule   resizeRule
}{
	{HandleTopLeft, resizeRule{x: 1, y: 1, width: -1, height: -1, left: true, top: true, vertical: true}},
	{HandleTopRight, resizeRule{y: 1, width: 1, height: -1, top: true, vertical: true}},
	{HandleBottomLeft, resizeRule{x: 1, width: -1, height: 1, left: true, vertical: true}},
	{HandleBottomRight, resizeRule{width: 1, height: 1, vertical: true}},
	{HandleTopMiddle, resizeRule{y: 1, height: -1, top: true, vertical: true}},
	{HandleBottomMiddle, resizeRule{height: 1, vertical: true}},
	{HandleMiddleLeft, resizeRule{x: 1, width: -1, left: true}},
	{HandleMiddleRight, resizeRule{width: 1}},
}

func ruleFor(h Handle) (resizeRule, bool) {
	for _, e := range resizeRules {
		if e.handle == h {
			return e.rule, true
		}
	}
	return resizeRule{}, false
}

// ResizeHandles returns the eight resize handles in hit-test order.
func ResizeHandles() []Handle {
	out := make([]Handle, len(resizeRules))
	for i, e := range resizeRules {
		out[i] = e.handle
	}
	return out
}

// Anchor returns the display position of a resize handle on r.
func Anchor(h Handle, r geom.Rect) (geom.Point, bool) {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	switch h {
	case HandleTopLeft:
		return geom.Pt(r.X, r.Y), true
	case HandleTopRight:
		return geom.Pt(r.Right(), r.Y), true
	case HandleBottomLeft:
		return geom.Pt(r.X, r.Bottom()), true
	case HandleBottomRight:
		return geom.Pt(r.Right(), r.Bottom()), true
	case HandleTopMiddle:
		return geom.Pt(cx, r.Y), true
	case HandleBottomMiddle:
		return geom.Pt(cx, r.Bottom()), true
	case HandleMiddleLeft:
		return geom.Pt(r.X, cy), true
	case HandleMiddleRight:
		return geom.Pt(r.Right(), cy), true
	}
	return geom.Point{}, false
}

// DefaultHandleRadius is the grab distance around each handle anchor.
const DefaultHandleRadius = 20

// HitTest maps a pointer position to the handle it grabs. Handles are checked
// in table order and the first within radius wins, even if a later one is
// closer. A point inside the box (edges included) that grabs no handle
// yields HandleMove, anything else HandleNone.
func HitTest(p geom.Point, r geom.Rect, radius float64) Handle {
	for _, e := range resizeRules {
		a, _ := Anchor(e.handle, r)
		if geom.Distance(p, a) <= radius {
			return e.handle
		}
	}
	if r.Contains(p) {
		return HandleMove
	}
	return HandleNone
}
