package crop

import (
	"math"

	"github.com/example/shineycrop/internal/geom"
)

// DefaultFill is the share of the container the initial box spans.
const DefaultFill = 0.8

// Bounds optionally limit the size of a freshly created box. Zero fields are
// unset. They are not enforced while dragging.
type Bounds struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// DefaultArea returns a box centred in the container, fill of its width (or
// height, if the ratio makes that overflow) and shaped to ratio. A free
// ratio is treated as 1. Bounds are applied per axis afterwards and may
// break the ratio.
func DefaultArea(container geom.Size, ratio AspectRatio, fill float64, b Bounds) geom.Rect {
	if ratio.IsFree() {
		ratio = 1
	}
	if fill <= 0 || fill > 1 {
		fill = DefaultFill
	}
	w := container.Width * fill
	h := w / float64(ratio)
	if h > container.Height*fill {
		h = container.Height * fill
		w = h * float64(ratio)
	}
	if b.MinWidth > 0 {
		w = math.Max(w, b.MinWidth)
	}
	if b.MaxWidth > 0 {
		w = math.Min(w, b.MaxWidth)
	}
	if b.MinHeight > 0 {
		h = math.Max(h, b.MinHeight)
	}
	if b.MaxHeight > 0 {
		h = math.Min(h, b.MaxHeight)
	}
	return geom.Rect{
		X:      (container.Width - w) / 2,
		Y:      (container.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// Recenter returns a box of area's size centred on center, with its origin
// clamped into the container.
func Recenter(area geom.Rect, center geom.Point, container geom.Size) geom.Rect {
	area.X = geom.Clamp(center.X-area.Width/2, 0, container.Width-area.Width)
	area.Y = geom.Clamp(center.Y-area.Height/2, 0, container.Height-area.Height)
	return area
}
