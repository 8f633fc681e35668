// Package geom holds the real-valued geometry shared by the crop engine:
// points, rectangles and sizes in either display or source-image space, and
// the transforms between those spaces.
package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a 2D coordinate. The space it lives in is implied by its use.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

// Measurable reports whether both dimensions are positive.
func (s Size) Measurable() bool { return s.Width > 0 && s.Height > 0 }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// SizeOf returns the dimensions of an integer rectangle.
func SizeOf(r image.Rectangle) Size {
	return Size{Width: float64(r.Dx()), Height: float64(r.Dy())}
}

// Rect is a top-left anchored box.
type Rect struct {
	X, Y, Width, Height float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the box.
func (r Rect) Center() Point {
	return Midpoint(Point{r.X, r.Y}, Point{r.Right(), r.Bottom()})
}

// Size returns the box dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Empty reports whether the box has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Scale multiplies the x axis (origin and width) by sx and the y axis by sy.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
}

// Image rounds the box to the nearest integer rectangle.
func (r Rect) Image() image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	return image.Rect(x0, y0, x0+int(math.Round(r.Width)), y0+int(math.Round(r.Height)))
}

// ApproxEqual reports whether every field of r and o differs by at most eps.
func (r Rect) ApproxEqual(o Rect, eps float64) bool {
	return math.Abs(r.X-o.X) <= eps && math.Abs(r.Y-o.Y) <= eps &&
		math.Abs(r.Width-o.Width) <= eps && math.Abs(r.Height-o.Height) <= eps
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.Width, r.Height)
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Clamp constrains v to [lo, hi]. When lo > hi the upper bound wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Fit returns the largest rectangle with the aspect of content that fits
// inside bounds, centred within it. The result is empty when either size is
// not measurable.
func Fit(content Size, bounds image.Rectangle) image.Rectangle {
	if !content.Measurable() || bounds.Empty() {
		return image.Rectangle{}
	}
	bw := float64(bounds.Dx())
	bh := float64(bounds.Dy())
	scale := math.Min(bw/content.Width, bh/content.Height)
	w := int(content.Width * scale)
	h := int(content.Height * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x0 := bounds.Min.X + (bounds.Dx()-w)/2
	y0 := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
