// Package raster extracts a crop region from a decoded image, optionally
// masking it to a circle.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/example/shineycrop/internal/geom"
)

// ErrInvalidRegion is returned when the requested region has no pixels.
var ErrInvalidRegion = errors.New("invalid crop region")

// Shape selects how the crop is masked.
type Shape int

const (
	Rectangular Shape = iota
	Elliptical
)

func (s Shape) String() string {
	if s == Elliptical {
		return "ellipse"
	}
	return "rect"
}

// Toggle returns the other shape.
func (s Shape) Toggle() Shape {
	if s == Elliptical {
		return Rectangular
	}
	return Elliptical
}

// ParseShape accepts rect/rectangle/square and ellipse/circle/round.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rect", "rectangle", "rectangular", "square":
		return Rectangular, nil
	case "ellipse", "elliptical", "circle", "round":
		return Elliptical, nil
	}
	return Rectangular, fmt.Errorf("unknown shape %q", s)
}

// OutputSize is the pixel size Rasterize produces for r.
func OutputSize(r geom.Rect) image.Point {
	return image.Pt(int(math.Round(r.Width)), int(math.Round(r.Height)))
}

// Rasterize copies the block of src covered by r, given in source pixel
// space, onto a new canvas of the rounded size of r. Parts of r outside src
// stay transparent. Elliptical crops are masked to a circle of radius
// min(w,h)/2 centred on the canvas.
func Rasterize(src image.Image, r geom.Rect, shape Shape) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("rasterize: no source image: %w", ErrInvalidRegion)
	}
	size := OutputSize(r)
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("rasterize %v: %w", r, ErrInvalidRegion)
	}

	b := src.Bounds()
	origin := image.Pt(int(math.Round(r.X)), int(math.Round(r.Y))).Add(b.Min)
	want := image.Rectangle{Min: origin, Max: origin.Add(size)}

	out := imaging.New(size.X, size.Y, color.NRGBA{})
	if overlap := want.Intersect(b); !overlap.Empty() {
		block := imaging.Crop(src, overlap)
		out = imaging.Paste(out, block, overlap.Min.Sub(origin))
	}

	if shape == Elliptical {
		applyMask(out, CircleMask(size.X, size.Y))
	}
	return out, nil
}

// CircleMask returns an antialiased w×h alpha mask holding a filled circle
// of radius min(w,h)/2 at the centre.
func CircleMask(w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return mask
	}
	cx, cy := float32(w)/2, float32(h)/2
	rad := float32(math.Min(float64(w), float64(h))) / 2

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	circlePath(z, cx, cy, rad)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// kappa places cubic control points so four arcs approximate a circle.
const kappa = 0.5522847498

func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// applyMask scales each pixel's alpha by the mask. img and mask share
// bounds. NRGBA is not premultiplied so colour channels stay as they are.
func applyMask(img *image.NRGBA, mask *image.Alpha) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := mask.AlphaAt(x, y).A
			if m == 0xff {
				continue
			}
			i := img.PixOffset(x, y) + 3
			img.Pix[i] = uint8(uint32(img.Pix[i]) * uint32(m) / 0xff)
		}
	}
}
