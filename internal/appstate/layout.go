package appstate

import (
	"image"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/render"
)

const (
	maxWindowWidth  = 1280
	maxWindowHeight = 900
	minWindowWidth  = 320
	minWindowHeight = 240
)

// layout splits a window into the image view and the status bar. The view
// keeps the image aspect and is centred in the space above the bar.
func layout(img image.Point, width, height int) (view, status image.Rectangle) {
	top := max(height-render.StatusHeight, 0)
	status = image.Rect(0, top, width, height)
	canvas := image.Rect(0, 0, width, top)
	view = geom.Fit(geom.Size{Width: float64(img.X), Height: float64(img.Y)}, canvas)
	return view, status
}

// windowSize picks an initial window that shows img at most 1:1 while
// staying on a typical screen.
func windowSize(img image.Point) image.Point {
	if img.X <= 0 || img.Y <= 0 {
		return image.Pt(640, 480+render.StatusHeight)
	}
	bounds := image.Rect(0, 0, maxWindowWidth, maxWindowHeight-render.StatusHeight)
	var fit image.Rectangle
	if img.X > bounds.Dx() || img.Y > bounds.Dy() {
		fit = geom.Fit(geom.Size{Width: float64(img.X), Height: float64(img.Y)}, bounds)
	} else {
		fit = image.Rectangle{Max: img}
	}
	return image.Pt(max(fit.Dx(), minWindowWidth), max(fit.Dy(), minWindowHeight)+render.StatusHeight)
}

// pointerEvent translates a window mouse event into view coordinates.
// Motion outside the window is reported as a leave. Buttons other than the
// primary one are ignored.
func pointerEvent(e mouse.Event, view image.Rectangle, window image.Point) (crop.PointerEvent, bool) {
	pos := geom.Pt(float64(e.X)-float64(view.Min.X), float64(e.Y)-float64(view.Min.Y))
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return crop.PointerEvent{}, false
		}
		return crop.PointerEvent{Kind: crop.PointerDown, Pos: pos}, true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return crop.PointerEvent{}, false
		}
		return crop.PointerEvent{Kind: crop.PointerUp, Pos: pos}, true
	case mouse.DirNone:
		if e.X < 0 || e.Y < 0 || int(e.X) >= window.X || int(e.Y) >= window.Y {
			return crop.PointerEvent{Kind: crop.PointerLeave, Pos: pos}, true
		}
		return crop.PointerEvent{Kind: crop.PointerMove, Pos: pos}, true
	}
	return crop.PointerEvent{}, false
}
