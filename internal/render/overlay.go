// Package render draws the crop editor: the scaled source image, the dimmed
// surround, the crop box with its handles, and the preview frame.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/raster"
	"github.com/example/shineycrop/internal/session"
	"github.com/example/shineycrop/internal/theme"
)

// HandleSize is the side of a drawn handle square in pixels.
const HandleSize = 10

// StatusHeight is the height of the status line drawn by Status.
const StatusHeight = 20

const checkerSize = 8

// VisibleHandles returns the handles drawn for a shape. Round crops only show
// the four edge handles; every handle still responds to hit testing.
func VisibleHandles(shape raster.Shape) []crop.Handle {
	if shape == raster.Elliptical {
		return []crop.Handle{crop.HandleTopMiddle, crop.HandleBottomMiddle, crop.HandleMiddleLeft, crop.HandleMiddleRight}
	}
	return crop.ResizeHandles()
}

// HandleRect returns the square drawn for h on r, offset by origin.
func HandleRect(h crop.Handle, r geom.Rect, origin image.Point) (image.Rectangle, bool) {
	a, ok := crop.Anchor(h, r)
	if !ok {
		return image.Rectangle{}, false
	}
	x := int(math.Round(a.X)) + origin.X
	y := int(math.Round(a.Y)) + origin.Y
	hs := HandleSize / 2
	return image.Rect(x-hs, y-hs, x+hs, y+hs), true
}

// Editor draws one editor frame into dst. view is where the source image is
// shown; its size is the crop container.
func Editor(dst *image.RGBA, view image.Rectangle, src image.Image, v session.View, th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	drawCheckerboard(dst, view, checkerSize, th.CheckerLight, th.CheckerDark)
	if src != nil {
		xdraw.ApproxBiLinear.Scale(dst, view, src, src.Bounds(), draw.Over, nil)
	}
	if !v.Placed {
		return
	}

	r := v.Rect.Image().Add(view.Min)
	dimOutside(dst, view, r, th.Dim)

	w, h := r.Dx(), r.Dy()
	for i := 1; i <= 2; i++ {
		x := r.Min.X + w*i/3
		y := r.Min.Y + h*i/3
		blendLine(dst, x, r.Min.Y, x, r.Max.Y-1, th.Grid)
		blendLine(dst, r.Min.X, y, r.Max.X-1, y, th.Grid)
	}
	if v.Shape == raster.Elliptical {
		c := v.Rect.Center()
		rad := int(math.Min(v.Rect.Width, v.Rect.Height) / 2)
		drawCircleThin(dst, int(math.Round(c.X))+view.Min.X, int(math.Round(c.Y))+view.Min.Y, rad, th.Guide)
	}
	drawDashedRect(dst, r, 4, 2, th.Border, th.BorderAlt)

	for _, hd := range VisibleHandles(v.Shape) {
		hr, _ := HandleRect(hd, v.Rect, view.Min)
		col := th.Handle
		if v.Dragging && v.Handle == hd {
			col = th.HandleActive
		}
		draw.Draw(dst, hr, image.NewUniform(col), image.Point{}, draw.Src)
		drawRect(dst, hr, th.HandleBorder, 1)
	}
}

// dimOutside darkens the parts of view not covered by r.
func dimOutside(dst draw.Image, view, r image.Rectangle, col color.Color) {
	r = r.Intersect(view)
	fill(dst, image.Rect(view.Min.X, view.Min.Y, view.Max.X, r.Min.Y), col)
	fill(dst, image.Rect(view.Min.X, r.Max.Y, view.Max.X, view.Max.Y), col)
	fill(dst, image.Rect(view.Min.X, r.Min.Y, r.Min.X, r.Max.Y), col)
	fill(dst, image.Rect(r.Max.X, r.Min.Y, view.Max.X, r.Max.Y), col)
}

// Preview draws a rendered crop centred in area on the checkerboard with a
// drop shadow, scaled down if it does not fit.
func Preview(dst *image.RGBA, area image.Rectangle, res image.Image, th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if res == nil || res.Bounds().Empty() {
		return
	}
	opts := DefaultShadowOptions()
	pad := opts.Radius*2 + max(opts.Offset.X, opts.Offset.Y)
	inner := area.Inset(pad)
	if inner.Empty() {
		inner = area
	}
	target := previewRect(res.Bounds().Size(), inner)
	drawCheckerboard(dst, target, checkerSize, th.CheckerLight, th.CheckerDark)

	scaled := image.NewRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), res, res.Bounds(), draw.Src, nil)
	shadow := ApplyShadow(scaled, opts)
	if shadow.Image == nil {
		return
	}
	at := target.Min.Sub(shadow.Offset)
	draw.Draw(dst, shadow.Image.Bounds().Add(at), shadow.Image, image.Point{}, draw.Over)
}

// previewRect centres size in area, shrinking it to fit but never enlarging.
func previewRect(size image.Point, area image.Rectangle) image.Rectangle {
	if size.X <= area.Dx() && size.Y <= area.Dy() {
		origin := area.Min.Add(area.Size().Sub(size).Div(2))
		return image.Rectangle{Min: origin, Max: origin.Add(size)}
	}
	return geom.Fit(geom.Size{Width: float64(size.X), Height: float64(size.Y)}, area)
}

// StatusText summarises the view for the status line.
func StatusText(v session.View) string {
	if !v.Placed {
		return "waiting for image"
	}
	s := fmt.Sprintf("%s | %s | %.0fx%.0f at %.0f,%.0f", v.Mode, v.Shape, v.Rect.Width, v.Rect.Height, v.Rect.X, v.Rect.Y)
	s += " | aspect " + v.Aspect.String()
	if v.Dragging {
		s += " | " + v.Handle.String()
	}
	return s
}

// Status draws text on a bar filling area.
func Status(dst *image.RGBA, area image.Rectangle, text string, th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, area, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(th.Foreground),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	y := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	d.Dot = fixed.P(area.Min.X+6, y)
	d.DrawString(text)
}
