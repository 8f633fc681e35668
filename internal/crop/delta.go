package crop

import (
	"fmt"

	"github.com/example/shineycrop/internal/geom"
)

// MinSize is the default smallest width and height a drag may produce.
const MinSize = 50

// Limits are the constraints a drag update enforces.
type Limits struct {
	Container geom.Size
	MinSize   float64
	Aspect    AspectRatio
}

// ApplyDelta returns r after dragging handle h by delta. The steps run in a
// fixed order: raw delta, minimum size, aspect ratio, container bounds.
//
// The aspect step may leave the derived axis under MinSize, and the bounds
// step may break the ratio. Neither is corrected further.
func ApplyDelta(r geom.Rect, h Handle, delta geom.Point, lim Limits) (geom.Rect, error) {
	cw, ch := lim.Container.Width, lim.Container.Height
	if h == HandleMove {
		r.X = geom.Clamp(r.X+delta.X, 0, cw-r.Width)
		r.Y = geom.Clamp(r.Y+delta.Y, 0, ch-r.Height)
		return r, nil
	}
	rule, ok := ruleFor(h)
	if !ok {
		return r, fmt.Errorf("apply delta: %v: %w", h, ErrInvalidHandle)
	}
	orig := r
	r.X += rule.x * delta.X
	r.Width += rule.width * delta.X
	r.Y += rule.y * delta.Y
	r.Height += rule.height * delta.Y

	minSize := lim.MinSize
	if r.Width < minSize {
		r.Width = minSize
		if rule.left {
			r.X = orig.Right() - minSize
		}
	}
	if r.Height < minSize {
		r.Height = minSize
		if rule.top {
			r.Y = orig.Bottom() - minSize
		}
	}

	if ratio := float64(lim.Aspect); !lim.Aspect.IsFree() {
		if rule.vertical {
			r.Width = r.Height * ratio
			if rule.left {
				r.X = orig.Right() - r.Width
			}
		} else {
			r.Height = r.Width / ratio
			if rule.top {
				r.Y = orig.Bottom() - r.Height
			}
		}
	}

	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.Right() > cw {
		r.Width = cw - r.X
	}
	if r.Bottom() > ch {
		r.Height = ch - r.Y
	}
	return r, nil
}
