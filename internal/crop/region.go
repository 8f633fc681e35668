// Package crop implements the draggable, resizable and optionally
// aspect-locked crop box: the resize sign table, handle hit testing and the
// Region state machine that owns the current box.
package crop

import (
	"errors"
	"fmt"

	"github.com/example/shineycrop/internal/geom"
)

// ErrNotReady is returned by queries that need a loaded image and a measured
// container before either exists.
var ErrNotReady = errors.New("crop region not ready")

// State is the drag state of a Region.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// PointerKind enumerates the pointer and touch events a Region consumes.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	case PointerCancel:
		return "cancel"
	}
	return fmt.Sprintf("pointer(%d)", int(k))
}

// PointerEvent is a pointer or touch event in display space.
type PointerEvent struct {
	Kind PointerKind
	Pos  geom.Point
}

// Region owns the crop box for one session. It is not safe for concurrent
// use; all calls are expected on the goroutine delivering input events.
type Region struct {
	rect      geom.Rect
	placed    bool
	container geom.Size
	imageSize geom.Size

	aspect  AspectRatio
	bounds  Bounds
	fill    float64
	minSize float64
	radius  float64

	state  State
	handle Handle
	anchor geom.Point
}

// Option configures a Region.
type Option func(*Region)

// WithMinSize sets the smallest width and height a drag may produce.
func WithMinSize(v float64) Option { return func(r *Region) { r.minSize = v } }

// WithHandleRadius sets the grab distance around handle anchors.
func WithHandleRadius(v float64) Option { return func(r *Region) { r.radius = v } }

// WithAspect sets the initial aspect ratio.
func WithAspect(a AspectRatio) Option { return func(r *Region) { r.aspect = a } }

// WithBounds limits the size of default boxes.
func WithBounds(b Bounds) Option { return func(r *Region) { r.bounds = b } }

// WithFill sets the share of the container the default box spans.
func WithFill(f float64) Option { return func(r *Region) { r.fill = f } }

// NewRegion returns an idle Region with no box. A box is placed once both
// LoadImage and Resize have supplied measurable sizes.
func NewRegion(opts ...Option) *Region {
	r := &Region{
		aspect:  1,
		fill:    DefaultFill,
		minSize: MinSize,
		radius:  DefaultHandleRadius,
	}
	for _, o := range opts {
		o(r)
	}
	if r.minSize < 0 {
		r.minSize = 0
	}
	if r.radius <= 0 {
		r.radius = DefaultHandleRadius
	}
	return r
}

// Rect returns the current display-space box. It is the zero Rect until the
// region is placed.
func (r *Region) Rect() geom.Rect { return r.rect }

// Placed reports whether a box exists.
func (r *Region) Placed() bool { return r.placed }

// Ready reports whether an image is loaded and the container is measured.
func (r *Region) Ready() bool { return r.imageSize.Measurable() && r.container.Measurable() }

// State returns the drag state.
func (r *Region) State() State { return r.state }

// ActiveHandle returns the handle being dragged, or HandleNone when idle.
func (r *Region) ActiveHandle() Handle { return r.handle }

// Container returns the current viewport size.
func (r *Region) Container() geom.Size { return r.container }

// ImageSize returns the natural size of the loaded image.
func (r *Region) ImageSize() geom.Size { return r.imageSize }

// Aspect returns the active aspect ratio.
func (r *Region) Aspect() AspectRatio { return r.aspect }

// HandleRadius returns the grab distance used by hit testing.
func (r *Region) HandleRadius() float64 { return r.radius }

// Limits returns the constraints used for drag updates.
func (r *Region) Limits() Limits {
	return Limits{Container: r.container, MinSize: r.minSize, Aspect: r.aspect}
}

// LoadImage records the natural size of a newly decoded image and discards
// any existing box. A new default box is placed if the container is already
// measured.
func (r *Region) LoadImage(size geom.Size) {
	r.imageSize = size
	r.Reset()
	r.place()
}

// Reset discards the box and ends any drag.
func (r *Region) Reset() {
	r.rect = geom.Rect{}
	r.placed = false
	r.endDrag()
}

// Resize updates the container size. The first measurable size places the
// default box; later ones rescale the box proportionally. Unmeasurable sizes
// are ignored.
func (r *Region) Resize(next geom.Size) {
	if !next.Measurable() {
		return
	}
	prev := r.container
	r.container = next
	if !r.placed {
		r.place()
		return
	}
	if prev == next {
		return
	}
	rect, err := geom.RescaleOnResize(r.rect, prev, next)
	if err != nil {
		r.placed = false
		r.place()
		return
	}
	r.rect = rect
}

// SetAspect selects a new ratio. A non-free ratio re-derives the default box
// for that ratio, centred on the previous box's centre. Selecting Free keeps
// the box as it is.
func (r *Region) SetAspect(a AspectRatio) {
	if a < 0 {
		a = Free
	}
	r.aspect = a
	if !r.placed || !r.Ready() || a.IsFree() {
		return
	}
	center := r.rect.Center()
	area := DefaultArea(r.container, a, r.fill, r.bounds)
	r.rect = Recenter(area, center, r.container)
}

// HitTest reports which handle p would grab on the current box.
func (r *Region) HitTest(p geom.Point) Handle {
	if !r.placed {
		return HandleNone
	}
	return HitTest(p, r.rect, r.radius)
}

// Handle feeds one pointer event through the state machine. Leave and
// cancel are treated like up. An error means the drag was aborted.
func (r *Region) Handle(ev PointerEvent) error {
	switch ev.Kind {
	case PointerDown:
		r.Begin(ev.Pos)
		return nil
	case PointerMove:
		return r.Drag(ev.Pos)
	case PointerUp, PointerLeave, PointerCancel:
		r.endDrag()
		return nil
	}
	return fmt.Errorf("unknown pointer event %v", ev.Kind)
}

// Begin starts a drag if p grabs a handle or the box body, recording p as
// the drag anchor. It returns the grabbed handle.
func (r *Region) Begin(p geom.Point) Handle {
	h := r.HitTest(p)
	if h == HandleNone {
		r.endDrag()
		return h
	}
	r.state = Dragging
	r.handle = h
	r.anchor = p
	return h
}

// BeginHandle starts a drag on an explicitly chosen handle, as when the
// shell has its own widget for each handle.
func (r *Region) BeginHandle(h Handle, p geom.Point) error {
	if !r.placed {
		return ErrNotReady
	}
	if _, ok := ruleFor(h); !ok && h != HandleMove {
		r.endDrag()
		return fmt.Errorf("begin drag: %v: %w", h, ErrInvalidHandle)
	}
	r.state = Dragging
	r.handle = h
	r.anchor = p
	return nil
}

// Drag applies the movement since the last anchor to the box and makes p
// the new anchor, so deltas compound frame to frame. It is a no-op when idle
// or when the container is not measured.
func (r *Region) Drag(p geom.Point) error {
	if r.state != Dragging || !r.container.Measurable() {
		return nil
	}
	next, err := ApplyDelta(r.rect, r.handle, p.Sub(r.anchor), r.Limits())
	if err != nil {
		r.endDrag()
		return err
	}
	r.rect = next
	r.anchor = p
	return nil
}

// End finishes the current drag.
func (r *Region) End() { r.endDrag() }

func (r *Region) endDrag() {
	r.state = Idle
	r.handle = HandleNone
	r.anchor = geom.Point{}
}

// SourceRect maps the current box into source-image pixel space.
func (r *Region) SourceRect() (geom.Rect, error) {
	if !r.placed || !r.Ready() {
		return geom.Rect{}, ErrNotReady
	}
	return geom.ToSourceSpace(r.rect, r.imageSize, r.container)
}

func (r *Region) place() {
	if !r.Ready() {
		return
	}
	r.rect = DefaultArea(r.container, r.aspect, r.fill, r.bounds)
	r.placed = true
}
