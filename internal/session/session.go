// Package session drives one cropping session: it feeds pointer, resize and
// selection events into a crop.Region and runs the preview and commit flow
// through the rasterizer.
package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/raster"
)

var (
	// ErrNoPreview is returned by Discard and Accept outside preview mode.
	ErrNoPreview = errors.New("no preview pending")
	// ErrClosed is returned once a session has been committed or cancelled.
	ErrClosed = errors.New("session closed")
)

// Mode is the session's position in the edit, preview, commit flow.
type Mode int

const (
	Editing Mode = iota
	Previewing
	Closed
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Previewing:
		return "previewing"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Result is a rasterized crop.
type Result struct {
	Image *image.NRGBA
	Shape raster.Shape
	// Source is the crop box in source pixel space.
	Source geom.Rect
}

// Round reports whether the result carries a circular mask.
func (r *Result) Round() bool { return r.Shape == raster.Elliptical }

// View is a read-only snapshot for rendering.
type View struct {
	Mode      Mode
	Rect      geom.Rect
	Placed    bool
	Shape     raster.Shape
	Aspect    crop.AspectRatio
	Handle    crop.Handle
	Dragging  bool
	Container geom.Size
	ImageSize geom.Size
	Radius    float64
}

// Session is single-threaded; every call must come from the goroutine that
// delivers input events.
type Session struct {
	log     *slog.Logger
	region  *crop.Region
	src     image.Image
	shape   raster.Shape
	mode    Mode
	preview *Result
	result  *Result
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.log = l } }

// WithShape sets the initial crop shape.
func WithShape(sh raster.Shape) Option { return func(s *Session) { s.shape = sh } }

// WithRegion configures the underlying crop region.
func WithRegion(opts ...crop.Option) Option {
	return func(s *Session) { s.region = crop.NewRegion(opts...) }
}

// New returns an editing session with no image.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.region == nil {
		s.region = crop.NewRegion()
	}
	return s
}

// Load installs a decoded source image and starts a fresh edit. The crop box
// appears once the container size is known.
func (s *Session) Load(img image.Image) {
	s.src = img
	s.preview = nil
	s.result = nil
	s.mode = Editing
	var size geom.Size
	if img != nil {
		size = geom.SizeOf(img.Bounds())
	}
	s.region.LoadImage(size)
	s.log.Info("image loaded", "size", size.String())
}

// Source returns the loaded image.
func (s *Session) Source() image.Image { return s.src }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// Shape returns the selected crop shape.
func (s *Session) Shape() raster.Shape { return s.shape }

// Rect returns the crop box in display space.
func (s *Session) Rect() geom.Rect { return s.region.Rect() }

// Aspect returns the selected aspect ratio.
func (s *Session) Aspect() crop.AspectRatio { return s.region.Aspect() }

// Preview returns the pending preview, if any.
func (s *Session) Preview() *Result { return s.preview }

// Result returns the committed crop, if any.
func (s *Session) Result() *Result { return s.result }

// View snapshots the state a renderer needs.
func (s *Session) View() View {
	return View{
		Mode:      s.mode,
		Rect:      s.region.Rect(),
		Placed:    s.region.Placed(),
		Shape:     s.shape,
		Aspect:    s.region.Aspect(),
		Handle:    s.region.ActiveHandle(),
		Dragging:  s.region.State() == crop.Dragging,
		Container: s.region.Container(),
		ImageSize: s.region.ImageSize(),
		Radius:    s.region.HandleRadius(),
	}
}

// Pointer feeds one pointer event to the crop region. Pointer input is
// ignored outside editing mode. A returned error means the drag was aborted.
func (s *Session) Pointer(ev crop.PointerEvent) error {
	if s.mode != Editing {
		return nil
	}
	was := s.region.State()
	err := s.region.Handle(ev)
	if err != nil {
		s.log.Warn("drag aborted", "event", ev.Kind.String(), "err", err)
		return err
	}
	switch now := s.region.State(); {
	case was == crop.Idle && now == crop.Dragging:
		s.log.Debug("drag start", "handle", s.region.ActiveHandle().String(), "pos", ev.Pos.String())
	case was == crop.Dragging && now == crop.Idle:
		s.log.Debug("drag end", "event", ev.Kind.String(), "rect", s.region.Rect().String())
	}
	return nil
}

// Grab starts a drag on the handle called name with p as the anchor,
// bypassing the hit test. An unknown name aborts any drag in progress and
// returns an error wrapping crop.ErrInvalidHandle.
func (s *Session) Grab(name string, p geom.Point) error {
	if s.mode != Editing {
		return nil
	}
	h, err := crop.ParseHandle(name)
	if err == nil {
		err = s.region.BeginHandle(h, p)
	}
	if err != nil {
		s.region.End()
		s.log.Warn("drag aborted", "handle", name, "err", err)
		return err
	}
	s.log.Debug("drag start", "handle", h.String(), "pos", p.String())
	return nil
}

// Resize reports a new container size.
func (s *Session) Resize(size geom.Size) {
	s.region.Resize(size)
}

// SetAspect selects an aspect ratio. It is ignored once the session is
// closed.
func (s *Session) SetAspect(a crop.AspectRatio) {
	if s.mode == Closed {
		return
	}
	s.region.SetAspect(a)
	s.log.Debug("aspect", "ratio", a.String(), "rect", s.region.Rect().String())
}

// SetShape selects the crop shape. The box is left untouched.
func (s *Session) SetShape(sh raster.Shape) {
	if s.mode == Closed {
		return
	}
	s.shape = sh
}

// ToggleShape switches between rectangular and elliptical crops.
func (s *Session) ToggleShape() raster.Shape {
	s.SetShape(s.shape.Toggle())
	return s.shape
}

// Render maps the current box to source space and rasterizes it without
// changing mode.
func (s *Session) Render() (*Result, error) {
	if s.src == nil {
		return nil, crop.ErrNotReady
	}
	src, err := s.region.SourceRect()
	if err != nil {
		return nil, err
	}
	img, err := raster.Rasterize(s.src, src, s.shape)
	if err != nil {
		return nil, err
	}
	return &Result{Image: img, Shape: s.shape, Source: src}, nil
}

// StartPreview renders the current box and enters preview mode. Any drag in
// progress ends.
func (s *Session) StartPreview() (*Result, error) {
	switch s.mode {
	case Closed:
		return nil, ErrClosed
	case Previewing:
		return s.preview, nil
	}
	res, err := s.Render()
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	s.region.End()
	s.preview = res
	s.mode = Previewing
	s.log.Info("preview", "source", res.Source.String(), "shape", res.Shape.String())
	return res, nil
}

// Discard drops the preview and returns to editing with the box unchanged.
func (s *Session) Discard() error {
	if s.mode != Previewing {
		return ErrNoPreview
	}
	s.preview = nil
	s.mode = Editing
	s.log.Info("preview discarded")
	return nil
}

// Accept commits the pending preview.
func (s *Session) Accept() (*Result, error) {
	if s.mode != Previewing {
		if s.mode == Closed {
			return nil, ErrClosed
		}
		return nil, ErrNoPreview
	}
	return s.finish(s.preview), nil
}

// Commit finalises the crop. In preview mode it accepts the preview;
// otherwise it renders the current box directly.
func (s *Session) Commit() (*Result, error) {
	switch s.mode {
	case Closed:
		return nil, ErrClosed
	case Previewing:
		return s.Accept()
	}
	res, err := s.Render()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.finish(res), nil
}

// Cancel ends the session without a result.
func (s *Session) Cancel() {
	if s.mode == Closed {
		return
	}
	s.preview = nil
	s.mode = Closed
	s.region.Reset()
	s.log.Info("cancelled")
}

func (s *Session) finish(res *Result) *Result {
	s.result = res
	s.preview = nil
	s.mode = Closed
	s.region.Reset()
	b := res.Image.Bounds()
	s.log.Info("committed", "width", b.Dx(), "height", b.Dy(), "shape", res.Shape.String())
	return res
}
