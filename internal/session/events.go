package session

import (
	"errors"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/raster"
)

// Event is anything Dispatch accepts.
type Event interface{ event() }

// PointerEvent is a pointer or touch event in display space.
type PointerEvent crop.PointerEvent

// ResizeEvent reports a new container size.
type ResizeEvent geom.Size

// AspectEvent selects an aspect ratio.
type AspectEvent crop.AspectRatio

// ShapeEvent selects a crop shape.
type ShapeEvent raster.Shape

func (PointerEvent) event() {}
func (ResizeEvent) event()  {}
func (AspectEvent) event()  {}
func (ShapeEvent) event()   {}

// Dispatch applies the events of one tick. Resizes go first so that an
// aspect change in the same tick sees the new container. Every event is
// applied; the returned error joins any drag aborts.
func (s *Session) Dispatch(evs ...Event) error {
	for _, ev := range evs {
		if r, ok := ev.(ResizeEvent); ok {
			s.Resize(geom.Size(r))
		}
	}
	var errs []error
	for _, ev := range evs {
		switch ev := ev.(type) {
		case PointerEvent:
			if err := s.Pointer(crop.PointerEvent(ev)); err != nil {
				errs = append(errs, err)
			}
		case AspectEvent:
			s.SetAspect(crop.AspectRatio(ev))
		case ShapeEvent:
			s.SetShape(raster.Shape(ev))
		}
	}
	return errors.Join(errs...)
}
