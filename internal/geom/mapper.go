package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a transform is asked to divide by a
// container or image that has not been measured yet.
var ErrInvalidState = errors.New("geometry not measurable")

// ToSourceSpace converts a display-space rectangle into source-image pixel
// space. Each axis is scaled independently by imageSize/containerSize. No
// rounding is applied.
func ToSourceSpace(r Rect, imageSize, container Size) (Rect, error) {
	if !container.Measurable() {
		return Rect{}, fmt.Errorf("to source space: container %v: %w", container, ErrInvalidState)
	}
	return r.Scale(imageSize.Width/container.Width, imageSize.Height/container.Height), nil
}

// ToDisplaySpace is the inverse of ToSourceSpace.
func ToDisplaySpace(r Rect, imageSize, container Size) (Rect, error) {
	if !imageSize.Measurable() {
		return Rect{}, fmt.Errorf("to display space: image %v: %w", imageSize, ErrInvalidState)
	}
	return r.Scale(container.Width/imageSize.Width, container.Height/imageSize.Height), nil
}

// RescaleOnResize rescales r after the container changed from prev to next.
// prev must be the size immediately before this resize; applying the same
// resize twice compounds the scale.
func RescaleOnResize(r Rect, prev, next Size) (Rect, error) {
	if !prev.Measurable() {
		return Rect{}, fmt.Errorf("rescale: previous container %v: %w", prev, ErrInvalidState)
	}
	return r.Scale(next.Width/prev.Width, next.Height/prev.Height), nil
}
