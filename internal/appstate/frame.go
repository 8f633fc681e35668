package appstate

import (
	"context"
	"image"
	"log"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/shineycrop/internal/render"
	"github.com/example/shineycrop/internal/session"
	"github.com/example/shineycrop/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

type paintState struct {
	width, height int
	view          image.Rectangle
	status        image.Rectangle
	src           image.Image
	preview       image.Image
	v             session.View
	text          string
}

// paintInto draws st into dst. It stops early once ctx is cancelled.
func paintInto(ctx context.Context, dst *image.RGBA, st paintState, th *theme.Theme) {
	canvas := image.Rect(0, 0, st.width, st.status.Min.Y)
	if st.preview != nil {
		render.Preview(dst, canvas, st.preview, th)
	} else {
		render.Editor(dst, st.view, st.src, st.v, th)
	}
	if ctx.Err() != nil {
		return
	}
	render.Status(dst, st.status, st.text, th)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, th *theme.Theme) {
	if st.width <= 0 || st.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	paintInto(ctx, b.RGBA(), st, th)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
