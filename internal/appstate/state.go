// Package appstate runs the interactive crop window.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/shineycrop/internal/session"
	"github.com/example/shineycrop/internal/theme"
)

// AppState holds application configuration for the UI.
type AppState struct {
	Session *session.Session
	Theme   *theme.Theme
	Title   string

	copy     func(image.Image) error
	paste    func() (image.Image, error)
	onResult func(*session.Result)

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the session edited by the window. Its image must already
// be loaded.
func WithSession(s *session.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the colours used to draw the editor.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithClipboard wires Ctrl+C and Ctrl+V.
func WithClipboard(copyFn func(image.Image) error, pasteFn func() (image.Image, error)) Option {
	return func(a *AppState) {
		a.copy = copyFn
		a.paste = pasteFn
	}
}

// WithOnResult registers a callback for the accepted crop. It runs on the
// UI goroutine before the window closes.
func WithOnResult(fn func(*session.Result)) Option { return func(a *AppState) { a.onResult = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{Title: "ShineyCrop"}
	for _, o := range opts {
		o(a)
	}
	if a.Session == nil {
		a.Session = session.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) controller() *controller {
	return &controller{
		sess:     a.Session,
		now:      time.Now,
		copy:     a.copy,
		paste:    a.paste,
		onResult: a.onResult,
	}
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on s until the session finishes or the window is
// closed.
func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()
	c := a.controller()

	initial := windowSize(c.imageSize())
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: initial.X, Height: initial.Y, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	// Deferred after Release so it runs first: no frame may touch w once it
	// is released.
	p := newPainter(func(ctx context.Context, st paintState) {
		drawFrame(ctx, s, w, st, a.Theme)
	})
	defer p.close()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				p.stop()
				if c.sess.Mode() != session.Closed {
					c.sess.Cancel()
				}
				return
			}
		case size.Event:
			c.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			p.request(c.snapshot())
		case mouse.Event:
			if c.mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			if c.key(e) {
				p.stop()
				return
			}
			w.Send(paint.Event{})
		case error:
			log.Print(e)
		}
	}
}
