package appstate

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/render"
	"github.com/example/shineycrop/internal/session"
)

const messageDuration = 2 * time.Second

// controller turns window input into session calls. It owns no window so it
// can be driven directly in tests.
type controller struct {
	sess   *session.Session
	width  int
	height int
	view   image.Rectangle
	status image.Rectangle

	message      string
	messageUntil time.Time

	now      func() time.Time
	copy     func(image.Image) error
	paste    func() (image.Image, error)
	onResult func(*session.Result)
}

func (c *controller) say(format string, args ...any) {
	c.message = fmt.Sprintf(format, args...)
	c.messageUntil = c.now().Add(messageDuration)
	log.Print(c.message)
}

func (c *controller) imageSize() image.Point {
	if src := c.sess.Source(); src != nil {
		return src.Bounds().Size()
	}
	return image.Point{}
}

// resize lays out the window and reports the new view size to the session.
func (c *controller) resize(width, height int) {
	c.width, c.height = width, height
	c.view, c.status = layout(c.imageSize(), width, height)
	if err := c.sess.Dispatch(session.ResizeEvent(geom.SizeOf(c.view))); err != nil {
		log.Printf("resize: %v", err)
	}
}

// mouse forwards pointer input. It reports whether a repaint is needed.
func (c *controller) mouse(e mouse.Event) bool {
	if e.Direction == mouse.DirPress && c.message != "" && c.now().Before(c.messageUntil) {
		c.messageUntil = time.Time{}
	}
	ev, ok := pointerEvent(e, c.view, image.Pt(c.width, c.height))
	if !ok {
		return false
	}
	before := c.sess.View()
	if err := c.sess.Dispatch(session.PointerEvent(ev)); err != nil {
		c.say("drag cancelled: %v", err)
		return true
	}
	after := c.sess.View()
	return before.Rect != after.Rect || before.Dragging != after.Dragging || ev.Kind != crop.PointerMove
}

// key handles one key event. done reports that the session has finished and
// the window should close.
func (c *controller) key(e key.Event) (done bool) {
	b := lookup(e)
	switch b.action {
	case actionConfirm:
		return c.confirm()
	case actionCommit:
		res, err := c.sess.Commit()
		if err != nil {
			c.say("commit: %v", err)
			return false
		}
		c.deliver(res)
		return true
	case actionBack:
		if c.sess.Mode() == session.Previewing {
			if err := c.sess.Discard(); err != nil {
				c.say("discard: %v", err)
			}
			return false
		}
		c.sess.Cancel()
		return true
	case actionQuit:
		c.sess.Cancel()
		return true
	case actionShape:
		if c.sess.Mode() == session.Editing {
			c.say("shape: %s", c.sess.ToggleShape())
		}
	case actionAspect:
		if c.sess.Mode() == session.Editing {
			p := crop.Presets[b.preset]
			if err := c.sess.Dispatch(session.AspectEvent(p.Ratio)); err != nil {
				log.Printf("aspect: %v", err)
			}
			c.say("aspect: %s", p.Label)
		}
	case actionCopy:
		c.copyCurrent()
	case actionPaste:
		c.pasteSource()
	}
	return false
}

func (c *controller) confirm() bool {
	switch c.sess.Mode() {
	case session.Editing:
		if _, err := c.sess.StartPreview(); err != nil {
			c.say("preview: %v", err)
		}
		return false
	case session.Previewing:
		res, err := c.sess.Accept()
		if err != nil {
			c.say("accept: %v", err)
			return false
		}
		c.deliver(res)
		return true
	}
	return false
}

func (c *controller) deliver(res *session.Result) {
	if c.onResult != nil {
		c.onResult(res)
	}
}

func (c *controller) copyCurrent() {
	if c.copy == nil {
		return
	}
	var img image.Image
	if p := c.sess.Preview(); p != nil {
		img = p.Image
	} else {
		res, err := c.sess.Render()
		if err != nil {
			c.say("copy: %v", err)
			return
		}
		img = res.Image
	}
	if err := c.copy(img); err != nil {
		c.say("copy: %v", err)
		return
	}
	c.say("copied %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
}

func (c *controller) pasteSource() {
	if c.paste == nil || c.sess.Mode() != session.Editing {
		return
	}
	img, err := c.paste()
	if err != nil {
		c.say("paste: %v", err)
		return
	}
	if img == nil || img.Bounds().Empty() {
		c.say("paste: %v", errors.New("empty image"))
		return
	}
	c.sess.Load(img)
	c.resize(c.width, c.height)
	c.say("pasted %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
}

// snapshot captures everything a frame needs so painting can happen off the
// event goroutine.
func (c *controller) snapshot() paintState {
	v := c.sess.View()
	st := paintState{
		width:  c.width,
		height: c.height,
		view:   c.view,
		status: c.status,
		src:    c.sess.Source(),
		v:      v,
		text:   render.StatusText(v),
	}
	if p := c.sess.Preview(); p != nil {
		st.preview = p.Image
	}
	if c.message != "" && c.now().Before(c.messageUntil) {
		st.text = c.message
	}
	return st
}
