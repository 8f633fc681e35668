package appstate

import (
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/session"
)

func press(code key.Code, r rune, mods key.Modifiers) key.Event {
	return key.Event{Code: code, Rune: r, Modifiers: mods, Direction: key.DirPress}
}

func newController(t *testing.T) (*controller, *[]*session.Result) {
	t.Helper()
	var results []*session.Result
	sess := session.New()
	sess.Load(image.NewNRGBA(image.Rect(0, 0, 800, 600)))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &controller{
		sess:     sess,
		now:      func() time.Time { return now },
		onResult: func(r *session.Result) { results = append(results, r) },
	}
	c.resize(400, 320)
	return c, &results
}

func TestLayout(t *testing.T) {
	view, status := layout(image.Pt(800, 600), 400, 320)
	if view != image.Rect(0, 0, 400, 300) || status != image.Rect(0, 300, 400, 320) {
		t.Fatalf("view %v status %v", view, status)
	}
	view, _ = layout(image.Pt(800, 600), 500, 320)
	if view != image.Rect(50, 0, 450, 300) {
		t.Fatalf("letterboxed view %v", view)
	}
	if view, _ = layout(image.Point{}, 500, 320); !view.Empty() {
		t.Fatalf("view without image %v", view)
	}
}

func TestWindowSize(t *testing.T) {
	if got := windowSize(image.Pt(200, 100)); got != image.Pt(320, 260) {
		t.Fatalf("small image window %v", got)
	}
	if got := windowSize(image.Pt(2560, 1440)); got != image.Pt(1280, 740) {
		t.Fatalf("large image window %v", got)
	}
}

func TestPointerEvent(t *testing.T) {
	view := image.Rect(50, 0, 450, 300)
	win := image.Pt(500, 320)
	ev, ok := pointerEvent(mouse.Event{X: 150, Y: 40, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, view, win)
	if !ok || ev.Kind != crop.PointerDown || ev.Pos != geom.Pt(100, 40) {
		t.Fatalf("press mapped to %+v %v", ev, ok)
	}
	if _, ok := pointerEvent(mouse.Event{X: 150, Y: 40, Button: mouse.ButtonRight, Direction: mouse.DirPress}, view, win); ok {
		t.Fatal("right button should be ignored")
	}
	ev, _ = pointerEvent(mouse.Event{X: 60, Y: 10}, view, win)
	if ev.Kind != crop.PointerMove {
		t.Fatalf("motion mapped to %v", ev.Kind)
	}
	ev, _ = pointerEvent(mouse.Event{X: -1, Y: 10}, view, win)
	if ev.Kind != crop.PointerLeave {
		t.Fatalf("motion outside mapped to %v", ev.Kind)
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		ev   key.Event
		want action
	}{
		{press(key.CodeReturnEnter, 0, 0), actionConfirm},
		{press(key.CodeReturnEnter, 0, key.ModControl), actionCommit},
		{press(key.CodeEscape, 0, 0), actionBack},
		{press(key.CodeDeleteBackspace, 0, 0), actionBack},
		{press(0, 's', 0), actionShape},
		{press(0, 'c', key.ModControl), actionCopy},
		{press(0, 'c', 0), actionNone},
		{key.Event{Code: key.CodeReturnEnter, Direction: key.DirRelease}, actionNone},
	}
	for _, tc := range cases {
		if got := lookup(tc.ev).action; got != tc.want {
			t.Errorf("%+v: got %v, want %v", tc.ev, got, tc.want)
		}
	}
	b := lookup(press(0, '3', 0))
	if b.action != actionAspect || crop.Presets[b.preset].Label != "3:4" {
		t.Fatalf("digit 3 bound to %+v", b)
	}
}

func TestControllerPreviewThenAccept(t *testing.T) {
	c, results := newController(t)
	if done := c.key(press(key.CodeReturnEnter, 0, 0)); done {
		t.Fatal("preview should not close the window")
	}
	if c.sess.Mode() != session.Previewing {
		t.Fatalf("mode %v", c.sess.Mode())
	}
	if st := c.snapshot(); st.preview == nil {
		t.Fatal("snapshot lacks preview")
	}
	if done := c.key(press(key.CodeReturnEnter, 0, 0)); !done {
		t.Fatal("accept should close the window")
	}
	if len(*results) != 1 {
		t.Fatalf("got %d results", len(*results))
	}
	if got := (*results)[0].Image.Bounds().Size(); got != image.Pt(480, 480) {
		t.Fatalf("result size %v", got)
	}
}

func TestControllerBackDiscardsThenCancels(t *testing.T) {
	c, results := newController(t)
	c.key(press(key.CodeReturnEnter, 0, 0))
	if done := c.key(press(key.CodeEscape, 0, 0)); done {
		t.Fatal("discard should not close the window")
	}
	if c.sess.Mode() != session.Editing {
		t.Fatalf("mode %v after discard", c.sess.Mode())
	}
	if done := c.key(press(key.CodeEscape, 0, 0)); !done {
		t.Fatal("escape while editing should close")
	}
	if c.sess.Mode() != session.Closed || len(*results) != 0 {
		t.Fatalf("mode %v results %d", c.sess.Mode(), len(*results))
	}
}

func TestControllerDrag(t *testing.T) {
	c, _ := newController(t)
	c.key(press(0, '8', 0)) // free
	start := c.sess.Rect()
	if !start.ApproxEqual(geom.R(80, 30, 240, 240), 1e-9) {
		t.Fatalf("start rect %v", start)
	}
	c.mouse(mouse.Event{X: 320, Y: 270, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if !c.snapshot().v.Dragging {
		t.Fatal("expected drag after press on corner")
	}
	c.mouse(mouse.Event{X: 340, Y: 280})
	c.mouse(mouse.Event{X: 340, Y: 280, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if got := c.sess.Rect(); !got.ApproxEqual(geom.R(80, 30, 260, 250), 1e-9) {
		t.Fatalf("rect after drag %v", got)
	}
}

func TestControllerShapeAndMessages(t *testing.T) {
	c, _ := newController(t)
	c.key(press(0, 's', 0))
	st := c.snapshot()
	if st.text != "shape: ellipse" {
		t.Fatalf("status %q", st.text)
	}
	c.messageUntil = c.now().Add(-time.Second)
	if st := c.snapshot(); !strings.Contains(st.text, "editing") {
		t.Fatalf("expired message still shown: %q", st.text)
	}
}

func TestControllerCopyAndPaste(t *testing.T) {
	c, _ := newController(t)
	var copied image.Image
	c.copy = func(img image.Image) error { copied = img; return nil }
	c.paste = func() (image.Image, error) { return image.NewNRGBA(image.Rect(0, 0, 300, 300)), nil }

	c.key(press(0, 'c', key.ModControl))
	if copied == nil || copied.Bounds().Size() != image.Pt(480, 480) {
		t.Fatalf("copied %v", copied)
	}
	if c.sess.Mode() != session.Editing {
		t.Fatalf("copy changed mode to %v", c.sess.Mode())
	}

	c.key(press(0, 'v', key.ModControl))
	if got := c.sess.Source().Bounds().Size(); got != image.Pt(300, 300) {
		t.Fatalf("source after paste %v", got)
	}
	if c.view != image.Rect(50, 0, 350, 300) {
		t.Fatalf("view after paste %v", c.view)
	}

	c.paste = func() (image.Image, error) { return nil, errors.New("empty") }
	c.key(press(0, 'v', key.ModControl))
	if !strings.HasPrefix(c.snapshot().text, "paste:") {
		t.Fatalf("paste failure not reported: %q", c.snapshot().text)
	}
}
