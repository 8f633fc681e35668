package notify

import (
	"errors"
	"image"
	"os"
	"testing"

	"github.com/example/shineycrop/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDisabledByDefault(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Crop("photo.png", nil)
	n.Save("out.png")
	n.Copy("")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %d", len(*got))
	}
}

func TestCropAttachesPreview(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCrop, true)
	n.Crop("400x300", image.NewNRGBA(image.Rect(0, 0, 4, 3)))
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != "ShineyCrop" || s.body != "Cropped 400x300" {
		t.Fatalf("unexpected notification %+v", s)
	}
	if !s.iconExisted {
		t.Fatal("preview icon missing while notifying")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview icon not cleaned up: %v", err)
	}
}

func TestCopyDefaultsDetail(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("  ")
	if len(*got) != 1 || (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SHINEYCROP_NOTIFY_TITLE", "Cropper")
	t.Setenv("SHINEYCROP_NOTIFY_SAVE_TEXT", "Wrote %s")
	t.Setenv("SHINEYCROP_NOTIFY_COPY_TEXT", "On the clipboard")
	prefs := LoadPreferences()
	if prefs.Title != "Cropper" {
		t.Fatalf("title %q", prefs.Title)
	}
	n := New(prefs)
	if got := n.body(EventSave, "a.png"); got != "Wrote a.png" {
		t.Fatalf("save body %q", got)
	}
	if got := n.body(EventCopy, "x"); got != "On the clipboard" {
		t.Fatalf("copy body %q", got)
	}
	if got := n.body(EventCrop, "x"); got != "Cropped x" {
		t.Fatalf("crop body %q", got)
	}
}

func TestSendErrorIsSwallowed(t *testing.T) {
	prev := send
	send = func(string, string, platform.Options) error { return errors.New("no bus") }
	t.Cleanup(func() { send = prev })
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save("missing.png")
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Enable(EventCrop, true)
	n.Crop("x", nil)
	if n.Enabled(EventCrop) {
		t.Fatal("nil notifier reported enabled")
	}
}
