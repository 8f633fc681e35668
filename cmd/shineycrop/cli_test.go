package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/shineycrop/internal/config"
	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/imageio"
)

func newTestRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &root{
		program:  "shineycrop",
		config:   config.New(),
		logLevel: "error",
		stdout:   &out,
		stderr:   &bytes.Buffer{},
	}, &out
}

func writeSource(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 0x80, 0xff})
		}
	}
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := imageio.Save(path, img); err != nil {
		t.Fatalf("save source: %v", err)
	}
	return path
}

func loadSize(t *testing.T, path string) image.Point {
	t.Helper()
	img, err := imageio.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return img.Bounds().Size()
}

func TestParseCropRequiresInput(t *testing.T) {
	r, _ := newTestRoot(t)
	_, err := parseCropCmd(nil, r)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Usage: shineycrop crop") {
		t.Fatalf("help text %q", uerr.Error())
	}
}

func TestParseCropClipboardRequiresOutput(t *testing.T) {
	r, _ := newTestRoot(t)
	_, err := parseCropCmd([]string{"-from-clipboard"}, r)
	if err == nil || !strings.Contains(err.Error(), "output file is required") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCropRectInSourceSpace(t *testing.T) {
	r, out := newTestRoot(t)
	src := writeSource(t, 200, 100)
	dst := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseCropCmd([]string{"-rect", "10,10,50,40", "-o", dst, src}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := loadSize(t, dst); got != image.Pt(50, 40) {
		t.Fatalf("output size %v", got)
	}
	if !strings.Contains(out.String(), "saved "+dst) {
		t.Fatalf("stdout %q", out.String())
	}
}

func TestCropRectInViewSpace(t *testing.T) {
	r, _ := newTestRoot(t)
	src := writeSource(t, 200, 100)
	dst := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseCropCmd([]string{"-rect", "10,10,20,20", "-view", "100x50", "-shape", "ellipse", "-o", dst, src}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := imageio.Load(dst)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(40, 40) {
		t.Fatalf("output size %v", got)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("round crop corner alpha %d", a)
	}
}

func TestCropDefaultBoxUsesAspect(t *testing.T) {
	r, _ := newTestRoot(t)
	src := writeSource(t, 200, 100)
	dst := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseCropCmd([]string{"-aspect", "16:9", "-o", dst, src}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	// 80% of the height limits the box: 80 high, 142.2 wide.
	if got := loadSize(t, dst); got != image.Pt(142, 80) {
		t.Fatalf("output size %v", got)
	}
}

func TestCropDefaultOutputUsesSaveDir(t *testing.T) {
	r, _ := newTestRoot(t)
	r.config.SaveDir = t.TempDir()
	src := writeSource(t, 100, 100)
	cmd, err := parseCropCmd([]string{"-rect", "0,0,10,10", src}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := loadSize(t, filepath.Join(r.config.SaveDir, "photo-crop.png")); got != image.Pt(10, 10) {
		t.Fatalf("output size %v", got)
	}
}

func TestCropCopyUsesClipboard(t *testing.T) {
	var copied image.Image
	prev := writeClipboardImageFn
	writeClipboardImageFn = func(img image.Image) error { copied = img; return nil }
	t.Cleanup(func() { writeClipboardImageFn = prev })

	r, out := newTestRoot(t)
	src := writeSource(t, 100, 100)
	cmd, err := parseCropCmd([]string{"-rect", "5,5,30,20", "-copy", src}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if copied == nil || copied.Bounds().Size() != image.Pt(30, 20) {
		t.Fatalf("copied %v", copied)
	}
	if strings.Contains(out.String(), "saved") {
		t.Fatalf("copy-only crop was saved: %q", out.String())
	}
}

func TestCropClipboardReadError(t *testing.T) {
	sentinel := errors.New("no display")
	prev := readClipboardImageFn
	readClipboardImageFn = func() (image.Image, error) { return nil, sentinel }
	t.Cleanup(func() { readClipboardImageFn = prev })

	r, _ := newTestRoot(t)
	cmd, err := parseCropCmd([]string{"-from-clipboard", "-copy"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}

func TestParseRectAndSize(t *testing.T) {
	if _, err := parseRect("1,2,3"); err == nil {
		t.Fatal("short rect accepted")
	}
	if _, err := parseRect("1,2,0,4"); err == nil {
		t.Fatal("empty rect accepted")
	}
	if s, err := parseSize("640x480"); err != nil || s.Width != 640 || s.Height != 480 {
		t.Fatalf("size %v %v", s, err)
	}
}

func TestInteractiveScript(t *testing.T) {
	r, out := newTestRoot(t)
	src := writeSource(t, 800, 600)
	dst := filepath.Join(t.TempDir(), "result.png")
	r.stdin = strings.NewReader(strings.Join([]string{
		"view 400 300",
		"down 320 270",
		"move 340 280",
		"up 340 280",
		"shape ellipse",
		"shape rect",
		"status",
		"preview",
		"discard",
		"apply " + dst,
		"status",
	}, "\n"))
	cmd, err := parseInteractiveCmd([]string{"-aspect", "free", src}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"rect {x:80 y:30 w:240 h:240} source {x:160 y:60 w:480 h:480}",
		"rect {x:80 y:30 w:260 h:250} source {x:160 y:60 w:520 h:500}",
		"preview 520x500 rect",
		"saved " + dst,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if size := loadSize(t, dst); size != image.Pt(520, 500) {
		t.Fatalf("result size %v", size)
	}
}

func TestInteractiveExecReportsErrors(t *testing.T) {
	r, _ := newTestRoot(t)
	cmd, err := parseInteractiveCmd([]string{"-e", "view 100 100", "-e", "bogus"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}

	cmd, _ = parseInteractiveCmd([]string{"-e", "apply"}, r)
	if err := cmd.Run(); !errors.Is(err, errNoImage) {
		t.Fatalf("expected errNoImage, got %v", err)
	}
}

func TestInteractiveGrabNamedHandle(t *testing.T) {
	r, out := newTestRoot(t)
	src := writeSource(t, 800, 600)
	cmd, err := parseInteractiveCmd([]string{
		"-aspect", "free",
		"-e", "view 400 300",
		"-e", "grab bottom-right 200 150",
		"-e", "move 220 160",
		"-e", "up 220 160",
		src,
	}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "rect {x:80 y:30 w:260 h:250}"; !strings.Contains(out.String(), want) {
		t.Fatalf("output missing %q:\n%s", want, out.String())
	}
}

func TestInteractiveGrabUnknownHandleAbortsDrag(t *testing.T) {
	r, _ := newTestRoot(t)
	src := writeSource(t, 800, 600)
	cmd, err := parseInteractiveCmd([]string{
		"-e", "view 400 300",
		"-e", "down 200 150",
		"-e", "grab diagonal 200 150",
		src,
	}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, crop.ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
	if v := cmd.sess.View(); v.Dragging || v.Handle != crop.HandleNone {
		t.Fatalf("drag still active after unknown handle: %+v", v)
	}

	if _, err := cmd.executeLine("grab top-left 1"); err == nil || !strings.Contains(err.Error(), "usage: grab") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRatiosListsPresets(t *testing.T) {
	r, out := newTestRoot(t)
	if err := r.dispatch("ratios", nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 8 || !strings.HasPrefix(lines[0], "1\t1:1") || lines[7] != "8\tFree" {
		t.Fatalf("ratios output %q", out.String())
	}
}

func TestHelpTemplatesRender(t *testing.T) {
	r, _ := newTestRoot(t)
	r.fs = newRoot().fs
	edit, _ := parseEditCmd([]string{"x.png"}, r)
	cropHelp, _ := parseCropCmd([]string{"x.png"}, r)
	inter, _ := parseInteractiveCmd(nil, r)
	ratios, _ := parseRatiosCmd(nil, r)
	themes, _ := parseThemesCmd(nil, r)
	cfg, _ := parseConfigCmd(nil, r)
	for _, h := range []HelpData{r, edit, cropHelp, inter, ratios, themes, cfg, &versionCmd{root: r}} {
		text := (&UsageError{of: h}).Error()
		if !strings.HasPrefix(text, "Usage: shineycrop") {
			t.Errorf("%s: help %q", h.Template(), text)
		}
	}
}
