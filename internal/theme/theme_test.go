package theme

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
# comment
Name: Mine
Dim: #11223344
handleactive: #ABCDEF
Unknown: #000000
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Mine" {
		t.Errorf("Name = %q", th.Name)
	}
	if want := (color.RGBA{0x11, 0x22, 0x33, 0x44}); th.Dim != want {
		t.Errorf("Dim = %+v, want %+v", th.Dim, want)
	}
	if want := (color.RGBA{0xAB, 0xCD, 0xEF, 0xFF}); th.HandleActive != want {
		t.Errorf("HandleActive = %+v, want %+v", th.HandleActive, want)
	}
	if th.Border != Default().Border {
		t.Errorf("Border should keep its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Grid: red\n")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Parse(strings.NewReader("Grid: #12345\n")); err == nil {
		t.Fatal("expected error for short hex")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	src := Default()
	src.Grid = color.RGBA{1, 2, 3, 4}
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *got != *src {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", got, src)
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	names := EmbeddedNames()
	if len(names) < 3 {
		t.Fatalf("expected shipped themes, got %v", names)
	}
	l := &Loader{}
	for _, name := range names {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name == "" {
			t.Errorf("%s: empty name", name)
		}
	}
	if _, err := l.Load("no-such-theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoaderUserDirAndPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\nGrid: #010203\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("mine")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Grid != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("Grid = %+v", th.Grid)
	}
	if _, err := l.Load(filepath.Join(dir, "mine.theme")); err != nil {
		t.Fatalf("Load by path: %v", err)
	}
	names := l.Names()
	found := false
	for _, n := range names {
		found = found || n == "mine"
	}
	if !found || len(names) != len(EmbeddedNames())+1 {
		t.Fatalf("Names = %v", names)
	}
}
