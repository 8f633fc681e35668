package main

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/example/shineycrop/internal/clipboard"
	"github.com/example/shineycrop/internal/imageio"
	"github.com/example/shineycrop/internal/session"
)

var (
	readClipboardImageFn  = clipboard.ReadImage
	writeClipboardImageFn = clipboard.WriteImage
)

// sourceFlags are shared by commands that take an input image.
type sourceFlags struct {
	file          string
	fromClipboard bool
}

func (s *sourceFlags) load() (image.Image, error) {
	if s.fromClipboard {
		img, err := readClipboardImageFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return img, nil
	}
	if s.file == "" {
		return nil, fmt.Errorf("no input image: pass a file or -from-clipboard")
	}
	return imageio.Load(s.file)
}

// outputPath picks where a result goes: the explicit path, otherwise the
// configured save_dir (or the source's directory) plus the derived name.
func (r *root) outputPath(explicit, source string) string {
	if explicit != "" {
		return explicit
	}
	dir := filepath.Dir(source)
	if source == "" {
		dir = "."
	}
	if r.config != nil && r.config.SaveDir != "" {
		dir = r.config.SaveDir
	}
	return filepath.Join(dir, imageio.OutputName(source))
}

// deliver saves and/or copies a finished crop. With neither a path nor
// toClipboard the crop is saved next to the source.
func (r *root) deliver(res *session.Result, output, source string, toClipboard bool) error {
	b := res.Image.Bounds()
	detail := fmt.Sprintf("%dx%d %s crop", b.Dx(), b.Dy(), res.Shape)
	r.notifyCrop(detail, res.Image)

	if output != "" || !toClipboard {
		path := r.outputPath(output, source)
		if err := imageio.Save(path, res.Image); err != nil {
			return fmt.Errorf("failed to save crop: %w", err)
		}
		fmt.Fprintf(r.out(), "saved %s (%s)\n", path, detail)
		r.notifySave(path)
	}
	if toClipboard {
		if err := writeClipboardImageFn(res.Image); err != nil {
			return fmt.Errorf("failed to copy crop: %w", err)
		}
		fmt.Fprintf(r.out(), "copied %s\n", detail)
		r.notifyCopy(detail)
	}
	return nil
}
