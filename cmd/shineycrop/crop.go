package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/raster"
	"github.com/example/shineycrop/internal/session"
)

// cropCmd crops without a window.
type cropCmd struct {
	sourceFlags
	rect   string
	view   string
	output string
	copy   bool
	aspect string
	shape  string
	*root
	fs *flag.FlagSet
}

func (c *cropCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCropCmd(args []string, r *root) (*cropCmd, error) {
	fs := flag.NewFlagSet("crop", flag.ExitOnError)
	c := &cropCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to crop")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "load the image from the clipboard")
	fs.StringVar(&c.rect, "rect", "", "crop box as X,Y,W,H")
	fs.StringVar(&c.view, "view", "", "display size WxH that -rect is measured in (default: source pixels)")
	fs.StringVar(&c.output, "o", "", "output file (default <name>-crop.png next to the source or in save_dir)")
	fs.BoolVar(&c.copy, "copy", false, "copy the crop to the clipboard")
	fs.StringVar(&c.aspect, "aspect", "", "aspect ratio of the default box when -rect is omitted")
	fs.StringVar(&c.shape, "shape", "", "crop shape (rect or ellipse)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() > 0 {
		c.file = fs.Arg(0)
	}
	if c.file == "" && !c.fromClipboard {
		return nil, &UsageError{of: c}
	}
	if c.fromClipboard && c.output == "" && !c.copy {
		return nil, fmt.Errorf("output file is required when reading from the clipboard")
	}
	if c.view != "" && c.rect == "" {
		return nil, fmt.Errorf("-view needs -rect")
	}
	return c, nil
}

func (c *cropCmd) Run() error {
	img, err := c.load()
	if err != nil {
		return err
	}
	sess, err := c.newSession(c.aspect, c.shape)
	if err != nil {
		return err
	}
	sess.Load(img)
	imgSize := geom.SizeOf(img.Bounds())

	var res *session.Result
	if c.rect == "" {
		// The default box is laid out over the source at 1:1.
		if err := sess.Dispatch(session.ResizeEvent(imgSize)); err != nil {
			return err
		}
		if res, err = sess.Commit(); err != nil {
			return fmt.Errorf("failed to crop: %w", err)
		}
	} else {
		box, err := parseRect(c.rect)
		if err != nil {
			return err
		}
		container := imgSize
		if c.view != "" {
			if container, err = parseSize(c.view); err != nil {
				return err
			}
		}
		src, err := geom.ToSourceSpace(box, imgSize, container)
		if err != nil {
			return fmt.Errorf("failed to map -rect: %w", err)
		}
		out, err := raster.Rasterize(img, src, sess.Shape())
		if err != nil {
			return fmt.Errorf("failed to crop: %w", err)
		}
		res = &session.Result{Image: out, Shape: sess.Shape(), Source: src}
	}
	return c.deliver(res, c.output, c.file, c.copy)
}

func splitNumbers(s string, seps string, n int) ([]float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(seps, r) })
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d numbers in %q", n, s)
	}
	vals := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in %q", p, s)
		}
		vals[i] = v
	}
	return vals, nil
}

// parseRect reads "X,Y,W,H".
func parseRect(s string) (geom.Rect, error) {
	v, err := splitNumbers(s, ", ", 4)
	if err != nil {
		return geom.Rect{}, err
	}
	r := geom.R(v[0], v[1], v[2], v[3])
	if r.Empty() {
		return geom.Rect{}, fmt.Errorf("rect %q has no area", s)
	}
	return r, nil
}

// parseSize reads "WxH" (also "W,H").
func parseSize(s string) (geom.Size, error) {
	v, err := splitNumbers(s, "x, ", 2)
	if err != nil {
		return geom.Size{}, err
	}
	sz := geom.Size{Width: v[0], Height: v[1]}
	if !sz.Measurable() {
		return geom.Size{}, fmt.Errorf("size %q has no area", s)
	}
	return sz, nil
}
