package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/example/shineycrop/internal/appstate"
	"github.com/example/shineycrop/internal/clipboard"
	"github.com/example/shineycrop/internal/session"
)

// editCmd opens the crop window.
type editCmd struct {
	sourceFlags
	output string
	copy   bool
	aspect string
	shape  string
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to open")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "load the image from the clipboard")
	fs.StringVar(&c.output, "o", "", "output file (default <name>-crop.png next to the source or in save_dir)")
	fs.BoolVar(&c.copy, "copy", false, "copy the accepted crop to the clipboard")
	fs.StringVar(&c.aspect, "aspect", "", "initial aspect ratio (1:1, 4:3, 16:9, free, ...)")
	fs.StringVar(&c.shape, "shape", "", "initial crop shape (rect or ellipse)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() > 0 {
		c.file = fs.Arg(0)
	}
	if c.file == "" && !c.fromClipboard {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (e *editCmd) Run() error {
	img, err := e.load()
	if err != nil {
		return err
	}
	sess, err := e.newSession(e.aspect, e.shape)
	if err != nil {
		return err
	}
	sess.Load(img)

	title := "ShineyCrop"
	if e.file != "" {
		title += " - " + filepath.Base(e.file)
	}
	var deliverErr error
	st := appstate.New(
		appstate.WithSession(sess),
		appstate.WithTheme(e.activeTheme),
		appstate.WithTitle(title),
		appstate.WithClipboard(clipboard.WriteImage, clipboard.ReadImage),
		appstate.WithOnResult(func(res *session.Result) {
			if err := e.deliver(res, e.output, e.file, e.copy); err != nil {
				log.Printf("edit: %v", err)
				deliverErr = err
			}
		}),
	)
	st.Run()
	return deliverErr
}
