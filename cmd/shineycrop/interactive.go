package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/geom"
	"github.com/example/shineycrop/internal/imageio"
	"github.com/example/shineycrop/internal/raster"
	"github.com/example/shineycrop/internal/render"
	"github.com/example/shineycrop/internal/session"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives a session from text commands, one per line.
type interactiveCmd struct {
	sourceFlags
	execs  commandList
	aspect string
	shape  string
	*root
	fs *flag.FlagSet

	sess *session.Session
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	fs.StringVar(&c.file, "file", "", "image file to load at start")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "load the image from the clipboard at start")
	fs.StringVar(&c.aspect, "aspect", "", "initial aspect ratio")
	fs.StringVar(&c.shape, "shape", "", "initial crop shape (rect or ellipse)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() > 0 {
		c.file = fs.Arg(0)
	}
	return c, nil
}

func (i *interactiveCmd) Run() error {
	sess, err := i.newSession(i.aspect, i.shape)
	if err != nil {
		return err
	}
	i.sess = sess
	if i.file != "" || i.fromClipboard {
		img, err := i.load()
		if err != nil {
			return err
		}
		i.sess.Load(img)
	}

	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return fmt.Errorf("%s: %w", line, err)
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.out(), "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.out(), "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

var errNoImage = errors.New("no image loaded")

func parsePoint(args []string) (geom.Point, error) {
	if len(args) != 2 {
		return geom.Point{}, fmt.Errorf("expected X Y")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid x %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid y %q", args[1])
	}
	return geom.Pt(x, y), nil
}

var pointerKinds = map[string]crop.PointerKind{
	"down":   crop.PointerDown,
	"move":   crop.PointerMove,
	"up":     crop.PointerUp,
	"leave":  crop.PointerLeave,
	"cancel": crop.PointerCancel,
}

// executeLine runs one command. done reports that the session is over.
func (i *interactiveCmd) executeLine(line string) (done bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return false, nil
	}
	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		i.sess.Cancel()
		return true, nil
	case "help":
		fmt.Fprintln(i.out(), (&UsageError{of: i}).Error())
	case "load":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: load FILE")
		}
		img, err := imageio.Load(args[0])
		if err != nil {
			return false, err
		}
		i.file = args[0]
		i.sess.Load(img)
		fmt.Fprintf(i.out(), "loaded %s %dx%d\n", args[0], img.Bounds().Dx(), img.Bounds().Dy())
	case "view":
		if len(args) == 1 {
			args = strings.FieldsFunc(args[0], func(r rune) bool { return r == 'x' || r == ',' })
		}
		p, err := parsePoint(args)
		if err != nil {
			return false, fmt.Errorf("usage: view W H: %w", err)
		}
		if err := i.sess.Dispatch(session.ResizeEvent{Width: p.X, Height: p.Y}); err != nil {
			return false, err
		}
		i.printRect()
	case "down", "move", "up", "leave", "cancel":
		var p geom.Point
		if len(args) > 0 || name == "down" || name == "move" {
			if p, err = parsePoint(args); err != nil {
				return false, fmt.Errorf("usage: %s X Y: %w", name, err)
			}
		}
		if err := i.sess.Dispatch(session.PointerEvent{Kind: pointerKinds[name], Pos: p}); err != nil {
			return false, err
		}
		if name != "down" {
			i.printRect()
		}
	case "grab":
		if len(args) != 3 {
			return false, fmt.Errorf("usage: grab HANDLE X Y")
		}
		p, err := parsePoint(args[1:])
		if err != nil {
			return false, fmt.Errorf("usage: grab HANDLE X Y: %w", err)
		}
		if err := i.sess.Grab(args[0], p); err != nil {
			return false, err
		}
	case "aspect":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: aspect RATIO")
		}
		a, err := crop.ParseAspect(args[0])
		if err != nil {
			return false, err
		}
		if err := i.sess.Dispatch(session.AspectEvent(a)); err != nil {
			return false, err
		}
		i.printRect()
	case "shape":
		sh := i.sess.Shape().Toggle()
		if len(args) == 1 {
			if sh, err = raster.ParseShape(args[0]); err != nil {
				return false, err
			}
		}
		if err := i.sess.Dispatch(session.ShapeEvent(sh)); err != nil {
			return false, err
		}
		fmt.Fprintf(i.out(), "shape %s\n", i.sess.Shape())
	case "rect":
		i.printRect()
	case "status":
		fmt.Fprintln(i.out(), render.StatusText(i.sess.View()))
	case "preview":
		res, err := i.sess.StartPreview()
		if err != nil {
			return false, err
		}
		b := res.Image.Bounds()
		fmt.Fprintf(i.out(), "preview %dx%d %s from %v\n", b.Dx(), b.Dy(), res.Shape, res.Source)
	case "discard":
		if err := i.sess.Discard(); err != nil {
			return false, err
		}
		fmt.Fprintln(i.out(), "editing")
	case "apply", "accept", "commit":
		if i.sess.Source() == nil {
			return false, errNoImage
		}
		res, err := i.sess.Commit()
		if err != nil {
			return false, err
		}
		output := ""
		if len(args) > 0 {
			output = args[0]
		}
		return true, i.deliver(res, output, i.file, false)
	case "copy":
		res, err := i.sess.Render()
		if err != nil {
			return false, err
		}
		if err := writeClipboardImageFn(res.Image); err != nil {
			return false, err
		}
		b := res.Image.Bounds()
		detail := fmt.Sprintf("%dx%d %s crop", b.Dx(), b.Dy(), res.Shape)
		fmt.Fprintf(i.out(), "copied %s\n", detail)
		i.notifyCopy(detail)
	default:
		return false, fmt.Errorf("unknown command %q (try help)", name)
	}
	return false, nil
}

func (i *interactiveCmd) printRect() {
	v := i.sess.View()
	if !v.Placed {
		fmt.Fprintln(i.out(), "rect none")
		return
	}
	line := fmt.Sprintf("rect %v", v.Rect)
	if src, err := geom.ToSourceSpace(v.Rect, v.ImageSize, v.Container); err == nil {
		line += fmt.Sprintf(" source %v", src)
	}
	fmt.Fprintln(i.out(), line)
}
