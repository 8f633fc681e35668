package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/shineycrop/internal/config"
	"github.com/example/shineycrop/internal/notify"
	"github.com/example/shineycrop/internal/raster"
	"github.com/example/shineycrop/internal/session"
	"github.com/example/shineycrop/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	copyAlerts  bool
	cropAlerts  bool
	themeName   string
	activeTheme *theme.Theme
	logLevel    string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		if cfg == nil {
			cfg = config.New()
		}
	}

	r := &root{
		fs:       flag.NewFlagSet("shineycrop", flag.ExitOnError),
		program:  "shineycrop",
		notifier: notify.New(prefs),
		config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a crop")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying a crop to the clipboard")
	r.fs.BoolVar(&r.cropAlerts, "notify-crop", false, "show a desktop notification with a thumbnail when a crop is accepted")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.EmbeddedNames(), ", ")+")")
	r.fs.StringVar(&r.logLevel, "log-level", "warn", "session log level (debug, info, warn, error)")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveTheme picks the theme by CLI flag, SHINEYCROP_THEME, the config file
// and finally the built-in default.
func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("SHINEYCROP_THEME")
	}
	if themeName == "" && r.config != nil {
		themeName = r.config.Theme
	}

	if r.config != nil {
		if t, ok := r.config.Themes[themeName]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "default" {
			fmt.Fprintf(r.errOut(), "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(r.logLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(r.errOut(), &slog.HandlerOptions{Level: level}))
}

// newSession builds an editing session from the [crop] settings. Non-empty
// aspect or shape override the configured values.
func (r *root) newSession(aspect, shape string) (*session.Session, error) {
	c := config.New().Crop
	if r.config != nil {
		c = r.config.Crop
	}
	if aspect != "" {
		c.Aspect = aspect
	}
	if shape != "" {
		c.Shape = shape
	}
	cfg := &config.Config{Crop: c}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sh, err := raster.ParseShape(c.Shape)
	if err != nil {
		return nil, err
	}
	return session.New(
		session.WithLogger(r.logger()),
		session.WithShape(sh),
		session.WithRegion(c.RegionOptions()...),
	), nil
}

func (r *root) out() io.Writer {
	if r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) errOut() io.Writer {
	if r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventCrop, r.cropAlerts)
	}
	r.activeTheme = r.resolveTheme()
	return r.dispatch(r.fs.Arg(0), r.fs.Args()[1:])
}

func (r *root) dispatch(cmdName string, subArgs []string) error {
	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "crop":
		cmd, err = parseCropCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "ratios":
		cmd, err = parseRatiosCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifyCrop(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Crop(detail, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
