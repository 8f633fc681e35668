package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/shineycrop/internal/crop"
	"github.com/example/shineycrop/internal/raster"
	"github.com/example/shineycrop/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Crop holds the editing defaults.
type Crop struct {
	MinSize      float64
	HandleRadius float64
	Aspect       string
	Shape        string
	Fill         float64

	// Size limits for the initial box. Zero means unset.
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Crop    Crop
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Crop: Crop{
			MinSize:      crop.MinSize,
			HandleRadius: crop.DefaultHandleRadius,
			Aspect:       "1:1",
			Shape:        raster.Rectangular.String(),
			Fill:         crop.DefaultFill,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Validate clamps numeric settings into range and rejects an aspect or shape
// that cannot be parsed. Clamping happens even when an error is returned.
func (c *Config) Validate() error {
	k := &c.Crop
	if k.MinSize < 1 {
		k.MinSize = crop.MinSize
	}
	if k.HandleRadius <= 0 {
		k.HandleRadius = crop.DefaultHandleRadius
	}
	if k.Fill <= 0 || k.Fill > 1 {
		k.Fill = crop.DefaultFill
	}
	for _, v := range []*float64{&k.MinWidth, &k.MaxWidth, &k.MinHeight, &k.MaxHeight} {
		if *v < 0 {
			*v = 0
		}
	}
	if k.MaxWidth > 0 && k.MaxWidth < k.MinWidth {
		k.MaxWidth = k.MinWidth
	}
	if k.MaxHeight > 0 && k.MaxHeight < k.MinHeight {
		k.MaxHeight = k.MinHeight
	}

	var errs []error
	if _, err := crop.ParseAspect(k.Aspect); err != nil {
		errs = append(errs, fmt.Errorf("crop.aspect: %w", err))
	}
	if _, err := raster.ParseShape(k.Shape); err != nil {
		errs = append(errs, fmt.Errorf("crop.shape: %w", err))
	}
	return errors.Join(errs...)
}

// AspectRatio returns the configured ratio, or 1:1 if it does not parse.
func (c *Crop) AspectRatio() crop.AspectRatio {
	a, err := crop.ParseAspect(c.Aspect)
	if err != nil {
		return 1
	}
	return a
}

// ShapeValue returns the configured shape, or rectangular if it does not
// parse.
func (c *Crop) ShapeValue() raster.Shape {
	s, _ := raster.ParseShape(c.Shape)
	return s
}

// RegionOptions translates the settings into crop.Region options.
func (c *Crop) RegionOptions() []crop.Option {
	return []crop.Option{
		crop.WithMinSize(c.MinSize),
		crop.WithHandleRadius(c.HandleRadius),
		crop.WithAspect(c.AspectRatio()),
		crop.WithFill(c.Fill),
		crop.WithBounds(crop.Bounds{
			MinWidth:  c.MinWidth,
			MaxWidth:  c.MaxWidth,
			MinHeight: c.MinHeight,
			MaxHeight: c.MaxHeight,
		}),
	}
}

// Save writes the configuration to path in RC format.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(c.String()), 0o644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[crop]\n")
	fmt.Fprintf(&sb, "min_size = %s\n", formatFloat(c.Crop.MinSize))
	fmt.Fprintf(&sb, "handle_radius = %s\n", formatFloat(c.Crop.HandleRadius))
	fmt.Fprintf(&sb, "aspect = %s\n", c.Crop.Aspect)
	fmt.Fprintf(&sb, "shape = %s\n", c.Crop.Shape)
	fmt.Fprintf(&sb, "fill = %s\n", formatFloat(c.Crop.Fill))
	for _, kv := range []struct {
		key string
		v   float64
	}{
		{"min_width", c.Crop.MinWidth},
		{"max_width", c.Crop.MaxWidth},
		{"min_height", c.Crop.MinHeight},
		{"max_height", c.Crop.MaxHeight},
	} {
		if kv.v > 0 {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, formatFloat(kv.v))
		}
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Encode(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
