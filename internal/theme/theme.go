package theme

import (
	"image/color"
	"reflect"
	"strings"
)

// Theme defines the colours used to draw the crop editor.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the image
	Foreground color.RGBA // Status text

	// Status bar
	StatusBackground color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Crop overlay
	Dim          color.RGBA // Drawn over the image outside the crop box
	Border       color.RGBA // Dashed box outline, first dash colour
	BorderAlt    color.RGBA // Dashed box outline, second dash colour
	Grid         color.RGBA // Rule-of-thirds lines
	Guide        color.RGBA // Circle guide for round crops
	Handle       color.RGBA
	HandleBorder color.RGBA
	HandleActive color.RGBA // Handle being dragged
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{220, 220, 220, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		StatusBackground: color.RGBA{200, 200, 200, 255},
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
		Dim:              color.RGBA{0, 0, 0, 128},
		Border:           color.RGBA{255, 255, 255, 255},
		BorderAlt:        color.RGBA{0, 0, 0, 255},
		Grid:             color.RGBA{255, 255, 255, 96},
		Guide:            color.RGBA{255, 255, 255, 200},
		Handle:           color.RGBA{255, 255, 255, 255},
		HandleBorder:     color.RGBA{0, 0, 0, 255},
		HandleActive:     color.RGBA{66, 133, 244, 255},
	}
}

// NamedColor pairs a theme field name with its value.
type NamedColor struct {
	Key   string
	Color color.RGBA
}

// Colors lists every colour field in declaration order.
func (t *Theme) Colors() []NamedColor {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	var out []NamedColor
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type != reflect.TypeOf(color.RGBA{}) {
			continue
		}
		out = append(out, NamedColor{Key: f.Name, Color: val.Field(i).Interface().(color.RGBA)})
	}
	return out
}

// Set assigns a colour field by case-insensitive name. Unknown keys are
// ignored so older builds can read newer files.
func (t *Theme) Set(key, value string) error {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type != reflect.TypeOf(color.RGBA{}) || !strings.EqualFold(f.Name, key) {
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return err
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}
