package render

import (
	"image/color"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
)

// ColorTheme selects a palette.
type ColorTheme int

const (
	ThemeEagle ColorTheme = iota
	ThemeClassic
)

// ThemeNames maps theme enum to display name
var ThemeNames = map[ColorTheme]string{
	ThemeEagle:   "Eagle",
	ThemeClassic: "Classic",
}

// Eagle's own editor colours on a black background.
var eagleColors = map[eagle.Layer]color.NRGBA{
	eagle.LayerTop:       {R: 204, G: 0, B: 0, A: 200},
	eagle.LayerBottom:    {R: 0, G: 0, B: 204, A: 200},
	19:                   {R: 204, G: 204, B: 0, A: 255}, // Unrouted
	eagle.LayerDimension: {R: 204, G: 204, B: 204, A: 255},
	eagle.LayerTPlace:    {R: 255, G: 255, B: 255, A: 255},
	25:                   {R: 200, G: 200, B: 200, A: 255}, // tNames
	27:                   {R: 200, G: 200, B: 200, A: 255}, // tValues
	eagle.LayerTStop:     {R: 200, G: 61, B: 217, A: 102},
}

// Green substrate, KiCad-like copper.
var classicColors = map[eagle.Layer]color.NRGBA{
	eagle.LayerTop:       {R: 200, G: 52, B: 52, A: 220},
	eagle.LayerBottom:    {R: 77, G: 127, B: 196, A: 220},
	19:                   {R: 242, G: 237, B: 161, A: 255},
	eagle.LayerDimension: {R: 208, G: 210, B: 205, A: 255},
	eagle.LayerTPlace:    {R: 242, G: 237, B: 161, A: 255},
	eagle.LayerTStop:     {R: 216, G: 100, B: 255, A: 102},
}

// Theme is a resolved palette.
type Theme struct {
	Background color.NRGBA
	Marker     color.NRGBA
	layers     map[eagle.Layer]color.NRGBA
}

// NewTheme returns the palette for t.
func NewTheme(t ColorTheme) Theme {
	switch t {
	case ThemeClassic:
		return Theme{
			Background: color.NRGBA{R: 20, G: 90, B: 50, A: 255},
			Marker:     color.NRGBA{R: 227, G: 183, B: 46, A: 255},
			layers:     classicColors,
		}
	default:
		return Theme{
			Background: color.NRGBA{A: 255},
			Marker:     color.NRGBA{R: 227, G: 183, B: 46, A: 255},
			layers:     eagleColors,
		}
	}
}

// LayerColor returns the colour of layer l, gray for layers without one.
func (t Theme) LayerColor(l eagle.Layer) color.NRGBA {
	if c, ok := t.layers[l]; ok {
		return c
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}
