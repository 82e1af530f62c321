package render

import (
	"image/color"

	"github.com/flatland/flatqa"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	Transparent = RGBA{}
)

// palette maps each dataset color name to its pixel value.
var palette = map[flatqa.Color]RGBA{
	flatqa.ColorRed:    RGB(1, 0, 0),
	flatqa.ColorGreen:  RGB(0, 1, 0),
	flatqa.ColorBlue:   RGB(0, 0, 1),
	flatqa.ColorYellow: RGB(1, 1, 0),
	flatqa.ColorCyan:   RGB(0, 1, 1),
	flatqa.ColorPurple: RGB(128.0/255, 0, 128.0/255),
	flatqa.ColorBrown:  RGB(165.0/255, 42.0/255, 42.0/255),
	flatqa.ColorGray:   RGB(128.0/255, 128.0/255, 128.0/255),
}

// PaletteColor returns the pixel value for a dataset color.
func PaletteColor(c flatqa.Color) (RGBA, bool) {
	rgba, ok := palette[c]
	return rgba, ok
}
