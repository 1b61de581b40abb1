package chart

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ClassicTheme   ColorTheme = "classic"
	GrayscaleTheme ColorTheme = "grayscale"
	JungleTheme    ColorTheme = "jungle"
	ThermalTheme   ColorTheme = "thermal"
	MarineTheme    ColorTheme = "marine"
)

type ColorTheme string

var validColorThemes = map[ColorTheme]struct{}{
	ClassicTheme:   {},
	GrayscaleTheme: {},
	JungleTheme:    {},
	ThermalTheme:   {},
	MarineTheme:    {},
}

var (
	gridColor = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	axisColor = color.Black
)

// themeColor maps a position in [0,1] to a color of the theme. Positions
// are kept away from the light end so lines stay visible on white.
func themeColor(theme ColorTheme, pos float64) color.Color {
	pos = math.Max(0, math.Min(1, pos))

	switch theme {
	case GrayscaleTheme: // Black -> Gray
		return colorful.Hsv(0, 0, pos*0.6)

	case JungleTheme: // Dark Green -> Olive
		return colorful.Hsv(120-(pos*60), 1.0, 0.4+pos*0.3)

	case ThermalTheme: // Dark Red -> Orange
		return colorful.Hsv(pos*35, 1.0, 0.6+pos*0.4)

	case MarineTheme: // Deep Blue -> Teal
		return colorful.Hsv(240-(pos*60), 1.0, 0.5+pos*0.3)

	default: // Classic: Blue -> Red
		return colorful.Hsv(240-(pos*240), 0.9, 0.85)
	}
}

// palette returns n distinct colors of the theme.
func palette(theme ColorTheme, n int) []color.Color {
	colors := make([]color.Color, n)
	for i := range colors {
		pos := 0.0
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}
		colors[i] = themeColor(theme, pos)
	}
	return colors
}
