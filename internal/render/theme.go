package render

import "image/color"

// Theme maps semantic color names to concrete colors. The renderer looks
// up four names: "line", "accent", "muted" and "background". Unknown or
// missing names fall back to the default palette so a partial theme is
// always safe to pass in.
type Theme map[string]color.Color

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		"line":       color.RGBA{R: 0x9d, G: 0xb3, B: 0xd4, A: 0xff},
		"accent":     color.RGBA{R: 0xf6, G: 0xbd, B: 0x60, A: 0xff},
		"muted":      color.RGBA{R: 0x30, G: 0x40, B: 0x50, A: 0xff},
		"background": color.RGBA{R: 0x10, G: 0x14, B: 0x18, A: 0xff},
	}
}

// Color resolves a semantic color name, falling back to the default
// palette and finally to opaque white for names neither theme knows.
func (t Theme) Color(name string) color.Color {
	if t != nil {
		if c, ok := t[name]; ok && c != nil {
			return c
		}
	}
	if c, ok := DefaultTheme()[name]; ok {
		return c
	}
	return color.White
}
