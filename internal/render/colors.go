package render

import (
	"image/color"
	"math"
)

// maxColorSpeedKmh is the speed at which the gradient saturates.
const maxColorSpeedKmh = 220.0

// SpeedColor maps a speed in km/h onto a fixed red-to-green gradient.
// Speeds at or above maxColorSpeedKmh saturate; NaN and negative speeds
// are treated as zero. The blue channel is constant so the gradient
// stays readable on dark backgrounds.
func SpeedColor(speedKmh float64) color.RGBA {
	if math.IsNaN(speedKmh) || speedKmh < 0 {
		speedKmh = 0
	}
	t := speedKmh / maxColorSpeedKmh
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(math.Round(230 - 140*t)),
		G: uint8(math.Round(80 + 150*t)),
		B: 120,
		A: 255,
	}
}
