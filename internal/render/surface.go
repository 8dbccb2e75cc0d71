// Package render draws the live track position map. It projects a
// bounded history of telemetry samples onto a 2D surface, choosing per
// refresh between a true world-coordinate projection and a circular
// spline fallback when planar data is missing or degenerate.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// Point is a surface position in device pixels, origin at the top left.
type Point struct {
	X float64
	Y float64
}

// Surface is the minimal drawing target the renderer needs. Coordinates
// are device pixels with the origin at the top-left corner and Y growing
// downward.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height float64)
	// Fill clears the surface and fills it with the given color.
	Fill(c color.Color)
	// Polyline strokes a connected path through the given points.
	Polyline(pts []Point, c color.Color, width float64)
	// StrokeCircle strokes a circle outline centred at (cx, cy).
	StrokeCircle(cx, cy, r float64, c color.Color, width float64)
	// FillCircle fills a disc centred at (cx, cy).
	FillCircle(cx, cy, r float64, c color.Color)
}

// ImageSurface renders to an in-memory raster via gonum's vg canvas.
// One canvas point equals one pixel (72 DPI).
type ImageSurface struct {
	canvas *vgimg.Canvas
	width  float64
	height float64
}

// NewImageSurface creates a raster surface of the given pixel dimensions.
// Dimensions below 1 are clamped to 1.
func NewImageSurface(width, height int) *ImageSurface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width), vg.Length(height)),
		vgimg.UseDPI(72),
	)
	return &ImageSurface{
		canvas: c,
		width:  float64(width),
		height: float64(height),
	}
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (float64, float64) {
	return s.width, s.height
}

// flip converts a top-left-origin Y to the canvas bottom-left origin.
func (s *ImageSurface) flip(y float64) vg.Length {
	return vg.Length(s.height - y)
}

// Fill clears the surface and fills it with the given color.
func (s *ImageSurface) Fill(c color.Color) {
	var p vg.Path
	p.Move(vg.Point{X: 0, Y: 0})
	p.Line(vg.Point{X: vg.Length(s.width), Y: 0})
	p.Line(vg.Point{X: vg.Length(s.width), Y: vg.Length(s.height)})
	p.Line(vg.Point{X: 0, Y: vg.Length(s.height)})
	p.Close()
	s.canvas.SetColor(c)
	s.canvas.Fill(p)
}

// Polyline strokes a connected path through the given points.
func (s *ImageSurface) Polyline(pts []Point, c color.Color, width float64) {
	if len(pts) < 2 {
		return
	}
	var p vg.Path
	p.Move(vg.Point{X: vg.Length(pts[0].X), Y: s.flip(pts[0].Y)})
	for _, pt := range pts[1:] {
		p.Line(vg.Point{X: vg.Length(pt.X), Y: s.flip(pt.Y)})
	}
	s.canvas.SetColor(c)
	s.canvas.SetLineWidth(vg.Length(width))
	s.canvas.Stroke(p)
}

// StrokeCircle strokes a circle outline centred at (cx, cy).
func (s *ImageSurface) StrokeCircle(cx, cy, r float64, c color.Color, width float64) {
	s.canvas.SetColor(c)
	s.canvas.SetLineWidth(vg.Length(width))
	s.canvas.Stroke(s.circlePath(cx, cy, r))
}

// FillCircle fills a disc centred at (cx, cy).
func (s *ImageSurface) FillCircle(cx, cy, r float64, c color.Color) {
	s.canvas.SetColor(c)
	s.canvas.Fill(s.circlePath(cx, cy, r))
}

func (s *ImageSurface) circlePath(cx, cy, r float64) vg.Path {
	var p vg.Path
	y := s.flip(cy)
	p.Move(vg.Point{X: vg.Length(cx + r), Y: y})
	p.Arc(vg.Point{X: vg.Length(cx), Y: y}, vg.Length(r), 0, 2*math.Pi)
	p.Close()
	return p
}

// WritePNG encodes the current surface contents as PNG.
func (s *ImageSurface) WritePNG(w io.Writer) error {
	png := vgimg.PngCanvas{Canvas: s.canvas}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode surface as PNG: %w", err)
	}
	return nil
}
