package render

import (
	"math"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

const (
	// maxPathPoints bounds the world projection and path drawing cost
	// independent of session length.
	maxPathPoints = 12000
	// maxMarkerPoints bounds the number of speed-colored trail markers
	// per refresh; the path itself is never decimated.
	maxMarkerPoints = 900
	// padPx is the margin reserved on each surface edge.
	padPx = 18.0
)

// worldProjection maps world coordinates to surface pixels with a single
// uniform scale so the track shape is never distorted. World Z grows
// upward on screen.
type worldProjection struct {
	minX, minZ float64
	scale      float64
	offX, offY float64
	height     float64
}

// newWorldProjection fits a projection to the bounding box of the given
// world-valid points. Degenerate spans are clamped to 1.0 so a
// stationary car still projects without dividing by zero.
func newWorldProjection(pts []telemetry.TrackPoint, width, height float64) worldProjection {
	var minX, maxX, minZ, maxZ float64
	for i, p := range pts {
		x, z := *p.WorldX, *p.WorldZ
		if i == 0 {
			minX, maxX, minZ, maxZ = x, x, z, z
			continue
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minZ = math.Min(minZ, z)
		maxZ = math.Max(maxZ, z)
	}

	spanX := math.Max(1.0, maxX-minX)
	spanZ := math.Max(1.0, maxZ-minZ)
	drawW := width - 2*padPx
	drawH := height - 2*padPx
	scale := math.Min(drawW/spanX, drawH/spanZ)

	return worldProjection{
		minX:   minX,
		minZ:   minZ,
		scale:  scale,
		offX:   (width - spanX*scale) / 2,
		offY:   (height - spanZ*scale) / 2,
		height: height,
	}
}

// project converts a world position to surface pixels.
func (p worldProjection) project(x, z float64) Point {
	return Point{
		X: p.offX + (x-p.minX)*p.scale,
		Y: p.height - (p.offY + (z-p.minZ)*p.scale),
	}
}

// worldValid filters history to samples with finite planar coordinates,
// preserving time order.
func worldValid(history []telemetry.TrackPoint) []telemetry.TrackPoint {
	valid := make([]telemetry.TrackPoint, 0, len(history))
	for _, p := range history {
		if p.WorldValid() {
			valid = append(valid, p)
		}
	}
	return valid
}

// drawWorld renders the driven path and the current position from real
// planar coordinates. The connected path is drawn at full resolution
// over the retained window; speed-colored markers are decimated.
func drawWorld(s Surface, history []telemetry.TrackPoint, tick telemetry.Tick, theme Theme) {
	width, height := s.Size()

	pts := worldValid(history)
	if len(pts) > maxPathPoints {
		pts = pts[len(pts)-maxPathPoints:]
	}
	// Mode selection requires a healthy run of world-valid samples, so an
	// empty window means the caller picked the wrong path. Draw nothing
	// rather than guess a projection.
	if len(pts) == 0 {
		return
	}
	proj := newWorldProjection(pts, width, height)

	if len(pts) >= 2 {
		path := make([]Point, len(pts))
		for i, p := range pts {
			path[i] = proj.project(*p.WorldX, *p.WorldZ)
		}
		s.Polyline(path, theme.Color("line"), 1.5)
	}

	if n := len(pts); n > 0 {
		stride := n / maxMarkerPoints
		if stride < 1 {
			stride = 1
		}
		for i := 0; i < n; i += stride {
			p := pts[i]
			pt := proj.project(*p.WorldX, *p.WorldZ)
			s.FillCircle(pt.X, pt.Y, 2, SpeedColor(p.SpeedKmh))
		}
	}

	// Current position last so it is always on top.
	if tick.WorldValid() {
		pt := proj.project(*tick.WorldPosX, *tick.WorldPosZ)
		s.FillCircle(pt.X, pt.Y, 5, theme.Color("accent"))
	}
}
