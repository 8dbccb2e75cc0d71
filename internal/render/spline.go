package render

import (
	"math"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

const (
	// maxTrailPoints bounds the fallback trail drawing cost.
	maxTrailPoints = 1800
	// ringRadiusFrac sizes the idealised circular track relative to the
	// smaller surface dimension.
	ringRadiusFrac = 0.34
	// tickHalfLenPx is half the length of a sector tick mark; ticks
	// straddle the ring.
	tickHalfLenPx = 6.0
)

// sectorFractions are the spline fractions where sector tick marks are
// drawn. The top of the ring (fraction 0) is start/finish.
var sectorFractions = [3]float64{0, 1.0 / 3.0, 2.0 / 3.0}

// splineAngle converts a lap progress fraction to a ring angle, with
// fraction 0 at the top of the circle.
func splineAngle(fraction float64) float64 {
	return -math.Pi/2 + fraction*2*math.Pi
}

// drawSpline renders an idealised circular track from lap progress
// fractions alone. Used when too little planar data exists for a real
// projection.
func drawSpline(s Surface, history []telemetry.TrackPoint, tick telemetry.Tick, theme Theme) {
	width, height := s.Size()
	cx := width / 2
	cy := height / 2
	radius := ringRadiusFrac * math.Min(width, height)

	s.StrokeCircle(cx, cy, radius, theme.Color("line"), 1.5)

	for _, f := range sectorFractions {
		theta := splineAngle(f)
		s.Polyline([]Point{
			{X: cx + math.Cos(theta)*(radius-tickHalfLenPx), Y: cy + math.Sin(theta)*(radius-tickHalfLenPx)},
			{X: cx + math.Cos(theta)*(radius+tickHalfLenPx), Y: cy + math.Sin(theta)*(radius+tickHalfLenPx)},
		}, theme.Color("muted"), 2)
	}

	trail := history
	if len(trail) > maxTrailPoints {
		trail = trail[len(trail)-maxTrailPoints:]
	}
	for _, p := range trail {
		f := p.Spline
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		theta := splineAngle(f)
		s.FillCircle(cx+math.Cos(theta)*radius, cy+math.Sin(theta)*radius, 2, SpeedColor(p.SpeedKmh))
	}

	current := tick.Spline
	if math.IsNaN(current) || math.IsInf(current, 0) {
		current = 0
	}
	theta := splineAngle(current)
	s.FillCircle(cx+math.Cos(theta)*radius, cy+math.Sin(theta)*radius, 5, theme.Color("accent"))
}
