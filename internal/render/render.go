package render

import (
	"github.com/banshee-data/trackmap/internal/telemetry"
)

// Status labels returned by Render for the surrounding UI.
const (
	// StatusNoSurface is returned when no drawable surface was supplied.
	StatusNoSurface = "-"
	// StatusWorld indicates the refresh used real planar coordinates.
	StatusWorld = "world coordinates"
	// StatusSplineFallback indicates the refresh drew the circular
	// abstraction because planar data was missing or degenerate.
	StatusSplineFallback = "spline fallback, awaiting real trajectory"
)

// Render draws one frame of the track position map and returns a short
// status label identifying the projection used. A nil surface is a
// defensive no-op, not an error. Render never fails on malformed
// telemetry: absent or non-finite fields degrade per point, never
// aborting the frame. Successive calls are fully independent.
func Render(s Surface, history []telemetry.TrackPoint, tick telemetry.Tick, theme Theme) string {
	if s == nil {
		return StatusNoSurface
	}

	s.Fill(theme.Color("background"))

	switch SelectMode(history) {
	case ModeWorldCoordinates:
		drawWorld(s, history, tick, theme)
		return StatusWorld
	default:
		drawSpline(s, history, tick, theme)
		return StatusSplineFallback
	}
}
