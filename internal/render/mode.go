package render

import (
	"github.com/banshee-data/trackmap/internal/telemetry"
)

// RenderMode identifies which projection strategy a refresh used.
type RenderMode int

const (
	// ModeSplineFallback draws an idealised circular track keyed by the
	// normalized lap progress fraction.
	ModeSplineFallback RenderMode = iota
	// ModeWorldCoordinates projects real planar coordinates onto the
	// surface with a uniform aspect-preserving scale.
	ModeWorldCoordinates
)

func (m RenderMode) String() string {
	switch m {
	case ModeWorldCoordinates:
		return "world"
	default:
		return "spline"
	}
}

const (
	// minWorldSamples is the minimum number of world-valid samples before
	// world mode is considered. Keeps a handful of noisy or stationary
	// points (pit lane) from flicking the map into world mode.
	minWorldSamples = 60
	// minWorldSpanM is the minimum bounding-box span, in metres, on both
	// axes for world mode.
	minWorldSpanM = 30.0
)

// SelectMode decides which projection applies for this refresh. The
// decision is a pure function of the full history: world mode requires
// at least minWorldSamples samples with finite planar coordinates whose
// overall bounding box exceeds minWorldSpanM on both axes.
//
// Note the decision inspects the entire world-valid history while the
// world projector later fits its bounding box to only the most recent
// maxPathPoints samples. The two windows can disagree; that asymmetry is
// intended (a widely-spread early session with a tightly-clustered
// recent suffix still selects world mode).
func SelectMode(history []telemetry.TrackPoint) RenderMode {
	var (
		count                  int
		minX, maxX, minZ, maxZ float64
	)
	for _, p := range history {
		if !p.WorldValid() {
			continue
		}
		x, z := *p.WorldX, *p.WorldZ
		if count == 0 {
			minX, maxX, minZ, maxZ = x, x, z, z
		} else {
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if z < minZ {
				minZ = z
			}
			if z > maxZ {
				maxZ = z
			}
		}
		count++
	}

	if count < minWorldSamples {
		return ModeSplineFallback
	}
	if maxX-minX <= minWorldSpanM || maxZ-minZ <= minWorldSpanM {
		return ModeSplineFallback
	}
	return ModeWorldCoordinates
}
