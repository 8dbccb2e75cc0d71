package telemetry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpeedStats summarises the speed trace over the retained history.
type SpeedStats struct {
	Samples   int     `json:"samples"`
	MeanKmh   float64 `json:"mean_kmh"`
	MaxKmh    float64 `json:"max_kmh"`
	StdDevKmh float64 `json:"stddev_kmh"`
}

// ComputeSpeedStats computes summary statistics over the speed values of
// the given points. Non-finite speeds are skipped; an empty input yields
// the zero value.
func ComputeSpeedStats(points []TrackPoint) SpeedStats {
	speeds := make([]float64, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.SpeedKmh) || math.IsInf(p.SpeedKmh, 0) {
			continue
		}
		speeds = append(speeds, p.SpeedKmh)
	}
	if len(speeds) == 0 {
		return SpeedStats{}
	}

	stats := SpeedStats{
		Samples: len(speeds),
		MeanKmh: stat.Mean(speeds, nil),
		MaxKmh:  floats.Max(speeds),
	}
	if len(speeds) > 1 {
		stats.StdDevKmh = stat.StdDev(speeds, nil)
	}
	return stats
}
