// Package telemetry defines the telemetry sample model and the
// mutex-guarded session state that the dashboard and renderer consume.
package telemetry

import "math"

// Tick is a single telemetry sample as delivered by a provider.
// Fields that a source may genuinely not report (world position, fuel)
// are pointer-typed so absence survives JSON round trips; everything
// else defaults to its zero value when the source omits it.
type Tick struct {
	SessionTimeS float64 `json:"session_time_s"`
	LapCount     int     `json:"lap_count"`
	LapTimeS     float64 `json:"lap_time_s"`
	Sector       int     `json:"sector"`
	Spline       float64 `json:"spline"`
	SpeedKmh     float64 `json:"speed_kmh"`
	Throttle     float64 `json:"throttle"`
	Brake        float64 `json:"brake"`
	Steer        float64 `json:"steer"`
	Gear         int     `json:"gear"`
	RPM          int     `json:"rpm"`
	InPit        bool    `json:"is_in_pit"`

	TrackName    string  `json:"track_name,omitempty"`
	TrackLengthM float64 `json:"track_length_m,omitempty"`
	CarName      string  `json:"car_name,omitempty"`

	WorldPosX *float64 `json:"world_pos_x,omitempty"`
	WorldPosZ *float64 `json:"world_pos_z,omitempty"`

	FuelL             *float64 `json:"fuel_l,omitempty"`
	FuelEstimatedLaps *float64 `json:"fuel_estimated_laps,omitempty"`
}

// WorldValid reports whether the tick carries a usable planar position.
func (t Tick) WorldValid() bool {
	return finitePtr(t.WorldPosX) && finitePtr(t.WorldPosZ)
}

// TrackPoint is the bounded-history element retained per tick for the
// track position renderer. It is a deliberate subset of Tick.
type TrackPoint struct {
	Spline   float64  `json:"spline"`
	SpeedKmh float64  `json:"speed_kmh"`
	Sector   int      `json:"sector"`
	WorldX   *float64 `json:"world_x"`
	WorldZ   *float64 `json:"world_z"`
}

// WorldValid reports whether the point carries finite planar coordinates.
func (p TrackPoint) WorldValid() bool {
	return finitePtr(p.WorldX) && finitePtr(p.WorldZ)
}

// NewTrackPoint extracts the renderer subset from a full tick.
func NewTrackPoint(t Tick) TrackPoint {
	return TrackPoint{
		Spline:   t.Spline,
		SpeedKmh: t.SpeedKmh,
		Sector:   t.Sector,
		WorldX:   t.WorldPosX,
		WorldZ:   t.WorldPosZ,
	}
}

// Float64 returns a pointer to v. Convenience for building optional fields.
func Float64(v float64) *float64 { return &v }

func finitePtr(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0)
}
