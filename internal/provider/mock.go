package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/timeutil"
)

// MockProvider generates deterministic synthetic laps to exercise the
// full pipeline without a sim attached. The car drives a 1000 x 800 m
// ellipse with a six-corner speed profile.
type MockProvider struct {
	TickRateHz int
	LapTimeS   float64
	TrackName  string
	CarName    string

	// Clock paces Stream. Defaults to the real clock; tests may inject
	// a mock to step the generator without waiting.
	Clock timeutil.Clock

	connected   bool
	sessionTime float64
	lapTime     float64
	lapCount    int
	fuelL       float64
	fuelPerLapL float64
}

// NewMockProvider creates a generator at the given tick rate.
// tickRateHz <= 0 selects 20 Hz.
func NewMockProvider(tickRateHz int) *MockProvider {
	if tickRateHz <= 0 {
		tickRateHz = 20
	}
	return &MockProvider{
		TickRateHz:  tickRateHz,
		LapTimeS:    95.0,
		TrackName:   "mock_ring",
		CarName:     "mock_gt3",
		Clock:       timeutil.RealClock{},
		lapCount:    1,
		fuelL:       65.0,
		fuelPerLapL: 2.65,
	}
}

func (p *MockProvider) Connect() error {
	p.connected = true
	return nil
}

func (p *MockProvider) Close() error {
	p.connected = false
	return nil
}

// Stream emits synthetic ticks on a fixed cadence until the context is
// cancelled.
func (p *MockProvider) Stream(ctx context.Context, out chan<- telemetry.Tick) error {
	if !p.connected {
		return fmt.Errorf("mock provider not connected")
	}

	clock := p.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	interval := time.Second / time.Duration(p.TickRateHz)
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	dt := 1.0 / float64(p.TickRateHz)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			tick := p.nextTick(dt)
			select {
			case out <- tick:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// nextTick advances the simulation by dt seconds and returns the
// resulting sample. Exposed to tests through Stream-free stepping.
func (p *MockProvider) nextTick(dt float64) telemetry.Tick {
	progress := p.lapTime / p.LapTimeS
	if progress >= 1.0 {
		p.lapCount++
		p.lapTime = 0
		progress = 0
	}

	// Six pseudo-corners per lap: positive phase brakes, negative phase
	// accelerates.
	cornerPhase := math.Sin(2 * math.Pi * progress * 6)
	speed := 165.0 - math.Max(0, cornerPhase)*85.0
	brake := math.Max(0, cornerPhase)
	throttle := math.Max(0, -cornerPhase)
	steer := math.Sin(2*math.Pi*progress*6+0.5) * 0.6
	gear := int(speed / 30)
	if gear < 2 {
		gear = 2
	} else if gear > 6 {
		gear = 6
	}

	sector := 1
	switch {
	case progress >= 2.0/3.0:
		sector = 3
	case progress >= 1.0/3.0:
		sector = 2
	}

	theta := 2 * math.Pi * progress
	p.fuelL -= p.fuelPerLapL / p.LapTimeS * dt
	estLaps := p.fuelL / p.fuelPerLapL

	tick := telemetry.Tick{
		SessionTimeS: p.sessionTime,
		LapCount:     p.lapCount,
		LapTimeS:     p.lapTime,
		Sector:       sector,
		Spline:       progress,
		SpeedKmh:     speed,
		Throttle:     throttle,
		Brake:        brake,
		Steer:        steer,
		Gear:         gear,
		RPM:          int(3000 + speed*45),
		TrackName:    p.TrackName,
		TrackLengthM: 5700,
		CarName:      p.CarName,
		WorldPosX:    telemetry.Float64(math.Cos(theta) * 1000),
		WorldPosZ:    telemetry.Float64(math.Sin(theta) * 800),
		FuelL:        telemetry.Float64(p.fuelL),
	}
	tick.FuelEstimatedLaps = telemetry.Float64(estLaps)

	p.sessionTime += dt
	p.lapTime += dt
	return tick
}
