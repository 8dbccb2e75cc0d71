package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/trackmap/internal/monitoring"
	"github.com/banshee-data/trackmap/internal/serialmux"
	"github.com/banshee-data/trackmap/internal/telemetry"
)

// serialFieldCount is the number of comma-separated fields in one
// telemetry line:
//
//	session_time,lap,lap_time,sector,spline,speed,throttle,brake,steer,gear,rpm,world_x,world_z
//
// world_x and world_z may be empty when the rig has no position fix.
const serialFieldCount = 13

// SerialProvider consumes CSV telemetry lines from a serial feed.
// Malformed lines are logged and skipped, never fatal.
type SerialProvider struct {
	Device string
	Opts   serialmux.PortOptions

	mux serialmux.SerialMuxInterface
}

// NewSerialProvider reads telemetry from the serial device at path.
func NewSerialProvider(device string, opts serialmux.PortOptions) *SerialProvider {
	return &SerialProvider{Device: device, Opts: opts}
}

// NewSerialProviderWithMux wires an existing mux, for tests and replay
// harnesses.
func NewSerialProviderWithMux(mux serialmux.SerialMuxInterface) *SerialProvider {
	return &SerialProvider{mux: mux}
}

func (p *SerialProvider) Connect() error {
	if p.mux != nil {
		return nil
	}
	mux, err := serialmux.NewRealSerialMux(p.Device, p.Opts)
	if err != nil {
		return fmt.Errorf("failed to connect serial provider: %w", err)
	}
	p.mux = mux
	return nil
}

func (p *SerialProvider) Close() error {
	if p.mux == nil {
		return nil
	}
	return p.mux.Close()
}

// Stream reads lines from the serial feed until the context is
// cancelled or the feed ends.
func (p *SerialProvider) Stream(ctx context.Context, out chan<- telemetry.Tick) error {
	if p.mux == nil {
		return fmt.Errorf("serial provider not connected")
	}

	id, lines := p.mux.Subscribe()
	defer p.mux.Unsubscribe(id)

	monitorErr := make(chan error, 1)
	go func() { monitorErr <- p.mux.Monitor(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-monitorErr:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			tick, err := ParseTelemetryLine(line)
			if err != nil {
				monitoring.Logf("skipping malformed telemetry line: %v", err)
				continue
			}
			select {
			case out <- tick:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// ParseTelemetryLine parses one CSV telemetry line into a tick.
func ParseTelemetryLine(line string) (telemetry.Tick, error) {
	var tick telemetry.Tick

	segments := strings.Split(strings.TrimSpace(line), ",")
	if len(segments) != serialFieldCount {
		return tick, fmt.Errorf("expected %d fields, got %d", serialFieldCount, len(segments))
	}

	var err error
	if tick.SessionTimeS, err = strconv.ParseFloat(segments[0], 64); err != nil {
		return tick, fmt.Errorf("failed to parse session time: %w", err)
	}
	if tick.LapCount, err = strconv.Atoi(segments[1]); err != nil {
		return tick, fmt.Errorf("failed to parse lap count: %w", err)
	}
	if tick.LapTimeS, err = strconv.ParseFloat(segments[2], 64); err != nil {
		return tick, fmt.Errorf("failed to parse lap time: %w", err)
	}
	if tick.Sector, err = strconv.Atoi(segments[3]); err != nil {
		return tick, fmt.Errorf("failed to parse sector: %w", err)
	}
	if tick.Spline, err = strconv.ParseFloat(segments[4], 64); err != nil {
		return tick, fmt.Errorf("failed to parse spline: %w", err)
	}
	if tick.SpeedKmh, err = strconv.ParseFloat(segments[5], 64); err != nil {
		return tick, fmt.Errorf("failed to parse speed: %w", err)
	}
	if tick.Throttle, err = strconv.ParseFloat(segments[6], 64); err != nil {
		return tick, fmt.Errorf("failed to parse throttle: %w", err)
	}
	if tick.Brake, err = strconv.ParseFloat(segments[7], 64); err != nil {
		return tick, fmt.Errorf("failed to parse brake: %w", err)
	}
	if tick.Steer, err = strconv.ParseFloat(segments[8], 64); err != nil {
		return tick, fmt.Errorf("failed to parse steer: %w", err)
	}
	if tick.Gear, err = strconv.Atoi(segments[9]); err != nil {
		return tick, fmt.Errorf("failed to parse gear: %w", err)
	}
	if tick.RPM, err = strconv.Atoi(segments[10]); err != nil {
		return tick, fmt.Errorf("failed to parse rpm: %w", err)
	}

	// World position is optional; either both fields parse or the tick
	// carries no position.
	if segments[11] != "" && segments[12] != "" {
		x, errX := strconv.ParseFloat(segments[11], 64)
		z, errZ := strconv.ParseFloat(segments[12], 64)
		if errX == nil && errZ == nil {
			tick.WorldPosX = telemetry.Float64(x)
			tick.WorldPosZ = telemetry.Float64(z)
		}
	}

	return tick, nil
}
