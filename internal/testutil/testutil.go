// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// LapTicks generates n evenly spaced ticks around one lap of an
// elliptical test circuit, with world coordinates spanning roughly
// 2000 x 1600 metres. Speed ramps with lap fraction so color and
// stats assertions have distinct values to check.
func LapTicks(n int) []telemetry.Tick {
	ticks := make([]telemetry.Tick, 0, n)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n)
		theta := f * 2 * math.Pi
		ticks = append(ticks, telemetry.Tick{
			SessionTimeS: f * 90,
			LapCount:     1,
			LapTimeS:     f * 90,
			Spline:       f,
			SpeedKmh:     100 + 80*f,
			Sector:       int(f*3) + 1,
			Gear:         4,
			RPM:          6000,
			TrackName:    "test_ring",
			TrackLengthM: 5000,
			CarName:      "test_gt3",
			WorldPosX:    telemetry.Float64(1000 * math.Cos(theta)),
			WorldPosZ:    telemetry.Float64(800 * math.Sin(theta)),
		})
	}
	return ticks
}

// SplineTicks generates n ticks with lap fraction only, no world
// coordinates, for exercising the fallback rendering path.
func SplineTicks(n int) []telemetry.Tick {
	ticks := make([]telemetry.Tick, 0, n)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n)
		ticks = append(ticks, telemetry.Tick{
			SessionTimeS: f * 90,
			LapCount:     1,
			Spline:       f,
			SpeedKmh:     100 + 80*f,
			Sector:       int(f*3) + 1,
			TrackName:    "test_ring",
			CarName:      "test_gt3",
		})
	}
	return ticks
}

// NewSessionState builds a SessionState preloaded with the given ticks.
func NewSessionState(ticks []telemetry.Tick) *telemetry.SessionState {
	state := telemetry.NewSessionState("test", telemetry.DefaultHistoryCap)
	state.SetStatus("connected")
	for _, tick := range ticks {
		state.UpdateTick(tick)
	}
	return state
}
