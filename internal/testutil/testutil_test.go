package testutil

import (
	"errors"
	"net/http"
	"testing"
)

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertStatusCode(t, http.StatusOK, http.StatusOK)
	AssertNoError(t, nil)
	AssertError(t, errors.New("something wrong"))
}

func TestNewTestRequest(t *testing.T) {
	req := NewTestRequest(http.MethodPost, "/api/test")
	if req.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", req.Method)
	}
	if req.URL.Path != "/api/test" {
		t.Errorf("path = %s, want /api/test", req.URL.Path)
	}
}

func TestLapTicks(t *testing.T) {
	ticks := LapTicks(100)
	if len(ticks) != 100 {
		t.Fatalf("got %d ticks, want 100", len(ticks))
	}
	for i, tick := range ticks {
		if !tick.WorldValid() {
			t.Fatalf("tick %d has no world position", i)
		}
		if tick.Spline < 0 || tick.Spline >= 1 {
			t.Fatalf("tick %d spline %f out of [0,1)", i, tick.Spline)
		}
	}
	// Speed ramps monotonically with lap fraction.
	if ticks[99].SpeedKmh <= ticks[0].SpeedKmh {
		t.Error("expected speed to increase across the lap")
	}
}

func TestSplineTicks(t *testing.T) {
	ticks := SplineTicks(10)
	for i, tick := range ticks {
		if tick.WorldValid() {
			t.Fatalf("tick %d should not carry world position", i)
		}
	}
}

func TestNewSessionState(t *testing.T) {
	state := NewSessionState(LapTicks(25))
	if state.TickCount() != 25 {
		t.Errorf("tick count = %d, want 25", state.TickCount())
	}
	snap := state.Snapshot()
	if snap.Status != "connected" {
		t.Errorf("status = %q, want connected", snap.Status)
	}
}
