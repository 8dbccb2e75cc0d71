package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

func TestSpeedChartHandler(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(500)})

	req := httptest.NewRequest("GET", "/api/charts/speed", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rr.Body.String(), "echarts") {
		t.Error("chart body does not reference echarts")
	}
}

func TestSpeedChartHandler_NoSamples(t *testing.T) {
	state := telemetry.NewSessionState("mock", telemetry.DefaultHistoryCap)
	server := NewWebServer(WebServerConfig{Address: ":0", State: state})

	req := httptest.NewRequest("GET", "/api/charts/speed", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestSpeedChartHandler_InvalidUnits(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(200)})

	req := httptest.NewRequest("GET", "/api/charts/speed?units=knots", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestSpeedChartHandler_MphUnits(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(200)})

	req := httptest.NewRequest("GET", "/api/charts/speed?units=mph", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Speed (mph)") {
		t.Error("chart axis does not reflect requested units")
	}
}

func TestTrackChartHandler(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(500)})

	req := httptest.NewRequest("GET", "/api/charts/track?max_points=200", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "echarts") {
		t.Error("chart body does not reference echarts")
	}
}

func TestTrackChartHandler_NoWorldSamples(t *testing.T) {
	state := telemetry.NewSessionState("mock", telemetry.DefaultHistoryCap)
	state.UpdateTick(telemetry.Tick{Spline: 0.1, SpeedKmh: 80, TrackName: "mock_ring"})
	server := NewWebServer(WebServerConfig{Address: ":0", State: state})

	req := httptest.NewRequest("GET", "/api/charts/track", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
