package dashboard

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/testutil"
)

func newTestState(worldTicks int) *telemetry.SessionState {
	return testutil.NewSessionState(testutil.LapTicks(worldTicks))
}

func TestNewWebServer_Defaults(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(1)})

	if server == nil {
		t.Fatal("NewWebServer returned nil")
	}
	if server.theme == nil {
		t.Error("WebServer theme not defaulted")
	}
	if server.mapWidth != defaultMapWidth || server.mapHeight != defaultMapHeight {
		t.Errorf("map size = %dx%d, want defaults", server.mapWidth, server.mapHeight)
	}
}

func TestWebServer_HealthHandler(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(1)})

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status": "ok"`) {
		t.Errorf("unexpected health body: %s", rr.Body.String())
	}
}

func TestWebServer_StateHandler(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(10)})

	req := httptest.NewRequest("GET", "/api/state", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var snap telemetry.Snapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.TickCount != 10 {
		t.Errorf("tick count = %d, want 10", snap.TickCount)
	}
	if snap.Status != "connected" {
		t.Errorf("status = %q, want connected", snap.Status)
	}
	if len(snap.TrackProgress) != 10 {
		t.Errorf("track progress = %d points, want 10", len(snap.TrackProgress))
	}
}

func TestWebServer_StateHandler_MethodNotAllowed(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(1)})

	req := httptest.NewRequest("POST", "/api/state", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

func TestWebServer_TrackMapHandler(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(200)})

	req := httptest.NewRequest("GET", "/api/track/map.png?width=320&height=240", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if mode := rr.Header().Get("X-Render-Mode"); mode == "" {
		t.Error("missing X-Render-Mode header")
	}

	img, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("image size = %dx%d, want 320x240", bounds.Dx(), bounds.Dy())
	}
}

func TestWebServer_TrackMapHandler_WorldMode(t *testing.T) {
	// 200 ticks around a 2000x1600 m ellipse clears both the sample
	// count and span thresholds for world rendering.
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(200)})

	req := httptest.NewRequest("GET", "/api/track/map.png", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if mode := rr.Header().Get("X-Render-Mode"); mode != "world coordinates" {
		t.Errorf("render mode = %q, want world coordinates", mode)
	}
}

func TestWebServer_TrackMapHandler_SplineFallback(t *testing.T) {
	state := telemetry.NewSessionState("mock", telemetry.DefaultHistoryCap)
	state.UpdateTick(telemetry.Tick{Spline: 0.5, SpeedKmh: 100, TrackName: "mock_ring"})
	server := NewWebServer(WebServerConfig{Address: ":0", State: state})

	req := httptest.NewRequest("GET", "/api/track/map.png", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if mode := rr.Header().Get("X-Render-Mode"); !strings.HasPrefix(mode, "spline fallback") {
		t.Errorf("render mode = %q, want spline fallback", mode)
	}
}

func TestWebServer_StatusPage(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":8080", State: newTestState(10)})

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"test_ring", "test_gt3", "connected", "/api/track/map.png"} {
		if !strings.Contains(body, want) {
			t.Errorf("status page missing %q", want)
		}
	}
}

func TestWebServer_StatusPage_NotFoundElsewhere(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(1)})

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestWebServer_SessionsHandler_NoDB(t *testing.T) {
	server := NewWebServer(WebServerConfig{Address: ":0", State: newTestState(1)})

	req := httptest.NewRequest("GET", "/api/sessions", nil)
	rr := httptest.NewRecorder()
	server.setupRoutes().ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}
