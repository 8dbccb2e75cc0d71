// Package dashboard serves the live HTTP interface for a telemetry
// session: a status page, a JSON state snapshot, the rendered track
// map PNG, and a couple of debug charts.
package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/trackmap/internal/httputil"
	"github.com/banshee-data/trackmap/internal/render"
	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/tickdb"
	"github.com/banshee-data/trackmap/internal/version"
)

//go:embed status.html
var StatusHTML embed.FS

const (
	defaultMapWidth  = 960
	defaultMapHeight = 540
	maxMapDimension  = 4096
)

// WebServer handles the HTTP interface for a live telemetry session.
// It provides endpoints for health checks, the state snapshot, and
// the rendered track map.
type WebServer struct {
	address   string
	state     *telemetry.SessionState
	theme     render.Theme
	mapWidth  int
	mapHeight int
	db        *tickdb.DB
	server    *http.Server
}

// WebServerConfig contains configuration options for the web server
type WebServerConfig struct {
	Address   string
	State     *telemetry.SessionState
	Theme     render.Theme
	MapWidth  int
	MapHeight int
	DB        *tickdb.DB
}

// NewWebServer creates a new web server with the provided configuration
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address:   config.Address,
		state:     config.State,
		theme:     config.Theme,
		mapWidth:  config.MapWidth,
		mapHeight: config.MapHeight,
		db:        config.DB,
	}
	if ws.theme == nil {
		ws.theme = render.DefaultTheme()
	}
	if ws.mapWidth <= 0 {
		ws.mapWidth = defaultMapWidth
	}
	if ws.mapHeight <= 0 {
		ws.mapHeight = defaultMapHeight
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown
func (ws *WebServer) Start(ctx context.Context) error {
	// Start server in a goroutine so it doesn't block
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		// Force close the server if graceful shutdown fails
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleStatus)
	mux.HandleFunc("/api/state", ws.handleState)
	mux.HandleFunc("/api/track/map.png", ws.handleTrackMap)
	mux.HandleFunc("/api/sessions", ws.handleSessions)
	mux.HandleFunc("/api/charts/speed", ws.handleSpeedChart)
	mux.HandleFunc("/api/charts/track", ws.handleTrackChart)

	return mux
}

// handleHealth handles the health check endpoint
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "ok", "service": "trackmap", "version": "%s", "timestamp": "%s"}`, version.Version, time.Now().UTC().Format(time.RFC3339))
}

// handleState returns the full session snapshot as JSON.
func (ws *WebServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if ws.state == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no session state configured")
		return
	}
	httputil.WriteJSONOK(w, ws.state.Snapshot())
}

// handleTrackMap renders the current track map as a PNG.
// Query params:
//
//	width (optional, default 960)
//	height (optional, default 540)
//
// The render mode chosen for the frame is reported in the
// X-Render-Mode response header.
func (ws *WebServer) handleTrackMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if ws.state == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no session state configured")
		return
	}

	width := ws.mapWidth
	height := ws.mapHeight
	if v := r.URL.Query().Get("width"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= maxMapDimension {
			width = parsed
		}
	}
	if v := r.URL.Query().Get("height"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= maxMapDimension {
			height = parsed
		}
	}

	snap := ws.state.Snapshot()
	surface := render.NewImageSurface(width, height)
	mode := render.Render(surface, snap.TrackProgress, snap.LastTick, ws.theme)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Render-Mode", mode)
	if err := surface.WritePNG(w); err != nil {
		log.Printf("failed to encode track map PNG: %v", err)
	}
}

// handleSessions lists recorded sessions from the tick database.
func (ws *WebServer) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.WriteJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if ws.db == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no database configured for session lookup")
		return
	}
	sessions, err := ws.db.Sessions()
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("list sessions: %v", err))
		return
	}
	httputil.WriteJSONOK(w, sessions)
}

// handleStatus handles the main status page endpoint
func (ws *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if ws.state == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no session state configured")
		return
	}
	w.Header().Set("Content-Type", "text/html")

	tmpl, err := template.ParseFS(StatusHTML, "status.html")
	if err != nil {
		http.Error(w, "Error loading template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	snap := ws.state.Snapshot()

	recordingStatus := "disabled"
	if ws.db != nil {
		recordingStatus = "enabled"
	}

	data := struct {
		HTTPAddress     string
		Snapshot        telemetry.Snapshot
		Uptime          string
		RecordingStatus string
		MapWidth        int
		MapHeight       int
	}{
		HTTPAddress:     ws.address,
		Snapshot:        snap,
		Uptime:          (time.Duration(snap.UptimeS * float64(time.Second))).Round(time.Second).String(),
		RecordingStatus: recordingStatus,
		MapWidth:        ws.mapWidth,
		MapHeight:       ws.mapHeight,
	}

	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error executing template: "+err.Error(), http.StatusInternalServerError)
		return
	}
}
