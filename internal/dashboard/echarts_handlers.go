package dashboard

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/trackmap/internal/httputil"
	"github.com/banshee-data/trackmap/internal/units"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleSpeedChart renders a line chart (HTML) of recent speed over
// session progress using go-echarts. This is a debugging-only endpoint
// to eyeball the speed trace without the overlay UI.
// Query params:
//   - max_points (optional; default 2000) to reduce payload size
//   - units (optional; default kph) one of mps, mph, kmph, kph
func (ws *WebServer) handleSpeedChart(w http.ResponseWriter, r *http.Request) {
	if ws.state == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no session state configured")
		return
	}

	maxPoints := 2000
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 100 && v <= 50000 {
			maxPoints = v
		}
	}

	unit := units.KPH
	if u := r.URL.Query().Get("units"); u != "" {
		if !units.IsValid(u) {
			httputil.WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid units %q, expected one of %s", u, units.GetValidUnitsString()))
			return
		}
		unit = u
	}

	snap := ws.state.Snapshot()
	points := snap.TrackProgress
	if len(points) == 0 {
		httputil.WriteJSONError(w, http.StatusNotFound, "no telemetry samples available")
		return
	}

	// Downsample by stride to stay within maxPoints
	stride := 1
	if len(points) > maxPoints {
		stride = int(math.Ceil(float64(len(points)) / float64(maxPoints)))
	}

	x := make([]string, 0, len(points)/stride+1)
	y := make([]opts.LineData, 0, len(points)/stride+1)
	for i := 0; i < len(points); i += stride {
		p := points[i]
		x = append(x, fmt.Sprintf("%.3f", p.Spline))
		y = append(y, opts.LineData{Value: units.ConvertSpeedKmh(p.SpeedKmh, unit)})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Speed Trace", Theme: "dark", Width: "1200px", Height: "600px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Speed Trace", Subtitle: fmt.Sprintf("track=%s points=%d stride=%d mean=%.1f max=%.1f", snap.LastTick.TrackName, len(y), stride, units.ConvertSpeedKmh(snap.Speed.MeanKmh, unit), units.ConvertSpeedKmh(snap.Speed.MaxKmh, unit))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Lap fraction"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Speed (%s)", unit)}),
	)
	line.SetXAxis(x).AddSeries("speed", y)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleTrackChart renders the world trajectory as a square scatter
// plot colored by speed, for comparing against the PNG map output.
// Query params:
//   - max_points (optional; default 8000)
func (ws *WebServer) handleTrackChart(w http.ResponseWriter, r *http.Request) {
	if ws.state == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "no session state configured")
		return
	}

	maxPoints := 8000
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 100 && v <= 50000 {
			maxPoints = v
		}
	}

	snap := ws.state.Snapshot()
	var world []struct{ x, z, speed float64 }
	for _, p := range snap.TrackProgress {
		if !p.WorldValid() {
			continue
		}
		world = append(world, struct{ x, z, speed float64 }{*p.WorldX, *p.WorldZ, p.SpeedKmh})
	}
	if len(world) == 0 {
		httputil.WriteJSONError(w, http.StatusNotFound, "no world coordinate samples available")
		return
	}

	// Downsample by stride to stay within maxPoints
	stride := 1
	if len(world) > maxPoints {
		stride = int(math.Ceil(float64(len(world)) / float64(maxPoints)))
	}

	data := make([]opts.ScatterData, 0, len(world)/stride+1)
	maxAbs := 0.0
	maxSpeed := 0.0
	for i := 0; i < len(world); i += stride {
		p := world[i]
		if math.Abs(p.x) > maxAbs {
			maxAbs = math.Abs(p.x)
		}
		if math.Abs(p.z) > maxAbs {
			maxAbs = math.Abs(p.z)
		}
		if p.speed > maxSpeed {
			maxSpeed = p.speed
		}
		data = append(data, opts.ScatterData{Value: []interface{}{p.x, p.z, p.speed}})
	}

	// Add a small padding so points at the edges are visible
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}
	if maxSpeed == 0 {
		maxSpeed = 1
	}

	// Force a square plot by using equal width/height and symmetric axis ranges
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Track Trajectory", Theme: "dark", Width: "900px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Track Trajectory", Subtitle: fmt.Sprintf("track=%s points=%d stride=%d at=%s", snap.LastTick.TrackName, len(data), stride, time.Now().UTC().Format(time.RFC3339))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Z (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxSpeed),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("trajectory", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
