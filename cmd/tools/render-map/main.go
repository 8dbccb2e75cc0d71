// Command render-map renders the track map for a recorded session to
// a PNG file, without running the live dashboard.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/trackmap/internal/render"
	"github.com/banshee-data/trackmap/internal/security"
	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/tickdb"
)

func main() {
	dbPath := flag.String("db", "data/trackmap.db", "path to session database")
	sessionID := flag.String("session", "", "session to render (default: most recent)")
	output := flag.String("o", "", "output path (default: track-map-<session>.png)")
	width := flag.Int("width", 1280, "image width in pixels")
	height := flag.Int("height", 720, "image height in pixels")
	flag.Parse()

	db, err := tickdb.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open session database: %v", err)
	}
	defer db.Close()

	id := *sessionID
	if id == "" {
		id, err = db.LatestSessionID()
		if err != nil {
			log.Fatalf("failed to find a session: %v", err)
		}
	}

	ticks, err := db.Ticks(id)
	if err != nil {
		log.Fatalf("failed to load session %s: %v", id, err)
	}
	if len(ticks) == 0 {
		log.Fatalf("session %s has no ticks", id)
	}

	history := make([]telemetry.TrackPoint, 0, len(ticks))
	for _, tick := range ticks {
		history = append(history, telemetry.NewTrackPoint(tick))
	}
	last := ticks[len(ticks)-1]

	outPath := *output
	if outPath == "" {
		outPath = fmt.Sprintf("track-map-%s.png", security.SanitizeFilename(id))
	}
	if err := security.ValidateExportPath(outPath); err != nil {
		log.Fatalf("refusing output path: %v", err)
	}

	surface := render.NewImageSurface(*width, *height)
	mode := render.Render(surface, history, last, render.DefaultTheme())

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer f.Close()
	if err := surface.WritePNG(f); err != nil {
		log.Fatalf("failed to write PNG: %v", err)
	}

	log.Printf("✓ Rendered %d ticks of session %s (%s) to %s", len(ticks), id, mode, outPath)
}
