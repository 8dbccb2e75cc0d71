package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/banshee-data/trackmap/internal/config"
	"github.com/banshee-data/trackmap/internal/dashboard"
	"github.com/banshee-data/trackmap/internal/provider"
	"github.com/banshee-data/trackmap/internal/render"
	"github.com/banshee-data/trackmap/internal/serialmux"
	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/tickdb"
	"github.com/banshee-data/trackmap/internal/version"
)

var (
	configPath   = flag.String("config", "", "Path to JSON config file (optional)")
	listen       = flag.String("listen", "", "Listen address (overrides config)")
	providerMode = flag.String("provider", "", "Telemetry provider: mock, replay or serial (overrides config)")
	dbPath       = flag.String("db", "", "Path to sqlite session database (overrides config)")
	record       = flag.Bool("record", false, "Record incoming ticks to the session database")
)

func buildProvider(cfg *config.AppConfig, mode string, db *tickdb.DB) (provider.Provider, error) {
	switch mode {
	case config.ProviderMock:
		return provider.NewMockProvider(int(cfg.GetTickRateHz())), nil
	case config.ProviderReplay:
		if db == nil {
			return nil, fmt.Errorf("replay provider requires a session database")
		}
		return &provider.ReplayProvider{
			DB:        db,
			SessionID: cfg.GetReplaySessionID(),
			Speed:     cfg.GetReplaySpeed(),
		}, nil
	case config.ProviderSerial:
		opts := serialmux.PortOptions{BaudRate: cfg.GetSerialBaudRate()}
		return provider.NewSerialProvider(cfg.GetSerialDevice(), opts), nil
	default:
		return nil, fmt.Errorf("unknown provider mode %q", mode)
	}
}

func main() {
	flag.Parse()

	log.Printf("trackmap %s", version.String())

	cfg := config.EmptyAppConfig()
	if *configPath != "" {
		loaded, err := config.LoadAppConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Flags override the config file.
	address := cfg.GetListenAddress()
	if *listen != "" {
		address = *listen
	}
	mode := cfg.GetProviderMode()
	if *providerMode != "" {
		mode = *providerMode
	}
	storePath := cfg.GetDBPath()
	if *dbPath != "" {
		storePath = *dbPath
	}
	recording := cfg.GetRecord() || *record

	// The database is needed for replay input and for recording; open
	// it lazily so a plain mock session needs no data directory.
	var db *tickdb.DB
	if recording || mode == config.ProviderReplay {
		if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
			log.Fatalf("failed to create database directory: %v", err)
		}
		var err error
		db, err = tickdb.Open(storePath)
		if err != nil {
			log.Fatalf("failed to open session database: %v", err)
		}
		defer db.Close()
	}

	src, err := buildProvider(cfg, mode, db)
	if err != nil {
		log.Fatalf("failed to build provider: %v", err)
	}
	defer src.Close()

	state := telemetry.NewSessionState(mode, cfg.GetHistoryCap())

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run the provider routine to feed ticks into the session state
	ticks := make(chan telemetry.Tick, 64)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := src.Connect(); err != nil {
			log.Printf("failed to connect provider: %v", err)
			state.SetStatus(fmt.Sprintf("connect error: %v", err))
			return
		}
		state.SetStatus("connected")
		if err := src.Stream(ctx, ticks); err != nil && err != context.Canceled {
			log.Printf("provider stream ended: %v", err)
			state.SetStatus(fmt.Sprintf("stream error: %v", err))
			return
		}
		state.SetStatus("stream finished")
		log.Print("provider routine terminated")
	}()

	// consume ticks: update the live state and optionally record
	wg.Add(1)
	go func() {
		defer wg.Done()

		// The recording session is created on the first tick so the
		// session row carries the actual track and car names.
		var sessionID string
		for {
			select {
			case tick := <-ticks:
				state.UpdateTick(tick)
				if recording && db != nil {
					if sessionID == "" {
						id, err := db.CreateSession(tick.TrackName, tick.CarName)
						if err != nil {
							log.Printf("failed to create recording session: %v", err)
							recording = false
							break
						}
						sessionID = id
						log.Printf("recording session %s to %s", sessionID, storePath)
					}
					if err := db.RecordTick(sessionID, tick); err != nil {
						log.Printf("failed to record tick: %v", err)
					}
				}
			case <-ctx.Done():
				log.Printf("tick routine terminated")
				return
			}
		}
	}()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		ws := dashboard.NewWebServer(dashboard.WebServerConfig{
			Address:   address,
			State:     state,
			Theme:     render.DefaultTheme(),
			MapWidth:  cfg.GetMapWidth(),
			MapHeight: cfg.GetMapHeight(),
			DB:        db,
		})
		if err := ws.Start(ctx); err != nil {
			log.Printf("web server error: %v", err)
		}
	}()

	// Wait for all goroutines to finish
	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
