package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

func TestEmptyAppConfigDefaults(t *testing.T) {
	cfg := EmptyAppConfig()

	if cfg.GetProviderMode() != ProviderMock {
		t.Errorf("GetProviderMode() = %q, want mock", cfg.GetProviderMode())
	}
	if cfg.GetTickRateHz() != 20.0 {
		t.Errorf("GetTickRateHz() = %f, want 20", cfg.GetTickRateHz())
	}
	if cfg.GetReplaySpeed() != 1.0 {
		t.Errorf("GetReplaySpeed() = %f, want 1", cfg.GetReplaySpeed())
	}
	if cfg.GetSerialDevice() != "/dev/ttyUSB0" {
		t.Errorf("GetSerialDevice() = %q, want /dev/ttyUSB0", cfg.GetSerialDevice())
	}
	if cfg.GetSerialBaudRate() != 115200 {
		t.Errorf("GetSerialBaudRate() = %d, want 115200", cfg.GetSerialBaudRate())
	}
	if cfg.GetHistoryCap() != telemetry.DefaultHistoryCap {
		t.Errorf("GetHistoryCap() = %d, want %d", cfg.GetHistoryCap(), telemetry.DefaultHistoryCap)
	}
	if cfg.GetRecord() != false {
		t.Errorf("GetRecord() = %v, want false", cfg.GetRecord())
	}
	if cfg.GetListenAddress() != ":8080" {
		t.Errorf("GetListenAddress() = %q, want :8080", cfg.GetListenAddress())
	}
	if cfg.GetMapWidth() != 960 || cfg.GetMapHeight() != 540 {
		t.Errorf("map size = %dx%d, want 960x540", cfg.GetMapWidth(), cfg.GetMapHeight())
	}
	if cfg.GetDBPath() != "data/trackmap.db" {
		t.Errorf("GetDBPath() = %q, want data/trackmap.db", cfg.GetDBPath())
	}
}

func TestLoadAppConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "provider_mode": "replay",
  "replay_session_id": "abc-123",
  "replay_speed": 2.5,
  "history_cap": 5000,
  "record": true,
  "listen_address": ":9090",
  "map_width": 1280,
  "map_height": 720,
  "db_path": "/tmp/sessions.db"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadAppConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetProviderMode() != ProviderReplay {
		t.Errorf("GetProviderMode() = %q, want replay", cfg.GetProviderMode())
	}
	if cfg.GetReplaySessionID() != "abc-123" {
		t.Errorf("GetReplaySessionID() = %q, want abc-123", cfg.GetReplaySessionID())
	}
	if cfg.GetReplaySpeed() != 2.5 {
		t.Errorf("GetReplaySpeed() = %f, want 2.5", cfg.GetReplaySpeed())
	}
	if cfg.GetHistoryCap() != 5000 {
		t.Errorf("GetHistoryCap() = %d, want 5000", cfg.GetHistoryCap())
	}
	if !cfg.GetRecord() {
		t.Error("GetRecord() = false, want true")
	}
	if cfg.GetListenAddress() != ":9090" {
		t.Errorf("GetListenAddress() = %q, want :9090", cfg.GetListenAddress())
	}
	if cfg.GetMapWidth() != 1280 || cfg.GetMapHeight() != 720 {
		t.Errorf("map size = %dx%d, want 1280x720", cfg.GetMapWidth(), cfg.GetMapHeight())
	}
	if cfg.GetDBPath() != "/tmp/sessions.db" {
		t.Errorf("GetDBPath() = %q, want /tmp/sessions.db", cfg.GetDBPath())
	}

	// Fields omitted from the file keep their defaults
	if cfg.GetTickRateHz() != 20.0 {
		t.Errorf("GetTickRateHz() = %f, want default 20", cfg.GetTickRateHz())
	}
	if cfg.GetSerialDevice() != "/dev/ttyUSB0" {
		t.Errorf("GetSerialDevice() = %q, want default", cfg.GetSerialDevice())
	}
}

func TestLoadAppConfig_WrongExtension(t *testing.T) {
	if _, err := LoadAppConfig("config.yaml"); err == nil {
		t.Error("Expected error for non-json extension")
	}
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadAppConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(configPath); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestAppConfigValidate(t *testing.T) {
	bad := func(mutate func(*AppConfig)) *AppConfig {
		cfg := EmptyAppConfig()
		mutate(cfg)
		return cfg
	}
	strPtr := func(s string) *string { return &s }
	intPtr := func(v int) *int { return &v }
	floatPtr := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		cfg  *AppConfig
	}{
		{"unknown provider", bad(func(c *AppConfig) { c.ProviderMode = strPtr("udp") })},
		{"zero tick rate", bad(func(c *AppConfig) { c.TickRateHz = floatPtr(0) })},
		{"negative replay speed", bad(func(c *AppConfig) { c.ReplaySpeed = floatPtr(-1) })},
		{"zero baud", bad(func(c *AppConfig) { c.SerialBaudRate = intPtr(0) })},
		{"zero history cap", bad(func(c *AppConfig) { c.HistoryCap = intPtr(0) })},
		{"zero map width", bad(func(c *AppConfig) { c.MapWidth = intPtr(0) })},
		{"negative map height", bad(func(c *AppConfig) { c.MapHeight = intPtr(-1) })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}

	if err := EmptyAppConfig().Validate(); err != nil {
		t.Errorf("empty config should validate, got %v", err)
	}
}
