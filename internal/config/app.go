package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

// Provider mode values accepted by GetProviderMode.
const (
	ProviderMock   = "mock"
	ProviderReplay = "replay"
	ProviderSerial = "serial"
)

// AppConfig represents the root application configuration. All fields
// are optional pointers so a partial JSON file only overrides what it
// names; the Get* methods supply defaults for everything else.
type AppConfig struct {
	// Provider params
	ProviderMode    *string  `json:"provider_mode,omitempty"`
	TickRateHz      *float64 `json:"tick_rate_hz,omitempty"`
	ReplaySessionID *string  `json:"replay_session_id,omitempty"`
	ReplaySpeed     *float64 `json:"replay_speed,omitempty"`
	SerialDevice    *string  `json:"serial_device,omitempty"`
	SerialBaudRate  *int     `json:"serial_baud_rate,omitempty"`

	// Session params
	HistoryCap *int  `json:"history_cap,omitempty"`
	Record     *bool `json:"record,omitempty"`

	// Dashboard params
	ListenAddress *string `json:"listen_address,omitempty"`
	MapWidth      *int    `json:"map_width,omitempty"`
	MapHeight     *int    `json:"map_height,omitempty"`

	// Storage params
	DBPath *string `json:"db_path,omitempty"`
}

// EmptyAppConfig returns an AppConfig with all fields set to nil.
func EmptyAppConfig() *AppConfig {
	return &AppConfig{}
}

// LoadAppConfig loads an AppConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadAppConfig(path string) (*AppConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAppConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *AppConfig) Validate() error {
	if c.ProviderMode != nil {
		switch *c.ProviderMode {
		case ProviderMock, ProviderReplay, ProviderSerial:
		default:
			return fmt.Errorf("provider_mode must be one of mock, replay, serial; got %q", *c.ProviderMode)
		}
	}

	if c.TickRateHz != nil && *c.TickRateHz <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive, got %f", *c.TickRateHz)
	}

	if c.ReplaySpeed != nil && *c.ReplaySpeed < 0 {
		return fmt.Errorf("replay_speed must be non-negative, got %f", *c.ReplaySpeed)
	}

	if c.SerialBaudRate != nil && *c.SerialBaudRate <= 0 {
		return fmt.Errorf("serial_baud_rate must be positive, got %d", *c.SerialBaudRate)
	}

	if c.HistoryCap != nil && *c.HistoryCap <= 0 {
		return fmt.Errorf("history_cap must be positive, got %d", *c.HistoryCap)
	}

	if c.MapWidth != nil && *c.MapWidth <= 0 {
		return fmt.Errorf("map_width must be positive, got %d", *c.MapWidth)
	}
	if c.MapHeight != nil && *c.MapHeight <= 0 {
		return fmt.Errorf("map_height must be positive, got %d", *c.MapHeight)
	}

	return nil
}

// GetProviderMode returns the provider_mode value or the default.
func (c *AppConfig) GetProviderMode() string {
	if c.ProviderMode == nil || *c.ProviderMode == "" {
		return ProviderMock // default
	}
	return *c.ProviderMode
}

// GetTickRateHz returns the tick_rate_hz value or the default.
func (c *AppConfig) GetTickRateHz() float64 {
	if c.TickRateHz == nil {
		return 20.0 // default
	}
	return *c.TickRateHz
}

// GetReplaySessionID returns the replay_session_id value or empty,
// which replays the most recent recorded session.
func (c *AppConfig) GetReplaySessionID() string {
	if c.ReplaySessionID == nil {
		return ""
	}
	return *c.ReplaySessionID
}

// GetReplaySpeed returns the replay_speed value or the default.
func (c *AppConfig) GetReplaySpeed() float64 {
	if c.ReplaySpeed == nil {
		return 1.0 // default: real time
	}
	return *c.ReplaySpeed
}

// GetSerialDevice returns the serial_device value or the default.
func (c *AppConfig) GetSerialDevice() string {
	if c.SerialDevice == nil || *c.SerialDevice == "" {
		return "/dev/ttyUSB0" // default
	}
	return *c.SerialDevice
}

// GetSerialBaudRate returns the serial_baud_rate value or the default.
func (c *AppConfig) GetSerialBaudRate() int {
	if c.SerialBaudRate == nil {
		return 115200 // default
	}
	return *c.SerialBaudRate
}

// GetHistoryCap returns the history_cap value or the default.
func (c *AppConfig) GetHistoryCap() int {
	if c.HistoryCap == nil {
		return telemetry.DefaultHistoryCap
	}
	return *c.HistoryCap
}

// GetRecord returns the record value or the default.
func (c *AppConfig) GetRecord() bool {
	if c.Record == nil {
		return false // default: recording disabled
	}
	return *c.Record
}

// GetListenAddress returns the listen_address value or the default.
func (c *AppConfig) GetListenAddress() string {
	if c.ListenAddress == nil || *c.ListenAddress == "" {
		return ":8080" // default
	}
	return *c.ListenAddress
}

// GetMapWidth returns the map_width value or the default.
func (c *AppConfig) GetMapWidth() int {
	if c.MapWidth == nil {
		return 960 // default
	}
	return *c.MapWidth
}

// GetMapHeight returns the map_height value or the default.
func (c *AppConfig) GetMapHeight() int {
	if c.MapHeight == nil {
		return 540 // default
	}
	return *c.MapHeight
}

// GetDBPath returns the db_path value or the default.
func (c *AppConfig) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return "data/trackmap.db" // default
	}
	return *c.DBPath
}
