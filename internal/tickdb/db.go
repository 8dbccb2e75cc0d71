// Package tickdb persists raw telemetry ticks per session for replay
// and offline analysis.
package tickdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

// DB wraps the sqlite connection holding recorded sessions.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the tick database at path and applies any
// pending schema migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tick database: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SessionInfo describes one recorded session.
type SessionInfo struct {
	ID        string    `json:"session_id"`
	TrackName string    `json:"track_name"`
	CarName   string    `json:"car_name"`
	StartedAt time.Time `json:"started_at"`
	TickCount int       `json:"tick_count"`
}

// CreateSession registers a new recording session and returns its ID.
func (db *DB) CreateSession(trackName, carName string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO sessions (session_id, track_name, car_name) VALUES (?, ?, ?)`,
		id, trackName, carName,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// RecordTick appends one telemetry tick to a session.
func (db *DB) RecordTick(sessionID string, t telemetry.Tick) error {
	_, err := db.Exec(`
		INSERT INTO ticks (
			session_id, session_time_s, lap_count, lap_time_s, sector,
			spline, speed_kmh, throttle, brake, steer, gear, rpm,
			is_in_pit, world_x, world_z, fuel_l
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, t.SessionTimeS, t.LapCount, t.LapTimeS, t.Sector,
		t.Spline, t.SpeedKmh, t.Throttle, t.Brake, t.Steer, t.Gear, t.RPM,
		t.InPit, nullable(t.WorldPosX), nullable(t.WorldPosZ), nullable(t.FuelL),
	)
	if err != nil {
		return fmt.Errorf("failed to record tick: %w", err)
	}
	return nil
}

// Ticks loads all ticks of a session in time order.
func (db *DB) Ticks(sessionID string) ([]telemetry.Tick, error) {
	rows, err := db.Query(`
		SELECT session_time_s, lap_count, lap_time_s, sector, spline,
			speed_kmh, throttle, brake, steer, gear, rpm, is_in_pit,
			world_x, world_z, fuel_l
		FROM ticks WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []telemetry.Tick
	for rows.Next() {
		var (
			t                    telemetry.Tick
			worldX, worldZ, fuel sql.NullFloat64
		)
		err := rows.Scan(
			&t.SessionTimeS, &t.LapCount, &t.LapTimeS, &t.Sector, &t.Spline,
			&t.SpeedKmh, &t.Throttle, &t.Brake, &t.Steer, &t.Gear, &t.RPM,
			&t.InPit, &worldX, &worldZ, &fuel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		if worldX.Valid {
			t.WorldPosX = telemetry.Float64(worldX.Float64)
		}
		if worldZ.Valid {
			t.WorldPosZ = telemetry.Float64(worldZ.Float64)
		}
		if fuel.Valid {
			t.FuelL = telemetry.Float64(fuel.Float64)
		}
		ticks = append(ticks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ticks: %w", err)
	}
	return ticks, nil
}

// Sessions lists all recorded sessions, newest first.
func (db *DB) Sessions() ([]SessionInfo, error) {
	rows, err := db.Query(`
		SELECT s.session_id, s.track_name, s.car_name, s.started_at,
			COUNT(t.id)
		FROM sessions s
		LEFT JOIN ticks t ON t.session_id = s.session_id
		GROUP BY s.session_id
		ORDER BY s.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.TrackName, &info.CarName, &info.StartedAt, &info.TickCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// LatestSessionID returns the most recently started session.
func (db *DB) LatestSessionID() (string, error) {
	var id string
	err := db.QueryRow(
		`SELECT session_id FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no recorded sessions")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest session: %w", err)
	}
	return id, nil
}

func nullable(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
