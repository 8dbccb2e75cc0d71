package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/tickdb"
)

// ReplayProvider plays back a recorded session from the tick database,
// pacing ticks by their original session-time deltas scaled by Speed.
// Speed 0 (or negative) replays as fast as the consumer accepts.
type ReplayProvider struct {
	DB        *tickdb.DB
	SessionID string
	Speed     float64

	ticks []telemetry.Tick
}

// NewReplayProvider replays the given session at the given speed factor.
// An empty sessionID selects the most recent recorded session on Connect.
func NewReplayProvider(db *tickdb.DB, sessionID string, speed float64) *ReplayProvider {
	return &ReplayProvider{DB: db, SessionID: sessionID, Speed: speed}
}

func (p *ReplayProvider) Connect() error {
	if p.DB == nil {
		return fmt.Errorf("replay provider requires a tick database")
	}

	if p.SessionID == "" {
		id, err := p.DB.LatestSessionID()
		if err != nil {
			return fmt.Errorf("failed to pick replay session: %w", err)
		}
		p.SessionID = id
	}

	ticks, err := p.DB.Ticks(p.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load replay session %s: %w", p.SessionID, err)
	}
	if len(ticks) == 0 {
		return fmt.Errorf("replay session %s has no ticks", p.SessionID)
	}
	p.ticks = ticks
	return nil
}

func (p *ReplayProvider) Close() error {
	p.ticks = nil
	return nil
}

// Stream replays the loaded ticks in order. Returns nil when the
// session is exhausted.
func (p *ReplayProvider) Stream(ctx context.Context, out chan<- telemetry.Tick) error {
	if len(p.ticks) == 0 {
		return fmt.Errorf("replay provider not connected")
	}

	prev := p.ticks[0].SessionTimeS
	for _, tick := range p.ticks {
		if p.Speed > 0 {
			delay := (tick.SessionTimeS - prev) / p.Speed
			if delay > 0 {
				select {
				case <-time.After(time.Duration(delay * float64(time.Second))):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			prev = tick.SessionTimeS
		}

		select {
		case out <- tick:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
