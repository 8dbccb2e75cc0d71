package telemetry

import (
	"sync"
	"time"
)

// DefaultHistoryCap is the maximum number of track points retained for
// rendering. Older points are discarded as new ticks arrive.
const DefaultHistoryCap = 15000

// SessionState accumulates telemetry for the current session with
// thread-safe operations. Providers push ticks in; the dashboard and
// renderer read immutable snapshots out.
type SessionState struct {
	mu         sync.Mutex
	provider   string
	startedAt  time.Time
	status     string
	tickCount  int
	lastTick   Tick
	hasTick    bool
	historyCap int

	// track progress ring buffer: next is the slot for the next write,
	// full flips once the buffer has wrapped at least once.
	progress []TrackPoint
	next     int
	full     bool
}

// NewSessionState creates session state for the named provider.
// historyCap <= 0 selects DefaultHistoryCap.
func NewSessionState(provider string, historyCap int) *SessionState {
	if historyCap <= 0 {
		historyCap = DefaultHistoryCap
	}
	return &SessionState{
		provider:   provider,
		startedAt:  time.Now(),
		status:     "booting",
		historyCap: historyCap,
		progress:   make([]TrackPoint, historyCap),
	}
}

// SetStatus updates the session status label shown on the dashboard.
func (s *SessionState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// UpdateTick records a new telemetry tick. Switching tracks mid-session
// resets the accumulated track progress so the renderer does not mix
// geometry from two circuits.
func (s *SessionState) UpdateTick(t Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasTick && s.lastTick.TrackName != "" && t.TrackName != "" &&
		s.lastTick.TrackName != t.TrackName {
		s.next = 0
		s.full = false
	}

	s.tickCount++
	s.lastTick = t
	s.hasTick = true

	s.progress[s.next] = NewTrackPoint(t)
	s.next++
	if s.next == s.historyCap {
		s.next = 0
		s.full = true
	}
}

// TickCount returns the number of ticks recorded so far.
func (s *SessionState) TickCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickCount
}

// Snapshot is an immutable copy of the session state for one refresh.
type Snapshot struct {
	Status        string       `json:"status"`
	Provider      string       `json:"provider"`
	UptimeS       float64      `json:"uptime_s"`
	TickCount     int          `json:"tick_count"`
	LastTick      Tick         `json:"last_tick"`
	TrackProgress []TrackPoint `json:"track_progress"`
	Speed         SpeedStats   `json:"speed"`
}

// Snapshot returns a copy of the current state. The returned track
// progress slice is freshly allocated in time order (oldest first) and
// is never mutated by subsequent ticks.
func (s *SessionState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var points []TrackPoint
	if s.full {
		points = make([]TrackPoint, 0, s.historyCap)
		points = append(points, s.progress[s.next:]...)
		points = append(points, s.progress[:s.next]...)
	} else {
		points = make([]TrackPoint, s.next)
		copy(points, s.progress[:s.next])
	}

	return Snapshot{
		Status:        s.status,
		Provider:      s.provider,
		UptimeS:       time.Since(s.startedAt).Seconds(),
		TickCount:     s.tickCount,
		LastTick:      s.lastTick,
		TrackProgress: points,
		Speed:         ComputeSpeedStats(points),
	}
}
