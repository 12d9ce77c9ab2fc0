package runtime

import (
	"sync/atomic"
)

// Stats counts controller activity. Counters are atomic so the debug server
// can snapshot them from its own goroutine while dispatch runs.
type Stats struct {
	Dispatches    atomic.Int64
	Regenerations atomic.Int64
	Redraws       atomic.Int64
	TimerFires    atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Dispatches    int64 `json:"dispatches"`
	Regenerations int64 `json:"regenerations"`
	Redraws       int64 `json:"redraws"`
	TimerFires    int64 `json:"timerFires"`
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Dispatches:    s.Dispatches.Load(),
		Regenerations: s.Regenerations.Load(),
		Redraws:       s.Redraws.Load(),
		TimerFires:    s.TimerFires.Load(),
	}
}
