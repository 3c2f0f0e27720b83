package world

import (
	"github.com/deepdrill/drillsim/internal/core/event"
	"github.com/google/uuid"
)

// RunStats accumulates over one drill phase.
type RunStats struct {
	ID          uuid.UUID
	StartedAt   float64
	MaxDepth    float64
	MoneyEarned int64
	Collected   int
	Bounces     int
}

// BeginRun resets the stats for a new descent.
func (s *State) BeginRun() {
	s.Run = RunStats{ID: uuid.New(), StartedAt: s.SimTime}
}

// TrackDepth records the deepest point reached this run.
func (s *State) TrackDepth() {
	if d := s.Depth(s.Drill.Position().Y); d > s.Run.MaxDepth {
		s.Run.MaxDepth = d
	}
}

func (s *State) RunSummary() event.RunSummary {
	return event.RunSummary{
		RunID:       s.Run.ID,
		StartedAt:   s.Run.StartedAt,
		Duration:    s.SimTime - s.Run.StartedAt,
		MaxDepth:    s.Run.MaxDepth,
		MoneyEarned: s.Run.MoneyEarned,
		Collected:   s.Run.Collected,
		Bounces:     s.Run.Bounces,
	}
}
