package event

import (
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/geom"
	"github.com/google/uuid"
)

type LaunchSucceeded struct {
	RunID       uuid.UUID
	TargetSpeed float64
}

// LaunchRejected explains why a launch command was a no-op.
type LaunchRejected struct {
	Reason string
}

type BounceCause uint8

const (
	BounceWall BounceCause = iota
	BounceMineral
)

type Bounced struct {
	Cause    BounceCause
	Position geom.Vec2
	Mineral  data.MineralKind // set for BounceMineral
}

type MineralCollected struct {
	Kind     data.MineralKind
	Amount   int64
	Value    int64
	Position geom.Vec2
}

type ItemPurchased struct {
	Node      data.ShopNode
	Cost      int64
	Tier      int
	NodeIndex int
}

type SprintStarted struct {
	NodeIndex int
}

type SprintEnded struct {
	NodeIndex int
}

// RunSummary describes one finished drill phase. Times are simulation time.
type RunSummary struct {
	RunID       uuid.UUID
	StartedAt   float64
	Duration    float64
	MaxDepth    float64 // distance below ground level
	MoneyEarned int64
	Collected   int
	Bounces     int
}

type PhaseEnded struct {
	Summary RunSummary
}
