package world

import (
	"github.com/deepdrill/drillsim/internal/collider"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/gauge"
	"github.com/deepdrill/drillsim/internal/geom"
)

// DrillSprint is an active sprint started from a Sprint node.
type DrillSprint struct {
	Node     int
	Duration gauge.Bounded[float64]
}

type Drill struct {
	Collider    collider.Collider
	Level       data.ResourceKind
	MaxSpeed    float64
	Speed       float64
	TargetSpeed float64

	// Minerals overlapping the drill last tick; collisions are edge-triggered.
	CollidingWith map[MineralID]struct{}

	Sprint       *DrillSprint
	VisionRadius float64
	CanTurnLeft  bool
	CanTurnRight bool
}

func (d Drill) Position() geom.Vec2 { return d.Collider.Position }
func (d Drill) Heading() geom.Vec2  { return geom.UnitVec(d.Collider.Rotation) }

// CanCollect reports whether the drill breaks a mineral rather than
// bouncing off it.
func (d Drill) CanCollect(kind data.MineralKind) bool {
	return !kind.Rock && kind.Tier <= d.Level
}
