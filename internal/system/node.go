package system

import (
	"time"

	coresys "github.com/deepdrill/drillsim/internal/core/system"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/gauge"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/world"
	"go.uber.org/zap"
)

// NodeSystem re-derives everything the graph decides: power flags, node
// levels and the drill capabilities that follow from them.
// Phase 1 (Graph).
type NodeSystem struct {
	state *world.State
	log   *zap.Logger
}

func NewNodeSystem(ws *world.State, log *zap.Logger) *NodeSystem {
	return &NodeSystem{state: ws, log: log}
}

func (s *NodeSystem) Phase() coresys.Phase { return coresys.PhaseGraph }

func (s *NodeSystem) Update(_ time.Duration) {
	if n := Resolve(s.state); n > 0 {
		s.log.Debug("dropped asymmetric links", zap.Int("count", n))
	}
}

// Resolve runs the per-tick graph pass: restore link symmetry, clamp nodes
// into bounds, flood power from the root, then recompute per-kind levels.
// Returns the number of asymmetric links it had to drop.
func Resolve(s *world.State) int {
	g := s.Graph
	dropped := g.Normalize()
	g.ClampAll()
	g.ResolvePower()

	d := &s.Drill
	d.CanTurnLeft, d.CanTurnRight = false, false
	visionLevel, speedLevel := 0, 0
	drillSeen := false

	for i := range g.Nodes {
		n := &g.Nodes[i]
		switch k := n.Kind.(type) {
		case *graph.Shop:
			k.Level = g.CountUpgrades(i)
		case *graph.Drill:
			upgrades := g.CountUpgrades(i)
			k.Level = data.DrillTier(upgrades)
			k.Power = gauge.New(g.CountBatteries(i), 0, upgrades)
			if !drillSeen {
				d.Level = k.Level
				drillSeen = true
			}
		case *graph.Vision:
			k.Level = 0
			if n.Powered {
				k.Level = g.CountUpgrades(i)
			}
			visionLevel = max(visionLevel, k.Level)
		case *graph.Speed:
			k.Level = 0
			if n.Powered {
				k.Level = g.CountUpgrades(i)
			}
			speedLevel = max(speedLevel, k.Level)
		case *graph.TurnLeft:
			d.CanTurnLeft = d.CanTurnLeft || n.Powered
		case *graph.TurnRight:
			d.CanTurnRight = d.CanTurnRight || n.Powered
		}
	}

	d.VisionRadius = tiered(s.Cfg.Vision, s.Cfg.VisionTiers, visionLevel)
	d.MaxSpeed = tiered(s.Cfg.DrillSpeed, s.Cfg.DrillSpeedTiers, speedLevel)
	return dropped
}

// tiered picks the value for level; level 0 is the base value and levels past
// the last tier stay on it.
func tiered(base float64, tiers [3]float64, level int) float64 {
	if level <= 0 {
		return base
	}
	return tiers[min(level, len(tiers))-1]
}
