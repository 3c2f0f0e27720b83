package system

import (
	"github.com/deepdrill/drillsim/internal/core/event"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/level"
	"github.com/deepdrill/drillsim/internal/world"
	"go.uber.org/zap"
)

// PhaseSystem owns the Setup/Drill transitions. It has no per-tick work of
// its own; the drill system ends the phase through it.
type PhaseSystem struct {
	state *world.State
	bus   *event.Bus
	shop  *ShopSystem
	log   *zap.Logger
}

func NewPhaseSystem(ws *world.State, bus *event.Bus, shop *ShopSystem, log *zap.Logger) *PhaseSystem {
	return &PhaseSystem{state: ws, bus: bus, shop: shop, log: log}
}

// Launch starts a descent. The graph is resolved first so edits made since
// the last tick count.
func (s *PhaseSystem) Launch() bool {
	ws := s.state
	if ws.Phase != world.PhaseSetup {
		return s.reject("already drilling")
	}
	Resolve(ws)
	g := ws.Graph
	di, ok := g.Find(graph.IsDrill)
	if !ok {
		return s.reject("no drill node")
	}
	if !g.Nodes[di].Kind.(*graph.Drill).Power.IsMax() {
		return s.reject("drill power not full")
	}
	if !g.ReachesKind(graph.RootIndex, graph.IsFuelSource) {
		return s.reject("no fuel reachable")
	}
	if !g.ReachesKind(graph.RootIndex, graph.IsDrill) {
		return s.reject("drill not powered")
	}

	ws.Phase = world.PhaseDrill
	ws.BeginRun()
	ws.Drill.TargetSpeed = ws.Drill.MaxSpeed
	event.Emit(s.bus, event.LaunchSucceeded{RunID: ws.Run.ID, TargetSpeed: ws.Drill.TargetSpeed})
	s.log.Debug("launch", zap.Stringer("run", ws.Run.ID))
	return true
}

func (s *PhaseSystem) reject(reason string) bool {
	event.Emit(s.bus, event.LaunchRejected{Reason: reason})
	s.log.Debug("launch rejected", zap.String("reason", reason))
	return false
}

// EndDrillPhase returns to setup, publishes the run summary and rebuilds the
// level for the next descent.
func (s *PhaseSystem) EndDrillPhase() {
	ws := s.state
	if ws.Phase != world.PhaseDrill {
		return
	}
	summary := ws.RunSummary()
	ws.Phase = world.PhaseSetup
	event.Emit(s.bus, event.PhaseEnded{Summary: summary})
	s.log.Debug("drill phase ended",
		zap.Stringer("run", summary.RunID),
		zap.Float64("max_depth", summary.MaxDepth),
		zap.Int64("earned", summary.MoneyEarned),
	)
	level.Reset(ws)
	s.shop.Refresh()
}
