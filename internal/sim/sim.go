// Package sim is the entry point to the simulation: the command surface the
// input layer drives and the query surface renderers read from. A Sim is not
// safe for concurrent use; commands and ticks must come from one goroutine.
package sim

import (
	"math/rand"
	"time"

	"github.com/deepdrill/drillsim/internal/config"
	"github.com/deepdrill/drillsim/internal/core/event"
	coresys "github.com/deepdrill/drillsim/internal/core/system"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/geom"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/level"
	"github.com/deepdrill/drillsim/internal/system"
	"github.com/deepdrill/drillsim/internal/world"
	"go.uber.org/zap"
)

type Options struct {
	Game     config.GameConfig
	Minerals *data.MineralTable
	Shop     *data.ShopTable
	Valuer   data.Valuer // nil prices minerals at amount × unit value
	Rand     *rand.Rand  // nil seeds from Game.Seed, or the clock if that is 0
	Log      *zap.Logger
}

type Sim struct {
	state  *world.State
	bus    *event.Bus
	runner *coresys.Runner
	shop   *system.ShopSystem
	phases *system.PhaseSystem
	drill  *system.DrillSystem
	log    *zap.Logger
}

func New(opts Options) *Sim {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		seed := opts.Game.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	minerals := opts.Minerals
	if minerals == nil {
		minerals = data.NewMineralTable()
	}
	shop := opts.Shop
	if shop == nil {
		shop = &data.ShopTable{}
	}

	ws := world.NewState(opts.Game, minerals, shop, opts.Valuer, rng)
	bus := event.NewBus()

	s := &Sim{state: ws, bus: bus, runner: coresys.NewRunner(), log: log}
	s.shop = system.NewShopSystem(ws, bus, log.Named("shop"))
	s.phases = system.NewPhaseSystem(ws, bus, s.shop, log.Named("phase"))
	s.drill = system.NewDrillSystem(ws, bus, s.phases, log.Named("drill"))

	// Same-phase systems run in registration order: offers settle before
	// the drill can end the phase and refresh them again.
	s.runner.Register(system.NewEventDispatchSystem(bus))
	s.runner.Register(system.NewNodeSystem(ws, log.Named("graph")))
	s.runner.Register(s.shop)
	s.runner.Register(s.drill)
	s.runner.Register(system.NewCameraSystem(ws))
	s.runner.Register(system.NewTransientSystem(ws.Transients, rng))
	s.runner.Register(system.NewCleanupSystem(ws.Transients.World))

	system.Resolve(ws)
	level.Reset(ws)
	s.shop.Refresh()
	return s
}

// Tick advances the simulation by dt.
func (s *Sim) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.state.SimTime += dt.Seconds()
	s.runner.Tick(dt)
}

// Launch starts a descent. No-op unless in setup with a fully powered drill
// and reachable fuel.
func (s *Sim) Launch() bool {
	return s.phases.Launch()
}

// PurchaseItem buys the current offer at index.
func (s *Sim) PurchaseItem(index int) bool {
	return s.shop.Purchase(index)
}

// StartSprint triggers the Sprint node at index.
func (s *Sim) StartSprint(node int) bool {
	return s.drill.StartSprint(node)
}

// Connect wires two slots. Setup phase only.
func (s *Sim) Connect(a, slotA, b, slotB int) bool {
	if s.state.Phase != world.PhaseSetup {
		s.log.Debug("connect rejected", zap.String("reason", "not in setup"))
		return false
	}
	ok := s.state.Graph.Connect(graph.SlotRef{Node: a, Slot: slotA}, graph.SlotRef{Node: b, Slot: slotB})
	if !ok {
		s.log.Debug("connect rejected",
			zap.String("reason", "incompatible slots"),
			zap.Int("a", a), zap.Int("slot_a", slotA),
			zap.Int("b", b), zap.Int("slot_b", slotB),
		)
	}
	return ok
}

// Disconnect unwires a slot and its peer. Setup phase only.
func (s *Sim) Disconnect(node, slot int) bool {
	if s.state.Phase != world.PhaseSetup {
		s.log.Debug("disconnect rejected", zap.String("reason", "not in setup"))
		return false
	}
	return s.state.Graph.Disconnect(graph.SlotRef{Node: node, Slot: slot})
}

// MoveNode drags a node; its rectangle is clamped into the graph bounds.
func (s *Sim) MoveNode(node int, center geom.Vec2) bool {
	return s.state.Graph.Move(node, center)
}

// SetTurnInput sets the held steering keys. Only takes effect for
// directions a powered turn node enables.
func (s *Sim) SetTurnInput(left, right bool) {
	s.state.TurnLeftHeld = left
	s.state.TurnRightHeld = right
}
