package sim

import (
	"github.com/deepdrill/drillsim/internal/core/event"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/world"
)

func (s *Sim) Phase() world.Phase { return s.state.Phase }
func (s *Sim) Money() int64       { return s.state.Money }

// Drill returns a copy of the drill. Its contact set is shared.
func (s *Sim) Drill() world.Drill { return s.state.Drill }

// Nodes exposes the graph nodes with their resolved power and levels. The
// slice must not be modified.
func (s *Sim) Nodes() []graph.Node { return s.state.Graph.Nodes }

func (s *Sim) Graph() *graph.Graph { return s.state.Graph }

// Minerals exposes the live minerals. The slice must not be modified.
func (s *Sim) Minerals() []world.Mineral { return s.state.Minerals }

// Offers returns a copy of the current shop offers.
func (s *Sim) Offers() []world.ShopOffer {
	return append([]world.ShopOffer(nil), s.state.Offers...)
}

func (s *Sim) Transients() *world.Transients { return s.state.Transients }
func (s *Sim) Camera() world.Camera          { return s.state.Camera }

// UnpoweredDim is the brightness factor renderers apply to unpowered nodes.
func (s *Sim) UnpoweredDim() float64 { return s.state.Cfg.UnpoweredDim }

// Bus carries launch, bounce, collection, purchase, sprint and phase-end
// events. Handlers run at the start of the tick after the event was emitted.
func (s *Sim) Bus() *event.Bus { return s.bus }

// State is the underlying simulation state, for tooling and tests.
func (s *Sim) State() *world.State { return s.state }

// Ticks returns how many ticks have run.
func (s *Sim) Ticks() uint64 { return s.runner.Ticks() }
