package world

import (
	"math/rand"

	"github.com/deepdrill/drillsim/internal/collider"
	"github.com/deepdrill/drillsim/internal/config"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/gauge"
	"github.com/deepdrill/drillsim/internal/geom"
	"github.com/deepdrill/drillsim/internal/graph"
)

type Phase uint8

const (
	PhaseSetup Phase = iota // graph editing and shop
	PhaseDrill              // active descent
)

func (p Phase) String() string {
	if p == PhaseDrill {
		return "drill"
	}
	return "setup"
}

// ShopOffer is one currently offered item plus where it lives in the tier
// pools, so a purchase can mark the pool entry sold out.
type ShopOffer struct {
	Tier  int
	Index int
	Item  data.ShopItem
}

type Camera struct {
	Center geom.Vec2
	FOV    float64 // vertical
}

// State is the whole simulation. Accessed only from the tick goroutine;
// commands are applied between ticks.
type State struct {
	Cfg     config.GameConfig
	Catalog *data.MineralTable
	Shop    *data.ShopTable // per-run copy, carries sold-out flags
	Offers  []ShopOffer
	Valuer  data.Valuer
	Rand    *rand.Rand

	Phase   Phase
	SimTime float64
	Money   int64

	Graph *graph.Graph
	Drill Drill

	Minerals       []Mineral
	nextMineralID  MineralID
	LevelBounds    geom.Aabb
	DepthGenerated float64 // lowest Y already populated with strips
	Camera         Camera

	// Held steering input, applied each drill tick.
	TurnLeftHeld  bool
	TurnRightHeld bool

	Transients *Transients
	Run        RunStats
}

// NewState builds a fresh game: the starting graph (Power at index 0, Shop,
// Drill and a small fuel tank, pre-wired) and an empty level. Callers reset
// the level before the first tick.
func NewState(cfg config.GameConfig, catalog *data.MineralTable, shop *data.ShopTable, valuer data.Valuer, rng *rand.Rand) *State {
	if valuer == nil {
		valuer = data.UnitValuer{}
	}
	s := &State{
		Cfg:     cfg,
		Catalog: catalog,
		Shop:    shop.Clone(),
		Valuer:  valuer,
		Rand:    rng,
		Phase:   PhaseSetup,
		Money:   cfg.StartingMoney,
		Graph:   graph.New(geom.PointBox(geom.Vec2{}, geom.V(cfg.GraphWidth, cfg.GraphHeight))),
		Drill: Drill{
			Collider:      collider.Circle(geom.V(0, cfg.GroundLevel), cfg.DrillSize),
			Level:         data.Iron,
			MaxSpeed:      cfg.DrillSpeed,
			VisionRadius:  cfg.Vision,
			CollidingWith: make(map[MineralID]struct{}),
		},
		Camera:     Camera{Center: geom.V(0, cfg.GroundLevel), FOV: cfg.CameraFOV},
		Transients: NewTransients(),
	}

	w, h := cfg.GraphWidth/2, cfg.GraphHeight/2
	power := s.Graph.Insert(graph.NewNode(&graph.Power{}, geom.V(-w+1, 0)))
	s.Graph.Insert(graph.NewNode(&graph.Shop{}, geom.V(0, h-1)))
	drill := s.Graph.Insert(graph.NewNode(&graph.Drill{}, geom.V(w-1, 0)))
	fuel := s.Graph.Insert(graph.NewNode(&graph.Fuel{Gauge: gauge.Full(cfg.FuelSmallAmount)}, geom.V(-w+1, -h+1)))
	s.Graph.Connect(graph.SlotRef{Node: power, Slot: 0}, graph.SlotRef{Node: fuel, Slot: 0})
	s.Graph.Connect(graph.SlotRef{Node: power, Slot: 1}, graph.SlotRef{Node: drill, Slot: 0})
	return s
}

// NewShopNode instantiates the node kind a shop item produces.
func (s *State) NewShopNode(n data.ShopNode) graph.NodeKind {
	switch n {
	case data.ShopFuelSmall:
		return &graph.Fuel{Gauge: gauge.Full(s.Cfg.FuelSmallAmount)}
	case data.ShopFuel:
		return &graph.Fuel{Gauge: gauge.Full(s.Cfg.FuelNormalAmount)}
	case data.ShopCoalFuel:
		return &graph.CoalFuel{Gauge: gauge.Full(s.Cfg.FuelNormalAmount)}
	case data.ShopTurnLeft:
		return &graph.TurnLeft{}
	case data.ShopTurnRight:
		return &graph.TurnRight{}
	case data.ShopBattery:
		return &graph.Battery{}
	case data.ShopUpgrade:
		return &graph.Upgrade{}
	case data.ShopSpeed:
		return &graph.Speed{}
	case data.ShopLight:
		return &graph.Vision{}
	case data.ShopSprint:
		return &graph.Sprint{Cooldown: gauge.NewZero(s.Cfg.SprintCooldown)}
	}
	return nil
}

// Depth is how far below ground level a point lies.
func (s *State) Depth(y float64) float64 {
	return s.Cfg.GroundLevel - y
}
