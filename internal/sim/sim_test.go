package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/deepdrill/drillsim/internal/config"
	"github.com/deepdrill/drillsim/internal/core/event"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/geom"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/scripting"
	"github.com/deepdrill/drillsim/internal/world"
	"go.uber.org/zap"
)

const quarter = 250 * time.Millisecond

func newSim(t *testing.T, tweak func(*config.GameConfig)) *Sim {
	t.Helper()
	cfg := config.Defaults().Game
	if tweak != nil {
		tweak(&cfg)
	}
	shop := &data.ShopTable{Tiers: [data.TierCount]data.ShopTier{
		{Slots: 3, Items: []data.ShopItem{
			{Cost: 2, Node: data.ShopBattery},
			{Cost: 2, Node: data.ShopTurnLeft},
			{Cost: 50, Node: data.ShopFuel},
		}},
		{Slots: 3},
		{Slots: 3},
	}}
	return New(Options{Game: cfg, Shop: shop, Rand: rand.New(rand.NewSource(42))})
}

func fuelGauge(t *testing.T, s *Sim) float64 {
	t.Helper()
	i, ok := s.Graph().Find(graph.IsFuelSource)
	if !ok {
		t.Fatal("no fuel node")
	}
	g, _ := graph.FuelGauge(s.Nodes()[i].Kind)
	return g.Value()
}

func TestOneSecondOfFuel(t *testing.T) {
	s := newSim(t, func(c *config.GameConfig) { c.FuelSmallAmount = 1 })
	if s.Phase() != world.PhaseSetup {
		t.Fatalf("initial phase = %v", s.Phase())
	}
	if !s.Launch() {
		t.Fatal("launch rejected")
	}
	if s.Phase() != world.PhaseDrill {
		t.Fatalf("phase = %v", s.Phase())
	}
	for i := 1; i <= 4; i++ {
		s.Tick(quarter)
		if got, want := fuelGauge(t, s), 1-0.25*float64(i); got != want {
			t.Fatalf("tick %d: fuel = %v, want %v", i, got, want)
		}
		if s.Phase() != world.PhaseDrill {
			t.Fatalf("tick %d: left drill phase early", i)
		}
	}
	s.Tick(quarter)
	if s.Phase() != world.PhaseSetup {
		t.Fatal("phase did not return to setup after fuel ran out")
	}
	if s.Ticks() != 5 {
		t.Fatalf("ticks = %d", s.Ticks())
	}
	if fuelGauge(t, s) != 1 {
		t.Fatal("fuel not refilled for the next run")
	}
}

func TestEventsArriveNextTick(t *testing.T) {
	s := newSim(t, func(c *config.GameConfig) { c.FuelSmallAmount = 0.5 })
	var launched, ended int
	var summary event.RunSummary
	event.Subscribe(s.Bus(), func(event.LaunchSucceeded) { launched++ })
	event.Subscribe(s.Bus(), func(ev event.PhaseEnded) {
		ended++
		summary = ev.Summary
	})

	s.Launch()
	if launched != 0 {
		t.Fatal("event delivered before the next tick")
	}
	s.Tick(quarter)
	if launched != 1 {
		t.Fatalf("launched = %d", launched)
	}
	for i := 0; i < 4 && ended == 0; i++ {
		s.Tick(quarter)
	}
	if ended != 1 {
		t.Fatalf("ended = %d", ended)
	}
	if summary.Duration != 0.75 {
		t.Fatalf("run duration = %v, want 0.75", summary.Duration)
	}
}

func TestLaunchNeedsFuelAndDrill(t *testing.T) {
	s := newSim(t, nil)
	if !s.Disconnect(0, 1) {
		t.Fatal("disconnect failed")
	}
	if s.Launch() || s.Phase() != world.PhaseSetup {
		t.Fatal("launched without a powered drill")
	}
	if !s.Connect(0, 1, 2, 0) {
		t.Fatal("reconnect failed")
	}
	s.Disconnect(0, 0)
	if s.Launch() {
		t.Fatal("launched without fuel")
	}
	s.Connect(3, 0, 0, 0)
	if !s.Launch() {
		t.Fatal("launch rejected with fuel and drill reachable")
	}
}

func TestEditingLockedWhileDrilling(t *testing.T) {
	s := newSim(t, nil)
	s.Launch()
	if s.Disconnect(0, 0) || s.Connect(0, 2, 1, 0) {
		t.Fatal("graph edit accepted during drill phase")
	}
	if !s.MoveNode(1, geom.V(1, 1)) {
		t.Fatal("move rejected during drill phase")
	}
}

func TestNodesStayInBounds(t *testing.T) {
	s := newSim(t, nil)
	bounds := s.Graph().Bounds
	s.MoveNode(2, geom.V(1000, -1000))
	s.MoveNode(1, geom.V(-1000, 3))
	s.PurchaseItem(0)
	s.Tick(quarter)
	for i, n := range s.Nodes() {
		if !n.Position.Within(bounds) {
			t.Fatalf("node %d at %+v outside %+v", i, n.Position, bounds)
		}
	}
	if s.MoveNode(99, geom.Vec2{}) {
		t.Fatal("move of a stale index accepted")
	}
}

func TestPurchaseAndWire(t *testing.T) {
	s := newSim(t, nil)
	money := s.Money()
	nodes := len(s.Nodes())
	if !s.PurchaseItem(1) {
		t.Fatal("purchase rejected")
	}
	if s.Money() != money-2 || len(s.Nodes()) != nodes+1 {
		t.Fatalf("money %d nodes %d", s.Money(), len(s.Nodes()))
	}
	turn := nodes
	if !s.Connect(2, 2, turn, 1) {
		t.Fatal("wire turn node to drill")
	}
	s.Tick(quarter)
	if !s.Drill().CanTurnLeft {
		t.Fatal("powered turn node did not enable steering")
	}

	before := s.Offers()
	if s.PurchaseItem(len(before) - 1) {
		t.Fatal("unaffordable purchase accepted")
	}
	if len(s.Offers()) != len(before) || s.Money() != money-2 {
		t.Fatal("failed purchase changed state")
	}
}

func TestSteeringDuringDescent(t *testing.T) {
	s := newSim(t, nil)
	s.PurchaseItem(1)
	s.Connect(2, 2, len(s.Nodes())-1, 1)
	s.Launch()
	s.SetTurnInput(true, false)
	start := s.Drill().Collider.Rotation
	s.Tick(quarter)
	if s.Drill().Collider.Rotation <= start {
		t.Fatal("drill did not turn left")
	}
	s.SetTurnInput(false, true)
	rot := s.Drill().Collider.Rotation
	s.Tick(quarter)
	if s.Drill().Collider.Rotation != rot {
		t.Fatal("turned right without a right turn node")
	}
}

func TestCameraFollowsDrill(t *testing.T) {
	s := newSim(t, nil)
	s.Launch()
	for i := 0; i < 4; i++ {
		s.Tick(quarter)
	}
	if s.Camera().Center != s.Drill().Position() {
		t.Fatalf("camera %v drill %v", s.Camera().Center, s.Drill().Position())
	}
	if s.Drill().Position().Y >= 0 {
		t.Fatal("drill did not descend")
	}
}

func TestRandomWiringStaysSymmetric(t *testing.T) {
	s := newSim(t, nil)
	rng := rand.New(rand.NewSource(9))
	g := s.Graph()
	kinds := []func() graph.NodeKind{
		func() graph.NodeKind { return &graph.Battery{} },
		func() graph.NodeKind { return &graph.Upgrade{} },
		func() graph.NodeKind { return &graph.Speed{} },
		func() graph.NodeKind { return &graph.TurnRight{} },
	}
	for i := 0; i < 12; i++ {
		g.Insert(graph.NewNode(kinds[rng.Intn(len(kinds))](), geom.Vec2{}))
	}
	for i := 0; i < 200; i++ {
		a, b := rng.Intn(len(g.Nodes)), rng.Intn(len(g.Nodes))
		sa, sb := rng.Intn(len(g.Nodes[a].Connections)), rng.Intn(len(g.Nodes[b].Connections))
		if rng.Intn(4) == 0 {
			s.Disconnect(a, sa)
			continue
		}
		s.Connect(a, sa, b, sb)
		if !g.Symmetric() {
			t.Fatalf("step %d: links asymmetric", i)
		}
	}

	s.Tick(quarter)
	powered := make([]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		powered[i] = n.Powered
	}
	s.Tick(quarter)
	for i, n := range g.Nodes {
		if n.Powered != powered[i] {
			t.Fatalf("node %d power changed without edits", i)
		}
	}
	for _, i := range g.Reachable(graph.RootIndex) {
		if !powered[i] {
			t.Fatalf("reachable node %d unpowered", i)
		}
		back := false
		for _, j := range g.Reachable(i) {
			back = back || j == graph.RootIndex
		}
		if !back {
			t.Fatalf("root reaches %d but not the reverse", i)
		}
	}
}

func TestShippedScriptsCreditAmountTimesValue(t *testing.T) {
	minerals, err := data.LoadMineralTable("../../data/yaml/mineral_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	shop, err := data.LoadShopTable("../../data/yaml/shop_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	engine, err := scripting.NewEngine("../../scripts", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Close()

	s := New(Options{
		Game:     config.Defaults().Game,
		Minerals: minerals,
		Shop:     shop,
		Valuer:   engine,
		Rand:     rand.New(rand.NewSource(3)),
	})
	if !s.Launch() {
		t.Fatal("launch rejected")
	}
	st := s.State()
	st.ClearMinerals()
	st.Drill.Collider.Position = geom.V(0, st.Cfg.GroundLevel-100)
	st.AddMineral(data.Resource(data.Iron), st.Drill.Position(), st.Cfg.MineralRadius, 10)

	before := s.Money()
	s.Tick(quarter)
	want := 10 * minerals.Get(data.Resource(data.Iron)).Value
	if got := s.Money() - before; got != want {
		t.Fatalf("credited %d, want %d", got, want)
	}
	if len(s.Minerals()) != 0 {
		t.Fatal("collected mineral still in the level")
	}
}
