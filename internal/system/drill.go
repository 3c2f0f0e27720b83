package system

import (
	"time"

	"github.com/deepdrill/drillsim/internal/core/event"
	coresys "github.com/deepdrill/drillsim/internal/core/system"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/gauge"
	"github.com/deepdrill/drillsim/internal/geom"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/level"
	"github.com/deepdrill/drillsim/internal/world"
	"go.uber.org/zap"
)

// Floating text spawns within this radius of the collected mineral and
// drifts upward at textSpeed.
const (
	textSpread = 0.2
	textSpeed  = 0.5
	textSize   = 0.3
)

// DrillSystem advances the descent: steering, acceleration, movement,
// sprint, wall bounce, mineral contacts, fuel draw and strip generation, in
// that order. Runs only in the drill phase. Phase 2 (Update).
type DrillSystem struct {
	state  *world.State
	bus    *event.Bus
	phases *PhaseSystem
	log    *zap.Logger

	contacts map[world.MineralID]struct{} // swapped with Drill.CollidingWith each tick
	collect  []int
}

func NewDrillSystem(ws *world.State, bus *event.Bus, phases *PhaseSystem, log *zap.Logger) *DrillSystem {
	return &DrillSystem{
		state:    ws,
		bus:      bus,
		phases:   phases,
		log:      log,
		contacts: make(map[world.MineralID]struct{}),
	}
}

func (s *DrillSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *DrillSystem) Update(dt time.Duration) {
	ws := s.state
	if ws.Phase != world.PhaseDrill {
		return
	}
	sec := dt.Seconds()
	d := &ws.Drill

	s.steer(sec)

	d.TargetSpeed = d.MaxSpeed
	if d.Sprint != nil {
		d.TargetSpeed += ws.Cfg.SprintBoost
	}
	step := ws.Cfg.DrillAcceleration * sec
	d.Speed += geom.Clamp(d.TargetSpeed-d.Speed, -step, step)

	d.Collider.Position = d.Collider.Position.Add(d.Heading().Scale(d.Speed * sec))

	s.tickSprint(sec)
	s.bounceWalls()
	s.collide()

	if !s.drawFuel(sec) {
		s.phases.EndDrillPhase()
		return
	}
	level.SpawnDepths(ws)
	ws.TrackDepth()
}

func (s *DrillSystem) steer(sec float64) {
	ws := s.state
	d := &ws.Drill
	turn := 0.0
	if ws.TurnLeftHeld && d.CanTurnLeft {
		turn++
	}
	if ws.TurnRightHeld && d.CanTurnRight {
		turn--
	}
	if turn != 0 {
		d.Collider.Rotation = geom.NormalizeAngle(d.Collider.Rotation + turn*ws.Cfg.DrillRotationSpeed*sec)
	}
}

// tickSprint holds the triggering node's cooldown at max while a sprint
// runs. Without a sprint every Sprint node cools down.
func (s *DrillSystem) tickSprint(sec float64) {
	ws := s.state
	d := &ws.Drill
	if sp := d.Sprint; sp != nil {
		if k, ok := sprintNode(ws.Graph, sp.Node); ok {
			k.Cooldown.SetRatio(1)
		}
		sp.Duration.Change(-sec)
		if sp.Duration.IsMin() {
			d.Sprint = nil
			event.Emit(s.bus, event.SprintEnded{NodeIndex: sp.Node})
		}
		return
	}
	for i := range ws.Graph.Nodes {
		if k, ok := ws.Graph.Nodes[i].Kind.(*graph.Sprint); ok {
			k.Cooldown.Change(-sec)
		}
	}
}

// StartSprint boosts the drill using the Sprint node at index. Needs the
// drill phase, no running sprint and a cooled-down node.
func (s *DrillSystem) StartSprint(index int) bool {
	ws := s.state
	d := &ws.Drill
	var reason string
	k, ok := sprintNode(ws.Graph, index)
	switch {
	case ws.Phase != world.PhaseDrill:
		reason = "not drilling"
	case d.Sprint != nil:
		reason = "already sprinting"
	case !ok:
		reason = "not a sprint node"
	case !k.Cooldown.IsMin():
		reason = "cooling down"
	}
	if reason != "" {
		s.log.Debug("sprint rejected", zap.String("reason", reason), zap.Int("node", index))
		return false
	}

	d.Sprint = &world.DrillSprint{Node: index, Duration: gauge.Full(ws.Cfg.SprintDuration)}
	k.Cooldown.SetRatio(1)
	d.Speed += ws.Cfg.SprintBoost
	event.Emit(s.bus, event.SprintStarted{NodeIndex: index})
	return true
}

func sprintNode(g *graph.Graph, index int) (*graph.Sprint, bool) {
	n, ok := g.Node(index)
	if !ok {
		return nil, false
	}
	k, ok := n.Kind.(*graph.Sprint)
	return k, ok
}

// bounceWalls mirrors the heading when the drill pokes out of the level
// while still heading outward.
func (s *DrillSystem) bounceWalls() {
	ws := s.state
	d := &ws.Drill
	box := d.Collider.AABB()
	h := d.Heading()
	out := (box.Min.X < ws.LevelBounds.Min.X && h.X < 0) ||
		(box.Max.X > ws.LevelBounds.Max.X && h.X > 0)
	if !out {
		return
	}
	d.Collider.Rotation = geom.ReflectVertical(d.Collider.Rotation)
	ws.Run.Bounces++
	event.Emit(s.bus, event.Bounced{Cause: event.BounceWall, Position: d.Position()})
}

// collide handles minerals the drill started touching this tick. Minerals
// still touching from last tick are ignored.
func (s *DrillSystem) collide() {
	ws := s.state
	d := &ws.Drill
	clear(s.contacts)
	s.collect = s.collect[:0]

	for i := range ws.Minerals {
		m := &ws.Minerals[i]
		if !d.Collider.Check(m.Collider) {
			continue
		}
		s.contacts[m.ID] = struct{}{}
		if _, was := d.CollidingWith[m.ID]; was {
			continue
		}
		if d.CanCollect(m.Kind) {
			s.collect = append(s.collect, i)
		} else {
			s.bounce(m)
		}
	}
	d.CollidingWith, s.contacts = s.contacts, d.CollidingWith

	// Swap-removal: highest index first keeps the lower ones valid.
	for j := len(s.collect) - 1; j >= 0; j-- {
		if m, ok := ws.RemoveMineralAt(s.collect[j]); ok {
			s.credit(m)
		}
	}
}

func (s *DrillSystem) bounce(m *world.Mineral) {
	ws := s.state
	ws.Drill.Speed = ws.Cfg.BounceSpeed
	ws.Run.Bounces++
	event.Emit(s.bus, event.Bounced{Cause: event.BounceMineral, Position: m.Collider.Position, Mineral: m.Kind})
	ws.Transients.QueueBurst(world.ParticleBurst{
		Position: m.Collider.Position,
		Count:    6,
		Speed:    1,
		Size:     0.04,
		Lifetime: 0.4,
		Color:    world.ColorDebris,
	})
}

func (s *DrillSystem) credit(m world.Mineral) {
	ws := s.state
	var unit int64
	if info := ws.Catalog.Get(m.Kind); info != nil {
		unit = info.Value
	}
	pos := m.Collider.Position
	value := ws.Valuer.MineralValue(data.ValueContext{
		Kind:      m.Kind,
		Amount:    m.Amount,
		UnitValue: unit,
		Depth:     ws.Depth(pos.Y),
	})
	ws.Money += value
	ws.Run.MoneyEarned += value
	ws.Run.Collected++

	angle := geom.Degrees(60 + ws.Rand.Float64()*60)
	ws.Transients.SpawnText(
		world.Motion{
			Position: world.RandomInCircle(ws.Rand, pos, textSpread),
			Velocity: geom.UnitVec(angle).Scale(textSpeed),
		},
		world.FloatingText{Text: world.MoneyText(value), Size: textSize, Color: world.ColorGoldText},
		ws.Cfg.FloatingTextLifetime,
	)

	if m.Kind == data.Resource(data.Coal) {
		for i := range ws.Graph.Nodes {
			if k, ok := ws.Graph.Nodes[i].Kind.(*graph.CoalFuel); ok {
				k.Gauge.Change(ws.Cfg.CoalFuelValue)
			}
		}
	}

	event.Emit(s.bus, event.MineralCollected{Kind: m.Kind, Amount: m.Amount, Value: value, Position: pos})
	ws.Transients.QueueBurst(world.ParticleBurst{
		Position: pos,
		Count:    10,
		Speed:    1.5,
		Size:     0.05,
		Lifetime: 0.5,
		Color:    world.ColorSpark,
	})
}

// drawFuel burns dt seconds of fuel from the first non-empty tank reachable
// from the root. False means the drill is out of fuel.
func (s *DrillSystem) drawFuel(sec float64) bool {
	g := s.state.Graph
	i, ok := g.FirstFuel()
	if !ok {
		return false
	}
	fg, _ := graph.FuelGauge(g.Nodes[i].Kind)
	fg.Change(-sec)
	return true
}
