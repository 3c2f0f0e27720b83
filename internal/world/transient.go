package world

import (
	"math"

	"github.com/deepdrill/drillsim/internal/core/ecs"
	"github.com/deepdrill/drillsim/internal/gauge"
	"github.com/deepdrill/drillsim/internal/geom"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Color is linear RGBA, consumed by the rendering collaborator only.
type Color struct {
	R, G, B, A float32
}

var (
	ColorGoldText = Color{R: 1, G: 0.84, B: 0.2, A: 1}
	ColorDebris   = Color{R: 0.55, G: 0.45, B: 0.35, A: 1}
	ColorSpark    = Color{R: 1, G: 0.9, B: 0.6, A: 1}
)

type Motion struct {
	Position geom.Vec2
	Velocity geom.Vec2
}

type FloatingText struct {
	Text  string
	Size  float64
	Color Color
}

type Particle struct {
	Size  float64
	Color Color
}

// ParticleBurst asks the transient system to spawn Count particles flying
// out of Position in random directions.
type ParticleBurst struct {
	Position geom.Vec2
	Count    int
	Speed    float64
	Size     float64
	Lifetime float64
	Color    Color
}

// Transients is the arena of short-lived feedback entities. Every entity has
// Motion and Lifetime plus exactly one of Text or Particle.
type Transients struct {
	World     *ecs.World
	Motion    *ecs.Store[Motion]
	Lifetime  *ecs.Store[gauge.Bounded[float64]]
	Texts     *ecs.Store[FloatingText]
	Particles *ecs.Store[Particle]

	bursts []ParticleBurst
}

func NewTransients() *Transients {
	w := ecs.NewWorld()
	return &Transients{
		World:     w,
		Motion:    ecs.Register(w, ecs.NewStore[Motion]()),
		Lifetime:  ecs.Register(w, ecs.NewStore[gauge.Bounded[float64]]()),
		Texts:     ecs.Register(w, ecs.NewStore[FloatingText]()),
		Particles: ecs.Register(w, ecs.NewStore[Particle]()),
	}
}

func (t *Transients) spawn(m Motion, lifetime float64) ecs.EntityID {
	id := t.World.CreateEntity()
	t.Motion.Set(id, m)
	t.Lifetime.Set(id, gauge.Full(lifetime))
	return id
}

func (t *Transients) SpawnText(m Motion, text FloatingText, lifetime float64) ecs.EntityID {
	id := t.spawn(m, lifetime)
	t.Texts.Set(id, text)
	return id
}

func (t *Transients) SpawnParticle(m Motion, p Particle, lifetime float64) ecs.EntityID {
	id := t.spawn(m, lifetime)
	t.Particles.Set(id, p)
	return id
}

// QueueBurst defers a particle burst to the transient phase of this tick.
func (t *Transients) QueueBurst(b ParticleBurst) {
	t.bursts = append(t.bursts, b)
}

// DrainBursts returns and clears the queued bursts.
func (t *Transients) DrainBursts() []ParticleBurst {
	out := t.bursts
	t.bursts = nil
	return out
}

// EachText visits live floating texts with their motion.
func (t *Transients) EachText(fn func(ecs.EntityID, *Motion, *FloatingText)) {
	ecs.Each2(t.Motion, t.Texts, fn)
}

// EachParticle visits live particles with their motion.
func (t *Transients) EachParticle(fn func(ecs.EntityID, *Motion, *Particle)) {
	ecs.Each2(t.Motion, t.Particles, fn)
}

// Len returns the number of live transient entities.
func (t *Transients) Len() int {
	return t.World.Live()
}

var moneyPrinter = message.NewPrinter(language.English)

// MoneyText formats a credited amount for floating text, with digit
// grouping ("+1,250").
func MoneyText(v int64) string {
	return moneyPrinter.Sprintf("+%d", v)
}

// RandomInCircle returns a uniformly distributed point within radius of c.
func RandomInCircle(rng interface{ Float64() float64 }, c geom.Vec2, radius float64) geom.Vec2 {
	r := radius * math.Sqrt(rng.Float64())
	a := rng.Float64() * 2 * math.Pi
	return c.Add(geom.UnitVec(a).Scale(r))
}
