package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/deepdrill/drillsim/internal/core/ecs"
	coresys "github.com/deepdrill/drillsim/internal/core/system"
	"github.com/deepdrill/drillsim/internal/gauge"
	"github.com/deepdrill/drillsim/internal/geom"
	"github.com/deepdrill/drillsim/internal/world"
)

// TransientSystem moves particles and floating text, ages them, queues the
// expired ones for destruction and then spawns this tick's bursts.
// Phase 4 (Transient).
type TransientSystem struct {
	t   *world.Transients
	rng *rand.Rand
}

func NewTransientSystem(t *world.Transients, rng *rand.Rand) *TransientSystem {
	return &TransientSystem{t: t, rng: rng}
}

func (s *TransientSystem) Phase() coresys.Phase { return coresys.PhaseTransient }

func (s *TransientSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.t.Motion.Each(func(_ ecs.EntityID, m *world.Motion) {
		m.Position = m.Position.Add(m.Velocity.Scale(sec))
	})
	s.t.Lifetime.Each(func(id ecs.EntityID, life *gauge.Bounded[float64]) {
		life.Change(-sec)
		if life.IsMin() {
			s.t.World.MarkForDestruction(id)
		}
	})
	for _, b := range s.t.DrainBursts() {
		for i := 0; i < b.Count; i++ {
			dir := geom.UnitVec(s.rng.Float64() * 2 * math.Pi)
			speed := b.Speed * (0.5 + s.rng.Float64()*0.5)
			s.t.SpawnParticle(
				world.Motion{Position: b.Position, Velocity: dir.Scale(speed)},
				world.Particle{Size: b.Size, Color: b.Color},
				b.Lifetime,
			)
		}
	}
}
