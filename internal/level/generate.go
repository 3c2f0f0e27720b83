// Package level resets the descent and populates it with minerals, one
// fixed-height horizontal strip at a time, ahead of the camera.
package level

import (
	"math"

	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/geom"
	"github.com/deepdrill/drillsim/internal/graph"
	"github.com/deepdrill/drillsim/internal/world"
)

// levelHalfHeight bounds the level vertically; only the horizontal bounds
// are ever enforced.
const levelHalfHeight = 10000

// Reset puts the drill back on the surface facing down, refills the tanks,
// readies sprint nodes and regenerates the minerals in view.
func Reset(s *world.State) {
	d := &s.Drill
	d.Collider.Position = geom.V(0, s.Cfg.GroundLevel)
	d.Collider.Rotation = geom.Degrees(-90)
	d.Speed = 0
	d.TargetSpeed = 0
	d.Sprint = nil

	for i := range s.Graph.Nodes {
		switch k := s.Graph.Nodes[i].Kind.(type) {
		case *graph.Fuel:
			k.Gauge.SetRatio(1)
		case *graph.Sprint:
			k.Cooldown.SetRatio(0)
		}
	}

	s.Camera.Center = d.Collider.Position
	half := s.Cfg.MapWidth / 2
	s.LevelBounds = geom.FromCorners(geom.V(-half, -levelHalfHeight), geom.V(half, levelHalfHeight))

	s.ClearMinerals()
	s.DepthGenerated = s.Cfg.GroundLevel
	SpawnDepths(s)
}

// SpawnDepths generates strips until the populated area reaches two fields
// of view below the camera center.
func SpawnDepths(s *world.State) int {
	target := s.Camera.Center.Y - s.Camera.FOV*2
	h := s.Cfg.StripHeight
	strips := 0
	for s.DepthGenerated > target {
		GenerateStrip(s, s.DepthGenerated, s.DepthGenerated-h)
		s.DepthGenerated -= h
		strips++
	}
	return strips
}

// GenerateStrip spawns minerals between yMin and yMax. A rule applies when
// its depth band contains the strip's upper edge; it spawns
// height × width × density minerals, the fractional part rounded
// stochastically. Returns the number spawned.
func GenerateStrip(s *world.State, yMax, yMin float64) int {
	width := s.LevelBounds.Width()
	spawned := 0
	s.Catalog.Each(func(info *data.MineralInfo) {
		for _, rule := range info.Generation {
			if !rule.Contains(yMax) {
				continue
			}
			expected := (yMax - yMin) * width * rule.Density
			n := int(math.Floor(expected))
			if frac := expected - float64(n); frac > 0 && s.Rand.Float64() < frac {
				n++
			}
			for i := 0; i < n; i++ {
				pos := geom.V(
					s.LevelBounds.Min.X+s.Rand.Float64()*width,
					yMin+s.Rand.Float64()*(yMax-yMin),
				)
				s.AddMineral(info.Kind, pos, s.Cfg.MineralRadius, s.Cfg.MineralAmount)
			}
			spawned += n
		}
	})
	return spawned
}
