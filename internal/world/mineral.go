package world

import (
	"github.com/deepdrill/drillsim/internal/collider"
	"github.com/deepdrill/drillsim/internal/data"
	"github.com/deepdrill/drillsim/internal/geom"
)

// MineralID is stable for a mineral's lifetime, unlike its slice index.
type MineralID uint64

type Mineral struct {
	ID       MineralID
	Collider collider.Collider
	Kind     data.MineralKind
	Amount   int64
}

// AddMineral spawns a circular mineral at pos.
func (s *State) AddMineral(kind data.MineralKind, pos geom.Vec2, radius float64, amount int64) MineralID {
	s.nextMineralID++
	id := s.nextMineralID
	s.Minerals = append(s.Minerals, Mineral{
		ID:       id,
		Collider: collider.Circle(pos, radius),
		Kind:     kind,
		Amount:   amount,
	})
	return id
}

// RemoveMineralAt swap-removes the mineral at index i. Callers removing
// several indices must go from highest to lowest.
func (s *State) RemoveMineralAt(i int) (Mineral, bool) {
	if i < 0 || i >= len(s.Minerals) {
		return Mineral{}, false
	}
	m := s.Minerals[i]
	last := len(s.Minerals) - 1
	s.Minerals[i] = s.Minerals[last]
	s.Minerals = s.Minerals[:last]
	return m, true
}

// ClearMinerals drops every mineral and the drill's contact set.
func (s *State) ClearMinerals() {
	s.Minerals = s.Minerals[:0]
	clear(s.Drill.CollidingWith)
}
