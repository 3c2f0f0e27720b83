package system

import (
	"time"

	coresys "github.com/deepdrill/drillsim/internal/core/system"
	"github.com/deepdrill/drillsim/internal/world"
)

// CameraSystem keeps the camera centered on the drill.
// Phase 3 (PostUpdate).
type CameraSystem struct {
	state *world.State
}

func NewCameraSystem(ws *world.State) *CameraSystem {
	return &CameraSystem{state: ws}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CameraSystem) Update(_ time.Duration) {
	s.state.Camera.Center = s.state.Drill.Position()
}
