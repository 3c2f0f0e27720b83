package system

import "time"

// Phase defines execution ordering within a single tick. Later phases read
// state earlier phases wrote: fuel draw depends on the graph resolved in
// PhaseGraph, transient aging depends on spawns made during PhaseUpdate.
type Phase int

const (
	PhaseInput      Phase = iota // 0: deliver events queued since the last tick
	PhaseGraph                   // 1: clamp nodes, resolve power and derived levels
	PhaseUpdate                  // 2: drill physics, collision, fuel, generation, shop offers
	PhasePostUpdate              // 3: camera follow
	PhaseTransient               // 4: age, reap and spawn particles / floating text
	PhaseCleanup                 // 5: destroy queued entities

	phaseCount
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
