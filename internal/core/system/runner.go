package system

import "time"

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	phases [phaseCount][]System
	ticks  uint64
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds s to its phase bucket. Systems reporting an unknown phase
// run last.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		p = phaseCount - 1
	}
	r.phases[p] = append(r.phases[p], s)
}

// Tick runs every phase once.
func (r *Runner) Tick(dt time.Duration) {
	for _, bucket := range r.phases {
		for _, s := range bucket {
			s.Update(dt)
		}
	}
	r.ticks++
}

// Ticks returns how many full ticks have run.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	n := 0
	for _, bucket := range r.phases {
		n += len(bucket)
	}
	return n
}
