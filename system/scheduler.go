package system

import "github.com/milk9111/touchplatformer/gesture"

// Frame is the input to one simulation step.
type Frame struct {
	DT      float64
	Touches []gesture.Touch
}

type System interface {
	Update(r *Ready, f Frame)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(r *Ready, f Frame) {
	for _, system := range s.systems {
		system.Update(r, f)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
