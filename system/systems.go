package system

import (
	"github.com/milk9111/touchplatformer/gesture"
	"github.com/milk9111/touchplatformer/obj"
)

// GestureSystem turns the frame's touches into direction flags.
type GestureSystem struct{}

func (GestureSystem) Update(r *Ready, f Frame) {
	r.Input, r.Feedback = gesture.Classify(r.Input, f.Touches)
}

// PlayerSystem steers and moves the player from the flags of this frame.
type PlayerSystem struct{}

func (PlayerSystem) Update(r *Ready, f Frame) {
	c := r.Player.Update(r.World, r.Input.Directions, f.DT)
	if c.Jumped {
		r.log.Debug("jump", "pos", r.World.ActorPos(r.Player.Actor), "vy", r.Player.Velocity.Y)
	}
	if c.HitFloor && r.Contact.State == obj.Airborne {
		r.log.Debug("land", "pos", r.World.ActorPos(r.Player.Actor))
	}
	r.Contact = c
}

// PlatformSystem oscillates the platform, carrying anything on it.
type PlatformSystem struct{}

func (PlatformSystem) Update(r *Ready, f Frame) {
	if r.Platform.Update(r.World, f.DT) {
		r.log.Debug("platform reversed", "x", r.World.SolidPos(r.Platform.Solid).X, "speed", r.Platform.Speed)
	}
}
