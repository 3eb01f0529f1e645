package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchplatformer/gesture"
	"github.com/milk9111/touchplatformer/physics"
)

// PlayerState is derived from the ground probe every frame and never stored.
type PlayerState int

const (
	Airborne PlayerState = iota
	Grounded
)

func (s PlayerState) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// PlayerTuning holds the controller constants, in world units per second.
type PlayerTuning struct {
	Speed     float64
	Gravity   float64
	JumpSpeed float64
}

// Contact reports what happened to the player during one Update.
type Contact struct {
	State    PlayerState
	Jumped   bool
	HitWall  bool
	HitFloor bool
}

// Player drives the player actor. Velocity belongs to the controller; the
// physics world only carries out the displacement.
type Player struct {
	Actor    physics.ActorID
	Velocity cp.Vector

	tuning PlayerTuning
}

func NewPlayer(actor physics.ActorID, tuning PlayerTuning) *Player {
	return &Player{Actor: actor, tuning: tuning}
}

func (p *Player) Tuning() PlayerTuning {
	return p.tuning
}

// SetTuning swaps the constants; the current velocity is kept.
func (p *Player) SetTuning(t PlayerTuning) {
	p.tuning = t
}

// Steer applies one frame of input to the velocity. Horizontal speed snaps to
// the input with no acceleration; jumping is only possible from the ground
// and overrides any gravity gathered this frame. Fall speed is not capped.
func (p *Player) Steer(onGround bool, dirs gesture.Directions, dt float64) bool {
	if !onGround {
		p.Velocity.Y += p.tuning.Gravity * dt
	}

	switch {
	case dirs.Right:
		p.Velocity.X = p.tuning.Speed
	case dirs.Left:
		p.Velocity.X = -p.tuning.Speed
	default:
		p.Velocity.X = 0
	}

	if dirs.Up && onGround {
		p.Velocity.Y = -p.tuning.JumpSpeed
		return true
	}
	return false
}

// Update probes for ground, steers, and moves the actor one axis at a time.
// A blocked move zeroes the velocity on that axis.
func (p *Player) Update(w *physics.World, dirs gesture.Directions, dt float64) Contact {
	var c Contact
	onGround := w.OnGround(p.Actor)
	if onGround {
		c.State = Grounded
	}
	c.Jumped = p.Steer(onGround, dirs, dt)

	if w.MoveH(p.Actor, p.Velocity.X*dt) {
		c.HitWall = true
		p.Velocity.X = 0
	}
	if w.MoveV(p.Actor, p.Velocity.Y*dt) {
		c.HitFloor = p.Velocity.Y > 0
		p.Velocity.Y = 0
	}
	return c
}

// FacingLeft reports which way the sprite should face. A player blocked by
// a wall has no horizontal velocity and faces right.
func (p *Player) FacingLeft() bool {
	return p.Velocity.X < 0
}
