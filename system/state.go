// Package system builds the simulation from level data and tuning specs and
// advances it one frame at a time.
package system

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchplatformer/gesture"
	"github.com/milk9111/touchplatformer/levels"
	"github.com/milk9111/touchplatformer/obj"
	"github.com/milk9111/touchplatformer/physics"
	"github.com/milk9111/touchplatformer/prefabs"
)

var (
	ErrNoLevel   = errors.New("system: no level")
	ErrNoSpecs   = errors.New("system: no specs")
	ErrViewport  = errors.New("system: invalid viewport width")
	ErrLevelSize = errors.New("system: level size does not match world spec")
)

// State is the outcome of Setup: either *Ready or *Failed.
type State interface {
	state()
}

// Failed holds the reason the world could not be built. Nothing simulates
// in this state.
type Failed struct {
	Reason error
}

func (*Failed) state() {}

func (f *Failed) Error() string {
	return f.Reason.Error()
}

// Ready is a fully built world plus the controllers and input state that
// persist between frames.
type Ready struct {
	World    *physics.World
	Player   *obj.Player
	Platform *obj.Platform

	Input    gesture.FrameInputState
	Feedback gesture.Feedback
	Contact  obj.Contact

	Specs    prefabs.Specs
	TileSize float64

	scheduler *Scheduler
	log       *log.Logger
}

func (*Ready) state() {}

// Setup builds the world for a viewport viewportWidth units wide. The tile
// size is viewportWidth divided by the column count, so the level always
// spans the viewport horizontally.
func Setup(specs *prefabs.Specs, lvl *levels.Level, viewportWidth float64, logger *log.Logger) State {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r, err := build(specs, lvl, viewportWidth)
	if err != nil {
		logger.Error("setup failed", "err", err)
		return &Failed{Reason: err}
	}
	r.log = logger

	w, h := r.Size()
	logger.Info("world ready",
		"cols", r.World.Grid().Cols(),
		"rows", r.World.Grid().Rows(),
		"tile", r.TileSize,
		"size", fmt.Sprintf("%gx%g", w, h),
	)
	return r
}

func build(specs *prefabs.Specs, lvl *levels.Level, viewportWidth float64) (*Ready, error) {
	switch {
	case specs == nil:
		return nil, ErrNoSpecs
	case lvl == nil:
		return nil, ErrNoLevel
	case !(viewportWidth > 0):
		return nil, fmt.Errorf("%w: %v", ErrViewport, viewportWidth)
	}
	if err := specs.Validate(); err != nil {
		return nil, err
	}

	ws := specs.World
	occ, cols, rows, err := lvl.Occupancy(ws.Layer)
	if err != nil {
		return nil, fmt.Errorf("system: setup: %w", err)
	}
	if cols != ws.Columns || rows != ws.Rows {
		return nil, fmt.Errorf("%w: layer %q is %dx%d, want %dx%d", ErrLevelSize, ws.Layer, cols, rows, ws.Columns, ws.Rows)
	}

	tile := viewportWidth / float64(cols)
	world := physics.NewWorld()
	if err := world.AddStaticTiledLayer(occ, tile, tile, cols, rows); err != nil {
		return nil, fmt.Errorf("system: setup: %w", err)
	}

	r := &Ready{
		World:     world,
		Specs:     *specs,
		TileSize:  tile,
		scheduler: NewScheduler(GestureSystem{}, PlayerSystem{}, PlatformSystem{}),
	}

	ps := specs.Player
	actor := world.AddActor(r.design(ps.Spawn), ps.Size.W*tile, ps.Size.H*tile)
	r.Player = obj.NewPlayer(actor, r.playerTuning())

	pl := specs.Platform
	solid := world.AddSolid(r.design(pl.Spawn), pl.Size.W*tile, pl.Size.H*tile)
	sx := r.designScale()
	r.Platform = obj.NewPlatform(solid, pl.Speed, pl.MinX*sx.X, pl.MaxX*sx.X)

	return r, nil
}

// Size returns the world size in world units.
func (r *Ready) Size() (float64, float64) {
	bb := r.World.Grid().Bounds()
	return bb.R - bb.L, bb.T - bb.B
}

// designScale converts design units to world units on each axis.
func (r *Ready) designScale() cp.Vector {
	w, h := r.Size()
	return cp.Vector{X: w / r.Specs.World.DesignWidth, Y: h / r.Specs.World.DesignHeight}
}

func (r *Ready) design(p prefabs.PointSpec) cp.Vector {
	s := r.designScale()
	return cp.Vector{X: p.X * s.X, Y: p.Y * s.Y}
}

func (r *Ready) playerTuning() obj.PlayerTuning {
	_, h := r.Size()
	return obj.PlayerTuning{
		Speed:     r.Specs.Player.Speed,
		Gravity:   r.Specs.World.Gravity,
		JumpSpeed: r.Specs.Player.JumpSpeed(h),
	}
}

// Step runs one frame: gesture, then player, then platform.
func (r *Ready) Step(dt float64, touches []gesture.Touch) {
	r.scheduler.Update(r, Frame{DT: dt, Touches: touches})
}

// ApplySpecs hands reloaded tuning to the running controllers. Level layout,
// spawn points and sizes only apply at setup.
func (r *Ready) ApplySpecs(specs prefabs.Specs) {
	r.Specs.World.Gravity = specs.World.Gravity
	r.Specs.World.Palette = specs.World.Palette
	r.Specs.Player.Speed = specs.Player.Speed
	r.Specs.Player.JumpHeight = specs.Player.JumpHeight
	r.Specs.Player.JumpReference = specs.Player.JumpReference
	r.Specs.Platform.Speed = specs.Platform.Speed

	r.Player.SetTuning(r.playerTuning())
	r.Platform.SetSpeed(specs.Platform.Speed)
	r.log.Info("tuning applied",
		"speed", r.Specs.Player.Speed,
		"gravity", r.Specs.World.Gravity,
		"platform", r.Platform.Speed,
	)
}

// StatusLine is the first HUD line: whether setup succeeded, and why not.
func StatusLine(s State) string {
	if f, ok := s.(*Failed); ok {
		return "TEXT0: Panic: " + f.Reason.Error()
	}
	return "TEXT0: No panic"
}
