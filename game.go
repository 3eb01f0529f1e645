package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/touchplatformer/prefabs"
	"github.com/milk9111/touchplatformer/system"
)

type Game struct {
	state    system.State
	width    float64
	height   float64
	touches  *touchSource
	renderer *renderer
	watcher  *prefabs.Watcher
	log      *log.Logger
}

func NewGame(state system.State, width, height float64, watcher *prefabs.Watcher, logger *log.Logger) *Game {
	return &Game{
		state:    state,
		width:    width,
		height:   height,
		touches:  &touchSource{},
		renderer: newRenderer(),
		watcher:  watcher,
		log:      logger,
	}
}

func (g *Game) Update() error {
	touches := g.touches.Poll()
	ready, ok := g.state.(*system.Ready)
	if !ok {
		return nil
	}
	g.applyReloads(ready)
	ready.Step(1/float64(ebiten.TPS()), touches)
	return nil
}

// applyReloads applies tuning files changed since the last frame. A file
// that fails to load or validate leaves the running tuning untouched.
func (g *Game) applyReloads(r *system.Ready) {
	if g.watcher == nil {
		return
	}
	names, err := g.watcher.Poll()
	if err != nil {
		g.log.Warn("tuning watch", "err", err)
	}
	for _, name := range names {
		specs := r.Specs
		changed, err := specs.Reload(name)
		if err != nil {
			g.log.Warn("tuning reload rejected", "file", name, "err", err)
			continue
		}
		if !changed {
			continue
		}
		if mod, ok := prefabs.ModTime(name); ok {
			g.log.Info("tuning reloaded", "file", name, "modified", mod.Format(time.TimeOnly))
		} else {
			g.log.Info("tuning reloaded", "file", name)
		}
		r.ApplySpecs(specs)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.state)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.width, g.height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
