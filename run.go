package main

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/touchplatformer/levels"
	"github.com/milk9111/touchplatformer/prefabs"
	"github.com/milk9111/touchplatformer/system"
)

var (
	flagHeight float64
	flagWatch  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the game window",
	Long: `Open the game window. The level is scaled so its columns span the
viewport width. With --watch, edits to prefabs/*.yaml are applied to the
running game.`,
	Args: cobra.NoArgs,
	RunE: runGame,
}

func init() {
	runCmd.Flags().Float64Var(&flagHeight, "height", 360, "Viewport height in world units")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload tuning when prefabs/*.yaml change")
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := newLogger("touchplatformer")

	// a failed setup still opens the window so the reason can be shown
	state := setup(logger)

	var watcher *prefabs.Watcher
	if flagWatch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Warn("tuning watch disabled", "dir", prefabs.Dir, "err", err)
		} else {
			watcher = w
			defer watcher.Close()
			logger.Info("watching tuning", "dir", prefabs.Dir)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(flagWidth), int(flagHeight))
	ebiten.SetWindowTitle("touchplatformer")

	game := NewGame(state, flagWidth, flagHeight, watcher, logger)
	return ebiten.RunGame(game)
}

// setup loads tuning and the level and builds the world. Load errors end up
// in the returned Failed state.
func setup(logger *log.Logger) system.State {
	specs, err := prefabs.LoadSpecs()
	if err != nil {
		logger.Error("load tuning", "err", err)
		return &system.Failed{Reason: err}
	}
	name := flagLevel
	if name == "" {
		name = specs.World.Level
	}
	lvl, err := levels.Load(name)
	if err != nil {
		logger.Error("load level", "level", name, "err", err)
		return &system.Failed{Reason: err}
	}
	return system.Setup(specs, lvl, flagWidth, logger)
}
