// touchplatformer is a tile-grid platformer steered by single-finger drags.
//
// Usage:
//
//	touchplatformer [run]          - Open the game window (default)
//	touchplatformer trace [script] - Simulate a scripted gesture sequence headlessly
//
// Global flags:
//
//	--level <name>  - Level in levels/ or a path to a level JSON file
//	--debug         - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagLevel string
	flagDebug bool
	flagWidth float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "touchplatformer",
	Short: "Touch-steered tile platformer",
	Long: `Drag anywhere on the screen to steer the player: drag left or right
to walk, drag up to jump. A compass at the touch point shows which
direction the drag is being read as.

Examples:
  touchplatformer
  touchplatformer run --width 1366 --height 768 --watch
  touchplatformer trace
  touchplatformer trace ./my-gestures.yaml --every 10`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level name in levels/ or path to a level file (default: world.yaml level)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().Float64Var(&flagWidth, "width", 640, "Viewport width in world units")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(traceCmd)
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
