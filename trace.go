package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/milk9111/touchplatformer/system"
)

var flagEvery int

var traceCmd = &cobra.Command{
	Use:   "trace [script]",
	Short: "Simulate a scripted gesture sequence without a window",
	Long: `Run the simulation headlessly against a gesture script and print the
player and platform state as a table. Without a script the built-in demo
runs: settle, walk right off the ledge, then jump.

Script format (YAML):
  dt: 0.0166666667
  steps:
    - frames: 60                               # no touch
    - touch: {x: 100, y: 100, phase: started}  # one frame
    - frames: 30
      touch: {x: 160, y: 100, phase: moved}

Rows are printed every --every frames plus every frame with a touch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().IntVar(&flagEvery, "every", 15, "Print every Nth frame without a touch")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	touchStyle  = cellStyle.Foreground(lipgloss.Color("86"))
)

func runTrace(cmd *cobra.Command, args []string) error {
	logger := newLogger("trace")

	var ready *system.Ready
	switch s := setup(logger).(type) {
	case *system.Ready:
		ready = s
	case *system.Failed:
		return s.Reason
	}

	script, err := system.DemoScript()
	if len(args) == 1 {
		script, err = system.LoadScript(args[0])
	}
	if err != nil {
		return err
	}

	rows := ready.Run(script)
	touched := make(map[int]bool)
	var cells [][]string
	for _, row := range rows {
		if row.Phase == "" && (flagEvery <= 0 || row.Frame%flagEvery != 0) {
			continue
		}
		touched[len(cells)] = row.Phase != ""
		facing := "right"
		if row.FacingLeft {
			facing = "left"
		}
		angle := ""
		if row.Phase != "" {
			angle = fmt.Sprintf("%.1f", row.Angle)
		}
		cells = append(cells, []string{
			fmt.Sprint(row.Frame),
			row.Phase,
			row.Direction.String(),
			angle,
			fmt.Sprintf("%.2f, %.2f", row.Player.X, row.Player.Y),
			fmt.Sprintf("%.1f, %.1f", row.Velocity.X, row.Velocity.Y),
			row.State.String(),
			facing,
			fmt.Sprintf("%.2f", row.PlatformX),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Frame", "Phase", "Dir", "Angle", "Player", "Velocity", "State", "Facing", "Platform").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case touched[row]:
				return touchStyle
			}
			return cellStyle
		})

	fmt.Fprintln(cmd.OutOrStdout(), t)
	fmt.Fprintf(cmd.OutOrStdout(), "%d frames, dt %.4f\n", len(rows), script.DT)
	return nil
}
