package system

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchplatformer/gesture"
	"github.com/milk9111/touchplatformer/obj"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoScript []byte

var ErrInvalidScript = errors.New("system: invalid script")

// Script is a scripted gesture sequence for headless runs.
type Script struct {
	DT    float64      `yaml:"dt"`
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep repeats the same touch (or no touch) for Frames frames.
type ScriptStep struct {
	Frames int          `yaml:"frames"`
	Touch  *ScriptTouch `yaml:"touch"`
}

type ScriptTouch struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Phase string  `yaml:"phase"`
}

// TraceRow is the observable state after one scripted frame.
type TraceRow struct {
	Frame      int
	Phase      string
	Direction  gesture.Direction
	Angle      float64
	Player     cp.Vector
	Velocity   cp.Vector
	State      obj.PlayerState
	PlatformX  float64
	FacingLeft bool
}

// DemoScript returns the built-in script.
func DemoScript() (*Script, error) {
	return ParseScript(demoScript)
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("system: read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("system: unmarshal script: %w", err)
	}
	if !(s.DT > 0) {
		return nil, fmt.Errorf("%w: dt must be positive", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if st.Frames < 0 {
			return nil, fmt.Errorf("%w: step %d has %d frames", ErrInvalidScript, i, st.Frames)
		}
		if st.Touch != nil {
			if _, err := gesture.ParsePhase(st.Touch.Phase); err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i, err)
			}
		}
	}
	return &s, nil
}

// Frames returns the total number of frames the script runs.
func (s *Script) Frames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.count()
	}
	return n
}

// a step without an explicit count runs once
func (st ScriptStep) count() int {
	if st.Frames == 0 {
		return 1
	}
	return st.Frames
}

func (st ScriptStep) touches() []gesture.Touch {
	if st.Touch == nil {
		return nil
	}
	phase, _ := gesture.ParsePhase(st.Touch.Phase)
	return []gesture.Touch{{
		Position: cp.Vector{X: st.Touch.X, Y: st.Touch.Y},
		Phase:    phase,
	}}
}

// Run plays the script against r and returns one row per frame.
func (r *Ready) Run(s *Script) []TraceRow {
	rows := make([]TraceRow, 0, s.Frames())
	frame := 0
	for _, st := range s.Steps {
		touches := st.touches()
		for i := 0; i < st.count(); i++ {
			r.Step(s.DT, touches)
			frame++

			row := TraceRow{
				Frame:      frame,
				Direction:  r.Feedback.Direction,
				Player:     r.World.ActorPos(r.Player.Actor),
				Velocity:   r.Player.Velocity,
				State:      r.Contact.State,
				PlatformX:  r.World.SolidPos(r.Platform.Solid).X,
				FacingLeft: r.Player.FacingLeft(),
			}
			if r.Feedback.Touching {
				row.Phase = r.Feedback.Phase.String()
				row.Angle = r.Feedback.Angle
			}
			rows = append(rows, row)
		}
	}
	return rows
}
