package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	WorldFile    = "world.yaml"
	PlayerFile   = "player.yaml"
	PlatformFile = "platform.yaml"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PointSpec is a position in design units.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SizeSpec is a size in tiles.
type SizeSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type PaletteSpec struct {
	Background YAMLColor `yaml:"background"`
	Tile       YAMLColor `yaml:"tile"`
	Platform   YAMLColor `yaml:"platform"`
	Player     YAMLColor `yaml:"player"`
	Sector     YAMLColor `yaml:"sector"`
	SectorAlt  YAMLColor `yaml:"sector_alt"`
}

// WorldSpec describes the level layout and global physics tuning.
type WorldSpec struct {
	Name         string      `yaml:"name"`
	Level        string      `yaml:"level"`
	Layer        string      `yaml:"layer"`
	Columns      int         `yaml:"columns"`
	Rows         int         `yaml:"rows"`
	DesignWidth  float64     `yaml:"design_width"`
	DesignHeight float64     `yaml:"design_height"`
	Gravity      float64     `yaml:"gravity"`
	Palette      PaletteSpec `yaml:"palette"`
}

func (s *WorldSpec) Validate() error {
	switch {
	case s.Columns <= 0 || s.Rows <= 0:
		return fmt.Errorf("%w: world is %dx%d tiles", ErrInvalidSpec, s.Columns, s.Rows)
	case s.DesignWidth <= 0 || s.DesignHeight <= 0:
		return fmt.Errorf("%w: design size %gx%g", ErrInvalidSpec, s.DesignWidth, s.DesignHeight)
	case s.Gravity < 0:
		return fmt.Errorf("%w: negative gravity %g", ErrInvalidSpec, s.Gravity)
	case s.Level == "" || s.Layer == "":
		return fmt.Errorf("%w: level and layer are required", ErrInvalidSpec)
	}
	return nil
}

// PlayerSpec tunes the player controller.
type PlayerSpec struct {
	Name          string    `yaml:"name"`
	Speed         float64   `yaml:"speed"`
	JumpHeight    float64   `yaml:"jump_height"`
	JumpReference float64   `yaml:"jump_reference"`
	Spawn         PointSpec `yaml:"spawn"`
	Size          SizeSpec  `yaml:"size"`
}

func (s *PlayerSpec) Validate() error {
	switch {
	case s.Speed < 0:
		return fmt.Errorf("%w: negative player speed %g", ErrInvalidSpec, s.Speed)
	case s.JumpReference <= 0:
		return fmt.Errorf("%w: jump_reference must be positive", ErrInvalidSpec)
	case s.Size.W <= 0 || s.Size.H <= 0:
		return fmt.Errorf("%w: player size %gx%g", ErrInvalidSpec, s.Size.W, s.Size.H)
	}
	return nil
}

// JumpSpeed returns the upward launch speed for a world worldHeight units tall.
func (s *PlayerSpec) JumpSpeed(worldHeight float64) float64 {
	return s.JumpHeight / s.JumpReference * worldHeight
}

// PlatformSpec tunes the oscillating platform.
type PlatformSpec struct {
	Name  string    `yaml:"name"`
	Speed float64   `yaml:"speed"`
	MinX  float64   `yaml:"min_x"`
	MaxX  float64   `yaml:"max_x"`
	Spawn PointSpec `yaml:"spawn"`
	Size  SizeSpec  `yaml:"size"`
}

func (s *PlatformSpec) Validate() error {
	switch {
	case s.MinX >= s.MaxX:
		return fmt.Errorf("%w: platform bounds [%g, %g]", ErrInvalidSpec, s.MinX, s.MaxX)
	case s.Size.W <= 0 || s.Size.H <= 0:
		return fmt.Errorf("%w: platform size %gx%g", ErrInvalidSpec, s.Size.W, s.Size.H)
	}
	return nil
}

// Specs bundles every tuning file the game needs.
type Specs struct {
	World    WorldSpec
	Player   PlayerSpec
	Platform PlatformSpec
}

// LoadSpecs loads and validates all specs.
func LoadSpecs() (*Specs, error) {
	world, err := LoadSpec[WorldSpec](WorldFile)
	if err != nil {
		return nil, err
	}
	player, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	platform, err := LoadSpec[PlatformSpec](PlatformFile)
	if err != nil {
		return nil, err
	}
	specs := &Specs{World: world, Player: player, Platform: platform}
	if err := specs.Validate(); err != nil {
		return nil, err
	}
	return specs, nil
}

func (s *Specs) Validate() error {
	if err := s.World.Validate(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", WorldFile, err)
	}
	if err := s.Player.Validate(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	if err := s.Platform.Validate(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", PlatformFile, err)
	}
	return nil
}

// Reload re-reads the spec file named by name (as reported by a Watcher)
// into s. Unknown names are ignored and report false.
func (s *Specs) Reload(name string) (bool, error) {
	next := *s
	var err error
	switch strings.ToLower(baseName(name)) {
	case WorldFile:
		next.World, err = LoadSpec[WorldSpec](WorldFile)
	case PlayerFile:
		next.Player, err = LoadSpec[PlayerSpec](PlayerFile)
	case PlatformFile:
		next.Platform, err = LoadSpec[PlatformSpec](PlatformFile)
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := next.Validate(); err != nil {
		return false, err
	}
	*s = next
	return true, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c, or fallback when the color was not set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
