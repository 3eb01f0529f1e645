package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLayer is the layer whose tiles collide.
const DefaultLayer = "main layer"

var (
	ErrLayerNotFound = errors.New("levels: layer not found")
	ErrInvalidLevel  = errors.New("levels: invalid level")
)

// Level is a tile map exported in the Tiled JSON layout. Tile ids are global
// ids; 0 means no tile.
type Level struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	TileWidth  int     `json:"tilewidth"`
	TileHeight int     `json:"tileheight"`
	Layers     []Layer `json:"layers"`
}

// Layer is one row-major tile layer.
type Layer struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []int  `json:"data"`
}

// LoadLevelFromFS loads an embedded level. The .json extension is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelName(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// LoadLevel loads a level from disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Load resolves name against the embedded levels first and falls back to the
// file system, so both "main" and "./my_level.json" work.
func Load(name string) (*Level, error) {
	if _, err := fs.Stat(LevelsFS, cleanLevelName(name)); err == nil {
		return LoadLevelFromFS(name)
	}
	return LoadLevel(name)
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	for i := range l.Layers {
		ly := &l.Layers[i]
		// layers exported without their own size span the whole map
		if ly.Width == 0 && ly.Height == 0 {
			ly.Width, ly.Height = l.Width, l.Height
		}
		if ly.Width <= 0 || ly.Height <= 0 {
			return fmt.Errorf("%w: layer %q dimensions %dx%d", ErrInvalidLevel, ly.Name, ly.Width, ly.Height)
		}
		if len(ly.Data) != ly.Width*ly.Height {
			return fmt.Errorf("%w: layer %q has %d tiles, want %d", ErrInvalidLevel, ly.Name, len(ly.Data), ly.Width*ly.Height)
		}
	}
	return nil
}

// Layer returns the layer with the given name.
func (l *Level) Layer(name string) (*Layer, error) {
	for i := range l.Layers {
		if l.Layers[i].Name == name {
			return &l.Layers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, name)
}

// Occupancy returns the row-major solid mask of a layer and its size.
func (l *Level) Occupancy(name string) ([]bool, int, int, error) {
	ly, err := l.Layer(name)
	if err != nil {
		return nil, 0, 0, err
	}
	occ := make([]bool, len(ly.Data))
	for i, gid := range ly.Data {
		occ[i] = gid != 0
	}
	return occ, ly.Width, ly.Height, nil
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
