package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile map stored as JSON. Rows run top to bottom; every layer is
// a flat row-major array of Width*Height tile values (0 = empty).
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is something placed in the level, in tile coordinates.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Prop returns a string property, or def when missing.
func (e Entity) Prop(name, def string) string {
	if v, ok := e.Props[name]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

// Load reads a level by name, preferring levels/<name>.json on disk over the
// embedded copy.
func Load(name string) (*Level, error) {
	clean := filepath.ToSlash(name)
	clean = strings.TrimPrefix(clean, "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("level: read %s: %w", clean, err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level: invalid size %dx%d", lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("level: layer %d has %d tiles, want %d", i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

// Solid reports whether any physics layer has a tile at column x, row y.
// Layers without metadata are treated as physics layers.
func (l *Level) Solid(x, y int) bool {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	idx := y*l.Width + x
	for i, layer := range l.Layers {
		if i < len(l.LayerMeta) && !l.LayerMeta[i].Physics {
			continue
		}
		if layer[idx] != 0 {
			return true
		}
	}
	return false
}

// WorldPos converts a tile cell to the world-space centre of that cell.
// World space is y-up with one unit per tile.
func (l *Level) WorldPos(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(l.Height-1-y) + 0.5
}

// EntitiesOfType filters placed entities by type.
func (l *Level) EntitiesOfType(kind string) []Entity {
	if l == nil {
		return nil
	}
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}
