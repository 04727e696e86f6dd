// Package mapgen builds the tower blocks the player climbs once it lands.
package mapgen

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"rockup/internal/blocks"
	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrEmptyMap is returned when a source produces no colliding block.
var ErrEmptyMap = errors.New("map has no obstacle blocks")

// Map is one generated tower.
type Map struct {
	Blocks []blocks.Block
	Policy physics.Policy
	// Spawn is where a player that falls out of the tower is put back.
	Spawn rl.Vector3
	Seed  int64
}

// Source produces a tower for a seed. File based sources ignore the seed.
type Source interface {
	GenerateMap(seed int64) (*Map, error)
}

// DefaultSpawn is the safe point above the ground plate.
var DefaultSpawn = rl.Vector3{Y: 5}

func (m *Map) validate() error {
	for _, b := range m.Blocks {
		if b.Obstacle {
			return nil
		}
	}
	return ErrEmptyMap
}

// Goal returns the first goal block of the map.
func (m *Map) Goal() (blocks.Block, bool) {
	for _, b := range m.Blocks {
		if b.Role.Kind == blocks.Goal {
			return b, true
		}
	}
	return blocks.Block{}, false
}

// Open returns the file source matching the extension of path.
func Open(path string, tiledUnit float32) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return &OBJFile{Path: path}, nil
	case ".tmx":
		return &TiledFile{Path: path, Unit: tiledUnit}, nil
	default:
		return nil, fmt.Errorf("map %s: unsupported format %q", path, ext)
	}
}
