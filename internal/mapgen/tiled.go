package mapgen

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"rockup/internal/blocks"
	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lafriks/go-tiled"
)

const (
	PlatformsGroup = "platforms"
	SpawnGroup     = "spawn"

	defaultThickness = 1.0
)

// TiledFile reads platforms from the object layers of a Tiled map. Each
// rectangle is a platform footprint seen from above.
type TiledFile struct {
	Path string
	// Unit is the number of world units per tile.
	Unit float32
	// FS is searched for Path. Nil means the directory of Path on disk.
	FS fs.FS
}

func (t *TiledFile) GenerateMap(seed int64) (*Map, error) {
	fsys, name := t.FS, t.Path
	if fsys == nil {
		fsys, name = os.DirFS(filepath.Dir(t.Path)), filepath.Base(t.Path)
	}
	tm, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", t.Path, err)
	}

	m, err := t.build(tm)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", t.Path, err)
	}
	m.Seed = seed
	slog.Debug("Loaded tiled map", "path", t.Path, "blocks", len(m.Blocks))
	return m, nil
}

func (t *TiledFile) build(tm *tiled.Map) (*Map, error) {
	if tm.TileWidth <= 0 || tm.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", tm.TileWidth, tm.TileHeight)
	}
	unit := t.Unit
	if unit <= 0 {
		unit = 1
	}
	pxW := float64(tm.Width * tm.TileWidth)
	pxH := float64(tm.Height * tm.TileHeight)

	// footprint maps a pixel rectangle to a world center and half extents on XZ
	footprint := func(o *tiled.Object) (rl.Vector3, rl.Vector3) {
		c := rl.Vector3{
			X: float32((o.X+o.Width/2-pxW/2)/float64(tm.TileWidth)) * unit,
			Z: float32((o.Y+o.Height/2-pxH/2)/float64(tm.TileHeight)) * unit,
		}
		h := rl.Vector3{
			X: float32(o.Width/2/float64(tm.TileWidth)) * unit,
			Z: float32(o.Height/2/float64(tm.TileHeight)) * unit,
		}
		return c, h
	}

	m := &Map{Policy: physics.PolicyBounce, Spawn: DefaultSpawn}
	for _, og := range tm.ObjectGroups {
		switch og.Name {
		case PlatformsGroup:
			for _, o := range og.Objects {
				c, h := footprint(o)
				c.Y = float32(o.Properties.GetFloat("y"))
				thickness := o.Properties.GetFloat("thickness")
				if thickness <= 0 {
					thickness = defaultThickness
				}
				h.Y = float32(thickness / 2)

				b := blocks.NewBlock(c, h).WithTint(rl.SkyBlue)
				if o.Properties.GetBool("goal") {
					b = b.WithRole(blocks.GoalRole()).WithShape(blocks.ShapeSphere).WithTint(rl.Gold)
				}
				if o.Properties.GetBool("decor") {
					b = b.Decor()
				}
				m.Blocks = append(m.Blocks, b)
			}
		case SpawnGroup:
			if len(og.Objects) == 0 {
				continue
			}
			o := og.Objects[0]
			c, _ := footprint(o)
			c.Y = float32(o.Properties.GetFloat("y"))
			m.Spawn = c
		}
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}
