package mapgen

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"rockup/internal/blocks"
	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 150

	layerStride    = 2
	layerSpacing   = 3.0
	platformHalfY  = 0.5
	wallThickness  = 5.0
	wallOverhang   = 50.0
	wallDrop       = 10.0
	edgeMargin     = 5.0
	pillarCount    = 8
	pillarDistance = 160.0
)

// Procedural scatters platforms on every other layer inside four walls. The
// same seed always yields the same map.
type Procedural struct {
	Width  int
	Height int
	// Pillars adds distant non-colliding columns around the arena.
	Pillars bool
	// RandomSeed ignores the requested seed and draws one from the clock.
	RandomSeed bool
	Policy     physics.Policy
}

func NewProcedural() *Procedural {
	return &Procedural{Width: DefaultWidth, Height: DefaultHeight, Pillars: true}
}

func (p *Procedural) GenerateMap(seed int64) (*Map, error) {
	if p.RandomSeed {
		seed = time.Now().UnixNano()
	}
	w, h := p.Width, p.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	rng := rand.New(rand.NewSource(seed))
	m := &Map{Policy: p.Policy, Spawn: DefaultSpawn, Seed: seed}

	floor := float32(w) / 2
	m.Blocks = append(m.Blocks,
		blocks.NewBlock(rl.Vector3{Y: -2}, rl.Vector3{X: floor, Y: 1, Z: floor}).WithTint(tint(0.2, 0.8, 0.2)))

	// Boundary walls
	wallHalfY := float32(h)/2 + wallOverhang
	offset := floor + wallThickness
	wallTint := tint(0.5, 0.5, 0.5)
	wall := func(x, z, hx, hz float32) {
		c := rl.Vector3{X: x, Y: wallHalfY - wallDrop, Z: z}
		m.Blocks = append(m.Blocks, blocks.NewBlock(c, rl.Vector3{X: hx, Y: wallHalfY, Z: hz}).WithTint(wallTint))
	}
	wall(offset, 0, wallThickness, floor)
	wall(-offset, 0, wallThickness, floor)
	wall(0, offset, floor, wallThickness)
	wall(0, -offset, floor, wallThickness)

	spread := floor - edgeMargin
	coord := func() float32 {
		return float32(rng.Intn(100))/100*(spread*2) - spread
	}

	last := 0
	for layer := 0; layer < h; layer += layerStride {
		n := rng.Intn(2) + 1
		for range n {
			x, z := coord(), coord()
			sx := 4 + float32(rng.Intn(30))/10
			sz := 4 + float32(rng.Intn(30))/10
			ramp := float32(layer) / float32(h)
			c := rl.Vector3{X: x, Y: float32(layer) * layerSpacing, Z: z}
			m.Blocks = append(m.Blocks,
				blocks.NewBlock(c, rl.Vector3{X: sx, Y: platformHalfY, Z: sz}).WithTint(tint(ramp, 0.6, 1-ramp)))
		}
		last = layer
	}

	goal := rl.Vector3{X: coord(), Y: float32(last+layerStride) * layerSpacing, Z: coord()}
	m.Blocks = append(m.Blocks, blocks.NewBlock(goal, rl.Vector3{X: 2, Y: platformHalfY, Z: 2}).
		WithRole(blocks.GoalRole()).
		WithShape(blocks.ShapeSphere).
		WithTint(rl.Gold))

	if p.Pillars {
		p.addPillars(m, wallHalfY)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	slog.Debug("Generated procedural map", "seed", seed, "blocks", len(m.Blocks), "goal", goal)
	return m, nil
}

func (p *Procedural) addPillars(m *Map, halfY float32) {
	for i := range pillarCount {
		a := float64(i) * 2 * math.Pi / pillarCount
		c := rl.Vector3{
			X: float32(math.Cos(a)) * pillarDistance,
			Y: halfY - wallDrop,
			Z: float32(math.Sin(a)) * pillarDistance,
		}
		b := blocks.NewBlock(c, rl.Vector3{X: 6, Y: halfY, Z: 6}).WithTint(tint(0.3, 0.3, 0.35)).Decor()
		m.Blocks = append(m.Blocks, b)
	}
}

func tint(r, g, b float32) rl.Color {
	return rl.NewColor(uint8(r*255), uint8(g*255), uint8(b*255), 255)
}
