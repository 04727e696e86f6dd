package mapgen

import (
	"strings"
	"testing"

	"rockup/internal/blocks"
	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProceduralIsDeterministic(t *testing.T) {
	p := NewProcedural()
	a, err := p.GenerateMap(777)
	require.NoError(t, err)
	b, err := p.GenerateMap(777)
	require.NoError(t, err)
	assert.Equal(t, a.Blocks, b.Blocks)
	assert.Equal(t, int64(777), a.Seed)

	c, err := p.GenerateMap(778)
	require.NoError(t, err)
	assert.NotEqual(t, a.Blocks, c.Blocks)
}

func TestProceduralLayout(t *testing.T) {
	p := NewProcedural()
	p.Pillars = false
	m, err := p.GenerateMap(42)
	require.NoError(t, err)

	ground := m.Blocks[0]
	assert.Equal(t, rl.Vector3{Y: -2}, ground.Center)
	assert.Equal(t, rl.Vector3{X: 40, Y: 1, Z: 40}, ground.Half)

	walls := m.Blocks[1:5]
	for _, w := range walls {
		assert.Equal(t, float32(125), w.Half.Y)
		assert.Equal(t, float32(115), w.Center.Y)
	}
	assert.Equal(t, float32(45), walls[0].Center.X)
	assert.Equal(t, float32(-45), walls[3].Center.Z)

	platforms := m.Blocks[5 : len(m.Blocks)-1]
	layers := map[float32]int{}
	for _, b := range platforms {
		assert.True(t, b.Obstacle)
		assert.Equal(t, blocks.Static, b.Role.Kind)
		assert.GreaterOrEqual(t, b.Center.X, float32(-35))
		assert.Less(t, b.Center.X, float32(35))
		assert.GreaterOrEqual(t, b.Half.X, float32(4))
		assert.Less(t, b.Half.X, float32(7))
		assert.Equal(t, float32(0.5), b.Half.Y)
		layers[b.Center.Y]++
	}
	assert.Len(t, layers, 75)
	for y, n := range layers {
		assert.True(t, n == 1 || n == 2, "layer %v has %d platforms", y, n)
	}

	goal, ok := m.Goal()
	require.True(t, ok)
	assert.Equal(t, float32(450), goal.Center.Y)
	assert.Equal(t, goal, m.Blocks[len(m.Blocks)-1])
}

func TestProceduralPillarsAreDecor(t *testing.T) {
	m, err := NewProcedural().GenerateMap(1)
	require.NoError(t, err)
	decor := 0
	for _, b := range m.Blocks {
		if !b.Obstacle {
			decor++
		}
	}
	assert.Equal(t, pillarCount, decor)
}

func TestReadTriangles(t *testing.T) {
	src := `# quad and a triangle with negative refs
v 0 0 0
v 4 0 0
v 4 0 4
v 0 0 4
f 1 2 3 4
f -1/1/1 -2/1/1 -3/1/1
`
	tris, err := ReadTriangles(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, tris, 3)
	assert.Equal(t, rl.Vector3{}, tris[1].V0)
	assert.Equal(t, rl.Vector3{X: 4, Z: 4}, tris[1].V1)
	assert.Equal(t, rl.Vector3{Z: 4}, tris[1].V2)
	assert.Equal(t, rl.Vector3{Z: 4}, tris[2].V0)
	assert.Equal(t, rl.Vector3{X: 4}, tris[2].V2)
}

func TestReadTrianglesErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"bad coordinate", "v 0 0 0\nv 1 x 0\n", "line 2"},
		{"short vertex", "v 1 2\n", "line 1"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\n\nf 1 2 9\n", "line 5"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", "line 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadTriangles(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, err := ReadTriangles(strings.NewReader("v 0 0 0\n# no faces\n"))
	assert.ErrorIs(t, err, ErrEmptyMap)
}

func TestTriangleBlockFloorsThickness(t *testing.T) {
	b := Triangle{
		V0: rl.Vector3{},
		V1: rl.Vector3{X: 3},
		V2: rl.Vector3{X: 3, Z: 6},
	}.Block()
	assert.Equal(t, rl.Vector3{X: 2, Z: 2}, b.Center)
	assert.Equal(t, rl.Vector3{X: 1.5, Y: MinThickness, Z: 3}, b.Half)
	assert.True(t, b.Obstacle)
}

func TestOBJFile(t *testing.T) {
	src, err := Open("testdata/ramp.obj", 1)
	require.NoError(t, err)
	m, err := src.GenerateMap(5)
	require.NoError(t, err)

	assert.Equal(t, physics.PolicySlide, m.Policy)
	require.Len(t, m.Blocks, 3)
	last := m.Blocks[2]
	assert.InDelta(t, 4.0/3, last.Center.X, 1e-5)
	assert.InDelta(t, 2.0/3, last.Center.Y, 1e-5)
	assert.InDelta(t, 16.0/3, last.Center.Z, 1e-5)
	assert.Equal(t, rl.Vector3{X: 2, Y: 1, Z: 2}, last.Half)
}

func TestOBJFileMissing(t *testing.T) {
	_, err := (&OBJFile{Path: "testdata/nope.obj"}).GenerateMap(0)
	assert.Error(t, err)
}

func TestTiledFile(t *testing.T) {
	src, err := Open("testdata/tower.tmx", 1)
	require.NoError(t, err)
	m, err := src.GenerateMap(0)
	require.NoError(t, err)

	assert.Equal(t, physics.PolicyBounce, m.Policy)
	require.Len(t, m.Blocks, 4)

	assert.Equal(t, rl.Vector3{}, m.Blocks[0].Center)
	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, m.Blocks[0].Half)

	assert.Equal(t, rl.Vector3{X: -4.5, Y: 6, Z: -3.5}, m.Blocks[1].Center)
	assert.Equal(t, rl.Vector3{X: 0.5, Y: 0.5, Z: 1.5}, m.Blocks[1].Half)

	goal, ok := m.Goal()
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 4, Y: 12, Z: 4}, goal.Center)

	assert.False(t, m.Blocks[3].Obstacle)
	assert.Equal(t, rl.Vector3{Y: 4}, m.Spawn)
}

func TestTiledFileUnit(t *testing.T) {
	m, err := (&TiledFile{Path: "testdata/tower.tmx", Unit: 2}).GenerateMap(0)
	require.NoError(t, err)
	assert.Equal(t, float32(-9), m.Blocks[1].Center.X)
	assert.Equal(t, float32(3), m.Blocks[1].Half.Z)
	assert.Equal(t, float32(0.5), m.Blocks[1].Half.Y, "thickness is not scaled")
}

func TestTiledFileWithoutObstacles(t *testing.T) {
	_, err := (&TiledFile{Path: "testdata/decor_only.tmx"}).GenerateMap(0)
	assert.ErrorIs(t, err, ErrEmptyMap)
}

func TestOpenUnknownExtension(t *testing.T) {
	_, err := Open("level.fbx", 1)
	assert.Error(t, err)
}
