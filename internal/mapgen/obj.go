package mapgen

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"rockup/internal/blocks"
	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MinThickness is the smallest half extent a mesh block gets on any axis, so
// flat triangles still have a volume to collide with.
const MinThickness = 0.05

// Triangle is one face of a mesh after fan triangulation.
type Triangle struct {
	V0, V1, V2 rl.Vector3
}

// Block returns the box enclosing t, centered on its centroid.
func (t Triangle) Block() blocks.Block {
	centroid := rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3)
	half := physics.NewAABBFromPoints(t.V0, t.V1, t.V2).Half()
	half.X = max(half.X, MinThickness)
	half.Y = max(half.Y, MinThickness)
	half.Z = max(half.Z, MinThickness)
	return blocks.NewBlock(centroid, half)
}

// OBJFile loads a Wavefront OBJ mesh and turns every triangle into a block.
type OBJFile struct {
	Path string
}

func (o *OBJFile) GenerateMap(seed int64) (*Map, error) {
	f, err := os.Open(o.Path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", o.Path, err)
	}
	m.Seed = seed
	slog.Debug("Loaded mesh map", "path", o.Path, "blocks", len(m.Blocks))
	return m, nil
}

// ParseOBJ reads vertex and face records. Everything else in the file
// (normals, texture coordinates, groups, materials) is ignored.
func ParseOBJ(r io.Reader) (*Map, error) {
	tris, err := ReadTriangles(r)
	if err != nil {
		return nil, err
	}
	m := &Map{Policy: physics.PolicySlide, Spawn: DefaultSpawn}
	for _, t := range tris {
		m.Blocks = append(m.Blocks, t.Block())
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadTriangles returns the faces of an OBJ stream, fan triangulated.
func ReadTriangles(r io.Reader) ([]Triangle, error) {
	var verts []rl.Vector3
	var tris []Triangle

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			verts = append(verts, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := faceIndex(ref, len(verts))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				idx = append(idx, i)
			}
			for k := 1; k+1 < len(idx); k++ {
				tris = append(tris, Triangle{V0: verts[idx[0]], V1: verts[idx[k]], V2: verts[idx[k+1]]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(tris) == 0 {
		return nil, ErrEmptyMap
	}
	return tris, nil
}

func parseVertex(fields []string) (rl.Vector3, error) {
	if len(fields) < 3 {
		return rl.Vector3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return rl.Vector3{}, fmt.Errorf("vertex coordinate %q: %w", fields[i], err)
		}
		c[i] = float32(f)
	}
	return rl.Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// faceIndex resolves a face reference like "7", "7/2/3", "7//3" or "-1" to
// a zero based vertex index.
func faceIndex(ref string, count int) (int, error) {
	head, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("face index %q: %w", ref, err)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	}
	return 0, fmt.Errorf("face index %d out of range (%d vertices)", n, count)
}
