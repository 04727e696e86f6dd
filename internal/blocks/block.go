// Package blocks keeps the axis-aligned colliders of the lobby and the tower.
package blocks

import (
	"fmt"

	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Set names one of the two collider lists.
type Set uint8

const (
	Lobby Set = iota
	Tower
)

func (s Set) String() string {
	switch s {
	case Lobby:
		return "lobby"
	case Tower:
		return "tower"
	}
	return fmt.Sprintf("Set(%d)", uint8(s))
}

// Handle addresses a block by set and insertion index.
type Handle struct {
	Set   Set
	Index int
}

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Unit returns the unit vector along the axis.
func (a Axis) Unit() rl.Vector3 {
	switch a {
	case AxisY:
		return rl.Vector3{Y: 1}
	case AxisZ:
		return rl.Vector3{Z: 1}
	}
	return rl.Vector3{X: 1}
}

type RoleKind uint8

const (
	Static RoleKind = iota
	SlidingPanel
	Goal
)

func (k RoleKind) String() string {
	switch k {
	case Static:
		return "static"
	case SlidingPanel:
		return "sliding-panel"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("RoleKind(%d)", uint8(k))
}

// Role tags what a block does besides blocking. The panel fields are only
// meaningful for SlidingPanel.
type Role struct {
	Kind         RoleKind
	Axis         Axis
	Direction    float32 // +1 or -1
	Speed        float32 // units per tick
	OpenDistance float32
}

func StaticRole() Role { return Role{Kind: Static} }

func GoalRole() Role { return Role{Kind: Goal} }

// PanelRole returns a sliding panel role moving along axis in the sign of dir.
func PanelRole(axis Axis, dir, speed, openDistance float32) Role {
	d := float32(1)
	if dir < 0 {
		d = -1
	}
	return Role{Kind: SlidingPanel, Axis: axis, Direction: d, Speed: speed, OpenDistance: openDistance}
}

type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

// Shape is how a block is drawn. It never affects collision.
type Shape struct {
	Kind ShapeKind
	Tint rl.Color
}

// Block is one collider. Obstacle false means the block is only drawn.
type Block struct {
	Center   rl.Vector3
	Half     rl.Vector3
	Role     Role
	Obstacle bool
	Shape    Shape

	origin    rl.Vector3
	travelled float32
}

// NewBlock returns a static, colliding box. Negative half extents are taken
// as their absolute values.
func NewBlock(center, half rl.Vector3) Block {
	return Block{
		Center:   center,
		Half:     absVec(half),
		Role:     StaticRole(),
		Obstacle: true,
		Shape:    Shape{Kind: ShapeBox, Tint: rl.Gray},
	}
}

// WithRole returns a copy of b with role r.
func (b Block) WithRole(r Role) Block {
	b.Role = r
	return b
}

// WithTint returns a copy of b drawn with tint c.
func (b Block) WithTint(c rl.Color) Block {
	b.Shape.Tint = c
	return b
}

// WithShape returns a copy of b drawn as kind.
func (b Block) WithShape(kind ShapeKind) Block {
	b.Shape.Kind = kind
	return b
}

// Decor returns a copy of b that is drawn but never collides.
func (b Block) Decor() Block {
	b.Obstacle = false
	return b
}

// Box returns the collision volume of b.
func (b Block) Box() physics.Box {
	return physics.Box{Center: b.Center, Half: b.Half}
}

// Travelled is the distance a sliding panel has moved since its last restore.
func (b Block) Travelled() float32 {
	return b.travelled
}

func absVec(v rl.Vector3) rl.Vector3 {
	if v.X < 0 {
		v.X = -v.X
	}
	if v.Y < 0 {
		v.Y = -v.Y
	}
	if v.Z < 0 {
		v.Z = -v.Z
	}
	return v
}
