// Package player holds the rolling sphere the user controls.
package player

import (
	"rockup/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the per-tick movement constants. Units are world units per
// tick (and per tick squared for gravity).
type Tuning struct {
	Acceleration   float32
	MaxSpeed       float32
	Friction       float32 // horizontal multiplier per grounded tick
	AirDamping     float32 // horizontal multiplier per airborne tick
	JumpImpulse    float32
	JumpSpeedBonus float32 // extra jump velocity per unit of horizontal speed
	Gravity        float32
}

// DefaultTuning returns the constants the levels were designed around.
func DefaultTuning() Tuning {
	return Tuning{
		Acceleration:   0.008,
		MaxSpeed:       0.3,
		Friction:       0.96,
		AirDamping:     0.995,
		JumpImpulse:    0.45,
		JumpSpeedBonus: 1.2,
		Gravity:        0.012,
	}
}

// Player is the controllable sphere. Tuning and Spawn are fixed at
// construction; the embedded Body changes every tick.
type Player struct {
	physics.Body
	Tuning Tuning
	Spawn  rl.Vector3
}

// New creates a player resting at spawn.
func New(t Tuning, radius float32, spawn rl.Vector3) *Player {
	p := &Player{
		Body:   physics.Body{Radius: radius},
		Tuning: t,
		Spawn:  spawn,
	}
	p.Reset()
	return p
}

// Reset puts the player back at its spawn point with no motion.
func (p *Player) Reset() {
	p.Teleport(p.Spawn)
}

// Teleport moves the player to pos and stops it.
func (p *Player) Teleport(pos rl.Vector3) {
	p.Position = pos
	p.Velocity = rl.Vector3Zero()
	p.Grounded = false
}

func (p *Player) HorizontalSpeed() float32 {
	return physics.HorizontalSpeed(p.Velocity)
}

// Accelerate adds one tick of input acceleration along dir on the XZ plane.
func (p *Player) Accelerate(dir rl.Vector3) {
	p.Velocity.X += dir.X * p.Tuning.Acceleration
	p.Velocity.Z += dir.Z * p.Tuning.Acceleration
}

// ClampSpeed caps the horizontal speed at MaxSpeed.
func (p *Player) ClampSpeed() {
	p.Velocity = physics.ClampHorizontalSpeed(p.Velocity, p.Tuning.MaxSpeed)
}

func (p *Player) ApplyGravity() {
	p.Velocity.Y -= p.Tuning.Gravity
}

// Damp applies ground friction or air damping to horizontal velocity.
func (p *Player) Damp() {
	k := p.Tuning.AirDamping
	if p.Grounded {
		k = p.Tuning.Friction
	}
	p.Velocity.X *= k
	p.Velocity.Z *= k
}

// Jump launches the player if it is grounded. Faster rolling jumps higher.
// It reports whether the jump happened.
func (p *Player) Jump() bool {
	if !p.Grounded {
		return false
	}
	p.Velocity.Y = p.Tuning.JumpImpulse + p.HorizontalSpeed()*p.Tuning.JumpSpeedBonus
	return true
}
