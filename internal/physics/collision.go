package physics

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Policy selects how a sphere reacts when it overlaps a box.
type Policy uint8

const (
	// PolicyBounce lands on tops and rebounds off everything else, cancelling
	// the tick's movement.
	PolicyBounce Policy = iota
	// PolicySlide pushes out along the contact normal and removes the normal
	// velocity component, so the sphere slides along faces.
	PolicySlide
)

func (p Policy) String() string {
	switch p {
	case PolicyBounce:
		return "bounce"
	case PolicySlide:
		return "slide"
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy converts a policy name as used in config files and flags.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bounce":
		return PolicyBounce, nil
	case "slide":
		return PolicySlide, nil
	}
	return 0, fmt.Errorf("unknown collision policy %q", s)
}

// DefaultGroundSlope is the minimum upward normal component (cos 45°) for a
// slide contact to count as ground.
const DefaultGroundSlope = 0.707

// Body is the moving sphere being resolved.
type Body struct {
	Position rl.Vector3
	Velocity rl.Vector3
	Radius   float32
	Grounded bool
}

// Outcome summarizes one resolution pass.
type Outcome struct {
	Hits    int
	Landed  bool
	WallHit bool
}

// Resolver resolves a proposed sphere position against an ordered list of boxes.
type Resolver struct {
	Policy Policy
	// Restitution scales and reverses horizontal velocity on a bounce wall hit.
	Restitution float32
	// GroundSlope is the normal.Y threshold for slide ground contacts.
	GroundSlope float32
}

// Resolve tests next against every box in list order and returns the
// corrected position. Body velocity and grounded flag are updated in place;
// b.Position must still hold the pre-tick position.
func (r Resolver) Resolve(b *Body, next rl.Vector3, boxes []Box) (rl.Vector3, Outcome) {
	switch r.Policy {
	case PolicySlide:
		return r.resolveSlide(b, next, boxes)
	default:
		return r.resolveBounce(b, next, boxes)
	}
}

// resolveBounce handles the landing/wall split used by the platform sets
func (r Resolver) resolveBounce(b *Body, next rl.Vector3, boxes []Box) (rl.Vector3, Outcome) {
	var out Outcome
	for _, box := range boxes {
		if !Intersects(next, b.Radius, box.Center, box.Half) {
			continue
		}
		out.Hits++

		top := box.Top()
		if b.Position.Y > top && b.Velocity.Y < 0 {
			// Landing from above
			b.Grounded = true
			b.Velocity.Y = 0
			next.Y = top + b.Radius
			out.Landed = true
			continue
		}

		// Side or underside hit: rebound and cancel this tick's movement
		b.Velocity.X *= -r.Restitution
		b.Velocity.Z *= -r.Restitution
		next = b.Position
		out.WallHit = true
	}
	return next, out
}

// resolveSlide pushes the sphere out of each box and strips the velocity
// component along the contact normal
func (r Resolver) resolveSlide(b *Body, next rl.Vector3, boxes []Box) (rl.Vector3, Outcome) {
	slope := r.GroundSlope
	if slope == 0 {
		slope = DefaultGroundSlope
	}

	var out Outcome
	for _, box := range boxes {
		c, ok := SphereBoxContact(next, b.Radius, box.Center, box.Half)
		if !ok {
			continue
		}
		out.Hits++

		next = rl.Vector3Add(next, rl.Vector3Scale(c.Normal, c.Depth))

		along := rl.Vector3DotProduct(b.Velocity, c.Normal)
		b.Velocity = rl.Vector3Subtract(b.Velocity, rl.Vector3Scale(c.Normal, along))

		if c.Normal.Y > slope {
			b.Grounded = true
			b.Velocity.Y = 0
			out.Landed = true
		}
	}
	return next, out
}
