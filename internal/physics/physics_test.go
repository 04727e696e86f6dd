package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitBox = Box{Center: rl.Vector3{}, Half: rl.Vector3{X: 1, Y: 1, Z: 1}}

func TestIntersects(t *testing.T) {
	cases := []struct {
		name   string
		center rl.Vector3
		radius float32
		want   bool
	}{
		{"center inside", rl.Vector3{X: 0.5}, 0.5, true},
		{"far away", rl.Vector3{X: 10}, 1, false},
		{"touching top face", rl.Vector3{Y: 2.5}, 1.5, false},
		{"just overlapping top face", rl.Vector3{Y: 2.25}, 1.5, true},
		{"touching side face", rl.Vector3{X: 3}, 2, false},
		{"corner gap", rl.Vector3{X: 2, Y: 2, Z: 2}, 1.5, false},
		{"corner overlap", rl.Vector3{X: 1.5, Y: 1.5, Z: 1.5}, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Intersects(tc.center, tc.radius, unitBox.Center, unitBox.Half)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIntersectsAgreesWithDistance(t *testing.T) {
	radius := float32(1.25)
	for x := float32(-4); x <= 4; x += 0.25 {
		for y := float32(-4); y <= 4; y += 0.25 {
			p := rl.Vector3{X: x, Y: y, Z: 0.5}
			closest := ClosestPointOnBox(p, unitBox.Center, unitBox.Half)
			want := rl.Vector3Distance(closest, p) < radius
			assert.Equal(t, want, Intersects(p, radius, unitBox.Center, unitBox.Half), "at %v", p)
		}
	}
}

func TestSphereBoxContactFromAbove(t *testing.T) {
	c, ok := SphereBoxContact(rl.Vector3{X: 0.25, Y: 2, Z: -0.5}, 1.5, unitBox.Center, unitBox.Half)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 0.25, Y: 1, Z: -0.5}, c.Closest)
	assert.Equal(t, rl.Vector3{Y: 1}, c.Penetration)
	assert.Equal(t, rl.Vector3{Y: 1}, c.Normal)
	assert.InDelta(t, 0.5, c.Depth, 1e-6)
}

func TestSphereBoxContactCenterInside(t *testing.T) {
	// Nearest face is +X, 0.25 away.
	c, ok := SphereBoxContact(rl.Vector3{X: 0.75, Y: 0.1}, 0.5, unitBox.Center, unitBox.Half)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 1}, c.Normal)
	assert.InDelta(t, 0.75, c.Depth, 1e-6)
}

func TestSphereBoxContactMiss(t *testing.T) {
	_, ok := SphereBoxContact(rl.Vector3{Y: 3}, 1, unitBox.Center, unitBox.Half)
	assert.False(t, ok)
}

func TestAABBResolve(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{X: 1.5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	b := unitBox.AABB()
	assert.Equal(t, rl.Vector3{X: 0.5}, a.Resolve(b))

	far := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, rl.Vector3Zero(), far.Resolve(b))
}

func TestNewAABBFromPoints(t *testing.T) {
	a := NewAABBFromPoints(rl.Vector3{X: 1, Y: -1}, rl.Vector3{X: -2, Y: 3, Z: 1}, rl.Vector3{Z: -4})
	assert.Equal(t, rl.Vector3{X: -2, Y: -1, Z: -4}, a.Min)
	assert.Equal(t, rl.Vector3{X: 1, Y: 3, Z: 1}, a.Max)
	assert.Equal(t, rl.Vector3{X: 1.5, Y: 2, Z: 2.5}, a.Half())
}

func TestClampHorizontalSpeed(t *testing.T) {
	t.Run("under limit is unchanged", func(t *testing.T) {
		v := rl.Vector3{X: 0.1, Y: -3, Z: 0.1}
		assert.Equal(t, v, ClampHorizontalSpeed(v, 0.3))
	})
	t.Run("over limit keeps direction and Y", func(t *testing.T) {
		v := ClampHorizontalSpeed(rl.Vector3{X: 3, Y: -7, Z: 4}, 0.5)
		assert.InDelta(t, 0.3, v.X, 1e-6)
		assert.InDelta(t, 0.4, v.Z, 1e-6)
		assert.Equal(t, float32(-7), v.Y)
		assert.InDelta(t, 0.5, HorizontalSpeed(v), 1e-6)
	})
	t.Run("one ulp above limit is within tolerance", func(t *testing.T) {
		v := rl.Vector3{X: math.Nextafter32(0.3, 1)}
		assert.Equal(t, v, ClampHorizontalSpeed(v, 0.3))
	})
	t.Run("just above tolerance is clamped", func(t *testing.T) {
		v := ClampHorizontalSpeed(rl.Vector3{X: 0.3 * (1 + 1e-5)}, 0.3)
		assert.InDelta(t, 0.3, v.X, 1e-6)
		assert.LessOrEqual(t, HorizontalSpeed(v), float32(0.3*(1+clampSlack)))
	})
	t.Run("idempotent", func(t *testing.T) {
		inputs := []rl.Vector3{
			{X: 1, Z: 1},
			{X: -0.7, Y: 2, Z: 0.2},
			{X: 0.31},
			{X: 123.456, Z: -98.7},
		}
		for _, in := range inputs {
			once := ClampHorizontalSpeed(in, 0.3)
			twice := ClampHorizontalSpeed(once, 0.3)
			assert.Equal(t, once, twice, "input %v", in)
		}
	})
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" Slide ")
	require.NoError(t, err)
	assert.Equal(t, PolicySlide, p)

	p, err = ParsePolicy("bounce")
	require.NoError(t, err)
	assert.Equal(t, PolicyBounce, p)
	assert.Equal(t, "bounce", p.String())

	_, err = ParsePolicy("sticky")
	assert.Error(t, err)
}

func TestBounceLanding(t *testing.T) {
	floor := Box{Center: rl.Vector3{Y: -1}, Half: rl.Vector3{X: 10, Y: 1, Z: 10}}
	b := &Body{Position: rl.Vector3{Y: 0.6}, Velocity: rl.Vector3{X: 0.1, Y: -0.25}, Radius: 0.5}
	next := rl.Vector3Add(b.Position, b.Velocity)

	r := Resolver{Policy: PolicyBounce, Restitution: 0.8}
	got, out := r.Resolve(b, next, []Box{floor})

	assert.True(t, out.Landed)
	assert.False(t, out.WallHit)
	assert.True(t, b.Grounded)
	assert.Equal(t, float32(0), b.Velocity.Y)
	assert.Equal(t, float32(0.5), got.Y)
	assert.Equal(t, next.X, got.X)
}

func TestBounceWallHit(t *testing.T) {
	wall := Box{Center: rl.Vector3{X: 2}, Half: rl.Vector3{X: 0.5, Y: 5, Z: 5}}
	b := &Body{Position: rl.Vector3{X: 0.25}, Velocity: rl.Vector3{X: 0.5}, Radius: 1}
	next := rl.Vector3Add(b.Position, b.Velocity)

	r := Resolver{Policy: PolicyBounce, Restitution: 0.5}
	got, out := r.Resolve(b, next, []Box{wall})

	assert.True(t, out.WallHit)
	assert.False(t, b.Grounded)
	assert.Equal(t, b.Position, got)
	assert.Equal(t, float32(-0.25), b.Velocity.X)
}

func TestBounceFirstRegisteredWins(t *testing.T) {
	// Both boxes overlap the proposed position; the wall cancels movement first,
	// so the later floor is tested against the reverted position and misses.
	wall := Box{Center: rl.Vector3{X: 1.5}, Half: rl.Vector3{X: 0.5, Y: 5, Z: 5}}
	floor := Box{Center: rl.Vector3{Y: -1.8}, Half: rl.Vector3{X: 10, Y: 1, Z: 10}}
	b := &Body{Position: rl.Vector3{}, Velocity: rl.Vector3{X: 0.5, Y: -0.5}, Radius: 0.75}
	next := rl.Vector3Add(b.Position, b.Velocity)

	got, out := Resolver{Policy: PolicyBounce, Restitution: 0.8}.Resolve(b, next, []Box{wall, floor})
	assert.Equal(t, 1, out.Hits)
	assert.True(t, out.WallHit)
	assert.False(t, out.Landed)
	assert.Equal(t, rl.Vector3{}, got)
}

func TestSlideGround(t *testing.T) {
	floor := Box{Center: rl.Vector3{Y: -1}, Half: rl.Vector3{X: 10, Y: 1, Z: 10}}
	b := &Body{Position: rl.Vector3{Y: 0.6}, Velocity: rl.Vector3{X: 0.2, Y: -0.2}, Radius: 0.5}
	next := rl.Vector3Add(b.Position, b.Velocity)

	got, out := Resolver{Policy: PolicySlide}.Resolve(b, next, []Box{floor})
	assert.True(t, out.Landed)
	assert.True(t, b.Grounded)
	assert.InDelta(t, 0.5, got.Y, 1e-6)
	assert.InDelta(t, 0.2, got.X, 1e-6)
	assert.Equal(t, float32(0), b.Velocity.Y)
	assert.InDelta(t, 0.2, b.Velocity.X, 1e-6)
}

func TestSlideWallKeepsTangentialVelocity(t *testing.T) {
	wall := Box{Center: rl.Vector3{X: 2}, Half: rl.Vector3{X: 0.5, Y: 5, Z: 5}}
	b := &Body{Position: rl.Vector3{X: 0.25}, Velocity: rl.Vector3{X: 0.5, Z: 0.3}, Radius: 1}
	next := rl.Vector3Add(b.Position, b.Velocity)

	got, out := Resolver{Policy: PolicySlide}.Resolve(b, next, []Box{wall})
	assert.False(t, out.Landed)
	assert.False(t, b.Grounded)
	assert.InDelta(t, 0.5, got.X, 1e-6)
	assert.InDelta(t, 0.3, got.Z, 1e-6)
	assert.InDelta(t, 0, b.Velocity.X, 1e-6)
	assert.InDelta(t, 0.3, b.Velocity.Z, 1e-6)
}

func TestSlideRemovesNormalVelocityInBothDirections(t *testing.T) {
	// Underside contact: the normal points down, the same way the body moves.
	ceiling := Box{Center: rl.Vector3{Y: 2}, Half: rl.Vector3{X: 5, Y: 0.5, Z: 5}}
	b := &Body{Position: rl.Vector3{Y: 0.5}, Velocity: rl.Vector3{X: 0.1, Y: -0.2}, Radius: 1.2}
	next := rl.Vector3{Y: 0.4}

	got, out := Resolver{Policy: PolicySlide}.Resolve(b, next, []Box{ceiling})
	require.Equal(t, 1, out.Hits)
	assert.False(t, out.Landed)
	assert.InDelta(t, 0.3, got.Y, 1e-6)
	assert.InDelta(t, 0, b.Velocity.Y, 1e-6)
	assert.InDelta(t, 0.1, b.Velocity.X, 1e-6)
}

func TestSlideSteepFaceIsNotGround(t *testing.T) {
	// Contact against the box's top edge, normal about 32° above horizontal.
	box := Box{Center: rl.Vector3{}, Half: rl.Vector3{X: 1, Y: 1, Z: 1}}
	b := &Body{Position: rl.Vector3{X: 1.9, Y: 1.5}, Velocity: rl.Vector3{}, Radius: 1}
	next := rl.Vector3{X: 1.8, Y: 1.5}

	_, out := Resolver{Policy: PolicySlide, GroundSlope: 0.707}.Resolve(b, next, []Box{box})
	require.Equal(t, 1, out.Hits)
	assert.False(t, out.Landed)
	assert.False(t, b.Grounded)
}

func TestRaycast(t *testing.T) {
	boxes := []Box{
		{Center: rl.Vector3{Y: -5}, Half: rl.Vector3{X: 1, Y: 1, Z: 1}},
		unitBox,
	}
	down := rl.Vector3{Y: -1}

	hit, ok := Raycast(rl.Vector3{Y: 5}, down, 100, boxes)
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index, "closest box wins")
	assert.InDelta(t, 4, hit.Distance, 1e-5)
	assert.InDelta(t, 1, hit.Point.Y, 1e-5)
	assert.Equal(t, rl.Vector3{Y: 1}, hit.Normal)

	_, ok = Raycast(rl.Vector3{X: 5, Y: 5}, down, 100, boxes)
	assert.False(t, ok, "ray passes beside the boxes")

	_, ok = Raycast(rl.Vector3{Y: 5}, down, 3, boxes)
	assert.False(t, ok, "box beyond max distance")

	hit, ok = Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, []Box{unitBox})
	require.True(t, ok)
	assert.InDelta(t, 1, hit.Distance, 1e-5, "origin inside hits the far side")
}
