package game

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fixedClock turns variable frame times into a whole number of fixed ticks.
type fixedClock struct {
	step       float32 // seconds per tick
	maxCatchUp int
	acc        float32
}

func newFixedClock(tick time.Duration, maxCatchUp int) *fixedClock {
	return &fixedClock{step: float32(tick.Seconds()), maxCatchUp: maxCatchUp}
}

// Advance adds a frame time and returns how many ticks to run. A backlog
// larger than maxCatchUp ticks is dropped so a long stall does not freeze
// the game while it catches up.
func (c *fixedClock) Advance(dt float32) int {
	c.acc += dt
	n := 0
	for c.acc >= c.step && n < c.maxCatchUp {
		c.acc -= c.step
		n++
	}
	if n == c.maxCatchUp && c.acc >= c.step {
		c.acc = 0
	}
	return n
}

// zoom eases the camera distance towards the last requested value.
type zoom struct {
	tween   *gween.Tween
	target  float32
	seconds float32
}

// To starts a new ease from the current distance to target.
func (z *zoom) To(current, target float32) {
	z.target = target
	z.tween = gween.New(current, target, z.seconds, ease.OutQuad)
}

// Update advances the ease and returns the distance to use this frame.
func (z *zoom) Update(dt float32) (float32, bool) {
	if z.tween == nil {
		return z.target, false
	}
	v, done := z.tween.Update(dt)
	if done {
		z.tween = nil
	}
	return v, true
}
