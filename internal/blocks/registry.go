package blocks

import (
	"fmt"

	"rockup/internal/physics"

	"github.com/ErikKalkoken/go-set"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Registry owns the lobby and tower block lists and the set of handles that
// collision should skip. The zero value is ready to use.
type Registry struct {
	sets     [2][]Block
	excluded set.Set[Handle]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// AddBlock appends a static obstacle to set s.
func (r *Registry) AddBlock(s Set, center, half rl.Vector3) Handle {
	return r.Add(s, NewBlock(center, half))
}

// Add appends b to set s and returns its handle. Duplicates are allowed.
func (r *Registry) Add(s Set, b Block) Handle {
	b.Half = absVec(b.Half)
	b.origin = b.Center
	b.travelled = 0
	r.sets[s] = append(r.sets[s], b)
	return Handle{Set: s, Index: len(r.sets[s]) - 1}
}

// ClearSet removes every block of s and forgets its exclusions. Handles
// into s become invalid.
func (r *Registry) ClearSet(s Set) {
	r.sets[s] = nil
	r.dropExclusions(s)
}

func (r *Registry) dropExclusions(s Set) {
	var keep set.Set[Handle]
	for h := range r.excluded.All() {
		if h.Set != s {
			keep.Add(h)
		}
	}
	r.excluded = keep
}

// Len returns the number of blocks in s.
func (r *Registry) Len(s Set) int {
	return len(r.sets[s])
}

// Blocks returns the blocks of s in insertion order. The slice is shared and
// must not be modified.
func (r *Registry) Blocks(s Set) []Block {
	return r.sets[s]
}

// Get returns the block at h.
func (r *Registry) Get(h Handle) (Block, error) {
	if err := r.check(h); err != nil {
		return Block{}, err
	}
	return r.sets[h.Set][h.Index], nil
}

// Translate moves the block at h by delta.
func (r *Registry) Translate(h Handle, delta rl.Vector3) error {
	if err := r.check(h); err != nil {
		return err
	}
	b := &r.sets[h.Set][h.Index]
	b.Center = rl.Vector3Add(b.Center, delta)
	return nil
}

func (r *Registry) check(h Handle) error {
	if int(h.Set) >= len(r.sets) || h.Index < 0 || h.Index >= len(r.sets[h.Set]) {
		return fmt.Errorf("block handle %s/%d out of range", h.Set, h.Index)
	}
	return nil
}

// Exclude makes collision skip the block at h.
func (r *Registry) Exclude(h Handle) {
	r.excluded.Add(h)
}

func (r *Registry) Excluded(h Handle) bool {
	return r.excluded.Contains(h)
}

// ExcludedCount returns how many blocks of s are excluded.
func (r *Registry) ExcludedCount(s Set) int {
	n := 0
	for h := range r.excluded.All() {
		if h.Set == s {
			n++
		}
	}
	return n
}

// SlidePanels advances every sliding panel of s that has not opened yet by
// one tick and excludes panels that reached their open distance. It returns
// the largest distance any panel has travelled.
func (r *Registry) SlidePanels(s Set) float32 {
	var furthest float32
	for i := range r.sets[s] {
		b := &r.sets[s][i]
		if b.Role.Kind != SlidingPanel {
			continue
		}
		h := Handle{Set: s, Index: i}
		if !r.excluded.Contains(h) {
			step := b.Role.Speed
			if left := b.Role.OpenDistance - b.travelled; step > left {
				step = left
			}
			if step > 0 {
				b.Center = rl.Vector3Add(b.Center, rl.Vector3Scale(b.Role.Axis.Unit(), b.Role.Direction*step))
				b.travelled += step
			}
			if b.travelled >= b.Role.OpenDistance {
				r.excluded.Add(h)
			}
		}
		furthest = max(furthest, b.travelled)
	}
	return furthest
}

// ExcludePanels excludes every sliding panel of s where it stands.
func (r *Registry) ExcludePanels(s Set) {
	for i, b := range r.sets[s] {
		if b.Role.Kind == SlidingPanel {
			r.excluded.Add(Handle{Set: s, Index: i})
		}
	}
}

// RestorePanels moves every sliding panel of s back to its initial center
// and clears the exclusions of s.
func (r *Registry) RestorePanels(s Set) {
	for i := range r.sets[s] {
		b := &r.sets[s][i]
		if b.Role.Kind == SlidingPanel {
			b.Center = b.origin
			b.travelled = 0
		}
	}
	r.dropExclusions(s)
}

// AppendColliders appends the collision boxes of s that are obstacles and
// not excluded, in insertion order.
func (r *Registry) AppendColliders(dst []physics.Box, s Set) []physics.Box {
	for i, b := range r.sets[s] {
		if !b.Obstacle || r.excluded.Contains(Handle{Set: s, Index: i}) {
			continue
		}
		dst = append(dst, b.Box())
	}
	return dst
}

// Goal returns the first goal block of s.
func (r *Registry) Goal(s Set) (Block, bool) {
	for _, b := range r.sets[s] {
		if b.Role.Kind == Goal {
			return b, true
		}
	}
	return Block{}, false
}
