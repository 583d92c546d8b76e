package collision

import (
	"math"

	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/solarlune/resolv"
)

const (
	// unitsPerMetre converts world metres into resolv space units.
	unitsPerMetre = 100
	cellSize      = 25
)

// Space is the shared broad phase for colliders. Boxes are projected onto the
// world XZ plane and bucketed into a resolv spatial hash; exact overlap is
// decided on the full 3D boxes afterwards.
type Space struct {
	space     *resolv.Space
	root      *scene.Node
	bounds    scene.Box3
	colliders map[engine.EntityID]*Collider
}

// NewSpace covers the XZ extent of bounds. Colliders are only considered
// while their node is attached under root.
func NewSpace(root *scene.Node, bounds scene.Box3) *Space {
	size := bounds.Size()
	w := int(math.Ceil(size.X * unitsPerMetre))
	h := int(math.Ceil(size.Z * unitsPerMetre))
	return &Space{
		space:     resolv.NewSpace(w, h, cellSize, cellSize),
		root:      root,
		bounds:    bounds,
		colliders: make(map[engine.EntityID]*Collider),
	}
}

// Attached reports whether n is part of the live scene graph.
func (s *Space) Attached(n *scene.Node) bool {
	return n != nil && n.IsDescendantOf(s.root)
}

// Collider returns the collider registered for id.
func (s *Space) Collider(id engine.EntityID) (*Collider, bool) {
	c, ok := s.colliders[id]
	return c, ok
}

// Objects returns the broad phase objects currently in the space.
func (s *Space) Objects() []*resolv.Object {
	return s.space.Objects()
}

// Bounds returns the world extent covered by the space.
func (s *Space) Bounds() scene.Box3 {
	return s.bounds
}

// ToWorld converts a broad phase rectangle back to world X/Z.
func (s *Space) ToWorld(obj *resolv.Object) (x, z, w, d float64) {
	return obj.X/unitsPerMetre + s.bounds.Min.X,
		obj.Y/unitsPerMetre + s.bounds.Min.Z,
		obj.W / unitsPerMetre,
		obj.H / unitsPerMetre
}

// place writes box's XZ footprint into obj and reports whether the
// footprint lies completely inside the space.
func (s *Space) place(obj *resolv.Object, box scene.Box3) bool {
	obj.X = (box.Min.X - s.bounds.Min.X) * unitsPerMetre
	obj.Y = (box.Min.Z - s.bounds.Min.Z) * unitsPerMetre
	obj.W = math.Max(1, (box.Max.X-box.Min.X)*unitsPerMetre)
	obj.H = math.Max(1, (box.Max.Z-box.Min.Z)*unitsPerMetre)

	return box.Min.X >= s.bounds.Min.X && box.Max.X <= s.bounds.Max.X &&
		box.Min.Z >= s.bounds.Min.Z && box.Max.Z <= s.bounds.Max.Z
}

func (s *Space) register(c *Collider) {
	s.colliders[c.owner] = c
}

func (s *Space) unregister(c *Collider) {
	if cur, ok := s.colliders[c.owner]; ok && cur == c {
		delete(s.colliders, c.owner)
	}
}
