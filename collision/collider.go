package collision

import (
	"slices"

	"github.com/automoto/saberbeat/engine"
	"github.com/automoto/saberbeat/scene"
	"github.com/solarlune/resolv"
)

// Collider tracks the world bounding box of its entity's node and records
// contacts with a fixed set of peer entities each frame.
type Collider struct {
	owner       engine.EntityID
	node        *scene.Node
	space       *Space
	obj         *resolv.Object
	box         scene.Box3
	collidables []engine.EntityID
	contacts    []engine.EntityID

	inSpace  bool
	inBounds bool
}

// NewCollider registers a collider for owner. tag labels the broad phase
// object; collidables is the set of entities this collider reports contacts
// with and is fixed for its lifetime.
func NewCollider(space *Space, owner engine.EntityID, node *scene.Node, tag string, collidables ...engine.EntityID) *Collider {
	obj := resolv.NewObject(0, 0, 1, 1, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, 1, 1))
	c := &Collider{
		owner:       owner,
		node:        node,
		space:       space,
		obj:         obj,
		box:         scene.EmptyBox(),
		collidables: slices.Clone(collidables),
	}
	obj.Data = c
	space.register(c)
	return c
}

func (c *Collider) Type() engine.ComponentType { return engine.ComponentCollider }

func (c *Collider) Owner() engine.EntityID { return c.owner }

// Box returns the world box computed on the last update.
func (c *Collider) Box() scene.Box3 { return c.box }

func (c *Collider) Collidables() []engine.EntityID { return c.collidables }

// Contacts returns the peers intersected during the last update. The slice
// is reused between frames.
func (c *Collider) Contacts() []engine.EntityID { return c.contacts }

func (c *Collider) Touching(id engine.EntityID) bool {
	return slices.Contains(c.contacts, id)
}

// Update recomputes the world box and collects this frame's contacts.
func (c *Collider) Update(float64) {
	c.contacts = c.contacts[:0]
	if !c.refresh() {
		return
	}
	if len(c.collidables) == 0 {
		return
	}

	for _, id := range c.collidables {
		if peer, ok := c.space.colliders[id]; ok {
			peer.refresh()
		}
	}

	if c.inBounds {
		check := c.obj.Check(0, 0)
		if check == nil {
			return
		}
		for _, o := range check.Objects {
			peer, ok := o.Data.(*Collider)
			if !ok || peer == c {
				continue
			}
			c.test(peer)
		}
		return
	}

	// Outside the hashed area the broad phase cannot see us; test every peer.
	for _, id := range c.collidables {
		if peer, ok := c.space.colliders[id]; ok {
			c.test(peer)
		}
	}
}

func (c *Collider) test(peer *Collider) {
	if !peer.inSpace || !slices.Contains(c.collidables, peer.owner) {
		return
	}
	if slices.Contains(c.contacts, peer.owner) {
		return
	}
	if c.box.Intersects(peer.box) {
		c.contacts = append(c.contacts, peer.owner)
	}
}

// refresh recomputes the box and syncs the broad phase object. It reports
// false when the node is detached from the scene.
func (c *Collider) refresh() bool {
	if !c.space.Attached(c.node) {
		c.sleep()
		return false
	}
	c.box = c.node.WorldBox()
	c.inBounds = c.space.place(c.obj, c.box)
	if !c.inSpace {
		c.space.space.Add(c.obj)
		c.inSpace = true
	}
	c.obj.Update()
	return true
}

// Reset drops contacts and takes the collider out of the broad phase until
// its next update.
func (c *Collider) Reset() {
	c.contacts = c.contacts[:0]
	c.sleep()
}

func (c *Collider) sleep() {
	if c.inSpace {
		c.space.space.Remove(c.obj)
		c.inSpace = false
	}
	c.box = scene.EmptyBox()
}

func (c *Collider) Dispose() {
	c.Reset()
	c.space.unregister(c)
}
