package engine

import (
	"github.com/automoto/saberbeat/scene"
	"github.com/yohamta/donburi"
)

// ComponentType is the closed set of component kinds an entity may carry.
type ComponentType int

const (
	ComponentCollider ComponentType = iota
)

func (t ComponentType) String() string {
	switch t {
	case ComponentCollider:
		return "collider"
	default:
		return "unknown"
	}
}

// Component is a behaviour attached to an entity. It has no lifecycle of its
// own beyond the entity that owns it.
type Component interface {
	Type() ComponentType
	Update(dt float64)
	Dispose()
}

// Entity is a game object owning a scene sub-tree and a list of components.
type Entity interface {
	ID() EntityID
	Node() *scene.Node
	Update(dt float64)
	Dispose()
}

// Base implements the bookkeeping shared by all entities. Concrete entities
// embed it and override Update or Dispose when they need more.
type Base struct {
	id         EntityID
	world      *World
	node       *scene.Node
	components []Component
	children   []Entity
}

// NewBase allocates an id in w and takes ownership of node.
func NewBase(w *World, node *scene.Node, tags ...donburi.IComponentType) Base {
	return Base{
		id:    w.Spawn(tags...),
		world: w,
		node:  node,
	}
}

func (b *Base) ID() EntityID      { return b.id }
func (b *Base) Node() *scene.Node { return b.node }
func (b *Base) World() *World     { return b.world }

// AddComponent appends c. Several components of the same type may coexist.
func (b *Base) AddComponent(c Component) {
	b.components = append(b.components, c)
}

// ComponentByType returns the first component of type t, or nil.
func (b *Base) ComponentByType(t ComponentType) Component {
	for _, c := range b.components {
		if c.Type() == t {
			return c
		}
	}
	return nil
}

// RemoveComponentByType disposes and detaches every component of type t.
func (b *Base) RemoveComponentByType(t ComponentType) {
	kept := b.components[:0]
	for _, c := range b.components {
		if c.Type() == t {
			c.Dispose()
			continue
		}
		kept = append(kept, c)
	}
	clear(b.components[len(kept):])
	b.components = kept
}

func (b *Base) Components() []Component {
	return b.components
}

// AddChild makes e part of this entity: its node is attached under ours and
// it is updated and disposed together with us.
func (b *Base) AddChild(e Entity) {
	b.node.Add(e.Node())
	b.children = append(b.children, e)
}

func (b *Base) Children() []Entity {
	return b.children
}

func (b *Base) UpdateComponents(dt float64) {
	for _, c := range b.components {
		c.Update(dt)
	}
}

func (b *Base) UpdateChildren(dt float64) {
	for _, c := range b.children {
		c.Update(dt)
	}
}

// Update runs components, then children.
func (b *Base) Update(dt float64) {
	b.UpdateComponents(dt)
	b.UpdateChildren(dt)
}

func (b *Base) DisposeComponents() {
	for _, c := range b.components {
		c.Dispose()
	}
	b.components = nil
}

// Dispose tears down children, components and the scene sub-tree, then frees
// the id.
func (b *Base) Dispose() {
	for _, c := range b.children {
		c.Dispose()
	}
	b.children = nil
	b.DisposeComponents()
	scene.DisposeObject(b.node)
	if b.world != nil {
		b.world.Release(b.id)
	}
}
