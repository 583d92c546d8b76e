package engine

import (
	"slices"

	"github.com/automoto/saberbeat/scene"
	"github.com/kamstrup/intmap"
)

// System keeps a registry of the entities it drives and attaches their
// nodes to the scene graph while they are registered.
type System struct {
	world    *World
	root     *scene.Node
	entities *intmap.Map[EntityID, Entity]
	order    []EntityID
}

// NewSystem returns a system whose entities attach under root by default.
func NewSystem(w *World, root *scene.Node) *System {
	return &System{
		world:    w,
		root:     root,
		entities: intmap.New[EntityID, Entity](16),
	}
}

func (s *System) World() *World     { return s.world }
func (s *System) Root() *scene.Node { return s.root }

// AddEntity registers e and attaches its node under parent, or under the
// system root when parent is nil. Adding a registered entity only reattaches.
func (s *System) AddEntity(e Entity, parent *scene.Node) {
	if parent == nil {
		parent = s.root
	}
	parent.Add(e.Node())
	if _, ok := s.entities.Get(e.ID()); ok {
		return
	}
	s.world.Bind(e)
	s.entities.Put(e.ID(), e)
	s.order = append(s.order, e.ID())
}

func (s *System) AddEntities(es ...Entity) {
	for _, e := range es {
		s.AddEntity(e, nil)
	}
}

// Entity returns the registered entity with the given id.
func (s *System) Entity(id EntityID) (Entity, bool) {
	return s.entities.Get(id)
}

func (s *System) Has(id EntityID) bool {
	_, ok := s.entities.Get(id)
	return ok
}

// Entities returns the registered entities among ids, skipping unknown ones.
func (s *System) Entities(ids ...EntityID) []Entity {
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entities.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func (s *System) Len() int {
	return s.entities.Len()
}

// RemoveEntity detaches the entity from the scene graph and the registry.
// The entity is not disposed and may be added again later.
func (s *System) RemoveEntity(id EntityID) {
	e, ok := s.entities.Get(id)
	if !ok {
		return
	}
	e.Node().RemoveFromParent()
	s.entities.Del(id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *System) RemoveEntities(ids ...EntityID) {
	for _, id := range ids {
		s.RemoveEntity(id)
	}
}

// UpdateEntities updates registered entities in insertion order.
func (s *System) UpdateEntities(dt float64) {
	for _, id := range s.order {
		if e, ok := s.entities.Get(id); ok {
			e.Update(dt)
		}
	}
}

// DisposeEntities disposes and unregisters every registered entity.
func (s *System) DisposeEntities() {
	for _, id := range s.order {
		if e, ok := s.entities.Get(id); ok {
			e.Dispose()
		}
		s.entities.Del(id)
	}
	s.order = s.order[:0]
}
