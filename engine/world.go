package engine

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// EntityID identifies an entity for its whole lifetime. Ids are allocated by
// the donburi world and become invalid after Release.
type EntityID = donburi.Entity

// HandleData links a donburi entry back to the game entity it identifies.
type HandleData struct {
	Entity Entity
}

var Handle = donburi.NewComponentType[HandleData]()

// World allocates entity ids and lets systems look entities up by id or tag.
type World struct {
	world donburi.World
}

func NewWorld() *World {
	return &World{world: donburi.NewWorld()}
}

// Donburi exposes the underlying world so frame pipelines and singleton data
// components can share it.
func (w *World) Donburi() donburi.World {
	return w.world
}

// Spawn allocates a new id carrying the given tags.
func (w *World) Spawn(tags ...donburi.IComponentType) EntityID {
	comps := append([]donburi.IComponentType{Handle}, tags...)
	return w.world.Create(comps...)
}

// Bind attaches e to its id so Lookup can find it.
func (w *World) Bind(e Entity) {
	if !w.world.Valid(e.ID()) {
		return
	}
	Handle.SetValue(w.world.Entry(e.ID()), HandleData{Entity: e})
}

func (w *World) Valid(id EntityID) bool {
	return w.world.Valid(id)
}

// Lookup returns the entity bound to id.
func (w *World) Lookup(id EntityID) (Entity, bool) {
	if !w.world.Valid(id) {
		return nil, false
	}
	h := Handle.Get(w.world.Entry(id))
	if h.Entity == nil {
		return nil, false
	}
	return h.Entity, true
}

// EachTagged calls fn for every bound entity carrying tag.
func (w *World) EachTagged(tag donburi.IComponentType, fn func(Entity)) {
	donburi.NewQuery(filter.Contains(Handle, tag)).Each(w.world, func(entry *donburi.Entry) {
		if e := Handle.Get(entry).Entity; e != nil {
			fn(e)
		}
	})
}

// Release frees id. Releasing an unknown id is a no-op.
func (w *World) Release(id EntityID) {
	if w.world.Valid(id) {
		w.world.Remove(id)
	}
}

// Len returns the number of live ids.
func (w *World) Len() int {
	return w.world.Len()
}
