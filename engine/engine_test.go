package engine

import (
	"testing"

	"github.com/automoto/saberbeat/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

var testTag = donburi.NewTag().SetName("Test")

type fakeComponent struct {
	kind     ComponentType
	updates  int
	lastDT   float64
	disposed bool
}

func (c *fakeComponent) Type() ComponentType { return c.kind }
func (c *fakeComponent) Update(dt float64) {
	c.updates++
	c.lastDT = dt
}
func (c *fakeComponent) Dispose() { c.disposed = true }

type box struct {
	Base
	updates int
}

func newBox(w *World) *box {
	b := &box{Base: NewBase(w, scene.NewMesh("box", scene.NewBoxGeometry(1, 1, 1), scene.NewMaterial(scene.HexColor(0xffffff))), testTag)}
	w.Bind(b)
	return b
}

func (b *box) Update(dt float64) {
	b.updates++
	b.Base.Update(dt)
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	e := newBox(w)

	assert.Nil(t, e.ComponentByType(ComponentCollider))

	first := &fakeComponent{kind: ComponentCollider}
	second := &fakeComponent{kind: ComponentCollider}
	e.AddComponent(first)
	e.AddComponent(second)

	assert.Same(t, first, e.ComponentByType(ComponentCollider), "first match wins")

	e.Update(0.5)
	assert.Equal(t, 1, first.updates)
	assert.Equal(t, 0.5, second.lastDT)

	e.RemoveComponentByType(ComponentCollider)
	assert.Nil(t, e.ComponentByType(ComponentCollider))
	assert.Empty(t, e.Components())
	assert.True(t, first.disposed)
	assert.True(t, second.disposed)
}

func TestWorldLookupAndRelease(t *testing.T) {
	w := NewWorld()
	a := newBox(w)
	b := newBox(w)
	require.NotEqual(t, a.ID(), b.ID())

	got, ok := w.Lookup(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	var tagged int
	w.EachTagged(testTag, func(Entity) { tagged++ })
	assert.Equal(t, 2, tagged)

	a.Dispose()
	_, ok = w.Lookup(a.ID())
	assert.False(t, ok)
	assert.False(t, w.Valid(a.ID()))
}

func TestSystemParkWithoutDispose(t *testing.T) {
	w := NewWorld()
	root := scene.NewGroup("root")
	s := NewSystem(w, root)
	e := newBox(w)
	comp := &fakeComponent{kind: ComponentCollider}
	e.AddComponent(comp)

	s.AddEntity(e, nil)
	assert.True(t, s.Has(e.ID()))
	assert.Equal(t, root, e.Node().Parent())
	assert.Equal(t, 1, s.Len())

	s.UpdateEntities(1.0 / 60)
	assert.Equal(t, 1, e.updates)

	s.RemoveEntity(e.ID())
	assert.False(t, s.Has(e.ID()))
	assert.Nil(t, e.Node().Parent())
	assert.False(t, comp.disposed, "removal must not dispose")
	assert.False(t, e.Node().Geometry.Disposed())

	s.UpdateEntities(1.0 / 60)
	assert.Equal(t, 1, e.updates, "parked entities are not updated")

	s.AddEntity(e, nil)
	assert.True(t, s.Has(e.ID()))
	assert.Equal(t, root, e.Node().Parent())

	// Removing an unknown id is a no-op.
	s.RemoveEntity(e.ID())
	s.RemoveEntity(e.ID())
}

func TestSystemAddUnderParent(t *testing.T) {
	w := NewWorld()
	root := scene.NewGroup("root")
	rig := scene.NewGroup("rig")
	root.Add(rig)
	s := NewSystem(w, root)

	e := newBox(w)
	s.AddEntity(e, rig)
	assert.Equal(t, rig, e.Node().Parent())

	got := s.Entities(e.ID(), 9999)
	require.Len(t, got, 1)
	assert.Same(t, e, got[0])
}

func TestSystemDisposeEntities(t *testing.T) {
	w := NewWorld()
	s := NewSystem(w, scene.NewGroup("root"))
	a, b := newBox(w), newBox(w)
	ca := &fakeComponent{kind: ComponentCollider}
	a.AddComponent(ca)
	s.AddEntities(a, b)

	s.DisposeEntities()

	assert.Equal(t, 0, s.Len())
	assert.True(t, ca.disposed)
	assert.True(t, a.Node().Geometry.Disposed())
	assert.False(t, w.Valid(b.ID()))
}

func TestDisposeCascadesToChildren(t *testing.T) {
	w := NewWorld()
	parent, child := newBox(w), newBox(w)
	parent.AddChild(child)
	assert.Equal(t, parent.Node(), child.Node().Parent())

	parent.Update(0.1)
	assert.Equal(t, 1, child.updates)

	parent.Dispose()
	assert.False(t, w.Valid(child.ID()))
	assert.True(t, child.Node().Geometry.Disposed())
}
