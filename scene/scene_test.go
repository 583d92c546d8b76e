package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxIntersects(t *testing.T) {
	a := Box3{Min: V(0, 0, 0), Max: V(1, 1, 1)}

	tests := []struct {
		name string
		b    Box3
		want bool
	}{
		{"overlap", Box3{Min: V(0.5, 0.5, 0.5), Max: V(2, 2, 2)}, true},
		{"touching face", Box3{Min: V(1, 0, 0), Max: V(2, 1, 1)}, true},
		{"separated on z", Box3{Min: V(0, 0, 1.01), Max: V(1, 1, 2)}, false},
		{"empty", EmptyBox(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(a))
		})
	}
}

func TestWorldMatrixComposesParents(t *testing.T) {
	root := NewGroup("root")
	parent := NewGroup("parent")
	parent.Position = V(0, 1.2, 0)
	child := NewGroup("child")
	child.Position = V(0, 0, -1)

	root.Add(parent)
	parent.Add(child)

	p := child.WorldPosition()
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 1.2, p.Y, 1e-9)
	assert.InDelta(t, -1, p.Z, 1e-9)

	parent.Rotation.Y = math.Pi / 2
	p = child.WorldPosition()
	assert.InDelta(t, -1, p.X, 1e-9)
	assert.InDelta(t, 0, p.Z, 1e-9)
}

func TestWorldBoxFollowsRotation(t *testing.T) {
	n := NewMesh("saber", NewBoxGeometry(0.02, 0.02, 2))
	n.Rotation.X = math.Pi / 2

	box := n.WorldBox()
	size := box.Size()
	assert.InDelta(t, 2, size.Y, 1e-9)
	assert.InDelta(t, 0.02, size.Z, 1e-9)
}

func TestInverseRoundTrip(t *testing.T) {
	m := Compose(V(1, 2, 3), Euler{X: 0.3, Y: -0.7, Z: 1.1}, V(2, 2, 2))
	p := V(0.5, -4, 9)
	back := TransformPoint(Inverse(m), TransformPoint(m, p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
	assert.InDelta(t, p.Z, back.Z, 1e-9)
}

func TestReparentDetachesFromPreviousParent(t *testing.T) {
	a, b := NewGroup("a"), NewGroup("b")
	c := NewGroup("c")
	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	assert.Equal(t, b, c.Parent())
	assert.True(t, c.IsDescendantOf(b))
	assert.False(t, c.IsDescendantOf(a))

	c.RemoveFromParent()
	assert.Nil(t, c.Parent())
	assert.Empty(t, b.Children())
}

func TestDisposeObjectReleasesResources(t *testing.T) {
	before := Memory()

	tex := NewTexture("score")
	shared := NewBoxGeometry(1, 1, 1)
	mat := NewMaterial(HexColor(0xff0000))
	mat.Map = tex

	group := NewGroup("group")
	group.Add(NewMesh("a", shared, mat))
	group.Add(NewMesh("b", shared, NewMaterial(HexColor(0x0000ff)), NewMaterial(HexColor(0x00ff00))))

	parent := NewGroup("parent")
	parent.Add(group)

	during := Memory()
	require.Equal(t, before.Geometries+1, during.Geometries)
	require.Equal(t, before.Textures+1, during.Textures)
	require.Equal(t, before.Materials+3, during.Materials)

	DisposeObject(group)

	assert.Equal(t, before, Memory())
	assert.Nil(t, group.Parent())
	assert.Empty(t, parent.Children())
	assert.True(t, shared.Disposed())
	assert.True(t, tex.Disposed())

	// Disposing twice must not double count.
	DisposeObject(group)
	assert.Equal(t, before, Memory())
}

func TestCameraProjectsCentre(t *testing.T) {
	cam := NewCamera(45, 16.0/9.0, 0.1, 1000)
	cam.Position = V(0, 1, 0)

	x, y, ok := cam.Project(V(0, 1, -10), 1600, 900)
	require.True(t, ok)
	assert.InDelta(t, 800, x, 1e-6)
	assert.InDelta(t, 450, y, 1e-6)

	_, _, ok = cam.Project(V(0, 1, 5), 1600, 900)
	assert.False(t, ok, "points behind the camera are not visible")
}

func TestCameraSetAspect(t *testing.T) {
	cam := NewCamera(90, 1, 0.1, 100)
	cam.SetAspect(800, 800)
	assert.InDelta(t, 1, cam.Aspect, 1e-9)

	// With a 90 degree FOV a point 1 right at depth 10 lands a tenth of the
	// half-width off centre.
	x, _, ok := cam.Project(V(1, 0, -10), 800, 800)
	require.True(t, ok)
	assert.InDelta(t, 440, x, 1e-6)

	cam.SetAspect(1600, 800)
	assert.InDelta(t, 2, cam.Aspect, 1e-9)
	x, _, ok = cam.Project(V(1, 0, -10), 1600, 800)
	require.True(t, ok)
	assert.InDelta(t, 840, x, 1e-6, "wider windows keep the vertical field of view")

	cam.SetAspect(0, 600)
	assert.InDelta(t, 2, cam.Aspect, 1e-9, "a minimised window keeps the last aspect")
}

func TestFogFactor(t *testing.T) {
	f := Fog{Near: 17, Far: 24}
	assert.Equal(t, 0.0, f.Factor(10))
	assert.InDelta(t, 0.5, f.Factor(20.5), 1e-9)
	assert.Equal(t, 1.0, f.Factor(30))
}

func TestGeometryFacesPointOutwards(t *testing.T) {
	box := NewBoxGeometry(1, 2, 3)
	defer box.Dispose()
	faces := box.Faces()
	require.Len(t, faces, box.Triangles())
	for _, f := range faces {
		n := f[1].Sub(f[0]).Cross(f[2].Sub(f[0]))
		centre := f[0].Add(f[1]).Add(f[2])
		assert.Greater(t, n.Dot(centre), 0.0)
	}

	plane := NewPlaneGeometry(2, 2)
	defer plane.Dispose()
	faces = plane.Faces()
	require.Len(t, faces, plane.Triangles())
	for _, f := range faces {
		n := f[1].Sub(f[0]).Cross(f[2].Sub(f[0]))
		assert.Greater(t, n.Z, 0.0)
	}
}
