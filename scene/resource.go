package scene

import (
	"image/color"
	"sync/atomic"
)

// MemoryInfo counts live GPU-side resources.
type MemoryInfo struct {
	Geometries int
	Textures   int
	Materials  int
}

var (
	liveGeometries atomic.Int64
	liveTextures   atomic.Int64
	liveMaterials  atomic.Int64
)

// Memory returns a snapshot of allocated but not yet disposed resources.
func Memory() MemoryInfo {
	return MemoryInfo{
		Geometries: int(liveGeometries.Load()),
		Textures:   int(liveTextures.Load()),
		Materials:  int(liveMaterials.Load()),
	}
}

type GeometryKind int

const (
	GeometryBox GeometryKind = iota
	GeometryPlane
)

// Geometry is an axis-aligned primitive centred on its local origin.
// Planes lie in the local XY plane.
type Geometry struct {
	Kind                 GeometryKind
	Width, Height, Depth float64
	disposed             atomic.Bool
}

func NewBoxGeometry(w, h, d float64) *Geometry {
	liveGeometries.Add(1)
	return &Geometry{Kind: GeometryBox, Width: w, Height: h, Depth: d}
}

func NewPlaneGeometry(w, h float64) *Geometry {
	liveGeometries.Add(1)
	return &Geometry{Kind: GeometryPlane, Width: w, Height: h}
}

// BoundingBox returns the local-space bounds.
func (g *Geometry) BoundingBox() Box3 {
	hw, hh, hd := g.Width/2, g.Height/2, g.Depth/2
	return Box3{Min: Vec3{-hw, -hh, -hd}, Max: Vec3{hw, hh, hd}}
}

// Triangles returns the number of triangles the primitive is drawn with.
func (g *Geometry) Triangles() int {
	if g.Kind == GeometryPlane {
		return 2
	}
	return 12
}

// Faces returns the primitive's triangles in local space, wound
// counter-clockwise when seen from outside. Planes face +Z.
func (g *Geometry) Faces() [][3]Vec3 {
	hw, hh, hd := g.Width/2, g.Height/2, g.Depth/2
	if g.Kind == GeometryPlane {
		return [][3]Vec3{
			{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}},
			{{-hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}},
		}
	}

	c := func(x, y, z float64) Vec3 { return Vec3{x * hw, y * hh, z * hd} }
	quads := [6][4]Vec3{
		{c(1, -1, -1), c(1, 1, -1), c(1, 1, 1), c(1, -1, 1)},
		{c(-1, -1, -1), c(-1, -1, 1), c(-1, 1, 1), c(-1, 1, -1)},
		{c(-1, 1, -1), c(-1, 1, 1), c(1, 1, 1), c(1, 1, -1)},
		{c(-1, -1, -1), c(1, -1, -1), c(1, -1, 1), c(-1, -1, 1)},
		{c(-1, -1, 1), c(1, -1, 1), c(1, 1, 1), c(-1, 1, 1)},
		{c(-1, -1, -1), c(-1, 1, -1), c(1, 1, -1), c(1, -1, -1)},
	}
	faces := make([][3]Vec3, 0, 12)
	for _, q := range quads {
		for _, t := range [2][3]Vec3{{q[0], q[1], q[2]}, {q[0], q[2], q[3]}} {
			n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
			if n.Dot(t[0].Add(t[1]).Add(t[2])) < 0 {
				t[1], t[2] = t[2], t[1]
			}
			faces = append(faces, t)
		}
	}
	return faces
}

// Dispose releases the geometry. Shared geometries may be disposed by several
// owners; only the first call counts.
func (g *Geometry) Dispose() {
	if g.disposed.CompareAndSwap(false, true) {
		liveGeometries.Add(-1)
	}
}

func (g *Geometry) Disposed() bool { return g.disposed.Load() }

// Texture is an image bound to a material slot.
type Texture struct {
	Name     string
	disposed atomic.Bool
}

func NewTexture(name string) *Texture {
	liveTextures.Add(1)
	return &Texture{Name: name}
}

func (t *Texture) Dispose() {
	if t.disposed.CompareAndSwap(false, true) {
		liveTextures.Add(-1)
	}
}

func (t *Texture) Disposed() bool { return t.disposed.Load() }

// Material describes how a mesh surface is shaded.
type Material struct {
	Color       color.RGBA
	Opacity     float64
	Transparent bool
	Map         *Texture
	disposed    atomic.Bool
}

func NewMaterial(c color.RGBA) *Material {
	liveMaterials.Add(1)
	return &Material{Color: c, Opacity: 1}
}

func (m *Material) Dispose() {
	if m.disposed.CompareAndSwap(false, true) {
		liveMaterials.Add(-1)
	}
}

func (m *Material) Disposed() bool { return m.disposed.Load() }

// HexColor converts 0xRRGGBB into an opaque color.
func HexColor(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}
