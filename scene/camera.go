package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera. It is a regular node so it can be
// reparented, for example under a player rig.
type Camera struct {
	*Node
	FOV    float64 // vertical field of view in degrees
	Aspect float64
	Near   float64
	Far    float64

	projection Mat4
}

func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Node:   NewGroup("camera"),
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection must be called after FOV or Aspect change.
func (c *Camera) UpdateProjection() {
	if c.Aspect <= 0 {
		c.Aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio for a w x h viewport.
func (c *Camera) SetAspect(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float64(w) / float64(h)
	c.UpdateProjection()
}

func (c *Camera) ProjectionMatrix() Mat4 { return c.projection }

// ViewMatrix maps world space into camera space, where the camera looks
// down -Z.
func (c *Camera) ViewMatrix() Mat4 {
	return Inverse(c.WorldMatrix())
}

// ProjectView projects a camera-space point onto a w x h viewport. ok is
// false when the point lies outside the near/far range.
func (c *Camera) ProjectView(p Vec3, w, h float64) (x, y float64, ok bool) {
	depth := -p.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}
	clip := c.projection.Mul4x1(p.Vec().Vec4(1))
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
	return (ndcX + 1) / 2 * w, (1 - ndcY) / 2 * h, true
}

// Project maps a world-space point onto a w x h viewport.
func (c *Camera) Project(p Vec3, w, h float64) (x, y float64, ok bool) {
	return c.ProjectView(TransformPoint(c.ViewMatrix(), p), w, h)
}

// Fog blends distant surfaces linearly towards Color between Near and Far.
type Fog struct {
	Color     color.RGBA
	Near, Far float64
}

// Factor returns the fog amount in [0, 1] for a view depth.
func (f Fog) Factor(depth float64) float64 {
	if f.Far <= f.Near {
		return 0
	}
	return mgl64.Clamp((depth-f.Near)/(f.Far-f.Near), 0, 1)
}

// Light is a directional light with an ambient term.
type Light struct {
	Direction Vec3
	Color     color.RGBA
	Intensity float64
	Ambient   color.RGBA
}

// Scene is the root of the scene graph plus environment settings.
type Scene struct {
	Root       *Node
	Background color.RGBA
	Fog        Fog
	Light      Light
}

func New() *Scene {
	return &Scene{Root: NewGroup("scene")}
}

func (s *Scene) Add(n *Node)    { s.Root.Add(n) }
func (s *Scene) Remove(n *Node) { s.Root.Remove(n) }

// Contains reports whether n is currently attached to the scene.
func (s *Scene) Contains(n *Node) bool {
	return n != nil && n.IsDescendantOf(s.Root)
}

// RenderInfo carries per-frame renderer statistics.
type RenderInfo struct {
	Frame      int
	Calls      int
	Triangles  int
	Points     int
	Lines      int
	Geometries int
	Textures   int
	Programs   int
}

// Reset clears the per-frame counters and advances the frame number.
func (r *RenderInfo) Reset() {
	r.Frame++
	r.Calls, r.Triangles, r.Points, r.Lines = 0, 0, 0, 0
	mem := Memory()
	r.Geometries = mem.Geometries
	r.Textures = mem.Textures
}
