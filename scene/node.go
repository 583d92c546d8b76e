package scene

import (
	"image/color"
	"slices"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

var nextNodeID atomic.Uint64

// Node is an element of the scene graph. A node with a Geometry and at least
// one Material is drawn as a mesh; a node with Instances is drawn once per
// visible instance.
type Node struct {
	Name     string
	Position Vec3
	Rotation Euler
	Scale    Vec3
	Visible  bool

	Geometry  *Geometry
	Materials []*Material
	Instances *Instances

	id       uint64
	parent   *Node
	children []*Node
}

// NewGroup returns an empty transform node.
func NewGroup(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   Vec3{1, 1, 1},
		Visible: true,
		id:      nextNodeID.Add(1),
	}
}

// NewMesh returns a node drawn with the given geometry and materials.
func NewMesh(name string, g *Geometry, mats ...*Material) *Node {
	n := NewGroup(name)
	n.Geometry = g
	n.Materials = mats
	return n
}

func (n *Node) ID() uint64        { return n.id }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// Add attaches child under n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child if it is a direct child of n.
func (n *Node) Remove(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
}

func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Traverse visits n and all its descendants depth first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible is Traverse that skips hidden sub-trees.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.TraverseVisible(fn)
	}
}

// IsDescendantOf reports whether root is n or one of its ancestors.
func (n *Node) IsDescendantOf(root *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == root {
			return true
		}
	}
	return false
}

func (n *Node) LocalMatrix() Mat4 {
	return Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix composes the local transforms from the root down to n.
func (n *Node) WorldMatrix() Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *Node) WorldPosition() Vec3 {
	return Translation(n.WorldMatrix())
}

// WorldBox returns the world-space bounds of the node's own geometry.
func (n *Node) WorldBox() Box3 {
	if n.Geometry == nil {
		return EmptyBox()
	}
	return n.Geometry.BoundingBox().ApplyMatrix(n.WorldMatrix())
}

// Instances holds per-instance transforms and colors of an instanced mesh.
type Instances struct {
	matrices []Mat4
	colors   []color.RGBA
	visible  []bool
}

// NewInstancedMesh returns a node that draws g count times.
func NewInstancedMesh(name string, g *Geometry, mat *Material, count int) *Node {
	n := NewMesh(name, g, mat)
	n.Instances = &Instances{
		matrices: make([]Mat4, count),
		colors:   make([]color.RGBA, count),
		visible:  make([]bool, count),
	}
	for i := range n.Instances.matrices {
		n.Instances.matrices[i] = mgl64.Ident4()
		n.Instances.colors[i] = mat.Color
	}
	return n
}

func (in *Instances) Count() int { return len(in.matrices) }

func (in *Instances) SetMatrixAt(i int, m Mat4)        { in.matrices[i] = m }
func (in *Instances) MatrixAt(i int) Mat4              { return in.matrices[i] }
func (in *Instances) SetColorAt(i int, c color.RGBA)   { in.colors[i] = c }
func (in *Instances) ColorAt(i int) color.RGBA         { return in.colors[i] }
func (in *Instances) SetVisibleAt(i int, visible bool) { in.visible[i] = visible }
func (in *Instances) VisibleAt(i int) bool             { return in.visible[i] }

// DisposeObject detaches n from its parent and releases the geometry,
// materials and bound textures of every node in the sub-tree.
func DisposeObject(n *Node) {
	if n == nil {
		return
	}
	n.RemoveFromParent()
	n.Traverse(func(c *Node) {
		if c.Geometry != nil {
			c.Geometry.Dispose()
		}
		for _, m := range c.Materials {
			if m == nil {
				continue
			}
			if m.Map != nil {
				m.Map.Dispose()
			}
			m.Dispose()
		}
	})
}
