package scene

import (
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Object is anything that can be tracked. The remaining capabilities are
// optional and discovered with type assertions.
type Object interface {
	WorldPosition() math.Vec3
}

// HasSurfaces is implemented by objects that carry renderable geometry.
type HasSurfaces interface {
	Surfaces() ([]*MeshSurface, []*SkinnedSurface)
}

// HasRenderBounds is implemented by objects that report world-space
// bounds for their own renderers (not their descendants). ok is false when
// the object renders nothing.
type HasRenderBounds interface {
	RenderBounds() (bounds math.Box3, ok bool)
}

// HasChildren is implemented by objects with nested sub-objects.
type HasChildren interface {
	Children() []Object
}

// Node is the concrete scene object: a transform with attached surfaces
// and child nodes.
type Node struct {
	Name      string
	Transform *Transform
	Meshes    []*MeshSurface
	Skins     []*SkinnedSurface

	children []*Node
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: NewTransform(name),
	}
}

// AddChild nests c under n, parenting the transforms as well.
func (n *Node) AddChild(c *Node) error {
	if n.Transform != nil && c.Transform != nil {
		if err := c.Transform.SetParent(n.Transform); err != nil {
			return err
		}
	}
	n.children = append(n.children, c)
	return nil
}

// AddMesh attaches static vertices to the node's own transform.
func (n *Node) AddMesh(vertices []math.Vec3) *MeshSurface {
	m := &MeshSurface{Transform: n.Transform, Vertices: vertices}
	n.Meshes = append(n.Meshes, m)
	return m
}

// AddSkin attaches a skinned surface to the node's own transform.
func (n *Node) AddSkin(s *SkinnedSurface) {
	if s.Transform == nil {
		s.Transform = n.Transform
	}
	n.Skins = append(n.Skins, s)
}

// Nodes returns the direct child nodes.
func (n *Node) Nodes() []*Node {
	return n.children
}

// Walk visits n and every descendant depth-first, stopping early when fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// WorldPosition implements Object.
func (n *Node) WorldPosition() math.Vec3 {
	if n.Transform == nil {
		return math.Vec3{}
	}
	return n.Transform.WorldPosition()
}

// Surfaces implements HasSurfaces.
func (n *Node) Surfaces() ([]*MeshSurface, []*SkinnedSurface) {
	return n.Meshes, n.Skins
}

// Children implements HasChildren.
func (n *Node) Children() []Object {
	out := make([]Object, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// RenderBounds implements HasRenderBounds.
func (n *Node) RenderBounds() (math.Box3, bool) {
	b := math.EmptyBox3()
	for _, m := range n.Meshes {
		b = b.Union(m.WorldBounds())
	}
	for _, s := range n.Skins {
		b = b.Union(s.WorldBounds())
	}
	return b, !b.IsEmpty()
}
