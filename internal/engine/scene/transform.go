// Package scene models the tracked objects: a transform hierarchy with
// static and skinned mesh surfaces attached to nodes.
package scene

import (
	"errors"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// ErrCycle is returned when reparenting would make a transform its own
// ancestor.
var ErrCycle = errors.New("scene: transform cycle")

// Transform is a position/rotation/scale relative to an optional parent.
// The zero Rotation is treated as identity.
type Transform struct {
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	parent   *Transform
	children []*Transform
}

// NewTransform creates an identity transform.
func NewTransform(name string) *Transform {
	return &Transform{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.One,
	}
}

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// Children returns the direct children.
func (t *Transform) Children() []*Transform {
	return t.children
}

// SetParent attaches t under p, keeping the local values (so the world
// pose changes). A nil p detaches t.
func (t *Transform) SetParent(p *Transform) error {
	for a := p; a != nil; a = a.parent {
		if a == t {
			return ErrCycle
		}
	}
	if t.parent != nil {
		siblings := t.parent.children
		for i, c := range siblings {
			if c == t {
				t.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	t.parent = p
	if p != nil {
		p.children = append(p.children, t)
	}
	return nil
}

func (t *Transform) rotation() math.Quat {
	if t.Rotation.IsZero() {
		return math.QuatIdentity()
	}
	return t.Rotation
}

// LocalMatrix returns translation * rotation * scale.
func (t *Transform) LocalMatrix() math.Mat4 {
	return math.TRS(t.Position, t.rotation(), t.Scale)
}

// LocalToWorld composes the local matrix with every ancestor.
func (t *Transform) LocalToWorld() math.Mat4 {
	m := t.LocalMatrix()
	for a := t.parent; a != nil; a = a.parent {
		m = a.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the origin of t in world space.
func (t *Transform) WorldPosition() math.Vec3 {
	return t.LocalToWorld().Translation()
}

// WorldRotation returns the accumulated rotation of t and its ancestors.
func (t *Transform) WorldRotation() math.Quat {
	q := t.rotation()
	for a := t.parent; a != nil; a = a.parent {
		q = a.rotation().Mul(q)
	}
	return q.Normalize()
}

// WorldMatrixWithScale returns the world pose of t as if it were detached
// from its parent with its scale replaced by scale. Nothing is mutated.
func (t *Transform) WorldMatrixWithScale(scale math.Vec3) math.Mat4 {
	return math.TRS(t.WorldPosition(), t.WorldRotation(), scale)
}

// TransformPoint maps a local point to world space.
func (t *Transform) TransformPoint(p math.Vec3) math.Vec3 {
	return t.LocalToWorld().TransformPoint(p)
}
