// Package culling rejects objects that sit entirely behind the camera.
//
// The test is coarse: the object's world bounds collapse to a
// sphere around the box centre and only the eye plane is checked. Objects
// beside or above the frustum pass and are clipped by nothing.
package culling

import (
	"github.com/Faultbox/midgard-bbox/internal/engine/scene"
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Viewer reports how far a world point lies in front of the eye.
// *camera.Camera implements it.
type Viewer interface {
	Depth(p math.Vec3) float32
}

// Bounds returns the union of renderer bounds across obj and its
// descendants. When nothing renders, the box degenerates to obj's world
// position.
func Bounds(obj scene.Object) math.Box3 {
	b := math.EmptyBox3()
	collect(obj, &b)
	if b.IsEmpty() {
		return math.BoxAround(obj.WorldPosition())
	}
	return b
}

func collect(obj scene.Object, b *math.Box3) {
	if r, ok := obj.(scene.HasRenderBounds); ok {
		if rb, ok := r.RenderBounds(); ok {
			*b = b.Union(rb)
		}
	}
	if hc, ok := obj.(scene.HasChildren); ok {
		for _, c := range hc.Children() {
			if c != nil {
				collect(c, b)
			}
		}
	}
}

// IsBehindCamera reports whether obj's bounding sphere lies strictly behind
// the eye plane. A sphere touching or crossing the plane is in front. A nil
// object counts as behind.
//
// Objects that cross the eye plane pass, and their vertices behind the eye
// project mirrored, so the rectangle of such an object is unreliable.
func IsBehindCamera(v Viewer, obj scene.Object) bool {
	if obj == nil {
		return true
	}
	b := Bounds(obj)
	return v.Depth(b.Center())+b.HalfDiagonal() < 0
}
