// Package projection reduces world-space points to a screen rectangle.
package projection

import (
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Camera maps world points to bottom-left origin pixels.
// *camera.Camera implements it.
type Camera interface {
	WorldToScreenPoint(p math.Vec3) math.Vec3
	ViewportSize() (width, height int)
}

// Project returns the smallest rectangle, in top-left origin pixels,
// enclosing every point as seen by cam. The rectangle is not clamped to
// the viewport. No points gives the zero Rect.
func Project(cam Camera, points []math.Vec3) math.Rect {
	if len(points) == 0 {
		return math.Rect{}
	}
	_, h := cam.ViewportSize()
	height := float32(h)

	lo := flip(cam.WorldToScreenPoint(points[0]), height)
	hi := lo
	for _, p := range points[1:] {
		s := flip(cam.WorldToScreenPoint(p), height)
		lo = lo.Min(s)
		hi = hi.Max(s)
	}
	return math.RectMinMax(lo, hi)
}

func flip(p math.Vec3, height float32) math.Vec2 {
	return math.Vec2{X: p.X, Y: height - p.Y}
}
