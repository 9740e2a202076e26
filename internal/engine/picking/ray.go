// Package picking casts rays from screen pixels into the scene.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-bbox/internal/engine/camera"
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// ScreenToRay converts top-left pixel coordinates to a world-space ray.
func ScreenToRay(cam *camera.Camera, screenX, screenY float32) Ray {
	w, h := cam.ViewportSize()
	invViewProj := cam.ProjectionMatrix().Mul(cam.ViewMatrix()).Inverse()

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/float32(w) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(h) // Flip Y

	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{Origin: nearWorld, Direction: farWorld.Sub(nearWorld).Normalize()}
}

func unproject(m math.Mat4, ndc math.Vec4) math.Vec3 {
	p := m.MulVec4(ndc)
	if p[3] != 0 {
		p[0] /= p[3]
		p[1] /= p[3]
		p[2] /= p[3]
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectBox tests ray intersection with an axis-aligned box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBox(box math.Box3) (t float32, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Pick returns the index of the nearest box hit by the ray, or -1.
func Pick(r Ray, boxes []math.Box3) int {
	best := -1
	bestT := float32(gomath.MaxFloat32)
	for i, box := range boxes {
		if t, ok := r.IntersectBox(box); ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}
