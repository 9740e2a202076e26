package camera

import (
	gomath "math"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Rig positions a camera.
type Rig interface {
	Apply(c *Camera)
}

// OrbitRig orbits around a center point.
type OrbitRig struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
	KeyStep         float32 // radians per key press
}

// NewOrbitRig creates an orbit rig looking at center from distance.
func NewOrbitRig(center math.Vec3, distance float32) *OrbitRig {
	return &OrbitRig{
		Center:          center,
		Distance:        distance,
		MinDistance:     distance * 0.1,
		MaxDistance:     distance * 10,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		KeyStep:         0.05,
	}
}

// Position returns the rig's eye position in world space. At zero yaw and
// pitch the eye sits on -Z of the center, looking down +Z.
func (r *OrbitRig) Position() math.Vec3 {
	cx := float32(gomath.Cos(float64(r.RotationX)))
	x := r.Distance * cx * float32(gomath.Sin(float64(r.RotationY)))
	y := r.Distance * float32(gomath.Sin(float64(r.RotationX)))
	z := -r.Distance * cx * float32(gomath.Cos(float64(r.RotationY)))
	return r.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// Apply implements Rig.
func (r *OrbitRig) Apply(c *Camera) {
	c.Position = r.Position()
	c.Target = r.Center
	c.Up = math.Vec3{Y: 1}
}

// HandleDrag updates rotation based on mouse drag delta.
func (r *OrbitRig) HandleDrag(deltaX, deltaY float32) {
	r.RotationY -= deltaX * r.DragSensitivity
	r.RotationX += deltaY * r.DragSensitivity
	r.clampPitch()
}

// HandleKeys rotates by whole key steps; yaw and pitch are -1, 0 or 1.
func (r *OrbitRig) HandleKeys(yaw, pitch int) {
	r.RotationY += float32(yaw) * r.KeyStep
	r.RotationX += float32(pitch) * r.KeyStep
	r.clampPitch()
}

// HandleZoom updates distance based on scroll wheel delta.
func (r *OrbitRig) HandleZoom(delta float32) {
	r.Distance -= delta * r.Distance * r.ZoomSensitivity
	r.Distance = min(max(r.Distance, r.MinDistance), r.MaxDistance)
}

func (r *OrbitRig) clampPitch() {
	r.RotationX = min(max(r.RotationX, r.MinPitch), r.MaxPitch)
}

// FollowRig trails a moving target from behind and above.
type FollowRig struct {
	Target func() math.Vec3

	Yaw      float32 // radians around the target
	Pitch    float32 // radians above the horizon
	Distance float32
	Height   float32 // look-at offset above the target origin
}

// NewFollowRig creates a follow rig for target.
func NewFollowRig(target func() math.Vec3) *FollowRig {
	return &FollowRig{
		Target:   target,
		Pitch:    0.35,
		Distance: 10,
	}
}

// Apply implements Rig.
func (r *FollowRig) Apply(c *Camera) {
	if r.Target == nil {
		return
	}
	t := r.Target()
	offsetY := r.Distance * float32(gomath.Sin(float64(r.Pitch)))
	horiz := r.Distance * float32(gomath.Cos(float64(r.Pitch)))

	c.Position = math.Vec3{
		X: t.X - horiz*float32(gomath.Sin(float64(r.Yaw))),
		Y: t.Y + offsetY,
		Z: t.Z - horiz*float32(gomath.Cos(float64(r.Yaw))),
	}
	c.Target = t.Add(math.Vec3{Y: r.Height})
	c.Up = math.Vec3{Y: 1}
}
