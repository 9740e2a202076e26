// Package camera provides the projection camera and the rigs that move it.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Camera is a perspective camera looking from Position towards Target.
// View space is right-handed with the camera looking down -Z; screen
// coordinates from WorldToScreenPoint have their origin at the bottom-left.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY float32 // vertical field of view, degrees
	Near float32
	Far  float32

	Width  int
	Height int

	Enabled bool
}

// New creates an enabled camera at the origin looking down +Z.
func New(width, height int) *Camera {
	return &Camera{
		Target:  math.Vec3{Z: 1},
		Up:      math.Vec3{Y: 1},
		FovY:    60,
		Near:    0.3,
		Far:     1000,
		Width:   width,
		Height:  height,
		Enabled: true,
	}
}

// ViewportSize returns the viewport in pixels.
func (c *Camera) ViewportSize() (width, height int) {
	return c.Width, c.Height
}

// Aspect returns width / height.
func (c *Camera) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Forward returns the unit viewing direction.
func (c *Camera) Forward() math.Vec3 {
	return c.target().Sub(c.Position).Normalize()
}

// ViewMatrix returns the world-to-view matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	up := c.Up
	if up == (math.Vec3{}) {
		up = math.Vec3{Y: 1}
	}
	return math.LookAt(c.Position, c.target(), up)
}

// target is Target, or one unit down +Z when Target sits on the eye.
func (c *Camera) target() math.Vec3 {
	if c.Target == c.Position {
		return c.Position.Add(math.Vec3{Z: 1})
	}
	return c.Target
}

// ProjectionMatrix returns the view-to-clip matrix.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FovY), c.Aspect(), c.Near, c.Far)
}

// Depth returns the distance of p in front of the camera along the view
// direction. Points behind the eye have negative depth.
func (c *Camera) Depth(p math.Vec3) float32 {
	return -c.ViewMatrix().TransformPoint(p).Z
}

// WorldToScreenPoint maps p through view, projection and viewport. X and Y
// are pixels with a bottom-left origin; Z is the view depth as returned by
// Depth. Points behind the eye produce mirrored coordinates, so callers
// should reject them first.
func (c *Camera) WorldToScreenPoint(p math.Vec3) math.Vec3 {
	view := c.ViewMatrix()
	win := mgl32.Project(
		mgl32.Vec3{p.X, p.Y, p.Z},
		mgl32.Mat4(view),
		mgl32.Mat4(c.ProjectionMatrix()),
		0, 0, c.Width, c.Height,
	)
	return math.Vec3{X: win[0], Y: win[1], Z: -view.TransformPoint(p).Z}
}
