package scene

import "github.com/Faultbox/midgard-bbox/pkg/math"

// Cube returns the eight corners of a box centred on the origin.
func Cube(size math.Vec3) []math.Vec3 {
	h := size.Scale(0.5)
	corners := math.NewBox3(h.Scale(-1), h).Corners()
	return corners[:]
}

// Quad returns the four corners of a rectangle in the XY plane centred on
// the origin.
func Quad(width, height float32) []math.Vec3 {
	w, h := width/2, height/2
	return []math.Vec3{
		{X: -w, Y: -h},
		{X: w, Y: -h},
		{X: w, Y: h},
		{X: -w, Y: h},
	}
}
