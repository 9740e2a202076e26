package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Min returns the component-wise minimum.
func (v Vec2) Min(other Vec2) Vec2 {
	return Vec2{min(v.X, other.X), min(v.Y, other.Y)}
}

// Max returns the component-wise maximum.
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{max(v.X, other.X), max(v.Y, other.Y)}
}
