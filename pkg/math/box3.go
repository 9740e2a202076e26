package math

import "math"

// Box3 is an axis-aligned bounding box. A box with Min > Max on any axis
// is empty; use EmptyBox3 as the starting value for accumulation.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox3 returns a box that contains nothing; expanding it by a point
// yields a zero-size box at that point.
func EmptyBox3() Box3 {
	inf := float32(math.Inf(1))
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewBox3 creates a box from two corners, swapping components so that
// Min <= Max on every axis (negative scales produce inverted corners).
func NewBox3(a, b Vec3) Box3 {
	return Box3{Min: a.Min(b), Max: a.Max(b)}
}

// BoxAround returns the zero-size box at p.
func BoxAround(p Vec3) Box3 {
	return Box3{Min: p, Max: p}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExpandPoint returns the smallest box containing b and p.
func (b Box3) ExpandPoint(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes. Empty boxes are
// ignored.
func (b Box3) Union(other Box3) Box3 {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return Box3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extents returns half the size of the box on each axis.
func (b Box3) Extents() Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// HalfDiagonal is the distance from the centre to any corner: the radius
// of the sphere that encloses the box.
func (b Box3) HalfDiagonal() float32 {
	if b.IsEmpty() {
		return 0
	}
	return b.Extents().Length()
}

// Corners returns the eight corners of the box.
func (b Box3) Corners() [8]Vec3 {
	lo, hi := b.Min, b.Max
	return [8]Vec3{
		{lo.X, lo.Y, lo.Z},
		{hi.X, lo.Y, lo.Z},
		{lo.X, hi.Y, lo.Z},
		{hi.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z},
		{hi.X, lo.Y, hi.Z},
		{lo.X, hi.Y, hi.Z},
		{hi.X, hi.Y, hi.Z},
	}
}

// Transform returns the axis-aligned box enclosing b after m is applied.
func (b Box3) Transform(m Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox3()
	for _, c := range b.Corners() {
		out = out.ExpandPoint(m.TransformPoint(c))
	}
	return out
}

// BoxOf returns the bounds of a set of points (empty for no points).
func BoxOf(points []Vec3) Box3 {
	out := EmptyBox3()
	for _, p := range points {
		out = out.ExpandPoint(p)
	}
	return out
}
