package math

// Rect is a 2D rectangle in screen pixels with origin at the top-left.
// The zero Rect means "no geometry".
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// RectMinMax builds the rectangle spanning two corners. The corners do not
// need to be ordered.
func RectMinMax(a, b Vec2) Rect {
	lo := a.Min(b)
	hi := a.Max(b)
	return Rect{
		X:      lo.X,
		Y:      lo.Y,
		Width:  hi.X - lo.X,
		Height: hi.Y - lo.Y,
	}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.X, r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.X + r.Width, r.Y + r.Height}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// IsZero reports whether r is the empty rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}
