package math

import (
	"math"
	"testing"
)

func TestEmptyBox3(t *testing.T) {
	b := EmptyBox3()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox3().IsEmpty() = false, want true")
	}
	if got := b.HalfDiagonal(); got != 0 {
		t.Errorf("EmptyBox3().HalfDiagonal() = %v, want 0", got)
	}

	p := Vec3{1, 2, 3}
	b = b.ExpandPoint(p)
	if b.Min != p || b.Max != p {
		t.Errorf("ExpandPoint on empty = %v, want zero-size box at %v", b, p)
	}
}

func TestNewBox3SwapsCorners(t *testing.T) {
	b := NewBox3(Vec3{1, -1, 5}, Vec3{-1, 1, 2})
	if b.Min != (Vec3{-1, -1, 2}) || b.Max != (Vec3{1, 1, 5}) {
		t.Errorf("NewBox3() = %v", b)
	}
}

func TestBox3Union(t *testing.T) {
	a := NewBox3(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	b := NewBox3(Vec3{2, -1, 0}, Vec3{3, 0, 4})

	got := a.Union(b)
	want := Box3{Min: Vec3{0, -1, 0}, Max: Vec3{3, 1, 4}}
	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
	if got := a.Union(EmptyBox3()); got != a {
		t.Errorf("Union(empty) = %v, want %v", got, a)
	}
	if got := EmptyBox3().Union(a); got != a {
		t.Errorf("empty.Union() = %v, want %v", got, a)
	}
}

func TestBox3HalfDiagonal(t *testing.T) {
	b := NewBox3(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	want := float32(math.Sqrt(3))
	if got := b.HalfDiagonal(); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("HalfDiagonal() = %v, want %v", got, want)
	}
	if got := b.Center(); got != (Vec3{}) {
		t.Errorf("Center() = %v, want origin", got)
	}
}

func TestBox3Transform(t *testing.T) {
	b := NewBox3(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	m := TRS(Vec3{0, 0, 10}, QuatFromEuler(Vec3{Y: 45}), Vec3{2, 1, 1})

	got := b.Transform(m)
	for _, c := range b.Corners() {
		p := m.TransformPoint(c)
		if p.X < got.Min.X-1e-5 || p.X > got.Max.X+1e-5 ||
			p.Z < got.Min.Z-1e-5 || p.Z > got.Max.Z+1e-5 {
			t.Errorf("transformed corner %v outside %v", p, got)
		}
	}
	if got.Min.Y != -1 || got.Max.Y != 1 {
		t.Errorf("Transform() Y range = [%v, %v], want [-1, 1]", got.Min.Y, got.Max.Y)
	}
}
