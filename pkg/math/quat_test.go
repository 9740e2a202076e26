package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := float32(math.Sqrt(float64(n.Dot(n))))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	if r := q1.Slerp(q2, 0); math.Abs(float64(r.W-q1.W)) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1, got %v", r)
	}
	if r := q1.Slerp(q2, 1); math.Abs(float64(r.W-q2.W)) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2, got %v", r)
	}

	expectedW := float32(math.Cos(math.Pi / 8))
	if r := q1.Slerp(q2, 0.5); math.Abs(float64(r.W-expectedW)) > 0.01 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, r.W)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		euler Vec3
		in    Vec3
		want  Vec3
	}{
		{"identity", Vec3{}, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"yaw 90", Vec3{Y: 90}, Vec3{X: 1}, Vec3{Z: -1}},
		{"pitch 90", Vec3{X: 90}, Vec3{Y: 1}, Vec3{Z: 1}},
		{"roll 90", Vec3{Z: 90}, Vec3{X: 1}, Vec3{Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromEuler(tt.euler).Rotate(tt.in)
			if !got.ApproxEqual(tt.want, 0.0001) {
				t.Errorf("QuatFromEuler(%v).Rotate(%v) = %v, want %v", tt.euler, tt.in, got, tt.want)
			}
		})
	}
}

func TestQuatConjugateUndoesRotation(t *testing.T) {
	q := QuatFromEuler(Vec3{20, 70, -35})
	v := Vec3{1, 2, 3}
	got := q.Conjugate().Rotate(q.Rotate(v))
	if !got.ApproxEqual(v, 0.0001) {
		t.Errorf("Conjugate().Rotate(Rotate(v)) = %v, want %v", got, v)
	}
}
