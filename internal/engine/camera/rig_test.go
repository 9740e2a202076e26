package camera

import (
	"testing"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

func TestOrbitRigApply(t *testing.T) {
	rig := NewOrbitRig(math.Vec3{Y: 1}, 10)
	cam := New(800, 600)
	rig.Apply(cam)

	if want := (math.Vec3{Y: 1, Z: -10}); !cam.Position.ApproxEqual(want, eps) {
		t.Errorf("Position = %v, want %v", cam.Position, want)
	}
	if cam.Target != rig.Center {
		t.Errorf("Target = %v, want %v", cam.Target, rig.Center)
	}
	if got := cam.Depth(rig.Center); got < 9.99 || got > 10.01 {
		t.Errorf("Depth(center) = %v, want 10", got)
	}
}

func TestOrbitRigDistanceStaysConstant(t *testing.T) {
	rig := NewOrbitRig(math.Vec3{}, 5)
	for i := 0; i < 20; i++ {
		rig.HandleKeys(1, 1)
		if d := rig.Position().Length(); d < 4.99 || d > 5.01 {
			t.Fatalf("step %d: distance = %v, want 5", i, d)
		}
	}
}

func TestOrbitRigClamps(t *testing.T) {
	rig := NewOrbitRig(math.Vec3{}, 10)

	rig.HandleDrag(0, 1e6)
	if rig.RotationX != rig.MaxPitch {
		t.Errorf("RotationX = %v, want %v", rig.RotationX, rig.MaxPitch)
	}
	rig.HandleKeys(0, -1000)
	if rig.RotationX != rig.MinPitch {
		t.Errorf("RotationX = %v, want %v", rig.RotationX, rig.MinPitch)
	}

	for i := 0; i < 100; i++ {
		rig.HandleZoom(5)
	}
	if rig.Distance != rig.MinDistance {
		t.Errorf("Distance = %v, want %v", rig.Distance, rig.MinDistance)
	}
	for i := 0; i < 100; i++ {
		rig.HandleZoom(-5)
	}
	if rig.Distance != rig.MaxDistance {
		t.Errorf("Distance = %v, want %v", rig.Distance, rig.MaxDistance)
	}
}

func TestFollowRig(t *testing.T) {
	target := math.Vec3{X: 1, Y: 2, Z: 3}
	rig := NewFollowRig(func() math.Vec3 { return target })
	rig.Pitch = 0
	cam := New(800, 600)

	rig.Apply(cam)
	if want := (math.Vec3{X: 1, Y: 2, Z: -7}); !cam.Position.ApproxEqual(want, eps) {
		t.Errorf("Position = %v, want %v", cam.Position, want)
	}

	target = math.Vec3{X: 4, Y: 2, Z: 3}
	rig.Apply(cam)
	if cam.Target != target {
		t.Errorf("Target = %v, want %v", cam.Target, target)
	}
	if got := cam.WorldToScreenPoint(target); got.XY().Sub(math.Vec2{X: 400, Y: 300}).Length() > eps {
		t.Errorf("target on screen = %v, want viewport center", got)
	}
}

func TestFollowRigNilTarget(t *testing.T) {
	cam := New(800, 600)
	before := *cam
	(&FollowRig{}).Apply(cam)
	if *cam != before {
		t.Errorf("Apply() with nil target moved the camera")
	}
}
