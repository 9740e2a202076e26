package culling

import (
	"testing"

	"github.com/Faultbox/midgard-bbox/internal/engine/camera"
	"github.com/Faultbox/midgard-bbox/internal/engine/scene"
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

func cubeAt(name string, pos math.Vec3) *scene.Node {
	n := scene.NewNode(name)
	n.Transform.Position = pos
	n.AddMesh(scene.Cube(math.Vec3{X: 2, Y: 2, Z: 2}))
	return n
}

func TestIsBehindCamera(t *testing.T) {
	cam := camera.New(800, 600)

	tests := []struct {
		name string
		pos  math.Vec3
		want bool
	}{
		{"in front", math.Vec3{Z: 10}, false},
		{"far behind", math.Vec3{Z: -10}, true},
		{"straddling eye plane", math.Vec3{Z: -1}, false},
		{"just behind", math.Vec3{Z: -1.8}, true},
		{"beside but in front", math.Vec3{X: 500, Z: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBehindCamera(cam, cubeAt("cube", tt.pos)); got != tt.want {
				t.Errorf("IsBehindCamera() at %v = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestIsBehindCameraFollowsCamera(t *testing.T) {
	cam := camera.New(800, 600)
	cam.Position = math.Vec3{Z: 20}
	cam.Target = math.Vec3{Z: 30}

	if !IsBehindCamera(cam, cubeAt("cube", math.Vec3{Z: 10})) {
		t.Error("IsBehindCamera() = false for cube behind a moved camera, want true")
	}

	cam.Target = math.Vec3{Z: 0}
	if IsBehindCamera(cam, cubeAt("cube", math.Vec3{Z: 10})) {
		t.Error("IsBehindCamera() = true after turning around, want false")
	}
}

func TestBoundsUnionsDescendants(t *testing.T) {
	root := scene.NewNode("root")
	if err := root.AddChild(cubeAt("a", math.Vec3{X: -5})); err != nil {
		t.Fatal(err)
	}
	if err := root.AddChild(cubeAt("b", math.Vec3{X: 5, Y: 3})); err != nil {
		t.Fatal(err)
	}

	got := Bounds(root)
	want := math.NewBox3(math.Vec3{X: -6, Y: -1, Z: -1}, math.Vec3{X: 6, Y: 4, Z: 1})
	if !got.Min.ApproxEqual(want.Min, 1e-5) || !got.Max.ApproxEqual(want.Max, 1e-5) {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestBoundsWithoutRenderers(t *testing.T) {
	n := scene.NewNode("empty")
	n.Transform.Position = math.Vec3{X: 1, Y: 2, Z: -3}

	b := Bounds(n)
	if b.Center() != n.Transform.Position || b.HalfDiagonal() != 0 {
		t.Errorf("Bounds() = %v, want a point at %v", b, n.Transform.Position)
	}

	cam := camera.New(800, 600)
	if !IsBehindCamera(cam, n) {
		t.Error("IsBehindCamera() = false for empty node at z=-3, want true")
	}
	n.Transform.Position.Z = 3
	if IsBehindCamera(cam, n) {
		t.Error("IsBehindCamera() = true for empty node at z=3, want false")
	}
}

func TestIsBehindCameraNil(t *testing.T) {
	if !IsBehindCamera(camera.New(800, 600), nil) {
		t.Error("IsBehindCamera(nil) = false, want true")
	}
}
