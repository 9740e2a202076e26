package scene

import (
	"testing"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

func newBody(scale float32) *Transform {
	body := NewTransform("body")
	body.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	body.Rotation = math.QuatFromEuler(math.Vec3{Y: 30})
	body.Scale = math.Vec3{X: scale, Y: scale, Z: scale}
	return body
}

// newRiggedSkin binds verts to a single bone that sits at the body's
// unscaled pose.
func newRiggedSkin(body *Transform, verts []math.Vec3) (*SkinnedSurface, *Transform) {
	bone := NewTransform("bone")
	bone.Position = body.Position
	bone.Rotation = body.Rotation

	weights := make([]BoneWeight, len(verts))
	for i := range weights {
		weights[i] = BoneWeight{Index: [4]int{0}, Weight: [4]float32{1}}
	}
	s := &SkinnedSurface{
		Transform: body,
		Vertices:  verts,
		Weights:   weights,
		Bones:     []*Transform{bone},
	}
	s.ResetBindPoses()
	return s, bone
}

func TestSkinBakeAppliesScaleOnce(t *testing.T) {
	verts := Cube(math.Vec3{X: 1, Y: 2, Z: 3})
	body := newBody(2)
	skin, _ := newRiggedSkin(body, verts)

	baked := skin.Bake(nil, math.One)
	l2w := body.LocalToWorld()
	s := body.Scale
	for i, v := range verts {
		got := l2w.TransformPoint(baked[i])
		once := l2w.TransformPoint(v)
		twice := l2w.TransformPoint(v.Mul(s))
		zero := body.WorldMatrixWithScale(math.One).TransformPoint(v)

		if !got.ApproxEqual(once, 1e-4) {
			t.Errorf("vertex %d: world = %v, want %v (scale once)", i, got, once)
		}
		if got.ApproxEqual(twice, 1e-4) {
			t.Errorf("vertex %d: world %v matches scale applied twice", i, got)
		}
		if got.ApproxEqual(zero, 1e-4) {
			t.Errorf("vertex %d: world %v matches scale never applied", i, got)
		}
	}
}

func TestSkinBakeIndependentOfSurfaceScale(t *testing.T) {
	verts := Quad(2, 4)
	small, _ := newRiggedSkin(newBody(1), verts)
	large, _ := newRiggedSkin(newBody(5), verts)

	a := small.Bake(nil, math.One)
	b := large.Bake(nil, math.One)
	for i := range a {
		if !a[i].ApproxEqual(b[i], 1e-4) {
			t.Errorf("vertex %d: bake at scale 1 = %v, at scale 5 = %v", i, a[i], b[i])
		}
	}
	if large.Transform.Scale != (math.Vec3{X: 5, Y: 5, Z: 5}) {
		t.Errorf("Bake mutated scale: %v", large.Transform.Scale)
	}
}

func TestSkinBakeFollowsBones(t *testing.T) {
	body := NewTransform("body")
	b0 := NewTransform("b0")
	b1 := NewTransform("b1")
	skin := &SkinnedSurface{
		Transform: body,
		Vertices:  []math.Vec3{{X: 1}, {Y: 1}, {Z: 1}},
		Weights: []BoneWeight{
			{Index: [4]int{0}, Weight: [4]float32{1}},
			{Index: [4]int{1}, Weight: [4]float32{1}},
			{Index: [4]int{0, 1}, Weight: [4]float32{0.5, 0.5}},
		},
		Bones: []*Transform{b0, b1},
	}
	skin.ResetBindPoses()

	b0.Position = math.Vec3{Y: 1}
	b1.Position = math.Vec3{X: 2}

	got := skin.Bake(nil, math.One)
	want := []math.Vec3{
		{X: 1, Y: 1},
		{X: 2, Y: 1},
		{X: 1, Y: 0.5, Z: 1},
	}
	for i := range want {
		if !got[i].ApproxEqual(want[i], 1e-5) {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSkinBakeMalformedWeights(t *testing.T) {
	body := NewTransform("body")
	skin := &SkinnedSurface{
		Transform: body,
		Vertices:  []math.Vec3{{X: 1}, {Y: 1}, {Z: 1}, {X: 4}},
		Weights: []BoneWeight{
			{Index: [4]int{7}, Weight: [4]float32{1}},  // out of range
			{Index: [4]int{0}, Weight: [4]float32{1}},  // nil bone
			{Index: [4]int{-1}, Weight: [4]float32{1}}, // negative
		},
		Bones: []*Transform{nil},
	}
	got := skin.Bake(nil, math.One)
	if len(got) != len(skin.Vertices) {
		t.Fatalf("Bake() returned %d vertices, want %d", len(got), len(skin.Vertices))
	}
	for i, v := range skin.Vertices {
		if got[i] != v {
			t.Errorf("vertex %d = %v, want passthrough %v", i, got[i], v)
		}
	}
}

func TestSkinNilTransform(t *testing.T) {
	skin := &SkinnedSurface{Vertices: []math.Vec3{{X: 1}}}
	if got := skin.Bake(nil, math.One); len(got) != 0 {
		t.Errorf("Bake() without transform = %v, want empty", got)
	}
	if !skin.WorldBounds().IsEmpty() {
		t.Error("WorldBounds() without transform should be empty")
	}
}

func TestRenderBoundsReleasesBakeBuffers(t *testing.T) {
	n := NewNode("n")
	n.AddMesh(Cube(math.One))
	skin, _ := newRiggedSkin(n.Transform, Cube(math.Vec3{X: 4, Y: 4, Z: 4}))
	n.AddSkin(skin)

	before := OutstandingBakeBuffers()
	b, ok := n.RenderBounds()
	if !ok {
		t.Fatal("RenderBounds() ok = false")
	}
	if got := OutstandingBakeBuffers(); got != before {
		t.Errorf("outstanding bake buffers = %d, want %d", got, before)
	}
	if b.Max.X < 1.999 {
		t.Errorf("RenderBounds() = %v, want to include the skinned cube", b)
	}
}

func TestRenderBoundsEmptyNode(t *testing.T) {
	if _, ok := NewNode("empty").RenderBounds(); ok {
		t.Error("RenderBounds() ok = true for node without surfaces")
	}
}

func TestMeshWorldBoundsUsesTransformedLocalBox(t *testing.T) {
	n := NewNode("n")
	n.Transform.Position = math.Vec3{Z: 10}
	n.Transform.Scale = math.Vec3{X: 2, Y: 2, Z: 2}
	m := n.AddMesh(Cube(math.Vec3{X: 2, Y: 2, Z: 2}))

	got := m.WorldBounds()
	want := math.Box3{Min: math.Vec3{X: -2, Y: -2, Z: 8}, Max: math.Vec3{X: 2, Y: 2, Z: 12}}
	if !got.Min.ApproxEqual(want.Min, 1e-5) || !got.Max.ApproxEqual(want.Max, 1e-5) {
		t.Errorf("WorldBounds() = %v, want %v", got, want)
	}
}
