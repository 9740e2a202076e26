package scene

import (
	"sync"
	"sync/atomic"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// MeshSurface is a fixed set of local-space vertices placed in the world by
// Transform.
type MeshSurface struct {
	Transform *Transform
	Vertices  []math.Vec3
}

// WorldBounds returns the local bounds carried into world space. Like a
// renderer's bounds this is the box around the transformed local box, not
// the tight box around the transformed vertices.
func (m *MeshSurface) WorldBounds() math.Box3 {
	if m == nil || m.Transform == nil {
		return math.EmptyBox3()
	}
	return math.BoxOf(m.Vertices).Transform(m.Transform.LocalToWorld())
}

// BoneWeight binds one vertex to up to four bones. Unused slots carry a
// zero weight.
type BoneWeight struct {
	Index  [4]int
	Weight [4]float32
}

// SkinnedSurface is a deformable mesh: its vertices follow Bones and must
// be baked every frame.
type SkinnedSurface struct {
	Transform *Transform
	Vertices  []math.Vec3
	Weights   []BoneWeight
	Bones     []*Transform
	// BindPoses maps mesh space into each bone's space at bind time.
	// Missing entries are treated as identity.
	BindPoses []math.Mat4
}

// ResetBindPoses captures the current pose as the bind pose, so that a
// bake right now returns the vertices unchanged.
func (s *SkinnedSurface) ResetBindPoses() {
	if s.Transform == nil {
		return
	}
	root := s.Transform.WorldMatrixWithScale(math.One)
	s.BindPoses = make([]math.Mat4, len(s.Bones))
	for i, b := range s.Bones {
		if b == nil {
			s.BindPoses[i] = math.Identity()
			continue
		}
		s.BindPoses[i] = b.LocalToWorld().Inverse().Mul(root)
	}
}

// Bake evaluates the mesh at the current bone pose and appends the
// result to dst in the surface's local space. The surface is treated as
// having the given scale instead of its own; pass math.One so that the
// caller's world transform applies the real scale exactly once.
//
// Vertices without a usable weight are passed through unchanged.
func (s *SkinnedSurface) Bake(dst []math.Vec3, scale math.Vec3) []math.Vec3 {
	if s == nil || s.Transform == nil {
		return dst
	}
	inv := s.Transform.WorldMatrixWithScale(scale).Inverse()

	skin := make([]math.Mat4, len(s.Bones))
	valid := make([]bool, len(s.Bones))
	for i, b := range s.Bones {
		if b == nil {
			continue
		}
		bind := math.Identity()
		if i < len(s.BindPoses) {
			bind = s.BindPoses[i]
		}
		skin[i] = inv.Mul(b.LocalToWorld()).Mul(bind)
		valid[i] = true
	}

	for vi, v := range s.Vertices {
		if vi >= len(s.Weights) {
			dst = append(dst, v)
			continue
		}
		w := s.Weights[vi]

		var total float32
		for k := 0; k < 4; k++ {
			if w.Weight[k] > 0 && w.Index[k] >= 0 && w.Index[k] < len(valid) && valid[w.Index[k]] {
				total += w.Weight[k]
			}
		}
		if total == 0 {
			dst = append(dst, v)
			continue
		}

		var p math.Vec3
		for k := 0; k < 4; k++ {
			bi := w.Index[k]
			if w.Weight[k] <= 0 || bi < 0 || bi >= len(valid) || !valid[bi] {
				continue
			}
			p = p.Add(skin[bi].TransformPoint(v).Scale(w.Weight[k] / total))
		}
		dst = append(dst, p)
	}
	return dst
}

// WorldBounds returns the bounds of the current pose in world space.
func (s *SkinnedSurface) WorldBounds() math.Box3 {
	if s == nil || s.Transform == nil {
		return math.EmptyBox3()
	}
	buf := AcquireBakeBuffer()
	defer buf.Release()

	buf.Vertices = s.Bake(buf.Vertices, math.One)
	return math.BoxOf(buf.Vertices).Transform(s.Transform.LocalToWorld())
}

// BakeBuffer is scratch space for one bake. It must be released once the
// baked vertices have been consumed.
type BakeBuffer struct {
	Vertices []math.Vec3
}

var (
	bakePool = sync.Pool{
		New: func() any { return &BakeBuffer{Vertices: make([]math.Vec3, 0, 256)} },
	}
	bakeOutstanding atomic.Int64
)

// AcquireBakeBuffer takes an empty buffer from the pool.
func AcquireBakeBuffer() *BakeBuffer {
	bakeOutstanding.Add(1)
	b := bakePool.Get().(*BakeBuffer)
	b.Vertices = b.Vertices[:0]
	return b
}

// Release returns the buffer to the pool. The buffer must not be used
// afterwards.
func (b *BakeBuffer) Release() {
	b.Vertices = b.Vertices[:0]
	bakePool.Put(b)
	bakeOutstanding.Add(-1)
}

// OutstandingBakeBuffers reports how many buffers are currently acquired.
func OutstandingBakeBuffers() int64 {
	return bakeOutstanding.Load()
}
