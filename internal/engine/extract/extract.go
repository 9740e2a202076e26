// Package extract gathers the world-space vertices of an object hierarchy.
package extract

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-bbox/internal/engine/scene"
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// bake is swapped in tests.
var bake = (*scene.SkinnedSurface).Bake

// Extractor collects vertices from static and skinned surfaces. It holds
// no per-call state and may be shared between goroutines.
type Extractor struct {
	log *zap.Logger
}

// New creates an extractor. A nil logger disables logging.
func New(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Extract returns the world-space vertices of obj and all its
// descendants. Order is unspecified. Objects without surfaces yield an
// empty slice.
func (e *Extractor) Extract(obj scene.Object) []math.Vec3 {
	return e.AppendTo(nil, obj)
}

// AppendTo is like Extract but appends to dst.
func (e *Extractor) AppendTo(dst []math.Vec3, obj scene.Object) []math.Vec3 {
	if obj == nil {
		return dst
	}

	if hs, ok := obj.(scene.HasSurfaces); ok {
		meshes, skins := hs.Surfaces()
		for _, m := range meshes {
			dst = e.appendMesh(dst, m)
		}
		for _, s := range skins {
			dst = e.appendSkin(dst, s)
		}
	}

	if hc, ok := obj.(scene.HasChildren); ok {
		for _, c := range hc.Children() {
			dst = e.AppendTo(dst, c)
		}
	}
	return dst
}

func (e *Extractor) appendMesh(dst []math.Vec3, m *scene.MeshSurface) []math.Vec3 {
	if m == nil || m.Transform == nil {
		e.log.Warn("skipping mesh without transform")
		return dst
	}
	world := m.Transform.LocalToWorld()
	for _, v := range m.Vertices {
		dst = append(dst, world.TransformPoint(v))
	}
	return dst
}

// appendSkin bakes at unit scale into pooled scratch space, then applies
// the full world transform once.
func (e *Extractor) appendSkin(dst []math.Vec3, s *scene.SkinnedSurface) []math.Vec3 {
	if s == nil || s.Transform == nil {
		e.log.Warn("skipping skinned surface without transform")
		return dst
	}

	buf := scene.AcquireBakeBuffer()
	defer buf.Release()

	buf.Vertices = bake(s, buf.Vertices, math.One)
	world := s.Transform.LocalToWorld()
	for _, v := range buf.Vertices {
		dst = append(dst, world.TransformPoint(v))
	}
	return dst
}
