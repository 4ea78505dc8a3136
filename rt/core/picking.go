package core

import (
	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// PickResult is the closest renderable hit by a ray.
type PickResult struct {
	Hit      bool
	Index    int
	Distance float32
	Point    mgl32.Vec3
}

// NoPick is the result when nothing is hit.
var NoPick = PickResult{Index: -1}

// IntersectMesh tests ray against every triangle of m transformed by model
// and returns the closest hit distance.
func IntersectMesh(ray Ray, m *mesh.Mesh, model mgl32.Mat4) (float32, bool) {
	const stride = mesh.FloatsPerVertex
	tris := m.Triangles()

	closest := float32(0)
	hit := false
	for i := 0; i+3*stride <= len(tris); i += 3 * stride {
		a := transformPoint(model, tris[i:])
		b := transformPoint(model, tris[i+stride:])
		c := transformPoint(model, tris[i+2*stride:])

		if t, ok := IntersectRayTriangle(ray, a, b, c); ok && (!hit || t < closest) {
			closest = t
			hit = true
		}
	}
	return closest, hit
}

func transformPoint(model mgl32.Mat4, v []float32) mgl32.Vec3 {
	return model.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], v[3]}).Vec3()
}

// Pick casts the snapshot's eye ray against every renderable using the
// current frame's transforms.
func Pick(snap FrameSnapshot) PickResult {
	best := NoPick
	for i := 0; i < snap.Count; i++ {
		r := snap.Renderables[i]
		t, ok := IntersectMesh(snap.Eye, r.Mesh, snap.ModelMatrix(i))
		if ok && (!best.Hit || t < best.Distance) {
			best = PickResult{Hit: true, Index: i, Distance: t}
		}
	}
	if best.Hit {
		best.Point = snap.Eye.At(best.Distance)
	}
	return best
}
