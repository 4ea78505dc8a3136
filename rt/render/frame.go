package render

import (
	"time"

	"github.com/gekko3d/scenerender/rt/core"
	"github.com/gekko3d/scenerender/rt/gpu"
	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformFloats is the size of the camera uniform block: view then projection.
const UniformFloats = 2 * core.MatrixFloats

// Draw is one recorded draw call. FirstInstance equals the draw slot so
// shaders index the transform and highlight buffers by instance id.
type Draw struct {
	Name          string
	Mesh          *mesh.Mesh
	Material      *gpu.Material
	VertexCount   uint32
	FirstInstance uint32
}

// FramePlan is everything a frame writes and records, computed without
// touching the device.
type FramePlan struct {
	Pick       core.PickResult
	Highlights []float32
	Uniforms   [UniformFloats]float32
	Transforms []float32
	Draws      []Draw
	Skipped    int
	Clear      wgpu.Color
	Pipeline   Mode
}

// PlanFrame picks against the snapshot, builds the per-slot highlight values
// and the ordered draw list. Zero-vertex meshes get no draw call but keep
// their slot.
func PlanFrame(snap core.FrameSnapshot, mode Mode, clear wgpu.Color, projection mgl32.Mat4, now time.Duration) FramePlan {
	plan := FramePlan{
		Pick:       core.Pick(snap),
		Highlights: make([]float32, snap.Count),
		Transforms: snap.Transforms,
		Clear:      clear,
		Pipeline:   mode,
	}

	for i := range plan.Highlights {
		plan.Highlights[i] = 1.0
	}
	if plan.Pick.Hit {
		plan.Highlights[plan.Pick.Index] = HighlightPulse(now)
	}

	copy(plan.Uniforms[:core.MatrixFloats], snap.View[:])
	copy(plan.Uniforms[core.MatrixFloats:], projection[:])

	for i := 0; i < snap.Count; i++ {
		r := snap.Renderables[i]
		vc := r.Mesh.VertexCount()
		if vc == 0 {
			plan.Skipped++
			continue
		}
		plan.Draws = append(plan.Draws, Draw{
			Name:          r.Name,
			Mesh:          r.Mesh,
			Material:      r.Material,
			VertexCount:   vc,
			FirstInstance: uint32(i),
		})
	}
	return plan
}

// clipCorrection maps OpenGL clip depth [-w, w] onto the WebGPU range [0, w].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Projection is a right-handed perspective matrix with WebGPU depth range.
func Projection(fovDegrees, aspect, near, far float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return clipCorrection.Mul4(mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far))
}
