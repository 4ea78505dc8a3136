package render

import (
	"fmt"
	"strings"

	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/cogentcore/webgpu/wgpu"
)

// Mode selects the pipeline and mesh topology used to draw the scene.
type Mode uint8

const (
	ModeUnlit Mode = iota
	ModeWireframe
	modeCount
)

var (
	UnlitClear     = wgpu.Color{R: 0.8, G: 0.8, B: 0.8, A: 1}
	WireframeClear = wgpu.Color{R: 0, G: 0, B: 0, A: 1}
)

func (m Mode) String() string {
	switch m {
	case ModeUnlit:
		return "unlit"
	case ModeWireframe:
		return "wireframe"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "unlit", "":
		return ModeUnlit, nil
	case "wireframe":
		return ModeWireframe, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", s)
	}
}

// Topology is the mesh topology the mode's pipeline consumes.
func (m Mode) Topology() mesh.Topology {
	if m == ModeWireframe {
		return mesh.TopologyLines
	}
	return mesh.TopologyTriangles
}

func (m Mode) primitive() wgpu.PrimitiveTopology {
	if m == ModeWireframe {
		return wgpu.PrimitiveTopologyLineList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

// ClearColor is the mode's background. A scene background replaces the
// unlit color only, so the wireframe switch stays visible.
func (m Mode) ClearColor(background *wgpu.Color) wgpu.Color {
	if m == ModeWireframe {
		return WireframeClear
	}
	if background != nil {
		return *background
	}
	return UnlitClear
}
