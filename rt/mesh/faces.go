package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrFaceIndex = errors.New("mesh: face index out of range")

// Corner references a vertex by 1-based position, texcoord and normal
// indices. Zero means the attribute is absent.
type Corner struct {
	V  int
	VT int
	VN int
}

// Face is a convex polygon with three or more corners.
type Face []Corner

// FaceData is parsed polygon geometry.
type FaceData struct {
	Positions []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Normals   []mgl32.Vec3
	Faces     []Face
}

// FromFaces fan-triangulates faces into the same interleaved layout that
// FromVertices accepts and builds a mesh from it.
func FromFaces(alloc Allocator, name string, data FaceData) (*Mesh, error) {
	raw, err := Triangulate(data)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	return FromVertices(alloc, name, raw)
}

// Triangulate expands each face with k corners into k-2 triangles
// (c0, ci, ci+1).
func Triangulate(data FaceData) ([]float32, error) {
	var out []float32
	for fi, face := range data.Faces {
		if len(face) < 3 {
			continue
		}
		for i := 1; i+1 < len(face); i++ {
			for _, c := range [3]Corner{face[0], face[i], face[i+1]} {
				v, err := corner(data, c)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", fi, err)
				}
				out = append(out, v[:]...)
			}
		}
	}
	return out, nil
}

func corner(data FaceData, c Corner) ([FloatsPerVertex]float32, error) {
	var v [FloatsPerVertex]float32
	if c.V < 1 || c.V > len(data.Positions) {
		return v, fmt.Errorf("%w: position %d of %d", ErrFaceIndex, c.V, len(data.Positions))
	}
	p := data.Positions[c.V-1]
	v[0], v[1], v[2], v[3] = p.X(), p.Y(), p.Z(), 1

	if c.VT != 0 {
		if c.VT < 1 || c.VT > len(data.TexCoords) {
			return v, fmt.Errorf("%w: texcoord %d of %d", ErrFaceIndex, c.VT, len(data.TexCoords))
		}
		uv := data.TexCoords[c.VT-1]
		v[4], v[5] = uv.X(), uv.Y()
	}
	if c.VN != 0 && (c.VN < 1 || c.VN > len(data.Normals)) {
		return v, fmt.Errorf("%w: normal %d of %d", ErrFaceIndex, c.VN, len(data.Normals))
	}
	return v, nil
}
