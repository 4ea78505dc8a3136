package asset

import (
	"fmt"
	"os"

	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// faceFile is the on-disk form of parsed polygon geometry. Corners are
// [v, vt, vn] triples of 1-based indices; trailing entries may be omitted.
type faceFile struct {
	Positions [][]float32 `yaml:"positions"`
	TexCoords [][]float32 `yaml:"texcoords"`
	Normals   [][]float32 `yaml:"normals"`
	Faces     [][][]int   `yaml:"faces"`
}

// ParseFaceData decodes a JSON or YAML face document.
func ParseFaceData(data []byte) (mesh.FaceData, error) {
	var f faceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return mesh.FaceData{}, fmt.Errorf("parsing face data: %w", err)
	}

	var out mesh.FaceData
	for i, p := range f.Positions {
		if len(p) < 3 {
			return mesh.FaceData{}, fmt.Errorf("position %d: want 3 components, got %d", i+1, len(p))
		}
		out.Positions = append(out.Positions, mgl32.Vec3{p[0], p[1], p[2]})
	}
	for i, t := range f.TexCoords {
		if len(t) < 2 {
			return mesh.FaceData{}, fmt.Errorf("texcoord %d: want 2 components, got %d", i+1, len(t))
		}
		out.TexCoords = append(out.TexCoords, mgl32.Vec2{t[0], t[1]})
	}
	for i, n := range f.Normals {
		if len(n) < 3 {
			return mesh.FaceData{}, fmt.Errorf("normal %d: want 3 components, got %d", i+1, len(n))
		}
		out.Normals = append(out.Normals, mgl32.Vec3{n[0], n[1], n[2]})
	}
	for _, face := range f.Faces {
		var mf mesh.Face
		for _, c := range face {
			var corner mesh.Corner
			if len(c) > 0 {
				corner.V = c[0]
			}
			if len(c) > 1 {
				corner.VT = c[1]
			}
			if len(c) > 2 {
				corner.VN = c[2]
			}
			mf = append(mf, corner)
		}
		out.Faces = append(out.Faces, mf)
	}
	return out, nil
}

// LoadMesh reads a face file, builds the mesh and registers it under name.
func (r *Registry) LoadMesh(alloc mesh.Allocator, name, path string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	faces, err := ParseFaceData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := mesh.FromFaces(alloc, name, faces)
	if err != nil {
		return nil, err
	}
	if _, err := r.AddMesh(name, m); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}
