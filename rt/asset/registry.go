// Package asset owns the meshes and materials a scene refers to by name.
package asset

import (
	"errors"
	"fmt"

	"github.com/gekko3d/scenerender/logging"
	"github.com/gekko3d/scenerender/rt/gpu"
	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/google/uuid"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

var ErrDuplicate = errors.New("asset: name already registered")

// Builtin mesh names registered by RegisterBuiltins.
const (
	TriangleMesh = "triangleMesh"
	QuadMesh     = "quadMesh"
	CubeMesh     = "cubeMesh"
)

type meshEntry struct {
	id   AssetId
	name string
	mesh *mesh.Mesh
}

type materialEntry struct {
	id       AssetId
	name     string
	material *gpu.Material
}

// Registry holds meshes and materials in registration order. It is created
// explicitly and handed to whoever needs name lookups.
type Registry struct {
	meshes    []meshEntry
	materials []materialEntry
	byName    map[string]AssetId
	byId      map[AssetId]int

	log logging.Logger
}

func NewRegistry(log logging.Logger) *Registry {
	return &Registry{
		byName: map[string]AssetId{},
		byId:   map[AssetId]int{},
		log:    logging.OrNop(log),
	}
}

func meshKey(name string) string     { return "mesh:" + name }
func materialKey(name string) string { return "material:" + name }

// AddMesh registers m under name.
func (r *Registry) AddMesh(name string, m *mesh.Mesh) (AssetId, error) {
	if _, ok := r.byName[meshKey(name)]; ok {
		return "", fmt.Errorf("%w: mesh %q", ErrDuplicate, name)
	}
	id := makeAssetId()
	r.byName[meshKey(name)] = id
	r.byId[id] = len(r.meshes)
	r.meshes = append(r.meshes, meshEntry{id: id, name: name, mesh: m})
	r.log.Debugf("registered mesh %s (%d vertices) as %s", name, m.VertexCount(), id)
	return id, nil
}

// AddMaterial registers m under name.
func (r *Registry) AddMaterial(name string, m *gpu.Material) (AssetId, error) {
	if _, ok := r.byName[materialKey(name)]; ok {
		return "", fmt.Errorf("%w: material %q", ErrDuplicate, name)
	}
	id := makeAssetId()
	r.byName[materialKey(name)] = id
	r.byId[id] = len(r.materials)
	r.materials = append(r.materials, materialEntry{id: id, name: name, material: m})
	r.log.Debugf("registered material %s as %s", name, id)
	return id, nil
}

func (r *Registry) Mesh(name string) (*mesh.Mesh, bool) {
	id, ok := r.byName[meshKey(name)]
	if !ok {
		return nil, false
	}
	return r.meshes[r.byId[id]].mesh, true
}

func (r *Registry) Material(name string) (*gpu.Material, bool) {
	id, ok := r.byName[materialKey(name)]
	if !ok {
		return nil, false
	}
	return r.materials[r.byId[id]].material, true
}

// Meshes returns every registered mesh in registration order.
func (r *Registry) Meshes() []*mesh.Mesh {
	out := make([]*mesh.Mesh, len(r.meshes))
	for i, e := range r.meshes {
		out[i] = e.mesh
	}
	return out
}

// Materials returns every registered material in registration order.
func (r *Registry) Materials() []*gpu.Material {
	out := make([]*gpu.Material, len(r.materials))
	for i, e := range r.materials {
		out[i] = e.material
	}
	return out
}

// RegisterBuiltins uploads and registers the triangle, quad and cube meshes.
func (r *Registry) RegisterBuiltins(alloc mesh.Allocator) error {
	builtins := []struct {
		name     string
		vertices []float32
	}{
		{TriangleMesh, mesh.TriangleVertices},
		{QuadMesh, mesh.QuadVertices},
		{CubeMesh, mesh.CubeVertices},
	}
	for _, b := range builtins {
		m, err := mesh.FromVertices(alloc, b.name, b.vertices)
		if err != nil {
			return err
		}
		if _, err := r.AddMesh(b.name, m); err != nil {
			m.Release()
			return err
		}
	}
	return nil
}

// SwitchTopology switches every mesh to t in registration order. If one mesh
// fails, the meshes already switched are switched back and the error is
// returned, so all meshes always share one topology.
func (r *Registry) SwitchTopology(t mesh.Topology) error {
	for i, e := range r.meshes {
		prev := e.mesh.Topology()
		if err := e.mesh.SwitchTopology(t); err != nil {
			for _, done := range r.meshes[:i] {
				if rerr := done.mesh.SwitchTopology(prev); rerr != nil {
					r.log.Errorf("restoring %s to %s: %v", done.name, prev, rerr)
				}
			}
			return err
		}
	}
	return nil
}

// Release frees every device resource held by the registry.
func (r *Registry) Release() {
	for _, e := range r.meshes {
		e.mesh.Release()
	}
	for _, e := range r.materials {
		e.material.Release()
	}
	r.meshes = nil
	r.materials = nil
	r.byName = map[string]AssetId{}
	r.byId = map[AssetId]int{}
}
