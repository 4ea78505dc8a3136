package core

import (
	"fmt"
	"os"

	"github.com/gekko3d/scenerender/rt/gpu"
	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// BlankMaterial is used by objects that name no material.
const BlankMaterial = "blankMaterial"

// SceneData is a parsed scene description. JSON documents decode as YAML.
type SceneData struct {
	Author     string       `yaml:"author"`
	Version    string       `yaml:"version"`
	License    string       `yaml:"license"`
	Background []float64    `yaml:"background,omitempty"`
	Cameras    []CameraData `yaml:"cameras"`
	Objects    []ObjectData `yaml:"objects"`
}

type CameraData struct {
	Position []float32 `yaml:"position"`
	Rotation []float32 `yaml:"rotation"`
}

type ObjectData struct {
	Name         string    `yaml:"name"`
	Position     []float32 `yaml:"position"`
	Rotation     []float32 `yaml:"rotation"`
	Scale        []float32 `yaml:"scale"`
	MeshName     string    `yaml:"meshName"`
	MaterialName string    `yaml:"materialName"`
	// ZSpin, when non-zero, spins the object about Z by that many degrees per frame.
	ZSpin float32 `yaml:"zSpin,omitempty"`
}

// BackgroundColor returns the optional clear color.
func (d SceneData) BackgroundColor() ([4]float64, bool) {
	var c [4]float64
	if len(d.Background) < 3 {
		return c, false
	}
	c[3] = 1
	copy(c[:], d.Background)
	return c, true
}

// AssetLookup resolves mesh and material names.
type AssetLookup interface {
	Mesh(name string) (*mesh.Mesh, bool)
	Material(name string) (*gpu.Material, bool)
}

func LoadSceneData(path string) (*SceneData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSceneData(data)
}

func ParseSceneData(data []byte) (*SceneData, error) {
	var sd SceneData
	if err := yaml.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("parsing scene description: %w", err)
	}
	return &sd, nil
}

// InitFromData replaces the camera and appends the described objects in
// order. Unknown assets and capacity overflow abort the load.
func (s *Scene) InitFromData(data *SceneData, assets AssetLookup) error {
	if len(data.Cameras) == 0 {
		return ErrNoCamera
	}
	cam := data.Cameras[0]
	s.SetPlayer(NewCamera(vec3(cam.Position, mgl32.Vec3{}), vec3(cam.Rotation, mgl32.Vec3{})))

	for _, obj := range data.Objects {
		m, ok := assets.Mesh(obj.MeshName)
		if !ok {
			return fmt.Errorf("%w: object %q mesh %q", ErrMissingAsset, obj.Name, obj.MeshName)
		}
		matName := obj.MaterialName
		if matName == "" {
			matName = BlankMaterial
		}
		mat, ok := assets.Material(matName)
		if !ok {
			return fmt.Errorf("%w: object %q material %q", ErrMissingAsset, obj.Name, matName)
		}

		pos := vec3(obj.Position, mgl32.Vec3{})
		model := NewModel(pos)
		if obj.ZSpin != 0 {
			model = NewSpinningModel(pos, obj.ZSpin)
		}
		model.Rotation = vec3(obj.Rotation, mgl32.Vec3{})
		model.Scale = vec3(obj.Scale, mgl32.Vec3{1, 1, 1})
		if model.Scale == (mgl32.Vec3{}) {
			model.Scale = mgl32.Vec3{1, 1, 1}
		}

		if err := s.AppendRenderable(&Renderable{Name: obj.Name, Model: model, Mesh: m, Material: mat}); err != nil {
			return fmt.Errorf("object %q: %w", obj.Name, err)
		}
	}
	return nil
}

func vec3(v []float32, def mgl32.Vec3) mgl32.Vec3 {
	if len(v) < 3 {
		return def
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}
