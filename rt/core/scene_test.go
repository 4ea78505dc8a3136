package core

import (
	"testing"

	"github.com/gekko3d/scenerender/rt/gpu"
	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMesh(t *testing.T, name string, raw []float32) *mesh.Mesh {
	t.Helper()
	m, err := mesh.FromVertices(nil, name, raw)
	require.NoError(t, err)
	return m
}

func testRenderable(t *testing.T, pos mgl32.Vec3) *Renderable {
	return &Renderable{
		Name:     "tri",
		Model:    NewModel(pos),
		Mesh:     testMesh(t, "triangle", mesh.TriangleVertices),
		Material: &gpu.Material{Name: BlankMaterial},
	}
}

type fakeAssets struct {
	meshes    map[string]*mesh.Mesh
	materials map[string]*gpu.Material
}

func (f fakeAssets) Mesh(name string) (*mesh.Mesh, bool) {
	m, ok := f.meshes[name]
	return m, ok
}

func (f fakeAssets) Material(name string) (*gpu.Material, bool) {
	m, ok := f.materials[name]
	return m, ok
}

func TestSceneTransformSlots(t *testing.T) {
	const capacity = 8
	for n := 0; n <= capacity; n++ {
		s := NewScene(capacity)
		for i := 0; i < n; i++ {
			r := testRenderable(t, mgl32.Vec3{float32(i), 0, 0})
			r.Model.Rotation = mgl32.Vec3{0, 0, float32(i * 10)}
			require.NoError(t, s.AppendRenderable(r))
		}
		s.Update()
		snap := s.Snapshot()

		require.Equal(t, n, snap.Count)
		require.Len(t, snap.Transforms, n*MatrixFloats)
		for i := 0; i < n; i++ {
			assert.Equal(t, s.Renderables()[i].Model.Matrix(), snap.ModelMatrix(i), "slot %d of %d", i, n)
		}
	}
}

func TestSceneCapacity(t *testing.T) {
	s := NewScene(2)
	require.NoError(t, s.AppendRenderable(testRenderable(t, mgl32.Vec3{})))
	require.NoError(t, s.AppendRenderable(testRenderable(t, mgl32.Vec3{})))

	err := s.AppendRenderable(testRenderable(t, mgl32.Vec3{}))
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Len(t, s.Renderables(), 2)

	assert.Equal(t, MaxObjects, NewScene(0).Capacity())
	assert.Equal(t, MaxObjects, NewScene(MaxObjects+1).Capacity())
}

func TestSceneRejectsIncompleteRenderable(t *testing.T) {
	s := NewScene(4)
	r := testRenderable(t, mgl32.Vec3{})
	r.Material = nil
	assert.ErrorIs(t, s.AppendRenderable(r), ErrMissingAsset)
	assert.ErrorIs(t, s.AppendRenderable(nil), ErrMissingAsset)
	assert.Empty(t, s.Renderables())
}

func TestSceneRemoveRenderable(t *testing.T) {
	s := NewScene(4)
	var rs []*Renderable
	for i := 0; i < 3; i++ {
		r := testRenderable(t, mgl32.Vec3{float32(i), 0, 0})
		rs = append(rs, r)
		require.NoError(t, s.AppendRenderable(r))
	}

	assert.False(t, s.RemoveRenderable(3))
	assert.False(t, s.RemoveRenderable(-1))
	assert.True(t, s.RemoveRenderable(1))
	assert.Equal(t, []*Renderable{rs[0], rs[2]}, s.Renderables())

	s.Update()
	snap := s.Snapshot()
	assert.Equal(t, rs[2].Model.Matrix(), snap.ModelMatrix(1))
}

func TestSceneResetPlayer(t *testing.T) {
	s := NewScene(1)
	s.MovePlayer(3, 2, 1)
	s.SpinPlayer(45, 30)
	s.Update()
	assert.NotEqual(t, ResetPosition, s.Player().Position)

	s.ResetPlayer()
	assert.Equal(t, ResetPosition, s.Player().Position)
	assert.Equal(t, ResetRotation, s.Player().Rotation)
	assert.Equal(t, NewCamera(ResetPosition, ResetRotation).View(), s.Snapshot().View)
}

func TestSceneSpinningObject(t *testing.T) {
	s := NewScene(1)
	r := testRenderable(t, mgl32.Vec3{})
	r.Model = NewSpinningModel(mgl32.Vec3{}, 90)
	require.NoError(t, s.AppendRenderable(r))

	s.Update()
	first := s.Snapshot().ModelMatrix(0)
	s.Update()
	second := s.Snapshot().ModelMatrix(0)

	assert.NotEqual(t, first, second)
	assert.InDelta(t, 180, r.Model.Rotation.Z(), 1e-4)
}

const sceneJSON = `{
  "author": "someone",
  "version": "1",
  "license": "MIT",
  "background": [0.1, 0.2, 0.3],
  "cameras": [{"position": [-5, 0, 1], "rotation": [0, 10, 20]}],
  "objects": [
    {"name": "floor", "position": [0, 0, 0], "rotation": [0, 0, 0], "scale": [10, 10, 1], "meshName": "quadMesh", "materialName": "grass"},
    {"name": "spinner", "position": [0, 0, 1], "rotation": [0, 0, 0], "scale": [0, 0, 0], "meshName": "triangleMesh", "zSpin": 2}
  ]
}`

func TestInitFromData(t *testing.T) {
	data, err := ParseSceneData([]byte(sceneJSON))
	require.NoError(t, err)

	bg, ok := data.BackgroundColor()
	require.True(t, ok)
	assert.Equal(t, [4]float64{0.1, 0.2, 0.3, 1}, bg)

	assets := fakeAssets{
		meshes: map[string]*mesh.Mesh{
			"quadMesh":     testMesh(t, "quad", mesh.QuadVertices),
			"triangleMesh": testMesh(t, "triangle", mesh.TriangleVertices),
		},
		materials: map[string]*gpu.Material{
			"grass":       {Name: "grass"},
			BlankMaterial: {Name: BlankMaterial},
		},
	}

	s := NewScene(4)
	require.NoError(t, s.InitFromData(data, assets))

	assert.Equal(t, mgl32.Vec3{-5, 0, 1}, s.Player().Position)
	assert.Equal(t, mgl32.Vec3{0, 10, 20}, s.Player().Rotation)

	rs := s.Renderables()
	require.Len(t, rs, 2)
	assert.Equal(t, "floor", rs[0].Name)
	assert.Equal(t, mgl32.Vec3{10, 10, 1}, rs[0].Model.Scale)
	assert.Equal(t, ModelStatic, rs[0].Model.Kind)
	assert.Same(t, assets.materials["grass"], rs[0].Material)

	assert.Equal(t, ModelZSpin, rs[1].Model.Kind)
	assert.Equal(t, float32(2), rs[1].Model.SpinRate)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, rs[1].Model.Scale)
	assert.Same(t, assets.materials[BlankMaterial], rs[1].Material)
}

func TestInitFromDataErrors(t *testing.T) {
	assets := fakeAssets{
		meshes:    map[string]*mesh.Mesh{"triangleMesh": testMesh(t, "triangle", mesh.TriangleVertices)},
		materials: map[string]*gpu.Material{BlankMaterial: {Name: BlankMaterial}},
	}

	t.Run("no camera", func(t *testing.T) {
		err := NewScene(4).InitFromData(&SceneData{}, assets)
		assert.ErrorIs(t, err, ErrNoCamera)
	})

	t.Run("unknown mesh", func(t *testing.T) {
		data := &SceneData{
			Cameras: []CameraData{{}},
			Objects: []ObjectData{{Name: "x", MeshName: "teapot"}},
		}
		assert.ErrorIs(t, NewScene(4).InitFromData(data, assets), ErrMissingAsset)
	})

	t.Run("unknown material", func(t *testing.T) {
		data := &SceneData{
			Cameras: []CameraData{{}},
			Objects: []ObjectData{{Name: "x", MeshName: "triangleMesh", MaterialName: "marble"}},
		}
		assert.ErrorIs(t, NewScene(4).InitFromData(data, assets), ErrMissingAsset)
	})

	t.Run("too many objects", func(t *testing.T) {
		data := &SceneData{Cameras: []CameraData{{}}}
		for i := 0; i < 3; i++ {
			data.Objects = append(data.Objects, ObjectData{MeshName: "triangleMesh"})
		}
		assert.ErrorIs(t, NewScene(2).InitFromData(data, assets), ErrCapacity)
	})
}

func TestParseSceneDataYAML(t *testing.T) {
	data, err := ParseSceneData([]byte(`
cameras:
  - position: [1, 2, 3]
objects:
  - name: box
    meshName: cubeMesh
`))
	require.NoError(t, err)
	require.Len(t, data.Cameras, 1)
	assert.Equal(t, []float32{1, 2, 3}, data.Cameras[0].Position)
	require.Len(t, data.Objects, 1)
	assert.Equal(t, "cubeMesh", data.Objects[0].MeshName)
	_, ok := data.BackgroundColor()
	assert.False(t, ok)

	_, err = ParseSceneData([]byte("cameras: {"))
	assert.Error(t, err)
}

func TestInitFromDataClampsCameraPitch(t *testing.T) {
	data, err := ParseSceneData([]byte(`{"cameras": [{"position": [0, 0, 0], "rotation": [0, 120, 0]}]}`))
	require.NoError(t, err)

	s := NewScene(1)
	require.NoError(t, s.InitFromData(data, fakeAssets{}))

	cam := s.Player()
	assert.Equal(t, MaxPitch, cam.Rotation.Y())
	assert.Greater(t, cam.Forward.X(), float32(0))
	assert.InDelta(t, -1, cam.Right.Y(), 1e-5)
}
