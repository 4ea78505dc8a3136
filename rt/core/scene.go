package core

import (
	"errors"
	"fmt"

	"github.com/gekko3d/scenerender/rt/gpu"
	"github.com/gekko3d/scenerender/rt/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxObjects is the capacity of the flat transform buffer.
	MaxObjects   = 1024
	MatrixFloats = 16
)

var (
	ErrCapacity     = errors.New("scene: object capacity exceeded")
	ErrMissingAsset = errors.New("scene: missing mesh or material")
	ErrNoCamera     = errors.New("scene: description has no camera")
)

var (
	ResetPosition = mgl32.Vec3{-2, 0, 0.5}
	ResetRotation = mgl32.Vec3{0, 0, 0}
)

// Renderable is one drawn object. Its index in the scene is its draw slot.
type Renderable struct {
	Name     string
	Model    *Model
	Mesh     *mesh.Mesh
	Material *gpu.Material
}

// FrameSnapshot is the read-only per-frame view handed from Scene to the
// renderer. Transforms aliases the scene's buffer and is valid until the
// next Update.
type FrameSnapshot struct {
	View        mgl32.Mat4
	Eye         Ray
	Renderables []*Renderable
	Transforms  []float32
	Count       int
}

// ModelMatrix reads slot i of the transform buffer.
func (s FrameSnapshot) ModelMatrix(i int) mgl32.Mat4 {
	var m mgl32.Mat4
	copy(m[:], s.Transforms[i*MatrixFloats:(i+1)*MatrixFloats])
	return m
}

// Scene owns the camera and the ordered renderables.
type Scene struct {
	renderables []*Renderable
	player      *Camera
	objectData  []float32
	capacity    int
}

// NewScene creates an empty scene holding at most capacity objects. Values
// outside [1, MaxObjects] select MaxObjects.
func NewScene(capacity int) *Scene {
	if capacity <= 0 || capacity > MaxObjects {
		capacity = MaxObjects
	}
	return &Scene{
		player:     NewCamera(ResetPosition, ResetRotation),
		objectData: make([]float32, capacity*MatrixFloats),
		capacity:   capacity,
	}
}

func (s *Scene) Capacity() int { return s.capacity }

// AppendRenderable admits r at the next draw slot.
func (s *Scene) AppendRenderable(r *Renderable) error {
	if r == nil || r.Model == nil || r.Mesh == nil || r.Material == nil {
		return ErrMissingAsset
	}
	if len(s.renderables) >= s.capacity {
		return fmt.Errorf("%w: %d objects", ErrCapacity, s.capacity)
	}
	s.renderables = append(s.renderables, r)
	return nil
}

// RemoveRenderable removes the renderable at index i. Later objects shift
// down one draw slot.
func (s *Scene) RemoveRenderable(i int) bool {
	if i < 0 || i >= len(s.renderables) {
		return false
	}
	s.renderables = append(s.renderables[:i], s.renderables[i+1:]...)
	return true
}

func (s *Scene) Renderables() []*Renderable { return s.renderables }

func (s *Scene) Player() *Camera { return s.player }

func (s *Scene) SetPlayer(c *Camera) {
	s.player = c
	s.player.Update()
}

// Update recomputes every model matrix into its slot of the transform buffer
// and refreshes the camera.
func (s *Scene) Update() {
	for i, r := range s.renderables {
		m := r.Model.Update().Matrix()
		copy(s.objectData[i*MatrixFloats:], m[:])
	}
	s.player.Update()
}

func (s *Scene) MovePlayer(forward, right, up float32) {
	s.player.Move(forward, right, up)
}

func (s *Scene) SpinPlayer(dx, dy float32) {
	s.player.Spin(dx, dy)
}

// ResetPlayer restores the fixed start position and orientation.
func (s *Scene) ResetPlayer() {
	s.player.Position = ResetPosition
	s.player.Rotation = ResetRotation
	s.player.Update()
}

// Snapshot captures the state written by the last Update.
func (s *Scene) Snapshot() FrameSnapshot {
	n := len(s.renderables)
	return FrameSnapshot{
		View:        s.player.View(),
		Eye:         s.player.Ray(),
		Renderables: s.renderables,
		Transforms:  s.objectData[:n*MatrixFloats],
		Count:       n,
	}
}
