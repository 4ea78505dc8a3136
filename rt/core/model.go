package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ModelKind selects the per-update transform policy of a Model.
type ModelKind uint8

const (
	ModelStatic ModelKind = iota
	// ModelZSpin advances Rotation.Z by SpinRate degrees on every update.
	ModelZSpin
)

// Model places one object in the world. Matrix is only valid after Update.
type Model struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler degrees
	Scale    mgl32.Vec3
	Kind     ModelKind
	SpinRate float32

	matrix mgl32.Mat4
}

func NewModel(position mgl32.Vec3) *Model {
	return &Model{
		Position: position,
		Scale:    mgl32.Vec3{1, 1, 1},
		matrix:   mgl32.Ident4(),
	}
}

// NewSpinningModel returns a model that rotates about Z by rate degrees per update.
func NewSpinningModel(position mgl32.Vec3, rate float32) *Model {
	m := NewModel(position)
	m.Kind = ModelZSpin
	m.SpinRate = rate
	return m
}

// Update recomputes M = T * Rz * Ry * Rx * S.
func (m *Model) Update() *Model {
	if m.Kind == ModelZSpin {
		m.Rotation[2] = wrapDegrees(m.Rotation[2] + m.SpinRate)
	}

	translate := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	rotate := mgl32.HomogRotate3DZ(DegToRad(m.Rotation.Z())).
		Mul4(mgl32.HomogRotate3DY(DegToRad(m.Rotation.Y()))).
		Mul4(mgl32.HomogRotate3DX(DegToRad(m.Rotation.X())))
	scale := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())

	m.matrix = translate.Mul4(rotate).Mul4(scale)
	return m
}

// Matrix returns the transform computed by the last Update.
func (m *Model) Matrix() mgl32.Mat4 {
	return m.matrix
}
