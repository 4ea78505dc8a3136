package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraBasisOrthonormal(t *testing.T) {
	for _, rot := range []mgl32.Vec3{{0, 0, 0}, {0, 45, 30}, {0, -89, 270}, {0, 89, 359}} {
		c := NewCamera(mgl32.Vec3{1, 2, 3}, rot)

		assert.InDelta(t, 1, c.Forward.Len(), 1e-5)
		assert.InDelta(t, 1, c.Right.Len(), 1e-5)
		assert.InDelta(t, 1, c.Up.Len(), 1e-5)
		assert.InDelta(t, 0, c.Forward.Dot(c.Right), 1e-5)
		assert.InDelta(t, 0, c.Forward.Dot(c.Up), 1e-5)
		assert.InDelta(t, 0, c.Right.Dot(c.Up), 1e-5)
		assert.InDelta(t, 0, c.Right.Z(), 1e-5, "right stays horizontal")
		assert.GreaterOrEqual(t, c.Up.Z(), float32(0))
	}
}

func TestCameraDefaultLooksAlongX(t *testing.T) {
	c := NewCamera(ResetPosition, ResetRotation)
	assert.InDelta(t, 1, c.Forward.X(), 1e-6)
	assert.InDelta(t, -1, c.Right.Y(), 1e-6)
	assert.InDelta(t, 1, c.Up.Z(), 1e-6)

	// The view matrix maps the eye to the origin and forward to -Z.
	eye := c.View().Mul4x1(ResetPosition.Vec4(1))
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-5)
	ahead := c.View().Mul4x1(ResetPosition.Add(c.Forward).Vec4(1))
	assert.InDelta(t, -1, ahead.Z(), 1e-5)
}

func TestCameraSpin(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, mgl32.Vec3{})

	c.Spin(10, 5)
	assert.InDelta(t, 350, c.Rotation.Z(), 1e-4)
	assert.InDelta(t, -5, c.Rotation.Y(), 1e-4)

	c.Spin(-20, 0)
	assert.InDelta(t, 10, c.Rotation.Z(), 1e-4)

	for _, d := range []mgl32.Vec2{{1e6, 1e6}, {-1e6, -1e6}, {3e5, -7e5}, {0, 89}, {0, -178}} {
		c.Spin(d.X(), d.Y())
		assert.GreaterOrEqual(t, c.Rotation.Y(), -MaxPitch)
		assert.LessOrEqual(t, c.Rotation.Y(), MaxPitch)
		assert.GreaterOrEqual(t, c.Rotation.Z(), float32(0))
		assert.Less(t, c.Rotation.Z(), float32(360))
	}

	c.Rotation = mgl32.Vec3{}
	c.Spin(0, 1000)
	assert.Equal(t, -MaxPitch, c.Rotation.Y())
	c.Spin(0, -1000)
	assert.Equal(t, MaxPitch, c.Rotation.Y())
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 0, 90})
	c.Move(2, 0, 0)
	assert.InDelta(t, 2, c.Position.Y(), 1e-5)

	c.Move(0, 1, 0)
	assert.InDelta(t, 1, c.Position.X(), 1e-5)

	c.Move(0, 0, -3)
	assert.InDelta(t, -3, c.Position.Z(), 1e-5)
}

func TestCameraRay(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 180})
	r := c.Ray()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, r.Origin)
	assert.InDelta(t, -1, r.Direction.X(), 1e-6)
	assert.True(t, r.At(2).ApproxEqualThreshold(mgl32.Vec3{-1, 1, 1}, 1e-5))
}

func TestNewCameraNormalizesRotation(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 120, -30})
	assert.Equal(t, MaxPitch, c.Rotation.Y())
	assert.InDelta(t, 330, c.Rotation.Z(), 1e-4)

	assert.Greater(t, c.Forward.X(), float32(0), "forward stays in front")
	assert.Less(t, c.Right.Y(), float32(0), "right is not flipped")
	assert.Greater(t, c.Up.Z(), float32(0))

	c = NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, -500, 0})
	assert.Equal(t, -MaxPitch, c.Rotation.Y())
}
