package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const MaxPitch float32 = 89

// Camera is a Z-up first-person camera. Rotation holds Euler degrees with
// Y as pitch and Z as yaw.
type Camera struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3

	Forward mgl32.Vec3
	Right   mgl32.Vec3
	Up      mgl32.Vec3

	view mgl32.Mat4
}

func NewCamera(position, rotation mgl32.Vec3) *Camera {
	c := &Camera{Position: position, Rotation: rotation}
	c.Update()
	return c
}

// Update derives the basis vectors and the view matrix from the Euler angles.
// Yaw is wrapped into [0, 360) and pitch clamped to [-MaxPitch, MaxPitch]
// first, whatever set them.
func (c *Camera) Update() {
	c.Rotation[2] = wrapDegrees(c.Rotation[2])
	c.Rotation[1] = mgl32.Clamp(c.Rotation[1], -MaxPitch, MaxPitch)

	yaw := float64(DegToRad(c.Rotation.Z()))
	pitch := float64(DegToRad(c.Rotation.Y()))

	c.Forward = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
	}
	c.Right = c.Forward.Cross(WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Forward)

	c.view = mgl32.LookAtV(c.Position, c.Position.Add(c.Forward), c.Up)
}

func (c *Camera) View() mgl32.Mat4 {
	return c.view
}

// Ray is the camera's forward ray.
func (c *Camera) Ray() Ray {
	return Ray{Origin: c.Position, Direction: c.Forward}
}

// Spin turns the camera: yaw decreases by dx and wraps into [0, 360), pitch
// decreases by dy and is clamped to [-MaxPitch, MaxPitch].
func (c *Camera) Spin(dx, dy float32) {
	c.Rotation[2] = wrapDegrees(c.Rotation[2] - dx)
	c.Rotation[1] = mgl32.Clamp(c.Rotation[1]-dy, -MaxPitch, MaxPitch)
}

// Move advances along the camera's forward and right vectors and the world up axis.
func (c *Camera) Move(forward, right, up float32) {
	c.Position = c.Position.
		Add(c.Forward.Mul(forward)).
		Add(c.Right.Mul(right)).
		Add(WorldUp.Mul(up))
}
