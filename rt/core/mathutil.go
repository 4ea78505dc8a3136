package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon bounds the ray/triangle determinant, relative to the edge lengths,
// and the minimum hit distance.
const Epsilon float32 = 1e-6

var WorldUp = mgl32.Vec3{0, 0, 1}

func DegToRad(deg float32) float32 { return mgl32.DegToRad(deg) }
func RadToDeg(rad float32) float32 { return mgl32.RadToDeg(rad) }

// Ray is a half-line starting at Origin. Direction is expected to be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// VecsToRotation recovers Euler angles in degrees (X roll, Y pitch, Z yaw)
// from the forward and up vectors of an orthonormal Z-up basis.
func VecsToRotation(forward, up mgl32.Vec3) mgl32.Vec3 {
	yaw := math.Atan2(float64(forward.Y()), float64(forward.X()))
	pitch := math.Asin(float64(mgl32.Clamp(forward.Z(), -1, 1)))

	var roll float64
	w0 := mgl32.Vec3{-forward.Y(), forward.X(), 0}
	u0 := forward.Cross(w0)
	if wl, ul := w0.Len(), u0.Len(); wl > Epsilon && ul > Epsilon {
		roll = math.Atan2(float64(w0.Dot(up)/wl), float64(u0.Dot(up)/ul))
	}

	return mgl32.Vec3{
		RadToDeg(float32(roll)),
		RadToDeg(float32(pitch)),
		RadToDeg(float32(yaw)),
	}
}

// IntersectRayTriangle runs the Möller-Trumbore test of ray against the
// triangle (a, b, c). It reports the ray parameter of the hit point. Rays
// parallel to the triangle plane and hits at t <= Epsilon are misses. The
// parallel test scales with the triangle so small triangles still hit.
func IntersectRayTriangle(ray Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)

	rxe2 := ray.Direction.Cross(e2)
	det := e1.Dot(rxe2)
	if tol := Epsilon * e1.Len() * e2.Len(); det > -tol && det < tol {
		return 0, false
	}

	invDet := 1 / det
	s := ray.Origin.Sub(a)
	u := invDet * s.Dot(rxe2)
	if u < 0 || u > 1 {
		return 0, false
	}

	sxe1 := s.Cross(e1)
	v := invDet * ray.Direction.Dot(sxe1)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := invDet * e2.Dot(sxe1)
	if t <= Epsilon {
		return 0, false
	}
	return t, true
}

func wrapDegrees(deg float32) float32 {
	deg = float32(math.Mod(float64(deg), 360))
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
