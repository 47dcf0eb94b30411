package vmath

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/wireview/parameter"
)

// Vec3 is a float32 model-space vertex
// All operations return a new value; callers reassign
type Vec3 struct {
	X, Y, Z float32
}

// V3 constructs a Vec3
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// RotateX rotates around the X axis by angle radians, X is unchanged
func (v Vec3) RotateX(angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	return Vec3{
		X: v.X,
		Y: cos*v.Y - sin*v.Z,
		Z: sin*v.Y + cos*v.Z,
	}
}

// RotateY rotates around the Y axis by angle radians, Y is unchanged
func (v Vec3) RotateY(angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	return Vec3{
		X: cos*v.X - sin*v.Z,
		Y: v.Y,
		Z: sin*v.X + cos*v.Z,
	}
}

// RotateZ rotates around the Z axis by angle radians, Z is unchanged
func (v Vec3) RotateZ(angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	return Vec3{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
		Z: v.Z,
	}
}

// Scale multiplies every coordinate by factor
// Zero and negative factors are legal and collapse or mirror the point
func (v Vec3) Scale(factor float32) Vec3 {
	return Vec3{v.X * factor, v.Y * factor, v.Z * factor}
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Project applies perspective projection with the given field of view
// An exactly-zero divisor is replaced by ProjectionEpsilon; near-zero divisors
// still produce very large coordinates
func (v Vec3) Project(fov float32) Vec2 {
	zFov := v.Z + fov
	if zFov == 0 {
		zFov = parameter.ProjectionEpsilon
	}
	return Vec2{
		X: v.X * fov / zFov,
		Y: v.Y * fov / zFov,
	}
}
