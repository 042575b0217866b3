package math

import (
	"github.com/chewxy/math32"

	"glsafe/glsl"
)

type Vec3 struct {
	X, Y, Z float32
}

// Axis vectors in the right-handed, Y-up world the scene uses.
var (
	Vec3Zero  = Vec3{}
	Vec3One   = Vec3{1, 1, 1}
	Vec3Up    = Vec3{Y: 1}
	Vec3Right = Vec3{X: 1}
	Vec3Front = Vec3{Z: 1}
)

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Div(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) LengthSqr() float32 { return v.Dot(v) }

func (v Vec3) Length() float32 { return math32.Sqrt(v.LengthSqr()) }

func (v Vec3) Distance(other Vec3) float32 { return v.Sub(other).Length() }

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l > 0 {
		return v.Div(l)
	}
	return v
}

func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

func (*Vec3) AttribFormat() glsl.AttribFormat { return floatAttrib(3, 1) }
func (*Vec3) UniformType() glsl.Type          { return glsl.Vec(glsl.KindFloat, 3) }

func (v *Vec3) UniformValue(dst *glsl.Value) {
	dst.Floats[0], dst.Floats[1], dst.Floats[2] = v.X, v.Y, v.Z
}
