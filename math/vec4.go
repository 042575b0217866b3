package math

import "glsafe/glsl"

// Vec4 holds homogeneous points and the clip-space rows used for frustum
// planes.
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// MulMat transforms v as a row vector: v * m.
func (v Vec4) MulMat(m Mat4) Vec4 {
	var out [4]float32
	for j := range out {
		out[j] = v.X*m[0][j] + v.Y*m[1][j] + v.Z*m[2][j] + v.W*m[3][j]
	}
	return Vec4{out[0], out[1], out[2], out[3]}
}

// ToVec3 drops W.
func (v Vec4) ToVec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// ToVec3DivW is the perspective divide. Points at infinity keep their
// direction.
func (v Vec4) ToVec3DivW() Vec3 {
	if v.W == 0 {
		return v.ToVec3()
	}
	return v.ToVec3().Div(v.W)
}

func (*Vec4) AttribFormat() glsl.AttribFormat { return floatAttrib(4, 1) }
func (*Vec4) UniformType() glsl.Type          { return glsl.Vec(glsl.KindFloat, 4) }

func (v *Vec4) UniformValue(dst *glsl.Value) {
	dst.Floats[0], dst.Floats[1], dst.Floats[2], dst.Floats[3] = v.X, v.Y, v.Z, v.W
}
