package math

import "glsafe/glsl"

// Matrix and integer vector attribute formats. Float vectors carry
// theirs next to their arithmetic.

func floatAttrib(n, slots int) glsl.AttribFormat {
	return glsl.AttribFormat{Component: glsl.ComponentFloat, Size: n, Slots: slots}
}

func (*Mat2) AttribFormat() glsl.AttribFormat { return floatAttrib(2, 2) }
func (*Mat3) AttribFormat() glsl.AttribFormat { return floatAttrib(3, 3) }
func (*Mat4) AttribFormat() glsl.AttribFormat { return floatAttrib(4, 4) }

func intAttrib(c glsl.Component, n int) glsl.AttribFormat {
	return glsl.AttribFormat{Component: c, Size: n, Integer: true}
}

func (*IVec2) AttribFormat() glsl.AttribFormat { return intAttrib(glsl.ComponentInt, 2) }
func (*IVec3) AttribFormat() glsl.AttribFormat { return intAttrib(glsl.ComponentInt, 3) }
func (*IVec4) AttribFormat() glsl.AttribFormat { return intAttrib(glsl.ComponentInt, 4) }
func (*UVec2) AttribFormat() glsl.AttribFormat { return intAttrib(glsl.ComponentUint, 2) }
func (*UVec3) AttribFormat() glsl.AttribFormat { return intAttrib(glsl.ComponentUint, 3) }
func (*UVec4) AttribFormat() glsl.AttribFormat { return intAttrib(glsl.ComponentUint, 4) }

func (*Mat2) UniformType() glsl.Type { return glsl.Mat(2, 2) }
func (*Mat3) UniformType() glsl.Type { return glsl.Mat(3, 3) }
func (*Mat4) UniformType() glsl.Type { return glsl.Mat(4, 4) }

func (m *Mat2) UniformValue(dst *glsl.Value) {
	for i := 0; i < 2; i++ {
		copy(dst.Floats[i*2:], m[i][:])
	}
}

func (m *Mat3) UniformValue(dst *glsl.Value) {
	for i := 0; i < 3; i++ {
		copy(dst.Floats[i*3:], m[i][:])
	}
}

func (m *Mat4) UniformValue(dst *glsl.Value) {
	for i := 0; i < 4; i++ {
		copy(dst.Floats[i*4:], m[i][:])
	}
}

func (*IVec2) UniformType() glsl.Type { return glsl.Vec(glsl.KindInt, 2) }
func (*IVec3) UniformType() glsl.Type { return glsl.Vec(glsl.KindInt, 3) }
func (*IVec4) UniformType() glsl.Type { return glsl.Vec(glsl.KindInt, 4) }
func (*UVec2) UniformType() glsl.Type { return glsl.Vec(glsl.KindUint, 2) }
func (*UVec3) UniformType() glsl.Type { return glsl.Vec(glsl.KindUint, 3) }
func (*UVec4) UniformType() glsl.Type { return glsl.Vec(glsl.KindUint, 4) }

func (v *IVec2) UniformValue(dst *glsl.Value) { dst.Ints[0], dst.Ints[1] = v.X, v.Y }
func (v *IVec3) UniformValue(dst *glsl.Value) { dst.Ints[0], dst.Ints[1], dst.Ints[2] = v.X, v.Y, v.Z }
func (v *IVec4) UniformValue(dst *glsl.Value) {
	dst.Ints[0], dst.Ints[1], dst.Ints[2], dst.Ints[3] = v.X, v.Y, v.Z, v.W
}
func (v *UVec2) UniformValue(dst *glsl.Value) { dst.Uints[0], dst.Uints[1] = v.X, v.Y }
func (v *UVec3) UniformValue(dst *glsl.Value) {
	dst.Uints[0], dst.Uints[1], dst.Uints[2] = v.X, v.Y, v.Z
}
func (v *UVec4) UniformValue(dst *glsl.Value) {
	dst.Uints[0], dst.Uints[1], dst.Uints[2], dst.Uints[3] = v.X, v.Y, v.Z, v.W
}
