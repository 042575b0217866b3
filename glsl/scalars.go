package glsl

// Scalar and packed vertex component types. Vector and matrix types with
// float components live in the math package.

type (
	Float float32
	Int   int32
	Uint  uint32
	Bool  bool
)

func (*Float) AttribFormat() AttribFormat {
	return AttribFormat{Component: ComponentFloat, Size: 1}
}
func (*Float) UniformType() Type { return Scalar(KindFloat) }
func (f *Float) UniformValue(v *Value) { v.Floats[0] = float32(*f) }
func (*Int) AttribFormat() AttribFormat { return AttribFormat{Component: ComponentInt, Size: 1, Integer: true} }
func (*Int) UniformType() Type { return Scalar(KindInt) }
func (i *Int) UniformValue(v *Value) { v.Ints[0] = int32(*i) }
func (*Uint) AttribFormat() AttribFormat { return AttribFormat{Component: ComponentUint, Size: 1, Integer: true} }
func (*Uint) UniformType() Type { return Scalar(KindUint) }
func (u *Uint) UniformValue(v *Value) { v.Uints[0] = uint32(*u) }

// Bool is a uniform-only type; GLSL has no boolean vertex inputs.
func (*Bool) UniformType() Type { return Scalar(KindBool) }
func (b *Bool) UniformValue(v *Value) {
	v.Ints[0] = 0
	if *b {
		v.Ints[0] = 1
	}
}

// Normalized integer vectors. The shader sees them as float vectors in
// [0,1] (unsigned) or [-1,1] (signed).
type (
	Unorm8x2  [2]uint8
	Unorm8x3  [3]uint8
	Unorm8x4  [4]uint8
	Snorm8x4  [4]int8
	Unorm16x2 [2]uint16
	Unorm16x4 [4]uint16
	Snorm16x2 [2]int16
)

func normalized(c Component, n int) AttribFormat {
	return AttribFormat{Component: c, Size: n, Normalized: true}
}

func (*Unorm8x2) AttribFormat() AttribFormat { return normalized(ComponentUbyte, 2) }
func (*Unorm8x3) AttribFormat() AttribFormat { return normalized(ComponentUbyte, 3) }
func (*Unorm8x4) AttribFormat() AttribFormat { return normalized(ComponentUbyte, 4) }
func (*Snorm8x4) AttribFormat() AttribFormat { return normalized(ComponentByte, 4) }
func (*Unorm16x2) AttribFormat() AttribFormat { return normalized(ComponentUshort, 2) }
func (*Unorm16x4) AttribFormat() AttribFormat { return normalized(ComponentUshort, 4) }
func (*Snorm16x2) AttribFormat() AttribFormat { return normalized(ComponentShort, 2) }

// Integer byte vectors stay integer-valued in the shader (uvec4 / ivec4),
// e.g. for joint indices.
type (
	U8x4  [4]uint8
	I8x4  [4]int8
	U16x4 [4]uint16
)

func (*U8x4) AttribFormat() AttribFormat {
	return AttribFormat{Component: ComponentUbyte, Size: 4, Integer: true}
}
func (*I8x4) AttribFormat() AttribFormat {
	return AttribFormat{Component: ComponentByte, Size: 4, Integer: true}
}
func (*U16x4) AttribFormat() AttribFormat {
	return AttribFormat{Component: ComponentUshort, Size: 4, Integer: true}
}
