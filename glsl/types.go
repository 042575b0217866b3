// Package glsl describes GLSL types on the Go side of the binding.
//
// A Type is the tag that both sides of the CPU/GPU boundary agree on. The
// Go side derives it from the field types of vertex, uniform and attachment
// structs. The driver side reflects it from a linked program. Program
// linking compares the two.
package glsl

import "fmt"

// Kind is the scalar kind of a GLSL type. For samplers it is the kind of the
// value returned by texture lookups.
type Kind uint8

const (
	KindFloat Kind = iota + 1
	KindInt
	KindUint
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// prefix returns the GLSL vector/sampler name prefix for the kind.
func (k Kind) prefix() string {
	switch k {
	case KindInt:
		return "i"
	case KindUint:
		return "u"
	case KindBool:
		return "b"
	}
	return ""
}

// SamplerDim is the dimensionality of a sampler type. The zero value means the
// type is not a sampler.
type SamplerDim uint8

const (
	NotSampler SamplerDim = iota
	Dim1D
	Dim2D
	Dim3D
	DimCube
	Dim1DArray
	Dim2DArray
	Dim2DMultisample
	Dim2DMultisampleArray
	Dim2DRect
	DimBuffer
)

var dimNames = [...]string{
	Dim1D:                 "1D",
	Dim2D:                 "2D",
	Dim3D:                 "3D",
	DimCube:               "Cube",
	Dim1DArray:            "1DArray",
	Dim2DArray:            "2DArray",
	Dim2DMultisample:      "2DMS",
	Dim2DMultisampleArray: "2DMSArray",
	Dim2DRect:             "2DRect",
	DimBuffer:             "Buffer",
}

func (d SamplerDim) String() string {
	if d == NotSampler || int(d) >= len(dimNames) {
		return "none"
	}
	return dimNames[d]
}

// Type is a GLSL type tag: a scalar, vector, matrix or sampler.
//
// Vectors have Rows > 1 and Cols == 1. Matrices have Cols > 1 and are
// named matCxR in GLSL, with C columns of R rows each.
type Type struct {
	Kind    Kind
	Rows    uint8
	Cols    uint8
	Sampler SamplerDim
	Shadow  bool
}

// Scalar returns the scalar type of kind k.
func Scalar(k Kind) Type { return Type{Kind: k, Rows: 1, Cols: 1} }

// Vec returns the n-component vector type of kind k. Vec(k, 1) is Scalar(k).
func Vec(k Kind, n int) Type {
	if n < 1 || n > 4 {
		panic(fmt.Sprintf("glsl: vector size %d out of range", n))
	}
	return Type{Kind: k, Rows: uint8(n), Cols: 1}
}

// Mat returns the float matrix type with cols columns of rows rows.
func Mat(cols, rows int) Type {
	if cols < 2 || cols > 4 || rows < 2 || rows > 4 {
		panic(fmt.Sprintf("glsl: matrix %dx%d out of range", cols, rows))
	}
	return Type{Kind: KindFloat, Rows: uint8(rows), Cols: uint8(cols)}
}

// SamplerOf returns the sampler type of the given dimensionality whose
// lookups return values of kind k.
func SamplerOf(dim SamplerDim, k Kind, shadow bool) Type {
	return Type{Kind: k, Sampler: dim, Shadow: shadow}
}

func (t Type) IsSampler() bool { return t.Sampler != NotSampler }
func (t Type) IsMatrix() bool  { return !t.IsSampler() && t.Cols > 1 }
func (t Type) IsScalar() bool  { return !t.IsSampler() && t.Rows == 1 && t.Cols == 1 }

// Components returns the number of scalar components in the type, or 1 for
// samplers.
func (t Type) Components() int {
	if t.IsSampler() {
		return 1
	}
	return int(t.Rows) * int(t.Cols)
}

// Name returns the GLSL spelling of the type.
func (t Type) Name() string {
	switch {
	case t.Kind == 0:
		return "invalid"
	case t.IsSampler():
		name := t.Kind.prefix() + "sampler" + t.Sampler.String()
		if t.Shadow {
			name += "Shadow"
		}
		return name
	case t.IsMatrix():
		if t.Cols == t.Rows {
			return fmt.Sprintf("mat%d", t.Cols)
		}
		return fmt.Sprintf("mat%dx%d", t.Cols, t.Rows)
	case t.Rows == 1:
		return t.Kind.String()
	}
	return fmt.Sprintf("%svec%d", t.Kind.prefix(), t.Rows)
}

func (t Type) String() string { return t.Name() }

// Enum returns the driver reflection enum for the type, or 0 when the type
// has no OpenGL 3.3 spelling.
func (t Type) Enum() uint32 {
	for e, tt := range enumTypes {
		if tt == t {
			return e
		}
	}
	return 0
}

// FromEnum maps a type enum reported by glGetActiveUniform or
// glGetActiveAttrib to its tag.
func FromEnum(e uint32) (Type, bool) {
	t, ok := enumTypes[e]
	return t, ok
}

var enumTypes = map[uint32]Type{
	0x1406: Scalar(KindFloat),
	0x8B50: Vec(KindFloat, 2),
	0x8B51: Vec(KindFloat, 3),
	0x8B52: Vec(KindFloat, 4),
	0x1404: Scalar(KindInt),
	0x8B53: Vec(KindInt, 2),
	0x8B54: Vec(KindInt, 3),
	0x8B55: Vec(KindInt, 4),
	0x1405: Scalar(KindUint),
	0x8DC6: Vec(KindUint, 2),
	0x8DC7: Vec(KindUint, 3),
	0x8DC8: Vec(KindUint, 4),
	0x8B56: Scalar(KindBool),
	0x8B57: Vec(KindBool, 2),
	0x8B58: Vec(KindBool, 3),
	0x8B59: Vec(KindBool, 4),

	0x8B5A: Mat(2, 2),
	0x8B5B: Mat(3, 3),
	0x8B5C: Mat(4, 4),
	0x8B65: Mat(2, 3),
	0x8B66: Mat(2, 4),
	0x8B67: Mat(3, 2),
	0x8B68: Mat(3, 4),
	0x8B69: Mat(4, 2),
	0x8B6A: Mat(4, 3),

	0x8B5D: SamplerOf(Dim1D, KindFloat, false),
	0x8B5E: SamplerOf(Dim2D, KindFloat, false),
	0x8B5F: SamplerOf(Dim3D, KindFloat, false),
	0x8B60: SamplerOf(DimCube, KindFloat, false),
	0x8B61: SamplerOf(Dim1D, KindFloat, true),
	0x8B62: SamplerOf(Dim2D, KindFloat, true),
	0x8B63: SamplerOf(Dim2DRect, KindFloat, false),
	0x8B64: SamplerOf(Dim2DRect, KindFloat, true),
	0x8DC0: SamplerOf(Dim1DArray, KindFloat, false),
	0x8DC1: SamplerOf(Dim2DArray, KindFloat, false),
	0x8DC2: SamplerOf(DimBuffer, KindFloat, false),
	0x8DC3: SamplerOf(Dim1DArray, KindFloat, true),
	0x8DC4: SamplerOf(Dim2DArray, KindFloat, true),
	0x8DC5: SamplerOf(DimCube, KindFloat, true),
	0x9108: SamplerOf(Dim2DMultisample, KindFloat, false),
	0x910B: SamplerOf(Dim2DMultisampleArray, KindFloat, false),

	0x8DC9: SamplerOf(Dim1D, KindInt, false),
	0x8DCA: SamplerOf(Dim2D, KindInt, false),
	0x8DCB: SamplerOf(Dim3D, KindInt, false),
	0x8DCC: SamplerOf(DimCube, KindInt, false),
	0x8DCD: SamplerOf(Dim2DRect, KindInt, false),
	0x8DCE: SamplerOf(Dim1DArray, KindInt, false),
	0x8DCF: SamplerOf(Dim2DArray, KindInt, false),
	0x8DD0: SamplerOf(DimBuffer, KindInt, false),
	0x9109: SamplerOf(Dim2DMultisample, KindInt, false),
	0x910C: SamplerOf(Dim2DMultisampleArray, KindInt, false),

	0x8DD1: SamplerOf(Dim1D, KindUint, false),
	0x8DD2: SamplerOf(Dim2D, KindUint, false),
	0x8DD3: SamplerOf(Dim3D, KindUint, false),
	0x8DD4: SamplerOf(DimCube, KindUint, false),
	0x8DD5: SamplerOf(Dim2DRect, KindUint, false),
	0x8DD6: SamplerOf(Dim1DArray, KindUint, false),
	0x8DD7: SamplerOf(Dim2DArray, KindUint, false),
	0x8DD8: SamplerOf(DimBuffer, KindUint, false),
	0x910A: SamplerOf(Dim2DMultisample, KindUint, false),
	0x910D: SamplerOf(Dim2DMultisampleArray, KindUint, false),
}

// Parse maps a GLSL type spelling such as "vec3", "mat4x3" or
// "usampler2DArray" back to its tag.
func Parse(name string) (Type, bool) {
	t, ok := namedTypes[name]
	return t, ok
}

var namedTypes = func() map[string]Type {
	m := make(map[string]Type, len(enumTypes))
	for _, t := range enumTypes {
		m[t.Name()] = t
	}
	// GLSL also spells square matrices as matNxN.
	for n := 2; n <= 4; n++ {
		m[fmt.Sprintf("mat%dx%d", n, n)] = Mat(n, n)
	}
	return m
}()
