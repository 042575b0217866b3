package glsl

import "fmt"

// Component is the in-memory scalar type of one vertex attribute component.
type Component uint8

const (
	ComponentFloat Component = iota + 1
	ComponentHalf
	ComponentByte
	ComponentUbyte
	ComponentShort
	ComponentUshort
	ComponentInt
	ComponentUint
)

// Size returns the component size in bytes.
func (c Component) Size() int {
	switch c {
	case ComponentByte, ComponentUbyte:
		return 1
	case ComponentHalf, ComponentShort, ComponentUshort:
		return 2
	case ComponentFloat, ComponentInt, ComponentUint:
		return 4
	}
	panic(fmt.Sprintf("glsl: invalid component %d", c))
}

// Enum returns the GL data type enum used by glVertexAttribPointer.
func (c Component) Enum() uint32 {
	switch c {
	case ComponentByte:
		return 0x1400
	case ComponentUbyte:
		return 0x1401
	case ComponentShort:
		return 0x1402
	case ComponentUshort:
		return 0x1403
	case ComponentInt:
		return 0x1404
	case ComponentUint:
		return 0x1405
	case ComponentFloat:
		return 0x1406
	case ComponentHalf:
		return 0x140B
	}
	panic(fmt.Sprintf("glsl: invalid component %d", c))
}

func (c Component) signed() bool {
	switch c {
	case ComponentUbyte, ComponentUshort, ComponentUint:
		return false
	}
	return true
}

// AttribFormat describes how one vertex struct field is fed to the shader.
type AttribFormat struct {
	Component Component
	// Size is the number of components per attribute slot, 1 to 4.
	Size int
	// Slots is the number of consecutive attribute locations the field
	// occupies. Matrices use one slot per column; everything else uses 1.
	Slots int
	// Normalized maps integer components to [0,1] or [-1,1] floats.
	Normalized bool
	// Integer keeps integer components integer-valued in the shader
	// (glVertexAttribIPointer).
	Integer bool
}

// SlotBytes returns the byte size of one attribute slot.
func (f AttribFormat) SlotBytes() int { return f.Size * f.Component.Size() }

// Bytes returns the byte size of the whole field.
func (f AttribFormat) Bytes() int { return f.SlotBytes() * f.slots() }

func (f AttribFormat) slots() int {
	if f.Slots < 1 {
		return 1
	}
	return f.Slots
}

// ShaderType returns the GLSL type the shader must declare for the
// attribute.
func (f AttribFormat) ShaderType() Type {
	if f.slots() > 1 {
		return Mat(f.slots(), f.Size)
	}
	if !f.Integer {
		return Vec(KindFloat, f.Size)
	}
	if f.Component.signed() {
		return Vec(KindInt, f.Size)
	}
	return Vec(KindUint, f.Size)
}

// Validate reports whether the format is one glVertexAttrib*Pointer accepts.
func (f AttribFormat) Validate() error {
	switch {
	case f.Size < 1 || f.Size > 4:
		return fmt.Errorf("component count %d out of range", f.Size)
	case f.Slots > 4:
		return fmt.Errorf("slot count %d out of range", f.Slots)
	case f.Integer && (f.Normalized || f.Component == ComponentFloat || f.Component == ComponentHalf):
		return fmt.Errorf("integer attribute with %s components", f.describe())
	case f.slots() > 1 && (f.Integer || f.Component != ComponentFloat):
		return fmt.Errorf("matrix attribute must be float")
	}
	return nil
}

func (f AttribFormat) describe() string {
	s := fmt.Sprintf("%dx%d", f.Size, f.Component.Size()*8)
	if f.Normalized {
		s += " normalized"
	}
	return s
}

// Attrib is implemented, on the pointer receiver, by every type that can be
// a member of a vertex struct.
type Attrib interface {
	AttribFormat() AttribFormat
}

// Value is the CPU side of a single uniform upload. Implementations of
// Uniform fill the slice matching their type's kind; matrices are stored
// column-major.
type Value struct {
	Floats [16]float32
	Ints   [4]int32
	Uints  [4]uint32
}

// Uniform is implemented, on the pointer receiver, by every non-sampler type
// that can be a member of a uniform struct.
type Uniform interface {
	UniformType() Type
	UniformValue(v *Value)
}
