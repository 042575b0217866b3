package opengl

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"glsafe/glsl"
)

// Vertex is implemented, on the pointer receiver, by structs that describe
// one vertex. VertexMembers must call r.Add once per field, in declaration
// order, passing a pointer to the field:
//
//	func (v *MyVertex) VertexMembers(r *opengl.VertexRegistry) {
//		r.Add("position", &v.Position)
//		r.Add("uv", &v.UV)
//	}
//
// Members get consecutive attribute locations in that order. A matrix
// member takes one location per column.
type Vertex interface {
	VertexMembers(r *VertexRegistry)
}

// VertexMember is one attribute of a vertex layout.
type VertexMember struct {
	Name     string
	Offset   int
	Format   glsl.AttribFormat
	Location int
}

// Slots returns the number of attribute locations the member occupies.
func (m VertexMember) Slots() int {
	if m.Format.Slots < 1 {
		return 1
	}
	return m.Format.Slots
}

// VertexLayout is the attribute layout computed from a Vertex type.
type VertexLayout struct {
	Type    reflect.Type
	Stride  int
	Members []VertexMember
	// Slots is the total number of attribute locations used.
	Slots int
}

// member returns the member with the given name.
func (l *VertexLayout) member(name string) (VertexMember, bool) {
	for _, m := range l.Members {
		if m.Name == name {
			return m, true
		}
	}
	return VertexMember{}, false
}

// VertexRegistry collects the members of a vertex struct.
type VertexRegistry struct {
	typ     reflect.Type
	base    uintptr
	size    uintptr
	members []VertexMember
	names   []string
	slots   int
}

// Add registers one field. field must point into the value whose
// VertexMembers method is running.
func (r *VertexRegistry) Add(name string, field glsl.Attrib) {
	checkIdentifier(name)
	checkDuplicate(r.typ, r.names, name)
	f := field.AttribFormat()
	if err := f.Validate(); err != nil {
		panic(fmt.Sprintf("opengl: %s member %q: %v", r.typ, name, err))
	}
	addr, size := fieldAddr(r.typ, name, field)
	checkWithin(r.typ, name, r.base, r.size, addr, size)
	if int(size) != f.Bytes() {
		panic(fmt.Sprintf("opengl: %s member %q is %d bytes but its format describes %d", r.typ, name, size, f.Bytes()))
	}
	m := VertexMember{Name: name, Offset: int(addr - r.base), Format: f, Location: r.slots}
	r.members = append(r.members, m)
	r.names = append(r.names, name)
	r.slots += m.Slots()
}

var vertexLayouts sync.Map // reflect.Type -> *VertexLayout

// VertexLayoutOf returns the attribute layout of V, computing it on first
// use. It panics if V's registration is invalid.
func VertexLayoutOf[V any, PV interface {
	*V
	Vertex
}]() *VertexLayout {
	t := reflect.TypeFor[V]()
	if l, ok := vertexLayouts.Load(t); ok {
		return l.(*VertexLayout)
	}
	checkPlain(t)
	// Offsets are taken against a zeroed instance that is never read.
	zero := new(V)
	r := &VertexRegistry{typ: t, base: uintptr(unsafe.Pointer(zero)), size: unsafe.Sizeof(*zero)}
	PV(zero).VertexMembers(r)
	if len(r.members) == 0 {
		panic(fmt.Sprintf("opengl: vertex type %s registers no members", t))
	}
	l := &VertexLayout{Type: t, Stride: int(r.size), Members: r.members, Slots: r.slots}
	actual, _ := vertexLayouts.LoadOrStore(t, l)
	return actual.(*VertexLayout)
}
