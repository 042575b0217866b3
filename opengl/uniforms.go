package opengl

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"glsafe/glsl"
)

// Uniforms is implemented, on the pointer receiver, by structs holding the
// uniform values of a program. UniformMembers must call r.Add once per
// field, in declaration order, passing a pointer to the field:
//
//	func (u *Material) UniformMembers(r *opengl.UniformRegistry) {
//		r.Add("model", &u.Model)
//		r.Add("albedo", &u.Albedo) // opengl.TextureUniform[glsl.Sampler2D]
//	}
//
// The method runs once to compute the layout and again on every draw to
// read the values, so it must always register the same members.
type Uniforms interface {
	UniformMembers(r *UniformRegistry)
}

// NoUniforms is the Uniforms type of programs without uniforms.
type NoUniforms struct{}

func (*NoUniforms) UniformMembers(*UniformRegistry) {}

// UniformMember is one member of a uniform layout.
type UniformMember struct {
	Name   string
	Offset uintptr
	Type   glsl.Type
}

// UniformLayout is the static description of a Uniforms type.
type UniformLayout struct {
	Type    reflect.Type
	Members []UniformMember
	// Textures is the number of texture members.
	Textures int
}

func (l *UniformLayout) member(name string) int {
	for i, m := range l.Members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// UniformRegistry collects the members of a uniforms struct. While a
// layout is computed it validates them; during a draw it hands each value
// to the program.
type UniformRegistry struct {
	typ      reflect.Type
	base     uintptr
	size     uintptr
	members  []UniformMember
	names    []string
	samplers int

	visit func(i int, u glsl.Uniform)
	next  int
}

// Add registers one member. u must point into the value whose
// UniformMembers method is running.
func (r *UniformRegistry) Add(name string, u glsl.Uniform) {
	if r.visit != nil {
		r.visit(r.next, u)
		r.next++
		return
	}
	checkIdentifier(name)
	checkDuplicate(r.typ, r.names, name)
	addr, size := fieldAddr(r.typ, name, u)
	checkWithin(r.typ, name, r.base, r.size, addr, size)
	t := u.UniformType()
	if _, ok := u.(samplerUniform); ok != t.IsSampler() {
		panic(fmt.Sprintf("opengl: %s member %q has sampler type %s but is not a TextureUniform", r.typ, name, t))
	}
	if t.IsSampler() {
		r.samplers++
	}
	r.members = append(r.members, UniformMember{Name: name, Offset: addr - r.base, Type: t})
	r.names = append(r.names, name)
}

var uniformLayouts sync.Map // reflect.Type -> *UniformLayout

// UniformLayoutOf returns the layout of U, computing it on first use.
func UniformLayoutOf[U any, PU interface {
	*U
	Uniforms
}]() *UniformLayout {
	t := reflect.TypeFor[U]()
	if l, ok := uniformLayouts.Load(t); ok {
		return l.(*UniformLayout)
	}
	zero := new(U)
	r := &UniformRegistry{typ: t, base: uintptr(unsafe.Pointer(zero)), size: unsafe.Sizeof(*zero)}
	PU(zero).UniformMembers(r)
	l := &UniformLayout{Type: t, Members: r.members, Textures: r.samplers}
	actual, _ := uniformLayouts.LoadOrStore(t, l)
	return actual.(*UniformLayout)
}

// uniformSlot is the program-side state of one uniform member.
type uniformSlot struct {
	location int32
	// value is what the program object holds, valid when set is true.
	value glsl.Value
	set   bool
}

// uploadUniforms walks the members of u, binding textures to image units
// from 0 upward and sending values that changed since the last draw.
func (p *programBase) uploadUniforms(members func(r *UniformRegistry)) {
	ctx := p.ctx
	unit := 0
	r := &UniformRegistry{typ: p.uniforms.Type}
	r.visit = func(i int, u glsl.Uniform) {
		if i >= len(p.slots) {
			panic(fmt.Sprintf("opengl: %s registered more members than its layout has", p.uniforms.Type))
		}
		slot := &p.slots[i]
		m := p.uniforms.Members[i]
		var v glsl.Value
		if su, ok := u.(samplerUniform); ok {
			if slot.location < 0 {
				return
			}
			img, smp := su.texture()
			checkSampled(ctx, m.Name, m.Type, img, smp)
			if unit >= ctx.internalUnit() {
				panic(fmt.Sprintf("opengl: %s needs more than the %d available texture units", p.uniforms.Type, ctx.internalUnit()))
			}
			ctx.units.bindTexture(unit, img.Target(), img.Handle())
			var sh Handle
			if smp != nil {
				sh = smp.handle
			}
			ctx.units.bindSampler(unit, sh)
			v.Ints[0] = int32(unit)
			unit++
		} else {
			if slot.location < 0 {
				return
			}
			u.UniformValue(&v)
		}
		if slot.set && slot.value == v {
			return
		}
		sendUniform(ctx, slot.location, m.Type, &v)
		slot.value, slot.set = v, true
	}
	members(r)
	if r.next != len(p.slots) {
		panic(fmt.Sprintf("opengl: %s registered %d members, its layout has %d", p.uniforms.Type, r.next, len(p.slots)))
	}
}

func sendUniform(ctx *Context, loc int32, t glsl.Type, v *glsl.Value) {
	fns := ctx.fns
	n := int(t.Rows)
	switch {
	case t.IsSampler():
		fns.Uniformiv(loc, 1, v.Ints[:1])
	case t.IsMatrix():
		fns.UniformMatrixfv(loc, int(t.Cols), int(t.Rows), v.Floats[:int(t.Cols)*int(t.Rows)])
	case t.Kind == glsl.KindFloat:
		fns.Uniformfv(loc, n, v.Floats[:n])
	case t.Kind == glsl.KindUint:
		fns.Uniformuiv(loc, n, v.Uints[:n])
	default:
		fns.Uniformiv(loc, n, v.Ints[:n])
	}
}
