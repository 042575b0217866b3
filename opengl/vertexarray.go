package opengl

import (
	"fmt"
	"unsafe"

	"glsafe/driver"
)

// Index is the set of element types an index buffer may hold.
type Index interface {
	~uint8 | ~uint16 | ~uint32
}

// IndexBuffer is an index buffer of any width. Obtain one with Indices.
type IndexBuffer interface {
	indexBuffer() indexSource
}

type indexSource struct {
	obj  *object
	n    func() int
	typ  driver.Enum
	size int
}

type indices[I Index] struct{ b *Buffer[I] }

func (s indices[I]) indexBuffer() indexSource {
	var zero I
	typ := driver.Enum(driver.UNSIGNED_INT)
	switch unsafe.Sizeof(zero) {
	case 1:
		typ = driver.UNSIGNED_BYTE
	case 2:
		typ = driver.UNSIGNED_SHORT
	}
	return indexSource{obj: &s.b.object, n: s.b.Len, typ: typ, size: int(unsafe.Sizeof(zero))}
}

// Indices wraps a buffer of uint8, uint16 or uint32 values for use as an
// element array.
func Indices[I Index](b *Buffer[I]) IndexBuffer { return indices[I]{b} }

// InstanceBuffer is a buffer of per-instance attributes. Obtain one with
// Instances.
type InstanceBuffer interface {
	instanceBuffer() instanceSource
}

type instanceSource struct {
	obj    *object
	n      func() int
	layout *VertexLayout
}

type instances[I any, PI interface {
	*I
	Vertex
}] struct{ b *Buffer[I] }

func (s instances[I, PI]) instanceBuffer() instanceSource {
	return instanceSource{obj: &s.b.object, n: s.b.Len, layout: VertexLayoutOf[I, PI]()}
}

// Instances wraps a buffer whose elements are advanced once per instance.
// Its members take the attribute locations following the per-vertex ones.
func Instances[I any, PI interface {
	*I
	Vertex
}](b *Buffer[I]) InstanceBuffer {
	return instances[I, PI]{b}
}

// VertexArray binds a vertex buffer, and optionally index and instance
// buffers, to the attribute layout of V.
//
// Attribute pointers are described lazily when the array is next bound, and
// only if the vertex buffer changed since they were last described.
type VertexArray[V any, PV interface {
	*V
	Vertex
}] struct {
	object
	layout    *VertexLayout
	vertices  *Buffer[V]
	indices   *indexSource
	instances *instanceSource

	describedVertices  *object
	describedInstances *object
	boundIndices       *object
	instanceSlots      int
}

// NewVertexArray creates a vertex array reading vertices from vbuf.
func NewVertexArray[V any, PV interface {
	*V
	Vertex
}](ctx *Context, vbuf *Buffer[V]) *VertexArray[V, PV] {
	vbuf.live()
	vbuf.sameContext(ctx, "vertex buffer")
	layout := VertexLayoutOf[V, PV]()
	a := &VertexArray[V, PV]{
		object:   newObject(ctx, "vertex array", ctx.fns.GenVertexArray()),
		layout:   layout,
		vertices: vbuf,
	}
	ctx.log.Debug("create", "kind", "vertex array", "handle", uint32(a.handle), "vertex", layout.Type.String())
	return a
}

// Layout returns the attribute layout of V.
func (a *VertexArray[V, PV]) Layout() *VertexLayout { return a.layout }

// Vertices returns the current vertex buffer.
func (a *VertexArray[V, PV]) Vertices() *Buffer[V] { return a.vertices }

// SetVertexBuffer replaces the vertex buffer.
func (a *VertexArray[V, PV]) SetVertexBuffer(b *Buffer[V]) {
	a.live()
	b.sameContext(a.ctx, "vertex buffer")
	a.vertices = b
}

// SetIndices sets the element array. Pass nil to draw without indices.
func (a *VertexArray[V, PV]) SetIndices(ib IndexBuffer) {
	a.live()
	if ib == nil {
		a.indices = nil
		return
	}
	src := ib.indexBuffer()
	src.obj.sameContext(a.ctx, "index buffer")
	a.indices = &src
}

// SetInstances sets the per-instance attribute buffer. Pass nil to remove
// it.
func (a *VertexArray[V, PV]) SetInstances(ib InstanceBuffer) {
	a.live()
	if ib == nil {
		a.instances = nil
		return
	}
	src := ib.instanceBuffer()
	src.obj.sameContext(a.ctx, "instance buffer")
	a.instances = &src
}

// InstanceLayout returns the layout of the instance buffer, or nil.
func (a *VertexArray[V, PV]) InstanceLayout() *VertexLayout {
	if a.instances == nil {
		return nil
	}
	return a.instances.layout
}

// Indexed reports whether draws use the element array.
func (a *VertexArray[V, PV]) Indexed() bool { return a.indices != nil }

// count returns the number of elements a full draw covers.
func (a *VertexArray[V, PV]) count() int {
	if a.indices != nil {
		return a.indices.n()
	}
	return a.vertices.Len()
}

func (a *VertexArray[V, PV]) instanceCount() int {
	if a.instances == nil {
		return -1
	}
	return a.instances.n()
}

func (a *VertexArray[V, PV]) indexFormat() (driver.Enum, int) {
	return a.indices.typ, a.indices.size
}

// bind makes the array current and brings its attribute pointers and
// element binding up to date.
func (a *VertexArray[V, PV]) bind() {
	a.live()
	a.vertices.live()
	ctx := a.ctx
	ctx.vertexArray.set(a.handle)

	slots := a.layout.Slots
	if a.instances != nil {
		slots += a.instances.layout.Slots
	}
	if slots > ctx.limits.MaxVertexAttribs {
		panic(fmt.Sprintf("opengl: %s uses %d attribute locations, driver maximum is %d",
			a.layout.Type, slots, ctx.limits.MaxVertexAttribs))
	}

	if a.describedVertices != &a.vertices.object {
		a.describe(a.layout, a.vertices.handle, 0, 0)
		a.describedVertices = &a.vertices.object
	}

	var inst *object
	if a.instances != nil {
		a.instances.obj.live()
		inst = a.instances.obj
	}
	if a.describedInstances != inst {
		for i := 0; i < a.instanceSlots; i++ {
			ctx.fns.DisableVertexAttribArray(uint32(a.layout.Slots + i))
		}
		a.instanceSlots = 0
		if inst != nil {
			a.describe(a.instances.layout, inst.handle, a.layout.Slots, 1)
			a.instanceSlots = a.instances.layout.Slots
		}
		a.describedInstances = inst
	}

	var idx *object
	if a.indices != nil {
		a.indices.obj.live()
		idx = a.indices.obj
	}
	if a.boundIndices != idx {
		name := uint32(0)
		if idx != nil {
			name = uint32(idx.handle)
		}
		// The element binding is vertex array state.
		ctx.fns.BindBuffer(driver.ELEMENT_ARRAY_BUFFER, name)
		a.boundIndices = idx
	}
}

func (a *VertexArray[V, PV]) describe(l *VertexLayout, buf Handle, base int, divisor uint32) {
	fns := a.ctx.fns
	a.ctx.arrayBuffer.set(buf)
	for _, m := range l.Members {
		f := m.Format
		for s := 0; s < m.Slots(); s++ {
			loc := uint32(base + m.Location + s)
			off := m.Offset + s*f.SlotBytes()
			fns.EnableVertexAttribArray(loc)
			if f.Integer {
				fns.VertexAttribIPointer(loc, int32(f.Size), f.Component.Enum(), int32(l.Stride), off)
			} else {
				fns.VertexAttribPointer(loc, int32(f.Size), f.Component.Enum(), f.Normalized, int32(l.Stride), off)
			}
			if divisor != 0 {
				fns.VertexAttribDivisor(loc, divisor)
			}
		}
	}
}

// Delete frees the vertex array. The buffers it references are not deleted.
func (a *VertexArray[V, PV]) Delete() {
	h, ok := a.release()
	if !ok {
		return
	}
	a.ctx.vertexArray.forget(h)
	a.ctx.fns.DeleteVertexArray(uint32(h))
}
