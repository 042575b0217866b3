package opengl

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"glsafe/driver"
)

// Usage is the data-store usage hint passed to glBufferData.
type Usage driver.Enum

const (
	StreamDraw  Usage = driver.STREAM_DRAW
	StreamRead  Usage = driver.STREAM_READ
	StreamCopy  Usage = driver.STREAM_COPY
	StaticDraw  Usage = driver.STATIC_DRAW
	StaticRead  Usage = driver.STATIC_READ
	StaticCopy  Usage = driver.STATIC_COPY
	DynamicDraw Usage = driver.DYNAMIC_DRAW
	DynamicRead Usage = driver.DYNAMIC_READ
	DynamicCopy Usage = driver.DYNAMIC_COPY
)

// Buffer is GPU memory holding a sequence of T. T must not contain Go
// pointers; its in-memory layout is what the GPU sees.
type Buffer[T any] struct {
	object
	n     int
	usage Usage
}

// NewBuffer allocates a buffer holding a copy of data.
func NewBuffer[T any](ctx *Context, data []T, usage Usage) *Buffer[T] {
	b := newBuffer[T](ctx)
	b.store(len(data), asBytes(data), usage)
	return b
}

// NewEmptyBuffer allocates uninitialized storage for n elements.
func NewEmptyBuffer[T any](ctx *Context, n int, usage Usage) *Buffer[T] {
	if n < 0 {
		panic(fmt.Sprintf("opengl: negative buffer length %d", n))
	}
	b := newBuffer[T](ctx)
	b.store(n, nil, usage)
	return b
}

func newBuffer[T any](ctx *Context) *Buffer[T] {
	checkPlain(reflect.TypeFor[T]())
	b := &Buffer[T]{object: newObject(ctx, "buffer", ctx.fns.GenBuffer())}
	ctx.log.Debug("create", "kind", "buffer", "handle", uint32(b.handle), "elem", reflect.TypeFor[T]().String())
	return b
}

func (b *Buffer[T]) store(n int, data []byte, usage Usage) {
	size := n * elemSize[T]()
	b.ctx.bindCopyWrite(b.handle).data(size, data, usage)
	b.ctx.checkAllocation("buffer", size)
	b.n = n
	b.usage = usage
}

// Len returns the number of elements the buffer holds.
func (b *Buffer[T]) Len() int { return b.n }

// Usage returns the usage hint the storage was allocated with.
func (b *Buffer[T]) Usage() Usage { return b.usage }

// Bytes returns the size of the storage in bytes.
func (b *Buffer[T]) Bytes() int { return b.n * elemSize[T]() }

// Reallocate replaces the storage with a copy of data. The length may change.
func (b *Buffer[T]) Reallocate(data []T, usage Usage) {
	b.live()
	b.store(len(data), asBytes(data), usage)
}

// Write copies data into the buffer starting at element offset. The range
// must lie within the buffer.
func (b *Buffer[T]) Write(offset int, data []T) {
	b.live()
	b.checkRange("write", offset, len(data))
	if len(data) == 0 {
		return
	}
	b.ctx.bindCopyWrite(b.handle).subData(offset*elemSize[T](), asBytes(data))
}

// Read fills dst with elements starting at offset. The range must lie
// within the buffer.
func (b *Buffer[T]) Read(offset int, dst []T) {
	b.live()
	b.checkRange("read", offset, len(dst))
	if len(dst) == 0 {
		return
	}
	b.ctx.bindCopyRead(b.handle).getSubData(offset*elemSize[T](), asBytes(dst))
}

// ReadAll returns a copy of the whole buffer.
func (b *Buffer[T]) ReadAll() []T {
	out := make([]T, b.n)
	b.Read(0, out)
	return out
}

// CopyTo copies n elements from this buffer, starting at srcOffset, into dst
// at dstOffset. The copy happens on the GPU.
func (b *Buffer[T]) CopyTo(dst *Buffer[T], srcOffset, dstOffset, n int) {
	b.live()
	dst.live()
	dst.sameContext(b.ctx, "copy destination")
	b.checkRange("copy from", srcOffset, n)
	dst.checkRange("copy to", dstOffset, n)
	if n == 0 {
		return
	}
	size := elemSize[T]()
	b.ctx.bindCopyRead(b.handle)
	b.ctx.bindCopyWrite(dst.handle)
	b.ctx.fns.CopyBufferSubData(driver.COPY_READ_BUFFER, driver.COPY_WRITE_BUFFER, srcOffset*size, dstOffset*size, n*size)
}

// Delete frees the GPU storage. Further use of the buffer panics.
func (b *Buffer[T]) Delete() {
	h, ok := b.release()
	if !ok {
		return
	}
	b.ctx.copyRead.forget(h)
	b.ctx.copyWrite.forget(h)
	b.ctx.arrayBuffer.forget(h)
	b.ctx.fns.DeleteBuffer(uint32(h))
	b.n = 0
}

func (b *Buffer[T]) checkRange(op string, offset, n int) {
	if offset < 0 || n < 0 || offset > b.n-n {
		panic(fmt.Sprintf("opengl: buffer %s [%d, %d) out of range [0, %d)", op, offset, offset+n, b.n))
	}
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func asBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*elemSize[T]())
}

var plainTypes sync.Map // reflect.Type -> struct{}

// checkPlain panics if values of t contain Go pointers, which must never
// be handed to the GPU.
func checkPlain(t reflect.Type) {
	if _, ok := plainTypes.Load(t); ok {
		return
	}
	if path := pointerPath(t); path != "" {
		if path == "." {
			path = "the value"
		}
		panic(fmt.Sprintf("opengl: %s cannot be stored in GPU memory: %s holds a Go pointer", t, path))
	}
	plainTypes.Store(t, struct{}{})
}

func pointerPath(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return ""
	case reflect.Array:
		if p := pointerPath(t.Elem()); p != "" {
			return "[]" + p
		}
		return ""
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if p := pointerPath(f.Type); p != "" {
				if p == "." {
					return f.Name
				}
				return f.Name + "." + p
			}
		}
		return ""
	}
	return "."
}
