package opengl

import "fmt"

// Handle is the name of a live GL object. It is never zero; zero is the GL
// "no object" name and only ever appears in binding caches.
type Handle uint32

func newHandle(kind string, name uint32) Handle {
	if name == 0 {
		panic(fmt.Sprintf("opengl: driver returned no name for new %s", kind))
	}
	return Handle(name)
}

// object is the part every resource shares: the owning context and the
// handle, which is cleared when the resource is deleted.
type object struct {
	ctx    *Context
	handle Handle
	kind   string
}

func newObject(ctx *Context, kind string, name uint32) object {
	return object{ctx: ctx, handle: newHandle(kind, name), kind: kind}
}

// Handle returns the GL name of the object.
func (o *object) Handle() Handle {
	o.live()
	return o.handle
}

// Context returns the context the object was created against.
func (o *object) Context() *Context { return o.ctx }

// Deleted reports whether the object has been deleted.
func (o *object) Deleted() bool { return o.handle == 0 }

func (o *object) live() {
	if o.handle == 0 {
		panic(fmt.Sprintf("opengl: use of deleted %s", o.kind))
	}
}

// release clears the handle and reports whether the object was live.
func (o *object) release() (Handle, bool) {
	h := o.handle
	if h == 0 {
		return 0, false
	}
	o.handle = 0
	o.ctx.log.Debug("delete", "kind", o.kind, "handle", uint32(h))
	return h, true
}

func (o *object) sameContext(other *Context, what string) {
	if o.ctx != other {
		panic(fmt.Sprintf("opengl: %s belongs to a different context", what))
	}
}
