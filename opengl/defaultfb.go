package opengl

import (
	"fmt"

	"glsafe/driver"
)

// DefaultAttachments is the attachment type of the default framebuffer: a
// single color buffer, bound to the fragment output named "color".
type DefaultAttachments struct {
	Color ColorAttachment
}

func (d *DefaultAttachments) AttachmentMembers(r *AttachmentRegistry) {
	r.Add("color", &d.Color)
}

// DefaultFramebuffer is the window-system framebuffer of a context. Only one
// handle to it exists at a time; see Context.DefaultFramebuffer.
type DefaultFramebuffer struct {
	ctx      *Context
	size     Size
	att      DefaultAttachments
	released bool
}

// DefaultFramebuffer returns a handle to the default framebuffer, whose
// drawable is w by h pixels. It returns ErrDefaultFramebufferInUse until
// the previous handle is released.
func (c *Context) DefaultFramebuffer(w, h int) (*DefaultFramebuffer, error) {
	if c.defaultInUse {
		return nil, ErrDefaultFramebufferInUse
	}
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("opengl: invalid default framebuffer size %dx%d", w, h))
	}
	c.defaultInUse = true
	return &DefaultFramebuffer{ctx: c, size: Size2D(w, h)}, nil
}

// Release gives up the handle so another can be obtained. Further use of
// d panics.
func (d *DefaultFramebuffer) Release() {
	if d.released {
		return
	}
	d.released = true
	d.ctx.defaultInUse = false
}

func (d *DefaultFramebuffer) live() {
	if d.released {
		panic("opengl: use of released default framebuffer")
	}
}

func (d *DefaultFramebuffer) Context() *Context { return d.ctx }

// Size returns the drawable size last given to DefaultFramebuffer or
// Resize.
func (d *DefaultFramebuffer) Size() Size { return d.size }

// Resize records a new drawable size, for example after the window was
// resized.
func (d *DefaultFramebuffer) Resize(w, h int) {
	d.live()
	d.size = Size2D(w, h)
}

func (d *DefaultFramebuffer) attachments() *DefaultAttachments { return &d.att }

func (d *DefaultFramebuffer) bindDraw() {
	d.live()
	d.ctx.drawFramebuffer.set(0)
}

// ClearColor clears the color buffer.
func (d *DefaultFramebuffer) ClearColor(rgba [4]float32) {
	d.bindDraw()
	d.ctx.prepareClear()
	d.ctx.fns.ClearBufferfv(driver.COLOR, 0, rgba[:])
}

// ClearDepth clears the depth buffer, if the window has one.
func (d *DefaultFramebuffer) ClearDepth(depth float32) {
	d.bindDraw()
	d.ctx.prepareClear()
	d.ctx.fns.ClearBufferfv(driver.DEPTH, 0, []float32{depth})
}

// ClearStencil clears the stencil buffer, if the window has one.
func (d *DefaultFramebuffer) ClearStencil(s int32) {
	d.bindDraw()
	d.ctx.prepareClear()
	d.ctx.fns.ClearBufferiv(driver.STENCIL, 0, []int32{s})
}

// ReadPixels returns the RGBA8 pixels of rect r of the color buffer.
func (d *DefaultFramebuffer) ReadPixels(r Rect) []byte {
	d.live()
	if !r.within(d.size) {
		panic(fmt.Sprintf("opengl: read %+v outside default framebuffer of size %v", r, d.size))
	}
	d.ctx.readFramebuffer.set(0)
	out := make([]byte, r.W*r.H*4)
	d.ctx.fns.ReadPixels(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), driver.RGBA, driver.UNSIGNED_BYTE, out)
	return out
}
