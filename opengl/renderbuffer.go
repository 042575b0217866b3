package opengl

import (
	"fmt"

	"glsafe/driver"
)

// Renderbuffer is image storage that can be rendered to but not sampled.
type Renderbuffer struct {
	object
	format  Format
	size    Size
	samples int
}

// NewRenderbuffer allocates a renderbuffer. samples 0 allocates a
// single-sampled one.
func NewRenderbuffer(ctx *Context, format Format, width, height, samples int) (*Renderbuffer, error) {
	if width < 1 || height < 1 || samples < 0 {
		panic(fmt.Sprintf("opengl: invalid renderbuffer %dx%d with %d samples", width, height, samples))
	}
	if err := format.requireSupport(ctx); err != nil {
		return nil, err
	}
	if !format.Renderable() || format.Compressed() {
		panic(fmt.Sprintf("opengl: format %s is not renderable", format))
	}
	size := Size2D(width, height)
	if m := ctx.limits.MaxRenderbufferSize; width > m || height > m {
		return nil, &DimensionError{Resource: "renderbuffer", Requested: size, Max: Size2D(m, m)}
	}
	if samples > ctx.limits.MaxSamples {
		return nil, &DimensionError{Resource: "renderbuffer", Requested: size, Samples: samples, MaxSamples: ctx.limits.MaxSamples}
	}
	rb := &Renderbuffer{
		object:  newObject(ctx, "renderbuffer", ctx.fns.GenRenderbuffer()),
		format:  format,
		size:    size,
		samples: samples,
	}
	ctx.renderbuffer.set(rb.handle)
	ctx.fns.RenderbufferStorageMultisample(driver.RENDERBUFFER, int32(samples), format.InternalFormat(), int32(width), int32(height))
	ctx.checkAllocation("renderbuffer", format.ImageBytes(size)*max(samples, 1))
	ctx.log.Debug("create", "kind", "renderbuffer", "handle", uint32(rb.handle), "format", format.String(), "size", size.String(), "samples", samples)
	return rb, nil
}

func (r *Renderbuffer) Target() driver.Enum { return driver.RENDERBUFFER }
func (r *Renderbuffer) Format() Format      { return r.format }
func (r *Renderbuffer) Size() Size          { return r.size }
func (r *Renderbuffer) Levels() int         { return 1 }
func (r *Renderbuffer) Samples() int        { return r.samples }

func (r *Renderbuffer) imageInfo() imageInfo {
	return imageInfo{ctx: r.ctx, deleted: r.Deleted()}
}

// Delete frees the renderbuffer.
func (r *Renderbuffer) Delete() {
	h, ok := r.release()
	if !ok {
		return
	}
	r.ctx.renderbuffer.forget(h)
	r.ctx.fns.DeleteRenderbuffer(uint32(h))
}
