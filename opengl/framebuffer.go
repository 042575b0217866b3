package opengl

import (
	"fmt"

	"glsafe/driver"
)

// Target is a framebuffer that draws, clears and blits can write to.
type Target interface {
	Context() *Context
	// Size is the area draws cover when RenderState.Viewport is nil.
	Size() Size
	// bindDraw makes the target the draw framebuffer, with its attachments
	// up to date, and panics if it is incomplete.
	bindDraw()
}

// RenderTarget is a Target whose attachments have type A. Programs draw
// only to render targets of their own attachment type.
type RenderTarget[A any] interface {
	Target
	attachments() *A
}

// Framebuffer is a framebuffer object whose attachment layout is the
// Attachments type A. The images themselves are supplied with Attach.
type Framebuffer[A any, PA interface {
	*A
	Attachments
}] struct {
	object
	layout *AttachmentLayout
	slots  []attachedSlot

	drawBuffersSet bool
	readBuffer     driver.Enum
	// complete is set once the status of the current attachments has been
	// checked.
	complete bool
}

// NewFramebuffer creates a framebuffer for attachments of type A. It panics
// if A is not a valid attachment layout or needs more color attachments
// than the driver supports.
func NewFramebuffer[A any, PA interface {
	*A
	Attachments
}](ctx *Context) *Framebuffer[A, PA] {
	l := CheckAttachments[A, PA]()
	if n := min(ctx.limits.MaxColorAttachments, ctx.limits.MaxDrawBuffers); l.Colors > n {
		panic(fmt.Sprintf("opengl: %s has %d color attachments, driver maximum is %d", l.Type, l.Colors, n))
	}
	f := &Framebuffer[A, PA]{
		object: newObject(ctx, "framebuffer", ctx.fns.GenFramebuffer()),
		layout: l,
		slots:  make([]attachedSlot, len(l.Members)),
	}
	ctx.log.Debug("create", "kind", "framebuffer", "handle", uint32(f.handle), "attachments", l.Type.String())
	return f
}

// Layout returns the attachment layout of A.
func (f *Framebuffer[A, PA]) Layout() *AttachmentLayout { return f.layout }

// Attach pairs the framebuffer with the images in a. The returned value
// attaches them lazily: every clear, read and draw first re-attaches the
// members whose image, level or layer changed since the last use.
func (f *Framebuffer[A, PA]) Attach(a *A) *Attached[A, PA] {
	f.live()
	if a == nil {
		panic("opengl: Attach of nil attachments")
	}
	return &Attached[A, PA]{fb: f, a: a}
}

// Status returns the completeness of whatever is currently attached, as an
// *IncompleteFramebufferError, or nil.
func (f *Framebuffer[A, PA]) Status() error {
	f.live()
	f.ctx.drawFramebuffer.set(f.handle)
	if s := f.ctx.fns.CheckFramebufferStatus(driver.DRAW_FRAMEBUFFER); s != driver.FRAMEBUFFER_COMPLETE {
		return &IncompleteFramebufferError{Status: s}
	}
	return nil
}

// Delete frees the framebuffer. The attached images are not deleted.
func (f *Framebuffer[A, PA]) Delete() {
	h, ok := f.release()
	if !ok {
		return
	}
	f.ctx.drawFramebuffer.forget(h)
	f.ctx.readFramebuffer.forget(h)
	f.ctx.fns.DeleteFramebuffer(uint32(h))
}

func (f *Framebuffer[A, PA]) setReadBuffer(buf driver.Enum) {
	if f.readBuffer != buf {
		f.ctx.fns.ReadBuffer(buf)
		f.readBuffer = buf
	}
}

// Attached is a framebuffer paired with the attachments value it renders
// to.
type Attached[A any, PA interface {
	*A
	Attachments
}] struct {
	fb *Framebuffer[A, PA]
	a  *A
}

func (t *Attached[A, PA]) Context() *Context { return t.fb.ctx }

// Framebuffer returns the framebuffer object.
func (t *Attached[A, PA]) Framebuffer() *Framebuffer[A, PA] { return t.fb }

// Attachments returns the attachments value.
func (t *Attached[A, PA]) Attachments() *A { return t.a }

func (t *Attached[A, PA]) attachments() *A { return t.a }

// Size returns the area common to every attached image, at the attached
// level.
func (t *Attached[A, PA]) Size() Size {
	l := t.fb.layout
	var s Size
	for i := range l.Members {
		ms := attachmentSize(memberImage(l, t.a, i))
		if i == 0 {
			s = ms
			continue
		}
		s.W, s.H = min(s.W, ms.W), min(s.H, ms.H)
	}
	return s
}

func attachmentSize(ai *AttachmentImage) Size {
	if ai.Image == nil {
		return Size{}
	}
	s := ai.Image.Size()
	if k := ai.Image.imageInfo().kind; k != nil {
		s = k.levelSize(s, ai.Level)
	}
	return Size2D(s.W, s.H)
}

// sync binds the framebuffer for drawing and attaches every member whose
// image changed.
func (t *Attached[A, PA]) sync() {
	f := t.fb
	f.live()
	ctx := f.ctx
	ctx.drawFramebuffer.set(f.handle)
	l := f.layout
	for i, m := range l.Members {
		ai := memberImage(l, t.a, i)
		checkAttachmentImage(ctx, l.Type, m, ai)
		slot := attachedSlot{image: ai.Image, level: ai.Level, layer: ai.Layer, layered: ai.Layered}
		if f.slots[i] == slot {
			continue
		}
		attach(ctx.fns, m.Point, ai)
		f.slots[i] = slot
		f.complete = false
	}
	if !f.drawBuffersSet {
		bufs := make([]driver.Enum, l.Colors)
		for n := range bufs {
			bufs[n] = driver.COLOR_ATTACHMENT0 + driver.Enum(n)
		}
		if len(bufs) == 0 {
			bufs = []driver.Enum{driver.NONE}
		}
		ctx.fns.DrawBuffers(bufs)
		f.drawBuffersSet = true
	}
}

func (t *Attached[A, PA]) bindDraw() {
	t.sync()
	f := t.fb
	if f.complete {
		return
	}
	if s := f.ctx.fns.CheckFramebufferStatus(driver.DRAW_FRAMEBUFFER); s != driver.FRAMEBUFFER_COMPLETE {
		panic(fmt.Sprintf("opengl: %s framebuffer: %v", f.layout.Type, &IncompleteFramebufferError{Status: s}))
	}
	f.complete = true
}

// Status attaches the current images and returns the framebuffer's
// completeness as an *IncompleteFramebufferError, or nil.
func (t *Attached[A, PA]) Status() error {
	t.sync()
	return t.fb.Status()
}

func (t *Attached[A, PA]) member(i int) AttachmentMember {
	l := t.fb.layout
	if i < 0 || i >= len(l.Members) {
		panic(fmt.Sprintf("opengl: %s has no attachment %d", l.Type, i))
	}
	return l.Members[i]
}

func (t *Attached[A, PA]) colorMember(i int, class FormatClass) AttachmentMember {
	m := t.member(i)
	if m.Class != class {
		panic(fmt.Sprintf("opengl: %s attachment %q is a %s attachment, not %s", t.fb.layout.Type, m.Name, m.Class, class))
	}
	return m
}

// ClearColorAll clears every normalized or floating-point color member.
// Integer members are left untouched.
func (t *Attached[A, PA]) ClearColorAll(rgba [4]float32) {
	t.bindDraw()
	t.fb.ctx.prepareClear()
	for _, m := range t.fb.layout.Members {
		if m.Class == ClassColor {
			t.fb.ctx.fns.ClearBufferfv(driver.COLOR, int32(m.DrawBuffer), rgba[:])
		}
	}
}

// ClearColor clears the ColorAttachment member at enumeration index i.
func (t *Attached[A, PA]) ClearColor(i int, rgba [4]float32) {
	m := t.colorMember(i, ClassColor)
	t.bindDraw()
	t.fb.ctx.prepareClear()
	t.fb.ctx.fns.ClearBufferfv(driver.COLOR, int32(m.DrawBuffer), rgba[:])
}

// ClearColorInt clears the IntColorAttachment member at index i.
func (t *Attached[A, PA]) ClearColorInt(i int, v [4]int32) {
	m := t.colorMember(i, ClassInt)
	t.bindDraw()
	t.fb.ctx.prepareClear()
	t.fb.ctx.fns.ClearBufferiv(driver.COLOR, int32(m.DrawBuffer), v[:])
}

// ClearColorUint clears the UintColorAttachment member at index i.
func (t *Attached[A, PA]) ClearColorUint(i int, v [4]uint32) {
	m := t.colorMember(i, ClassUint)
	t.bindDraw()
	t.fb.ctx.prepareClear()
	t.fb.ctx.fns.ClearBufferuiv(driver.COLOR, int32(m.DrawBuffer), v[:])
}

func (t *Attached[A, PA]) depthMember(stencil bool) *AttachmentImage {
	l := t.fb.layout
	if l.Depth < 0 {
		panic(fmt.Sprintf("opengl: %s has no depth attachment", l.Type))
	}
	ai := memberImage(l, t.a, l.Depth)
	if stencil && ai.Image != nil && ai.Image.Format().Class() != ClassDepthStencil {
		panic(fmt.Sprintf("opengl: %s depth attachment %q has no stencil bits", l.Type, l.Members[l.Depth].Name))
	}
	return ai
}

// ClearDepth clears the depth member.
func (t *Attached[A, PA]) ClearDepth(depth float32) {
	t.depthMember(false)
	t.bindDraw()
	t.fb.ctx.prepareClear()
	t.fb.ctx.fns.ClearBufferfv(driver.DEPTH, 0, []float32{depth})
}

// ClearStencil clears the stencil bits of a depth-stencil member.
func (t *Attached[A, PA]) ClearStencil(s int32) {
	t.depthMember(true)
	t.bindDraw()
	t.fb.ctx.prepareClear()
	t.fb.ctx.fns.ClearBufferiv(driver.STENCIL, 0, []int32{s})
}

// ClearDepthStencil clears both parts of a depth-stencil member.
func (t *Attached[A, PA]) ClearDepthStencil(depth float32, s int32) {
	t.depthMember(true)
	t.bindDraw()
	t.fb.ctx.prepareClear()
	t.fb.ctx.fns.ClearBufferfi(driver.DEPTH_STENCIL, 0, depth, s)
}

// ReadPixels returns the pixels of rect r of the member at enumeration
// index i, tightly packed in the member's pixel format.
func (t *Attached[A, PA]) ReadPixels(i int, r Rect) []byte {
	m := t.member(i)
	ai := memberImage(t.fb.layout, t.a, i)
	t.bindDraw()
	if ai.Image.Samples() > 0 {
		panic(fmt.Sprintf("opengl: attachment %q is multisampled; resolve it with BlitTo before reading", m.Name))
	}
	if s := attachmentSize(ai); !r.within(s) {
		panic(fmt.Sprintf("opengl: read %+v outside attachment %q of size %v", r, m.Name, s))
	}
	ctx := t.fb.ctx
	ctx.readFramebuffer.set(t.fb.handle)
	if m.IsColor() {
		t.fb.setReadBuffer(m.Point)
	}
	f := ai.Image.Format()
	out := make([]byte, f.ImageBytes(Size2D(r.W, r.H)))
	pf, pt := f.PixelFormat()
	ctx.fns.ReadPixels(int32(r.X), int32(r.Y), int32(r.W), int32(r.H), pf, pt, out)
	return out
}

// ReadPixelsOf is ReadPixels with the member selected by pointer. pick must
// return a pointer to one of the members of the attachments value it is
// given, as in
//
//	pixels := target.ReadPixelsOf(func(a *GBuffer) any { return &a.Normal }, r)
//
// A pointer anywhere else panics.
func (t *Attached[A, PA]) ReadPixelsOf(pick func(*A) any, r Rect) []byte {
	i := memberAt(t.fb.layout, t.a, pick(t.a))
	if i < 0 {
		panic(fmt.Sprintf("opengl: ReadPixelsOf selector does not point at a member of this %s value", t.fb.layout.Type))
	}
	return t.ReadPixels(i, r)
}

// BlitMask selects the buffers a blit copies.
type BlitMask uint8

const (
	BlitColor BlitMask = 1 << iota
	BlitDepth
	BlitStencil
)

func (m BlitMask) enum() driver.Enum {
	var e driver.Enum
	if m&BlitColor != 0 {
		e |= driver.COLOR_BUFFER_BIT
	}
	if m&BlitDepth != 0 {
		e |= driver.DEPTH_BUFFER_BIT
	}
	if m&BlitStencil != 0 {
		e |= driver.STENCIL_BUFFER_BIT
	}
	return e
}

// BlitTo copies rect src of this framebuffer to rect dst of another
// target, scaling with filter. Color is read from the first color member.
// Blitting a multisampled framebuffer to a single-sampled one resolves it.
func (t *Attached[A, PA]) BlitTo(dst Target, src, dstRect Rect, mask BlitMask, filter Filter) {
	if mask&(BlitDepth|BlitStencil) != 0 && filter != Nearest {
		panic("opengl: depth and stencil blits must use Nearest filtering")
	}
	ctx := t.fb.ctx
	if dst.Context() != ctx {
		panic("opengl: blit destination belongs to a different context")
	}
	l := t.fb.layout
	t.bindDraw()
	ctx.readFramebuffer.set(t.fb.handle)
	if mask&BlitColor != 0 {
		first := l.colorMember(0)
		if first < 0 {
			panic(fmt.Sprintf("opengl: %s has no color attachment to blit", l.Type))
		}
		t.fb.setReadBuffer(l.Members[first].Point)
	}
	dst.bindDraw()
	ctx.prepareClear()
	ctx.fns.BlitFramebuffer(
		int32(src.X), int32(src.Y), int32(src.X+src.W), int32(src.Y+src.H),
		int32(dstRect.X), int32(dstRect.Y), int32(dstRect.X+dstRect.W), int32(dstRect.Y+dstRect.H),
		mask.enum(), filter.enum())
}
