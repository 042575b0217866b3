package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glsafe/driver"
)

type gbuffer struct {
	Depth  DepthAttachment
	Albedo ColorAttachment
	IDs    UintColorAttachment
}

func (g *gbuffer) AttachmentMembers(r *AttachmentRegistry) {
	r.Add("depth", &g.Depth)
	r.Add("albedo", &g.Albedo)
	r.Add("ids", &g.IDs)
}

type twoDepth struct {
	A DepthAttachment
	B DepthStencilAttachment
}

func (d *twoDepth) AttachmentMembers(r *AttachmentRegistry) {
	r.Add("a", &d.A)
	r.Add("b", &d.B)
}

func newGBuffer(t *testing.T, ctx *Context) *gbuffer {
	t.Helper()
	albedo, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(4, 4))
	require.NoError(t, err)
	ids, err := NewTexture[Tex2D](ctx, R32UI, Size2D(4, 4))
	require.NoError(t, err)
	depth, err := NewRenderbuffer(ctx, Depth24, 4, 4, 0)
	require.NoError(t, err)
	return &gbuffer{
		Depth:  DepthAttachment{Image: depth},
		Albedo: ColorAttachment{Image: albedo},
		IDs:    UintColorAttachment{Image: ids},
	}
}

func TestAttachmentLayout(t *testing.T) {
	l := CheckAttachments[gbuffer]()
	require.Len(t, l.Members, 3)
	assert.Equal(t, 2, l.Colors)
	assert.Equal(t, 0, l.Depth)

	assert.Equal(t, driver.Enum(driver.DEPTH_ATTACHMENT), l.Members[0].Point)
	assert.False(t, l.Members[0].IsColor())
	assert.Equal(t, driver.Enum(driver.COLOR_ATTACHMENT0), l.Members[1].Point)
	assert.Equal(t, 0, l.Members[1].DrawBuffer)
	assert.Equal(t, driver.Enum(driver.COLOR_ATTACHMENT1), l.Members[2].Point)
	assert.Equal(t, 1, l.Members[2].DrawBuffer)
	assert.Equal(t, ClassUint, l.Members[2].Class)

	assert.PanicsWithValue(t,
		`opengl: opengl.twoDepth declares more than one depth attachment ("a" and "b")`,
		func() { CheckAttachments[twoDepth]() })
}

func TestFramebufferAttachesLazily(t *testing.T) {
	ctx, gl := newTestContext(t)
	fb := NewFramebuffer[gbuffer](ctx)
	g := newGBuffer(t, ctx)
	target := fb.Attach(g)
	h := uint32(fb.Handle())
	assert.Empty(t, gl.AttachmentPoints(h))

	target.ClearColor(1, [4]float32{1, 0, 0, 1})
	assert.Equal(t, []uint32{driver.COLOR_ATTACHMENT0, driver.COLOR_ATTACHMENT1, driver.DEPTH_ATTACHMENT}, gl.AttachmentPoints(h))
	assert.Equal(t, []uint32{driver.COLOR_ATTACHMENT0, driver.COLOR_ATTACHMENT1}, gl.DrawBuffersOf(h))
	kind, name, ok := gl.Attachment(h, driver.DEPTH_ATTACHMENT)
	require.True(t, ok)
	assert.Equal(t, "renderbuffer", kind)
	assert.Equal(t, uint32(g.Depth.Image.Handle()), name)
	assert.Equal(t, Size2D(4, 4), target.Size())

	// Nothing changed, so nothing is attached or checked again.
	gl.Reset()
	target.ClearDepth(1)
	assert.Zero(t, gl.Count("FramebufferTexture"))
	assert.Zero(t, gl.Count("FramebufferRenderbuffer"))
	assert.Zero(t, gl.Count("CheckFramebufferStatus"))
	assert.Equal(t, 1, gl.Count("ClearBufferfv"))

	other, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(2, 2))
	require.NoError(t, err)
	g.Albedo.Image = other
	gl.Reset()
	target.ClearColorAll([4]float32{})
	assert.Equal(t, 1, gl.Count("FramebufferTexture"))
	assert.Equal(t, 1, gl.Count("CheckFramebufferStatus"))
	// Integer members are left alone.
	assert.Equal(t, 1, gl.Count("ClearBufferfv"))
	assert.Equal(t, Size2D(2, 2), target.Size())
}

func TestFramebufferReattachesReusedName(t *testing.T) {
	ctx, gl := newTestContext(t)
	gl.ReuseNames = true
	fb := NewFramebuffer[gbuffer](ctx)
	g := newGBuffer(t, ctx)
	target := fb.Attach(g)
	target.ClearDepth(1)

	old := g.Albedo.Image.(*Texture[Tex2D])
	name := old.Handle()
	old.Delete()
	replacement, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(4, 4))
	require.NoError(t, err)
	require.Equal(t, name, replacement.Handle())
	g.Albedo.Image = replacement

	gl.Reset()
	target.ClearDepth(1)
	assert.Equal(t, 1, gl.Count("FramebufferTexture"))
	assert.Equal(t, 1, gl.Count("CheckFramebufferStatus"))
}

func TestFramebufferClearAndRead(t *testing.T) {
	ctx, gl := newTestContext(t)
	fb := NewFramebuffer[gbuffer](ctx)
	g := newGBuffer(t, ctx)
	target := fb.Attach(g)

	target.ClearColor(1, [4]float32{1, 0, 0, 1})
	px := target.ReadPixels(1, Rect{W: 2, H: 2})
	assert.Equal(t, []byte{255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255}, px)
	assert.Equal(t, []any{uint32(driver.COLOR_ATTACHMENT0)}, gl.Calls("ReadBuffer")[0].Args)

	byPtr := target.ReadPixelsOf(func(g *gbuffer) any { return &g.Albedo }, Rect{W: 2, H: 2})
	assert.Equal(t, px, byPtr)

	target.ClearColorUint(2, [4]uint32{7})
	assert.Len(t, target.ReadPixels(2, Rect{X: 3, Y: 3, W: 1, H: 1}), 4)

	stranger := &gbuffer{}
	assert.Panics(t, func() {
		target.ReadPixelsOf(func(*gbuffer) any { return &stranger.Albedo }, Rect{W: 1, H: 1})
	})
	assert.Panics(t, func() { target.ReadPixels(1, Rect{X: 3, W: 2, H: 1}) })
	assert.Panics(t, func() { target.ReadPixels(5, Rect{W: 1, H: 1}) })
	assert.Panics(t, func() { target.ClearColor(2, [4]float32{}) })
	assert.Panics(t, func() { target.ClearColorInt(1, [4]int32{}) })
	assert.Panics(t, func() { target.ClearStencil(0) })
}

func TestFramebufferRejectsBadImages(t *testing.T) {
	ctx, _ := newTestContext(t)
	fb := NewFramebuffer[gbuffer](ctx)

	g := newGBuffer(t, ctx)
	g.Albedo.Image = g.Depth.Image
	assert.Panics(t, func() { fb.Attach(g).ClearColorAll([4]float32{}) })

	g = newGBuffer(t, ctx)
	g.IDs.Image = nil
	assert.Panics(t, func() { fb.Attach(g).ClearDepth(1) })

	g = newGBuffer(t, ctx)
	g.Albedo.Level = 1
	assert.Panics(t, func() { fb.Attach(g).ClearDepth(1) })

	g = newGBuffer(t, ctx)
	g.Albedo.Image.(*Texture[Tex2D]).Delete()
	assert.Panics(t, func() { fb.Attach(g).ClearDepth(1) })

	assert.Panics(t, func() { fb.Attach(nil) })
}

func TestFramebufferLayers(t *testing.T) {
	ctx, gl := newTestContext(t)
	fb := NewFramebuffer[DefaultAttachments](ctx)
	cube, err := NewTexture[TexCube](ctx, RGBA8, Size2D(8, 8))
	require.NoError(t, err)

	target := fb.Attach(&DefaultAttachments{Color: ColorAttachment{Image: cube, Layer: 2}})
	target.ClearColorAll([4]float32{})
	c := gl.Calls("FramebufferTexture2D")
	require.Len(t, c, 1)
	assert.Equal(t, uint32(driver.TEXTURE_CUBE_MAP_POSITIVE_X+2), c[0].Args[2])

	arr, err := NewTexture[Tex2DArray](ctx, RGBA8, Size{8, 8, 3})
	require.NoError(t, err)
	target.Attachments().Color = ColorAttachment{Image: arr, Layer: 2}
	target.ClearColorAll([4]float32{})
	c = gl.Calls("FramebufferTextureLayer")
	require.Len(t, c, 1)
	assert.Equal(t, int32(2), c[0].Args[4])

	target.Attachments().Color = ColorAttachment{Image: arr, Layer: 3}
	assert.Panics(t, func() { target.ClearColorAll([4]float32{}) })

	flat, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(8, 8))
	require.NoError(t, err)
	target.Attachments().Color = ColorAttachment{Image: flat, Layered: true}
	assert.Panics(t, func() { target.ClearColorAll([4]float32{}) })
}

func TestFramebufferIncomplete(t *testing.T) {
	ctx, gl := newTestContext(t)
	fb := NewFramebuffer[gbuffer](ctx)
	target := fb.Attach(newGBuffer(t, ctx))
	gl.FramebufferStatus = driver.FRAMEBUFFER_INCOMPLETE_ATTACHMENT

	err := target.Status()
	var ferr *IncompleteFramebufferError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, driver.Enum(driver.FRAMEBUFFER_INCOMPLETE_ATTACHMENT), ferr.Status)
	assert.Contains(t, err.Error(), "incomplete attachment")
	assert.Panics(t, func() { target.ClearColorAll([4]float32{}) })

	gl.FramebufferStatus = 0
	assert.NoError(t, target.Status())
	assert.NotPanics(t, func() { target.ClearColorAll([4]float32{}) })
}

func TestFramebufferColorAttachmentLimit(t *testing.T) {
	_, gl := newTestContext(t)
	gl.Limits[driver.MAX_DRAW_BUFFERS] = 1
	ctx, err := NewContext(gl)
	require.NoError(t, err)
	assert.Panics(t, func() { NewFramebuffer[gbuffer](ctx) })
}

func TestFramebufferDelete(t *testing.T) {
	ctx, gl := newTestContext(t)
	fb := NewFramebuffer[DefaultAttachments](ctx)
	tex, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(2, 2))
	require.NoError(t, err)
	target := fb.Attach(&DefaultAttachments{Color: ColorAttachment{Image: tex}})
	target.ClearColorAll([4]float32{})
	require.Equal(t, uint32(fb.Handle()), gl.Bound(driver.DRAW_FRAMEBUFFER))

	fb.Delete()
	assert.Zero(t, gl.Bound(driver.DRAW_FRAMEBUFFER))
	assert.Zero(t, gl.Live()["framebuffer"])
	assert.False(t, tex.Deleted())
	assert.Panics(t, func() { target.ClearColorAll([4]float32{}) })
}

func TestDefaultFramebuffer(t *testing.T) {
	ctx, gl := newTestContext(t)
	d, err := ctx.DefaultFramebuffer(64, 32)
	require.NoError(t, err)
	assert.Equal(t, Size2D(64, 32), d.Size())

	_, err = ctx.DefaultFramebuffer(64, 32)
	assert.ErrorIs(t, err, ErrDefaultFramebufferInUse)

	d.ClearColor([4]float32{0, 1, 0, 1})
	assert.Equal(t, []byte{0, 255, 0, 255}, d.ReadPixels(Rect{X: 63, Y: 31, W: 1, H: 1}))
	assert.Panics(t, func() { d.ReadPixels(Rect{X: 63, W: 2, H: 1}) })
	assert.Zero(t, gl.Bound(driver.DRAW_FRAMEBUFFER))

	d.Resize(128, 64)
	assert.Equal(t, Size2D(128, 64), d.Size())

	d.Release()
	d.Release()
	assert.Panics(t, func() { d.ClearDepth(1) })
	d2, err := ctx.DefaultFramebuffer(8, 8)
	require.NoError(t, err)
	assert.NotNil(t, d2)
}

func TestBlit(t *testing.T) {
	ctx, gl := newTestContext(t)
	fb := NewFramebuffer[gbuffer](ctx)
	target := fb.Attach(newGBuffer(t, ctx))
	d, err := ctx.DefaultFramebuffer(8, 8)
	require.NoError(t, err)
	r := Rect{W: 4, H: 4}

	assert.PanicsWithValue(t, "opengl: depth and stencil blits must use Nearest filtering", func() {
		target.BlitTo(d, r, r, BlitColor|BlitDepth, Linear)
	})

	target.BlitTo(d, r, Rect{W: 8, H: 8}, BlitColor, Linear)
	c := gl.Calls("BlitFramebuffer")
	require.Len(t, c, 1)
	assert.Equal(t, []any{
		int32(0), int32(0), int32(4), int32(4),
		int32(0), int32(0), int32(8), int32(8),
		uint32(driver.COLOR_BUFFER_BIT), uint32(driver.LINEAR),
	}, c[0].Args)
	assert.Equal(t, uint32(fb.Handle()), gl.Bound(driver.READ_FRAMEBUFFER))
	assert.Zero(t, gl.Bound(driver.DRAW_FRAMEBUFFER))

	other, _ := newTestContext(t)
	od, err := other.DefaultFramebuffer(8, 8)
	require.NoError(t, err)
	assert.Panics(t, func() { target.BlitTo(od, r, r, BlitColor, Nearest) })
}
