package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glsafe/driver"
)

func TestTextureLevels(t *testing.T) {
	ctx, gl := newTestContext(t)
	base := make([]byte, 4*4*4)
	base[0] = 0xAB
	tex, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(4, 4), base, make([]byte, 2*2*4))
	require.NoError(t, err)

	assert.Equal(t, 2, tex.Levels())
	assert.Equal(t, 3, tex.MaxLevels())
	assert.Equal(t, Size2D(2, 2), tex.LevelSize(1))
	h := uint32(tex.Handle())

	w, hh, _, data, ok := gl.TextureLevel(h, 0, 1)
	require.True(t, ok)
	assert.Equal(t, int32(2), w)
	assert.Equal(t, int32(2), hh)
	assert.Len(t, data, 16)
	assert.Equal(t, int32(1), gl.TextureParam(h, driver.TEXTURE_MAX_LEVEL))
	assert.Equal(t, int32(driver.LINEAR_MIPMAP_LINEAR), gl.TextureParam(h, driver.TEXTURE_MIN_FILTER))
	assert.Equal(t, base, tex.ReadLevel(0))

	tex.SetLevel(2, make([]byte, 4))
	assert.Equal(t, 3, tex.Levels())
	assert.Equal(t, int32(2), gl.TextureParam(h, driver.TEXTURE_MAX_LEVEL))
	assert.Panics(t, func() { tex.SetLevel(3, make([]byte, 4)) })

	sparse, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(4, 4))
	require.NoError(t, err)
	assert.Panics(t, func() { sparse.SetLevel(2, make([]byte, 4)) })
	assert.Equal(t, 1, sparse.Levels())
	assert.Panics(t, func() { sparse.ReadLevel(1) })
	sparse.SetLevel(1, make([]byte, 16))
	assert.Equal(t, 2, sparse.Levels())
}

func TestTextureBlockCount(t *testing.T) {
	ctx, _ := newTestContext(t)
	assert.PanicsWithValue(t,
		"opengl: 2D texture level 0 (8x8x1, DXT1): expected 32 bytes (4 blocks), found 31",
		func() { NewTexture[Tex2D](ctx, DXT1, Size2D(8, 8), make([]byte, 31)) })

	// Partial blocks round up.
	tex, err := NewTexture[Tex2D](ctx, DXT5, Size2D(5, 3), make([]byte, 2*16))
	require.NoError(t, err)
	assert.Equal(t, DXT5, tex.Format())

	assert.Panics(t, func() { NewTexture[Tex2D](ctx, DXT5, Size2D(4, 4)) })
	assert.Panics(t, func() { NewTexture[Tex3D](ctx, DXT1, Size{4, 4, 4}, make([]byte, 4*8)) })
}

func TestTextureDimensionLimits(t *testing.T) {
	ctx, _ := newTestContext(t)
	_, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(8192, 8))
	var derr *DimensionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, Size{4096, 4096, 1}, derr.Max)
	assert.Equal(t, Size2D(8192, 8), derr.Requested)

	_, err = NewTexture[Tex3D](ctx, R8, Size{16, 16, 512})
	require.ErrorAs(t, err, &derr)

	_, err = NewMultisampleTexture[Tex2DMultisample](ctx, RGBA8, Size2D(16, 16), 8, true)
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 4, derr.MaxSamples)
	assert.Contains(t, err.Error(), "8 samples requested")
}

func TestTextureUnsupportedFormat(t *testing.T) {
	ctx, _ := newTestContext(t, WithExtensions())
	_, err := NewTexture[Tex2D](ctx, DXT1, Size2D(4, 4), make([]byte, 8))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NewRenderbuffer(ctx, RGBA8, 4, 4, 0)
	assert.NoError(t, err)

	_, err = NewTexture[Tex2D](ctx, RGTC2, Size2D(4, 4), make([]byte, 16))
	assert.NoError(t, err)
}

func TestCubeMap(t *testing.T) {
	ctx, gl := newTestContext(t)
	faces := make([]byte, 6*2*2*4)
	for i := 0; i < 6; i++ {
		faces[i*16] = byte(i + 1)
	}
	tex, err := NewTexture[TexCube](ctx, RGBA8, Size2D(2, 2), faces)
	require.NoError(t, err)
	for face := int32(0); face < 6; face++ {
		_, _, _, data, ok := gl.TextureLevel(uint32(tex.Handle()), face, 0)
		require.True(t, ok)
		assert.Equal(t, byte(face+1), data[0])
	}
	assert.Equal(t, faces, tex.ReadLevel(0))

	assert.Panics(t, func() { NewTexture[TexCube](ctx, RGBA8, Size2D(2, 4)) })
}

func TestArrayLayersDoNotShrink(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex, err := NewTexture[Tex2DArray](ctx, R8, Size{8, 8, 3})
	require.NoError(t, err)
	assert.Equal(t, Size{4, 4, 3}, tex.LevelSize(1))
	assert.Equal(t, 4, tex.MaxLevels())

	tex1, err := NewTexture[Tex1DArray](ctx, R8, Size2D(8, 5))
	require.NoError(t, err)
	assert.Equal(t, Size2D(4, 5), tex1.LevelSize(1))
}

func TestWriteRegion(t *testing.T) {
	ctx, gl := newTestContext(t)
	tex, err := NewTexture[Tex2D](ctx, RG8, Size2D(4, 4))
	require.NoError(t, err)

	tex.WriteRegion(0, Region{X: 1, Y: 1, W: 2, H: 2}, make([]byte, 8))
	calls := gl.Calls("TexSubImage2D")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{uint32(driver.TEXTURE_2D), int32(0), int32(1), int32(1), int32(2), int32(2), 8}, calls[0].Args)

	assert.Panics(t, func() { tex.WriteRegion(0, Region{X: 3, W: 2, H: 1}, make([]byte, 4)) })
	assert.Panics(t, func() { tex.WriteRegion(0, Region{W: 1, H: 1}, make([]byte, 3)) })
	assert.Panics(t, func() { tex.WriteRegion(1, Region{W: 1, H: 1}, make([]byte, 2)) })

	// A cube region spanning faces writes every face it covers.
	cube, err := NewTexture[TexCube](ctx, RGBA8, Size2D(2, 2), make([]byte, 6*2*2*4))
	require.NoError(t, err)
	data := make([]byte, 2*2*2*4)
	for i := range data {
		data[i] = byte(1 + i/16)
	}
	cube.WriteRegion(0, Region{Z: 1, W: 2, H: 2, D: 2}, data)
	h := uint32(cube.Handle())
	for face, want := range map[int32]byte{0: 0, 1: 1, 2: 2, 3: 0} {
		_, _, _, got, ok := gl.TextureLevel(h, face, 0)
		require.True(t, ok)
		assert.Equal(t, want, got[0], "face %d", face)
	}
	assert.Panics(t, func() { cube.WriteRegion(0, Region{Z: 5, W: 2, H: 2, D: 2}, make([]byte, 32)) })
}

func TestTextureSamplingDiff(t *testing.T) {
	ctx, gl := newTestContext(t)
	tex, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(2, 2))
	require.NoError(t, err)
	h := uint32(tex.Handle())
	assert.Equal(t, int32(driver.LINEAR), gl.TextureParam(h, driver.TEXTURE_MIN_FILTER))
	assert.Equal(t, int32(driver.REPEAT), gl.TextureParam(h, driver.TEXTURE_WRAP_S))

	gl.Reset()
	tex.SetSampling(SamplingParams{WrapS: ClampToEdge})
	calls := gl.Calls("TexParameteri", "TexParameterf", "TexParameterfv")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{uint32(driver.TEXTURE_2D), uint32(driver.TEXTURE_WRAP_S), int32(driver.CLAMP_TO_EDGE)}, calls[0].Args)

	gl.Reset()
	tex.SetSampling(SamplingParams{WrapS: ClampToEdge})
	assert.Empty(t, gl.Calls("TexParameteri", "TexParameterf", "TexParameterfv"))

	tex.SetSampling(SamplingParams{WrapS: ClampToEdge, Anisotropy: 64})
	assert.Equal(t, float32(16), gl.TextureParam(h, driver.TEXTURE_MAX_ANISOTROPY))

	tex.SetSampling(SamplingParams{DepthCompare: true, CompareFunc: GreaterEqual})
	assert.Equal(t, int32(driver.COMPARE_REF_TO_TEXTURE), gl.TextureParam(h, driver.TEXTURE_COMPARE_MODE))
	assert.Equal(t, int32(driver.GEQUAL), gl.TextureParam(h, driver.TEXTURE_COMPARE_FUNC))
}

func TestRectangleTextureSampling(t *testing.T) {
	ctx, gl := newTestContext(t)
	tex, err := NewTexture[TexRectangle](ctx, RGBA8, Size2D(3, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, tex.MaxLevels())
	h := uint32(tex.Handle())
	assert.Equal(t, int32(driver.CLAMP_TO_EDGE), gl.TextureParam(h, driver.TEXTURE_WRAP_S))

	tex.SetSampling(SamplingParams{Mip: MipLinear, WrapT: ClampToBorder})
	assert.Equal(t, int32(driver.LINEAR), gl.TextureParam(h, driver.TEXTURE_MIN_FILTER))
	assert.Equal(t, int32(driver.CLAMP_TO_BORDER), gl.TextureParam(h, driver.TEXTURE_WRAP_T))
	assert.Panics(t, func() { tex.SetSampling(SamplingParams{WrapS: MirroredRepeat}) })
}

func TestTextureSwizzle(t *testing.T) {
	ctx, gl := newTestContext(t)
	tex, err := NewTexture[Tex2D](ctx, R8, Size2D(1, 1))
	require.NoError(t, err)
	h := uint32(tex.Handle())

	gl.Reset()
	tex.SetSwizzle(Swizzle{G: SwizzleRed, B: SwizzleRed, A: SwizzleOne})
	assert.Equal(t, 3, gl.Count("TexParameteri"))
	assert.Equal(t, int32(driver.RED), gl.TextureParam(h, driver.TEXTURE_SWIZZLE_G))
	assert.Equal(t, int32(driver.ONE), gl.TextureParam(h, driver.TEXTURE_SWIZZLE_A))

	gl.Reset()
	tex.SetSwizzle(Swizzle{R: SwizzleRed, G: SwizzleRed, B: SwizzleRed, A: SwizzleOne})
	assert.Zero(t, gl.Count("TexParameteri"))
}

func TestSamplerObject(t *testing.T) {
	ctx, gl := newTestContext(t)
	s := NewSampler(ctx, SamplingParams{Min: Nearest, Mag: Nearest, Mip: MipNearest})
	h := uint32(s.Handle())
	assert.Equal(t, int32(driver.NEAREST_MIPMAP_NEAREST), gl.SamplerParam(h, driver.TEXTURE_MIN_FILTER))
	assert.Equal(t, float32(1000), gl.SamplerParam(h, driver.TEXTURE_MAX_LOD))

	gl.Reset()
	s.Set(SamplingParams{Min: Nearest, Mag: Nearest, Mip: MipNearest, BorderColor: [4]float32{1, 0, 0, 1}})
	calls := gl.Calls("SamplerParameteri", "SamplerParameterf", "SamplerParameterfv")
	require.Len(t, calls, 1)
	assert.Equal(t, "SamplerParameterfv", calls[0].Name)

	ctx.units.bindSampler(2, s.handle)
	s.Delete()
	assert.Zero(t, gl.BoundSampler(2))
	assert.Zero(t, gl.Live()["sampler"])
}

func TestTextureDeleteUnbinds(t *testing.T) {
	ctx, gl := newTestContext(t)
	tex, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(1, 1))
	require.NoError(t, err)
	internal := uint32(ctx.internalUnit())
	assert.Equal(t, uint32(tex.Handle()), gl.BoundTexture(internal, driver.TEXTURE_2D))

	tex.Delete()
	assert.Zero(t, gl.BoundTexture(internal, driver.TEXTURE_2D))
	assert.True(t, tex.Deleted())
	assert.Panics(t, func() { tex.SetSwizzle(Swizzle{R: SwizzleZero}) })
}

func TestMultisampleTexture(t *testing.T) {
	ctx, gl := newTestContext(t)
	tex, err := NewMultisampleTexture[Tex2DMultisample](ctx, RGBA16F, Size2D(8, 8), 4, true)
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Samples())
	assert.Equal(t, 1, gl.Count("TexImage2DMultisample"))
	assert.Panics(t, func() { tex.SetSampling(SamplingParams{}) })
	assert.Panics(t, func() { NewTexture[Tex2DMultisample](ctx, RGBA8, Size2D(8, 8)) })
}

func TestRenderbuffer(t *testing.T) {
	ctx, gl := newTestContext(t)
	rb, err := NewRenderbuffer(ctx, Depth24Stencil8, 64, 32, 4)
	require.NoError(t, err)
	assert.Equal(t, Size2D(64, 32), rb.Size())
	assert.Equal(t, 4, rb.Samples())
	calls := gl.Calls("RenderbufferStorageMultisample")
	require.Len(t, calls, 1)
	assert.Equal(t, int32(4), calls[0].Args[1])

	_, err = NewRenderbuffer(ctx, RGBA8, 8192, 8, 0)
	var derr *DimensionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "renderbuffer", derr.Resource)

	assert.Panics(t, func() { NewRenderbuffer(ctx, DXT1, 4, 4, 0) })
	rb.Delete()
	assert.Zero(t, gl.Live()["renderbuffer"])
}

func TestPixelBytes(t *testing.T) {
	px := []uint32{0x01020304, 0x05060708}
	b := Bytes(px)
	assert.Len(t, b, 8)
	assert.Equal(t, px, FromBytes[uint32](b))
	assert.Panics(t, func() { FromBytes[uint32](make([]byte, 5)) })
}
