package opengl

import (
	"fmt"
	"math/bits"
	"reflect"

	"glsafe/driver"
	"glsafe/glsl"
)

// TextureKind is implemented by the marker types Tex1D, Tex2D and so on,
// which select a texture target.
type TextureKind interface {
	kind() *kindInfo
}

type kindInfo struct {
	name   string
	target driver.Enum
	dim    glsl.SamplerDim
	// dims is the number of Size dimensions in use. For array kinds the
	// last one counts layers.
	dims        int
	layered     bool
	faces       int
	multisample bool
	mipmapped   bool
	compressed  bool
}

type (
	Tex1D                 struct{}
	Tex2D                 struct{}
	Tex3D                 struct{}
	TexCube               struct{}
	Tex1DArray            struct{}
	Tex2DArray            struct{}
	Tex2DMultisample      struct{}
	Tex2DMultisampleArray struct{}
	TexRectangle          struct{}
)

var (
	kind1D        = kindInfo{name: "1D texture", target: driver.TEXTURE_1D, dim: glsl.Dim1D, dims: 1, faces: 1, mipmapped: true}
	kind2D        = kindInfo{name: "2D texture", target: driver.TEXTURE_2D, dim: glsl.Dim2D, dims: 2, faces: 1, mipmapped: true, compressed: true}
	kind3D        = kindInfo{name: "3D texture", target: driver.TEXTURE_3D, dim: glsl.Dim3D, dims: 3, faces: 1, mipmapped: true}
	kindCube      = kindInfo{name: "cube map", target: driver.TEXTURE_CUBE_MAP, dim: glsl.DimCube, dims: 2, faces: 6, mipmapped: true, compressed: true}
	kind1DArray   = kindInfo{name: "1D array texture", target: driver.TEXTURE_1D_ARRAY, dim: glsl.Dim1DArray, dims: 2, layered: true, faces: 1, mipmapped: true}
	kind2DArray   = kindInfo{name: "2D array texture", target: driver.TEXTURE_2D_ARRAY, dim: glsl.Dim2DArray, dims: 3, layered: true, faces: 1, mipmapped: true, compressed: true}
	kind2DMS      = kindInfo{name: "multisample texture", target: driver.TEXTURE_2D_MULTISAMPLE, dim: glsl.Dim2DMultisample, dims: 2, faces: 1, multisample: true}
	kind2DMSArray = kindInfo{name: "multisample array texture", target: driver.TEXTURE_2D_MULTISAMPLE_ARRAY, dim: glsl.Dim2DMultisampleArray, dims: 3, layered: true, faces: 1, multisample: true}
	kindRect      = kindInfo{name: "rectangle texture", target: driver.TEXTURE_RECTANGLE, dim: glsl.Dim2DRect, dims: 2, faces: 1}
)

func (Tex1D) kind() *kindInfo                 { return &kind1D }
func (Tex2D) kind() *kindInfo                 { return &kind2D }
func (Tex3D) kind() *kindInfo                 { return &kind3D }
func (TexCube) kind() *kindInfo               { return &kindCube }
func (Tex1DArray) kind() *kindInfo            { return &kind1DArray }
func (Tex2DArray) kind() *kindInfo            { return &kind2DArray }
func (Tex2DMultisample) kind() *kindInfo      { return &kind2DMS }
func (Tex2DMultisampleArray) kind() *kindInfo { return &kind2DMSArray }
func (TexRectangle) kind() *kindInfo          { return &kindRect }

// normalize sets unused dimensions to 1.
func (k *kindInfo) normalize(s Size) Size {
	if k.dims < 3 {
		s.D = 1
	}
	if k.dims < 2 {
		s.H = 1
	}
	return s
}

func (k *kindInfo) maxSize(l Limits) Size {
	switch k.target {
	case driver.TEXTURE_1D:
		return Size{l.MaxTextureSize, 1, 1}
	case driver.TEXTURE_3D:
		return Size{l.Max3DTextureSize, l.Max3DTextureSize, l.Max3DTextureSize}
	case driver.TEXTURE_CUBE_MAP:
		return Size{l.MaxCubeMapSize, l.MaxCubeMapSize, 1}
	case driver.TEXTURE_1D_ARRAY:
		return Size{l.MaxTextureSize, l.MaxArrayLayers, 1}
	case driver.TEXTURE_2D_ARRAY, driver.TEXTURE_2D_MULTISAMPLE_ARRAY:
		return Size{l.MaxTextureSize, l.MaxTextureSize, l.MaxArrayLayers}
	case driver.TEXTURE_RECTANGLE:
		return Size{l.MaxRectangleSize, l.MaxRectangleSize, 1}
	}
	return Size{l.MaxTextureSize, l.MaxTextureSize, 1}
}

// levelSize halves every spatial dimension per level, flooring, with a
// minimum of 1. Layer counts do not shrink.
func (k *kindInfo) levelSize(base Size, level int) Size {
	half := func(v int) int { return max(v>>level, 1) }
	s := Size{half(base.W), base.H, base.D}
	if k.dims >= 2 && !(k.layered && k.dims == 2) {
		s.H = half(base.H)
	}
	if k.dims == 3 && !k.layered {
		s.D = half(base.D)
	}
	return s
}

// maxLevels is the length of the full mip chain for a base size.
func (k *kindInfo) maxLevels(base Size) int {
	if !k.mipmapped {
		return 1
	}
	m := base.W
	if k.dims >= 2 && !(k.layered && k.dims == 2) {
		m = max(m, base.H)
	}
	if k.dims == 3 && !k.layered {
		m = max(m, base.D)
	}
	return bits.Len(uint(m))
}

// Image is a texture or renderbuffer of any kind. Framebuffer attachments
// and texture uniforms accept it, so code that only attaches or samples an
// image does not need to know its concrete type.
type Image interface {
	Handle() Handle
	Target() driver.Enum
	Format() Format
	Size() Size
	Levels() int
	Samples() int
	imageInfo() imageInfo
}

type imageInfo struct {
	ctx     *Context
	kind    *kindInfo // nil for renderbuffers
	deleted bool
}

// Texture is GPU image storage of kind K.
//
// The size is fixed at creation. A texture that needs a different size must
// be recreated.
type Texture[K TextureKind] struct {
	object
	k        *kindInfo
	format   Format
	size     Size
	levels   int
	samples  int
	sampling *samplerState
	swizzle  Swizzle
}

// NewTexture allocates a texture of kind K and uploads levels, one byte
// slice per mip level starting at the base. Sizes of the levels after the
// base are derived from size. Cube map levels hold the six faces in the
// order +X, -X, +Y, -Y, +Z, -Z. A nil level allocates storage without
// initializing it. With no levels, the base level is allocated.
//
// Exceeding the driver's size limits returns a *DimensionError. Level data
// of the wrong length panics.
func NewTexture[K TextureKind](ctx *Context, format Format, size Size, levels ...[]byte) (*Texture[K], error) {
	var kk K
	k := kk.kind()
	if k.multisample {
		panic(fmt.Sprintf("opengl: %s needs NewMultisampleTexture", k.name))
	}
	t, err := newTexture[K](ctx, k, format, size)
	if err != nil {
		return nil, err
	}
	if format.Compressed() && !k.compressed {
		t.Delete()
		panic(fmt.Sprintf("opengl: %s cannot hold compressed format %s", k.name, format))
	}
	if n := k.maxLevels(t.size); len(levels) > n {
		t.Delete()
		panic(fmt.Sprintf("opengl: %d levels given for a %s of size %v, at most %d", len(levels), k.name, t.size, n))
	}
	n := max(len(levels), 1)
	for i := 0; i < n; i++ {
		var data []byte
		if i < len(levels) {
			data = levels[i]
		}
		t.upload(i, data)
	}
	t.levels = n
	t.bind().parami(driver.TEXTURE_MAX_LEVEL, int32(n-1))
	t.SetSampling(SamplingParams{Mip: mipFilterFor(n)})
	return t, nil
}

// NewMultisampleTexture allocates a multisample texture. K must be
// Tex2DMultisample or Tex2DMultisampleArray.
func NewMultisampleTexture[K TextureKind](ctx *Context, format Format, size Size, samples int, fixedLocations bool) (*Texture[K], error) {
	var kk K
	k := kk.kind()
	if !k.multisample {
		panic(fmt.Sprintf("opengl: %s is not a multisample kind", k.name))
	}
	if samples < 1 {
		panic(fmt.Sprintf("opengl: invalid sample count %d", samples))
	}
	if samples > ctx.limits.MaxSamples {
		return nil, &DimensionError{Resource: k.name, Requested: size, Samples: samples, MaxSamples: ctx.limits.MaxSamples}
	}
	if format.Compressed() {
		panic(fmt.Sprintf("opengl: %s cannot hold compressed format %s", k.name, format))
	}
	t, err := newTexture[K](ctx, k, format, size)
	if err != nil {
		return nil, err
	}
	t.samples = samples
	t.levels = 1
	s := t.size
	t.bind()
	if k.layered {
		ctx.fns.TexImage3DMultisample(k.target, int32(samples), format.InternalFormat(), int32(s.W), int32(s.H), int32(s.D), fixedLocations)
	} else {
		ctx.fns.TexImage2DMultisample(k.target, int32(samples), format.InternalFormat(), int32(s.W), int32(s.H), fixedLocations)
	}
	ctx.checkAllocation(k.name, format.ImageBytes(s)*samples)
	return t, nil
}

func newTexture[K TextureKind](ctx *Context, k *kindInfo, format Format, size Size) (*Texture[K], error) {
	size = k.normalize(size)
	if size.W < 1 || size.H < 1 || size.D < 1 {
		panic(fmt.Sprintf("opengl: invalid %s size %v", k.name, size))
	}
	if err := format.requireSupport(ctx); err != nil {
		return nil, err
	}
	if !format.info().texturable {
		panic(fmt.Sprintf("opengl: format %s cannot be used for textures", format))
	}
	if k.faces == 6 && size.W != size.H {
		panic(fmt.Sprintf("opengl: cube map faces must be square, got %v", size))
	}
	if m := k.maxSize(ctx.limits); size.W > m.W || size.H > m.H || size.D > m.D {
		return nil, &DimensionError{Resource: k.name, Requested: size, Max: m}
	}
	t := &Texture[K]{
		object: newObject(ctx, k.name, ctx.fns.GenTexture()),
		k:      k,
		format: format,
		size:   size,
	}
	ctx.log.Debug("create", "kind", k.name, "handle", uint32(t.handle), "format", format.String(), "size", size.String())
	return t, nil
}

func (t *Texture[K]) bind() boundTexture {
	t.live()
	return t.ctx.bindTextureInternal(t.k.target, t.handle)
}

// upload allocates one level and fills it with data, which may be nil for
// uncompressed formats.
func (t *Texture[K]) upload(level int, data []byte) {
	k, f := t.k, t.format
	s := k.levelSize(t.size, level)
	face := f.ImageBytes(s)
	if data != nil && len(data) != face*k.faces {
		panic(fmt.Sprintf("opengl: %s level %d (%v, %s): expected %d bytes (%d blocks), found %d",
			k.name, level, s, f, face*k.faces, f.Blocks(s)*k.faces, len(data)))
	}
	if data == nil && f.Compressed() {
		panic(fmt.Sprintf("opengl: %s level %d: compressed levels need data", k.name, level))
	}
	t.bind()
	fns := t.ctx.fns
	internal := f.InternalFormat()
	pf, pt := f.PixelFormat()
	lv := int32(level)
	for i := 0; i < k.faces; i++ {
		target := k.target
		var part []byte
		if data != nil {
			part = data[i*face : (i+1)*face]
		}
		if k.faces == 6 {
			target = driver.TEXTURE_CUBE_MAP_POSITIVE_X + driver.Enum(i)
		}
		switch {
		case f.Compressed() && k.dims == 3:
			fns.CompressedTexImage3D(target, lv, internal, int32(s.W), int32(s.H), int32(s.D), part)
		case f.Compressed():
			fns.CompressedTexImage2D(target, lv, internal, int32(s.W), int32(s.H), part)
		case k.dims == 1:
			fns.TexImage1D(target, lv, int32(internal), int32(s.W), pf, pt, part)
		case k.dims == 2:
			fns.TexImage2D(target, lv, int32(internal), int32(s.W), int32(s.H), pf, pt, part)
		default:
			fns.TexImage3D(target, lv, int32(internal), int32(s.W), int32(s.H), int32(s.D), pf, pt, part)
		}
	}
	t.ctx.checkAllocation(k.name, face*k.faces)
}

// Target returns the GL texture target.
func (t *Texture[K]) Target() driver.Enum { return t.k.target }

// Format returns the internal format.
func (t *Texture[K]) Format() Format { return t.format }

// Size returns the size of the base level.
func (t *Texture[K]) Size() Size { return t.size }

// Levels returns the number of allocated mip levels.
func (t *Texture[K]) Levels() int { return t.levels }

// MaxLevels returns the length of the full mip chain.
func (t *Texture[K]) MaxLevels() int { return t.k.maxLevels(t.size) }

// Samples returns the sample count, 0 for single-sampled textures.
func (t *Texture[K]) Samples() int { return t.samples }

// LevelSize returns the size of a mip level.
func (t *Texture[K]) LevelSize(level int) Size { return t.k.levelSize(t.size, level) }

func (t *Texture[K]) imageInfo() imageInfo {
	return imageInfo{ctx: t.ctx, kind: t.k, deleted: t.Deleted()}
}

// SetLevel replaces an allocated mip level or allocates the next one.
// Levels are allocated in order, so the chain never has holes, and the
// level count never shrinks.
func (t *Texture[K]) SetLevel(level int, data []byte) {
	t.live()
	if t.k.multisample {
		panic("opengl: multisample textures have no mip levels")
	}
	if level < 0 || level >= t.MaxLevels() {
		panic(fmt.Sprintf("opengl: %s level %d out of range [0, %d)", t.k.name, level, t.MaxLevels()))
	}
	if level > t.levels {
		panic(fmt.Sprintf("opengl: %s level %d skips unallocated level %d", t.k.name, level, t.levels))
	}
	t.upload(level, data)
	if level >= t.levels {
		t.levels = level + 1
		t.bind().parami(driver.TEXTURE_MAX_LEVEL, int32(level))
	}
}

// Region is a box inside a texture level. For cube maps Z is the first face
// and D the number of faces, in +X, -X, +Y, -Y, +Z, -Z order. For array
// kinds the last dimension selects layers.
type Region struct {
	X, Y, Z int
	W, H, D int
}

// WriteRegion updates part of an allocated level with tightly packed
// pixels. Compressed textures must be updated a whole level at a time with
// SetLevel.
func (t *Texture[K]) WriteRegion(level int, r Region, data []byte) {
	t.live()
	k, f := t.k, t.format
	if f.Compressed() || k.multisample {
		panic(fmt.Sprintf("opengl: %s of %s does not support region writes", k.name, f))
	}
	if level < 0 || level >= t.levels {
		panic(fmt.Sprintf("opengl: %s level %d not allocated (have %d)", k.name, level, t.levels))
	}
	r = t.normalizeRegion(r)
	s := k.levelSize(t.size, level)
	depth := s.D
	if k.faces == 6 {
		depth = 6
	}
	if r.X < 0 || r.Y < 0 || r.Z < 0 || r.W < 0 || r.H < 0 || r.D < 0 ||
		r.X+r.W > s.W || r.Y+r.H > s.H || r.Z+r.D > depth {
		panic(fmt.Sprintf("opengl: region %+v outside %s level %d of size %v", r, k.name, level, s))
	}
	if want := f.ImageBytes(Size{r.W, r.H, r.D}); len(data) != want {
		panic(fmt.Sprintf("opengl: region %+v of %s: expected %d bytes, found %d", r, f, want, len(data)))
	}
	t.bind()
	pf, pt := f.PixelFormat()
	fns := t.ctx.fns
	lv := int32(level)
	switch {
	case k.faces == 6:
		n := f.ImageBytes(Size2D(r.W, r.H))
		for i := range r.D {
			target := driver.TEXTURE_CUBE_MAP_POSITIVE_X + driver.Enum(r.Z+i)
			fns.TexSubImage2D(target, lv, int32(r.X), int32(r.Y), int32(r.W), int32(r.H), pf, pt, data[i*n:(i+1)*n])
		}
	case k.dims == 1:
		fns.TexSubImage1D(k.target, lv, int32(r.X), int32(r.W), pf, pt, data)
	case k.dims == 2:
		fns.TexSubImage2D(k.target, lv, int32(r.X), int32(r.Y), int32(r.W), int32(r.H), pf, pt, data)
	default:
		fns.TexSubImage3D(k.target, lv, int32(r.X), int32(r.Y), int32(r.Z), int32(r.W), int32(r.H), int32(r.D), pf, pt, data)
	}
}

func (t *Texture[K]) normalizeRegion(r Region) Region {
	if t.k.dims < 3 && t.k.faces != 6 {
		r.Z, r.D = 0, 1
	}
	if t.k.dims < 2 {
		r.Y, r.H = 0, 1
	}
	if t.k.faces == 6 && r.D == 0 {
		r.D = 1
	}
	return r
}

// ReadLevel returns a copy of one level's pixels. Cube maps return the six
// faces in upload order.
func (t *Texture[K]) ReadLevel(level int) []byte {
	t.live()
	k, f := t.k, t.format
	if f.Compressed() || k.multisample {
		panic(fmt.Sprintf("opengl: %s of %s cannot be read back", k.name, f))
	}
	if level < 0 || level >= t.levels {
		panic(fmt.Sprintf("opengl: %s level %d not allocated (have %d)", k.name, level, t.levels))
	}
	face := f.ImageBytes(k.levelSize(t.size, level))
	out := make([]byte, face*k.faces)
	t.bind()
	pf, pt := f.PixelFormat()
	for i := 0; i < k.faces; i++ {
		target := k.target
		if k.faces == 6 {
			target = driver.TEXTURE_CUBE_MAP_POSITIVE_X + driver.Enum(i)
		}
		t.ctx.fns.GetTexImage(target, int32(level), pf, pt, out[i*face:(i+1)*face])
	}
	return out
}

// GenerateMipmaps fills the whole mip chain from the base level.
func (t *Texture[K]) GenerateMipmaps() {
	t.live()
	if !t.k.mipmapped || t.format.Compressed() {
		panic(fmt.Sprintf("opengl: cannot generate mipmaps for %s of %s", t.k.name, t.format))
	}
	b := t.bind()
	n := t.MaxLevels()
	if n != t.levels {
		t.levels = n
		b.parami(driver.TEXTURE_MAX_LEVEL, int32(n-1))
	}
	t.ctx.fns.GenerateMipmap(t.k.target)
}

// SetSampling sets the sampling parameters used when the texture is sampled
// without a Sampler object. Only parameters that differ from the previous
// call are sent to the driver.
func (t *Texture[K]) SetSampling(p SamplingParams) {
	t.live()
	if t.k.multisample {
		panic("opengl: multisample textures have no sampling parameters")
	}
	if t.k.target == driver.TEXTURE_RECTANGLE {
		// Rectangle textures have no mip levels and only clamp.
		p.Mip = MipNone
		for _, w := range []*Wrap{&p.WrapS, &p.WrapT, &p.WrapR} {
			switch *w {
			case Repeat:
				*w = ClampToEdge
			case MirroredRepeat:
				panic("opengl: rectangle textures cannot use mirrored repeat")
			}
		}
	}
	next := p.resolve(t.ctx.limits.MaxAnisotropy)
	b := t.bind()
	next.upload(t.sampling, b)
	t.sampling = &next
}

// SetSwizzle remaps the channels a shader reads.
func (t *Texture[K]) SetSwizzle(s Swizzle) {
	t.live()
	if s == t.swizzle {
		return
	}
	b := t.bind()
	pnames := [4]driver.Enum{driver.TEXTURE_SWIZZLE_R, driver.TEXTURE_SWIZZLE_G, driver.TEXTURE_SWIZZLE_B, driver.TEXTURE_SWIZZLE_A}
	next, prev := s.channels(), t.swizzle.channels()
	for i := range pnames {
		if next[i] != prev[i] {
			b.parami(pnames[i], int32(next[i].enum(i)))
		}
	}
	t.swizzle = s
}

// Swizzle returns the current channel mapping.
func (t *Texture[K]) Swizzle() Swizzle { return t.swizzle }

// Delete frees the texture.
func (t *Texture[K]) Delete() {
	h, ok := t.release()
	if !ok {
		return
	}
	t.ctx.units.forgetTexture(h)
	t.ctx.fns.DeleteTexture(uint32(h))
}

func mipFilterFor(levels int) MipFilter {
	if levels > 1 {
		return MipLinear
	}
	return MipNone
}

// SwizzleSource selects what a texture channel reads. The zero value keeps
// the channel's own component.
type SwizzleSource uint8

const (
	SwizzleIdentity SwizzleSource = iota
	SwizzleRed
	SwizzleGreen
	SwizzleBlue
	SwizzleAlpha
	SwizzleZero
	SwizzleOne
)

func (s SwizzleSource) enum(channel int) driver.Enum {
	switch s {
	case SwizzleRed:
		return driver.RED
	case SwizzleGreen:
		return driver.GREEN
	case SwizzleBlue:
		return driver.BLUE
	case SwizzleAlpha:
		return driver.ALPHA
	case SwizzleZero:
		return driver.ZERO
	case SwizzleOne:
		return driver.ONE
	}
	return [4]driver.Enum{driver.RED, driver.GREEN, driver.BLUE, driver.ALPHA}[channel]
}

// Swizzle is a per-channel remapping. The zero value is the identity.
type Swizzle struct {
	R, G, B, A SwizzleSource
}

// channels returns the mapping with identity entries spelled out, so that
// SwizzleRed in the red channel compares equal to SwizzleIdentity.
func (s Swizzle) channels() [4]SwizzleSource {
	c := [4]SwizzleSource{s.R, s.G, s.B, s.A}
	for i, v := range c {
		if v == SwizzleIdentity {
			c[i] = SwizzleRed + SwizzleSource(i)
		}
	}
	return c
}

// Bytes reinterprets typed pixels as the byte slice texture uploads take.
// The result aliases pixels.
func Bytes[P any](pixels []P) []byte {
	checkPlain(reflect.TypeFor[P]())
	return asBytes(pixels)
}

// FromBytes copies b into a new slice of P. The length of b must be a
// multiple of the size of P.
func FromBytes[P any](b []byte) []P {
	checkPlain(reflect.TypeFor[P]())
	size := elemSize[P]()
	if size == 0 || len(b)%size != 0 {
		panic(fmt.Sprintf("opengl: %d bytes do not hold a whole number of %s", len(b), reflect.TypeFor[P]()))
	}
	out := make([]P, len(b)/size)
	copy(asBytes(out), b)
	return out
}
