package opengl

import (
	"fmt"

	"glsafe/driver"
	"glsafe/glsl"
)

// Filter selects texel filtering within one mip level.
type Filter uint8

const (
	Linear Filter = iota
	Nearest
)

func (f Filter) enum() driver.Enum {
	if f == Nearest {
		return driver.NEAREST
	}
	return driver.LINEAR
}

// MipFilter selects filtering between mip levels. MipNone samples only the
// base level.
type MipFilter uint8

const (
	MipNone MipFilter = iota
	MipNearest
	MipLinear
)

// Wrap selects what texture coordinates outside [0, 1] sample.
type Wrap uint8

const (
	Repeat Wrap = iota
	ClampToEdge
	MirroredRepeat
	ClampToBorder
)

func (w Wrap) enum() driver.Enum {
	switch w {
	case ClampToEdge:
		return driver.CLAMP_TO_EDGE
	case MirroredRepeat:
		return driver.MIRRORED_REPEAT
	case ClampToBorder:
		return driver.CLAMP_TO_BORDER
	}
	return driver.REPEAT
}

// CompareFunc is a depth, stencil or shadow comparison. The zero value is
// Less, the GL default for depth testing.
type CompareFunc uint8

const (
	Less CompareFunc = iota
	LessEqual
	Equal
	GreaterEqual
	Greater
	NotEqual
	Always
	Never
)

var compareEnums = [...]driver.Enum{
	Less:         driver.LESS,
	LessEqual:    driver.LEQUAL,
	Equal:        driver.EQUAL,
	GreaterEqual: driver.GEQUAL,
	Greater:      driver.GREATER,
	NotEqual:     driver.NOTEQUAL,
	Always:       driver.ALWAYS,
	Never:        driver.NEVER,
}

func (c CompareFunc) enum() driver.Enum { return compareEnums[c] }

// SamplingParams describe how a texture is filtered and addressed. The zero
// value is bilinear filtering without mipmaps, repeating in every
// direction.
type SamplingParams struct {
	Min, Mag            Filter
	Mip                 MipFilter
	WrapS, WrapT, WrapR Wrap

	// MinLOD and MaxLOD clamp the level of detail. A zero MaxLOD leaves the
	// upper end unclamped.
	MinLOD, MaxLOD float32
	LODBias        float32

	// Anisotropy above 1 enables anisotropic filtering. It is clamped to the
	// driver maximum and ignored when the extension is missing.
	Anisotropy float32

	// DepthCompare makes depth textures return the result of comparing the
	// reference coordinate with CompareFunc, as shadow samplers expect.
	DepthCompare bool
	CompareFunc  CompareFunc

	BorderColor [4]float32
}

// samplerState is SamplingParams resolved into driver values. Uploads
// compare it field by field against the previous upload.
type samplerState struct {
	minFilter, magFilter int32
	wrap                 [3]int32
	minLOD, maxLOD, bias float32
	anisotropy           float32
	compareMode          int32
	compareFunc          int32
	border               [4]float32
}

func (p SamplingParams) resolve(maxAnisotropy float32) samplerState {
	s := samplerState{
		magFilter:   int32(p.Mag.enum()),
		wrap:        [3]int32{int32(p.WrapS.enum()), int32(p.WrapT.enum()), int32(p.WrapR.enum())},
		minLOD:      p.MinLOD,
		maxLOD:      p.MaxLOD,
		bias:        p.LODBias,
		compareFunc: int32(driver.LEQUAL),
		border:      p.BorderColor,
	}
	if s.maxLOD == 0 {
		s.maxLOD = 1000
	}
	switch p.Mip {
	case MipNone:
		s.minFilter = int32(p.Min.enum())
	case MipNearest:
		s.minFilter = int32(driver.LINEAR_MIPMAP_NEAREST)
		if p.Min == Nearest {
			s.minFilter = int32(driver.NEAREST_MIPMAP_NEAREST)
		}
	default:
		s.minFilter = int32(driver.LINEAR_MIPMAP_LINEAR)
		if p.Min == Nearest {
			s.minFilter = int32(driver.NEAREST_MIPMAP_LINEAR)
		}
	}
	if maxAnisotropy > 0 {
		s.anisotropy = min(max(p.Anisotropy, 1), maxAnisotropy)
	}
	if p.DepthCompare {
		s.compareMode = int32(driver.COMPARE_REF_TO_TEXTURE)
		s.compareFunc = int32(p.CompareFunc.enum())
	}
	return s
}

type paramSetter interface {
	parami(pname driver.Enum, v int32)
	paramf(pname driver.Enum, v float32)
	paramfv(pname driver.Enum, v []float32)
}

// upload sends the fields of s that differ from prev. A nil prev sends
// everything.
func (s *samplerState) upload(prev *samplerState, to paramSetter) {
	all := prev == nil
	if all {
		prev = &samplerState{}
	}
	seti := func(pname driver.Enum, v, old int32) {
		if all || v != old {
			to.parami(pname, v)
		}
	}
	setf := func(pname driver.Enum, v, old float32) {
		if all || v != old {
			to.paramf(pname, v)
		}
	}
	seti(driver.TEXTURE_MIN_FILTER, s.minFilter, prev.minFilter)
	seti(driver.TEXTURE_MAG_FILTER, s.magFilter, prev.magFilter)
	seti(driver.TEXTURE_WRAP_S, s.wrap[0], prev.wrap[0])
	seti(driver.TEXTURE_WRAP_T, s.wrap[1], prev.wrap[1])
	seti(driver.TEXTURE_WRAP_R, s.wrap[2], prev.wrap[2])
	setf(driver.TEXTURE_MIN_LOD, s.minLOD, prev.minLOD)
	setf(driver.TEXTURE_MAX_LOD, s.maxLOD, prev.maxLOD)
	setf(driver.TEXTURE_LOD_BIAS, s.bias, prev.bias)
	if s.anisotropy != 0 {
		setf(driver.TEXTURE_MAX_ANISOTROPY, s.anisotropy, prev.anisotropy)
	}
	seti(driver.TEXTURE_COMPARE_MODE, s.compareMode, prev.compareMode)
	seti(driver.TEXTURE_COMPARE_FUNC, s.compareFunc, prev.compareFunc)
	if all || s.border != prev.border {
		to.paramfv(driver.TEXTURE_BORDER_COLOR, s.border[:])
	}
}

// Sampler is a sampler object: sampling parameters that override those of
// whatever texture is bound alongside it.
type Sampler struct {
	object
	params   SamplingParams
	uploaded *samplerState
}

// NewSampler creates a sampler object with the given parameters.
func NewSampler(ctx *Context, p SamplingParams) *Sampler {
	s := &Sampler{object: newObject(ctx, "sampler", ctx.fns.GenSampler())}
	ctx.log.Debug("create", "kind", "sampler", "handle", uint32(s.handle))
	s.Set(p)
	return s
}

// Set replaces the sampling parameters. Only parameters that changed are
// sent to the driver.
func (s *Sampler) Set(p SamplingParams) {
	s.live()
	next := p.resolve(s.ctx.limits.MaxAnisotropy)
	next.upload(s.uploaded, samplerParams{fns: s.ctx.fns, name: uint32(s.handle)})
	s.uploaded = &next
	s.params = p
}

// Params returns the current sampling parameters.
func (s *Sampler) Params() SamplingParams { return s.params }

// Delete frees the sampler object.
func (s *Sampler) Delete() {
	h, ok := s.release()
	if !ok {
		return
	}
	s.ctx.units.forgetSampler(h)
	s.ctx.fns.DeleteSampler(uint32(h))
}

type samplerParams struct {
	fns  driver.Functions
	name uint32
}

func (p samplerParams) parami(pname driver.Enum, v int32) { p.fns.SamplerParameteri(p.name, pname, v) }
func (p samplerParams) paramf(pname driver.Enum, v float32) {
	p.fns.SamplerParameterf(p.name, pname, v)
}
func (p samplerParams) paramfv(pname driver.Enum, v []float32) {
	p.fns.SamplerParameterfv(p.name, pname, v)
}

// TextureUniform is a uniform struct member declared in GLSL as the sampler
// named by S. At draw time Texture is bound to a free image unit, with
// Sampler if it is set, and the uniform is pointed at that unit. Neither is
// owned by the uniform.
type TextureUniform[S glsl.SamplerKind] struct {
	Texture Image
	Sampler *Sampler
}

func (*TextureUniform[S]) UniformType() glsl.Type {
	var s S
	return s.SamplerType()
}

// UniformValue is a no-op; the unit index is assigned when drawing.
func (*TextureUniform[S]) UniformValue(*glsl.Value) {}

func (u *TextureUniform[S]) texture() (Image, *Sampler) { return u.Texture, u.Sampler }

// samplerUniform is implemented by TextureUniform of every sampler kind.
type samplerUniform interface {
	glsl.Uniform
	texture() (Image, *Sampler)
}

// checkSampled panics unless img can be read through a sampler of type t.
func checkSampled(ctx *Context, name string, t glsl.Type, img Image, smp *Sampler) {
	if img == nil {
		panic(fmt.Sprintf("opengl: texture uniform %s has no image", name))
	}
	info := img.imageInfo()
	if info.deleted {
		panic(fmt.Sprintf("opengl: texture uniform %s: use of deleted image", name))
	}
	if info.ctx != ctx {
		panic(fmt.Sprintf("opengl: texture uniform %s: image belongs to a different context", name))
	}
	if info.kind == nil {
		panic(fmt.Sprintf("opengl: texture uniform %s: renderbuffers cannot be sampled", name))
	}
	if info.kind.dim != t.Sampler {
		panic(fmt.Sprintf("opengl: texture uniform %s is a %s but the image is a %s", name, t, info.kind.name))
	}
	class := img.Format().Class()
	if class == ClassStencil || class.SampleKind() != t.Kind {
		panic(fmt.Sprintf("opengl: texture uniform %s is a %s but the image format %s samples as %s",
			name, t, img.Format(), class.SampleKind()))
	}
	if t.Shadow && !class.Depth() {
		panic(fmt.Sprintf("opengl: texture uniform %s is a %s but the image format %s has no depth", name, t, img.Format()))
	}
	if smp != nil {
		smp.live()
		smp.sameContext(ctx, "sampler of "+name)
	}
}
