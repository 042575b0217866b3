package opengl

import "glsafe/driver"

// Rect is a pixel rectangle with its origin at the lower left.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) within(s Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 && r.X+r.W <= s.W && r.Y+r.H <= s.H
}

func (r Rect) array() [4]int32 { return [4]int32{int32(r.X), int32(r.Y), int32(r.W), int32(r.H)} }

// RenderState is the fixed-function pipeline configuration of a draw. The
// zero value matches the GL defaults: no blending, culling, depth or
// stencil testing, all channels written, the viewport covering the whole
// target.
//
// Draws diff the resolved state against what the context last uploaded and
// only change what differs.
type RenderState struct {
	Blend     *Blend
	Cull      CullMode
	FrontFace Winding

	// Depth enables depth testing.
	Depth      *DepthState
	DepthRange *DepthRange
	DepthClamp bool

	// Stencil enables stencil testing.
	Stencil *Stencil

	// Viewport defaults to the whole target.
	Viewport *Rect
	// Scissor enables the scissor test.
	Scissor *Rect

	NoColorWrite  ColorChannels
	PolygonMode   PolygonMode
	PolygonOffset *PolygonOffset
	// LineWidth of 0 means 1.
	LineWidth        float32
	ProgramPointSize bool
	NoMultisample    bool
	FramebufferSRGB  bool

	// PrimitiveRestart enables primitive restart at the given index.
	PrimitiveRestart *uint32
}

type BlendOp uint8

const (
	BlendAdd BlendOp = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

var blendOps = [...]driver.Enum{
	BlendAdd:             driver.FUNC_ADD,
	BlendSubtract:        driver.FUNC_SUBTRACT,
	BlendReverseSubtract: driver.FUNC_REVERSE_SUBTRACT,
	BlendMin:             driver.MIN,
	BlendMax:             driver.MAX,
}

type BlendFactor uint8

const (
	Zero BlendFactor = iota
	One
	SrcColor
	OneMinusSrcColor
	DstColor
	OneMinusDstColor
	SrcAlpha
	OneMinusSrcAlpha
	DstAlpha
	OneMinusDstAlpha
	ConstantColor
	OneMinusConstantColor
	ConstantAlpha
	OneMinusConstantAlpha
	SrcAlphaSaturate
)

var blendFactors = [...]driver.Enum{
	Zero:                  driver.ZERO,
	One:                   driver.ONE,
	SrcColor:              driver.SRC_COLOR,
	OneMinusSrcColor:      driver.ONE_MINUS_SRC_COLOR,
	DstColor:              driver.DST_COLOR,
	OneMinusDstColor:      driver.ONE_MINUS_DST_COLOR,
	SrcAlpha:              driver.SRC_ALPHA,
	OneMinusSrcAlpha:      driver.ONE_MINUS_SRC_ALPHA,
	DstAlpha:              driver.DST_ALPHA,
	OneMinusDstAlpha:      driver.ONE_MINUS_DST_ALPHA,
	ConstantColor:         driver.CONSTANT_COLOR,
	OneMinusConstantColor: driver.ONE_MINUS_CONSTANT_COLOR,
	ConstantAlpha:         driver.CONSTANT_ALPHA,
	OneMinusConstantAlpha: driver.ONE_MINUS_CONSTANT_ALPHA,
	SrcAlphaSaturate:      driver.SRC_ALPHA_SATURATE,
}

// BlendEquation combines source and destination for one set of channels.
// With both factors Zero, the zero value, the source replaces the
// destination.
type BlendEquation struct {
	Op       BlendOp
	Src, Dst BlendFactor
}

func (e BlendEquation) factors() (src, dst driver.Enum) {
	if e.Src == Zero && e.Dst == Zero {
		return driver.ONE, driver.ZERO
	}
	return blendFactors[e.Src], blendFactors[e.Dst]
}

// Blend configures blending for the color and alpha channels separately.
type Blend struct {
	Color, Alpha BlendEquation
	Constant     [4]float32
}

// AlphaBlend is conventional non-premultiplied alpha blending.
func AlphaBlend() *Blend {
	eq := BlendEquation{Src: SrcAlpha, Dst: OneMinusSrcAlpha}
	return &Blend{Color: eq, Alpha: BlendEquation{Src: One, Dst: OneMinusSrcAlpha}}
}

// AdditiveBlend adds the source to the destination.
func AdditiveBlend() *Blend {
	eq := BlendEquation{Src: One, Dst: One}
	return &Blend{Color: eq, Alpha: eq}
}

type CullMode uint8

const (
	CullNone CullMode = iota
	CullBack
	CullFront
	CullFrontAndBack
)

// Winding selects which triangles face front.
type Winding uint8

const (
	CounterClockwise Winding = iota
	Clockwise
)

// DepthState configures the depth test.
type DepthState struct {
	Func CompareFunc
	// ReadOnly disables depth writes.
	ReadOnly bool
}

type DepthRange struct {
	Near, Far float64
}

type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncr
	StencilIncrWrap
	StencilDecr
	StencilDecrWrap
	StencilInvert
)

var stencilOps = [...]driver.Enum{
	StencilKeep:     driver.KEEP,
	StencilZero:     driver.ZERO,
	StencilReplace:  driver.REPLACE,
	StencilIncr:     driver.INCR,
	StencilIncrWrap: driver.INCR_WRAP,
	StencilDecr:     driver.DECR,
	StencilDecrWrap: driver.DECR_WRAP,
	StencilInvert:   driver.INVERT,
}

// StencilFace configures the stencil test for one face orientation.
type StencilFace struct {
	Func CompareFunc
	Ref  int32
	// IgnoreBits are left out of the comparison; KeepBits are never
	// written. Both default to none.
	IgnoreBits uint32
	KeepBits   uint32

	Fail, DepthFail, Pass StencilOp
}

type Stencil struct {
	Front, Back StencilFace
}

// ColorChannels is a set of color channels.
type ColorChannels uint8

const (
	ChannelRed ColorChannels = 1 << iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha
)

type PolygonMode uint8

const (
	Fill PolygonMode = iota
	Line
	Point
)

type PolygonOffset struct {
	Factor, Units float32
}

type stencilFunc struct {
	fn   driver.Enum
	ref  int32
	mask uint32
}

// pipelineState is a RenderState resolved against a target size into the
// exact values the driver holds. It is comparable, so diffing is field
// equality.
type pipelineState struct {
	blend      bool
	blendEq    [2]driver.Enum
	blendFunc  [4]driver.Enum
	blendColor [4]float32

	cull      bool
	cullFace  driver.Enum
	frontFace driver.Enum

	depthTest  bool
	depthFunc  driver.Enum
	depthWrite bool
	depthRange [2]float64
	depthClamp bool

	stencil      bool
	stencilFunc  [2]stencilFunc
	stencilOp    [2][3]driver.Enum
	stencilWrite [2]uint32

	viewport    [4]int32
	scissor     bool
	scissorRect [4]int32

	colorMask     [4]bool
	polygonMode   driver.Enum
	polygonOffset bool
	offset        [2]float32
	lineWidth     float32
	pointSize     bool
	multisample   bool
	srgb          bool

	restart      bool
	restartIndex uint32
}

func defaultPipelineState() pipelineState {
	return pipelineState{
		blendEq:      [2]driver.Enum{driver.FUNC_ADD, driver.FUNC_ADD},
		blendFunc:    [4]driver.Enum{driver.ONE, driver.ZERO, driver.ONE, driver.ZERO},
		cullFace:     driver.BACK,
		frontFace:    driver.CCW,
		depthFunc:    driver.LESS,
		depthWrite:   true,
		depthRange:   [2]float64{0, 1},
		stencilFunc:  [2]stencilFunc{{driver.ALWAYS, 0, ^uint32(0)}, {driver.ALWAYS, 0, ^uint32(0)}},
		stencilOp:    [2][3]driver.Enum{{driver.KEEP, driver.KEEP, driver.KEEP}, {driver.KEEP, driver.KEEP, driver.KEEP}},
		stencilWrite: [2]uint32{^uint32(0), ^uint32(0)},
		colorMask:    [4]bool{true, true, true, true},
		polygonMode:  driver.FILL,
		lineWidth:    1,
		multisample:  true,
	}
}

// resolve flattens s for a target of the given size. A nil s is the zero
// RenderState.
func (s *RenderState) resolve(target Size) pipelineState {
	p := defaultPipelineState()
	if s == nil {
		s = &RenderState{}
	}
	if b := s.Blend; b != nil {
		p.blend = true
		p.blendEq = [2]driver.Enum{blendOps[b.Color.Op], blendOps[b.Alpha.Op]}
		p.blendFunc[0], p.blendFunc[1] = b.Color.factors()
		p.blendFunc[2], p.blendFunc[3] = b.Alpha.factors()
		p.blendColor = b.Constant
	}
	switch s.Cull {
	case CullBack:
		p.cull = true
	case CullFront:
		p.cull, p.cullFace = true, driver.FRONT
	case CullFrontAndBack:
		p.cull, p.cullFace = true, driver.FRONT_AND_BACK
	}
	if s.FrontFace == Clockwise {
		p.frontFace = driver.CW
	}
	if d := s.Depth; d != nil {
		p.depthTest = true
		p.depthFunc = d.Func.enum()
		p.depthWrite = !d.ReadOnly
	}
	if r := s.DepthRange; r != nil {
		p.depthRange = [2]float64{r.Near, r.Far}
	}
	p.depthClamp = s.DepthClamp
	if st := s.Stencil; st != nil {
		p.stencil = true
		for i, f := range [2]StencilFace{st.Front, st.Back} {
			p.stencilFunc[i] = stencilFunc{f.Func.enum(), f.Ref, ^f.IgnoreBits}
			p.stencilOp[i] = [3]driver.Enum{stencilOps[f.Fail], stencilOps[f.DepthFail], stencilOps[f.Pass]}
			p.stencilWrite[i] = ^f.KeepBits
		}
	}
	p.viewport = Rect{0, 0, target.W, target.H}.array()
	if s.Viewport != nil {
		p.viewport = s.Viewport.array()
	}
	if s.Scissor != nil {
		p.scissor = true
		p.scissorRect = s.Scissor.array()
	}
	for i := range p.colorMask {
		p.colorMask[i] = s.NoColorWrite&(1<<i) == 0
	}
	switch s.PolygonMode {
	case Line:
		p.polygonMode = driver.LINE
	case Point:
		p.polygonMode = driver.POINT
	}
	if o := s.PolygonOffset; o != nil {
		p.polygonOffset = true
		p.offset = [2]float32{o.Factor, o.Units}
	}
	if s.LineWidth > 0 {
		p.lineWidth = s.LineWidth
	}
	p.pointSize = s.ProgramPointSize
	p.multisample = !s.NoMultisample
	p.srgb = s.FramebufferSRGB
	if s.PrimitiveRestart != nil {
		p.restart = true
		p.restartIndex = *s.PrimitiveRestart
	}
	return p
}

// uploadRenderState makes next the driver's pipeline state and returns the
// previous one. Only groups that differ are sent, unless the cached state
// is stale.
func (c *Context) uploadRenderState(next pipelineState) pipelineState {
	old := c.state
	force := c.stateStale
	fns := c.fns
	toggle := func(cap driver.Enum, was, now bool) {
		if force || was != now {
			if now {
				fns.Enable(cap)
			} else {
				fns.Disable(cap)
			}
		}
	}

	// The parameters of a disabled group are only sent when forced; until
	// then the cache keeps what the driver last received.
	toggle(driver.BLEND, old.blend, next.blend)
	if next.blend || force {
		if force || old.blendEq != next.blendEq {
			fns.BlendEquationSeparate(next.blendEq[0], next.blendEq[1])
		}
		if force || old.blendFunc != next.blendFunc {
			f := next.blendFunc
			fns.BlendFuncSeparate(f[0], f[1], f[2], f[3])
		}
		if force || old.blendColor != next.blendColor {
			bc := next.blendColor
			fns.BlendColor(bc[0], bc[1], bc[2], bc[3])
		}
	} else {
		next.blendEq, next.blendFunc, next.blendColor = old.blendEq, old.blendFunc, old.blendColor
	}

	toggle(driver.CULL_FACE, old.cull, next.cull)
	if next.cull || force {
		if force || old.cullFace != next.cullFace {
			fns.CullFace(next.cullFace)
		}
	} else {
		next.cullFace = old.cullFace
	}
	if force || old.frontFace != next.frontFace {
		fns.FrontFace(next.frontFace)
	}

	toggle(driver.DEPTH_TEST, old.depthTest, next.depthTest)
	if force || old.depthFunc != next.depthFunc {
		fns.DepthFunc(next.depthFunc)
	}
	if force || old.depthWrite != next.depthWrite {
		fns.DepthMask(next.depthWrite)
	}
	if force || old.depthRange != next.depthRange {
		fns.DepthRange(next.depthRange[0], next.depthRange[1])
	}
	toggle(driver.DEPTH_CLAMP, old.depthClamp, next.depthClamp)

	toggle(driver.STENCIL_TEST, old.stencil, next.stencil)
	for i, face := range [2]driver.Enum{driver.FRONT, driver.BACK} {
		if force || old.stencilFunc[i] != next.stencilFunc[i] {
			sf := next.stencilFunc[i]
			fns.StencilFuncSeparate(face, sf.fn, sf.ref, sf.mask)
		}
		if force || old.stencilOp[i] != next.stencilOp[i] {
			op := next.stencilOp[i]
			fns.StencilOpSeparate(face, op[0], op[1], op[2])
		}
		if force || old.stencilWrite[i] != next.stencilWrite[i] {
			fns.StencilMaskSeparate(face, next.stencilWrite[i])
		}
	}

	if force || old.viewport != next.viewport {
		v := next.viewport
		fns.Viewport(v[0], v[1], v[2], v[3])
	}
	toggle(driver.SCISSOR_TEST, old.scissor, next.scissor)
	if next.scissor || force {
		if force || old.scissorRect != next.scissorRect {
			r := next.scissorRect
			fns.Scissor(r[0], r[1], r[2], r[3])
		}
	} else {
		next.scissorRect = old.scissorRect
	}

	if force || old.colorMask != next.colorMask {
		m := next.colorMask
		fns.ColorMask(m[0], m[1], m[2], m[3])
	}
	if force || old.polygonMode != next.polygonMode {
		fns.PolygonMode(driver.FRONT_AND_BACK, next.polygonMode)
	}
	for _, cap := range [...]driver.Enum{driver.POLYGON_OFFSET_FILL, driver.POLYGON_OFFSET_LINE, driver.POLYGON_OFFSET_POINT} {
		toggle(cap, old.polygonOffset, next.polygonOffset)
	}
	if next.polygonOffset || force {
		if force || old.offset != next.offset {
			fns.PolygonOffset(next.offset[0], next.offset[1])
		}
	} else {
		next.offset = old.offset
	}
	if force || old.lineWidth != next.lineWidth {
		fns.LineWidth(next.lineWidth)
	}
	toggle(driver.PROGRAM_POINT_SIZE, old.pointSize, next.pointSize)
	toggle(driver.MULTISAMPLE, old.multisample, next.multisample)
	toggle(driver.FRAMEBUFFER_SRGB, old.srgb, next.srgb)

	toggle(driver.PRIMITIVE_RESTART, old.restart, next.restart)
	if next.restart || force {
		if force || old.restartIndex != next.restartIndex {
			fns.PrimitiveRestartIndex(next.restartIndex)
		}
	} else {
		next.restartIndex = old.restartIndex
	}

	c.state = next
	c.stateStale = false
	return old
}

// prepareClear uploads the state clears and blits depend on: every channel
// and stencil bit writable, depth writes on and no scissor. The rest of the
// pipeline state is left as it is.
func (c *Context) prepareClear() {
	next := c.state
	next.scissor = false
	next.colorMask = [4]bool{true, true, true, true}
	next.depthWrite = true
	next.stencilWrite = [2]uint32{^uint32(0), ^uint32(0)}
	c.uploadRenderState(next)
}
