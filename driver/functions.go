// Package driver is the flat table of OpenGL 3.3 core entry points the
// binding layer calls into.
//
// Functions is an interface so that the native implementation (GL, backed by
// go-gl) can be swapped for a recording double in tests. Object names are
// plain uint32 values; 0 is the GL "no object" name.
package driver

// Enum is a GL enumerant.
type Enum = uint32

// DebugMessage is one message delivered by the driver debug-output
// extension.
type DebugMessage struct {
	Source   Enum
	Type     Enum
	ID       uint32
	Severity Enum
	Message  string
}

type Functions interface {
	// State queries.
	GetError() Enum
	GetString(name Enum) string
	GetStringi(name Enum, index uint32) string
	GetIntegerv(pname Enum) int32
	GetFloatv(pname Enum) float32
	PixelStorei(pname Enum, param int32)

	// Pipeline state.
	Enable(cap Enum)
	Disable(cap Enum)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendColor(r, g, b, a float32)
	CullFace(mode Enum)
	FrontFace(mode Enum)
	DepthFunc(fn Enum)
	DepthMask(flag bool)
	DepthRange(near, far float64)
	ColorMask(r, g, b, a bool)
	StencilFuncSeparate(face, fn Enum, ref int32, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	StencilMaskSeparate(face Enum, mask uint32)
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	PolygonMode(face, mode Enum)
	PolygonOffset(factor, units float32)
	LineWidth(width float32)
	PrimitiveRestartIndex(index uint32)

	// Clears.
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	ClearStencil(s int32)
	Clear(mask Enum)
	ClearBufferfv(buffer Enum, drawbuffer int32, value []float32)
	ClearBufferiv(buffer Enum, drawbuffer int32, value []int32)
	ClearBufferuiv(buffer Enum, drawbuffer int32, value []uint32)
	ClearBufferfi(buffer Enum, drawbuffer int32, depth float32, stencil int32)

	// Buffers.
	GenBuffer() uint32
	DeleteBuffer(b uint32)
	BindBuffer(target Enum, b uint32)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	GetBufferSubData(target Enum, offset int, dst []byte)
	CopyBufferSubData(readTarget, writeTarget Enum, readOffset, writeOffset, size int)

	// Vertex arrays.
	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int)
	VertexAttribIPointer(index uint32, size int32, typ Enum, stride int32, offset int)
	VertexAttribDivisor(index, divisor uint32)

	// Textures.
	GenTexture() uint32
	DeleteTexture(t uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t uint32)
	TexImage1D(target Enum, level, internalFormat, width int32, format, typ Enum, data []byte)
	TexImage2D(target Enum, level, internalFormat, width, height int32, format, typ Enum, data []byte)
	TexImage3D(target Enum, level, internalFormat, width, height, depth int32, format, typ Enum, data []byte)
	TexSubImage1D(target Enum, level, x, width int32, format, typ Enum, data []byte)
	TexSubImage2D(target Enum, level, x, y, width, height int32, format, typ Enum, data []byte)
	TexSubImage3D(target Enum, level, x, y, z, width, height, depth int32, format, typ Enum, data []byte)
	CompressedTexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, data []byte)
	CompressedTexImage3D(target Enum, level int32, internalFormat Enum, width, height, depth int32, data []byte)
	TexImage2DMultisample(target Enum, samples int32, internalFormat Enum, width, height int32, fixedLocations bool)
	TexImage3DMultisample(target Enum, samples int32, internalFormat Enum, width, height, depth int32, fixedLocations bool)
	TexParameteri(target, pname Enum, param int32)
	TexParameterf(target, pname Enum, param float32)
	TexParameterfv(target, pname Enum, params []float32)
	GetTexImage(target Enum, level int32, format, typ Enum, dst []byte)
	GenerateMipmap(target Enum)

	// Samplers.
	GenSampler() uint32
	DeleteSampler(s uint32)
	BindSampler(unit uint32, s uint32)
	SamplerParameteri(s uint32, pname Enum, param int32)
	SamplerParameterf(s uint32, pname Enum, param float32)
	SamplerParameterfv(s uint32, pname Enum, params []float32)

	// Renderbuffers.
	GenRenderbuffer() uint32
	DeleteRenderbuffer(rb uint32)
	BindRenderbuffer(target Enum, rb uint32)
	RenderbufferStorageMultisample(target Enum, samples int32, internalFormat Enum, width, height int32)

	// Framebuffers.
	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target Enum, fb uint32)
	FramebufferTexture(target, attachment Enum, t uint32, level int32)
	FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int32)
	FramebufferTextureLayer(target, attachment Enum, t uint32, level, layer int32)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb uint32)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(bufs []Enum)
	ReadBuffer(src Enum)
	ReadPixels(x, y, width, height int32, format, typ Enum, dst []byte)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter Enum)

	// Shaders and programs.
	CreateShader(stage Enum) uint32
	DeleteShader(s uint32)
	ShaderSource(s uint32, src string)
	CompileShader(s uint32)
	GetShaderiv(s uint32, pname Enum) int32
	GetShaderInfoLog(s uint32) string
	CreateProgram() uint32
	DeleteProgram(p uint32)
	AttachShader(p, s uint32)
	DetachShader(p, s uint32)
	LinkProgram(p uint32)
	GetProgramiv(p uint32, pname Enum) int32
	GetProgramInfoLog(p uint32) string
	UseProgram(p uint32)
	BindAttribLocation(p, index uint32, name string)
	BindFragDataLocation(p, color uint32, name string)
	GetActiveAttrib(p, index uint32) (name string, size int32, typ Enum)
	GetActiveUniform(p, index uint32) (name string, size int32, typ Enum)
	GetAttribLocation(p uint32, name string) int32
	GetUniformLocation(p uint32, name string) int32
	GetFragDataLocation(p uint32, name string) int32

	// Uniform upload. n is the vector size (1 to 4); for matrices cols and
	// rows give the shape. Values are column-major.
	Uniformfv(location int32, n int, v []float32)
	Uniformiv(location int32, n int, v []int32)
	Uniformuiv(location int32, n int, v []uint32)
	UniformMatrixfv(location int32, cols, rows int, v []float32)

	// Draws.
	DrawArrays(mode Enum, first, count int32)
	DrawArraysInstanced(mode Enum, first, count, instances int32)
	DrawElements(mode Enum, count int32, typ Enum, offset int)
	DrawElementsInstanced(mode Enum, count int32, typ Enum, offset int, instances int32)

	// DebugMessageCallback installs fn as the debug-output callback, or
	// removes it when fn is nil. Only valid when KHR_debug or
	// ARB_debug_output is present.
	DebugMessageCallback(fn func(DebugMessage))
}
