package driver

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// GL implements Functions over the go-gl OpenGL 3.3 core bindings. All calls
// must be made from the thread the context is current on.
type GL struct {
	debug func(DebugMessage)
}

var _ Functions = (*GL)(nil)

// Load resolves the entry points through getProcAddress, which the windowing
// layer provides (glfw.GetProcAddress, for instance).
func Load(getProcAddress func(name string) unsafe.Pointer) (*GL, error) {
	if err := gl.InitWithProcAddrFunc(getProcAddress); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return &GL{}, nil
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func cstr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

func (f *GL) GetError() Enum { return gl.GetError() }

func (f *GL) GetString(name Enum) string {
	p := gl.GetString(name)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (f *GL) GetStringi(name Enum, index uint32) string {
	p := gl.GetStringi(name, index)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (f *GL) GetIntegerv(pname Enum) int32 {
	var v [4]int32
	gl.GetIntegerv(pname, &v[0])
	return v[0]
}

func (f *GL) GetFloatv(pname Enum) float32 {
	var v [4]float32
	gl.GetFloatv(pname, &v[0])
	return v[0]
}

func (f *GL) PixelStorei(pname Enum, param int32) { gl.PixelStorei(pname, param) }

func (f *GL) Enable(cap Enum) { gl.Enable(cap) }
func (f *GL) Disable(cap Enum) { gl.Disable(cap) }

func (f *GL) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (f *GL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *GL) BlendColor(r, g, b, a float32) { gl.BlendColor(r, g, b, a) }
func (f *GL) CullFace(mode Enum) { gl.CullFace(mode) }
func (f *GL) FrontFace(mode Enum) { gl.FrontFace(mode) }
func (f *GL) DepthFunc(fn Enum) { gl.DepthFunc(fn) }
func (f *GL) DepthMask(flag bool) { gl.DepthMask(flag) }
func (f *GL) DepthRange(near, far float64) { gl.DepthRange(near, far) }
func (f *GL) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }
func (f *GL) PolygonMode(face, mode Enum) { gl.PolygonMode(face, mode) }
func (f *GL) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }
func (f *GL) LineWidth(width float32) { gl.LineWidth(width) }
func (f *GL) PrimitiveRestartIndex(index uint32) { gl.PrimitiveRestartIndex(index) }

func (f *GL) StencilFuncSeparate(face, fn Enum, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}

func (f *GL) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	gl.StencilOpSeparate(face, sfail, dpfail, dppass)
}

func (f *GL) StencilMaskSeparate(face Enum, mask uint32) { gl.StencilMaskSeparate(face, mask) }

func (f *GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (f *GL) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }

func (f *GL) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (f *GL) ClearDepth(depth float64) { gl.ClearDepth(depth) }
func (f *GL) ClearStencil(s int32) { gl.ClearStencil(s) }
func (f *GL) Clear(mask Enum) { gl.Clear(mask) }

func (f *GL) ClearBufferfv(buffer Enum, drawbuffer int32, value []float32) {
	gl.ClearBufferfv(buffer, drawbuffer, &value[0])
}

func (f *GL) ClearBufferiv(buffer Enum, drawbuffer int32, value []int32) {
	gl.ClearBufferiv(buffer, drawbuffer, &value[0])
}

func (f *GL) ClearBufferuiv(buffer Enum, drawbuffer int32, value []uint32) {
	gl.ClearBufferuiv(buffer, drawbuffer, &value[0])
}

func (f *GL) ClearBufferfi(buffer Enum, drawbuffer int32, depth float32, stencil int32) {
	gl.ClearBufferfi(buffer, drawbuffer, depth, stencil)
}

func (f *GL) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (f *GL) DeleteBuffer(b uint32) { gl.DeleteBuffers(1, &b) }
func (f *GL) BindBuffer(target Enum, b uint32) { gl.BindBuffer(target, b) }

func (f *GL) BufferData(target Enum, size int, data []byte, usage Enum) {
	gl.BufferData(target, size, bytesPtr(data), usage)
}

func (f *GL) BufferSubData(target Enum, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), bytesPtr(data))
}

func (f *GL) GetBufferSubData(target Enum, offset int, dst []byte) {
	gl.GetBufferSubData(target, offset, len(dst), bytesPtr(dst))
}

func (f *GL) CopyBufferSubData(readTarget, writeTarget Enum, readOffset, writeOffset, size int) {
	gl.CopyBufferSubData(readTarget, writeTarget, readOffset, writeOffset, size)
}

func (f *GL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (f *GL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }
func (f *GL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }
func (f *GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }
func (f *GL) DisableVertexAttribArray(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (f *GL) VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, typ, normalized, stride, gl.PtrOffset(offset))
}

func (f *GL) VertexAttribIPointer(index uint32, size int32, typ Enum, stride int32, offset int) {
	gl.VertexAttribIPointer(index, size, typ, stride, gl.PtrOffset(offset))
}

func (f *GL) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (f *GL) GenTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (f *GL) DeleteTexture(t uint32) { gl.DeleteTextures(1, &t) }
func (f *GL) ActiveTexture(unit Enum) { gl.ActiveTexture(unit) }
func (f *GL) BindTexture(target Enum, t uint32) { gl.BindTexture(target, t) }

func (f *GL) TexImage1D(target Enum, level, internalFormat, width int32, format, typ Enum, data []byte) {
	gl.TexImage1D(target, level, internalFormat, width, 0, format, typ, bytesPtr(data))
}

func (f *GL) TexImage2D(target Enum, level, internalFormat, width, height int32, format, typ Enum, data []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, typ, bytesPtr(data))
}

func (f *GL) TexImage3D(target Enum, level, internalFormat, width, height, depth int32, format, typ Enum, data []byte) {
	gl.TexImage3D(target, level, internalFormat, width, height, depth, 0, format, typ, bytesPtr(data))
}

func (f *GL) TexSubImage1D(target Enum, level, x, width int32, format, typ Enum, data []byte) {
	gl.TexSubImage1D(target, level, x, width, format, typ, bytesPtr(data))
}

func (f *GL) TexSubImage2D(target Enum, level, x, y, width, height int32, format, typ Enum, data []byte) {
	gl.TexSubImage2D(target, level, x, y, width, height, format, typ, bytesPtr(data))
}

func (f *GL) TexSubImage3D(target Enum, level, x, y, z, width, height, depth int32, format, typ Enum, data []byte) {
	gl.TexSubImage3D(target, level, x, y, z, width, height, depth, format, typ, bytesPtr(data))
}

func (f *GL) CompressedTexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, data []byte) {
	gl.CompressedTexImage2D(target, level, internalFormat, width, height, 0, int32(len(data)), bytesPtr(data))
}

func (f *GL) CompressedTexImage3D(target Enum, level int32, internalFormat Enum, width, height, depth int32, data []byte) {
	gl.CompressedTexImage3D(target, level, internalFormat, width, height, depth, 0, int32(len(data)), bytesPtr(data))
}

func (f *GL) TexImage2DMultisample(target Enum, samples int32, internalFormat Enum, width, height int32, fixedLocations bool) {
	gl.TexImage2DMultisample(target, samples, internalFormat, width, height, fixedLocations)
}

func (f *GL) TexImage3DMultisample(target Enum, samples int32, internalFormat Enum, width, height, depth int32, fixedLocations bool) {
	gl.TexImage3DMultisample(target, samples, internalFormat, width, height, depth, fixedLocations)
}

func (f *GL) TexParameteri(target, pname Enum, param int32) { gl.TexParameteri(target, pname, param) }
func (f *GL) TexParameterf(target, pname Enum, param float32) { gl.TexParameterf(target, pname, param) }
func (f *GL) TexParameterfv(target, pname Enum, params []float32) {
	gl.TexParameterfv(target, pname, &params[0])
}

func (f *GL) GetTexImage(target Enum, level int32, format, typ Enum, dst []byte) {
	gl.GetTexImage(target, level, format, typ, bytesPtr(dst))
}

func (f *GL) GenerateMipmap(target Enum) { gl.GenerateMipmap(target) }

func (f *GL) GenSampler() uint32 {
	var s uint32
	gl.GenSamplers(1, &s)
	return s
}

func (f *GL) DeleteSampler(s uint32) { gl.DeleteSamplers(1, &s) }
func (f *GL) BindSampler(unit, s uint32) { gl.BindSampler(unit, s) }
func (f *GL) SamplerParameteri(s uint32, pname Enum, param int32) {
	gl.SamplerParameteri(s, pname, param)
}
func (f *GL) SamplerParameterf(s uint32, pname Enum, param float32) {
	gl.SamplerParameterf(s, pname, param)
}
func (f *GL) SamplerParameterfv(s uint32, pname Enum, params []float32) {
	gl.SamplerParameterfv(s, pname, &params[0])
}

func (f *GL) GenRenderbuffer() uint32 {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return rb
}

func (f *GL) DeleteRenderbuffer(rb uint32) { gl.DeleteRenderbuffers(1, &rb) }
func (f *GL) BindRenderbuffer(target Enum, rb uint32) { gl.BindRenderbuffer(target, rb) }

func (f *GL) RenderbufferStorageMultisample(target Enum, samples int32, internalFormat Enum, width, height int32) {
	gl.RenderbufferStorageMultisample(target, samples, internalFormat, width, height)
}

func (f *GL) GenFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (f *GL) DeleteFramebuffer(fb uint32) { gl.DeleteFramebuffers(1, &fb) }
func (f *GL) BindFramebuffer(target Enum, fb uint32) { gl.BindFramebuffer(target, fb) }

func (f *GL) FramebufferTexture(target, attachment Enum, t uint32, level int32) {
	gl.FramebufferTexture(target, attachment, t, level)
}

func (f *GL) FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, t, level)
}

func (f *GL) FramebufferTextureLayer(target, attachment Enum, t uint32, level, layer int32) {
	gl.FramebufferTextureLayer(target, attachment, t, level, layer)
}

func (f *GL) FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, rb)
}

func (f *GL) CheckFramebufferStatus(target Enum) Enum { return gl.CheckFramebufferStatus(target) }

func (f *GL) DrawBuffers(bufs []Enum) {
	if len(bufs) == 0 {
		none := uint32(NONE)
		gl.DrawBuffers(1, &none)
		return
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (f *GL) ReadBuffer(src Enum) { gl.ReadBuffer(src) }

func (f *GL) ReadPixels(x, y, width, height int32, format, typ Enum, dst []byte) {
	gl.ReadPixels(x, y, width, height, format, typ, bytesPtr(dst))
}

func (f *GL) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter Enum) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (f *GL) CreateShader(stage Enum) uint32 { return gl.CreateShader(stage) }
func (f *GL) DeleteShader(s uint32) { gl.DeleteShader(s) }

func (f *GL) ShaderSource(s uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s, 1, csrc, nil)
	free()
}

func (f *GL) CompileShader(s uint32) { gl.CompileShader(s) }

func (f *GL) GetShaderiv(s uint32, pname Enum) int32 {
	var v int32
	gl.GetShaderiv(s, pname, &v)
	return v
}

func (f *GL) GetShaderInfoLog(s uint32) string {
	n := f.GetShaderiv(s, INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(s, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *GL) CreateProgram() uint32 { return gl.CreateProgram() }
func (f *GL) DeleteProgram(p uint32) { gl.DeleteProgram(p) }
func (f *GL) AttachShader(p, s uint32) { gl.AttachShader(p, s) }
func (f *GL) DetachShader(p, s uint32) { gl.DetachShader(p, s) }
func (f *GL) LinkProgram(p uint32) { gl.LinkProgram(p) }
func (f *GL) UseProgram(p uint32) { gl.UseProgram(p) }

func (f *GL) GetProgramiv(p uint32, pname Enum) int32 {
	var v int32
	gl.GetProgramiv(p, pname, &v)
	return v
}

func (f *GL) GetProgramInfoLog(p uint32) string {
	n := f.GetProgramiv(p, INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(p, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (f *GL) BindAttribLocation(p, index uint32, name string) {
	gl.BindAttribLocation(p, index, cstr(name))
}

func (f *GL) BindFragDataLocation(p, color uint32, name string) {
	gl.BindFragDataLocation(p, color, cstr(name))
}

const maxNameLength = 256

func (f *GL) GetActiveAttrib(p, index uint32) (string, int32, Enum) {
	var (
		buf    [maxNameLength]uint8
		length int32
		size   int32
		typ    uint32
	)
	gl.GetActiveAttrib(p, index, maxNameLength, &length, &size, &typ, &buf[0])
	return string(buf[:length]), size, typ
}

func (f *GL) GetActiveUniform(p, index uint32) (string, int32, Enum) {
	var (
		buf    [maxNameLength]uint8
		length int32
		size   int32
		typ    uint32
	)
	gl.GetActiveUniform(p, index, maxNameLength, &length, &size, &typ, &buf[0])
	return string(buf[:length]), size, typ
}

func (f *GL) GetAttribLocation(p uint32, name string) int32 {
	return gl.GetAttribLocation(p, cstr(name))
}

func (f *GL) GetUniformLocation(p uint32, name string) int32 {
	return gl.GetUniformLocation(p, cstr(name))
}

func (f *GL) GetFragDataLocation(p uint32, name string) int32 {
	return gl.GetFragDataLocation(p, cstr(name))
}

func (f *GL) Uniformfv(location int32, n int, v []float32) {
	count := int32(len(v) / n)
	switch n {
	case 1:
		gl.Uniform1fv(location, count, &v[0])
	case 2:
		gl.Uniform2fv(location, count, &v[0])
	case 3:
		gl.Uniform3fv(location, count, &v[0])
	case 4:
		gl.Uniform4fv(location, count, &v[0])
	}
}

func (f *GL) Uniformiv(location int32, n int, v []int32) {
	count := int32(len(v) / n)
	switch n {
	case 1:
		gl.Uniform1iv(location, count, &v[0])
	case 2:
		gl.Uniform2iv(location, count, &v[0])
	case 3:
		gl.Uniform3iv(location, count, &v[0])
	case 4:
		gl.Uniform4iv(location, count, &v[0])
	}
}

func (f *GL) Uniformuiv(location int32, n int, v []uint32) {
	count := int32(len(v) / n)
	switch n {
	case 1:
		gl.Uniform1uiv(location, count, &v[0])
	case 2:
		gl.Uniform2uiv(location, count, &v[0])
	case 3:
		gl.Uniform3uiv(location, count, &v[0])
	case 4:
		gl.Uniform4uiv(location, count, &v[0])
	}
}

func (f *GL) UniformMatrixfv(location int32, cols, rows int, v []float32) {
	count := int32(len(v) / (cols * rows))
	switch {
	case cols == 2 && rows == 2:
		gl.UniformMatrix2fv(location, count, false, &v[0])
	case cols == 3 && rows == 3:
		gl.UniformMatrix3fv(location, count, false, &v[0])
	case cols == 4 && rows == 4:
		gl.UniformMatrix4fv(location, count, false, &v[0])
	case cols == 2 && rows == 3:
		gl.UniformMatrix2x3fv(location, count, false, &v[0])
	case cols == 2 && rows == 4:
		gl.UniformMatrix2x4fv(location, count, false, &v[0])
	case cols == 3 && rows == 2:
		gl.UniformMatrix3x2fv(location, count, false, &v[0])
	case cols == 3 && rows == 4:
		gl.UniformMatrix3x4fv(location, count, false, &v[0])
	case cols == 4 && rows == 2:
		gl.UniformMatrix4x2fv(location, count, false, &v[0])
	case cols == 4 && rows == 3:
		gl.UniformMatrix4x3fv(location, count, false, &v[0])
	}
}

func (f *GL) DrawArrays(mode Enum, first, count int32) { gl.DrawArrays(mode, first, count) }

func (f *GL) DrawArraysInstanced(mode Enum, first, count, instances int32) {
	gl.DrawArraysInstanced(mode, first, count, instances)
}

func (f *GL) DrawElements(mode Enum, count int32, typ Enum, offset int) {
	gl.DrawElements(mode, count, typ, gl.PtrOffset(offset))
}

func (f *GL) DrawElementsInstanced(mode Enum, count int32, typ Enum, offset int, instances int32) {
	gl.DrawElementsInstanced(mode, count, typ, gl.PtrOffset(offset), instances)
}

func (f *GL) DebugMessageCallback(fn func(DebugMessage)) {
	installed := f.debug != nil
	f.debug = fn
	if fn == nil || installed {
		return
	}
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		if f.debug != nil {
			f.debug(DebugMessage{Source: source, Type: gltype, ID: id, Severity: severity, Message: message})
		}
	}, nil)
}
