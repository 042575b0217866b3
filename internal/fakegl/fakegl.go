// Package fakegl is an in-memory stand-in for driver.Functions.
//
// It records every call, keeps buffer and texture contents so that uploads
// can be read back, and simulates shader compilation, linking and
// reflection by scanning GLSL declarations. A declared uniform or vertex
// input counts as active when its name is used anywhere else in the stage,
// which is close enough to what real GLSL optimizers do for tests.
package fakegl

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"glsafe/driver"
)

// Call is one recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

// Draw is one recorded draw command together with the state it ran with.
type Draw struct {
	Mode        driver.Enum
	First       int32
	Count       int32
	Instances   int32
	Indexed     bool
	IndexType   driver.Enum
	Offset      int
	Program     uint32
	VertexArray uint32
	Framebuffer uint32
}

type image struct {
	Width, Height, Depth int32
	InternalFormat       uint32
	Compressed           bool
	Samples              int32
	Data                 []byte
}

type texture struct {
	target  uint32
	images  map[[2]int32]*image // (face, level)
	params  map[uint32]any
	mipmaps int
}

type attachment struct {
	Kind   string // "texture" or "renderbuffer"
	Name   uint32
	Level  int32
	Layer  int32
	Target uint32
}

type framebuffer struct {
	attachments map[uint32]attachment
	drawBuffers []uint32
	readBuffer  uint32
	cleared     map[uint32][4]float32
}

type renderbuffer struct {
	internalFormat uint32
	width, height  int32
	samples        int32
}

type vertexArray struct {
	element  uint32
	enabled  map[uint32]bool
	pointers map[uint32]Call
	divisors map[uint32]uint32
}

// UniformUpload is the last value written to a uniform location.
type UniformUpload struct {
	Kind string // "f", "i", "ui" or "m"
	N    int    // vector size, or columns for matrices
	Rows int
	F    []float32
	I    []int32
	U    []uint32
}

// GL is the recording double. The zero value is not usable; call New.
type GL struct {
	Version    string
	Extensions []string
	Limits     map[uint32]int32
	Anisotropy float32
	// BufferLimit makes BufferData fail with OUT_OF_MEMORY above this many
	// bytes. Zero means unlimited.
	BufferLimit int
	// ReuseNames hands out deleted texture and renderbuffer names again,
	// lowest first, as real drivers do.
	ReuseNames bool

	calls  []Call
	errors []uint32
	next   uint32
	freed  []uint32

	buffers        map[uint32][]byte
	bufferBindings map[uint32]uint32

	vertexArrays map[uint32]*vertexArray
	vertexArray  uint32

	textures        map[uint32]*texture
	activeUnit      uint32
	textureBindings map[[2]uint32]uint32

	samplers        map[uint32]map[uint32]any
	samplerBindings map[uint32]uint32

	renderbuffers map[uint32]*renderbuffer
	renderbuffer  uint32

	framebuffers        map[uint32]*framebuffer
	framebufferBindings map[uint32]uint32
	// FramebufferStatus overrides CheckFramebufferStatus when non-zero.
	FramebufferStatus uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	program  uint32

	enabled        map[uint32]bool
	pixels         map[uint32]int32
	clearValue     [4]float32
	defaultCleared [4]float32
	draws          []Draw
	debug          func(driver.DebugMessage)
}

var _ driver.Functions = (*GL)(nil)

// New returns a fake reporting a 3.3 core context with common desktop limits
// and the anisotropic filtering, S3TC and debug-output extensions.
func New() *GL {
	f := &GL{
		Version: "3.3.0 fakegl",
		Extensions: []string{
			"GL_EXT_texture_filter_anisotropic",
			"GL_EXT_texture_compression_s3tc",
			"GL_EXT_texture_sRGB",
			"GL_KHR_debug",
		},
		Limits: map[uint32]int32{
			driver.MAJOR_VERSION:                    3,
			driver.MINOR_VERSION:                    3,
			driver.MAX_TEXTURE_SIZE:                 4096,
			driver.MAX_3D_TEXTURE_SIZE:              256,
			driver.MAX_CUBE_MAP_TEXTURE_SIZE:        4096,
			driver.MAX_ARRAY_TEXTURE_LAYERS:         256,
			driver.MAX_RECTANGLE_TEXTURE_SIZE:       4096,
			driver.MAX_RENDERBUFFER_SIZE:            4096,
			driver.MAX_VERTEX_ATTRIBS:               16,
			driver.MAX_COMBINED_TEXTURE_IMAGE_UNITS: 16,
			driver.MAX_COLOR_ATTACHMENTS:            8,
			driver.MAX_DRAW_BUFFERS:                 8,
			driver.MAX_SAMPLES:                      4,
		},
		Anisotropy:          16,
		buffers:             make(map[uint32][]byte),
		bufferBindings:      make(map[uint32]uint32),
		vertexArrays:        make(map[uint32]*vertexArray),
		textures:            make(map[uint32]*texture),
		textureBindings:     make(map[[2]uint32]uint32),
		samplers:            make(map[uint32]map[uint32]any),
		samplerBindings:     make(map[uint32]uint32),
		renderbuffers:       make(map[uint32]*renderbuffer),
		framebuffers:        make(map[uint32]*framebuffer),
		framebufferBindings: make(map[uint32]uint32),
		shaders:             make(map[uint32]*shader),
		programs:            make(map[uint32]*program),
		enabled:             map[uint32]bool{driver.MULTISAMPLE: true},
		pixels:              make(map[uint32]int32),
	}
	return f
}

func (f *GL) record(name string, args ...any) {
	f.calls = append(f.calls, Call{Name: name, Args: args})
}

func (f *GL) gen() uint32 {
	if f.ReuseNames && len(f.freed) > 0 {
		i := slices.Index(f.freed, slices.Min(f.freed))
		name := f.freed[i]
		f.freed = slices.Delete(f.freed, i, i+1)
		return name
	}
	f.next++
	return f.next
}

func (f *GL) fail(code uint32) { f.errors = append(f.errors, code) }

// Calls returns the recorded calls to the named entry point, in order. With
// no name it returns every call.
func (f *GL) Calls(name ...string) []Call {
	if len(name) == 0 {
		return slices.Clone(f.calls)
	}
	var out []Call
	for _, c := range f.calls {
		if slices.Contains(name, c.Name) {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times the named entry point was called.
func (f *GL) Count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls and draws but keeps object state.
func (f *GL) Reset() {
	f.calls = nil
	f.draws = nil
}

// Draws returns the recorded draw commands.
func (f *GL) Draws() []Draw { return slices.Clone(f.draws) }

// Enabled reports whether a capability is enabled.
func (f *GL) Enabled(cap uint32) bool { return f.enabled[cap] }

// Live reports how many objects of each kind are still allocated, keyed by
// kind name.
func (f *GL) Live() map[string]int {
	return map[string]int{
		"buffer":       len(f.buffers),
		"vertexArray":  len(f.vertexArrays),
		"texture":      len(f.textures),
		"sampler":      len(f.samplers),
		"renderbuffer": len(f.renderbuffers),
		"framebuffer":  len(f.framebuffers),
		"shader":       len(f.shaders),
		"program":      len(f.programs),
	}
}

// BufferContents returns a copy of a buffer's storage.
func (f *GL) BufferContents(name uint32) []byte { return slices.Clone(f.buffers[name]) }

// Bound returns the object bound to a buffer, framebuffer or renderbuffer
// target. Target 0 returns the current program.
func (f *GL) Bound(target uint32) uint32 {
	switch target {
	case 0:
		return f.program
	case driver.RENDERBUFFER:
		return f.renderbuffer
	case driver.DRAW_FRAMEBUFFER, driver.READ_FRAMEBUFFER:
		return f.framebufferBindings[target]
	case driver.ELEMENT_ARRAY_BUFFER:
		if vao := f.vertexArrays[f.vertexArray]; vao != nil {
			return vao.element
		}
		return 0
	}
	return f.bufferBindings[target]
}

// BoundVertexArray returns the current vertex array object.
func (f *GL) BoundVertexArray() uint32 { return f.vertexArray }

// BoundTexture returns the texture bound to target on the given unit.
func (f *GL) BoundTexture(unit, target uint32) uint32 {
	return f.textureBindings[[2]uint32{unit, target}]
}

// BoundSampler returns the sampler bound to a unit.
func (f *GL) BoundSampler(unit uint32) uint32 { return f.samplerBindings[unit] }

// TextureParam returns the last value set for a texture parameter.
func (f *GL) TextureParam(tex, pname uint32) any {
	if t := f.textures[tex]; t != nil {
		return t.params[pname]
	}
	return nil
}

// SamplerParam returns the last value set for a sampler parameter.
func (f *GL) SamplerParam(s, pname uint32) any { return f.samplers[s][pname] }

// TextureLevel reports the size and data stored for a level of a texture.
// face is 0 except for cube maps.
func (f *GL) TextureLevel(tex uint32, face, level int32) (w, h, d int32, data []byte, ok bool) {
	t := f.textures[tex]
	if t == nil {
		return 0, 0, 0, nil, false
	}
	img := t.images[[2]int32{face, level}]
	if img == nil {
		return 0, 0, 0, nil, false
	}
	return img.Width, img.Height, img.Depth, img.Data, true
}

// Attachment describes what is attached to an attachment point of a
// framebuffer.
func (f *GL) Attachment(fb, point uint32) (kind string, name uint32, ok bool) {
	fbo := f.framebuffers[fb]
	if fbo == nil {
		return "", 0, false
	}
	a, ok := fbo.attachments[point]
	return a.Kind, a.Name, ok
}

// AttachmentPoints returns the occupied attachment points of a framebuffer,
// sorted.
func (f *GL) AttachmentPoints(fb uint32) []uint32 {
	fbo := f.framebuffers[fb]
	if fbo == nil {
		return nil
	}
	var points []uint32
	for p := range fbo.attachments {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}

// DrawBuffersOf returns the draw buffer list set on a framebuffer.
func (f *GL) DrawBuffersOf(fb uint32) []uint32 {
	if fbo := f.framebuffers[fb]; fbo != nil {
		return slices.Clone(fbo.drawBuffers)
	}
	return nil
}

// Pointer returns the last VertexAttribPointer or VertexAttribIPointer call
// recorded for an attribute of a vertex array.
func (f *GL) Pointer(vao, index uint32) (Call, bool) {
	v := f.vertexArrays[vao]
	if v == nil {
		return Call{}, false
	}
	c, ok := v.pointers[index]
	return c, ok
}

// EmitDebug delivers a message through the installed debug callback.
func (f *GL) EmitDebug(msg driver.DebugMessage) {
	if f.debug != nil {
		f.debug(msg)
	}
}

func (f *GL) GetError() uint32 {
	if len(f.errors) == 0 {
		return driver.NO_ERROR
	}
	e := f.errors[0]
	f.errors = f.errors[1:]
	return e
}

func (f *GL) GetString(name uint32) string {
	switch name {
	case driver.VERSION:
		return f.Version
	case driver.VENDOR:
		return "glsafe"
	case driver.RENDERER:
		return "fakegl"
	case driver.SHADING_LANGUAGE_VERSION:
		return "3.30"
	}
	return ""
}

func (f *GL) GetStringi(name uint32, index uint32) string {
	if name == driver.EXTENSIONS && int(index) < len(f.Extensions) {
		return f.Extensions[index]
	}
	f.fail(driver.INVALID_VALUE)
	return ""
}

func (f *GL) GetIntegerv(pname uint32) int32 {
	if pname == driver.NUM_EXTENSIONS {
		return int32(len(f.Extensions))
	}
	return f.Limits[pname]
}

func (f *GL) GetFloatv(pname uint32) float32 {
	if pname == driver.MAX_TEXTURE_MAX_ANISOTROPY {
		return f.Anisotropy
	}
	return float32(f.Limits[pname])
}

func (f *GL) PixelStorei(pname uint32, param int32) {
	f.record("PixelStorei", pname, param)
	f.pixels[pname] = param
}

// PixelStore returns the last PixelStorei value for pname.
func (f *GL) PixelStore(pname uint32) int32 { return f.pixels[pname] }

func (f *GL) Enable(cap uint32) {
	f.record("Enable", cap)
	f.enabled[cap] = true
}

func (f *GL) Disable(cap uint32) {
	f.record("Disable", cap)
	f.enabled[cap] = false
}

func (f *GL) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	f.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (f *GL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *GL) BlendColor(r, g, b, a float32) { f.record("BlendColor", r, g, b, a) }
func (f *GL) CullFace(mode uint32)          { f.record("CullFace", mode) }
func (f *GL) FrontFace(mode uint32)         { f.record("FrontFace", mode) }
func (f *GL) DepthFunc(fn uint32)           { f.record("DepthFunc", fn) }
func (f *GL) DepthMask(flag bool)           { f.record("DepthMask", flag) }
func (f *GL) DepthRange(near, far float64)  { f.record("DepthRange", near, far) }
func (f *GL) ColorMask(r, g, b, a bool)     { f.record("ColorMask", r, g, b, a) }
func (f *GL) PolygonMode(face, mode uint32) { f.record("PolygonMode", face, mode) }
func (f *GL) LineWidth(width float32)       { f.record("LineWidth", width) }
func (f *GL) Viewport(x, y, w, h int32)     { f.record("Viewport", x, y, w, h) }
func (f *GL) Scissor(x, y, w, h int32)      { f.record("Scissor", x, y, w, h) }
func (f *GL) ClearDepth(depth float64)      { f.record("ClearDepth", depth) }
func (f *GL) ClearStencil(s int32)          { f.record("ClearStencil", s) }
func (f *GL) PolygonOffset(factor, units float32) {
	f.record("PolygonOffset", factor, units)
}

func (f *GL) PrimitiveRestartIndex(index uint32) { f.record("PrimitiveRestartIndex", index) }

func (f *GL) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	f.record("StencilFuncSeparate", face, fn, ref, mask)
}

func (f *GL) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	f.record("StencilOpSeparate", face, sfail, dpfail, dppass)
}

func (f *GL) StencilMaskSeparate(face uint32, mask uint32) {
	f.record("StencilMaskSeparate", face, mask)
}

func (f *GL) ClearColor(r, g, b, a float32) {
	f.record("ClearColor", r, g, b, a)
	f.clearValue = [4]float32{r, g, b, a}
}

func (f *GL) Clear(mask uint32) {
	f.record("Clear", mask)
	if mask&driver.COLOR_BUFFER_BIT != 0 {
		fbo := f.framebuffers[f.framebufferBindings[driver.DRAW_FRAMEBUFFER]]
		if fbo == nil {
			f.defaultCleared = f.clearValue
			return
		}
		for _, buf := range fbo.drawBuffers {
			fbo.cleared[buf] = f.clearValue
		}
	}
}

func (f *GL) ClearBufferfv(buffer uint32, drawbuffer int32, value []float32) {
	f.record("ClearBufferfv", buffer, drawbuffer, slices.Clone(value))
	if buffer != driver.COLOR {
		return
	}
	var v [4]float32
	copy(v[:], value)
	f.setCleared(drawbuffer, v)
}

func (f *GL) ClearBufferiv(buffer uint32, drawbuffer int32, value []int32) {
	f.record("ClearBufferiv", buffer, drawbuffer, slices.Clone(value))
	if buffer != driver.COLOR {
		return
	}
	var v [4]float32
	for i := range value {
		v[i] = float32(value[i])
	}
	f.setCleared(drawbuffer, v)
}

func (f *GL) ClearBufferuiv(buffer uint32, drawbuffer int32, value []uint32) {
	f.record("ClearBufferuiv", buffer, drawbuffer, slices.Clone(value))
	var v [4]float32
	for i := range value {
		v[i] = float32(value[i])
	}
	f.setCleared(drawbuffer, v)
}

func (f *GL) ClearBufferfi(buffer uint32, drawbuffer int32, depth float32, stencil int32) {
	f.record("ClearBufferfi", buffer, drawbuffer, depth, stencil)
}

func (f *GL) setCleared(drawbuffer int32, v [4]float32) {
	fbo := f.framebuffers[f.framebufferBindings[driver.DRAW_FRAMEBUFFER]]
	if fbo == nil {
		f.defaultCleared = v
		return
	}
	if int(drawbuffer) < len(fbo.drawBuffers) {
		fbo.cleared[fbo.drawBuffers[drawbuffer]] = v
	}
}

func (f *GL) GenBuffer() uint32 {
	b := f.gen()
	f.record("GenBuffer", b)
	f.buffers[b] = nil
	return b
}

func (f *GL) DeleteBuffer(b uint32) {
	f.record("DeleteBuffer", b)
	delete(f.buffers, b)
	for target, bound := range f.bufferBindings {
		if bound == b {
			f.bufferBindings[target] = 0
		}
	}
}

func (f *GL) BindBuffer(target uint32, b uint32) {
	f.record("BindBuffer", target, b)
	if target == driver.ELEMENT_ARRAY_BUFFER {
		if vao := f.vertexArrays[f.vertexArray]; vao != nil {
			vao.element = b
		}
		return
	}
	f.bufferBindings[target] = b
}

func (f *GL) boundBuffer(target uint32) uint32 {
	if target == driver.ELEMENT_ARRAY_BUFFER {
		return f.Bound(target)
	}
	return f.bufferBindings[target]
}

func (f *GL) BufferData(target uint32, size int, data []byte, usage uint32) {
	f.record("BufferData", target, size, usage)
	b := f.boundBuffer(target)
	if b == 0 {
		f.fail(driver.INVALID_OPERATION)
		return
	}
	if f.BufferLimit > 0 && size > f.BufferLimit {
		f.fail(driver.OUT_OF_MEMORY)
		return
	}
	store := make([]byte, size)
	copy(store, data)
	f.buffers[b] = store
}

func (f *GL) BufferSubData(target uint32, offset int, data []byte) {
	f.record("BufferSubData", target, offset, len(data))
	store := f.buffers[f.boundBuffer(target)]
	if offset < 0 || offset+len(data) > len(store) {
		f.fail(driver.INVALID_VALUE)
		return
	}
	copy(store[offset:], data)
}

func (f *GL) GetBufferSubData(target uint32, offset int, dst []byte) {
	f.record("GetBufferSubData", target, offset, len(dst))
	store := f.buffers[f.boundBuffer(target)]
	if offset < 0 || offset+len(dst) > len(store) {
		f.fail(driver.INVALID_VALUE)
		return
	}
	copy(dst, store[offset:])
}

func (f *GL) CopyBufferSubData(readTarget, writeTarget uint32, readOffset, writeOffset, size int) {
	f.record("CopyBufferSubData", readTarget, writeTarget, readOffset, writeOffset, size)
	src := f.buffers[f.boundBuffer(readTarget)]
	dst := f.buffers[f.boundBuffer(writeTarget)]
	if readOffset+size > len(src) || writeOffset+size > len(dst) {
		f.fail(driver.INVALID_VALUE)
		return
	}
	copy(dst[writeOffset:writeOffset+size], src[readOffset:readOffset+size])
}

func (f *GL) GenVertexArray() uint32 {
	v := f.gen()
	f.record("GenVertexArray", v)
	f.vertexArrays[v] = &vertexArray{
		enabled:  make(map[uint32]bool),
		pointers: make(map[uint32]Call),
		divisors: make(map[uint32]uint32),
	}
	return v
}

func (f *GL) DeleteVertexArray(vao uint32) {
	f.record("DeleteVertexArray", vao)
	delete(f.vertexArrays, vao)
	if f.vertexArray == vao {
		f.vertexArray = 0
	}
}

func (f *GL) BindVertexArray(vao uint32) {
	f.record("BindVertexArray", vao)
	f.vertexArray = vao
}

func (f *GL) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray", index)
	if vao := f.vertexArrays[f.vertexArray]; vao != nil {
		vao.enabled[index] = true
	}
}

func (f *GL) DisableVertexAttribArray(index uint32) {
	f.record("DisableVertexAttribArray", index)
	if vao := f.vertexArrays[f.vertexArray]; vao != nil {
		vao.enabled[index] = false
	}
}

func (f *GL) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset int) {
	c := Call{Name: "VertexAttribPointer", Args: []any{index, size, typ, normalized, stride, offset}}
	f.calls = append(f.calls, c)
	if vao := f.vertexArrays[f.vertexArray]; vao != nil {
		vao.pointers[index] = c
	}
}

func (f *GL) VertexAttribIPointer(index uint32, size int32, typ uint32, stride int32, offset int) {
	c := Call{Name: "VertexAttribIPointer", Args: []any{index, size, typ, stride, offset}}
	f.calls = append(f.calls, c)
	if vao := f.vertexArrays[f.vertexArray]; vao != nil {
		vao.pointers[index] = c
	}
}

func (f *GL) VertexAttribDivisor(index, divisor uint32) {
	f.record("VertexAttribDivisor", index, divisor)
	if vao := f.vertexArrays[f.vertexArray]; vao != nil {
		vao.divisors[index] = divisor
	}
}

func (f *GL) GenTexture() uint32 {
	t := f.gen()
	f.record("GenTexture", t)
	f.textures[t] = &texture{images: make(map[[2]int32]*image), params: make(map[uint32]any)}
	return t
}

func (f *GL) DeleteTexture(t uint32) {
	f.record("DeleteTexture", t)
	if _, ok := f.textures[t]; ok {
		f.freed = append(f.freed, t)
	}
	delete(f.textures, t)
	for k, bound := range f.textureBindings {
		if bound == t {
			f.textureBindings[k] = 0
		}
	}
}

func (f *GL) ActiveTexture(unit uint32) {
	f.record("ActiveTexture", unit)
	f.activeUnit = unit - driver.TEXTURE0
}

func (f *GL) BindTexture(target uint32, t uint32) {
	f.record("BindTexture", target, t)
	f.textureBindings[[2]uint32{f.activeUnit, target}] = t
	if tex := f.textures[t]; tex != nil && tex.target == 0 {
		tex.target = target
	}
}

// boundTexture resolves the texture an image call addresses. Cube map face
// targets address the cube map binding.
func (f *GL) boundTexture(target uint32) (*texture, int32) {
	face := int32(0)
	if target >= driver.TEXTURE_CUBE_MAP_POSITIVE_X && target < driver.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		face = int32(target - driver.TEXTURE_CUBE_MAP_POSITIVE_X)
		target = driver.TEXTURE_CUBE_MAP
	}
	t := f.textures[f.textureBindings[[2]uint32{f.activeUnit, target}]]
	if t == nil {
		f.fail(driver.INVALID_OPERATION)
	}
	return t, face
}

func (f *GL) storeImage(name string, target uint32, level int32, img *image) {
	f.record(name, target, level, img.InternalFormat, img.Width, img.Height, img.Depth, len(img.Data))
	t, face := f.boundTexture(target)
	if t == nil {
		return
	}
	img.Data = slices.Clone(img.Data)
	t.images[[2]int32{face, level}] = img
}

func (f *GL) TexImage1D(target uint32, level, internalFormat, width int32, format, typ uint32, data []byte) {
	f.storeImage("TexImage1D", target, level, &image{Width: width, Height: 1, Depth: 1, InternalFormat: uint32(internalFormat), Data: data})
}

func (f *GL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, data []byte) {
	f.storeImage("TexImage2D", target, level, &image{Width: width, Height: height, Depth: 1, InternalFormat: uint32(internalFormat), Data: data})
}

func (f *GL) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, typ uint32, data []byte) {
	f.storeImage("TexImage3D", target, level, &image{Width: width, Height: height, Depth: depth, InternalFormat: uint32(internalFormat), Data: data})
}

func (f *GL) CompressedTexImage2D(target uint32, level int32, internalFormat uint32, width, height int32, data []byte) {
	f.storeImage("CompressedTexImage2D", target, level, &image{Width: width, Height: height, Depth: 1, InternalFormat: internalFormat, Compressed: true, Data: data})
}

func (f *GL) CompressedTexImage3D(target uint32, level int32, internalFormat uint32, width, height, depth int32, data []byte) {
	f.storeImage("CompressedTexImage3D", target, level, &image{Width: width, Height: height, Depth: depth, InternalFormat: internalFormat, Compressed: true, Data: data})
}

func (f *GL) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedLocations bool) {
	f.storeImage("TexImage2DMultisample", target, 0, &image{Width: width, Height: height, Depth: 1, InternalFormat: internalFormat, Samples: samples})
}

func (f *GL) TexImage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedLocations bool) {
	f.storeImage("TexImage3DMultisample", target, 0, &image{Width: width, Height: height, Depth: depth, InternalFormat: internalFormat, Samples: samples})
}

func (f *GL) TexSubImage1D(target uint32, level, x, width int32, format, typ uint32, data []byte) {
	f.record("TexSubImage1D", target, level, x, width, len(data))
}

func (f *GL) TexSubImage2D(target uint32, level, x, y, width, height int32, format, typ uint32, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, width, height, len(data))
	t, face := f.boundTexture(target)
	if t == nil {
		return
	}
	img := t.images[[2]int32{face, level}]
	if img == nil {
		f.fail(driver.INVALID_OPERATION)
		return
	}
	// Whole-level updates replace the stored bytes; partial ones are only
	// recorded.
	if x == 0 && y == 0 && width == img.Width && height == img.Height {
		img.Data = slices.Clone(data)
	}
}

func (f *GL) TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, typ uint32, data []byte) {
	f.record("TexSubImage3D", target, level, x, y, z, width, height, depth, len(data))
}

func (f *GL) TexParameteri(target, pname uint32, param int32) {
	f.record("TexParameteri", target, pname, param)
	if t, _ := f.boundTexture(target); t != nil {
		t.params[pname] = param
	}
}

func (f *GL) TexParameterf(target, pname uint32, param float32) {
	f.record("TexParameterf", target, pname, param)
	if t, _ := f.boundTexture(target); t != nil {
		t.params[pname] = param
	}
}

func (f *GL) TexParameterfv(target, pname uint32, params []float32) {
	f.record("TexParameterfv", target, pname, slices.Clone(params))
	if t, _ := f.boundTexture(target); t != nil {
		t.params[pname] = slices.Clone(params)
	}
}

func (f *GL) GetTexImage(target uint32, level int32, format, typ uint32, dst []byte) {
	f.record("GetTexImage", target, level, format, typ, len(dst))
	t, face := f.boundTexture(target)
	if t == nil {
		return
	}
	if img := t.images[[2]int32{face, level}]; img != nil {
		copy(dst, img.Data)
	}
}

func (f *GL) GenerateMipmap(target uint32) {
	f.record("GenerateMipmap", target)
	if t, _ := f.boundTexture(target); t != nil {
		t.mipmaps++
	}
}

func (f *GL) GenSampler() uint32 {
	s := f.gen()
	f.record("GenSampler", s)
	f.samplers[s] = make(map[uint32]any)
	return s
}

func (f *GL) DeleteSampler(s uint32) {
	f.record("DeleteSampler", s)
	delete(f.samplers, s)
	for unit, bound := range f.samplerBindings {
		if bound == s {
			f.samplerBindings[unit] = 0
		}
	}
}

func (f *GL) BindSampler(unit, s uint32) {
	f.record("BindSampler", unit, s)
	f.samplerBindings[unit] = s
}

func (f *GL) SamplerParameteri(s uint32, pname uint32, param int32) {
	f.record("SamplerParameteri", s, pname, param)
	if p := f.samplers[s]; p != nil {
		p[pname] = param
	}
}

func (f *GL) SamplerParameterf(s uint32, pname uint32, param float32) {
	f.record("SamplerParameterf", s, pname, param)
	if p := f.samplers[s]; p != nil {
		p[pname] = param
	}
}

func (f *GL) SamplerParameterfv(s uint32, pname uint32, params []float32) {
	f.record("SamplerParameterfv", s, pname, slices.Clone(params))
	if p := f.samplers[s]; p != nil {
		p[pname] = slices.Clone(params)
	}
}

func (f *GL) GenRenderbuffer() uint32 {
	rb := f.gen()
	f.record("GenRenderbuffer", rb)
	f.renderbuffers[rb] = &renderbuffer{}
	return rb
}

func (f *GL) DeleteRenderbuffer(rb uint32) {
	f.record("DeleteRenderbuffer", rb)
	if _, ok := f.renderbuffers[rb]; ok {
		f.freed = append(f.freed, rb)
	}
	delete(f.renderbuffers, rb)
	if f.renderbuffer == rb {
		f.renderbuffer = 0
	}
}

func (f *GL) BindRenderbuffer(target uint32, rb uint32) {
	f.record("BindRenderbuffer", target, rb)
	f.renderbuffer = rb
}

func (f *GL) RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, width, height int32) {
	f.record("RenderbufferStorageMultisample", target, samples, internalFormat, width, height)
	rb := f.renderbuffers[f.renderbuffer]
	if rb == nil {
		f.fail(driver.INVALID_OPERATION)
		return
	}
	*rb = renderbuffer{internalFormat: internalFormat, width: width, height: height, samples: samples}
}

func (f *GL) GenFramebuffer() uint32 {
	fb := f.gen()
	f.record("GenFramebuffer", fb)
	f.framebuffers[fb] = &framebuffer{
		attachments: make(map[uint32]attachment),
		drawBuffers: []uint32{driver.COLOR_ATTACHMENT0},
		readBuffer:  driver.COLOR_ATTACHMENT0,
		cleared:     make(map[uint32][4]float32),
	}
	return fb
}

func (f *GL) DeleteFramebuffer(fb uint32) {
	f.record("DeleteFramebuffer", fb)
	delete(f.framebuffers, fb)
	for target, bound := range f.framebufferBindings {
		if bound == fb {
			f.framebufferBindings[target] = 0
		}
	}
}

func (f *GL) BindFramebuffer(target uint32, fb uint32) {
	f.record("BindFramebuffer", target, fb)
	if target == driver.FRAMEBUFFER {
		f.framebufferBindings[driver.DRAW_FRAMEBUFFER] = fb
		f.framebufferBindings[driver.READ_FRAMEBUFFER] = fb
		return
	}
	f.framebufferBindings[target] = fb
}

func (f *GL) boundFramebuffer(target uint32) *framebuffer {
	if target == driver.FRAMEBUFFER {
		target = driver.DRAW_FRAMEBUFFER
	}
	fbo := f.framebuffers[f.framebufferBindings[target]]
	if fbo == nil {
		f.fail(driver.INVALID_OPERATION)
	}
	return fbo
}

func (f *GL) attach(target, point uint32, a attachment) {
	fbo := f.boundFramebuffer(target)
	if fbo == nil {
		return
	}
	if a.Name == 0 {
		delete(fbo.attachments, point)
		return
	}
	fbo.attachments[point] = a
}

func (f *GL) FramebufferTexture(target, point uint32, t uint32, level int32) {
	f.record("FramebufferTexture", target, point, t, level)
	f.attach(target, point, attachment{Kind: "texture", Name: t, Level: level, Layer: -1})
}

func (f *GL) FramebufferTexture2D(target, point, texTarget uint32, t uint32, level int32) {
	f.record("FramebufferTexture2D", target, point, texTarget, t, level)
	f.attach(target, point, attachment{Kind: "texture", Name: t, Level: level, Layer: -1, Target: texTarget})
}

func (f *GL) FramebufferTextureLayer(target, point uint32, t uint32, level, layer int32) {
	f.record("FramebufferTextureLayer", target, point, t, level, layer)
	f.attach(target, point, attachment{Kind: "texture", Name: t, Level: level, Layer: layer})
}

func (f *GL) FramebufferRenderbuffer(target, point, rbTarget uint32, rb uint32) {
	f.record("FramebufferRenderbuffer", target, point, rbTarget, rb)
	f.attach(target, point, attachment{Kind: "renderbuffer", Name: rb})
}

func (f *GL) CheckFramebufferStatus(target uint32) uint32 {
	f.record("CheckFramebufferStatus", target)
	if f.FramebufferStatus != 0 {
		return f.FramebufferStatus
	}
	fbo := f.boundFramebuffer(target)
	if fbo == nil {
		return driver.FRAMEBUFFER_COMPLETE
	}
	if len(fbo.attachments) == 0 {
		return driver.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	return driver.FRAMEBUFFER_COMPLETE
}

func (f *GL) DrawBuffers(bufs []uint32) {
	f.record("DrawBuffers", slices.Clone(bufs))
	if fbo := f.boundFramebuffer(driver.DRAW_FRAMEBUFFER); fbo != nil {
		fbo.drawBuffers = slices.Clone(bufs)
	}
}

func (f *GL) ReadBuffer(src uint32) {
	f.record("ReadBuffer", src)
	if fbo := f.framebuffers[f.framebufferBindings[driver.READ_FRAMEBUFFER]]; fbo != nil {
		fbo.readBuffer = src
	}
}

// ReadPixels fills dst with the color the read buffer was last cleared to,
// encoded as unsigned bytes or floats according to typ.
func (f *GL) ReadPixels(x, y, width, height int32, format, typ uint32, dst []byte) {
	f.record("ReadPixels", x, y, width, height, format, typ, len(dst))
	v := f.defaultCleared
	if fbo := f.framebuffers[f.framebufferBindings[driver.READ_FRAMEBUFFER]]; fbo != nil {
		v = fbo.cleared[fbo.readBuffer]
	}
	fillPixels(dst, format, typ, v)
}

func (f *GL) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	f.record("BlitFramebuffer", srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (f *GL) UseProgram(p uint32) {
	f.record("UseProgram", p)
	f.program = p
}

func (f *GL) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays", mode, first, count)
	f.draws = append(f.draws, f.draw(Draw{Mode: mode, First: first, Count: count, Instances: 1}))
}

func (f *GL) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	f.record("DrawArraysInstanced", mode, first, count, instances)
	f.draws = append(f.draws, f.draw(Draw{Mode: mode, First: first, Count: count, Instances: instances}))
}

func (f *GL) DrawElements(mode uint32, count int32, typ uint32, offset int) {
	f.record("DrawElements", mode, count, typ, offset)
	f.draws = append(f.draws, f.draw(Draw{Mode: mode, Count: count, Instances: 1, Indexed: true, IndexType: typ, Offset: offset}))
}

func (f *GL) DrawElementsInstanced(mode uint32, count int32, typ uint32, offset int, instances int32) {
	f.record("DrawElementsInstanced", mode, count, typ, offset, instances)
	f.draws = append(f.draws, f.draw(Draw{Mode: mode, Count: count, Instances: instances, Indexed: true, IndexType: typ, Offset: offset}))
}

func (f *GL) draw(d Draw) Draw {
	d.Program = f.program
	d.VertexArray = f.vertexArray
	d.Framebuffer = f.framebufferBindings[driver.DRAW_FRAMEBUFFER]
	if d.Program == 0 || d.VertexArray == 0 {
		f.fail(driver.INVALID_OPERATION)
	}
	return d
}

func (f *GL) DebugMessageCallback(fn func(driver.DebugMessage)) {
	f.record("DebugMessageCallback", fn != nil)
	f.debug = fn
}

func fillPixels(dst []byte, format, typ uint32, v [4]float32) {
	n := 4
	switch format {
	case driver.RED, driver.DEPTH_COMPONENT, driver.RED_INTEGER:
		n = 1
	case driver.RG, driver.RG_INTEGER:
		n = 2
	case driver.RGB, driver.RGB_INTEGER:
		n = 3
	}
	switch typ {
	case driver.FLOAT:
		px := make([]byte, 0, 4*n)
		for i := 0; i < n; i++ {
			px = appendFloat(px, v[i])
		}
		for i := 0; i+len(px) <= len(dst); i += len(px) {
			copy(dst[i:], px)
		}
	default:
		for i := range dst {
			c := v[i%n]
			if c < 0 {
				c = 0
			}
			if c > 1 {
				c = 1
			}
			dst[i] = byte(c*255 + 0.5)
		}
	}
}

func appendFloat(b []byte, v float32) []byte {
	bits := math.Float32bits(v)
	return append(b, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

func (f *GL) String() string {
	return fmt.Sprintf("fakegl(%d calls)", len(f.calls))
}
