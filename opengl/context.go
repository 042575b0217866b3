package opengl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"glsafe/driver"
)

// Limits are the driver maxima queried when a Context is created.
type Limits struct {
	MaxVertexAttribs    int
	MaxTextureUnits     int
	MaxTextureSize      int
	Max3DTextureSize    int
	MaxCubeMapSize      int
	MaxArrayLayers      int
	MaxRectangleSize    int
	MaxRenderbufferSize int
	MaxColorAttachments int
	MaxDrawBuffers      int
	MaxSamples          int
	// MaxAnisotropy is 0 when anisotropic filtering is unavailable.
	MaxAnisotropy float32
}

// Extension names the layer checks for.
const (
	ExtAnisotropic    = "GL_EXT_texture_filter_anisotropic"
	ExtAnisotropicARB = "GL_ARB_texture_filter_anisotropic"
	ExtS3TC           = "GL_EXT_texture_compression_s3tc"
	ExtTextureSRGB    = "GL_EXT_texture_sRGB"
	ExtDebugOutput    = "GL_KHR_debug"
	ExtDebugOutputARB = "GL_ARB_debug_output"
)

// Context holds the binding caches, pipeline state and limits of one native
// GL context. Every resource keeps a pointer to the Context it was created
// against.
//
// A Context is not safe for concurrent use. Create exactly one per native
// context and use it only while that context is current.
type Context struct {
	fns        driver.Functions
	log        *slog.Logger
	limits     Limits
	version    string
	renderer   string
	extensions map[string]bool

	copyRead        tracker
	copyWrite       tracker
	arrayBuffer     tracker
	vertexArray     tracker
	program         tracker
	renderbuffer    tracker
	drawFramebuffer tracker
	readFramebuffer tracker
	units           unitTable

	state      pipelineState
	stateStale bool

	defaultInUse bool
}

// NewContext wraps the native context whose entry points are fns. The
// native context must be current on the calling thread.
func NewContext(fns driver.Functions, opts ...Option) (*Context, error) {
	o := options{logger: Logger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	version := fns.GetString(driver.VERSION)
	major := int(fns.GetIntegerv(driver.MAJOR_VERSION))
	minor := int(fns.GetIntegerv(driver.MINOR_VERSION))
	if major < 3 || (major == 3 && minor < 3) {
		return nil, &VersionError{Major: major, Minor: minor, Version: version}
	}

	ctx := &Context{
		fns:        fns,
		log:        o.logger,
		version:    version,
		renderer:   fns.GetString(driver.RENDERER),
		extensions: make(map[string]bool),
		state:      defaultPipelineState(),
		stateStale: true,
	}
	if o.forceExt {
		for _, e := range o.extensions {
			ctx.extensions[e] = true
		}
	} else {
		n := int(fns.GetIntegerv(driver.NUM_EXTENSIONS))
		for i := 0; i < n; i++ {
			ctx.extensions[fns.GetStringi(driver.EXTENSIONS, uint32(i))] = true
		}
	}

	ctx.limits = Limits{
		MaxVertexAttribs:    int(fns.GetIntegerv(driver.MAX_VERTEX_ATTRIBS)),
		MaxTextureUnits:     int(fns.GetIntegerv(driver.MAX_COMBINED_TEXTURE_IMAGE_UNITS)),
		MaxTextureSize:      int(fns.GetIntegerv(driver.MAX_TEXTURE_SIZE)),
		Max3DTextureSize:    int(fns.GetIntegerv(driver.MAX_3D_TEXTURE_SIZE)),
		MaxCubeMapSize:      int(fns.GetIntegerv(driver.MAX_CUBE_MAP_TEXTURE_SIZE)),
		MaxArrayLayers:      int(fns.GetIntegerv(driver.MAX_ARRAY_TEXTURE_LAYERS)),
		MaxRectangleSize:    int(fns.GetIntegerv(driver.MAX_RECTANGLE_TEXTURE_SIZE)),
		MaxRenderbufferSize: int(fns.GetIntegerv(driver.MAX_RENDERBUFFER_SIZE)),
		MaxColorAttachments: int(fns.GetIntegerv(driver.MAX_COLOR_ATTACHMENTS)),
		MaxDrawBuffers:      int(fns.GetIntegerv(driver.MAX_DRAW_BUFFERS)),
		MaxSamples:          int(fns.GetIntegerv(driver.MAX_SAMPLES)),
	}
	if ctx.HasExtension(ExtAnisotropic) || ctx.HasExtension(ExtAnisotropicARB) {
		ctx.limits.MaxAnisotropy = fns.GetFloatv(driver.MAX_TEXTURE_MAX_ANISOTROPY)
	}
	if ctx.limits.MaxTextureUnits < 2 {
		return nil, fmt.Errorf("opengl: driver reports %d texture image units", ctx.limits.MaxTextureUnits)
	}

	ctx.copyRead = newTracker(func(n uint32) { fns.BindBuffer(driver.COPY_READ_BUFFER, n) })
	ctx.copyWrite = newTracker(func(n uint32) { fns.BindBuffer(driver.COPY_WRITE_BUFFER, n) })
	ctx.arrayBuffer = newTracker(func(n uint32) { fns.BindBuffer(driver.ARRAY_BUFFER, n) })
	ctx.vertexArray = newTracker(fns.BindVertexArray)
	ctx.program = newTracker(fns.UseProgram)
	ctx.renderbuffer = newTracker(func(n uint32) { fns.BindRenderbuffer(driver.RENDERBUFFER, n) })
	ctx.drawFramebuffer = newTracker(func(n uint32) { fns.BindFramebuffer(driver.DRAW_FRAMEBUFFER, n) })
	ctx.readFramebuffer = newTracker(func(n uint32) { fns.BindFramebuffer(driver.READ_FRAMEBUFFER, n) })
	ctx.units = newUnitTable(fns, ctx.limits.MaxTextureUnits)

	// Pixel rows in this layer are tightly packed.
	fns.PixelStorei(driver.UNPACK_ALIGNMENT, 1)
	fns.PixelStorei(driver.PACK_ALIGNMENT, 1)

	if o.debug {
		ctx.installDebugOutput()
	}

	ctx.log.Info("opengl context", "version", version, "renderer", ctx.renderer)
	ctx.log.Debug("opengl limits",
		"vertexAttribs", ctx.limits.MaxVertexAttribs,
		"textureUnits", ctx.limits.MaxTextureUnits,
		"textureSize", ctx.limits.MaxTextureSize,
		"colorAttachments", ctx.limits.MaxColorAttachments,
		"samples", ctx.limits.MaxSamples,
		"anisotropy", ctx.limits.MaxAnisotropy)
	return ctx, nil
}

// Limits returns the driver maxima.
func (c *Context) Limits() Limits { return c.limits }

// Version returns the driver's GL_VERSION string.
func (c *Context) Version() string { return c.version }

// HasExtension reports whether the driver advertises the named extension.
func (c *Context) HasExtension(name string) bool { return c.extensions[name] }

// Extensions returns the advertised extensions, sorted.
func (c *Context) Extensions() []string {
	out := make([]string, 0, len(c.extensions))
	for e := range c.extensions {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Logger returns the context's logger.
func (c *Context) Logger() *slog.Logger { return c.log }

// InvalidateState marks every cached binding and the pipeline state as
// unknown. Call it after code outside this package has issued GL calls on
// the same native context.
func (c *Context) InvalidateState() {
	for _, t := range []*tracker{
		&c.copyRead, &c.copyWrite, &c.arrayBuffer, &c.vertexArray, &c.program,
		&c.renderbuffer, &c.drawFramebuffer, &c.readFramebuffer,
	} {
		t.invalidate()
	}
	c.units.invalidate()
	c.stateStale = true
}

// internalUnit is the image unit reserved for binds made by resource
// operations (uploads, parameter changes). Draw calls never use it.
func (c *Context) internalUnit() int { return c.limits.MaxTextureUnits - 1 }

func (c *Context) bindCopyWrite(h Handle) boundBuffer {
	c.copyWrite.set(h)
	return boundBuffer{fns: c.fns, target: driver.COPY_WRITE_BUFFER}
}

func (c *Context) bindCopyRead(h Handle) boundBuffer {
	c.copyRead.set(h)
	return boundBuffer{fns: c.fns, target: driver.COPY_READ_BUFFER}
}

// bindTextureInternal binds a texture on the internal unit for a resource
// operation.
func (c *Context) bindTextureInternal(target driver.Enum, h Handle) boundTexture {
	c.units.bindTexture(c.internalUnit(), target, h)
	return boundTexture{fns: c.fns, target: target}
}

// checkAllocation drains the driver error queue after an allocation. Running
// out of GPU memory is not recoverable at this layer and panics.
func (c *Context) checkAllocation(what string, bytes int) {
	for i := 0; i < 8; i++ {
		e := c.fns.GetError()
		switch e {
		case driver.NO_ERROR:
			return
		case driver.OUT_OF_MEMORY:
			panic(fmt.Sprintf("opengl: out of GPU memory allocating %d bytes for %s", bytes, what))
		default:
			c.log.Error("driver error", "op", what, "error", fmt.Sprintf("0x%X", e))
		}
	}
}

func (c *Context) installDebugOutput() {
	if !c.HasExtension(ExtDebugOutput) && !c.HasExtension(ExtDebugOutputARB) {
		c.log.Warn("debug output requested but not supported")
		return
	}
	c.fns.Enable(driver.DEBUG_OUTPUT)
	c.fns.Enable(driver.DEBUG_OUTPUT_SYNCHRONOUS)
	c.fns.DebugMessageCallback(func(m driver.DebugMessage) {
		level := slog.LevelDebug
		switch m.Severity {
		case driver.DEBUG_SEVERITY_HIGH:
			level = slog.LevelError
		case driver.DEBUG_SEVERITY_MEDIUM:
			level = slog.LevelWarn
		case driver.DEBUG_SEVERITY_LOW:
			level = slog.LevelInfo
		}
		c.log.Log(context.Background(), level, "driver: "+strings.TrimSpace(m.Message),
			"source", fmt.Sprintf("0x%X", m.Source),
			"type", fmt.Sprintf("0x%X", m.Type),
			"id", m.ID)
	})
}
