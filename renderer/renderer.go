package renderer

import (
	"errors"
	"fmt"

	"glsafe/core"
	"glsafe/glsl"
	"glsafe/math"
	"glsafe/opengl"
	"glsafe/scene"
	"glsafe/textures"
)

// Settings configure a Renderer. The zero value disables every optional
// pass; start from DefaultSettings.
type Settings struct {
	// Shadows renders the sun's shadow map. ShadowMapSize is its width and
	// height in texels.
	Shadows       bool
	ShadowMapSize int
	// Skybox draws the scene's sky gradient behind the geometry.
	Skybox bool
	// FrustumCulling skips nodes whose bounds lie outside the view.
	FrustumCulling bool
	// Exposure scales the HDR image before tone mapping.
	Exposure float32
	// TextureCacheSize is the number of material textures kept on the GPU.
	TextureCacheSize int
	// ClearColor fills the HDR target where the sky is disabled.
	ClearColor core.Color
}

func DefaultSettings() Settings {
	return Settings{
		Shadows:          true,
		ShadowMapSize:    2048,
		Skybox:           true,
		FrustumCulling:   true,
		Exposure:         1,
		TextureCacheSize: 64,
		ClearColor:       core.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
	}
}

// Stats describes the last rendered frame.
type Stats struct {
	Objects   int
	Culled    int
	DrawCalls int
	Vertices  int
	Triangles int
}

const skyFaceSize = 64

// gpuMesh is the GPU copy of a scene.Mesh.
type gpuMesh struct {
	vertices *opengl.Buffer[core.Vertex]
	vao      *opengl.VertexArray[core.Vertex, *core.Vertex]
	// deleteIndices frees the index buffer, whose element type depends on
	// the mesh size.
	deleteIndices func()
}

func (g *gpuMesh) delete() {
	g.vao.Delete()
	g.vertices.Delete()
	if g.deleteIndices != nil {
		g.deleteIndices()
	}
}

// Renderer draws a scene.Scene: a shadow pass from the sun, a lit HDR
// pass with the sky behind it, and a tone-mapping pass into the default
// framebuffer.
//
// A Renderer belongs to the goroutine that owns its context.
type Renderer struct {
	ctx      *opengl.Context
	settings Settings
	screen   *opengl.DefaultFramebuffer
	textures *textures.Manager

	shadowProg  *shadowProgram
	litProg     *litProgram
	skyProg     *skyProgram
	toneMapProg *toneMapProgram

	shadowFB      *opengl.Framebuffer[shadowTarget, *shadowTarget]
	shadow        *opengl.Attached[shadowTarget, *shadowTarget]
	shadowMap     *opengl.Texture[opengl.Tex2D]
	shadowSampler *opengl.Sampler

	hdrFB    *opengl.Framebuffer[hdrTarget, *hdrTarget]
	hdrImage hdrTarget
	hdr      *opengl.Attached[hdrTarget, *hdrTarget]

	skyCube    *opengl.Texture[opengl.TexCube]
	skyColors  [2]core.Color
	skyVerts   *opengl.Buffer[skyVertex]
	skyIndices *opengl.Buffer[uint8]
	skyVAO     *opengl.VertexArray[skyVertex, *skyVertex]

	screenVerts *opengl.Buffer[screenVertex]
	screenVAO   *opengl.VertexArray[screenVertex, *screenVertex]

	meshes map[*scene.Mesh]*gpuMesh
	// failed remembers images that could not be uploaded so the warning
	// is logged once.
	failed map[string]bool
	stats  Stats
}

// New creates a renderer drawing into the default framebuffer of ctx, which
// is width by height pixels. The default framebuffer stays claimed until
// Delete.
func New(ctx *opengl.Context, width, height int, settings Settings) (*Renderer, error) {
	if settings.Shadows && settings.ShadowMapSize <= 0 {
		return nil, fmt.Errorf("invalid shadow map size %d", settings.ShadowMapSize)
	}
	screen, err := ctx.DefaultFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		ctx:      ctx,
		settings: settings,
		screen:   screen,
		meshes:   make(map[*scene.Mesh]*gpuMesh),
		failed:   make(map[string]bool),
	}
	if err := r.init(width, height); err != nil {
		r.Delete()
		return nil, err
	}
	ctx.Logger().Debug("renderer ready", "width", width, "height", height,
		"shadows", settings.Shadows, "skybox", settings.Skybox)
	return r, nil
}

func (r *Renderer) init(width, height int) error {
	var err error
	if r.textures, err = textures.NewManager(r.ctx, r.settings.TextureCacheSize); err != nil {
		return fmt.Errorf("texture manager: %w", err)
	}

	if r.shadowProg, err = opengl.NewProgram[core.Vertex, shadowUniforms, shadowTarget](r.ctx,
		opengl.ProgramSource{Vertex: shadowVertexGLSL, Fragment: shadowFragmentGLSL}); err != nil {
		return fmt.Errorf("shadow program: %w", err)
	}
	if r.litProg, err = opengl.NewProgram[core.Vertex, litUniforms, hdrTarget](r.ctx,
		opengl.ProgramSource{Vertex: litVertexGLSL, Fragment: litFragmentGLSL}); err != nil {
		return fmt.Errorf("lit program: %w", err)
	}
	if r.skyProg, err = opengl.NewProgram[skyVertex, skyUniforms, hdrTarget](r.ctx,
		opengl.ProgramSource{Vertex: skyVertexGLSL, Fragment: skyFragmentGLSL}); err != nil {
		return fmt.Errorf("sky program: %w", err)
	}
	if r.toneMapProg, err = opengl.NewProgram[screenVertex, toneMapUniforms, opengl.DefaultAttachments](r.ctx,
		opengl.ProgramSource{Vertex: toneMapVertexGLSL, Fragment: toneMapFragmentGLSL}); err != nil {
		return fmt.Errorf("tone map program: %w", err)
	}

	// Without shadows the lit shader still samples a map; a 1x1 one
	// cleared to the far plane never shadows anything.
	size := 1
	if r.settings.Shadows {
		size = r.settings.ShadowMapSize
	}
	if r.shadowMap, err = opengl.NewTexture[opengl.Tex2D](r.ctx, opengl.Depth32F, opengl.Size2D(size, size)); err != nil {
		return fmt.Errorf("shadow map: %w", err)
	}
	r.shadowSampler = opengl.NewSampler(r.ctx, opengl.SamplingParams{
		Min: opengl.Linear, Mag: opengl.Linear,
		WrapS: opengl.ClampToBorder, WrapT: opengl.ClampToBorder,
		BorderColor:  [4]float32{1, 1, 1, 1},
		DepthCompare: true,
		CompareFunc:  opengl.LessEqual,
	})
	r.shadowFB = opengl.NewFramebuffer[shadowTarget](r.ctx)
	r.shadow = r.shadowFB.Attach(&shadowTarget{Depth: opengl.DepthAttachment{Image: r.shadowMap}})
	if err := r.shadow.Status(); err != nil {
		return fmt.Errorf("shadow framebuffer: %w", err)
	}

	r.hdrFB = opengl.NewFramebuffer[hdrTarget](r.ctx)
	r.hdr = r.hdrFB.Attach(&r.hdrImage)
	if err := r.allocateHDR(width, height); err != nil {
		return err
	}

	r.skyVerts = opengl.NewBuffer(r.ctx, skyCorners, opengl.StaticDraw)
	r.skyIndices = opengl.NewBuffer(r.ctx, skyIndices, opengl.StaticDraw)
	r.skyVAO = opengl.NewVertexArray(r.ctx, r.skyVerts)
	r.skyVAO.SetIndices(opengl.Indices(r.skyIndices))

	r.screenVerts = opengl.NewBuffer(r.ctx, screenTriangle, opengl.StaticDraw)
	r.screenVAO = opengl.NewVertexArray(r.ctx, r.screenVerts)
	return nil
}

// allocateHDR replaces the HDR color and depth images with ones of the
// given size. The framebuffer picks them up on its next use.
func (r *Renderer) allocateHDR(width, height int) error {
	w, h := max(width, 1), max(height, 1)
	color, err := opengl.NewTexture[opengl.Tex2D](r.ctx, opengl.RGBA16F, opengl.Size2D(w, h))
	if err != nil {
		return fmt.Errorf("hdr color: %w", err)
	}
	color.SetSampling(opengl.SamplingParams{WrapS: opengl.ClampToEdge, WrapT: opengl.ClampToEdge})
	depth, err := opengl.NewRenderbuffer(r.ctx, opengl.Depth24, w, h, 0)
	if err != nil {
		color.Delete()
		return fmt.Errorf("hdr depth: %w", err)
	}
	r.freeHDR()
	r.hdrImage.Color.Image = color
	r.hdrImage.Depth.Image = depth
	if err := r.hdr.Status(); err != nil {
		return fmt.Errorf("hdr framebuffer: %w", err)
	}
	return nil
}

func (r *Renderer) freeHDR() {
	if img, ok := r.hdrImage.Color.Image.(*opengl.Texture[opengl.Tex2D]); ok {
		img.Delete()
	}
	if img, ok := r.hdrImage.Depth.Image.(*opengl.Renderbuffer); ok {
		img.Delete()
	}
	r.hdrImage = hdrTarget{}
}

// Resize follows a change of the window's drawable size.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if s := r.screen.Size(); s.W == width && s.H == height {
		return nil
	}
	r.screen.Resize(width, height)
	return r.allocateHDR(width, height)
}

// Settings returns the current settings.
func (r *Renderer) Settings() Settings { return r.settings }

// SetExposure changes the tone-mapping exposure.
func (r *Renderer) SetExposure(exposure float32) { r.settings.Exposure = exposure }

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Textures returns the manager holding material textures.
func (r *Renderer) Textures() *textures.Manager { return r.textures }

// Render draws one frame of s into the default framebuffer.
func (r *Renderer) Render(s *scene.Scene) error {
	if s == nil || s.Camera == nil {
		return errors.New("no scene or camera")
	}
	r.stats = Stats{}
	cam := s.Camera
	viewProj := cam.ViewProjection()

	var visible []*scene.Node
	if r.settings.FrustumCulling {
		f := scene.FrustumFromViewProjection(viewProj)
		visible = s.VisibleNodes(&f)
		r.stats.Culled = len(s.VisibleNodes(nil)) - len(visible)
	} else {
		visible = s.VisibleNodes(nil)
	}

	lightViewProj, shadowed := r.shadowPass(s)

	r.hdr.ClearColorAll(r.settings.ClearColor.RGBA())
	r.hdr.ClearDepth(1)

	u := litUniforms{
		ViewProj:      viewProj,
		LightViewProj: lightViewProj,
		CameraPos:     cam.Position,
		LightDir:      s.Sun.Direction.Normalize(),
		LightColor:    scaleColor(s.Sun.Color, s.Sun.Intensity),
		Ambient:       s.Ambient,
		ShadowMap:     opengl.TextureUniform[glsl.Sampler2DShadow]{Texture: r.shadowMap, Sampler: r.shadowSampler},
	}
	if shadowed {
		u.ShadowStrength = 1
	}
	state := &opengl.RenderState{Depth: &opengl.DepthState{Func: opengl.Less}, Cull: opengl.CullBack}
	for _, n := range visible {
		g := r.upload(n.Mesh)
		if g == nil {
			continue
		}
		u.Model = n.WorldMatrix()
		r.setMaterial(&u, n.Mesh.Material)
		r.litProg.Draw(r.hdr, g.vao, &u, state, opengl.DrawCall{Mode: primitive(n.Mesh.Mode)})
		r.count(n.Mesh)
	}

	if r.settings.Skybox {
		r.drawSky(s)
	}

	r.toneMapProg.Draw(r.screen, r.screenVAO, &toneMapUniforms{
		HDR:      opengl.TextureUniform[glsl.Sampler2D]{Texture: r.hdrImage.Color.Image},
		Exposure: glsl.Float(r.settings.Exposure),
	}, nil, opengl.DrawCall{})
	r.stats.DrawCalls++
	return nil
}

// shadowPass renders the scene's depth from the sun into the shadow map,
// fitting an orthographic volume around the whole scene. It reports false
// when shadows are off or there is nothing to cast them.
func (r *Renderer) shadowPass(s *scene.Scene) (math.Mat4, bool) {
	r.shadow.ClearDepth(1)
	if !r.settings.Shadows {
		return math.Mat4Identity(), false
	}
	dir := s.Sun.Direction.Normalize()
	if dir.LengthSqr() < 0.001 {
		return math.Mat4Identity(), false
	}
	bounds := s.Bounds()
	center := bounds.Min.Add(bounds.Max).Mul(0.5)
	radius := bounds.Max.Sub(bounds.Min).Length() * 0.5
	if radius <= 0 {
		return math.Mat4Identity(), false
	}

	up := math.Vec3Up
	if d := dir.Dot(math.Vec3Up); d > 0.999 || d < -0.999 {
		up = math.Vec3{Z: 1}
	}
	eye := center.Sub(dir.Mul(radius * 2))
	view := math.Mat4LookAt(eye, center, up)
	proj := math.Mat4Orthographic(-radius, radius, -radius, radius, radius*0.5, radius*3.5)
	lightViewProj := view.Mul(proj)

	u := shadowUniforms{LightViewProj: lightViewProj}
	state := &opengl.RenderState{
		Depth:         &opengl.DepthState{Func: opengl.Less},
		Cull:          opengl.CullBack,
		PolygonOffset: &opengl.PolygonOffset{Factor: 2, Units: 4},
	}
	for _, n := range s.VisibleNodes(nil) {
		if n.Mesh.Mode != scene.DrawTriangles {
			continue
		}
		g := r.upload(n.Mesh)
		if g == nil {
			continue
		}
		u.Model = n.WorldMatrix()
		r.shadowProg.Draw(r.shadow, g.vao, &u, state, opengl.DrawCall{})
		r.stats.DrawCalls++
	}
	return lightViewProj, true
}

func (r *Renderer) drawSky(s *scene.Scene) {
	colors := [2]core.Color{s.SkyZenith, s.SkyHorizon}
	if r.skyCube == nil || colors != r.skyColors {
		ground := core.Color{R: s.SkyHorizon.R * 0.35, G: s.SkyHorizon.G * 0.33, B: s.SkyHorizon.B * 0.3, A: 1}
		cube, err := textures.UploadCube(r.ctx, textures.SkyGradient(skyFaceSize, s.SkyZenith, s.SkyHorizon, ground), true)
		if err != nil {
			r.ctx.Logger().Warn("sky", "err", err)
			return
		}
		if r.skyCube != nil {
			r.skyCube.Delete()
		}
		r.skyCube, r.skyColors = cube, colors
	}

	// The sky stays centered on the camera, so the view loses its
	// translation.
	view := s.Camera.ViewMatrix()
	view[3][0], view[3][1], view[3][2] = 0, 0, 0
	r.skyProg.Draw(r.hdr, r.skyVAO, &skyUniforms{
		ViewProj: view.Mul(s.Camera.ProjectionMatrix()),
		Sky:      opengl.TextureUniform[glsl.SamplerCube]{Texture: r.skyCube},
	}, &opengl.RenderState{
		Depth: &opengl.DepthState{Func: opengl.LessEqual, ReadOnly: true},
	}, opengl.DrawCall{})
	r.stats.DrawCalls++
}

// setMaterial fills the material part of u. Missing maps fall back to the
// neutral textures.
func (r *Renderer) setMaterial(u *litUniforms, m *scene.Material) {
	if m == nil {
		m = defaultMaterial
	}
	u.BaseColor = m.BaseColor
	u.Emissive = m.Emissive
	u.Metallic = glsl.Float(m.Metallic)
	u.Roughness = glsl.Float(max(m.Roughness, 0.04))
	u.Unlit = glsl.Bool(m.Unlit)
	u.BaseColorMap = opengl.TextureUniform[glsl.Sampler2D]{Texture: r.texture(m.BaseColorMap, true, r.textures.White())}
	u.NormalMap = opengl.TextureUniform[glsl.Sampler2D]{Texture: r.texture(m.NormalMap, false, r.textures.FlatNormal())}
}

var defaultMaterial = scene.DefaultMaterial()

func (r *Renderer) texture(img *textures.Image, srgb bool, fallback *textures.Texture2D) *textures.Texture2D {
	if img == nil || r.failed[img.Name] {
		return fallback
	}
	tex, err := r.textures.Get(img, srgb)
	if err != nil {
		r.failed[img.Name] = true
		r.ctx.Logger().Warn("material texture", "name", img.Name, "err", err)
		return fallback
	}
	return tex
}

// upload returns the GPU copy of m, creating it on first use. Meshes
// without vertices return nil.
func (r *Renderer) upload(m *scene.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	if len(m.Vertices) == 0 {
		return nil
	}
	g := &gpuMesh{vertices: opengl.NewBuffer(r.ctx, m.Vertices, opengl.StaticDraw)}
	g.vao = opengl.NewVertexArray(r.ctx, g.vertices)
	switch {
	case m.Indices == nil:
	case m.MaxIndex() <= 0xFFFF:
		small := make([]uint16, len(m.Indices))
		for i, idx := range m.Indices {
			small[i] = uint16(idx)
		}
		ib := opengl.NewBuffer(r.ctx, small, opengl.StaticDraw)
		g.vao.SetIndices(opengl.Indices(ib))
		g.deleteIndices = ib.Delete
	default:
		ib := opengl.NewBuffer(r.ctx, m.Indices, opengl.StaticDraw)
		g.vao.SetIndices(opengl.Indices(ib))
		g.deleteIndices = ib.Delete
	}
	r.meshes[m] = g
	return g
}

// Release frees the GPU copy of m. The next frame that draws m uploads it
// again, so call it after editing a mesh's vertices or indices.
func (r *Renderer) Release(m *scene.Mesh) {
	if g, ok := r.meshes[m]; ok {
		g.delete()
		delete(r.meshes, m)
	}
}

// Meshes returns the number of meshes with a GPU copy.
func (r *Renderer) Meshes() int { return len(r.meshes) }

func (r *Renderer) count(m *scene.Mesh) {
	r.stats.Objects++
	r.stats.DrawCalls++
	r.stats.Vertices += len(m.Vertices)
	if m.Mode == scene.DrawTriangles {
		r.stats.Triangles += m.ElementCount() / 3
	}
}

func primitive(m scene.DrawMode) opengl.Primitive {
	switch m {
	case scene.DrawLines:
		return opengl.Lines
	case scene.DrawPoints:
		return opengl.Points
	}
	return opengl.Triangles
}

func scaleColor(c core.Color, k float32) core.Color {
	return core.Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// Delete frees every GPU object the renderer created and releases the
// default framebuffer. Meshes and textures it uploaded are freed too.
func (r *Renderer) Delete() {
	for m, g := range r.meshes {
		g.delete()
		delete(r.meshes, m)
	}
	if r.textures != nil {
		r.textures.Delete()
	}
	if r.shadowProg != nil {
		r.shadowProg.Delete()
	}
	if r.litProg != nil {
		r.litProg.Delete()
	}
	if r.skyProg != nil {
		r.skyProg.Delete()
	}
	if r.toneMapProg != nil {
		r.toneMapProg.Delete()
	}
	if r.screenVAO != nil {
		r.screenVAO.Delete()
		r.screenVerts.Delete()
	}
	if r.skyVAO != nil {
		r.skyVAO.Delete()
		r.skyVerts.Delete()
		r.skyIndices.Delete()
	}
	if r.skyCube != nil {
		r.skyCube.Delete()
	}
	if r.hdrFB != nil {
		r.hdrFB.Delete()
		r.freeHDR()
	}
	if r.shadowFB != nil {
		r.shadowFB.Delete()
	}
	if r.shadowSampler != nil {
		r.shadowSampler.Delete()
	}
	if r.shadowMap != nil {
		r.shadowMap.Delete()
	}
	r.screen.Release()
}
