package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glsafe/driver"
	"glsafe/glsl"
	"glsafe/internal/fakegl"
	"glsafe/math"
)

const colorVS = `#version 330 core
in vec2 pos;
in vec3 color;
uniform mat4 transform;
uniform float offset;
out vec3 vColor;

void main() {
	vColor = color;
	gl_Position = transform * vec4(pos + vec2(offset), 0.0, 1.0);
}
`

const colorFS = `#version 330 core
in vec3 vColor;
uniform sampler2D albedo;
out vec4 color;

void main() {
	color = vec4(vColor, 1.0) * texture(albedo, vec2(0.5));
}
`

type colorUniforms struct {
	Transform math.Mat4
	Offset    glsl.Float
	Albedo    TextureUniform[glsl.Sampler2D]
}

func (u *colorUniforms) UniformMembers(r *UniformRegistry) {
	r.Add("transform", &u.Transform)
	r.Add("offset", &u.Offset)
	r.Add("albedo", &u.Albedo)
}

type colorProgram = Program[colorVertex, colorUniforms, DefaultAttachments,
	*colorVertex, *colorUniforms, *DefaultAttachments]

func newColorProgram(t *testing.T, ctx *Context) *colorProgram {
	t.Helper()
	p, err := NewProgram[colorVertex, colorUniforms, DefaultAttachments](ctx, ProgramSource{Vertex: colorVS, Fragment: colorFS})
	require.NoError(t, err)
	return p
}

var identity = math.Mat4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}

func TestProgramLinks(t *testing.T) {
	ctx, gl := newTestContext(t)
	p := newColorProgram(t, ctx)
	assert.Empty(t, p.Warnings())
	assert.Equal(t, int32(0), p.UniformLocation("transform"))
	assert.Equal(t, int32(1), p.UniformLocation("offset"))
	assert.Equal(t, int32(2), p.UniformLocation("albedo"))
	assert.Equal(t, int32(-1), p.UniformLocation("missing"))

	h := uint32(p.Handle())
	assert.Equal(t, int32(1), gl.GetAttribLocation(h, "color"))
	assert.Equal(t, int32(0), gl.GetFragDataLocation(h, "color"))
	assert.Zero(t, gl.Live()["shader"])
	assert.Equal(t, 1, gl.Live()["program"])

	p.Delete()
	p.Delete()
	assert.Zero(t, gl.Live()["program"])
}

func TestProgramTypeCheck(t *testing.T) {
	ctx, gl := newTestContext(t)
	vs := `#version 330 core
in vec4 pos;
in vec3 color;
uniform mat4 transform;
uniform vec3 offset;
out vec3 vColor;

void main() {
	vColor = color + offset;
	gl_Position = transform * pos;
}
`
	_, err := NewProgram[colorVertex, colorUniforms, DefaultAttachments](ctx, ProgramSource{Vertex: vs, Fragment: colorFS})
	var terr *TypeCheckError
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.Has("offset"))
	assert.True(t, terr.Has("pos"))
	assert.False(t, terr.Has("transform"))
	assert.Len(t, terr.Mismatches, 2)
	assert.Contains(t, err.Error(), "offset: declared float, shader has vec3")
	assert.Zero(t, gl.Live()["program"])
	assert.Zero(t, gl.Live()["shader"])
}

func TestProgramWarnings(t *testing.T) {
	ctx, _ := newTestContext(t)
	vs := `#version 330 core
in vec2 pos;
in vec3 color;
in float weight;
uniform mat4 transform;
uniform float offset;
uniform float extra;

void main() {
	gl_Position = transform * vec4(pos * weight, extra, 1.0);
}
`
	fs := `#version 330 core
out vec4 fragColor;

void main() {
	fragColor = vec4(1.0);
}
`
	p, err := NewProgram[colorVertex, colorUniforms, DefaultAttachments](ctx, ProgramSource{Vertex: vs, Fragment: fs})
	require.NoError(t, err)
	assert.Equal(t, []Warning{
		{UnboundInput, "weight"},
		{InactiveAttribute, "color"},
		{UnsetUniform, "extra"},
		{InactiveUniform, "offset"},
		{InactiveUniform, "albedo"},
		{MissingOutput, "color"},
	}, p.Warnings())
	assert.Equal(t, "unbound input weight", p.Warnings()[0].String())
	assert.Equal(t, int32(-1), p.UniformLocation("offset"))

	// Inactive members, the texture included, are never read.
	vao := NewVertexArray(ctx, NewBuffer(ctx, make([]colorVertex, 3), StaticDraw))
	d, err := ctx.DefaultFramebuffer(8, 8)
	require.NoError(t, err)
	assert.NotPanics(t, func() { p.Draw(d, vao, nil, nil, DrawCall{}) })
}

func TestProgramCompileErrors(t *testing.T) {
	ctx, gl := newTestContext(t)
	_, err := NewProgram[colorVertex, colorUniforms, DefaultAttachments](ctx, ProgramSource{
		Vertex:   "#version 330 core\nin vec2 pos;\n",
		Fragment: colorFS,
	})
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, VertexStage, cerr.Stage)
	assert.Contains(t, cerr.Log, "no definition of main")

	_, err = NewProgram[colorVertex, colorUniforms, DefaultAttachments](ctx, ProgramSource{Vertex: colorVS})
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FragmentStage, cerr.Stage)
	assert.Equal(t, "no source", cerr.Log)

	_, err = NewShader(ctx, GeometryStage, "#version 330 core\n#error unsupported\nvoid main() {}\n")
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, GeometryStage, cerr.Stage)
	assert.Contains(t, err.Error(), "geometry shader: compile failed")

	assert.Zero(t, gl.Live()["shader"])
	assert.Zero(t, gl.Live()["program"])
}

func TestProgramLinkError(t *testing.T) {
	ctx, gl := newTestContext(t)
	fs := `#version 330 core
in vec4 vColor;
out vec4 color;

void main() {
	color = vColor;
}
`
	_, err := NewProgram[colorVertex, colorUniforms, DefaultAttachments](ctx, ProgramSource{Vertex: colorVS, Fragment: fs})
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, `type mismatch for varying "vColor"`)
	assert.Zero(t, gl.Live()["program"])
}

func TestShaderDelete(t *testing.T) {
	ctx, gl := newTestContext(t)
	s, err := NewShader(ctx, FragmentStage, colorFS)
	require.NoError(t, err)
	assert.Equal(t, FragmentStage, s.Stage())
	assert.Equal(t, 1, gl.Live()["shader"])
	s.Delete()
	assert.Zero(t, gl.Live()["shader"])
}

type drawScene struct {
	ctx *Context
	gl  *fakegl.GL
	p   *colorProgram
	vao *VertexArray[colorVertex, *colorVertex]
	fb  *DefaultFramebuffer
	tex *Texture[Tex2D]
	u   *colorUniforms
}

func newDrawScene(t *testing.T, opts ...Option) *drawScene {
	t.Helper()
	ctx, gl := newTestContext(t, opts...)
	s := &drawScene{ctx: ctx, gl: gl, p: newColorProgram(t, ctx)}
	s.vao = NewVertexArray(ctx, NewBuffer(ctx, make([]colorVertex, 6), StaticDraw))
	var err error
	s.fb, err = ctx.DefaultFramebuffer(64, 64)
	require.NoError(t, err)
	s.tex, err = NewTexture[Tex2D](ctx, RGBA8, Size2D(2, 2))
	require.NoError(t, err)
	s.u = &colorUniforms{Transform: identity, Offset: 0.5}
	s.u.Albedo.Texture = s.tex
	return s
}

func (s *drawScene) draw(call DrawCall) {
	s.p.Draw(s.fb, s.vao, s.u, nil, call)
}

func TestDrawArrays(t *testing.T) {
	s := newDrawScene(t)
	s.draw(DrawCall{})

	draws := s.gl.Draws()
	require.Len(t, draws, 1)
	d := draws[0]
	assert.Equal(t, uint32(driver.TRIANGLES), d.Mode)
	assert.Equal(t, int32(0), d.First)
	assert.Equal(t, int32(6), d.Count)
	assert.Equal(t, int32(1), d.Instances)
	assert.False(t, d.Indexed)
	assert.Equal(t, uint32(s.p.Handle()), d.Program)
	assert.Equal(t, uint32(s.vao.Handle()), d.VertexArray)
	assert.Zero(t, d.Framebuffer)
	assert.Zero(t, s.gl.GetError())

	s.draw(DrawCall{Mode: Points, First: 2})
	d = s.gl.Draws()[1]
	assert.Equal(t, uint32(driver.POINTS), d.Mode)
	assert.Equal(t, int32(2), d.First)
	assert.Equal(t, int32(4), d.Count)

	s.draw(DrawCall{First: 6})
	assert.Len(t, s.gl.Draws(), 2, "an empty range draws nothing")

	assert.PanicsWithValue(t, "opengl: draw range [4, 7) outside 6 elements", func() {
		s.draw(DrawCall{First: 4, Count: 3})
	})
	assert.Panics(t, func() { s.draw(DrawCall{First: -1, Count: 1}) })
	assert.Panics(t, func() { s.draw(DrawCall{Instances: -1}) })
}

func TestDrawIndexed(t *testing.T) {
	s := newDrawScene(t)
	s.vao.SetIndices(Indices(NewBuffer(s.ctx, []uint16{0, 1, 2, 2, 1, 3, 3, 4, 5}, StaticDraw)))
	s.draw(DrawCall{Mode: TriangleStrip, First: 2, Count: 3})

	d := s.gl.Draws()[0]
	assert.True(t, d.Indexed)
	assert.Equal(t, uint32(driver.TRIANGLE_STRIP), d.Mode)
	assert.Equal(t, uint32(driver.UNSIGNED_SHORT), d.IndexType)
	assert.Equal(t, 4, d.Offset)
	assert.Equal(t, int32(3), d.Count)

	s.draw(DrawCall{Instances: 3})
	d = s.gl.Draws()[1]
	assert.Equal(t, int32(9), d.Count)
	assert.Equal(t, int32(3), d.Instances)
	assert.Equal(t, 1, s.gl.Count("DrawElementsInstanced"))

	assert.Panics(t, func() { s.draw(DrawCall{First: 8, Count: 2}) })
}

type instanceShift struct {
	Shift math.Vec2
}

func (v *instanceShift) VertexMembers(r *VertexRegistry) {
	r.Add("shift", &v.Shift)
}

func TestDrawInstanced(t *testing.T) {
	ctx, gl := newTestContext(t)
	vs := `#version 330 core
in vec2 pos;
in vec3 color;
in vec2 shift;
uniform mat4 transform;
uniform float offset;
out vec3 vColor;

void main() {
	vColor = color;
	gl_Position = transform * vec4(pos + shift + vec2(offset), 0.0, 1.0);
}
`
	p, err := NewProgram[colorVertex, colorUniforms, DefaultAttachments](ctx, ProgramSource{
		Vertex:   vs,
		Fragment: colorFS,
		Instance: VertexLayoutOf[instanceShift](),
	})
	require.NoError(t, err)
	assert.Empty(t, p.Warnings())
	assert.Equal(t, int32(2), gl.GetAttribLocation(uint32(p.Handle()), "shift"))

	fb, err := ctx.DefaultFramebuffer(8, 8)
	require.NoError(t, err)
	tex, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(1, 1))
	require.NoError(t, err)
	u := &colorUniforms{}
	u.Albedo.Texture = tex

	vao := NewVertexArray(ctx, NewBuffer(ctx, make([]colorVertex, 3), StaticDraw))
	assert.Panics(t, func() { p.Draw(fb, vao, u, nil, DrawCall{}) }, "instance buffer required")

	vao.SetInstances(Instances(NewBuffer(ctx, make([]instanceShift, 4), StaticDraw)))
	p.Draw(fb, vao, u, nil, DrawCall{})
	d := gl.Draws()[0]
	assert.Equal(t, int32(4), d.Instances)
	assert.Equal(t, 1, gl.Count("DrawArraysInstanced"))

	p.Draw(fb, vao, u, nil, DrawCall{Instances: 2})
	assert.Equal(t, int32(2), gl.Draws()[1].Instances)
	assert.Panics(t, func() { p.Draw(fb, vao, u, nil, DrawCall{Instances: 5}) })
}

func TestDrawUploadsChangedUniforms(t *testing.T) {
	s := newDrawScene(t)
	s.draw(DrawCall{})
	h := uint32(s.p.Handle())

	off, ok := s.gl.Uniform(h, "offset")
	require.True(t, ok)
	assert.Equal(t, "f", off.Kind)
	assert.Equal(t, []float32{0.5}, off.F)

	m, ok := s.gl.Uniform(h, "transform")
	require.True(t, ok)
	assert.Equal(t, "m", m.Kind)
	assert.Equal(t, 4, m.N)
	assert.Equal(t, 4, m.Rows)
	assert.Equal(t, float32(1), m.F[15])

	unit, ok := s.gl.Uniform(h, "albedo")
	require.True(t, ok)
	assert.Equal(t, []int32{0}, unit.I)
	assert.Equal(t, uint32(s.tex.Handle()), s.gl.BoundTexture(0, driver.TEXTURE_2D))
	assert.Zero(t, s.gl.BoundSampler(0))

	s.gl.Reset()
	s.draw(DrawCall{})
	assert.Zero(t, s.gl.Count("Uniformfv"))
	assert.Zero(t, s.gl.Count("UniformMatrixfv"))
	assert.Zero(t, s.gl.Count("Uniformiv"))
	assert.Zero(t, s.gl.Count("UseProgram"))
	assert.Zero(t, s.gl.Count("BindTexture"))

	s.u.Offset = 2
	s.draw(DrawCall{})
	assert.Equal(t, 1, s.gl.Count("Uniformfv"))
	off, _ = s.gl.Uniform(h, "offset")
	assert.Equal(t, []float32{2}, off.F)
}

func TestDrawBindsSamplerObjects(t *testing.T) {
	s := newDrawScene(t)
	smp := NewSampler(s.ctx, SamplingParams{Min: Nearest, Mag: Nearest})
	s.u.Albedo.Sampler = smp
	s.draw(DrawCall{})
	assert.Equal(t, uint32(smp.Handle()), s.gl.BoundSampler(0))

	smp.Delete()
	assert.Zero(t, s.gl.BoundSampler(0))
	assert.Panics(t, func() { s.draw(DrawCall{}) })
}

func TestDrawChecksTextures(t *testing.T) {
	s := newDrawScene(t)

	ids, err := NewTexture[Tex2D](s.ctx, R32UI, Size2D(2, 2))
	require.NoError(t, err)
	s.u.Albedo.Texture = ids
	assert.Panics(t, func() { s.draw(DrawCall{}) }, "uint texture through a float sampler")

	cube, err := NewTexture[TexCube](s.ctx, RGBA8, Size2D(2, 2))
	require.NoError(t, err)
	s.u.Albedo.Texture = cube
	assert.Panics(t, func() { s.draw(DrawCall{}) }, "cube map through sampler2D")

	rb, err := NewRenderbuffer(s.ctx, RGBA8, 2, 2, 0)
	require.NoError(t, err)
	s.u.Albedo.Texture = rb
	assert.Panics(t, func() { s.draw(DrawCall{}) })

	s.u.Albedo.Texture = nil
	assert.PanicsWithValue(t, "opengl: texture uniform albedo has no image", func() { s.draw(DrawCall{}) })

	s.u.Albedo.Texture = s.tex
	s.tex.Delete()
	assert.Panics(t, func() { s.draw(DrawCall{}) })
	assert.Empty(t, s.gl.Draws())
}

type threeTextures struct {
	A TextureUniform[glsl.Sampler2D]
	B TextureUniform[glsl.Sampler2D]
	C TextureUniform[glsl.Sampler2D]
}

func (u *threeTextures) UniformMembers(r *UniformRegistry) {
	r.Add("a", &u.A)
	r.Add("b", &u.B)
	r.Add("c", &u.C)
}

func TestDrawRunsOutOfTextureUnits(t *testing.T) {
	gl := fakegl.New()
	gl.Limits[driver.MAX_COMBINED_TEXTURE_IMAGE_UNITS] = 3
	ctx, err := NewContext(gl)
	require.NoError(t, err)

	vs := `#version 330 core
in vec2 pos;

void main() {
	gl_Position = vec4(pos, 0.0, 1.0);
}
`
	fs := `#version 330 core
uniform sampler2D a;
uniform sampler2D b;
uniform sampler2D c;
out vec4 color;

void main() {
	color = texture(a, vec2(0.0)) + texture(b, vec2(0.0)) + texture(c, vec2(0.0));
}
`
	p, err := NewProgram[colorVertex, threeTextures, DefaultAttachments](ctx, ProgramSource{Vertex: vs, Fragment: fs})
	require.NoError(t, err)

	tex, err := NewTexture[Tex2D](ctx, RGBA8, Size2D(1, 1))
	require.NoError(t, err)
	u := &threeTextures{}
	u.A.Texture, u.B.Texture, u.C.Texture = tex, tex, tex
	fb, err := ctx.DefaultFramebuffer(4, 4)
	require.NoError(t, err)
	vao := NewVertexArray(ctx, NewBuffer(ctx, make([]colorVertex, 3), StaticDraw))

	assert.PanicsWithValue(t,
		"opengl: opengl.threeTextures needs more than the 2 available texture units",
		func() { p.Draw(fb, vao, u, nil, DrawCall{}) })
}

type notASampler struct{}

func (*notASampler) UniformType() glsl.Type { return glsl.Sampler2D{}.SamplerType() }
func (*notASampler) UniformValue(*glsl.Value) {}

type badUniforms struct {
	S notASampler
}

func (u *badUniforms) UniformMembers(r *UniformRegistry) {
	r.Add("s", &u.S)
}

type dupUniforms struct {
	A glsl.Float
	B glsl.Float
}

func (u *dupUniforms) UniformMembers(r *UniformRegistry) {
	r.Add("a", &u.A)
	r.Add("a", &u.B)
}

func TestUniformLayout(t *testing.T) {
	l := UniformLayoutOf[colorUniforms]()
	require.Len(t, l.Members, 3)
	assert.Equal(t, 1, l.Textures)
	assert.Equal(t, glsl.Mat(4, 4), l.Members[0].Type)
	assert.Equal(t, uintptr(64), l.Members[1].Offset)
	assert.True(t, l.Members[2].Type.IsSampler())
	assert.Same(t, l, UniformLayoutOf[colorUniforms]())

	assert.Panics(t, func() { UniformLayoutOf[badUniforms]() })
	assert.Panics(t, func() { UniformLayoutOf[dupUniforms]() })
	assert.Empty(t, UniformLayoutOf[NoUniforms]().Members)
}

func TestDrawGuards(t *testing.T) {
	s := newDrawScene(t)
	other, _ := newTestContext(t)
	ofb, err := other.DefaultFramebuffer(4, 4)
	require.NoError(t, err)
	assert.PanicsWithValue(t, "opengl: draw target belongs to a different context", func() {
		s.p.Draw(ofb, s.vao, s.u, nil, DrawCall{})
	})

	s.fb.Release()
	assert.Panics(t, func() { s.draw(DrawCall{}) })

	fb, err := s.ctx.DefaultFramebuffer(4, 4)
	require.NoError(t, err)
	s.fb = fb
	s.vao.Delete()
	assert.Panics(t, func() { s.draw(DrawCall{}) })

	s.p.Delete()
	assert.PanicsWithValue(t, "opengl: use of deleted program", func() { s.draw(DrawCall{}) })
}
