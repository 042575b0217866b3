package renderer

import (
	"glsafe/core"
	"glsafe/glsl"
	"glsafe/math"
	"glsafe/opengl"
)

// shadowTarget is the depth-only shadow map.
type shadowTarget struct {
	Depth opengl.DepthAttachment
}

func (t *shadowTarget) AttachmentMembers(r *opengl.AttachmentRegistry) {
	r.Add("depth", &t.Depth)
}

// hdrTarget receives the lit scene and the sky in linear floating point
// before tone mapping.
type hdrTarget struct {
	Color opengl.ColorAttachment
	Depth opengl.DepthAttachment
}

func (t *hdrTarget) AttachmentMembers(r *opengl.AttachmentRegistry) {
	r.Add("color", &t.Color)
	r.Add("depth", &t.Depth)
}

type shadowUniforms struct {
	Model         math.Mat4
	LightViewProj math.Mat4
}

func (u *shadowUniforms) UniformMembers(r *opengl.UniformRegistry) {
	r.Add("model", &u.Model)
	r.Add("lightViewProj", &u.LightViewProj)
}

type litUniforms struct {
	Model         math.Mat4
	ViewProj      math.Mat4
	LightViewProj math.Mat4

	CameraPos  math.Vec3
	LightDir   math.Vec3
	LightColor core.Color
	Ambient    core.Color

	BaseColor      core.Color
	Emissive       core.Color
	Metallic       glsl.Float
	Roughness      glsl.Float
	Unlit          glsl.Bool
	ShadowStrength glsl.Float

	BaseColorMap opengl.TextureUniform[glsl.Sampler2D]
	NormalMap    opengl.TextureUniform[glsl.Sampler2D]
	ShadowMap    opengl.TextureUniform[glsl.Sampler2DShadow]
}

func (u *litUniforms) UniformMembers(r *opengl.UniformRegistry) {
	r.Add("model", &u.Model)
	r.Add("viewProj", &u.ViewProj)
	r.Add("lightViewProj", &u.LightViewProj)
	r.Add("cameraPos", &u.CameraPos)
	r.Add("lightDir", &u.LightDir)
	r.Add("lightColor", &u.LightColor)
	r.Add("ambient", &u.Ambient)
	r.Add("baseColor", &u.BaseColor)
	r.Add("emissive", &u.Emissive)
	r.Add("metallic", &u.Metallic)
	r.Add("roughness", &u.Roughness)
	r.Add("unlit", &u.Unlit)
	r.Add("shadowStrength", &u.ShadowStrength)
	r.Add("baseColorMap", &u.BaseColorMap)
	r.Add("normalMap", &u.NormalMap)
	r.Add("shadowMap", &u.ShadowMap)
}

// skyVertex is a corner of the unit sky cube.
type skyVertex struct {
	Position math.Vec3
}

func (v *skyVertex) VertexMembers(r *opengl.VertexRegistry) {
	r.Add("position", &v.Position)
}

type skyUniforms struct {
	ViewProj math.Mat4
	Sky      opengl.TextureUniform[glsl.SamplerCube]
}

func (u *skyUniforms) UniformMembers(r *opengl.UniformRegistry) {
	r.Add("viewProj", &u.ViewProj)
	r.Add("sky", &u.Sky)
}

// screenVertex is a corner of the triangle that covers the screen.
type screenVertex struct {
	Position math.Vec2
}

func (v *screenVertex) VertexMembers(r *opengl.VertexRegistry) {
	r.Add("position", &v.Position)
}

type toneMapUniforms struct {
	HDR      opengl.TextureUniform[glsl.Sampler2D]
	Exposure glsl.Float
}

func (u *toneMapUniforms) UniformMembers(r *opengl.UniformRegistry) {
	r.Add("hdr", &u.HDR)
	r.Add("exposure", &u.Exposure)
}

type (
	shadowProgram  = opengl.Program[core.Vertex, shadowUniforms, shadowTarget, *core.Vertex, *shadowUniforms, *shadowTarget]
	litProgram     = opengl.Program[core.Vertex, litUniforms, hdrTarget, *core.Vertex, *litUniforms, *hdrTarget]
	skyProgram     = opengl.Program[skyVertex, skyUniforms, hdrTarget, *skyVertex, *skyUniforms, *hdrTarget]
	toneMapProgram = opengl.Program[screenVertex, toneMapUniforms, opengl.DefaultAttachments, *screenVertex, *toneMapUniforms, *opengl.DefaultAttachments]
)

var skyCorners = []skyVertex{
	{math.Vec3{X: -1, Y: -1, Z: -1}}, {math.Vec3{X: 1, Y: -1, Z: -1}},
	{math.Vec3{X: 1, Y: 1, Z: -1}}, {math.Vec3{X: -1, Y: 1, Z: -1}},
	{math.Vec3{X: -1, Y: -1, Z: 1}}, {math.Vec3{X: 1, Y: -1, Z: 1}},
	{math.Vec3{X: 1, Y: 1, Z: 1}}, {math.Vec3{X: -1, Y: 1, Z: 1}},
}

var skyIndices = []uint8{
	0, 2, 1, 0, 3, 2, // -Z
	4, 5, 6, 4, 6, 7, // +Z
	0, 4, 7, 0, 7, 3, // -X
	1, 2, 6, 1, 6, 5, // +X
	3, 7, 6, 3, 6, 2, // +Y
	0, 1, 5, 0, 5, 4, // -Y
}

var screenTriangle = []screenVertex{
	{math.Vec2{X: -1, Y: -1}},
	{math.Vec2{X: 3, Y: -1}},
	{math.Vec2{X: -1, Y: 3}},
}
