package core

import (
	"glsafe/glsl"
	"glsafe/math"
	"glsafe/opengl"
)

// Color is a linear RGBA color. It is a vec4 both as a vertex attribute and
// as a uniform.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

func (c Color) Vec4() math.Vec4 { return math.Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A} }

// RGBA returns the color as the array taken by framebuffer clears.
func (c Color) RGBA() [4]float32 { return [4]float32{c.R, c.G, c.B, c.A} }

func (*Color) AttribFormat() glsl.AttribFormat {
	return glsl.AttribFormat{Component: glsl.ComponentFloat, Size: 4, Slots: 1}
}

func (*Color) UniformType() glsl.Type { return glsl.Vec(glsl.KindFloat, 4) }

func (c *Color) UniformValue(dst *glsl.Value) {
	dst.Floats[0], dst.Floats[1], dst.Floats[2], dst.Floats[3] = c.R, c.G, c.B, c.A
}

// Vertex is the mesh vertex shared by the scene and the renderer.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    Color
	Tangent  math.Vec3
}

func (v *Vertex) VertexMembers(r *opengl.VertexRegistry) {
	r.Add("position", &v.Position)
	r.Add("normal", &v.Normal)
	r.Add("uv", &v.UV)
	r.Add("color", &v.Color)
	r.Add("tangent", &v.Tangent)
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// GetMatrix returns the model matrix. Vectors are rows, so scale applies
// first and translation last.
func (t Transform) GetMatrix() math.Mat4 {
	translation := math.Mat4Translation(t.Position)
	rotation := t.Rotation.ToMat4()
	scale := math.Mat4Scale(t.Scale)
	return scale.Mul(rotation).Mul(translation)
}

func (t Transform) GetForward() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Front)
}

func (t Transform) GetRight() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Right)
}

func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}
