package math

import "glsafe/glsl"

// Vec2 is a vec2 in vertex layouts and uniform blocks. UVs use it.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Cross returns the z component of the 3D cross product, the signed area
// of the parallelogram spanned by v and other.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - other.X*v.Y
}

func (*Vec2) AttribFormat() glsl.AttribFormat { return floatAttrib(2, 1) }
func (*Vec2) UniformType() glsl.Type          { return glsl.Vec(glsl.KindFloat, 2) }

func (v *Vec2) UniformValue(dst *glsl.Value) { dst.Floats[0], dst.Floats[1] = v.X, v.Y }
