package scene

import (
	"github.com/chewxy/math32"

	"glsafe/math"
)

// ComputeTangents fills the per-vertex tangents used for normal mapping.
// Each tangent points along +U in the surface and is orthogonal to the
// vertex normal. Triangles whose UVs have no area contribute nothing;
// vertices left without a tangent get an arbitrary one perpendicular to
// the normal.
func ComputeTangents(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Tangent = math.Vec3{}
	}

	triangle := func(i0, i1, i2 uint32) {
		v0, v1, v2 := &m.Vertices[i0], &m.Vertices[i1], &m.Vertices[i2]
		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		d1 := v1.UV.Sub(v0.UV)
		d2 := v2.UV.Sub(v0.UV)

		det := d1.Cross(d2)
		if det == 0 {
			return
		}
		t := e1.Mul(d2.Y).Sub(e2.Mul(d1.Y)).Div(det)
		v0.Tangent = v0.Tangent.Add(t)
		v1.Tangent = v1.Tangent.Add(t)
		v2.Tangent = v2.Tangent.Add(t)
	}

	if m.Indices != nil {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			triangle(m.Indices[i], m.Indices[i+1], m.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			triangle(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	for i := range m.Vertices {
		v := &m.Vertices[i]
		t := v.Tangent.Sub(v.Normal.Mul(v.Normal.Dot(v.Tangent)))
		if t.LengthSqr() < 1e-8 {
			axis := math.Vec3{X: 1}
			if math32.Abs(v.Normal.X) > 0.9 {
				axis = math.Vec3{Y: 1}
			}
			t = axis.Sub(v.Normal.Mul(v.Normal.Dot(axis)))
		}
		v.Tangent = t.Normalize()
	}
}
