package scene

import "glsafe/math"

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane, positive
// on the inside.
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view volume: left, right, bottom,
// top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromViewProjection extracts the planes of vp (Gribb/Hartmann).
// Vectors are rows, so clip-space component j is the dot product of the
// point with column j of vp.
func FrustumFromViewProjection(vp math.Mat4) Frustum {
	col := func(j int) math.Vec4 {
		return math.Vec4{X: vp[0][j], Y: vp[1][j], Z: vp[2][j], W: vp[3][j]}
	}
	cx, cy, cz, cw := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[0] = planeOf(cw.Add(cx))
	f.Planes[1] = planeOf(cw.Sub(cx))
	f.Planes[2] = planeOf(cw.Add(cy))
	f.Planes[3] = planeOf(cw.Sub(cy))
	f.Planes[4] = planeOf(cw.Add(cz))
	f.Planes[5] = planeOf(cw.Sub(cz))
	return f
}

func planeOf(v math.Vec4) Plane {
	n := v.ToVec3()
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Div(l), D: v.W / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// Intersects reports whether any part of the box may be inside f. It tests
// the corner furthest along each plane normal, so boxes near a frustum
// edge can be reported visible when they are not.
func (box AABB) Intersects(f *Frustum) bool {
	for _, p := range f.Planes {
		corner := box.Max
		if p.Normal.X < 0 {
			corner.X = box.Min.X
		}
		if p.Normal.Y < 0 {
			corner.Y = box.Min.Y
		}
		if p.Normal.Z < 0 {
			corner.Z = box.Min.Z
		}
		if p.DistanceTo(corner) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the box enclosing box's eight corners transformed by m.
func (box AABB) Transform(m math.Mat4) AABB {
	out := AABB{Min: m.MulVec3(box.Min)}
	out.Max = out.Min
	for i := 1; i < 8; i++ {
		c := box.Min
		if i&1 != 0 {
			c.X = box.Max.X
		}
		if i&2 != 0 {
			c.Y = box.Max.Y
		}
		if i&4 != 0 {
			c.Z = box.Max.Z
		}
		out = out.extend(m.MulVec3(c))
	}
	return out
}
