package scene

import (
	stdmath "math"

	"glsafe/math"
)

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 { return r.Origin.Add(r.Direction.Mul(t)) }

// Hit is the closest intersection found by Pick.
type Hit struct {
	Node     *Node
	Distance float32
	Point    math.Vec3
	Normal   math.Vec3
	Triangle int
}

// ScreenRay returns the ray through the pixel (x, y) of a width x height
// viewport, with y growing downwards as window coordinates do.
func (c *Camera) ScreenRay(x, y float32, width, height int) Ray {
	ndcX := 2*x/float32(width) - 1
	ndcY := 1 - 2*y/float32(height)
	inv := c.ViewProjection().Inverse()
	near := math.Vec4{X: ndcX, Y: ndcY, Z: -1, W: 1}.MulMat(inv).ToVec3DivW()
	far := math.Vec4{X: ndcX, Y: ndcY, Z: 1, W: 1}.MulMat(inv).ToVec3DivW()
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// Pick returns the closest visible triangle hit by r. Line and point
// meshes are never hit.
func (s *Scene) Pick(r Ray) (Hit, bool) {
	best := Hit{Distance: stdmath.MaxFloat32}
	found := false
	for _, n := range s.VisibleNodes(nil) {
		m := n.Mesh
		if m.Mode != DrawTriangles {
			continue
		}
		world := n.WorldMatrix()
		t, ok := r.intersectBox(m.Bounds.Transform(world))
		if !ok || t > best.Distance {
			continue
		}
		if h, ok := r.intersectMesh(m, world, best.Distance); ok {
			h.Node = n
			best, found = h, true
		}
	}
	return best, found
}

// intersectBox is the slab test. It returns the entry distance, which is
// negative when the origin is inside the box.
func (r Ray) intersectBox(box AABB) (float32, bool) {
	tmin, tmax := float32(-stdmath.MaxFloat32), float32(stdmath.MaxFloat32)
	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}
	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		tmin = max(tmin, min(t1, t2))
		tmax = min(tmax, max(t1, t2))
	}
	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return tmin, true
}

func (r Ray) intersectMesh(m *Mesh, world math.Mat4, limit float32) (Hit, bool) {
	best := Hit{Distance: limit}
	found := false
	count := len(m.Vertices)
	if m.Indices != nil {
		count = len(m.Indices)
	}
	vertex := func(i int) math.Vec3 {
		if m.Indices != nil {
			i = int(m.Indices[i])
		}
		return world.MulVec3(m.Vertices[i].Position)
	}
	for i := 0; i+2 < count; i += 3 {
		v0, v1, v2 := vertex(i), vertex(i+1), vertex(i+2)
		t, ok := r.intersectTriangle(v0, v1, v2)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{
			Distance: t,
			Point:    r.At(t),
			Normal:   v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(),
			Triangle: i / 3,
		}
		found = true
	}
	return best, found
}

// intersectTriangle is the Möller-Trumbore test. Both windings hit.
func (r Ray) intersectTriangle(v0, v1, v2 math.Vec3) (float32, bool) {
	const epsilon = 1e-7
	edge1, edge2 := v1.Sub(v0), v2.Sub(v0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false
	}
	f := 1 / a
	s := r.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := f * edge2.Dot(q)
	return t, t > epsilon
}
