package scene

import (
	"github.com/chewxy/math32"

	"glsafe/core"
	"glsafe/math"
)

func CreateTriangle() *Mesh {
	n := math.Vec3{Z: 1}
	vertices := []core.Vertex{
		{Position: math.Vec3{X: -0.5, Y: -0.5}, Normal: n, UV: math.Vec2{X: 0, Y: 0}, Color: core.ColorRed},
		{Position: math.Vec3{X: 0.5, Y: -0.5}, Normal: n, UV: math.Vec2{X: 1, Y: 0}, Color: core.ColorGreen},
		{Position: math.Vec3{X: 0, Y: 0.5}, Normal: n, UV: math.Vec2{X: 0.5, Y: 1}, Color: core.ColorBlue},
	}
	return NewMesh("Triangle", vertices, nil)
}

// CreateQuad returns a unit quad in the XY plane facing +Z.
func CreateQuad() *Mesh {
	return surface("Quad", 1, 1, func(u, v float32) (math.Vec3, math.Vec3) {
		return math.Vec3{X: u - 0.5, Y: v - 0.5}, math.Vec3{Z: 1}
	})
}

// CreatePlane returns a subdivided plane in XZ facing +Y.
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	n := max(subdivisions, 1)
	return surface("Plane", n, n, func(u, v float32) (math.Vec3, math.Vec3) {
		return math.Vec3{X: (u - 0.5) * width, Z: (0.5 - v) * depth}, math.Vec3{Y: 1}
	})
}

// CreateCube returns a cube with hard edges: each face has its own four
// vertices.
func CreateCube(size float32) *Mesh {
	h := size / 2
	faces := [6]struct{ n, u, v math.Vec3 }{
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	}
	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}} {
			p := f.n.Add(f.u.Mul(2*c.X - 1)).Add(f.v.Mul(2*c.Y - 1)).Mul(h)
			vertices = append(vertices, core.Vertex{Position: p, Normal: f.n, UV: c, Color: core.ColorWhite, Tangent: f.u})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return NewMesh("Cube", vertices, indices)
}

// CreateSphere returns a UV sphere. segments run around the equator and
// rings from pole to pole.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	return surface("Sphere", max(segments, 3), max(rings, 2), func(u, v float32) (math.Vec3, math.Vec3) {
		theta := u * 2 * math32.Pi
		phi := (1 - v) * math32.Pi
		n := math.Vec3{
			X: math32.Sin(phi) * math32.Sin(theta),
			Y: math32.Cos(phi),
			Z: math32.Sin(phi) * math32.Cos(theta),
		}
		return n.Mul(radius), n
	})
}

// CreateTorus returns a torus around the Y axis.
func CreateTorus(majorRadius, minorRadius float32, majorSegments, minorSegments int) *Mesh {
	return surface("Torus", max(majorSegments, 3), max(minorSegments, 3), func(u, v float32) (math.Vec3, math.Vec3) {
		a := u * 2 * math32.Pi
		b := v * 2 * math32.Pi
		ring := math.Vec3{X: math32.Sin(a), Z: math32.Cos(a)}
		n := ring.Mul(math32.Cos(b)).Add(math.Vec3{Y: math32.Sin(b)})
		return ring.Mul(majorRadius).Add(n.Mul(minorRadius)), n
	})
}

// surface tessellates a parametric patch over [0,1]² into cols×rows quads.
// f returns the position and normal at (u, v). Triangles wind
// counter-clockwise when viewed from the side the normals point to.
func surface(name string, cols, rows int, f func(u, v float32) (pos, normal math.Vec3)) *Mesh {
	vertices := make([]core.Vertex, 0, (cols+1)*(rows+1))
	for j := 0; j <= rows; j++ {
		v := float32(j) / float32(rows)
		for i := 0; i <= cols; i++ {
			u := float32(i) / float32(cols)
			p, n := f(u, v)
			vertices = append(vertices, core.Vertex{
				Position: p,
				Normal:   n,
				UV:       math.Vec2{X: u, Y: v},
				Color:    core.ColorWhite,
			})
		}
	}
	indices := make([]uint32, 0, cols*rows*6)
	stride := uint32(cols + 1)
	for j := uint32(0); j < uint32(rows); j++ {
		for i := uint32(0); i < uint32(cols); i++ {
			a := j*stride + i
			b := a + 1
			c := a + stride
			d := c + 1
			indices = append(indices, a, b, d, d, c, a)
		}
	}
	m := NewMesh(name, vertices, indices)
	ComputeTangents(m)
	return m
}
