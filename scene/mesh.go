package scene

import (
	"glsafe/core"
	"glsafe/math"
)

// DrawMode is the primitive type a mesh is drawn with.
type DrawMode int

const (
	DrawTriangles DrawMode = iota
	DrawLines
	DrawPoints
)

// Mesh is CPU-side geometry. The renderer uploads it on first use and keeps
// the GPU copy until the mesh is released there.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	// Indices may be nil, in which case vertices are drawn in order.
	Indices  []uint32
	Mode     DrawMode
	Material *Material

	// Bounds is the local-space AABB of Vertices.
	Bounds AABB
}

// NewMesh builds a mesh and computes its bounds.
func NewMesh(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	m.Bounds = boundsOf(vertices)
	return m
}

// ElementCount is the number of vertices a draw of the mesh consumes.
func (m *Mesh) ElementCount() int {
	if m.Indices != nil {
		return len(m.Indices)
	}
	return len(m.Vertices)
}

// MaxIndex returns the largest index, or -1 for an unindexed mesh.
func (m *Mesh) MaxIndex() int {
	if m.Indices == nil {
		return -1
	}
	hi := 0
	for _, i := range m.Indices {
		hi = max(hi, int(i))
	}
	return hi
}

// SetColor paints every vertex.
func (m *Mesh) SetColor(c core.Color) {
	for i := range m.Vertices {
		m.Vertices[i].Color = c
	}
}

func boundsOf(vertices []core.Vertex) AABB {
	if len(vertices) == 0 {
		return AABB{}
	}
	box := AABB{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		box = box.extend(v.Position)
	}
	return box
}

func (box AABB) extend(p math.Vec3) AABB {
	box.Min.X = min(box.Min.X, p.X)
	box.Min.Y = min(box.Min.Y, p.Y)
	box.Min.Z = min(box.Min.Z, p.Z)
	box.Max.X = max(box.Max.X, p.X)
	box.Max.Y = max(box.Max.Y, p.Y)
	box.Max.Z = max(box.Max.Z, p.Z)
	return box
}
