package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glsafe/glsl"
	"glsafe/math"
	"glsafe/opengl"
)

func TestVertexLayout(t *testing.T) {
	l := opengl.VertexLayoutOf[Vertex]()
	assert.Equal(t, 60, l.Stride)
	require.Len(t, l.Members, 5)

	want := []struct {
		name   string
		offset int
		size   int
	}{
		{"position", 0, 3},
		{"normal", 12, 3},
		{"uv", 24, 2},
		{"color", 32, 4},
		{"tangent", 48, 3},
	}
	for i, w := range want {
		m := l.Members[i]
		assert.Equal(t, w.name, m.Name)
		assert.Equal(t, w.offset, m.Offset, w.name)
		assert.Equal(t, w.size, m.Format.Size, w.name)
		assert.Equal(t, i, m.Location, w.name)
	}
}

func TestColorUniform(t *testing.T) {
	c := ColorYellow
	var v glsl.Value
	c.UniformValue(&v)
	assert.Equal(t, []float32{1, 1, 0, 1}, v.Floats[:4])
	assert.Equal(t, glsl.Vec(glsl.KindFloat, 4), c.UniformType())
	assert.Equal(t, [4]float32{1, 1, 0, 1}, c.RGBA())
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, math.Mat4Identity(), tr.GetMatrix())

	tr.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	tr.Scale = math.Vec3{X: 2, Y: 2, Z: 2}
	p := tr.GetMatrix().MulVec3(math.Vec3{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, 3, p.X, 1e-6)
	assert.InDelta(t, 4, p.Y, 1e-6)
	assert.InDelta(t, 5, p.Z, 1e-6)
	assert.Equal(t, math.Vec3Front, tr.GetForward())
	assert.Equal(t, math.Vec3Right, tr.GetRight())
	assert.Equal(t, math.Vec3Up, tr.GetUp())
}
