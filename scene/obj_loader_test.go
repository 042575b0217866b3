package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glsafe/math"
)

const quadOBJ = `# two groups sharing a material library
mtllib quad.mtl
v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
o Floor
usemtl stone
f 1/1 2/2 3/3 4/4
o Lid
usemtl missing
f -4//-1 -2//-1 -3//-1
`

const quadMTL = `newmtl stone
Kd 0.5 0.25 0.125
Ke 0 0 0
Ns 250
d 0.5
map_Kd -bm 1 stone.png
`

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(quadOBJ), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte(quadMTL), 0o644))

	nodes, err := LoadOBJ(filepath.Join(dir, "quad.obj"))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	floor := nodes[0].Mesh
	assert.Equal(t, "Floor", nodes[0].Name)
	assert.Len(t, floor.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, floor.Indices)
	for _, v := range floor.Vertices {
		// Smoothed from the faces, which wind towards -Y.
		assert.InDelta(t, -1, v.Normal.Y, 1e-5)
		assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-5)
	}
	assert.Equal(t, math.Vec2{X: 1, Y: 1}, floor.Vertices[1].UV)
	assert.Equal(t, math.Vec3{X: -1, Y: 0, Z: -1}, floor.Bounds.Min)

	require.NotNil(t, floor.Material)
	mat := floor.Material
	assert.Equal(t, "stone", mat.Name)
	assert.Equal(t, float32(0.25), mat.BaseColor.G)
	assert.Equal(t, float32(0.5), mat.BaseColor.A)
	assert.InDelta(t, 0.75, mat.Roughness, 1e-6)
	assert.Nil(t, mat.BaseColorMap)

	lid := nodes[1].Mesh
	assert.Equal(t, "Lid", nodes[1].Name)
	assert.Len(t, lid.Vertices, 3)
	assert.Equal(t, math.Vec3{Y: 1}, lid.Vertices[0].Normal)
	assert.Equal(t, math.Vec3{X: -1, Z: -1}, lid.Vertices[0].Position)
	assert.Nil(t, lid.Material)
}

func TestParseOBJErrors(t *testing.T) {
	cases := map[string]string{
		"v 1 2\n":                                "line 1: want 3 numbers, got 2",
		"v 0 0 0\nv 1 0 0\nf 1 2\n":              "line 3: face with 2 vertices",
		"v 0 0 0\nf 1 2 3\n":                     "line 2: vertex \"2\": index 2 out of range",
		"v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1/4 2 3\n": "line 4: texture coordinate \"1/4\": index 4 out of range",
		"v x 0 0\n":                              "line 1: strconv.ParseFloat: parsing \"x\": invalid syntax",
		"# nothing\n":                            "no faces",
	}
	for src, want := range cases {
		_, err := parseOBJ(strings.NewReader(src), t.TempDir())
		assert.EqualError(t, err, want, src)
	}

	_, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
