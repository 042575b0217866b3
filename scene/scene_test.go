package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glsafe/math"
)

// faceNormal returns the geometric normal of triangle i from its winding.
func faceNormal(m *Mesh, i int) math.Vec3 {
	a := m.Vertices[m.Indices[3*i]].Position
	b := m.Vertices[m.Indices[3*i+1]].Position
	c := m.Vertices[m.Indices[3*i+2]].Position
	return b.Sub(a).Cross(c.Sub(a))
}

func TestPrimitivesWindOutwards(t *testing.T) {
	meshes := []*Mesh{
		CreateQuad(),
		CreatePlane(4, 2, 3),
		CreateCube(2),
		CreateSphere(1, 12, 6),
		CreateTorus(1, 0.25, 12, 8),
	}
	for _, m := range meshes {
		t.Run(m.Name, func(t *testing.T) {
			require.Zero(t, len(m.Indices)%3)
			for i := 0; i < len(m.Indices)/3; i++ {
				n := faceNormal(m, i)
				if n.LengthSqr() < 1e-12 {
					continue // collapsed at a pole
				}
				vn := m.Vertices[m.Indices[3*i]].Normal
				assert.Greater(t, n.Dot(vn), float32(0), "triangle %d", i)
			}
			for _, v := range m.Vertices {
				assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-4)
				assert.InDelta(t, 1, v.Tangent.Length(), 1e-4)
			}
		})
	}
}

func TestMeshBounds(t *testing.T) {
	m := CreateCube(2)
	assert.Equal(t, AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}, m.Bounds)
	assert.Equal(t, 36, m.ElementCount())
	assert.Equal(t, 23, m.MaxIndex())

	tri := CreateTriangle()
	assert.Equal(t, 3, tri.ElementCount())
	assert.Equal(t, -1, tri.MaxIndex())
}

func TestComputeTangentsFollowsU(t *testing.T) {
	m := CreateQuad()
	for _, v := range m.Vertices {
		assert.InDelta(t, 1, v.Tangent.X, 1e-5)
	}
}

func TestNodeWorldMatrix(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	assert.NotEqual(t, parent.ID, child.ID)

	parent.SetPosition(math.Vec3{X: 10})
	child.SetPosition(math.Vec3{Y: 1})
	p := child.WorldMatrix().MulVec3(math.Vec3{})
	assert.InDelta(t, 10, p.X, 1e-6)
	assert.InDelta(t, 1, p.Y, 1e-6)

	parent.SetScale(math.Vec3{X: 2, Y: 2, Z: 2})
	p = child.WorldMatrix().MulVec3(math.Vec3{})
	assert.InDelta(t, 2, p.Y, 1e-6, "moving the parent invalidates the child")

	child.Translate(math.Vec3{Y: 1})
	p = child.WorldMatrix().MulVec3(math.Vec3{})
	assert.InDelta(t, 4, p.Y, 1e-6)

	other := NewNode("other")
	other.AddChild(child)
	assert.Empty(t, parent.Children)
	assert.Same(t, other, child.Parent)
	assert.Same(t, child, other.Find("child"))
	assert.Nil(t, parent.Find("child"))
}

func TestFrustumCulling(t *testing.T) {
	cam := NewCamera(1.0, 1, 0.1, 100)
	cam.Position = math.Vec3{Z: 5}
	cam.LookAt(math.Vec3{})
	f := FrustumFromViewProjection(cam.ViewProjection())

	unit := AABB{Min: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, Max: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	assert.True(t, unit.Intersects(&f))

	behind := AABB{Min: math.Vec3{Z: 10}, Max: math.Vec3{X: 1, Y: 1, Z: 11}}
	assert.False(t, behind.Intersects(&f))
	farAway := AABB{Min: math.Vec3{Z: -200}, Max: math.Vec3{X: 1, Y: 1, Z: -199}}
	assert.False(t, farAway.Intersects(&f))
	aside := AABB{Min: math.Vec3{X: 50}, Max: math.Vec3{X: 51, Y: 1, Z: 1}}
	assert.False(t, aside.Intersects(&f))
}

func TestSceneVisibleNodes(t *testing.T) {
	s := NewDemoScene(1)
	f := FrustumFromViewProjection(s.Camera.ViewProjection())
	assert.Len(t, s.VisibleNodes(&f), 4)
	assert.Len(t, s.VisibleNodes(nil), 4)

	s.Root.Find("Cube").Visible = false
	assert.Len(t, s.VisibleNodes(nil), 3)

	far := NewNode("far")
	far.Mesh = CreateCube(1)
	far.SetPosition(math.Vec3{Z: -500})
	s.AddNode(far)
	assert.Len(t, s.VisibleNodes(&f), 3)
	assert.Len(t, s.VisibleNodes(nil), 4)

	b := s.Bounds()
	assert.InDelta(t, -500.5, b.Min.Z, 1e-3)
	assert.InDelta(t, 10, b.Max.X, 1e-3)
}

func TestOrbitCamera(t *testing.T) {
	c := NewOrbitCamera(math.Vec3{}, 5, 1, 1)
	c.Pitch = 0
	c.Orbit(0, 0)
	assert.InDelta(t, 5, c.Position.Z, 1e-5)

	c.Orbit(0, 10)
	assert.Equal(t, float32(1.5), c.Pitch)

	c.Zoom(-100)
	assert.InDelta(t, 0.1, c.Position.Length(), 1e-5)

	fwd := c.Forward()
	assert.InDelta(t, 1, fwd.Length(), 1e-5)
}
