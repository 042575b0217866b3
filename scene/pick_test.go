package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glsafe/math"
)

func TestPickDemoScene(t *testing.T) {
	s := NewDemoScene(1)
	ray := s.Camera.ScreenRay(50, 50, 100, 100)
	assert.InDelta(t, 0.1, ray.Origin.Distance(s.Camera.Position), 1e-3)

	hit, ok := s.Pick(ray)
	require.True(t, ok)
	assert.Equal(t, "Sphere", hit.Node.Name)
	assert.InDelta(t, 6.71, hit.Distance, 0.05)
	assert.Greater(t, hit.Normal.Dot(ray.Direction.Negate()), float32(0))

	// Above the horizon.
	_, ok = s.Pick(s.Camera.ScreenRay(0, 0, 100, 100))
	assert.False(t, ok)

	s.Root.Find("Sphere").Visible = false
	hit, ok = s.Pick(ray)
	require.True(t, ok)
	assert.Equal(t, "Ground", hit.Node.Name)
	assert.InDelta(t, 0, hit.Point.Y, 1e-4)
}

func TestPickSkipsLineMeshes(t *testing.T) {
	s := NewScene()
	n := NewNode("wire")
	n.Mesh = CreateCube(2)
	n.Mesh.Mode = DrawLines
	s.AddNode(n)
	ray := Ray{Origin: math.Vec3{X: 0.2, Y: 0.1, Z: 5}, Direction: math.Vec3{Z: -1}}
	_, ok := s.Pick(ray)
	assert.False(t, ok)

	n.Mesh.Mode = DrawTriangles
	hit, ok := s.Pick(ray)
	require.True(t, ok)
	assert.InDelta(t, 4, hit.Distance, 1e-5)
	assert.InDelta(t, 1, hit.Point.Z, 1e-5)
	assert.Equal(t, math.Vec3{Z: 1}, hit.Normal)
}

func TestIntersectBox(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	d, ok := Ray{Origin: math.Vec3{X: -3}, Direction: math.Vec3{X: 1}}.intersectBox(box)
	require.True(t, ok)
	assert.Equal(t, float32(2), d)

	d, ok = Ray{Direction: math.Vec3{Y: 1}}.intersectBox(box)
	require.True(t, ok)
	assert.Less(t, d, float32(0))

	_, ok = Ray{Origin: math.Vec3{X: -3, Y: 2}, Direction: math.Vec3{X: 1}}.intersectBox(box)
	assert.False(t, ok)
	_, ok = Ray{Origin: math.Vec3{X: 3}, Direction: math.Vec3{X: 1}}.intersectBox(box)
	assert.False(t, ok)
}
