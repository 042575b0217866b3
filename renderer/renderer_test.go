package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"glsafe/core"
	"glsafe/driver"
	"glsafe/internal/fakegl"
	"glsafe/math"
	"glsafe/opengl"
	"glsafe/scene"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRenderer(t *testing.T, settings Settings) (*Renderer, *fakegl.GL) {
	t.Helper()
	gl := fakegl.New()
	ctx, err := opengl.NewContext(gl)
	require.NoError(t, err)
	r, err := New(ctx, 640, 480, settings)
	require.NoError(t, err)
	return r, gl
}

func TestRenderDemoScene(t *testing.T) {
	r, gl := newTestRenderer(t, DefaultSettings())
	defer r.Delete()
	s := scene.NewDemoScene(640.0 / 480.0)

	require.NoError(t, r.Render(s))
	stats := r.Stats()
	assert.Equal(t, 4, stats.Objects)
	assert.Equal(t, 0, stats.Culled)
	// Shadow and lit pass per object, then the sky and the tone map.
	assert.Equal(t, 10, stats.DrawCalls)
	assert.Len(t, gl.Draws(), stats.DrawCalls)
	assert.Equal(t, 4, r.Meshes())

	draws := gl.Draws()
	assert.Equal(t, uint32(0), draws[len(draws)-1].Framebuffer)
	assert.Equal(t, uint32(r.hdrFB.Handle()), draws[len(draws)-2].Framebuffer)
	assert.Equal(t, uint32(r.shadowFB.Handle()), draws[0].Framebuffer)
	for _, d := range draws[:len(draws)-1] {
		assert.True(t, d.Indexed)
	}
	assert.Equal(t, driver.Enum(driver.UNSIGNED_BYTE), draws[len(draws)-2].IndexType)

	// A second frame reuses the uploaded meshes and the sky.
	live := gl.Live()
	require.NoError(t, r.Render(s))
	assert.Equal(t, live, gl.Live())
}

func TestRenderWithoutOptionalPasses(t *testing.T) {
	r, gl := newTestRenderer(t, Settings{Exposure: 1, TextureCacheSize: 4})
	defer r.Delete()

	require.NoError(t, r.Render(scene.NewDemoScene(1)))
	assert.Equal(t, 5, r.Stats().DrawCalls)
	assert.Len(t, gl.Draws(), 5)
	assert.Nil(t, r.skyCube)
	assert.Equal(t, opengl.Size2D(1, 1), r.shadowMap.Size())
}

func TestRenderRequiresCamera(t *testing.T) {
	r, _ := newTestRenderer(t, DefaultSettings())
	defer r.Delete()

	assert.EqualError(t, r.Render(scene.NewScene()), "no scene or camera")
	assert.Error(t, r.Render(nil))
}

func TestFrustumCullingCountsSkippedNodes(t *testing.T) {
	r, _ := newTestRenderer(t, DefaultSettings())
	defer r.Delete()
	s := scene.NewDemoScene(1)
	far := scene.NewNode("Behind")
	far.Mesh = scene.CreateCube(1)
	far.SetPosition(math.Vec3{Z: 100})
	s.AddNode(far)

	require.NoError(t, r.Render(s))
	assert.Equal(t, 4, r.Stats().Objects)
	assert.Equal(t, 1, r.Stats().Culled)
}

func TestProgramInterfaces(t *testing.T) {
	r, _ := newTestRenderer(t, DefaultSettings())
	defer r.Delete()

	assert.Empty(t, r.litProg.Warnings())
	assert.Empty(t, r.skyProg.Warnings())
	assert.Empty(t, r.toneMapProg.Warnings())
	assert.ElementsMatch(t, []opengl.Warning{
		{Kind: opengl.InactiveAttribute, Identifier: "normal"},
		{Kind: opengl.InactiveAttribute, Identifier: "uv"},
		{Kind: opengl.InactiveAttribute, Identifier: "color"},
		{Kind: opengl.InactiveAttribute, Identifier: "tangent"},
	}, r.shadowProg.Warnings())
}

func TestMeshIndexWidth(t *testing.T) {
	r, gl := newTestRenderer(t, DefaultSettings())
	defer r.Delete()

	small := scene.CreateCube(1)
	g := r.upload(small)
	require.NotNil(t, g)
	assert.Same(t, g, r.upload(small))

	big := scene.NewMesh("big", make([]core.Vertex, 70000), []uint32{0, 1, 69999})
	require.NotNil(t, r.upload(big))
	assert.Nil(t, r.upload(scene.NewMesh("empty", nil, nil)))
	assert.Equal(t, 2, r.Meshes())

	s := scene.NewScene()
	s.Camera = scene.NewCamera(1, 1, 0.1, 100)
	n := scene.NewNode("big")
	n.Mesh = big
	s.AddNode(n)
	r.settings.FrustumCulling = false
	gl.Reset()
	require.NoError(t, r.Render(s))
	var indexTypes []driver.Enum
	for _, d := range gl.Draws() {
		if d.Indexed {
			indexTypes = append(indexTypes, d.IndexType)
		}
	}
	assert.Contains(t, indexTypes, driver.Enum(driver.UNSIGNED_INT))

	buffers := gl.Live()["buffer"]
	r.Release(big)
	assert.Equal(t, buffers-2, gl.Live()["buffer"])
	assert.Equal(t, 1, r.Meshes())
}

func TestResize(t *testing.T) {
	r, gl := newTestRenderer(t, DefaultSettings())
	defer r.Delete()
	live := gl.Live()

	require.NoError(t, r.Resize(320, 200))
	assert.Equal(t, opengl.Size2D(320, 200), r.screen.Size())
	assert.Equal(t, opengl.Size2D(320, 200), r.hdrImage.Color.Image.Size())
	assert.Equal(t, opengl.Size2D(320, 200), r.hdrImage.Depth.Image.Size())
	assert.Equal(t, live, gl.Live())

	// Minimized windows report a zero size.
	require.NoError(t, r.Resize(0, 0))
	assert.Equal(t, opengl.Size2D(320, 200), r.screen.Size())
}

func TestDeleteFreesEverything(t *testing.T) {
	gl := fakegl.New()
	ctx, err := opengl.NewContext(gl)
	require.NoError(t, err)
	r, err := New(ctx, 64, 64, DefaultSettings())
	require.NoError(t, err)

	_, err = New(ctx, 64, 64, DefaultSettings())
	assert.ErrorIs(t, err, opengl.ErrDefaultFramebufferInUse)

	require.NoError(t, r.Render(scene.NewDemoScene(1)))
	r.Delete()
	for kind, n := range gl.Live() {
		assert.Zero(t, n, kind)
	}

	// The default framebuffer is free again.
	r, err = New(ctx, 64, 64, DefaultSettings())
	require.NoError(t, err)
	r.Delete()
}

func TestNewRejectsBadSettings(t *testing.T) {
	gl := fakegl.New()
	ctx, err := opengl.NewContext(gl)
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.ShadowMapSize = 0
	_, err = New(ctx, 64, 64, settings)
	assert.EqualError(t, err, "invalid shadow map size 0")

	settings = DefaultSettings()
	settings.ShadowMapSize = 8192
	_, err = New(ctx, 64, 64, settings)
	var dim *opengl.DimensionError
	assert.ErrorAs(t, err, &dim)
	for kind, n := range gl.Live() {
		assert.Zero(t, n, kind)
	}
}
