package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"glsafe/driver"
	"glsafe/internal/fakegl"
)

func upload(ctx *Context, s *RenderState, target Size) {
	ctx.uploadRenderState(s.resolve(target))
}

func TestRenderStateFirstUploadIsComplete(t *testing.T) {
	ctx, gl := newTestContext(t)
	upload(ctx, nil, Size2D(64, 32))

	for _, name := range []string{"BlendFuncSeparate", "CullFace", "DepthFunc", "DepthRange", "StencilFuncSeparate", "Viewport", "ColorMask", "LineWidth"} {
		assert.NotZero(t, gl.Count(name), name)
	}
	v := gl.Calls("Viewport")
	assert.Equal(t, []any{int32(0), int32(0), int32(64), int32(32)}, v[0].Args)
	assert.False(t, gl.Enabled(driver.BLEND))
	assert.True(t, gl.Enabled(driver.MULTISAMPLE))

	gl.Reset()
	upload(ctx, nil, Size2D(64, 32))
	assert.Empty(t, gl.Calls(), "unchanged state uploads nothing")
}

func TestRenderStateDiff(t *testing.T) {
	ctx, gl := newTestContext(t)
	upload(ctx, nil, Size2D(8, 8))

	gl.Reset()
	upload(ctx, &RenderState{Depth: &DepthState{Func: LessEqual}}, Size2D(8, 8))
	calls := gl.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "Enable", calls[0].Name)
	assert.Equal(t, []any{uint32(driver.DEPTH_TEST)}, calls[0].Args)
	assert.Equal(t, "DepthFunc", calls[1].Name)
	assert.Equal(t, []any{uint32(driver.LEQUAL)}, calls[1].Args)

	gl.Reset()
	upload(ctx, &RenderState{Depth: &DepthState{Func: LessEqual, ReadOnly: true}}, Size2D(16, 8))
	assert.Equal(t, 1, gl.Count("DepthMask"))
	assert.Equal(t, 1, gl.Count("Viewport"))
	assert.Len(t, gl.Calls(), 2)
}

func TestRenderStateKeepsDisabledParameters(t *testing.T) {
	ctx, gl := newTestContext(t)
	size := Size2D(8, 8)
	upload(ctx, nil, size)

	gl.Reset()
	upload(ctx, &RenderState{Blend: AlphaBlend()}, size)
	assert.Equal(t, 1, gl.Count("Enable"))
	assert.Equal(t, 1, gl.Count("BlendFuncSeparate"))
	assert.Zero(t, gl.Count("BlendEquationSeparate"))
	assert.Equal(t, []any{uint32(driver.SRC_ALPHA), uint32(driver.ONE_MINUS_SRC_ALPHA), uint32(driver.ONE), uint32(driver.ONE_MINUS_SRC_ALPHA)},
		gl.Calls("BlendFuncSeparate")[0].Args)

	gl.Reset()
	upload(ctx, nil, size)
	assert.Equal(t, []string{"Disable"}, callNames(gl.Calls()))

	// The factors are still what the driver holds.
	gl.Reset()
	upload(ctx, &RenderState{Blend: AlphaBlend()}, size)
	assert.Equal(t, []string{"Enable"}, callNames(gl.Calls()))

	gl.Reset()
	upload(ctx, &RenderState{Blend: AdditiveBlend()}, size)
	assert.Equal(t, []string{"BlendFuncSeparate"}, callNames(gl.Calls()))
}

func TestRenderStateInvalidateForcesUpload(t *testing.T) {
	ctx, gl := newTestContext(t)
	s := &RenderState{Cull: CullFront, Scissor: &Rect{1, 2, 3, 4}}
	upload(ctx, s, Size2D(8, 8))
	gl.Reset()
	upload(ctx, s, Size2D(8, 8))
	assert.Empty(t, gl.Calls())

	ctx.InvalidateState()
	upload(ctx, s, Size2D(8, 8))
	assert.Equal(t, 1, gl.Count("Viewport"))
	assert.Equal(t, []any{uint32(driver.FRONT)}, gl.Calls("CullFace")[0].Args)
	assert.Equal(t, []any{int32(1), int32(2), int32(3), int32(4)}, gl.Calls("Scissor")[0].Args)
	assert.True(t, gl.Enabled(driver.SCISSOR_TEST))
	assert.True(t, gl.Enabled(driver.CULL_FACE))
}

func TestRenderStateResolve(t *testing.T) {
	restart := uint32(0xFFFF)
	s := &RenderState{
		Stencil: &Stencil{
			Front: StencilFace{Func: Equal, Ref: 1, IgnoreBits: 0xF0, Pass: StencilReplace},
			Back:  StencilFace{Func: Never, KeepBits: 0x01},
		},
		NoColorWrite:     ChannelAlpha,
		PolygonMode:      Line,
		LineWidth:        2,
		PrimitiveRestart: &restart,
		FrontFace:        Clockwise,
		Viewport:         &Rect{W: 10, H: 5},
	}
	p := s.resolve(Size2D(100, 100))
	assert.True(t, p.stencil)
	assert.Equal(t, stencilFunc{driver.EQUAL, 1, ^uint32(0xF0)}, p.stencilFunc[0])
	assert.Equal(t, [3]driver.Enum{driver.KEEP, driver.KEEP, driver.REPLACE}, p.stencilOp[0])
	assert.Equal(t, ^uint32(0x01), p.stencilWrite[1])
	assert.Equal(t, [4]bool{true, true, true, false}, p.colorMask)
	assert.Equal(t, driver.Enum(driver.LINE), p.polygonMode)
	assert.Equal(t, float32(2), p.lineWidth)
	assert.True(t, p.restart)
	assert.Equal(t, restart, p.restartIndex)
	assert.Equal(t, driver.Enum(driver.CW), p.frontFace)
	assert.Equal(t, [4]int32{0, 0, 10, 5}, p.viewport)

	assert.Equal(t, defaultPipelineState().colorMask, (*RenderState)(nil).resolve(Size{}).colorMask)
}

func TestClearRestoresWriteMasks(t *testing.T) {
	ctx, gl := newTestContext(t)
	d, err := ctx.DefaultFramebuffer(8, 8)
	require.NoError(t, err)
	upload(ctx, &RenderState{NoColorWrite: ChannelRed | ChannelAlpha, Scissor: &Rect{W: 1, H: 1}}, d.Size())

	gl.Reset()
	d.ClearColor([4]float32{})
	assert.Equal(t, []any{true, true, true, true}, gl.Calls("ColorMask")[0].Args)
	assert.False(t, gl.Enabled(driver.SCISSOR_TEST))
	assert.Equal(t, 1, gl.Count("ClearBufferfv"))
}

func TestRenderStateTracksDriver(t *testing.T) {
	ctx, gl := newTestContext(t)
	rapid.Check(t, func(t *rapid.T) {
		for range rapid.IntRange(1, 8).Draw(t, "uploads") {
			s := &RenderState{
				Cull:          CullMode(rapid.IntRange(0, 3).Draw(t, "cull")),
				DepthClamp:    rapid.Bool().Draw(t, "clamp"),
				NoMultisample: rapid.Bool().Draw(t, "nomsaa"),
				LineWidth:     float32(rapid.IntRange(0, 3).Draw(t, "width")),
			}
			if rapid.Bool().Draw(t, "blend") {
				s.Blend = AlphaBlend()
			}
			if rapid.Bool().Draw(t, "depth") {
				s.Depth = &DepthState{Func: CompareFunc(rapid.IntRange(0, 7).Draw(t, "func"))}
			}
			if rapid.Bool().Draw(t, "scissor") {
				s.Scissor = &Rect{W: 1, H: 1}
			}
			upload(ctx, s, Size2D(4, 4))

			want := map[driver.Enum]bool{
				driver.BLEND:        s.Blend != nil,
				driver.CULL_FACE:    s.Cull != CullNone,
				driver.DEPTH_TEST:   s.Depth != nil,
				driver.DEPTH_CLAMP:  s.DepthClamp,
				driver.SCISSOR_TEST: s.Scissor != nil,
				driver.MULTISAMPLE:  !s.NoMultisample,
			}
			for cap, on := range want {
				if gl.Enabled(cap) != on {
					t.Fatalf("capability 0x%X enabled = %v, want %v", cap, gl.Enabled(cap), on)
				}
			}
		}
	})
}

func callNames(calls []fakegl.Call) []string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}
