package glsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	cases := []struct {
		typ  Type
		name string
	}{
		{Scalar(KindFloat), "float"},
		{Vec(KindFloat, 3), "vec3"},
		{Vec(KindInt, 2), "ivec2"},
		{Vec(KindUint, 4), "uvec4"},
		{Vec(KindBool, 2), "bvec2"},
		{Mat(4, 4), "mat4"},
		{Mat(2, 3), "mat2x3"},
		{SamplerOf(Dim2D, KindFloat, false), "sampler2D"},
		{SamplerOf(Dim2DArray, KindUint, false), "usampler2DArray"},
		{SamplerOf(DimCube, KindFloat, true), "samplerCubeShadow"},
		{SamplerOf(Dim2DMultisample, KindInt, false), "isampler2DMS"},
	}
	for _, c := range cases {
		assert.Equal(t, c.name, c.typ.Name())
	}
	assert.True(t, Scalar(KindBool).IsScalar())
	assert.False(t, Vec(KindFloat, 2).IsScalar())
	assert.False(t, SamplerOf(Dim2D, KindFloat, false).IsScalar())
}

func TestEnumRoundTrip(t *testing.T) {
	for e, typ := range enumTypes {
		got, ok := FromEnum(e)
		require.True(t, ok)
		assert.Equal(t, typ, got)
		assert.Equal(t, e, typ.Enum(), typ.Name())

		parsed, ok := Parse(typ.Name())
		require.True(t, ok, typ.Name())
		assert.Equal(t, typ, parsed)
	}

	_, ok := FromEnum(0xdead)
	assert.False(t, ok)
}

func TestParseSquareMatrixAlias(t *testing.T) {
	typ, ok := Parse("mat3x3")
	require.True(t, ok)
	assert.Equal(t, Mat(3, 3), typ)
}

func TestAttribShaderType(t *testing.T) {
	assert.Equal(t, Vec(KindFloat, 3), (*Unorm8x3)(nil).AttribFormat().ShaderType())
	assert.Equal(t, Vec(KindUint, 4), (*U8x4)(nil).AttribFormat().ShaderType())
	assert.Equal(t, Vec(KindInt, 4), (*I8x4)(nil).AttribFormat().ShaderType())
	assert.Equal(t, Scalar(KindFloat), (*Float)(nil).AttribFormat().ShaderType())
	assert.Equal(t, Scalar(KindInt), (*Int)(nil).AttribFormat().ShaderType())

	mat := AttribFormat{Component: ComponentFloat, Size: 4, Slots: 4}
	assert.Equal(t, Mat(4, 4), mat.ShaderType())
	assert.Equal(t, 16, mat.SlotBytes())
	assert.Equal(t, 64, mat.Bytes())
}

func TestAttribValidate(t *testing.T) {
	assert.NoError(t, (*Unorm8x4)(nil).AttribFormat().Validate())
	assert.NoError(t, (*U16x4)(nil).AttribFormat().Validate())

	assert.Error(t, AttribFormat{Component: ComponentFloat, Size: 5}.Validate())
	assert.Error(t, AttribFormat{Component: ComponentFloat, Size: 1, Integer: true}.Validate())
	assert.Error(t, AttribFormat{Component: ComponentUbyte, Size: 4, Slots: 4}.Validate())
}

func TestScalarUniformValues(t *testing.T) {
	var v Value

	f := Float(2.5)
	f.UniformValue(&v)
	assert.Equal(t, float32(2.5), v.Floats[0])

	b := Bool(true)
	b.UniformValue(&v)
	assert.Equal(t, int32(1), v.Ints[0])
	b = false
	b.UniformValue(&v)
	assert.Equal(t, int32(0), v.Ints[0])

	u := Uint(7)
	u.UniformValue(&v)
	assert.Equal(t, uint32(7), v.Uints[0])
}

func TestSamplerMarkers(t *testing.T) {
	assert.Equal(t, "sampler2D", Sampler2D{}.SamplerType().Name())
	assert.Equal(t, "sampler2DShadow", Sampler2DShadow{}.SamplerType().Name())
	assert.Equal(t, "isamplerCube", ISamplerCube{}.SamplerType().Name())
	assert.True(t, USampler3D{}.SamplerType().IsSampler())
	assert.False(t, Vec(KindFloat, 2).IsSampler())
}
