package glsl

// SamplerKind is implemented by the marker types below. A marker names the
// GLSL sampler a texture uniform is declared as.
type SamplerKind interface {
	SamplerType() Type
}

type (
	Sampler1D            struct{}
	Sampler2D            struct{}
	Sampler3D            struct{}
	SamplerCube          struct{}
	Sampler1DArray       struct{}
	Sampler2DArray       struct{}
	Sampler2DMS          struct{}
	Sampler2DMSArray     struct{}
	Sampler2DRect        struct{}
	Sampler1DShadow      struct{}
	Sampler2DShadow      struct{}
	SamplerCubeShadow    struct{}
	Sampler2DArrayShadow struct{}
	Sampler2DRectShadow  struct{}
	ISampler1D           struct{}
	ISampler2D           struct{}
	ISampler3D           struct{}
	ISamplerCube         struct{}
	ISampler2DArray      struct{}
	ISampler2DMS         struct{}
	USampler1D           struct{}
	USampler2D           struct{}
	USampler3D           struct{}
	USamplerCube         struct{}
	USampler2DArray      struct{}
	USampler2DMS         struct{}
)

func (Sampler1D) SamplerType() Type { return SamplerOf(Dim1D, KindFloat, false) }
func (Sampler2D) SamplerType() Type { return SamplerOf(Dim2D, KindFloat, false) }
func (Sampler3D) SamplerType() Type { return SamplerOf(Dim3D, KindFloat, false) }
func (SamplerCube) SamplerType() Type { return SamplerOf(DimCube, KindFloat, false) }
func (Sampler1DArray) SamplerType() Type { return SamplerOf(Dim1DArray, KindFloat, false) }
func (Sampler2DArray) SamplerType() Type { return SamplerOf(Dim2DArray, KindFloat, false) }
func (Sampler2DMS) SamplerType() Type { return SamplerOf(Dim2DMultisample, KindFloat, false) }
func (Sampler2DMSArray) SamplerType() Type { return SamplerOf(Dim2DMultisampleArray, KindFloat, false) }
func (Sampler2DRect) SamplerType() Type { return SamplerOf(Dim2DRect, KindFloat, false) }

func (Sampler1DShadow) SamplerType() Type { return SamplerOf(Dim1D, KindFloat, true) }
func (Sampler2DShadow) SamplerType() Type { return SamplerOf(Dim2D, KindFloat, true) }
func (SamplerCubeShadow) SamplerType() Type { return SamplerOf(DimCube, KindFloat, true) }
func (Sampler2DArrayShadow) SamplerType() Type { return SamplerOf(Dim2DArray, KindFloat, true) }
func (Sampler2DRectShadow) SamplerType() Type { return SamplerOf(Dim2DRect, KindFloat, true) }

func (ISampler1D) SamplerType() Type { return SamplerOf(Dim1D, KindInt, false) }
func (ISampler2D) SamplerType() Type { return SamplerOf(Dim2D, KindInt, false) }
func (ISampler3D) SamplerType() Type { return SamplerOf(Dim3D, KindInt, false) }
func (ISamplerCube) SamplerType() Type { return SamplerOf(DimCube, KindInt, false) }
func (ISampler2DArray) SamplerType() Type { return SamplerOf(Dim2DArray, KindInt, false) }
func (ISampler2DMS) SamplerType() Type { return SamplerOf(Dim2DMultisample, KindInt, false) }

func (USampler1D) SamplerType() Type { return SamplerOf(Dim1D, KindUint, false) }
func (USampler2D) SamplerType() Type { return SamplerOf(Dim2D, KindUint, false) }
func (USampler3D) SamplerType() Type { return SamplerOf(Dim3D, KindUint, false) }
func (USamplerCube) SamplerType() Type { return SamplerOf(DimCube, KindUint, false) }
func (USampler2DArray) SamplerType() Type { return SamplerOf(Dim2DArray, KindUint, false) }
func (USampler2DMS) SamplerType() Type { return SamplerOf(Dim2DMultisample, KindUint, false) }
