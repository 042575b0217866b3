package scene

import (
	"glsafe/core"
	"glsafe/textures"
)

// Material describes how a mesh surface is shaded. Maps are CPU images; the
// renderer uploads them through its texture manager, keyed by image name.
type Material struct {
	Name      string
	BaseColor core.Color
	Emissive  core.Color
	Metallic  float32
	Roughness float32
	// Unlit outputs the base color without lighting.
	Unlit bool

	// BaseColorMap is sRGB encoded and multiplied with BaseColor.
	BaseColorMap *textures.Image
	// NormalMap holds tangent-space normals.
	NormalMap *textures.Image
}

// DefaultMaterial returns a white, fairly rough dielectric.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		BaseColor: core.ColorWhite,
		Emissive:  core.ColorBlack,
		Roughness: 0.6,
	}
}

func NewMaterial(name string, base core.Color, metallic, roughness float32) *Material {
	return &Material{
		Name:      name,
		BaseColor: base,
		Emissive:  core.ColorBlack,
		Metallic:  metallic,
		Roughness: roughness,
	}
}
