package opengl

import (
	"errors"
	"fmt"

	"glsafe/driver"
	"glsafe/glsl"
)

// ErrUnsupportedFormat is wrapped by errors for formats whose extension the
// driver lacks.
var ErrUnsupportedFormat = errors.New("format not supported by driver")

// FormatClass is what an image format stores, which decides where it can be
// attached and how it is sampled.
type FormatClass uint8

const (
	// ClassColor is floating-point or normalized color.
	ClassColor FormatClass = iota + 1
	ClassInt
	ClassUint
	ClassDepth
	ClassDepthStencil
	ClassStencil
)

func (c FormatClass) String() string {
	switch c {
	case ClassColor:
		return "color"
	case ClassInt:
		return "integer color"
	case ClassUint:
		return "unsigned integer color"
	case ClassDepth:
		return "depth"
	case ClassDepthStencil:
		return "depth-stencil"
	case ClassStencil:
		return "stencil"
	}
	return "invalid"
}

// Depth reports whether the class occupies the depth attachment point.
func (c FormatClass) Depth() bool { return c == ClassDepth || c == ClassDepthStencil }

// SampleKind returns the kind of value a shader reads from the format.
func (c FormatClass) SampleKind() glsl.Kind {
	switch c {
	case ClassInt:
		return glsl.KindInt
	case ClassUint, ClassStencil:
		return glsl.KindUint
	}
	return glsl.KindFloat
}

// Format is an image internal format.
type Format uint8

const (
	FormatInvalid Format = iota
	R8
	RG8
	RGB8
	RGBA8
	SRGB8
	SRGB8Alpha8
	R16F
	RG16F
	RGB16F
	RGBA16F
	R32F
	RG32F
	RGB32F
	RGBA32F
	R11FG11FB10F
	RGB9E5
	RGB10A2
	R8I
	R8UI
	R16I
	R16UI
	R32I
	R32UI
	RG32I
	RG32UI
	RGBA8I
	RGBA8UI
	RGBA32I
	RGBA32UI
	Depth16
	Depth24
	Depth32F
	Depth24Stencil8
	Depth32FStencil8
	Stencil8
	DXT1
	DXT1A
	DXT3
	DXT5
	SRGBDXT1
	SRGBDXT1A
	SRGBDXT3
	SRGBDXT5
	RGTC1
	SignedRGTC1
	RGTC2
	SignedRGTC2
)

type formatInfo struct {
	name     string
	internal driver.Enum
	format   driver.Enum
	typ      driver.Enum
	class    FormatClass
	// bytes per pixel, or per 4x4 block for compressed formats
	bytes      int
	compressed bool
	srgb       bool
	// renderable formats can be framebuffer attachments
	renderable bool
	// texturable is false for formats only renderbuffers accept
	texturable bool
	exts       []string
}

var formats = [...]formatInfo{
	R8:           {name: "R8", internal: driver.R8, format: driver.RED, typ: driver.UNSIGNED_BYTE, class: ClassColor, bytes: 1, renderable: true, texturable: true},
	RG8:          {name: "RG8", internal: driver.RG8, format: driver.RG, typ: driver.UNSIGNED_BYTE, class: ClassColor, bytes: 2, renderable: true, texturable: true},
	RGB8:         {name: "RGB8", internal: driver.RGB8, format: driver.RGB, typ: driver.UNSIGNED_BYTE, class: ClassColor, bytes: 3, renderable: true, texturable: true},
	RGBA8:        {name: "RGBA8", internal: driver.RGBA8, format: driver.RGBA, typ: driver.UNSIGNED_BYTE, class: ClassColor, bytes: 4, renderable: true, texturable: true},
	SRGB8:        {name: "SRGB8", internal: driver.SRGB8, format: driver.RGB, typ: driver.UNSIGNED_BYTE, class: ClassColor, bytes: 3, srgb: true, texturable: true},
	SRGB8Alpha8:  {name: "SRGB8_ALPHA8", internal: driver.SRGB8_ALPHA8, format: driver.RGBA, typ: driver.UNSIGNED_BYTE, class: ClassColor, bytes: 4, srgb: true, renderable: true, texturable: true},
	R16F:         {name: "R16F", internal: driver.R16F, format: driver.RED, typ: driver.HALF_FLOAT, class: ClassColor, bytes: 2, renderable: true, texturable: true},
	RG16F:        {name: "RG16F", internal: driver.RG16F, format: driver.RG, typ: driver.HALF_FLOAT, class: ClassColor, bytes: 4, renderable: true, texturable: true},
	RGB16F:       {name: "RGB16F", internal: driver.RGB16F, format: driver.RGB, typ: driver.HALF_FLOAT, class: ClassColor, bytes: 6, texturable: true},
	RGBA16F:      {name: "RGBA16F", internal: driver.RGBA16F, format: driver.RGBA, typ: driver.HALF_FLOAT, class: ClassColor, bytes: 8, renderable: true, texturable: true},
	R32F:         {name: "R32F", internal: driver.R32F, format: driver.RED, typ: driver.FLOAT, class: ClassColor, bytes: 4, renderable: true, texturable: true},
	RG32F:        {name: "RG32F", internal: driver.RG32F, format: driver.RG, typ: driver.FLOAT, class: ClassColor, bytes: 8, renderable: true, texturable: true},
	RGB32F:       {name: "RGB32F", internal: driver.RGB32F, format: driver.RGB, typ: driver.FLOAT, class: ClassColor, bytes: 12, texturable: true},
	RGBA32F:      {name: "RGBA32F", internal: driver.RGBA32F, format: driver.RGBA, typ: driver.FLOAT, class: ClassColor, bytes: 16, renderable: true, texturable: true},
	R11FG11FB10F: {name: "R11F_G11F_B10F", internal: driver.R11F_G11F_B10F, format: driver.RGB, typ: driver.UNSIGNED_INT_10F_11F_11F_REV, class: ClassColor, bytes: 4, renderable: true, texturable: true},
	RGB9E5:       {name: "RGB9_E5", internal: driver.RGB9_E5, format: driver.RGB, typ: driver.UNSIGNED_INT_5_9_9_9_REV, class: ClassColor, bytes: 4, texturable: true},
	RGB10A2:      {name: "RGB10_A2", internal: driver.RGB10_A2, format: driver.RGBA, typ: driver.UNSIGNED_INT_2_10_10_10_REV, class: ClassColor, bytes: 4, renderable: true, texturable: true},

	R8I:      {name: "R8I", internal: driver.R8I, format: driver.RED_INTEGER, typ: driver.BYTE, class: ClassInt, bytes: 1, renderable: true, texturable: true},
	R8UI:     {name: "R8UI", internal: driver.R8UI, format: driver.RED_INTEGER, typ: driver.UNSIGNED_BYTE, class: ClassUint, bytes: 1, renderable: true, texturable: true},
	R16I:     {name: "R16I", internal: driver.R16I, format: driver.RED_INTEGER, typ: driver.SHORT, class: ClassInt, bytes: 2, renderable: true, texturable: true},
	R16UI:    {name: "R16UI", internal: driver.R16UI, format: driver.RED_INTEGER, typ: driver.UNSIGNED_SHORT, class: ClassUint, bytes: 2, renderable: true, texturable: true},
	R32I:     {name: "R32I", internal: driver.R32I, format: driver.RED_INTEGER, typ: driver.INT, class: ClassInt, bytes: 4, renderable: true, texturable: true},
	R32UI:    {name: "R32UI", internal: driver.R32UI, format: driver.RED_INTEGER, typ: driver.UNSIGNED_INT, class: ClassUint, bytes: 4, renderable: true, texturable: true},
	RG32I:    {name: "RG32I", internal: driver.RG32I, format: driver.RG_INTEGER, typ: driver.INT, class: ClassInt, bytes: 8, renderable: true, texturable: true},
	RG32UI:   {name: "RG32UI", internal: driver.RG32UI, format: driver.RG_INTEGER, typ: driver.UNSIGNED_INT, class: ClassUint, bytes: 8, renderable: true, texturable: true},
	RGBA8I:   {name: "RGBA8I", internal: driver.RGBA8I, format: driver.RGBA_INTEGER, typ: driver.BYTE, class: ClassInt, bytes: 4, renderable: true, texturable: true},
	RGBA8UI:  {name: "RGBA8UI", internal: driver.RGBA8UI, format: driver.RGBA_INTEGER, typ: driver.UNSIGNED_BYTE, class: ClassUint, bytes: 4, renderable: true, texturable: true},
	RGBA32I:  {name: "RGBA32I", internal: driver.RGBA32I, format: driver.RGBA_INTEGER, typ: driver.INT, class: ClassInt, bytes: 16, renderable: true, texturable: true},
	RGBA32UI: {name: "RGBA32UI", internal: driver.RGBA32UI, format: driver.RGBA_INTEGER, typ: driver.UNSIGNED_INT, class: ClassUint, bytes: 16, renderable: true, texturable: true},

	Depth16:          {name: "DEPTH_COMPONENT16", internal: driver.DEPTH_COMPONENT16, format: driver.DEPTH_COMPONENT, typ: driver.UNSIGNED_SHORT, class: ClassDepth, bytes: 2, renderable: true, texturable: true},
	Depth24:          {name: "DEPTH_COMPONENT24", internal: driver.DEPTH_COMPONENT24, format: driver.DEPTH_COMPONENT, typ: driver.UNSIGNED_INT, class: ClassDepth, bytes: 4, renderable: true, texturable: true},
	Depth32F:         {name: "DEPTH_COMPONENT32F", internal: driver.DEPTH_COMPONENT32F, format: driver.DEPTH_COMPONENT, typ: driver.FLOAT, class: ClassDepth, bytes: 4, renderable: true, texturable: true},
	Depth24Stencil8:  {name: "DEPTH24_STENCIL8", internal: driver.DEPTH24_STENCIL8, format: driver.DEPTH_STENCIL, typ: driver.UNSIGNED_INT_24_8, class: ClassDepthStencil, bytes: 4, renderable: true, texturable: true},
	Depth32FStencil8: {name: "DEPTH32F_STENCIL8", internal: driver.DEPTH32F_STENCIL8, format: driver.DEPTH_STENCIL, typ: driver.FLOAT_32_UNSIGNED_INT_24_8_REV, class: ClassDepthStencil, bytes: 8, renderable: true, texturable: true},
	Stencil8:         {name: "STENCIL_INDEX8", internal: driver.STENCIL_INDEX8, format: driver.STENCIL_INDEX, typ: driver.UNSIGNED_BYTE, class: ClassStencil, bytes: 1, renderable: true},

	DXT1:      {name: "DXT1", internal: driver.COMPRESSED_RGB_S3TC_DXT1_EXT, class: ClassColor, bytes: 8, compressed: true, texturable: true, exts: []string{ExtS3TC}},
	DXT1A:     {name: "DXT1A", internal: driver.COMPRESSED_RGBA_S3TC_DXT1_EXT, class: ClassColor, bytes: 8, compressed: true, texturable: true, exts: []string{ExtS3TC}},
	DXT3:      {name: "DXT3", internal: driver.COMPRESSED_RGBA_S3TC_DXT3_EXT, class: ClassColor, bytes: 16, compressed: true, texturable: true, exts: []string{ExtS3TC}},
	DXT5:      {name: "DXT5", internal: driver.COMPRESSED_RGBA_S3TC_DXT5_EXT, class: ClassColor, bytes: 16, compressed: true, texturable: true, exts: []string{ExtS3TC}},
	SRGBDXT1:  {name: "SRGB_DXT1", internal: driver.COMPRESSED_SRGB_S3TC_DXT1_EXT, class: ClassColor, bytes: 8, compressed: true, srgb: true, texturable: true, exts: []string{ExtS3TC, ExtTextureSRGB}},
	SRGBDXT1A: {name: "SRGB_ALPHA_DXT1", internal: driver.COMPRESSED_SRGB_ALPHA_S3TC_DXT1_EXT, class: ClassColor, bytes: 8, compressed: true, srgb: true, texturable: true, exts: []string{ExtS3TC, ExtTextureSRGB}},
	SRGBDXT3:  {name: "SRGB_ALPHA_DXT3", internal: driver.COMPRESSED_SRGB_ALPHA_S3TC_DXT3_EXT, class: ClassColor, bytes: 16, compressed: true, srgb: true, texturable: true, exts: []string{ExtS3TC, ExtTextureSRGB}},
	SRGBDXT5:  {name: "SRGB_ALPHA_DXT5", internal: driver.COMPRESSED_SRGB_ALPHA_S3TC_DXT5_EXT, class: ClassColor, bytes: 16, compressed: true, srgb: true, texturable: true, exts: []string{ExtS3TC, ExtTextureSRGB}},
	// RGTC is core since 3.0 and needs no extension.
	RGTC1:       {name: "RGTC1", internal: driver.COMPRESSED_RED_RGTC1, class: ClassColor, bytes: 8, compressed: true, texturable: true},
	SignedRGTC1: {name: "SIGNED_RGTC1", internal: driver.COMPRESSED_SIGNED_RED_RGTC1, class: ClassColor, bytes: 8, compressed: true, texturable: true},
	RGTC2:       {name: "RGTC2", internal: driver.COMPRESSED_RG_RGTC2, class: ClassColor, bytes: 16, compressed: true, texturable: true},
	SignedRGTC2: {name: "SIGNED_RGTC2", internal: driver.COMPRESSED_SIGNED_RG_RGTC2, class: ClassColor, bytes: 16, compressed: true, texturable: true},
}

func (f Format) info() *formatInfo {
	if f == FormatInvalid || int(f) >= len(formats) {
		panic(fmt.Sprintf("opengl: invalid format %d", uint8(f)))
	}
	return &formats[f]
}

func (f Format) String() string {
	if f == FormatInvalid || int(f) >= len(formats) {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formats[f].name
}

// Class returns what the format stores.
func (f Format) Class() FormatClass { return f.info().class }

// Compressed reports whether the format is block-compressed.
func (f Format) Compressed() bool { return f.info().compressed }

// SRGB reports whether color values are sRGB-encoded.
func (f Format) SRGB() bool { return f.info().srgb }

// Renderable reports whether images of the format can be attached to a
// framebuffer.
func (f Format) Renderable() bool { return f.info().renderable }

// BlockSize returns the edge of a compression block in pixels, 1 for
// uncompressed formats.
func (f Format) BlockSize() int {
	if f.info().compressed {
		return 4
	}
	return 1
}

// BlockBytes returns the bytes per pixel, or per block for compressed
// formats.
func (f Format) BlockBytes() int { return f.info().bytes }

// Blocks returns the number of blocks an image of the given size holds.
func (f Format) Blocks(s Size) int {
	b := f.BlockSize()
	return ceilDiv(s.W, b) * ceilDiv(s.H, b) * s.D
}

// ImageBytes returns the byte length of tightly packed image data of the
// given size.
func (f Format) ImageBytes(s Size) int { return f.Blocks(s) * f.BlockBytes() }

// InternalFormat returns the GL internal format enum.
func (f Format) InternalFormat() driver.Enum { return f.info().internal }

// PixelFormat returns the client format and type used to transfer pixels of
// an uncompressed format.
func (f Format) PixelFormat() (format, typ driver.Enum) {
	i := f.info()
	return i.format, i.typ
}

func (f Format) requireSupport(ctx *Context) error {
	for _, e := range f.info().exts {
		if !ctx.HasExtension(e) {
			return fmt.Errorf("opengl: %s needs %s: %w", f, e, ErrUnsupportedFormat)
		}
	}
	return nil
}

// FormatForFourCC maps a DDS four-character code to a compressed format.
func FormatForFourCC(code string) (Format, bool) {
	switch code {
	case "DXT1":
		return DXT1A, true
	case "DXT2", "DXT3":
		return DXT3, true
	case "DXT4", "DXT5":
		return DXT5, true
	case "ATI1", "BC4U":
		return RGTC1, true
	case "BC4S":
		return SignedRGTC1, true
	case "ATI2", "BC5U":
		return RGTC2, true
	case "BC5S":
		return SignedRGTC2, true
	}
	return FormatInvalid, false
}

// SRGBVariant returns the sRGB-encoded counterpart of f, or f itself when
// it has none.
func (f Format) SRGBVariant() Format {
	switch f {
	case RGB8:
		return SRGB8
	case RGBA8:
		return SRGB8Alpha8
	case DXT1:
		return SRGBDXT1
	case DXT1A:
		return SRGBDXT1A
	case DXT3:
		return SRGBDXT3
	case DXT5:
		return SRGBDXT5
	}
	return f
}

// Size is an image extent. Unused dimensions are 1. Array textures keep
// their layer count in the last used dimension.
type Size struct {
	W, H, D int
}

// Size2D returns a W×H×1 size.
func Size2D(w, h int) Size { return Size{w, h, 1} }

func (s Size) String() string { return fmt.Sprintf("%dx%dx%d", s.W, s.H, s.D) }

func ceilDiv(a, b int) int { return (a + b - 1) / b }
