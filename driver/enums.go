package driver

// GL 3.3 core enumerants used by the binding layer, plus the few extension
// enums it gates on.
const (
	NONE = 0
	ZERO = 0
	ONE  = 1

	NO_ERROR          = 0
	INVALID_ENUM      = 0x0500
	INVALID_VALUE     = 0x0501
	INVALID_OPERATION = 0x0502
	OUT_OF_MEMORY     = 0x0505

	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	EXTENSIONS               = 0x1F03
	SHADING_LANGUAGE_VERSION = 0x8B8C
	MAJOR_VERSION            = 0x821B
	MINOR_VERSION            = 0x821C
	NUM_EXTENSIONS           = 0x821D

	MAX_TEXTURE_SIZE                 = 0x0D33
	MAX_3D_TEXTURE_SIZE              = 0x8073
	MAX_CUBE_MAP_TEXTURE_SIZE        = 0x851C
	MAX_ARRAY_TEXTURE_LAYERS         = 0x88FF
	MAX_RECTANGLE_TEXTURE_SIZE       = 0x84F8
	MAX_RENDERBUFFER_SIZE            = 0x84E8
	MAX_VERTEX_ATTRIBS               = 0x8869
	MAX_COMBINED_TEXTURE_IMAGE_UNITS = 0x8B4D
	MAX_COLOR_ATTACHMENTS            = 0x8CDF
	MAX_DRAW_BUFFERS                 = 0x8824
	MAX_SAMPLES                      = 0x8D57
	MAX_TEXTURE_MAX_ANISOTROPY       = 0x84FF
	MAX_VIEWPORT_DIMS                = 0x0D3A

	PACK_ALIGNMENT   = 0x0D05
	UNPACK_ALIGNMENT = 0x0CF5

	// Capabilities.
	BLEND                    = 0x0BE2
	CULL_FACE                = 0x0B44
	DEPTH_TEST               = 0x0B71
	STENCIL_TEST             = 0x0B90
	SCISSOR_TEST             = 0x0C11
	POLYGON_OFFSET_FILL      = 0x8037
	POLYGON_OFFSET_LINE      = 0x2A02
	POLYGON_OFFSET_POINT     = 0x2A01
	MULTISAMPLE              = 0x809D
	FRAMEBUFFER_SRGB         = 0x8DB9
	DEPTH_CLAMP              = 0x864F
	PRIMITIVE_RESTART        = 0x8F9D
	PROGRAM_POINT_SIZE       = 0x8642
	DEBUG_OUTPUT             = 0x92E0
	DEBUG_OUTPUT_SYNCHRONOUS = 0x8242

	// Blending.
	FUNC_ADD              = 0x8006
	FUNC_SUBTRACT         = 0x800A
	FUNC_REVERSE_SUBTRACT = 0x800B
	MIN                   = 0x8007
	MAX                   = 0x8008

	SRC_COLOR                = 0x0300
	ONE_MINUS_SRC_COLOR      = 0x0301
	SRC_ALPHA                = 0x0302
	ONE_MINUS_SRC_ALPHA      = 0x0303
	DST_ALPHA                = 0x0304
	ONE_MINUS_DST_ALPHA      = 0x0305
	DST_COLOR                = 0x0306
	ONE_MINUS_DST_COLOR      = 0x0307
	SRC_ALPHA_SATURATE       = 0x0308
	CONSTANT_COLOR           = 0x8001
	ONE_MINUS_CONSTANT_COLOR = 0x8002
	CONSTANT_ALPHA           = 0x8003
	ONE_MINUS_CONSTANT_ALPHA = 0x8004

	// Faces and polygon modes.
	FRONT          = 0x0404
	BACK           = 0x0405
	FRONT_AND_BACK = 0x0408
	CW             = 0x0900
	CCW            = 0x0901
	POINT          = 0x1B00
	LINE           = 0x1B01
	FILL           = 0x1B02

	// Comparison functions.
	NEVER    = 0x0200
	LESS     = 0x0201
	EQUAL    = 0x0202
	LEQUAL   = 0x0203
	GREATER  = 0x0204
	NOTEQUAL = 0x0205
	GEQUAL   = 0x0206
	ALWAYS   = 0x0207

	// Stencil operations.
	KEEP      = 0x1E00
	REPLACE   = 0x1E01
	INCR      = 0x1E02
	DECR      = 0x1E03
	INVERT    = 0x150A
	INCR_WRAP = 0x8507
	DECR_WRAP = 0x8508

	// Clear masks and buffers.
	DEPTH_BUFFER_BIT   = 0x00000100
	STENCIL_BUFFER_BIT = 0x00000400
	COLOR_BUFFER_BIT   = 0x00004000
	COLOR              = 0x1800
	DEPTH              = 0x1801
	STENCIL            = 0x1802
	DEPTH_STENCIL      = 0x84F9

	// Buffers.
	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	COPY_READ_BUFFER     = 0x8F36
	COPY_WRITE_BUFFER    = 0x8F37
	STREAM_DRAW          = 0x88E0
	STREAM_READ          = 0x88E1
	STREAM_COPY          = 0x88E2
	STATIC_DRAW          = 0x88E4
	STATIC_READ          = 0x88E5
	STATIC_COPY          = 0x88E6
	DYNAMIC_DRAW         = 0x88E8
	DYNAMIC_READ         = 0x88E9
	DYNAMIC_COPY         = 0x88EA

	// Data types.
	BYTE                           = 0x1400
	UNSIGNED_BYTE                  = 0x1401
	SHORT                          = 0x1402
	UNSIGNED_SHORT                 = 0x1403
	INT                            = 0x1404
	UNSIGNED_INT                   = 0x1405
	FLOAT                          = 0x1406
	HALF_FLOAT                     = 0x140B
	UNSIGNED_INT_24_8              = 0x84FA
	UNSIGNED_INT_2_10_10_10_REV    = 0x8368
	UNSIGNED_INT_10F_11F_11F_REV   = 0x8C3B
	UNSIGNED_INT_5_9_9_9_REV       = 0x8C3E
	FLOAT_32_UNSIGNED_INT_24_8_REV = 0x8DAD

	// Primitives.
	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_LOOP      = 0x0002
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	TRIANGLE_FAN   = 0x0006

	// Texture targets.
	TEXTURE_1D                   = 0x0DE0
	TEXTURE_2D                   = 0x0DE1
	TEXTURE_3D                   = 0x806F
	TEXTURE_CUBE_MAP             = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X  = 0x8515
	TEXTURE_1D_ARRAY             = 0x8C18
	TEXTURE_2D_ARRAY             = 0x8C1A
	TEXTURE_RECTANGLE            = 0x84F5
	TEXTURE_2D_MULTISAMPLE       = 0x9100
	TEXTURE_2D_MULTISAMPLE_ARRAY = 0x9102
	TEXTURE0                     = 0x84C0

	// Texture and sampler parameters.
	TEXTURE_MIN_FILTER     = 0x2801
	TEXTURE_MAG_FILTER     = 0x2800
	TEXTURE_WRAP_S         = 0x2802
	TEXTURE_WRAP_T         = 0x2803
	TEXTURE_WRAP_R         = 0x8072
	TEXTURE_MIN_LOD        = 0x813A
	TEXTURE_MAX_LOD        = 0x813B
	TEXTURE_BASE_LEVEL     = 0x813C
	TEXTURE_MAX_LEVEL      = 0x813D
	TEXTURE_LOD_BIAS       = 0x8501
	TEXTURE_COMPARE_MODE   = 0x884C
	TEXTURE_COMPARE_FUNC   = 0x884D
	TEXTURE_BORDER_COLOR   = 0x1004
	TEXTURE_MAX_ANISOTROPY = 0x84FE
	TEXTURE_SWIZZLE_R      = 0x8E42
	TEXTURE_SWIZZLE_G      = 0x8E43
	TEXTURE_SWIZZLE_B      = 0x8E44
	TEXTURE_SWIZZLE_A      = 0x8E45
	COMPARE_REF_TO_TEXTURE = 0x884E
	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703
	REPEAT                 = 0x2901
	CLAMP_TO_EDGE          = 0x812F
	CLAMP_TO_BORDER        = 0x812D
	MIRRORED_REPEAT        = 0x8370
	RED                    = 0x1903
	GREEN                  = 0x1904
	BLUE                   = 0x1905
	ALPHA                  = 0x1906

	// Pixel formats.
	DEPTH_COMPONENT = 0x1902
	RG              = 0x8227
	RGB             = 0x1907
	RGBA            = 0x1908
	BGRA            = 0x80E1
	RED_INTEGER     = 0x8D94
	RG_INTEGER      = 0x8228
	RGB_INTEGER     = 0x8D98
	RGBA_INTEGER    = 0x8D99
	STENCIL_INDEX   = 0x1901

	// Internal formats.
	R8                 = 0x8229
	RG8                = 0x822B
	RGB8               = 0x8051
	RGBA8              = 0x8058
	SRGB8              = 0x8C41
	SRGB8_ALPHA8       = 0x8C43
	R16F               = 0x822D
	RG16F              = 0x822F
	RGB16F             = 0x881B
	RGBA16F            = 0x881A
	R32F               = 0x822E
	RG32F              = 0x8230
	RGB32F             = 0x8815
	RGBA32F            = 0x8814
	R8I                = 0x8231
	R8UI               = 0x8232
	R16I               = 0x8233
	R16UI              = 0x8234
	R32I               = 0x8235
	R32UI              = 0x8236
	RG32I              = 0x823B
	RG32UI             = 0x823C
	RGBA8I             = 0x8D8E
	RGBA8UI            = 0x8D7C
	RGBA32I            = 0x8D82
	RGBA32UI           = 0x8D70
	R11F_G11F_B10F     = 0x8C3A
	RGB9_E5            = 0x8C3D
	RGB10_A2           = 0x8059
	DEPTH_COMPONENT16  = 0x81A5
	DEPTH_COMPONENT24  = 0x81A6
	DEPTH_COMPONENT32F = 0x8CAC
	DEPTH24_STENCIL8   = 0x88F0
	DEPTH32F_STENCIL8  = 0x8CAD
	STENCIL_INDEX8     = 0x8D48

	COMPRESSED_RED_RGTC1                = 0x8DBB
	COMPRESSED_SIGNED_RED_RGTC1         = 0x8DBC
	COMPRESSED_RG_RGTC2                 = 0x8DBD
	COMPRESSED_SIGNED_RG_RGTC2          = 0x8DBE
	COMPRESSED_RGB_S3TC_DXT1_EXT        = 0x83F0
	COMPRESSED_RGBA_S3TC_DXT1_EXT       = 0x83F1
	COMPRESSED_RGBA_S3TC_DXT3_EXT       = 0x83F2
	COMPRESSED_RGBA_S3TC_DXT5_EXT       = 0x83F3
	COMPRESSED_SRGB_S3TC_DXT1_EXT       = 0x8C4C
	COMPRESSED_SRGB_ALPHA_S3TC_DXT1_EXT = 0x8C4D
	COMPRESSED_SRGB_ALPHA_S3TC_DXT3_EXT = 0x8C4E
	COMPRESSED_SRGB_ALPHA_S3TC_DXT5_EXT = 0x8C4F

	// Renderbuffers and framebuffers.
	RENDERBUFFER                              = 0x8D41
	FRAMEBUFFER                               = 0x8D40
	READ_FRAMEBUFFER                          = 0x8CA8
	DRAW_FRAMEBUFFER                          = 0x8CA9
	COLOR_ATTACHMENT0                         = 0x8CE0
	COLOR_ATTACHMENT1                         = 0x8CE1
	DEPTH_ATTACHMENT                          = 0x8D00
	STENCIL_ATTACHMENT                        = 0x8D20
	DEPTH_STENCIL_ATTACHMENT                  = 0x821A
	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_UNDEFINED                     = 0x8219
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8DA8
	BACK_LEFT                                 = 0x0402

	// Shaders.
	VERTEX_SHADER     = 0x8B31
	GEOMETRY_SHADER   = 0x8DD9
	FRAGMENT_SHADER   = 0x8B30
	COMPILE_STATUS    = 0x8B81
	LINK_STATUS       = 0x8B82
	INFO_LOG_LENGTH   = 0x8B84
	ACTIVE_UNIFORMS   = 0x8B86
	ACTIVE_ATTRIBUTES = 0x8B89

	// Debug output severities.
	DEBUG_SEVERITY_HIGH         = 0x9146
	DEBUG_SEVERITY_MEDIUM       = 0x9147
	DEBUG_SEVERITY_LOW          = 0x9148
	DEBUG_SEVERITY_NOTIFICATION = 0x826B
)
