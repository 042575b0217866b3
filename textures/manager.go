package textures

import (
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"glsafe/opengl"
)

// Texture2D is the texture type every loader here produces.
type Texture2D = opengl.Texture[opengl.Tex2D]

// Upload creates a mipmapped 2D texture from img. Color maps should be
// uploaded as sRGB; data such as normal maps should not. Images larger than
// the driver allows are scaled down first.
func Upload(ctx *opengl.Context, img *Image, srgb bool) (*Texture2D, error) {
	img = img.FitWithin(ctx.Limits().MaxTextureSize)
	format := opengl.RGBA8
	if srgb {
		format = opengl.SRGB8Alpha8
	}
	tex, err := opengl.NewTexture[opengl.Tex2D](ctx, format, opengl.Size2D(img.Width, img.Height), img.Pix)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", img.Name, err)
	}
	tex.GenerateMipmaps()
	tex.SetSampling(opengl.SamplingParams{Mip: opengl.MipLinear, Anisotropy: 8})
	return tex, nil
}

// UploadDDS creates a texture from the compressed levels of d. Drivers
// without the needed compression extension make it return
// opengl.ErrUnsupportedFormat.
//
// Blocks are uploaded as stored, so the first block row is the top of the
// image. Unlike Upload, nothing is flipped: sample the result with v
// running downward, or author the DDS bottom-up.
func UploadDDS(ctx *opengl.Context, d *DDS, srgb bool) (*Texture2D, error) {
	format := d.Format
	if srgb {
		format = format.SRGBVariant()
	}
	tex, err := opengl.NewTexture[opengl.Tex2D](ctx, format, opengl.Size2D(d.Width, d.Height), d.Levels...)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", d.Name, err)
	}
	if len(d.Levels) > 1 {
		tex.SetSampling(opengl.SamplingParams{Mip: opengl.MipLinear, Anisotropy: 8})
	}
	return tex, nil
}

// UploadCube creates a cube map from six square faces of equal size, in
// the order +X, -X, +Y, -Y, +Z, -Z.
func UploadCube(ctx *opengl.Context, faces [6]*Image, srgb bool) (*opengl.Texture[opengl.TexCube], error) {
	size := faces[0].Width
	data := make([]byte, 0, 6*size*size*4)
	for i, f := range faces {
		if f.Width != size || f.Height != size {
			return nil, fmt.Errorf("cube face %d is %dx%d, want %dx%d", i, f.Width, f.Height, size, size)
		}
		data = append(data, f.Pix...)
	}
	format := opengl.RGBA8
	if srgb {
		format = opengl.SRGB8Alpha8
	}
	tex, err := opengl.NewTexture[opengl.TexCube](ctx, format, opengl.Size2D(size, size), data)
	if err != nil {
		return nil, err
	}
	tex.SetSampling(opengl.SamplingParams{WrapS: opengl.ClampToEdge, WrapT: opengl.ClampToEdge, WrapR: opengl.ClampToEdge})
	return tex, nil
}

type cacheKey struct {
	name string
	srgb bool
}

// Manager uploads textures on demand and keeps at most a fixed number of
// them on the GPU. The least recently used texture is deleted when the
// limit is reached, so callers must fetch textures again each frame rather
// than hold on to them.
type Manager struct {
	ctx   *opengl.Context
	cache *lru.Cache

	white  *Texture2D
	normal *Texture2D
}

// NewManager creates a manager holding up to capacity textures, not
// counting its built-in defaults.
func NewManager(ctx *opengl.Context, capacity int) (*Manager, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("texture cache capacity %d, need at least 2", capacity)
	}
	m := &Manager{ctx: ctx}
	cache, err := lru.NewWithEvict(capacity, func(key, value interface{}) {
		ctx.Logger().Debug("evict texture", "name", key.(cacheKey).name)
		value.(*Texture2D).Delete()
	})
	if err != nil {
		return nil, err
	}
	m.cache = cache

	if m.white, err = Upload(ctx, Solid("white", [4]uint8{255, 255, 255, 255}), false); err != nil {
		return nil, err
	}
	if m.normal, err = Upload(ctx, FlatNormal(), false); err != nil {
		m.white.Delete()
		return nil, err
	}
	return m, nil
}

// White is a 1x1 white texture, the neutral base color map.
func (m *Manager) White() *Texture2D { return m.white }

// FlatNormal is the neutral normal map.
func (m *Manager) FlatNormal() *Texture2D { return m.normal }

// Load returns the texture for an image or DDS file, reading and uploading
// it when it is not cached.
func (m *Manager) Load(path string, srgb bool) (*Texture2D, error) {
	key := cacheKey{path, srgb}
	if v, ok := m.cache.Get(key); ok {
		return v.(*Texture2D), nil
	}
	var tex *Texture2D
	if strings.EqualFold(filepath.Ext(path), ".dds") {
		d, err := LoadDDS(path)
		if err != nil {
			return nil, err
		}
		if tex, err = UploadDDS(m.ctx, d, srgb); err != nil {
			return nil, err
		}
	} else {
		img, err := Load(path)
		if err != nil {
			return nil, err
		}
		if tex, err = Upload(m.ctx, img, srgb); err != nil {
			return nil, err
		}
	}
	m.cache.Add(key, tex)
	return tex, nil
}

// Get returns the texture for an in-memory image, uploading it on first
// use. Images are keyed by name.
func (m *Manager) Get(img *Image, srgb bool) (*Texture2D, error) {
	key := cacheKey{img.Name, srgb}
	if v, ok := m.cache.Get(key); ok {
		return v.(*Texture2D), nil
	}
	tex, err := Upload(m.ctx, img, srgb)
	if err != nil {
		return nil, err
	}
	m.cache.Add(key, tex)
	return tex, nil
}

// Len returns the number of cached textures.
func (m *Manager) Len() int { return m.cache.Len() }

// Delete frees every texture the manager owns.
func (m *Manager) Delete() {
	m.cache.Purge()
	m.white.Delete()
	m.normal.Delete()
}
