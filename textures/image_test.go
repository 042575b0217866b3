package textures

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"glsafe/core"
	"glsafe/opengl"
)

var (
	red  = [4]uint8{255, 0, 0, 255}
	blue = [4]uint8{0, 0, 255, 255}
)

// topLeftRed is a 2x2 image, red in its top-left pixel and blue elsewhere.
func topLeftRed() *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	src.Set(0, 0, color.RGBA{255, 0, 0, 255})
	return src
}

func TestFromImageFlipsRows(t *testing.T) {
	img := FromImage("t", topLeftRed())
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, red, img.At(0, 1))
	assert.Equal(t, blue, img.At(0, 0))

	back := img.RGBA()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, back.RGBAAt(0, 0))
}

func TestDecodeFormats(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer, image.Image) error{
		"png":  func(b *bytes.Buffer, m image.Image) error { return png.Encode(b, m) },
		"bmp":  func(b *bytes.Buffer, m image.Image) error { return bmp.Encode(b, m) },
		"tiff": func(b *bytes.Buffer, m image.Image) error { return tiff.Encode(b, m, nil) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf, topLeftRed()))
			img, err := DecodeBytes(name, buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, red, img.At(0, 1))
			assert.Equal(t, blue, img.At(1, 1))
		})
	}

	_, err := DecodeBytes("junk", []byte("not an image"))
	assert.Error(t, err)
}

func TestFitWithin(t *testing.T) {
	img := NewImage("wide", 8, 4)
	assert.Same(t, img, img.FitWithin(8))

	small := img.FitWithin(4)
	assert.Equal(t, 4, small.Width)
	assert.Equal(t, 2, small.Height)
	assert.Len(t, small.Pix, 4*2*4)

	tall := NewImage("tall", 1, 16).FitWithin(4)
	assert.Equal(t, 1, tall.Width)
	assert.Equal(t, 4, tall.Height)
}

func TestProcedural(t *testing.T) {
	c := Checker("c", 4, 2, red, blue)
	assert.Equal(t, red, c.At(0, 0))
	assert.Equal(t, blue, c.At(2, 0))
	assert.Equal(t, red, c.At(3, 3))

	assert.Equal(t, [4]uint8{255, 128, 0, 255}, RGBA8(core.Color{R: 2, G: 0.5, B: -1, A: 1}))

	zenith := core.Color{R: 0, G: 0, B: 1, A: 1}
	ground := core.Color{R: 0, G: 1, B: 0, A: 1}
	faces := SkyGradient(8, zenith, core.ColorWhite, ground)
	up := faces[2].At(4, 4)
	assert.Equal(t, uint8(255), up[2])
	assert.Less(t, up[0], uint8(10))
	assert.Equal(t, RGBA8(ground), faces[3].At(4, 4))
	// Row 0 of a side face looks up, the last row down at the ground.
	assert.Less(t, faces[0].At(4, 0)[1], faces[0].At(4, 7)[1])
	assert.Equal(t, uint8(255), faces[0].At(4, 7)[1])
}

// ddsFile builds a DXT1 file header followed by payload.
func ddsFile(fourCC string, w, h, mips int, payload []byte) []byte {
	head := make([]byte, 128)
	copy(head, "DDS ")
	le := binary.LittleEndian
	le.PutUint32(head[4:], 124)
	flags := uint32(0x1007)
	if mips > 0 {
		flags |= 0x20000
	}
	le.PutUint32(head[8:], flags)
	le.PutUint32(head[12:], uint32(h))
	le.PutUint32(head[16:], uint32(w))
	le.PutUint32(head[28:], uint32(mips))
	le.PutUint32(head[76:], 32)
	le.PutUint32(head[80:], 0x4)
	copy(head[84:], fourCC)
	return append(head, payload...)
}

func TestParseDDS(t *testing.T) {
	payload := make([]byte, 32+8+8+8)
	for i := range payload {
		payload[i] = byte(i)
	}
	d, err := ParseDDS("t.dds", bytes.NewReader(ddsFile("DXT1", 8, 8, 4, payload)))
	require.NoError(t, err)
	assert.Equal(t, "DXT1", d.FourCC)
	assert.Equal(t, opengl.DXT1A, d.Format)
	assert.Equal(t, 8, d.Width)
	require.Len(t, d.Levels, 4)
	assert.Len(t, d.Levels[0], 32)
	assert.Equal(t, byte(32), d.Levels[1][0])
	assert.Len(t, d.Levels[3], 8)

	// A short file keeps the complete levels.
	d, err = ParseDDS("t.dds", bytes.NewReader(ddsFile("DXT5", 8, 8, 4, make([]byte, 64+10))))
	require.NoError(t, err)
	assert.Len(t, d.Levels, 1)
	assert.Len(t, d.Levels[0], 64)
}

func TestParseDDSErrors(t *testing.T) {
	_, err := ParseDDS("x", bytes.NewReader([]byte("PNG")))
	assert.ErrorIs(t, err, ErrNotDDS)

	bad := ddsFile("DXT1", 4, 4, 0, make([]byte, 8))
	copy(bad, "DDX ")
	_, err = ParseDDS("x", bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrNotDDS)

	_, err = ParseDDS("x", bytes.NewReader(ddsFile("DX10", 4, 4, 0, make([]byte, 8))))
	assert.ErrorContains(t, err, `unsupported DDS FourCC "DX10"`)

	_, err = ParseDDS("x", bytes.NewReader(ddsFile("DXT1", 4, 4, 0, nil)))
	assert.ErrorContains(t, err, "DDS base level")
}
