package textures

import (
	"github.com/chewxy/math32"

	"glsafe/core"
)

// RGBA8 converts a linear color to 8-bit channels, clamping to [0, 1].
func RGBA8(c core.Color) [4]uint8 {
	conv := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return [4]uint8{conv(c.R), conv(c.G), conv(c.B), conv(c.A)}
}

// Solid returns a 1x1 image.
func Solid(name string, c [4]uint8) *Image {
	img := NewImage(name, 1, 1)
	img.Set(0, 0, c)
	return img
}

// FlatNormal is a tangent-space normal map pointing straight out of the
// surface.
func FlatNormal() *Image { return Solid("flat-normal", [4]uint8{128, 128, 255, 255}) }

// Checker returns a size×size checkerboard of cells×cells squares. The
// bottom-left square is a.
func Checker(name string, size, cells int, a, b [4]uint8) *Image {
	img := NewImage(name, size, size)
	cell := max(size/max(cells, 1), 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// SkyGradient returns the six faces of a cube map, in the order +X, -X,
// +Y, -Y, +Z, -Z, shading from horizon at the equator to zenith straight
// up and ground below the horizon.
func SkyGradient(size int, zenith, horizon, ground core.Color) [6]*Image {
	var faces [6]*Image
	for f := range faces {
		img := NewImage("sky", size, size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				dy := cubeDirY(f, x, y, size)
				var c core.Color
				if dy >= 0 {
					c = lerpColor(horizon, zenith, dy)
				} else {
					c = lerpColor(horizon, ground, min(-dy*4, 1))
				}
				img.Set(x, y, RGBA8(c))
			}
		}
		faces[f] = img
	}
	return faces
}

// cubeDirY returns the normalized Y component of the direction through
// texel (x, y) of a cube face, following the GL face orientation table.
func cubeDirY(face, x, y, size int) float32 {
	s := 2*(float32(x)+0.5)/float32(size) - 1
	t := 2*(float32(y)+0.5)/float32(size) - 1
	var dir [3]float32
	switch face {
	case 0:
		dir = [3]float32{1, -t, -s}
	case 1:
		dir = [3]float32{-1, -t, s}
	case 2:
		dir = [3]float32{s, 1, t}
	case 3:
		dir = [3]float32{s, -1, -t}
	case 4:
		dir = [3]float32{s, -t, 1}
	default:
		dir = [3]float32{-s, -t, -1}
	}
	l := dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]
	return dir[1] / math32.Sqrt(l)
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
