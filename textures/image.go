package textures

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a tightly packed RGBA8 image. Row 0 is the bottom row, the order
// glTexImage2D expects.
type Image struct {
	Name   string
	Width  int
	Height int
	Pix    []byte
}

// NewImage allocates a transparent black image.
func NewImage(name string, width, height int) *Image {
	return &Image{Name: name, Width: width, Height: height, Pix: make([]byte, width*height*4)}
}

// Load decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()
	img, err := Decode(path, f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return img, nil
}

// DecodeBytes decodes an encoded image held in memory, such as one embedded
// in a glTF binary.
func DecodeBytes(name string, data []byte) (*Image, error) {
	return Decode(name, bytes.NewReader(data))
}

func Decode(name string, r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(name, src), nil
}

// FromImage converts any image.Image to RGBA8, flipping it so the bottom
// row comes first.
func FromImage(name string, src image.Image) *Image {
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}
	img := &Image{Name: name, Width: b.Dx(), Height: b.Dy(), Pix: make([]byte, len(rgba.Pix))}
	row := 4 * img.Width
	for y := 0; y < img.Height; y++ {
		copy(img.Pix[(img.Height-1-y)*row:], rgba.Pix[y*rgba.Stride:y*rgba.Stride+row])
	}
	return img
}

// RGBA returns the image as an *image.RGBA with the top row first.
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	row := 4 * img.Width
	for y := 0; y < img.Height; y++ {
		copy(out.Pix[y*out.Stride:], img.Pix[(img.Height-1-y)*row:(img.Height-y)*row])
	}
	return out
}

// Resize returns a copy scaled to width×height with Catmull-Rom filtering.
func (img *Image) Resize(width, height int) *Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := img.RGBA()
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(img.Name, dst)
}

// FitWithin scales the image down, keeping its aspect ratio, until neither
// side exceeds limit. It returns img itself when it already fits.
func (img *Image) FitWithin(limit int) *Image {
	if img.Width <= limit && img.Height <= limit {
		return img
	}
	w, h := img.Width, img.Height
	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}
	return img.Resize(w, h)
}

// Set writes one pixel. y counts from the bottom row.
func (img *Image) Set(x, y int, c [4]uint8) {
	copy(img.Pix[(y*img.Width+x)*4:], c[:])
}

func (img *Image) At(x, y int) [4]uint8 {
	i := (y*img.Width + x) * 4
	return [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}
