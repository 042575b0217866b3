package textures

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"glsafe/opengl"
)

const (
	ddsMagic      = "DDS "
	ddsHeaderSize = 124

	ddsdMipMapCount = 0x20000
	ddpfFourCC      = 0x4
	ddsCaps2Cubemap = 0x200
	ddsCaps2Volume  = 0x200000
)

var ErrNotDDS = errors.New("not a DDS file")

// DDS is a block-compressed 2D texture read from a DirectDraw Surface file.
// Levels are kept in file order, top row of blocks first.
type DDS struct {
	Name   string
	FourCC string
	Format opengl.Format
	Width  int
	Height int
	Levels [][]byte
}

func LoadDDS(path string) (*DDS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()
	d, err := ParseDDS(path, f)
	if err != nil {
		return nil, fmt.Errorf("parse texture %q: %w", path, err)
	}
	return d, nil
}

// ParseDDS reads a DDS stream holding DXT1/3/5 or ATI1/ATI2 (BC4/BC5)
// data. Cube maps, volumes, DX10 headers and uncompressed surfaces are
// rejected. A file announcing more mip levels than it holds keeps the
// complete ones.
func ParseDDS(name string, r io.Reader) (*DDS, error) {
	var head [4 + ddsHeaderSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDDS, err)
	}
	if string(head[:4]) != ddsMagic {
		return nil, ErrNotDDS
	}
	h := head[4:]
	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(h[off:]) }
	if u32(0) != ddsHeaderSize || u32(72) != 32 {
		return nil, fmt.Errorf("%w: bad header size", ErrNotDDS)
	}
	if u32(108)&(ddsCaps2Cubemap|ddsCaps2Volume) != 0 {
		return nil, errors.New("cube map and volume DDS files are not supported")
	}
	if u32(76)&ddpfFourCC == 0 {
		return nil, errors.New("uncompressed DDS files are not supported")
	}

	d := &DDS{
		Name:   name,
		FourCC: string(h[80:84]),
		Height: int(u32(8)),
		Width:  int(u32(12)),
	}
	format, ok := opengl.FormatForFourCC(d.FourCC)
	if !ok {
		return nil, fmt.Errorf("unsupported DDS FourCC %q", d.FourCC)
	}
	d.Format = format
	if d.Width < 1 || d.Height < 1 {
		return nil, fmt.Errorf("invalid DDS size %dx%d", d.Width, d.Height)
	}

	levels := 1
	if u32(4)&ddsdMipMapCount != 0 && u32(24) > 1 {
		levels = int(u32(24))
	}
	lw, lh := d.Width, d.Height
	for i := 0; i < levels; i++ {
		buf := make([]byte, format.ImageBytes(opengl.Size2D(lw, lh)))
		if _, err := io.ReadFull(r, buf); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("DDS base level: %w", err)
			}
			break
		}
		d.Levels = append(d.Levels, buf)
		if lw == 1 && lh == 1 {
			break
		}
		lw, lh = max(1, lw/2), max(1, lh/2)
	}
	return d, nil
}
