package scene

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"glsafe/core"
	"glsafe/math"
	"glsafe/textures"
)

// LoadOBJ reads a Wavefront .obj file and returns one node per object or
// group. Polygons are fan triangulated, missing normals are smoothed from
// the faces and materials come from the referenced .mtl files. A material
// library or texture that fails to load is skipped with a warning.
func LoadOBJ(path string) ([]*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj open %q: %w", path, err)
	}
	defer f.Close()
	nodes, err := parseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return nodes, nil
}

type objParser struct {
	dir       string
	positions []math.Vec3
	normals   []math.Vec3
	uvs       []math.Vec2
	materials map[string]*Material

	name     string
	material *Material
	vertices []core.Vertex
	indices  []uint32
	seen     map[string]uint32
	smooth   bool // some vertex lacks a normal
	nodes    []*Node
}

func parseOBJ(r io.Reader, dir string) ([]*Node, error) {
	p := &objParser{dir: dir, name: "default", materials: make(map[string]*Material), seen: make(map[string]uint32)}
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		if err := p.line(strings.Fields(scanner.Text())); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	p.flush()
	if len(p.nodes) == 0 {
		return nil, fmt.Errorf("no faces")
	}
	return p.nodes, nil
}

func (p *objParser) line(fields []string) error {
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, math.Vec3{X: v[0], Y: v[1], Z: v[2]}.Normalize())
	case "vt":
		v, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		// OBJ puts v = 0 at the bottom of the image.
		p.uvs = append(p.uvs, math.Vec2{X: v[0], Y: 1 - v[1]})
	case "f":
		return p.face(args)
	case "o", "g":
		p.flush()
		p.name = "unnamed"
		if len(args) > 0 {
			p.name = strings.Join(args, " ")
		}
	case "usemtl":
		if len(args) == 0 {
			return fmt.Errorf("usemtl without a name")
		}
		m, ok := p.materials[args[0]]
		if !ok {
			slog.Warn("obj: unknown material", "material", args[0])
		}
		if m != p.material {
			p.flush()
			p.material = m
		}
	case "mtllib":
		for _, lib := range args {
			if err := p.loadMTL(filepath.Join(p.dir, lib)); err != nil {
				slog.Warn("obj: skipping material library", "file", lib, "err", err)
			}
		}
	}
	return nil
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face with %d vertices", len(args))
	}
	corners := make([]uint32, len(args))
	for i, ref := range args {
		idx, ok := p.seen[ref]
		if !ok {
			v, hasNormal, err := p.vertex(ref)
			if err != nil {
				return err
			}
			p.smooth = p.smooth || !hasNormal
			idx = uint32(len(p.vertices))
			p.vertices = append(p.vertices, v)
			p.seen[ref] = idx
		}
		corners[i] = idx
	}
	for i := 2; i < len(corners); i++ {
		p.indices = append(p.indices, corners[0], corners[i-1], corners[i])
	}
	return nil
}

// vertex resolves a "v", "v/vt", "v//vn" or "v/vt/vn" reference. Negative
// indices count back from the latest element.
func (p *objParser) vertex(ref string) (core.Vertex, bool, error) {
	v := core.Vertex{Color: core.ColorWhite}
	parts := strings.Split(ref, "/")
	i, err := objIndex(parts[0], len(p.positions))
	if err != nil {
		return v, false, fmt.Errorf("vertex %q: %w", ref, err)
	}
	v.Position = p.positions[i]
	if len(parts) > 1 && parts[1] != "" {
		i, err := objIndex(parts[1], len(p.uvs))
		if err != nil {
			return v, false, fmt.Errorf("texture coordinate %q: %w", ref, err)
		}
		v.UV = p.uvs[i]
	}
	if len(parts) > 2 && parts[2] != "" {
		i, err := objIndex(parts[2], len(p.normals))
		if err != nil {
			return v, false, fmt.Errorf("normal %q: %w", ref, err)
		}
		v.Normal = p.normals[i]
		return v, true, nil
	}
	return v, false, nil
}

func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i += n + 1
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("index %s out of range", s)
	}
	return i - 1, nil
}

// flush turns the faces read so far into a node.
func (p *objParser) flush() {
	if len(p.indices) > 0 {
		m := NewMesh(p.name, p.vertices, p.indices)
		if p.smooth {
			smoothNormals(m)
		}
		ComputeTangents(m)
		if p.material != nil {
			m.Material = p.material
		}
		n := NewNode(p.name)
		n.Mesh = m
		p.nodes = append(p.nodes, n)
	}
	p.vertices, p.indices, p.smooth = nil, nil, false
	clear(p.seen)
}

// smoothNormals replaces zero normals with the area-weighted average of the
// adjacent face normals.
func smoothNormals(m *Mesh) {
	sums := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Vertices[i0].Position, m.Vertices[i1].Position, m.Vertices[i2].Position
		n := b.Sub(a).Cross(c.Sub(a))
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}
	for i := range m.Vertices {
		if m.Vertices[i].Normal.LengthSqr() == 0 {
			m.Vertices[i].Normal = sums[i].Normalize()
		}
	}
}

func (p *objParser) loadMTL(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var cur *Material
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if fields[0] == "newmtl" {
			cur = DefaultMaterial()
			cur.Name = fields[1]
			p.materials[cur.Name] = cur
			continue
		}
		if cur == nil {
			continue
		}
		args := fields[1:]
		switch fields[0] {
		case "Kd":
			if v, err := parseFloats(args, 3); err == nil {
				cur.BaseColor.R, cur.BaseColor.G, cur.BaseColor.B = v[0], v[1], v[2]
			}
		case "Ke":
			if v, err := parseFloats(args, 3); err == nil {
				cur.Emissive = core.Color{R: v[0], G: v[1], B: v[2], A: 1}
			}
		case "Ns":
			// Shininess runs from 0 to 1000.
			if v, err := parseFloats(args, 1); err == nil {
				cur.Roughness = min(max(1-v[0]/1000, 0), 1)
			}
		case "Pm":
			if v, err := parseFloats(args, 1); err == nil {
				cur.Metallic = v[0]
			}
		case "Pr":
			if v, err := parseFloats(args, 1); err == nil {
				cur.Roughness = v[0]
			}
		case "d":
			if v, err := parseFloats(args, 1); err == nil {
				cur.BaseColor.A = v[0]
			}
		case "Tr":
			if v, err := parseFloats(args, 1); err == nil {
				cur.BaseColor.A = 1 - v[0]
			}
		case "map_Kd":
			cur.BaseColorMap = p.texture(args)
		case "map_Bump", "bump", "norm":
			cur.NormalMap = p.texture(args)
		}
	}
	return scanner.Err()
}

// texture loads the file named by the last argument of a map statement;
// map options come before it.
func (p *objParser) texture(args []string) *textures.Image {
	path := filepath.Join(p.dir, args[len(args)-1])
	img, err := textures.Load(path)
	if err != nil {
		slog.Warn("obj: skipping texture", "file", path, "err", err)
		return nil
	}
	return img
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
