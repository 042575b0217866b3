package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"glsafe/core"
	"glsafe/math"
	"glsafe/textures"
)

// LoadGLTF reads a .gltf or .glb file and returns its default scene's root
// nodes. Mesh primitives become meshes, metallic-roughness materials become
// Materials and base color and normal textures are decoded to images named
// "<path>#image<n>". Primitives and images that fail to load are skipped
// with a warning.
func LoadGLTF(path string) ([]*Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	l := &gltfLoader{doc: doc, path: path, images: make(map[int]*textures.Image)}

	materials := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = l.material(gm)
	}

	meshes := make([][]*Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := l.primitive(gm.Name, pi, prim)
			if err != nil {
				slog.Warn("gltf: skipping primitive", "file", path, "mesh", mi, "primitive", pi, "err", err)
				continue
			}
			if prim.Material != nil && *prim.Material < len(materials) {
				m.Material = materials[*prim.Material]
			}
			meshes[mi] = append(meshes[mi], m)
		}
	}

	nodes := make([]*Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		nodes[i] = l.node(i, gn, meshes)
	}
	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(nodes) {
				nodes[i].AddChild(nodes[c])
				hasParent[c] = true
			}
		}
	}

	var roots []*Node
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, r := range doc.Scenes[*doc.Scene].Nodes {
			if r < len(nodes) {
				roots = append(roots, nodes[r])
			}
		}
		return roots, nil
	}
	for i, n := range nodes {
		if !hasParent[i] {
			roots = append(roots, n)
		}
	}
	return roots, nil
}

type gltfLoader struct {
	doc    *gltf.Document
	path   string
	images map[int]*textures.Image
}

func (l *gltfLoader) material(gm *gltf.Material) *Material {
	m := DefaultMaterial()
	m.Name = gm.Name
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		f := pbr.BaseColorFactorOrDefault()
		m.BaseColor = core.Color{R: float32(f[0]), G: float32(f[1]), B: float32(f[2]), A: float32(f[3])}
		m.Metallic = float32(pbr.MetallicFactorOrDefault())
		m.Roughness = float32(pbr.RoughnessFactorOrDefault())
		if pbr.BaseColorTexture != nil {
			m.BaseColorMap = l.texture(pbr.BaseColorTexture.Index)
		}
	}
	if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
		m.NormalMap = l.texture(*gm.NormalTexture.Index)
	}
	e := gm.EmissiveFactor
	m.Emissive = core.Color{R: float32(e[0]), G: float32(e[1]), B: float32(e[2]), A: 1}
	return m
}

// texture decodes the source image of a glTF texture, once per image.
func (l *gltfLoader) texture(index int) *textures.Image {
	if index < 0 || index >= len(l.doc.Textures) || l.doc.Textures[index].Source == nil {
		return nil
	}
	src := *l.doc.Textures[index].Source
	if img, ok := l.images[src]; ok {
		return img
	}
	img, err := l.decodeImage(src)
	if err != nil {
		slog.Warn("gltf: skipping image", "file", l.path, "image", src, "err", err)
	}
	l.images[src] = img
	return img
}

func (l *gltfLoader) decodeImage(index int) (*textures.Image, error) {
	gi := l.doc.Images[index]
	name := fmt.Sprintf("%s#image%d", l.path, index)
	switch {
	case gi.BufferView != nil:
		raw, err := modeler.ReadBufferView(l.doc, l.doc.BufferViews[*gi.BufferView])
		if err != nil {
			return nil, err
		}
		return textures.DecodeBytes(name, raw)
	case gi.IsEmbeddedResource():
		raw, err := gi.MarshalData()
		if err != nil {
			return nil, err
		}
		return textures.DecodeBytes(name, raw)
	case gi.URI != "":
		img, err := textures.Load(filepath.Join(filepath.Dir(l.path), gi.URI))
		if err != nil {
			return nil, err
		}
		img.Name = name
		return img, nil
	}
	return nil, fmt.Errorf("image %d has no data", index)
}

func (l *gltfLoader) primitive(meshName string, index int, prim *gltf.Primitive) (*Mesh, error) {
	doc := l.doc
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	var normals [][3]float32
	if i, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if i, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("texture coordinates: %w", err)
		}
	}

	vertices := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3Up,
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			v.Normal = math.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		}
		if i < len(uvs) {
			// glTF puts the UV origin at the top left.
			v.UV = math.Vec2{X: uvs[i][0], Y: 1 - uvs[i][1]}
		}
		vertices[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	name := fmt.Sprintf("%s.%d", meshName, index)
	m := NewMesh(name, vertices, indices)
	switch prim.Mode {
	case gltf.PrimitiveLines:
		m.Mode = DrawLines
	case gltf.PrimitivePoints:
		m.Mode = DrawPoints
	case gltf.PrimitiveTriangles:
		ComputeTangents(m)
	default:
		return nil, fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}
	return m, nil
}

func (l *gltfLoader) node(index int, gn *gltf.Node, meshes [][]*Mesh) *Node {
	name := gn.Name
	if name == "" {
		name = fmt.Sprintf("node%d", index)
	}
	n := NewNode(name)
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	n.Transform = core.Transform{
		Position: math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		Rotation: math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		Scale:    math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	}
	if gn.Mesh == nil || *gn.Mesh >= len(meshes) {
		return n
	}
	prims := meshes[*gn.Mesh]
	if len(prims) == 1 {
		n.Mesh = prims[0]
		return n
	}
	for i, p := range prims {
		child := NewNode(fmt.Sprintf("%s.%d", name, i))
		child.Mesh = p
		n.AddChild(child)
	}
	return n
}
