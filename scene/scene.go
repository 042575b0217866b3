package scene

import (
	"glsafe/core"
	"glsafe/math"
)

// Light is the directional sun light. It casts the scene's shadows.
type Light struct {
	Direction math.Vec3
	Color     core.Color
	Intensity float32
}

// Scene is a node graph plus the camera and lighting that render it.
type Scene struct {
	Root    *Node
	Camera  *Camera
	Sun     Light
	Ambient core.Color
	// Sky colors the background cube map from horizon to zenith.
	SkyZenith  core.Color
	SkyHorizon core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root: NewNode("Root"),
		Sun: Light{
			Direction: math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize(),
			Color:     core.ColorWhite,
			Intensity: 3,
		},
		Ambient:    core.Color{R: 0.08, G: 0.09, B: 0.12, A: 1},
		SkyZenith:  core.Color{R: 0.18, G: 0.36, B: 0.75, A: 1},
		SkyHorizon: core.Color{R: 0.75, G: 0.82, B: 0.9, A: 1},
	}
}

func (s *Scene) AddNode(n *Node) { s.Root.AddChild(n) }

// VisibleNodes returns the visible nodes with meshes whose bounds intersect
// f. A hidden node hides its subtree. A nil frustum skips culling.
func (s *Scene) VisibleNodes(f *Frustum) []*Node {
	var out []*Node
	s.Root.Traverse(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh != nil && (f == nil || n.Mesh.Bounds.Transform(n.WorldMatrix()).Intersects(f)) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Bounds returns the world-space box around every mesh in the scene.
func (s *Scene) Bounds() AABB {
	var box AABB
	first := true
	s.Root.Traverse(func(n *Node) bool {
		if n.Mesh == nil || len(n.Mesh.Vertices) == 0 {
			return true
		}
		b := n.Mesh.Bounds.Transform(n.WorldMatrix())
		if first {
			box, first = b, false
		} else {
			box = box.extend(b.Min).extend(b.Max)
		}
		return true
	})
	return box
}

// NewDemoScene builds a ground plane with a few lit primitives.
func NewDemoScene(aspect float32) *Scene {
	s := NewScene()
	cam := NewCamera(1.0472, aspect, 0.1, 200)
	cam.Position = math.Vec3{X: 0, Y: 3, Z: 7}
	cam.LookAt(math.Vec3{Y: 0.5})
	s.Camera = cam

	ground := NewNode("Ground")
	ground.Mesh = CreatePlane(20, 20, 4)
	ground.Mesh.Material = NewMaterial("ground", core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, 0, 0.9)
	s.AddNode(ground)

	shapes := []struct {
		name string
		mesh *Mesh
		pos  math.Vec3
		mat  *Material
	}{
		{"Cube", CreateCube(1), math.Vec3{X: -2, Y: 0.5}, NewMaterial("red", core.Color{R: 0.8, G: 0.1, B: 0.1, A: 1}, 0, 0.4)},
		{"Sphere", CreateSphere(0.6, 32, 16), math.Vec3{Y: 0.6}, NewMaterial("gold", core.Color{R: 1, G: 0.77, B: 0.34, A: 1}, 1, 0.3)},
		{"Torus", CreateTorus(0.5, 0.2, 32, 16), math.Vec3{X: 2, Y: 0.7}, NewMaterial("teal", core.Color{R: 0.1, G: 0.6, B: 0.6, A: 1}, 0, 0.2)},
	}
	for _, sh := range shapes {
		n := NewNode(sh.name)
		n.Mesh = sh.mesh
		n.Mesh.Material = sh.mat
		n.SetPosition(sh.pos)
		s.AddNode(n)
	}
	return s
}
