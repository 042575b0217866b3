package scene

import (
	"sync/atomic"

	"glsafe/core"
	"glsafe/math"
)

var nodeIDs atomic.Uint32

// Node is an element of the scene graph. Its world matrix is cached and
// recomputed after the node or one of its ancestors moves.
type Node struct {
	Name      string
	ID        uint32
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh
	Visible   bool

	dirty bool
	world math.Mat4
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		ID:        nodeIDs.Add(1),
		Transform: core.NewTransform(),
		Visible:   true,
		dirty:     true,
	}
}

// AddChild reparents child under n.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.markDirty()
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.markDirty()
			return
		}
	}
}

// WorldMatrix returns the node's transform composed with its ancestors'.
func (n *Node) WorldMatrix() math.Mat4 {
	if n.dirty {
		n.world = n.Transform.GetMatrix()
		if n.Parent != nil {
			n.world = n.world.Mul(n.Parent.WorldMatrix())
		}
		n.dirty = false
	}
	return n.world
}

func (n *Node) markDirty() {
	n.dirty = true
	for _, c := range n.Children {
		c.markDirty()
	}
}

func (n *Node) SetPosition(pos math.Vec3) {
	n.Transform.Position = pos
	n.markDirty()
}

func (n *Node) SetRotation(rot math.Quaternion) {
	n.Transform.Rotation = rot
	n.markDirty()
}

func (n *Node) SetScale(scale math.Vec3) {
	n.Transform.Scale = scale
	n.markDirty()
}

func (n *Node) Translate(delta math.Vec3) {
	n.SetPosition(n.Transform.Position.Add(delta))
}

func (n *Node) Rotate(axis math.Vec3, angle float32) {
	q := math.QuaternionFromAxisAngle(axis, angle)
	n.SetRotation(n.Transform.Rotation.Mul(q).Normalize())
}

// Traverse visits n and its descendants depth first, parents before
// children. Returning false from fn skips the node's children.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// Find returns the first node called name in n's subtree.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(c *Node) bool {
		if found == nil && c.Name == name {
			found = c
		}
		return found == nil
	})
	return found
}
