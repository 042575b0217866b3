// Package opengl is a typed, state-tracking layer over the OpenGL 3.3 core
// profile.
//
// Application code describes its GPU data with plain Go structs. A vertex
// struct implements Vertex, a uniform struct implements Uniforms and a
// render-target struct implements Attachments. Each lists its fields once,
// in declaration order, through a registry:
//
//	type ColoredVertex struct {
//		Pos   math.Vec2
//		Color glsl.Unorm8x3
//	}
//
//	func (v *ColoredVertex) VertexMembers(r *opengl.VertexRegistry) {
//		r.Add("pos", &v.Pos)
//		r.Add("color", &v.Color)
//	}
//
// Declaration order is part of the contract. The n-th vertex member gets the
// next free attribute location, and the n-th color attachment member gets
// COLOR_ATTACHMENT0+n. Reordering fields changes what the GPU sees.
//
// A Program is linked against its vertex, uniform and attachment types. After
// linking it compares the types the GLSL compiler reflects with the Go
// declarations and refuses to build on any mismatch.
//
// All resources are created against a Context, which caches the bindings and
// pipeline state of one native GL context. A Context and everything created
// from it must only be used from the goroutine that owns the native context,
// normally one locked with runtime.LockOSThread.
package opengl
