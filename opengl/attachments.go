package opengl

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"glsafe/driver"
	"glsafe/glsl"
)

// AttachmentImage selects the part of an image a framebuffer renders to.
// For cube maps Layer is the face index (+X, -X, +Y, -Y, +Z, -Z); for array
// and 3D textures it is the layer. Layered attaches every layer at once for
// layered rendering from a geometry shader.
type AttachmentImage struct {
	Image   Image
	Level   int
	Layer   int
	Layered bool
}

// Attachment member types. The type of a member decides the attachment
// point it occupies and the image formats it accepts.
type (
	// ColorAttachment accepts normalized and floating-point color formats.
	ColorAttachment AttachmentImage
	// IntColorAttachment accepts signed integer color formats.
	IntColorAttachment AttachmentImage
	// UintColorAttachment accepts unsigned integer color formats.
	UintColorAttachment AttachmentImage
	// DepthAttachment accepts depth and depth-stencil formats and attaches
	// to the depth point.
	DepthAttachment AttachmentImage
	// DepthStencilAttachment accepts depth-stencil formats and attaches to
	// the combined depth-stencil point.
	DepthStencilAttachment AttachmentImage
)

// Attachment is implemented by the attachment member types.
type Attachment interface {
	attachment() (*AttachmentImage, FormatClass)
}

func (a *ColorAttachment) attachment() (*AttachmentImage, FormatClass) {
	return (*AttachmentImage)(a), ClassColor
}

func (a *IntColorAttachment) attachment() (*AttachmentImage, FormatClass) {
	return (*AttachmentImage)(a), ClassInt
}

func (a *UintColorAttachment) attachment() (*AttachmentImage, FormatClass) {
	return (*AttachmentImage)(a), ClassUint
}

func (a *DepthAttachment) attachment() (*AttachmentImage, FormatClass) {
	return (*AttachmentImage)(a), ClassDepth
}

func (a *DepthStencilAttachment) attachment() (*AttachmentImage, FormatClass) {
	return (*AttachmentImage)(a), ClassDepthStencil
}

// Attachments is implemented, on the pointer receiver, by structs whose
// fields are the images of a framebuffer. AttachmentMembers must call r.Add
// once per field, in declaration order:
//
//	func (a *GBuffer) AttachmentMembers(r *opengl.AttachmentRegistry) {
//		r.Add("albedo", &a.Albedo)
//		r.Add("normal", &a.Normal)
//		r.Add("depth", &a.Depth)
//	}
//
// The n-th color member, counting only color members, is bound to
// COLOR_ATTACHMENT0+n and to the fragment output of the same name. At most
// one depth member is allowed; where it is declared does not matter.
type Attachments interface {
	AttachmentMembers(r *AttachmentRegistry)
}

// AttachmentMember is one member of an attachment layout.
type AttachmentMember struct {
	Name   string
	Offset uintptr
	Class  FormatClass
	// Point is the GL attachment point.
	Point driver.Enum
	// DrawBuffer is the color index, or -1 for the depth member.
	DrawBuffer int
}

// IsColor reports whether the member is a color attachment.
func (m AttachmentMember) IsColor() bool { return m.DrawBuffer >= 0 }

// OutputType is the fragment shader output type the member expects.
func (m AttachmentMember) OutputType() glsl.Type {
	return glsl.Vec(m.Class.SampleKind(), 4)
}

// AttachmentLayout is the static description of an Attachments type.
type AttachmentLayout struct {
	Type    reflect.Type
	Members []AttachmentMember
	Colors  int
	// Depth is the index in Members of the depth member, or -1.
	Depth int
}

func (l *AttachmentLayout) colorMember(n int) int {
	for i, m := range l.Members {
		if m.DrawBuffer == n {
			return i
		}
	}
	return -1
}

// AttachmentRegistry collects the members of an attachments struct.
type AttachmentRegistry struct {
	typ     reflect.Type
	base    uintptr
	size    uintptr
	members []AttachmentMember
	names   []string
	colors  int
	depth   int
}

// Add registers one member. a must point into the value whose
// AttachmentMembers method is running.
func (r *AttachmentRegistry) Add(name string, a Attachment) {
	checkIdentifier(name)
	checkDuplicate(r.typ, r.names, name)
	addr, size := fieldAddr(r.typ, name, a)
	checkWithin(r.typ, name, r.base, r.size, addr, size)
	_, class := a.attachment()
	m := AttachmentMember{Name: name, Offset: addr - r.base, Class: class, DrawBuffer: -1}
	switch class {
	case ClassDepth, ClassDepthStencil:
		if r.depth >= 0 {
			panic(fmt.Sprintf("opengl: %s declares more than one depth attachment (%q and %q)",
				r.typ, r.members[r.depth].Name, name))
		}
		r.depth = len(r.members)
		m.Point = driver.DEPTH_ATTACHMENT
		if class == ClassDepthStencil {
			m.Point = driver.DEPTH_STENCIL_ATTACHMENT
		}
	default:
		m.DrawBuffer = r.colors
		m.Point = driver.COLOR_ATTACHMENT0 + driver.Enum(r.colors)
		r.colors++
	}
	r.members = append(r.members, m)
	r.names = append(r.names, name)
}

var attachmentLayouts sync.Map // reflect.Type -> *AttachmentLayout

// CheckAttachments returns the layout of A, computing it on first use. It
// panics if A declares more than one depth member or registers members
// incorrectly, so a test calling it catches bad layouts before any context
// exists.
func CheckAttachments[A any, PA interface {
	*A
	Attachments
}]() *AttachmentLayout {
	t := reflect.TypeFor[A]()
	if l, ok := attachmentLayouts.Load(t); ok {
		return l.(*AttachmentLayout)
	}
	zero := new(A)
	r := &AttachmentRegistry{typ: t, base: uintptr(unsafe.Pointer(zero)), size: unsafe.Sizeof(*zero), depth: -1}
	PA(zero).AttachmentMembers(r)
	l := &AttachmentLayout{Type: t, Members: r.members, Colors: r.colors, Depth: r.depth}
	actual, _ := attachmentLayouts.LoadOrStore(t, l)
	return actual.(*AttachmentLayout)
}

// memberImage returns the member at index i of the attachments value a.
func memberImage[A any](l *AttachmentLayout, a *A, i int) *AttachmentImage {
	return (*AttachmentImage)(unsafe.Add(unsafe.Pointer(a), l.Members[i].Offset))
}

// memberAt resolves a pointer into a back to a member index, or -1.
func memberAt[A any](l *AttachmentLayout, a *A, p any) int {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return -1
	}
	addr := v.Pointer()
	base := uintptr(unsafe.Pointer(a))
	for i, m := range l.Members {
		if base+m.Offset == addr {
			return i
		}
	}
	return -1
}

// attachedSlot is what a framebuffer attachment point last had attached.
type attachedSlot struct {
	image   Image
	level   int
	layer   int
	layered bool
}

// checkAttachmentImage panics unless img may be attached as member m.
func checkAttachmentImage(ctx *Context, owner reflect.Type, m AttachmentMember, ai *AttachmentImage) {
	img := ai.Image
	if img == nil {
		panic(fmt.Sprintf("opengl: %s attachment %q has no image", owner, m.Name))
	}
	info := img.imageInfo()
	if info.deleted {
		panic(fmt.Sprintf("opengl: %s attachment %q: use of deleted image", owner, m.Name))
	}
	if info.ctx != ctx {
		panic(fmt.Sprintf("opengl: %s attachment %q belongs to a different context", owner, m.Name))
	}
	f := img.Format()
	ok := f.Class() == m.Class
	if m.Class == ClassDepth {
		ok = f.Class().Depth()
	}
	if !ok || f.Compressed() || !f.Renderable() {
		panic(fmt.Sprintf("opengl: %s attachment %q is a %s attachment, image format %s cannot be attached to it",
			owner, m.Name, m.Class, f))
	}
	if ai.Level < 0 || ai.Level >= img.Levels() {
		panic(fmt.Sprintf("opengl: %s attachment %q level %d not allocated (have %d)", owner, m.Name, ai.Level, img.Levels()))
	}
	k := info.kind
	switch {
	case ai.Layered && (k == nil || !k.hasLayers()):
		panic(fmt.Sprintf("opengl: %s attachment %q is layered but the image has no layers", owner, m.Name))
	case ai.Layered:
	case k != nil && k.hasLayers():
		if ai.Layer < 0 || ai.Layer >= k.layerCount(img.Size(), ai.Level) {
			panic(fmt.Sprintf("opengl: %s attachment %q layer %d out of range", owner, m.Name, ai.Layer))
		}
	case ai.Layer != 0:
		panic(fmt.Sprintf("opengl: %s attachment %q selects layer %d of an image without layers", owner, m.Name, ai.Layer))
	}
}

// hasLayers reports whether images of the kind can attach a single layer.
func (k *kindInfo) hasLayers() bool { return k.layered || k.dims == 3 || k.faces == 6 }

func (k *kindInfo) layerCount(base Size, level int) int {
	switch {
	case k.faces == 6:
		return 6
	case k.layered && k.dims == 2:
		return base.H
	}
	return k.levelSize(base, level).D
}

// attach issues the attach call for one member on the bound draw
// framebuffer. A nil image detaches.
func attach(fns driver.Functions, point driver.Enum, ai *AttachmentImage) {
	const fb = driver.DRAW_FRAMEBUFFER
	if ai == nil {
		fns.FramebufferTexture(fb, point, 0, 0)
		return
	}
	img := ai.Image
	h := uint32(img.Handle())
	k := img.imageInfo().kind
	lv := int32(ai.Level)
	switch {
	case k == nil:
		fns.FramebufferRenderbuffer(fb, point, driver.RENDERBUFFER, h)
	case ai.Layered || !k.hasLayers():
		fns.FramebufferTexture(fb, point, h, lv)
	case k.faces == 6:
		fns.FramebufferTexture2D(fb, point, driver.TEXTURE_CUBE_MAP_POSITIVE_X+driver.Enum(ai.Layer), h, lv)
	default:
		fns.FramebufferTextureLayer(fb, point, h, lv, int32(ai.Layer))
	}
}
