package opengl

import (
	"fmt"
	"strings"

	"glsafe/driver"
	"glsafe/glsl"
)

// ProgramSource holds the GLSL source of each stage. Geometry is optional.
type ProgramSource struct {
	Vertex   string
	Geometry string
	Fragment string
	// Instance is the layout of the per-instance attributes, or nil. Its
	// locations follow those of the vertex type.
	Instance *VertexLayout
}

// WarningKind classifies a Warning.
type WarningKind uint8

const (
	// UnboundInput is a vertex shader input that no vertex or instance
	// member feeds. It reads the attribute's current value.
	UnboundInput WarningKind = iota + 1
	// InactiveAttribute is a vertex or instance member the shader does
	// not read.
	InactiveAttribute
	// UnsetUniform is an active uniform absent from the Uniforms type. It
	// keeps its default value.
	UnsetUniform
	// InactiveUniform is a Uniforms member the linked program does not
	// use.
	InactiveUniform
	// MissingOutput is a color attachment no fragment output writes.
	MissingOutput
)

func (k WarningKind) String() string {
	switch k {
	case UnboundInput:
		return "unbound input"
	case InactiveAttribute:
		return "inactive attribute"
	case UnsetUniform:
		return "unset uniform"
	case InactiveUniform:
		return "inactive uniform"
	case MissingOutput:
		return "missing output"
	}
	return fmt.Sprintf("WarningKind(%d)", uint8(k))
}

// Warning is a disagreement between a program and its Go types that does
// not make drawing unsafe.
type Warning struct {
	Kind       WarningKind
	Identifier string
}

func (w Warning) String() string { return w.Kind.String() + " " + w.Identifier }

// programBase is the part of a Program that does not depend on its type
// parameters.
type programBase struct {
	object
	vertex      *VertexLayout
	instance    *VertexLayout
	uniforms    *UniformLayout
	attachments *AttachmentLayout
	slots       []uniformSlot
	warnings    []Warning
}

func (p *programBase) warn(k WarningKind, identifier string) {
	p.warnings = append(p.warnings, Warning{Kind: k, Identifier: identifier})
}

// attribute finds an input among the vertex and instance members and
// returns the location it was bound to.
func (p *programBase) attribute(name string) (VertexMember, int, bool) {
	if m, ok := p.vertex.member(name); ok {
		return m, m.Location, true
	}
	if p.instance != nil {
		if m, ok := p.instance.member(name); ok {
			return m, p.vertex.Slots + m.Location, true
		}
	}
	return VertexMember{}, 0, false
}

// Program is a linked program whose inputs are the vertex type V, whose
// uniforms are U and whose outputs are the attachments A. The reflected
// interface of the program has been checked against all three.
type Program[V any, U any, A any, PV interface {
	*V
	Vertex
}, PU interface {
	*U
	Uniforms
}, PA interface {
	*A
	Attachments
}] struct {
	programBase
}

// NewProgram compiles and links src and checks the result against V, U and
// A. Attribute locations and fragment output locations are bound before
// linking, so the shaders need no layout qualifiers.
//
// A stage that fails to compile returns a *CompileError, a failed link a
// *LinkError, and reflected types that differ from the Go declarations a
// *TypeCheckError listing every mismatch.
func NewProgram[V any, U any, A any, PV interface {
	*V
	Vertex
}, PU interface {
	*U
	Uniforms
}, PA interface {
	*A
	Attachments
}](ctx *Context, src ProgramSource) (*Program[V, U, A, PV, PU, PA], error) {
	vl := VertexLayoutOf[V, PV]()
	ul := UniformLayoutOf[U, PU]()
	al := CheckAttachments[A, PA]()
	slots := vl.Slots
	if src.Instance != nil {
		slots += src.Instance.Slots
	}
	if slots > ctx.limits.MaxVertexAttribs {
		panic(fmt.Sprintf("opengl: %s uses %d attribute locations, driver maximum is %d", vl.Type, slots, ctx.limits.MaxVertexAttribs))
	}

	var shaders []*Shader
	defer func() {
		for _, s := range shaders {
			s.Delete()
		}
	}()
	stages := []struct {
		stage ShaderStage
		src   string
	}{{VertexStage, src.Vertex}, {GeometryStage, src.Geometry}, {FragmentStage, src.Fragment}}
	for _, st := range stages {
		if st.src == "" {
			if st.stage == GeometryStage {
				continue
			}
			return nil, &CompileError{Stage: st.stage, Log: "no source"}
		}
		s, err := NewShader(ctx, st.stage, st.src)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, s)
	}

	fns := ctx.fns
	p := &Program[V, U, A, PV, PU, PA]{programBase{
		object:      newObject(ctx, "program", fns.CreateProgram()),
		vertex:      vl,
		instance:    src.Instance,
		uniforms:    ul,
		attachments: al,
	}}
	h := uint32(p.handle)
	for _, s := range shaders {
		fns.AttachShader(h, uint32(s.handle))
	}
	for _, m := range vl.Members {
		fns.BindAttribLocation(h, uint32(m.Location), m.Name)
	}
	if src.Instance != nil {
		for _, m := range src.Instance.Members {
			fns.BindAttribLocation(h, uint32(vl.Slots+m.Location), m.Name)
		}
	}
	for _, m := range al.Members {
		if m.IsColor() {
			fns.BindFragDataLocation(h, uint32(m.DrawBuffer), m.Name)
		}
	}
	fns.LinkProgram(h)
	for _, s := range shaders {
		fns.DetachShader(h, uint32(s.handle))
	}
	if fns.GetProgramiv(h, driver.LINK_STATUS) == 0 {
		log := fns.GetProgramInfoLog(h)
		p.Delete()
		return nil, &LinkError{Log: log}
	}
	if err := p.reflect(); err != nil {
		p.Delete()
		return nil, err
	}
	for _, w := range p.warnings {
		ctx.log.Warn("program interface", "program", uint32(p.handle), "kind", w.Kind.String(), "identifier", w.Identifier)
	}
	ctx.log.Debug("create", "kind", "program", "handle", uint32(p.handle),
		"vertex", vl.Type.String(), "uniforms", ul.Type.String(), "attachments", al.Type.String())
	return p, nil
}

// reflect compares the active interface of the linked program with the Go
// layouts, recording uniform locations and warnings.
func (p *programBase) reflect() error {
	fns := p.ctx.fns
	h := uint32(p.handle)
	var mismatches []TypeMismatch
	var moved []string

	seen := make(map[string]bool)
	n := int(fns.GetProgramiv(h, driver.ACTIVE_ATTRIBUTES))
	for i := range n {
		name, _, typ := fns.GetActiveAttrib(h, uint32(i))
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		m, loc, ok := p.attribute(name)
		if !ok {
			p.warn(UnboundInput, name)
			continue
		}
		seen[name] = true
		got, _ := glsl.FromEnum(typ)
		if want := m.Format.ShaderType(); got != want {
			mismatches = append(mismatches, TypeMismatch{Identifier: name, Declared: want, Reflected: got})
			continue
		}
		if actual := int(fns.GetAttribLocation(h, name)); actual != loc {
			moved = append(moved, fmt.Sprintf("attribute %q is at location %d, not %d", name, actual, loc))
		}
	}
	for _, l := range []*VertexLayout{p.vertex, p.instance} {
		if l == nil {
			continue
		}
		for _, m := range l.Members {
			if !seen[m.Name] {
				p.warn(InactiveAttribute, m.Name)
			}
		}
	}

	p.slots = make([]uniformSlot, len(p.uniforms.Members))
	for i := range p.slots {
		p.slots[i].location = -1
	}
	matched := make([]bool, len(p.slots))
	n = int(fns.GetProgramiv(h, driver.ACTIVE_UNIFORMS))
	for i := range n {
		name, _, typ := fns.GetActiveUniform(h, uint32(i))
		name = strings.TrimSuffix(name, "[0]")
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		idx := p.uniforms.member(name)
		if idx < 0 {
			p.warn(UnsetUniform, name)
			continue
		}
		matched[idx] = true
		got, _ := glsl.FromEnum(typ)
		if want := p.uniforms.Members[idx].Type; got != want {
			mismatches = append(mismatches, TypeMismatch{Identifier: name, Declared: want, Reflected: got})
			continue
		}
		p.slots[idx].location = fns.GetUniformLocation(h, name)
	}
	for i, m := range p.uniforms.Members {
		if !matched[i] {
			p.warn(InactiveUniform, m.Name)
		}
	}

	for _, m := range p.attachments.Members {
		if !m.IsColor() {
			continue
		}
		loc := int(fns.GetFragDataLocation(h, m.Name))
		switch {
		case loc < 0:
			p.warn(MissingOutput, m.Name)
		case loc != m.DrawBuffer:
			moved = append(moved, fmt.Sprintf("output %q writes color %d, not %d", m.Name, loc, m.DrawBuffer))
		}
	}

	if len(mismatches) > 0 {
		return &TypeCheckError{Mismatches: mismatches}
	}
	if len(moved) > 0 {
		return &LinkError{Log: strings.Join(moved, "\n")}
	}
	return nil
}

// Warnings returns the non-fatal interface disagreements found at link
// time.
func (p *Program[V, U, A, PV, PU, PA]) Warnings() []Warning { return p.warnings }

// UniformLocation returns the location of the named uniform member, or -1
// when the program does not use it.
func (p *Program[V, U, A, PV, PU, PA]) UniformLocation(name string) int32 {
	if i := p.uniforms.member(name); i >= 0 {
		return p.slots[i].location
	}
	return -1
}

// Delete frees the program.
func (p *Program[V, U, A, PV, PU, PA]) Delete() { p.programBase.delete() }

func (p *programBase) delete() {
	h, ok := p.release()
	if !ok {
		return
	}
	p.ctx.fns.DeleteProgram(uint32(h))
	p.ctx.program.forget(h)
}

// Primitive is the topology a draw assembles vertices into.
type Primitive uint8

const (
	Triangles Primitive = iota
	TriangleStrip
	TriangleFan
	Lines
	LineStrip
	LineLoop
	Points
)

func (m Primitive) enum() driver.Enum {
	switch m {
	case TriangleStrip:
		return driver.TRIANGLE_STRIP
	case TriangleFan:
		return driver.TRIANGLE_FAN
	case Lines:
		return driver.LINES
	case LineStrip:
		return driver.LINE_STRIP
	case LineLoop:
		return driver.LINE_LOOP
	case Points:
		return driver.POINTS
	}
	return driver.TRIANGLES
}

// DrawCall selects the range of a draw.
type DrawCall struct {
	Mode Primitive
	// First is the first vertex, or the first index of an indexed array.
	First int
	// Count is the number of vertices or indices; 0 draws everything from
	// First on.
	Count int
	// Instances is the instance count. 0 draws once, or once per element
	// of the instance buffer when the vertex array has one.
	Instances int
}

func layoutName(l *VertexLayout) string {
	if l == nil {
		return "none"
	}
	return l.Type.String()
}

// Draw renders vao into target with the given uniforms and render state. A
// nil state draws with the defaults; a nil uniforms pointer uses the zero
// value of U.
//
// Draw panics on any argument that would make the GL call undefined: an
// incomplete target, a range outside the vertex array, a texture that does
// not match its sampler type, or more textures than there are units.
func (p *Program[V, U, A, PV, PU, PA]) Draw(target RenderTarget[A], vao *VertexArray[V, PV], uniforms *U, state *RenderState, call DrawCall) {
	p.live()
	ctx := p.ctx
	if target.Context() != ctx {
		panic("opengl: draw target belongs to a different context")
	}
	vao.live()
	vao.sameContext(ctx, "vertex array")
	if vao.InstanceLayout() != p.instance {
		panic(fmt.Sprintf("opengl: vertex array instance layout %s does not match program instance layout %s",
			layoutName(vao.InstanceLayout()), layoutName(p.instance)))
	}

	n := vao.count()
	count := call.Count
	if count == 0 {
		count = n - call.First
	}
	if call.First < 0 || count < 0 || call.First+count > n {
		panic(fmt.Sprintf("opengl: draw range [%d, %d) outside %d elements", call.First, call.First+count, n))
	}
	instances := call.Instances
	perInstance := vao.instanceCount()
	switch {
	case instances < 0:
		panic(fmt.Sprintf("opengl: negative instance count %d", instances))
	case perInstance >= 0 && instances == 0:
		instances = perInstance
	case perInstance >= 0 && instances > perInstance:
		panic(fmt.Sprintf("opengl: %d instances drawn from an instance buffer of %d", instances, perInstance))
	}
	if count == 0 || (perInstance >= 0 && instances == 0) {
		return
	}

	target.bindDraw()
	vao.bind()
	ctx.program.set(p.handle)
	if uniforms == nil {
		uniforms = new(U)
	}
	p.uploadUniforms(PU(uniforms).UniformMembers)
	ctx.uploadRenderState(state.resolve(target.Size()))

	fns := ctx.fns
	mode := call.Mode.enum()
	if vao.Indexed() {
		typ, size := vao.indexFormat()
		if instances > 0 {
			fns.DrawElementsInstanced(mode, int32(count), typ, call.First*size, int32(instances))
		} else {
			fns.DrawElements(mode, int32(count), typ, call.First*size)
		}
		return
	}
	if instances > 0 {
		fns.DrawArraysInstanced(mode, int32(call.First), int32(count), int32(instances))
	} else {
		fns.DrawArrays(mode, int32(call.First), int32(count))
	}
}
