package fakegl

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"glsafe/driver"
	"glsafe/glsl"
)

type variable struct {
	Qualifier string // "uniform", "in" or "out"
	Type      glsl.Type
	Name      string
	Size      int32
	Active    bool
}

type shader struct {
	stage    uint32
	source   string
	compiled bool
	log      string
	vars     []variable
}

type program struct {
	shaders    []uint32
	linked     bool
	log        string
	attribBind map[string]uint32
	fragBind   map[string]uint32

	attribs   []variable
	attribLoc map[string]int32
	uniforms  []variable
	outputs   map[string]int32
	values    map[int32]UniformUpload
}

var (
	commentRE = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)
	declRE    = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective|centroid)\s+)*(uniform|in|out)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	mainRE    = regexp.MustCompile(`\bvoid\s+main\s*\(`)
	errorRE   = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)
)

// scan compiles a shader: it strips comments, extracts top-level uniform and
// in/out declarations and decides which of them are used.
func scan(src string) ([]variable, string) {
	code := commentRE.ReplaceAllString(src, "")
	if !strings.Contains(code, "#version") {
		return nil, "0:1: error: missing #version directive"
	}
	if m := errorRE.FindStringSubmatch(code); m != nil {
		return nil, "0:1: error: #error " + strings.TrimSpace(m[1])
	}
	if !mainRE.MatchString(code) {
		return nil, "0:0: error: no definition of main"
	}
	var vars []variable
	for _, m := range declRE.FindAllStringSubmatchIndex(code, -1) {
		qual := code[m[2]:m[3]]
		typeName := code[m[4]:m[5]]
		name := code[m[6]:m[7]]
		size := int32(1)
		if m[8] >= 0 {
			n, _ := strconv.Atoi(code[m[8]:m[9]])
			size = int32(n)
		}
		t, ok := glsl.Parse(typeName)
		if !ok {
			return nil, fmt.Sprintf("0:1: error: unknown type %q for %q", typeName, name)
		}
		rest := code[:m[0]] + code[m[1]:]
		used := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`).MatchString(rest)
		vars = append(vars, variable{Qualifier: qual, Type: t, Name: name, Size: size, Active: used})
	}
	return vars, ""
}

func (f *GL) CreateShader(stage uint32) uint32 {
	s := f.gen()
	f.record("CreateShader", stage, s)
	f.shaders[s] = &shader{stage: stage}
	return s
}

func (f *GL) DeleteShader(s uint32) {
	f.record("DeleteShader", s)
	delete(f.shaders, s)
}

func (f *GL) ShaderSource(s uint32, src string) {
	f.record("ShaderSource", s)
	if sh := f.shaders[s]; sh != nil {
		sh.source = src
	}
}

func (f *GL) CompileShader(s uint32) {
	f.record("CompileShader", s)
	sh := f.shaders[s]
	if sh == nil {
		f.fail(driver.INVALID_VALUE)
		return
	}
	sh.vars, sh.log = scan(sh.source)
	sh.compiled = sh.log == ""
}

func (f *GL) GetShaderiv(s uint32, pname uint32) int32 {
	sh := f.shaders[s]
	if sh == nil {
		f.fail(driver.INVALID_VALUE)
		return 0
	}
	switch pname {
	case driver.COMPILE_STATUS:
		if sh.compiled {
			return 1
		}
		return 0
	case driver.INFO_LOG_LENGTH:
		if sh.log == "" {
			return 0
		}
		return int32(len(sh.log) + 1)
	}
	return 0
}

func (f *GL) GetShaderInfoLog(s uint32) string {
	if sh := f.shaders[s]; sh != nil {
		return sh.log
	}
	return ""
}

func (f *GL) CreateProgram() uint32 {
	p := f.gen()
	f.record("CreateProgram", p)
	f.programs[p] = &program{
		attribBind: make(map[string]uint32),
		fragBind:   make(map[string]uint32),
	}
	return p
}

func (f *GL) DeleteProgram(p uint32) {
	f.record("DeleteProgram", p)
	delete(f.programs, p)
	if f.program == p {
		f.program = 0
	}
}

func (f *GL) AttachShader(p, s uint32) {
	f.record("AttachShader", p, s)
	if prog := f.programs[p]; prog != nil {
		prog.shaders = append(prog.shaders, s)
	}
}

func (f *GL) DetachShader(p, s uint32) {
	f.record("DetachShader", p, s)
	if prog := f.programs[p]; prog != nil {
		prog.shaders = slices.DeleteFunc(prog.shaders, func(x uint32) bool { return x == s })
	}
}

func (f *GL) BindAttribLocation(p, index uint32, name string) {
	f.record("BindAttribLocation", p, index, name)
	if prog := f.programs[p]; prog != nil {
		prog.attribBind[name] = index
	}
}

func (f *GL) BindFragDataLocation(p, color uint32, name string) {
	f.record("BindFragDataLocation", p, color, name)
	if prog := f.programs[p]; prog != nil {
		prog.fragBind[name] = color
	}
}

func (f *GL) LinkProgram(p uint32) {
	f.record("LinkProgram", p)
	prog := f.programs[p]
	if prog == nil {
		f.fail(driver.INVALID_VALUE)
		return
	}
	prog.linked = false
	prog.log = link(f, prog)
	prog.linked = prog.log == ""
}

// link resolves the interface between stages. It returns the info log, empty
// on success.
func link(f *GL, prog *program) string {
	stages := make(map[uint32]*shader)
	for _, s := range prog.shaders {
		sh := f.shaders[s]
		if sh == nil || !sh.compiled {
			return "error: attached shader is not compiled"
		}
		stages[sh.stage] = sh
	}
	vs, fs := stages[driver.VERTEX_SHADER], stages[driver.FRAGMENT_SHADER]
	if vs == nil || fs == nil {
		return "error: program needs a vertex and a fragment shader"
	}

	// Stage outputs must feed the next stage's inputs.
	producer := vs
	if gs := stages[driver.GEOMETRY_SHADER]; gs != nil {
		producer = gs
	}
	for _, in := range fs.vars {
		if in.Qualifier != "in" || !in.Active {
			continue
		}
		i := slices.IndexFunc(producer.vars, func(v variable) bool {
			return v.Qualifier == "out" && v.Name == in.Name
		})
		if i < 0 {
			return fmt.Sprintf("error: fragment input %q is not written by the previous stage", in.Name)
		}
		if producer.vars[i].Type != in.Type {
			return fmt.Sprintf("error: type mismatch for varying %q", in.Name)
		}
	}

	// Uniforms are shared by name across stages.
	prog.uniforms = nil
	seen := make(map[string]int)
	for _, stage := range []uint32{driver.VERTEX_SHADER, driver.GEOMETRY_SHADER, driver.FRAGMENT_SHADER} {
		sh := stages[stage]
		if sh == nil {
			continue
		}
		for _, v := range sh.vars {
			if v.Qualifier != "uniform" {
				continue
			}
			if i, ok := seen[v.Name]; ok {
				if prog.uniforms[i].Type != v.Type {
					return fmt.Sprintf("error: uniform %q declared with different types", v.Name)
				}
				prog.uniforms[i].Active = prog.uniforms[i].Active || v.Active
				continue
			}
			seen[v.Name] = len(prog.uniforms)
			prog.uniforms = append(prog.uniforms, v)
		}
	}
	prog.uniforms = slices.DeleteFunc(prog.uniforms, func(v variable) bool { return !v.Active })

	// Vertex inputs: explicit bindings first, then the lowest free slots.
	prog.attribs = nil
	prog.attribLoc = make(map[string]int32)
	used := make(map[int32]bool)
	for _, v := range vs.vars {
		if v.Qualifier != "in" || !v.Active {
			continue
		}
		prog.attribs = append(prog.attribs, v)
		if loc, ok := prog.attribBind[v.Name]; ok {
			prog.attribLoc[v.Name] = int32(loc)
			for i := int32(0); i < slotsOf(v.Type); i++ {
				used[int32(loc)+i] = true
			}
		}
	}
	for _, v := range prog.attribs {
		if _, ok := prog.attribLoc[v.Name]; ok {
			continue
		}
		loc := int32(0)
		for used[loc] {
			loc++
		}
		prog.attribLoc[v.Name] = loc
		for i := int32(0); i < slotsOf(v.Type); i++ {
			used[loc+i] = true
		}
	}

	// Fragment outputs: a lone output defaults to color 0.
	prog.outputs = make(map[string]int32)
	var outs []variable
	for _, v := range fs.vars {
		if v.Qualifier == "out" {
			outs = append(outs, v)
		}
	}
	for _, v := range outs {
		if loc, ok := prog.fragBind[v.Name]; ok {
			prog.outputs[v.Name] = int32(loc)
		} else if len(outs) == 1 {
			prog.outputs[v.Name] = 0
		} else {
			prog.outputs[v.Name] = -1
		}
	}
	prog.values = make(map[int32]UniformUpload)
	return ""
}

func slotsOf(t glsl.Type) int32 {
	if t.IsMatrix() {
		return int32(t.Cols)
	}
	return 1
}

func (f *GL) GetProgramiv(p uint32, pname uint32) int32 {
	prog := f.programs[p]
	if prog == nil {
		f.fail(driver.INVALID_VALUE)
		return 0
	}
	switch pname {
	case driver.LINK_STATUS:
		if prog.linked {
			return 1
		}
		return 0
	case driver.INFO_LOG_LENGTH:
		if prog.log == "" {
			return 0
		}
		return int32(len(prog.log) + 1)
	case driver.ACTIVE_UNIFORMS:
		return int32(len(prog.uniforms))
	case driver.ACTIVE_ATTRIBUTES:
		return int32(len(prog.attribs))
	}
	return 0
}

func (f *GL) GetProgramInfoLog(p uint32) string {
	if prog := f.programs[p]; prog != nil {
		return prog.log
	}
	return ""
}

func (f *GL) GetActiveAttrib(p, index uint32) (string, int32, uint32) {
	prog := f.programs[p]
	if prog == nil || int(index) >= len(prog.attribs) {
		f.fail(driver.INVALID_VALUE)
		return "", 0, 0
	}
	v := prog.attribs[index]
	return v.Name, v.Size, v.Type.Enum()
}

func (f *GL) GetActiveUniform(p, index uint32) (string, int32, uint32) {
	prog := f.programs[p]
	if prog == nil || int(index) >= len(prog.uniforms) {
		f.fail(driver.INVALID_VALUE)
		return "", 0, 0
	}
	v := prog.uniforms[index]
	name := v.Name
	if v.Size > 1 {
		name += "[0]"
	}
	return name, v.Size, v.Type.Enum()
}

func (f *GL) GetAttribLocation(p uint32, name string) int32 {
	prog := f.programs[p]
	if prog == nil || !prog.linked {
		return -1
	}
	if loc, ok := prog.attribLoc[name]; ok {
		return loc
	}
	return -1
}

// GetUniformLocation returns the index of the uniform in the active list.
// Inactive uniforms have no location.
func (f *GL) GetUniformLocation(p uint32, name string) int32 {
	prog := f.programs[p]
	if prog == nil || !prog.linked {
		return -1
	}
	for i, v := range prog.uniforms {
		if v.Name == name {
			return int32(i)
		}
	}
	return -1
}

func (f *GL) GetFragDataLocation(p uint32, name string) int32 {
	prog := f.programs[p]
	if prog == nil || !prog.linked {
		return -1
	}
	if loc, ok := prog.outputs[name]; ok {
		return loc
	}
	return -1
}

func (f *GL) current() *program {
	prog := f.programs[f.program]
	if prog == nil {
		f.fail(driver.INVALID_OPERATION)
	}
	return prog
}

func (f *GL) Uniformfv(location int32, n int, v []float32) {
	f.record("Uniformfv", location, n, slices.Clone(v))
	if prog := f.current(); prog != nil && location >= 0 {
		prog.values[location] = UniformUpload{Kind: "f", N: n, F: slices.Clone(v)}
	}
}

func (f *GL) Uniformiv(location int32, n int, v []int32) {
	f.record("Uniformiv", location, n, slices.Clone(v))
	if prog := f.current(); prog != nil && location >= 0 {
		prog.values[location] = UniformUpload{Kind: "i", N: n, I: slices.Clone(v)}
	}
}

func (f *GL) Uniformuiv(location int32, n int, v []uint32) {
	f.record("Uniformuiv", location, n, slices.Clone(v))
	if prog := f.current(); prog != nil && location >= 0 {
		prog.values[location] = UniformUpload{Kind: "ui", N: n, U: slices.Clone(v)}
	}
}

func (f *GL) UniformMatrixfv(location int32, cols, rows int, v []float32) {
	f.record("UniformMatrixfv", location, cols, rows, slices.Clone(v))
	if prog := f.current(); prog != nil && location >= 0 {
		prog.values[location] = UniformUpload{Kind: "m", N: cols, Rows: rows, F: slices.Clone(v)}
	}
}

// Uniform returns the last value uploaded to a named uniform of a program.
func (f *GL) Uniform(p uint32, name string) (UniformUpload, bool) {
	prog := f.programs[p]
	if prog == nil {
		return UniformUpload{}, false
	}
	loc := f.GetUniformLocation(p, name)
	v, ok := prog.values[loc]
	return v, ok
}
