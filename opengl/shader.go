package opengl

import (
	"fmt"

	"glsafe/driver"
)

// ShaderStage is a programmable pipeline stage.
type ShaderStage uint8

const (
	VertexStage ShaderStage = iota
	GeometryStage
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case GeometryStage:
		return "geometry"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", uint8(s))
}

func (s ShaderStage) enum() driver.Enum {
	switch s {
	case GeometryStage:
		return driver.GEOMETRY_SHADER
	case FragmentStage:
		return driver.FRAGMENT_SHADER
	}
	return driver.VERTEX_SHADER
}

// Shader is one compiled stage.
type Shader struct {
	object
	stage ShaderStage
}

// NewShader compiles src for stage. A compile failure returns a
// *CompileError carrying the driver log.
func NewShader(ctx *Context, stage ShaderStage, src string) (*Shader, error) {
	fns := ctx.fns
	s := &Shader{object: newObject(ctx, stage.String()+" shader", fns.CreateShader(stage.enum())), stage: stage}
	fns.ShaderSource(uint32(s.handle), src)
	fns.CompileShader(uint32(s.handle))
	if fns.GetShaderiv(uint32(s.handle), driver.COMPILE_STATUS) == 0 {
		log := fns.GetShaderInfoLog(uint32(s.handle))
		s.Delete()
		return nil, &CompileError{Stage: stage, Log: log}
	}
	if log := fns.GetShaderInfoLog(uint32(s.handle)); log != "" {
		ctx.log.Debug("shader compiled with messages", "stage", stage.String(), "log", log)
	}
	return s, nil
}

// Stage returns the stage the shader was compiled for.
func (s *Shader) Stage() ShaderStage { return s.stage }

// Delete frees the shader. Programs it was linked into are unaffected.
func (s *Shader) Delete() {
	h, ok := s.release()
	if !ok {
		return
	}
	s.ctx.fns.DeleteShader(uint32(h))
}
