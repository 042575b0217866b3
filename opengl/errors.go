package opengl

import (
	"errors"
	"fmt"
	"strings"

	"glsafe/driver"
	"glsafe/glsl"
)

// ErrDefaultFramebufferInUse is returned by Context.DefaultFramebuffer while
// another handle to the default framebuffer is live.
var ErrDefaultFramebufferInUse = errors.New("opengl: default framebuffer already in use")

// VersionError reports a native context older than OpenGL 3.3.
type VersionError struct {
	Major, Minor int
	Version      string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("opengl: need OpenGL 3.3, context is %d.%d (%q)", e.Major, e.Minor, e.Version)
}

// CompileError carries the driver's log for a shader stage that failed to
// compile.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: compile failed: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError carries the driver's log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "program: link failed: " + strings.TrimSpace(e.Log)
}

// TypeMismatch is one identifier whose Go declaration disagrees with the
// type the shader compiler reports for it.
type TypeMismatch struct {
	Identifier string
	Declared   glsl.Type
	Reflected  glsl.Type
}

func (m TypeMismatch) String() string {
	return fmt.Sprintf("%s: declared %s, shader has %s", m.Identifier, m.Declared, m.Reflected)
}

// TypeCheckError is returned when a program links but its reflected
// attribute or uniform types do not match the Go types it was built for.
type TypeCheckError struct {
	Mismatches []TypeMismatch
}

func (e *TypeCheckError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = m.String()
	}
	return "program: type check failed: " + strings.Join(parts, "; ")
}

// Has reports whether the error lists a mismatch for identifier.
func (e *TypeCheckError) Has(identifier string) bool {
	for _, m := range e.Mismatches {
		if m.Identifier == identifier {
			return true
		}
	}
	return false
}

// DimensionError reports a texture or renderbuffer request beyond the
// driver's limits.
type DimensionError struct {
	Resource   string
	Requested  Size
	Max        Size
	Samples    int
	MaxSamples int
}

func (e *DimensionError) Error() string {
	if e.Samples > e.MaxSamples {
		return fmt.Sprintf("opengl: %s: %d samples requested, driver maximum is %d", e.Resource, e.Samples, e.MaxSamples)
	}
	return fmt.Sprintf("opengl: %s: size %v exceeds driver maximum %v", e.Resource, e.Requested, e.Max)
}

// IncompleteFramebufferError reports the status of a framebuffer that
// cannot be rendered to.
type IncompleteFramebufferError struct {
	Status driver.Enum
}

func (e *IncompleteFramebufferError) Error() string {
	return fmt.Sprintf("opengl: framebuffer incomplete: %s (0x%X)", framebufferStatusName(e.Status), e.Status)
}

func framebufferStatusName(s driver.Enum) string {
	switch s {
	case driver.FRAMEBUFFER_UNDEFINED:
		return "undefined"
	case driver.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case driver.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case driver.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case driver.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case driver.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported"
	case driver.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "incomplete multisample"
	case driver.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "incomplete layer targets"
	}
	return "unknown status"
}
