package opengl

import (
	"fmt"
	"reflect"
	"strings"
)

// checkIdentifier panics on names that can never match a GLSL identifier
// declared by a shader. Names starting with gl_ are reserved for built-ins.
func checkIdentifier(name string) {
	if name == "" {
		panic("opengl: empty shader identifier")
	}
	if strings.HasPrefix(name, "gl_") {
		panic(fmt.Sprintf("opengl: identifier %q uses the reserved gl_ prefix", name))
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			panic(fmt.Sprintf("opengl: %q is not a GLSL identifier", name))
		}
	}
}

// fieldAddr returns the address and size of the value a registry member
// points at.
func fieldAddr(owner reflect.Type, name string, field any) (addr, size uintptr) {
	v := reflect.ValueOf(field)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		panic(fmt.Sprintf("opengl: %s member %q must be registered by pointer", owner, name))
	}
	return v.Pointer(), v.Type().Elem().Size()
}

// checkWithin panics unless [addr, addr+size) lies inside the struct at base.
func checkWithin(owner reflect.Type, name string, base, structSize, addr, size uintptr) {
	if addr < base || addr+size > base+structSize {
		panic(fmt.Sprintf("opengl: %s member %q does not point into the value being registered", owner, name))
	}
}

func checkDuplicate(owner reflect.Type, names []string, name string) {
	for _, n := range names {
		if n == name {
			panic(fmt.Sprintf("opengl: %s registers %q twice", owner, name))
		}
	}
}
