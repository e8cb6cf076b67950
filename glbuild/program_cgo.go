//go:build !tinygo && cgo

package glbuild

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

func (k StageKind) glenum() (uint32, error) {
	switch k {
	case VertexStage:
		return gl.VERTEX_SHADER, nil
	case FragmentStage:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("invalid %s", k.String())
}

// CompileStage creates a shader object of the given kind and compiles source into it.
// On failure the compiler diagnostic is logged, the shader object deleted and a
// [*CompileError] returned with the zero Stage. It never panics on bad source.
func (bld *Builder) CompileStage(kind StageKind, source string) (Stage, error) {
	xtype, err := kind.glenum()
	if err != nil {
		return Stage{}, err
	}
	id := gl.CreateShader(xtype)
	if id == 0 {
		return Stage{}, glErrOrMessage("CreateShader returned zero id")
	}
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		diag := infoLog(logLength, func(n int32, dst *uint8) { gl.GetShaderInfoLog(id, n, nil, dst) })
		gl.DeleteShader(id)
		if diag == "" {
			diag = "no diagnostic from driver"
		}
		bld.logger().Error("shader compilation failed", "stage", kind.String(), "log", diag)
		return Stage{}, &CompileError{Kind: kind, Log: diag}
	}
	return Stage{id: id, kind: kind}, nil
}

var errInvalidStage = errors.New("invalid stage, did compilation fail?")

// LinkProgram links a vertex and fragment stage into a program.
// Invalid stages are rejected before any GL call is made. On link failure the
// linker diagnostic is logged, the program deleted and a [*LinkError] returned.
// The stages are detached after a successful link and may be deleted by the caller.
func (bld *Builder) LinkProgram(vertex, fragment Stage) (Program, error) {
	switch {
	case !vertex.Valid() || !fragment.Valid():
		return Program{}, errInvalidStage
	case vertex.kind != VertexStage:
		return Program{}, fmt.Errorf("want vertex stage, got %s", vertex.kind)
	case fragment.kind != FragmentStage:
		return Program{}, fmt.Errorf("want fragment stage, got %s", fragment.kind)
	}
	id := gl.CreateProgram()
	if id == 0 {
		return Program{}, glErrOrMessage("CreateProgram returned zero id")
	}
	gl.AttachShader(id, vertex.id)
	gl.AttachShader(id, fragment.id)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		diag := infoLog(logLength, func(n int32, dst *uint8) { gl.GetProgramInfoLog(id, n, nil, dst) })
		gl.DeleteProgram(id)
		if diag == "" {
			diag = "no diagnostic from driver"
		}
		bld.logger().Error("program linking failed", "log", diag)
		return Program{}, &LinkError{Log: diag}
	}
	gl.DetachShader(id, vertex.id)
	gl.DetachShader(id, fragment.id)
	return Program{id: id}, nil
}

// NewLitProgram compiles and links the Lambert lit mesh program with the given
// base color and resolves all its attribute and uniform locations.
// Compilation stops at the first failing step.
func (bld *Builder) NewLitProgram(baseColor ms3.Vec) (LitProgram, error) {
	vs, err := bld.CompileStage(VertexStage, VertexSource())
	if err != nil {
		return LitProgram{}, err
	}
	defer gl.DeleteShader(vs.id)
	fs, err := bld.CompileStage(FragmentStage, FragmentSource(baseColor))
	if err != nil {
		return LitProgram{}, err
	}
	defer gl.DeleteShader(fs.id)
	prog, err := bld.LinkProgram(vs, fs)
	if err != nil {
		return LitProgram{}, err
	}
	lit := LitProgram{Program: prog}
	for _, u := range []struct {
		dst  *int32
		name string
	}{
		{&lit.Matrix, UniformMatrix},
		{&lit.NormalMatrix, UniformNormalMatrix},
		{&lit.LightDirection, UniformLightDirection},
	} {
		*u.dst, err = prog.UniformLocation(u.name)
		if err != nil {
			gl.DeleteProgram(prog.id)
			return LitProgram{}, err
		}
	}
	lit.Position, err = prog.AttribLocation(AttribPosition)
	if err == nil {
		lit.Normal, err = prog.AttribLocation(AttribNormal)
	}
	if err != nil {
		gl.DeleteProgram(prog.id)
		return LitProgram{}, err
	}
	return lit, nil
}

// Use installs the program as part of the current rendering state.
func (p Program) Use() {
	gl.UseProgram(p.id)
}

// UniformLocation returns the location of an active uniform.
func (p Program) UniformLocation(name string) (int32, error) {
	if p.id == 0 {
		return -1, errZeroProgram
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(nullTerminate(name)))
	if loc < 0 {
		return -1, fmt.Errorf("uniform %q not found in program %d", strings.TrimSuffix(name, "\x00"), p.id)
	}
	return loc, nil
}

// AttribLocation returns the location of an active vertex attribute.
func (p Program) AttribLocation(name string) (uint32, error) {
	if p.id == 0 {
		return 0, errZeroProgram
	}
	loc := gl.GetAttribLocation(p.id, gl.Str(nullTerminate(name)))
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q not found in program %d", strings.TrimSuffix(name, "\x00"), p.id)
	}
	return uint32(loc), nil
}

func infoLog(length int32, get func(n int32, dst *uint8)) string {
	if length <= 0 {
		return ""
	}
	buf := make([]uint8, length)
	get(length, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n ")
}

func nullTerminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func glErrOrMessage(defaultMsg string) error {
	err := glgl.Err()
	if err == nil {
		return errors.New(defaultMsg)
	}
	return fmt.Errorf("%s: %w", defaultMsg, err)
}
