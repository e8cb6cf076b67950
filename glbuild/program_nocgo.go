//go:build tinygo || !cgo

package glbuild

import (
	"errors"

	"github.com/soypat/geometry/ms3"
)

var errNoCGO = errors.New("shader compilation requires CGo and is not supported on TinyGo")

func (bld *Builder) CompileStage(kind StageKind, source string) (Stage, error) {
	return Stage{}, errNoCGO
}

func (bld *Builder) LinkProgram(vertex, fragment Stage) (Program, error) {
	return Program{}, errNoCGO
}

func (bld *Builder) NewLitProgram(baseColor ms3.Vec) (LitProgram, error) {
	return LitProgram{}, errNoCGO
}

func (p Program) Use() {}

func (p Program) UniformLocation(name string) (int32, error) { return -1, errNoCGO }

func (p Program) AttribLocation(name string) (uint32, error) { return 0, errNoCGO }
