// Package glbuild generates the GLSL sources of the icosahedron shading program
// and compiles and links them into GL programs.
package glbuild

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/soypat/geometry/ms3"
)

// VersionStr is the GLSL version directive every generated stage starts with.
const VersionStr = "#version 410 core\n"

// Names of the program's inputs. They must match the generated GLSL.
const (
	AttribPosition        = "position"
	AttribNormal          = "normal"
	UniformMatrix         = "u_matrix"
	UniformNormalMatrix   = "u_normalMatrix"
	UniformLightDirection = "u_lightDirection"
	// varyingNormal is the vertex to fragment stage interface.
	varyingNormal = "v_normal"
)

// StageKind is the pipeline phase a [Stage] runs in.
type StageKind uint8

const (
	VertexStage StageKind = iota + 1
	FragmentStage
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "StageKind(" + strconv.Itoa(int(k)) + ")"
}

// Stage is a compiled shader stage. The zero value is the failure marker
// returned alongside a non-nil error and is rejected by [Builder.LinkProgram].
type Stage struct {
	id   uint32
	kind StageKind
}

// ID returns the GL shader object name. Zero for an invalid stage.
func (s Stage) ID() uint32 { return s.id }

// Kind returns the pipeline phase of the stage.
func (s Stage) Kind() StageKind { return s.kind }

// Valid reports whether the stage was successfully compiled.
func (s Stage) Valid() bool { return s.id != 0 }

// Program is a linked GL program. The zero value is the failure marker
// returned alongside a non-nil error.
type Program struct {
	id uint32
}

// ID returns the GL program object name. Zero for an invalid program.
func (p Program) ID() uint32 { return p.id }

// LitProgram is the linked Lambert shading program with its resolved input locations.
type LitProgram struct {
	Program
	// Uniform locations.
	Matrix, NormalMatrix, LightDirection int32
	// Vertex attribute locations.
	Position, Normal uint32
}

var errZeroProgram = errors.New("program id is 0, did linking fail?")

// CompileError is returned when a stage fails to compile. Log holds the compiler diagnostic.
type CompileError struct {
	Kind StageKind
	Log  string
}

func (e *CompileError) Error() string {
	return e.Kind.String() + " stage compilation failed: " + e.Log
}

// LinkError is returned when a program fails to link. Log holds the linker diagnostic.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "program linking failed: " + e.Log
}

// Builder compiles stages and links programs, logging failure diagnostics.
// The zero value logs to [slog.Default].
type Builder struct {
	Logger *slog.Logger
}

func (bld *Builder) logger() *slog.Logger {
	if bld == nil || bld.Logger == nil {
		return slog.Default()
	}
	return bld.Logger
}

// DefaultBaseColor is the surface color of the lit mesh, pure red.
var DefaultBaseColor = ms3.Vec{X: 1}

// VertexSource returns the vertex stage: transforms positions by u_matrix and normals by u_normalMatrix.
func VertexSource() string {
	var b bytes.Buffer
	b.WriteString(VersionStr)
	fmt.Fprintf(&b, `in vec3 %s;
in vec3 %s;
uniform mat4 %s;
uniform mat3 %s;
out vec3 %s;

void main() {
	gl_Position = %[3]s * vec4(%[1]s, 1.0);
	%[5]s = %[4]s * %[2]s;
}
`, AttribPosition, AttribNormal, UniformMatrix, UniformNormalMatrix, varyingNormal)
	return b.String()
}

// FragmentSource returns the fragment stage: a single Lambertian diffuse term
// max(dot(normalize(n), u_lightDirection), 0) scaling baseColor, fully opaque.
func FragmentSource(baseColor ms3.Vec) string {
	b := []byte(VersionStr)
	b = append(b, "in vec3 "...)
	b = append(b, varyingNormal...)
	b = append(b, ";\nuniform vec3 "...)
	b = append(b, UniformLightDirection...)
	b = append(b, ";\nout vec4 fragColor;\nconst vec3 baseColor = vec3("...)
	b = AppendFloats(b, ',', '-', '.', baseColor.X, baseColor.Y, baseColor.Z)
	b = append(b, ");\n\nvoid main() {\n\tvec3 n = normalize("...)
	b = append(b, varyingNormal...)
	b = append(b, ");\n\tfloat light = max(dot(n, "...)
	b = append(b, UniformLightDirection...)
	b = append(b, "), 0.0);\n\tfragColor = vec4(baseColor * light, 1.0);\n}\n"...)
	return string(b)
}

const decimalDigits = 6

// AppendFloat appends a GLSL float literal to b. neg replaces the minus sign and
// decimal the decimal point, which lets the same routine generate identifiers.
func AppendFloat(b []byte, neg, decimal byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', decimalDigits, 32)
	idx := bytes.IndexByte(b[start:], '.')
	if decimal != '.' && idx >= 0 {
		b[start+idx] = decimal
	}
	if b[start] == '-' {
		b[start] = neg
	}
	// Trim trailing zeroes, keeping the decimal point.
	end := len(b)
	for i := len(b) - 1; idx >= 0 && i > idx+start && b[i] == '0'; i-- {
		end--
	}
	return b[:end]
}

// AppendFloats appends floats separated by sep. See [AppendFloat].
func AppendFloats(b []byte, sep, neg, decimal byte, s ...float32) []byte {
	for i, v := range s {
		b = AppendFloat(b, neg, decimal, v)
		if sep != 0 && i != len(s)-1 {
			b = append(b, sep)
		}
	}
	return b
}
