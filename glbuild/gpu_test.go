//go:build !tinygo && cgo

package glbuild_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/icosa/glbuild"
	"github.com/stretchr/testify/assert"
)

// GL calls must run on the thread holding the context so GPU tests run in TestMain.
func TestMain(m *testing.M) {
	runtime.LockOSThread()
	var exit int
	err := testGPU()
	if err != nil {
		exit = 1
		log.Println(err)
	}
	runtime.UnlockOSThread()
	os.Exit(m.Run() | exit)
}

func testGPU() error {
	_, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "glbuild",
		Version: [2]int{4, 1},
		Width:   1,
		Height:  1,
	})
	if err != nil {
		log.Println("no GL context, skipping GPU tests:", err)
		return nil
	}
	defer terminate()
	err = gl.Init()
	if err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	t := &tb{}
	for _, test := range []func(*tb){
		testCompileStage,
		testCompileFailure,
		testLinkFailure,
		testLinkInvalidStage,
		testLitProgram,
	} {
		test(t)
		if t.fail {
			return fmt.Errorf("%s: test failed", getFnName(test))
		}
	}
	return nil
}

func testCompileStage(t *tb) {
	var bld glbuild.Builder
	vs, err := bld.CompileStage(glbuild.VertexStage, glbuild.VertexSource())
	assert.NoError(t, err)
	assert.True(t, vs.Valid())
	assert.Equal(t, glbuild.VertexStage, vs.Kind())
	fs, err := bld.CompileStage(glbuild.FragmentStage, glbuild.FragmentSource(glbuild.DefaultBaseColor))
	assert.NoError(t, err)
	prog, err := bld.LinkProgram(vs, fs)
	assert.NoError(t, err)
	assert.NotZero(t, prog.ID())
}

func testCompileFailure(t *tb) {
	var logbuf bytes.Buffer
	bld := glbuild.Builder{Logger: slog.New(slog.NewTextHandler(&logbuf, nil))}
	stage, err := bld.CompileStage(glbuild.FragmentStage, glbuild.VersionStr+"void main() { this is not glsl }\n")
	assert.False(t, stage.Valid())
	var cerr *glbuild.CompileError
	if assert.True(t, errors.As(err, &cerr), "want CompileError, got %v", err) {
		assert.Equal(t, glbuild.FragmentStage, cerr.Kind)
		assert.NotEmpty(t, cerr.Log)
	}
	assert.Contains(t, logbuf.String(), "shader compilation failed")
}

func testLinkFailure(t *tb) {
	var logbuf bytes.Buffer
	bld := glbuild.Builder{Logger: slog.New(slog.NewTextHandler(&logbuf, nil))}
	// Vertex stage that never declares the varying the fragment stage reads.
	vs, err := bld.CompileStage(glbuild.VertexStage, glbuild.VersionStr+`in vec3 position;
void main() { gl_Position = vec4(position, 1.0); }
`)
	assert.NoError(t, err)
	fs, err := bld.CompileStage(glbuild.FragmentStage, glbuild.FragmentSource(glbuild.DefaultBaseColor))
	assert.NoError(t, err)
	prog, err := bld.LinkProgram(vs, fs)
	assert.Zero(t, prog.ID())
	var lerr *glbuild.LinkError
	assert.True(t, errors.As(err, &lerr), "want LinkError, got %v", err)
	assert.Contains(t, logbuf.String(), "program linking failed")
}

func testLinkInvalidStage(t *tb) {
	var bld glbuild.Builder
	fs, err := bld.CompileStage(glbuild.FragmentStage, glbuild.FragmentSource(glbuild.DefaultBaseColor))
	assert.NoError(t, err)
	prog, err := bld.LinkProgram(glbuild.Stage{}, fs)
	assert.Error(t, err)
	assert.Zero(t, prog.ID())
	_, err = bld.LinkProgram(fs, fs)
	assert.Error(t, err)
}

func testLitProgram(t *tb) {
	var bld glbuild.Builder
	lit, err := bld.NewLitProgram(glbuild.DefaultBaseColor)
	if !assert.NoError(t, err) {
		return
	}
	assert.NotZero(t, lit.ID())
	assert.NotEqual(t, lit.Position, lit.Normal)
	assert.GreaterOrEqual(t, lit.Matrix, int32(0))
	assert.GreaterOrEqual(t, lit.NormalMatrix, int32(0))
	assert.GreaterOrEqual(t, lit.LightDirection, int32(0))
	_, err = lit.UniformLocation("u_doesNotExist")
	assert.Error(t, err)
	_, err = glbuild.Program{}.AttribLocation(glbuild.AttribPosition)
	assert.Error(t, err)
}

// tb implements assert.TestingT outside of a *testing.T.
type tb struct {
	fail bool
}

func (t *tb) Errorf(msg string, args ...any) {
	t.fail = true
	log.Printf(msg, args...)
}

func getFnName(fnPtr any) string {
	name := runtime.FuncForPC(reflect.ValueOf(fnPtr).Pointer()).Name()
	idx := strings.LastIndexByte(name, '.')
	return name[idx+1:]
}
