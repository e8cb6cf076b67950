//go:build !tinygo && cgo

package glrender

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/icosa"
	"github.com/soypat/icosa/glbuild"
)

// MeshBuffers holds the device resident copy of a mesh: a vertex array object
// with position, normal and index buffers. Buffers are uploaded once with
// STATIC_DRAW usage and never modified.
type MeshBuffers struct {
	vao      uint32
	position uint32
	normal   uint32
	index    uint32
	count    int32
}

// UploadMesh validates m and copies its buffers to the GPU.
func UploadMesh(m icosa.Mesh) (*MeshBuffers, error) {
	err := m.Validate()
	if err != nil {
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	mb := &MeshBuffers{count: int32(m.NumIndices())}
	gl.GenVertexArrays(1, &mb.vao)
	if mb.vao == 0 {
		return nil, glErrOrMessage("zero vertex array id set by GL")
	}
	gl.BindVertexArray(mb.vao)
	// The element array binding is vertex array state, keep the VAO bound while uploading.
	mb.position = loadBuffer(gl.ARRAY_BUFFER, m.PositionData())
	mb.normal = loadBuffer(gl.ARRAY_BUFFER, m.NormalData())
	mb.index = loadBuffer(gl.ELEMENT_ARRAY_BUFFER, m.IndexData())
	gl.BindVertexArray(0)
	if mb.position == 0 || mb.normal == 0 || mb.index == 0 {
		return nil, glErrOrMessage("zero buffer id set by GL during mesh upload")
	}
	return mb, glgl.Err()
}

// Count returns the number of indices drawn.
func (mb *MeshBuffers) Count() int { return int(mb.count) }

func loadBuffer[T float32 | uint16](target uint32, data []T) (id uint32) {
	gl.GenBuffers(1, &id)
	gl.BindBuffer(target, id)
	gl.BufferData(target, len(data)*elemSize[T](), gl.Ptr(data), gl.STATIC_DRAW)
	return id
}

func elemSize[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// Renderer draws mesh buffers with a [glbuild.LitProgram] every frame.
type Renderer struct {
	prog   glbuild.LitProgram
	mesh   *MeshBuffers
	screen Screen
	rot    Rotator
	cfg    RenderConfig
}

// NewRenderer binds the program's position and normal attributes to the mesh buffers.
// Screen and rot are read on every call to [Renderer.SetMatrix].
func NewRenderer(prog glbuild.LitProgram, mesh *MeshBuffers, screen Screen, rot Rotator, cfg RenderConfig) (*Renderer, error) {
	switch {
	case prog.ID() == 0:
		return nil, errors.New("zero program id, did linking fail?")
	case mesh == nil || mesh.vao == 0:
		return nil, errors.New("mesh buffers not uploaded")
	case screen == nil || rot == nil:
		return nil, errors.New("nil screen or rotator")
	}
	cfg.defaults()
	prog.Use()
	gl.BindVertexArray(mesh.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.position)
	gl.EnableVertexAttribArray(prog.Position)
	gl.VertexAttribPointer(prog.Position, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.normal)
	gl.EnableVertexAttribArray(prog.Normal)
	gl.VertexAttribPointer(prog.Normal, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	err := glgl.Err()
	if err != nil {
		return nil, fmt.Errorf("binding vertex attributes: %w", err)
	}
	return &Renderer{prog: prog, mesh: mesh, screen: screen, rot: rot, cfg: cfg}, nil
}

// SetMatrix computes the frame's transforms from the current aspect ratio and
// rotation and uploads them and the light direction as uniforms.
// The program must be in use.
func (r *Renderer) SetMatrix() Transforms {
	tf := ComputeTransforms(r.screen.Aspect(), r.rot.Rotation())
	gl.UniformMatrix4fv(r.prog.Matrix, 1, false, &tf.Combined[0])
	gl.UniformMatrix3fv(r.prog.NormalMatrix, 1, false, &tf.Normal[0])
	light := r.cfg.LightDirection
	gl.Uniform3f(r.prog.LightDirection, light.X, light.Y, light.Z)
	return tf
}

// Draw clears the surface and draws the whole mesh with back face culling and depth testing.
func (r *Renderer) Draw() error {
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	c := r.cfg.ClearColor
	gl.ClearColor(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.prog.Use()
	gl.BindVertexArray(r.mesh.vao)
	r.SetMatrix()
	gl.DrawElements(gl.TRIANGLES, r.mesh.count, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	return glgl.Err()
}

// ReadImage reads the bottom left region of the current framebuffer sized like dst into dst.
func ReadImage(dst *image.RGBA) error {
	bb := dst.Bounds()
	if bb.Empty() {
		return errors.New("empty destination image")
	} else if dst.Stride != 4*bb.Dx() {
		return errors.New("destination image rows must be contiguous")
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(bb.Dx()), int32(bb.Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst.Pix))
	err := glgl.Err()
	if err != nil {
		return fmt.Errorf("reading framebuffer: %w", err)
	}
	flipRows(dst)
	return nil
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
