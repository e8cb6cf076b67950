//go:build tinygo || !cgo

package glrender

import (
	"errors"
	"image"

	"github.com/soypat/icosa"
	"github.com/soypat/icosa/glbuild"
)

var errNoCGO = errors.New("GL rendering requires CGo and is not supported on TinyGo")

type MeshBuffers struct{}

func UploadMesh(m icosa.Mesh) (*MeshBuffers, error) { return nil, errNoCGO }

func (mb *MeshBuffers) Count() int { return 0 }

type Renderer struct{}

func NewRenderer(prog glbuild.LitProgram, mesh *MeshBuffers, screen Screen, rot Rotator, cfg RenderConfig) (*Renderer, error) {
	return nil, errNoCGO
}

func (r *Renderer) SetMatrix() Transforms { return Transforms{} }

func (r *Renderer) Draw() error { return errNoCGO }

func ReadImage(dst *image.RGBA) error { return errNoCGO }
