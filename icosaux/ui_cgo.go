//go:build !tinygo && cgo

package icosaux

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/icosa"
	"github.com/soypat/icosa/glbuild"
	"github.com/soypat/icosa/glrender"
)

// Run opens a window and draws the rotating icosahedron until ctx is cancelled,
// the window is closed or cfg.MaxFrames frames are drawn. It must be called from
// the main OS thread; see [runtime.LockOSThread].
func Run(ctx context.Context, cfg UIConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.defaults()
	log := cfg.Logger
	surface, err := NewSurface(cfg.Surface)
	if err != nil {
		log.Error("rendering context unavailable", "err", err)
		return err
	}
	defer surface.Terminate()
	log.Info("rendering context available", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	bld := glbuild.Builder{Logger: log}
	prog, err := bld.NewLitProgram(cfg.BaseColor)
	if err != nil {
		return fmt.Errorf("building shader program: %w", err)
	}
	mesh, err := glrender.UploadMesh(icosa.NewIcosahedron(cfg.Normals))
	if err != nil {
		return err
	}
	anim := &icosa.Animator{Step: cfg.Step, MaxFrames: cfg.MaxFrames}
	renderer, err := glrender.NewRenderer(prog, mesh, surface, anim, cfg.Render)
	if err != nil {
		return err
	}
	err = anim.Run(ctx, surface, renderer.Draw)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("animation stopped", "frames", anim.Frames(), "err", err)
		return err
	}
	log.Info("animation stopped", "frames", anim.Frames())
	return err
}
