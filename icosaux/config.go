// Package icosaux wires a GLFW window, the shading program, the icosahedron mesh
// and the animation loop together. Users wanting more control should compose
// [glbuild], [glrender] and [icosa] themselves.
package icosaux

import (
	"log/slog"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/icosa"
	"github.com/soypat/icosa/glbuild"
	"github.com/soypat/icosa/glrender"
)

// SurfaceConfig configures the window and GL context created by NewSurface.
type SurfaceConfig struct {
	Title string
	// Initial window size in screen coordinates. Defaults to 800x600.
	Width, Height int
	// Hidden creates an invisible window, useful for tests and offscreen rendering.
	Hidden bool
	// NoVSync disables waiting for the display refresh between frames.
	NoVSync bool
	Logger  *slog.Logger
}

func (cfg *SurfaceConfig) defaults() {
	if cfg.Title == "" {
		cfg.Title = "icosahedron"
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

// UIConfig configures [Run].
type UIConfig struct {
	Surface SurfaceConfig
	Render  glrender.RenderConfig
	// BaseColor of the icosahedron. Defaults to [glbuild.DefaultBaseColor].
	BaseColor ms3.Vec
	Normals   icosa.NormalStyle
	// Step is the rotation about Y per frame in radians. Defaults to [icosa.DefaultStep].
	Step float64
	// MaxFrames stops the animation after that many frames. Zero runs until the window is closed.
	MaxFrames uint64
	Logger    *slog.Logger
}

func (cfg *UIConfig) defaults() {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Surface.Logger == nil {
		cfg.Surface.Logger = cfg.Logger
	}
	cfg.Surface.defaults()
	if cfg.BaseColor == (ms3.Vec{}) {
		cfg.BaseColor = glbuild.DefaultBaseColor
	}
	if cfg.Step == 0 {
		cfg.Step = icosa.DefaultStep
	}
}
