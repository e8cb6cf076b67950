//go:build !tinygo && cgo

package icosaux

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/icosa/glrender"
)

// Surface is a GLFW window with a current OpenGL 4.1 core context.
// It must be created and used from the main OS thread.
type Surface struct {
	window        *glfw.Window
	width, height int
	aspect        float32
	log           *slog.Logger
}

// NewSurface initializes GLFW, creates a resizable window and makes its context current.
// The viewport tracks the framebuffer size through [Surface.Resize].
func NewSurface(cfg SurfaceConfig) (*Surface, error) {
	cfg.defaults()
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()
	err = gl.Init()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	if cfg.NoVSync {
		glfw.SwapInterval(0)
	} else {
		glfw.SwapInterval(1)
	}
	s := &Surface{window: window, aspect: 1, log: cfg.Logger}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		s.Resize(width, height)
	})
	s.Resize(window.GetFramebufferSize())
	return s, nil
}

// Resize records the framebuffer size and sets the viewport to cover it.
// A degenerate size, such as that of a minimized window, keeps the last valid aspect ratio.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
	if aspect, ok := glrender.AspectRatio(width, height); ok {
		s.aspect = aspect
	}
	vp := glrender.Viewport(width, height)
	gl.Viewport(vp[0], vp[1], vp[2], vp[3])
	s.log.Debug("surface resized", slog.Int("width", width), slog.Int("height", height))
}

// Size returns the framebuffer size set by the last call to Resize.
func (s *Surface) Size() (width, height int) { return s.width, s.height }

// Aspect returns the width/height ratio used for projection.
func (s *Surface) Aspect() float32 { return s.aspect }

// NextFrame presents the frame drawn and processes window events, running resize
// callbacks synchronously. With vsync enabled it blocks until the display refresh.
// It returns false once the window has been asked to close.
func (s *Surface) NextFrame() bool {
	s.window.SwapBuffers()
	glfw.PollEvents()
	return !s.window.ShouldClose()
}

// Terminate destroys the window and releases GLFW.
func (s *Surface) Terminate() {
	s.window.Destroy()
	glfw.Terminate()
}
