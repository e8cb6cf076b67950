package icosaux

import (
	"log/slog"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/icosa"
	"github.com/soypat/icosa/glbuild"
	"github.com/stretchr/testify/assert"
)

func TestUIConfigDefaults(t *testing.T) {
	var cfg UIConfig
	cfg.defaults()
	assert.Equal(t, slog.Default(), cfg.Logger)
	assert.Equal(t, cfg.Logger, cfg.Surface.Logger)
	assert.Equal(t, 800, cfg.Surface.Width)
	assert.Equal(t, 600, cfg.Surface.Height)
	assert.Equal(t, "icosahedron", cfg.Surface.Title)
	assert.Equal(t, glbuild.DefaultBaseColor, cfg.BaseColor)
	assert.Equal(t, icosa.DefaultStep, cfg.Step)
	assert.Equal(t, icosa.NormalsUnit, cfg.Normals)
	assert.Zero(t, cfg.MaxFrames)

	cfg = UIConfig{
		Surface:   SurfaceConfig{Width: 320, Height: 200, Title: "t"},
		BaseColor: ms3.Vec{Y: 1},
		Step:      0.01,
	}
	cfg.defaults()
	assert.Equal(t, 320, cfg.Surface.Width)
	assert.Equal(t, 200, cfg.Surface.Height)
	assert.Equal(t, "t", cfg.Surface.Title)
	assert.Equal(t, ms3.Vec{Y: 1}, cfg.BaseColor)
	assert.Equal(t, 0.01, cfg.Step)
}
