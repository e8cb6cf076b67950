//go:build tinygo || !cgo

package icosaux

import (
	"context"
	"errors"
)

var errNoCGO = errors.New("require cgo for UI rendering")

type Surface struct{}

func NewSurface(cfg SurfaceConfig) (*Surface, error) { return nil, errNoCGO }

func (s *Surface) Resize(width, height int) {}

func (s *Surface) Size() (width, height int) { return 0, 0 }

func (s *Surface) Aspect() float32 { return 1 }

func (s *Surface) NextFrame() bool { return false }

func (s *Surface) Terminate() {}

func Run(ctx context.Context, cfg UIConfig) error {
	return errNoCGO
}
