package icosa

import (
	"context"
	"errors"

	"github.com/soypat/geometry/md3"
)

// DefaultStep is the rotation about the Y axis applied each frame, in radians.
const DefaultStep = 0.003

// Scheduler paces the animation loop. NextFrame presents the frame just drawn and
// blocks until the next one should be drawn. It returns false when no more frames
// should be drawn, i.e: the window was closed.
type Scheduler interface {
	NextFrame() bool
}

// SchedulerFunc adapts a function to the [Scheduler] interface.
type SchedulerFunc func() bool

// NextFrame calls f.
func (f SchedulerFunc) NextFrame() bool { return f() }

// Animator owns the rotation state of the icosahedron and advances it once per frame.
// The zero value rotates by [DefaultStep] every frame and never stops on its own.
type Animator struct {
	// Step is the rotation about the Y axis in radians added every frame.
	// If zero [DefaultStep] is used.
	Step float64
	// MaxFrames stops [Animator.Run] after drawing MaxFrames frames. Zero means no limit.
	MaxFrames uint64

	rot    md3.Vec
	frames uint64
}

// Rotation returns the current rotation about the X, Y and Z axes in radians.
// Angles are not wrapped to [0, 2π).
func (a *Animator) Rotation() md3.Vec { return a.rot }

// SetRotation sets the rotation state. The frame counter is left untouched.
func (a *Animator) SetRotation(rot md3.Vec) { a.rot = rot }

// Frames returns the amount of times [Animator.Advance] has been called.
func (a *Animator) Frames() uint64 { return a.frames }

// Advance steps the rotation once and returns the new rotation.
func (a *Animator) Advance() md3.Vec {
	step := a.Step
	if step == 0 {
		step = DefaultStep
	}
	a.rot.Y += step
	a.frames++
	return a.rot
}

var errNilDraw = errors.New("nil draw function")

// Run advances the rotation, calls draw and waits on sched for the next frame, repeatedly.
// Exactly one frame is in flight at a time. Run returns:
//   - ctx.Err() if ctx is cancelled.
//   - nil once MaxFrames frames are drawn or sched.NextFrame returns false.
//   - the first error returned by draw.
func (a *Animator) Run(ctx context.Context, sched Scheduler, draw func() error) error {
	if draw == nil {
		return errNilDraw
	} else if sched == nil {
		return errors.New("nil scheduler")
	}
	var drawn uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if a.MaxFrames != 0 && drawn >= a.MaxFrames {
			return nil
		}
		a.Advance()
		if err := draw(); err != nil {
			return err
		}
		drawn++
		if !sched.NextFrame() {
			return nil
		}
	}
}
