// Package glrender draws an [icosa.Mesh] with the Lambert program built by [glbuild].
// Transform and shading math is pure Go and usable without a GL context.
package glrender

import (
	"image"
	"image/color"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/md3"
	"github.com/soypat/geometry/ms3"
)

// Camera and projection parameters.
const (
	FieldOfView    = math.Pi / 4 // Vertical field of view in radians.
	ZNear          = 0.1
	ZFar           = 100.0
	CameraDistance = 10.0 // Distance from eye to the mesh origin along -Z.
)

// DefaultLightDirection is uploaded as-is to the light direction uniform. It is not normalized.
var DefaultLightDirection = ms3.Vec{X: 1, Y: 1, Z: 1}

// Rotator provides the rotation about the X, Y and Z axes, in radians, to draw the mesh at.
type Rotator interface {
	Rotation() md3.Vec
}

// Screen provides the aspect ratio (width/height) of the drawable surface.
type Screen interface {
	Aspect() float32
}

// Transforms are the per-frame matrices derived from aspect ratio and rotation.
type Transforms struct {
	Projection mgl32.Mat4
	ModelView  mgl32.Mat4
	// Combined is Projection×ModelView, uploaded as u_matrix.
	Combined mgl32.Mat4
	// Normal is the inverse transpose of ModelView's upper left 3x3.
	Normal mgl32.Mat3
}

// ComputeTransforms computes the frame's matrices.
func ComputeTransforms(aspect float32, rot md3.Vec) Transforms {
	proj := Projection(aspect)
	mv := ModelView(rot)
	return Transforms{
		Projection: proj,
		ModelView:  mv,
		Combined:   proj.Mul4(mv),
		Normal:     NormalMatrix(mv),
	}
}

// Projection returns the perspective projection for the given aspect ratio.
func Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(FieldOfView, aspect, ZNear, ZFar)
}

// ModelView translates the mesh away from the camera then rotates it about X, Y and Z,
// in that order, each rotation composed onto the running matrix.
func ModelView(rot md3.Vec) mgl32.Mat4 {
	mv := mgl32.Translate3D(0, 0, -CameraDistance)
	mv = mv.Mul4(mgl32.HomogRotate3DX(wrapAngle(rot.X)))
	mv = mv.Mul4(mgl32.HomogRotate3DY(wrapAngle(rot.Y)))
	mv = mv.Mul4(mgl32.HomogRotate3DZ(wrapAngle(rot.Z)))
	return mv
}

// NormalMatrix returns transpose(invert(upper3x3(mv))).
func NormalMatrix(mv mgl32.Mat4) mgl32.Mat3 {
	return mv.Mat3().Inv().Transpose()
}

// wrapAngle reduces the angle to (-2π, 2π) before losing precision to float32.
func wrapAngle(a float64) float32 {
	return float32(math.Mod(a, 2*math.Pi))
}

// AspectRatio returns width/height. ok is false for a degenerate (minimized) surface.
func AspectRatio(width, height int) (aspect float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, false
	}
	return float32(width) / float32(height), true
}

// Viewport returns the x, y, width, height viewport covering the whole surface.
func Viewport(width, height int) [4]int32 {
	return [4]int32{0, 0, int32(width), int32(height)}
}

// Lambert mirrors the fragment stage: base scaled by max(dot(normalize(normal), light), 0).
func Lambert(normal, light, base ms3.Vec) ms3.Vec {
	n := ms3.Unit(normal)
	intensity := math32.Max(ms3.Dot(n, light), 0)
	return ms3.Scale(intensity, base)
}

// ToRGBA converts a linear color to 8 bit RGBA as the framebuffer would store it, clamping to [0,1].
func ToRGBA(c ms3.Vec) color.RGBA {
	return color.RGBA{
		R: unorm8(c.X),
		G: unorm8(c.Y),
		B: unorm8(c.Z),
		A: 255,
	}
}

func unorm8(v float32) uint8 {
	v = math32.Max(0, math32.Min(1, v))
	return uint8(v*255 + 0.5)
}

// flipRows mirrors img vertically in place. GL framebuffers have their origin at the bottom left.
func flipRows(img *image.RGBA) {
	bb := img.Bounds()
	rowLen := 4 * bb.Dx()
	for top, bot := 0, bb.Dy()-1; top < bot; top, bot = top+1, bot-1 {
		a := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		b := img.Pix[bot*img.Stride : bot*img.Stride+rowLen]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// RenderConfig configures a [Renderer]. Zero fields take defaults.
type RenderConfig struct {
	// LightDirection uploaded to u_lightDirection. Defaults to [DefaultLightDirection].
	LightDirection ms3.Vec
	// ClearColor is the background color. Defaults to opaque black.
	ClearColor color.RGBA
}

func (cfg *RenderConfig) defaults() {
	if cfg.LightDirection == (ms3.Vec{}) {
		cfg.LightDirection = DefaultLightDirection
	}
	if cfg.ClearColor == (color.RGBA{}) {
		cfg.ClearColor = color.RGBA{A: 255}
	}
}
