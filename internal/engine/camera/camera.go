// Package camera provides the cinematic fly-through camera and the
// interactive orbit camera used to view the diorama.
package camera

import (
	gomath "math"

	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// View is what the renderer needs from a camera.
type View interface {
	ViewMatrix() math.Mat4
	ProjectionMatrix() math.Mat4
	Position() math.Vec3
}

// Controller is a View that animates over time and follows the viewport.
type Controller interface {
	View
	Update(elapsed float64)
	SetAspect(width, height int)
}

// Lens holds the perspective projection parameters.
type Lens struct {
	FovY   float64 // degrees
	Near   float32
	Far    float32
	Aspect float32
}

// DefaultLens returns a 55 degree lens with a 0.1-400 depth range.
func DefaultLens() Lens {
	return Lens{FovY: 55, Near: 0.1, Far: 400, Aspect: 16.0 / 9.0}
}

// SetAspect updates the aspect ratio from a viewport size. Degenerate sizes
// are ignored.
func (l *Lens) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.Aspect = float32(width) / float32(height)
}

// ProjectionMatrix returns the perspective projection for the lens.
func (l *Lens) ProjectionMatrix() math.Mat4 {
	fov := float32(l.FovY * gomath.Pi / 180)
	return math.Perspective(fov, l.Aspect, l.Near, l.Far)
}

var up = math.Vec3{X: 0, Y: 1, Z: 0}
