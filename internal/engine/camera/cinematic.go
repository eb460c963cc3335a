package camera

import (
	gomath "math"

	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// Cinematic flies an elliptical loop around a focus point, bobbing gently
// and letting its gaze wander around the focus.
type Cinematic struct {
	Lens

	Focus   math.Vec3
	Radius  float64 // x semi-axis
	Ellipse float64 // z semi-axis as a fraction of Radius

	// Height easing: y chases sin(BobRate*t)*BobAmplitude + BaseHeight by
	// Ease of the gap each update.
	BaseHeight   float64
	BobAmplitude float64
	Ease         float32

	position math.Vec3
	target   math.Vec3
}

// NewCinematic returns the stock fly-through camera starting at (60, 36, 60)
// looking at (0, 12, 0).
func NewCinematic() *Cinematic {
	focus := math.Vec3{X: 0, Y: 12, Z: 0}
	return &Cinematic{
		Lens:         DefaultLens(),
		Focus:        focus,
		Radius:       90,
		Ellipse:      0.85,
		BaseHeight:   34,
		BobAmplitude: 6,
		Ease:         0.02,
		position:     math.Vec3{X: 60, Y: 36, Z: 60},
		target:       focus,
	}
}

// Update moves the camera to its pose at elapsed seconds. The height eases
// toward its goal, so the result depends on the previous pose.
func (c *Cinematic) Update(elapsed float64) {
	c.position.X = float32(gomath.Cos(elapsed*0.12) * c.Radius)
	c.position.Z = float32(gomath.Sin(elapsed*0.12) * c.Radius * c.Ellipse)

	wave := float32(gomath.Sin(elapsed*0.35)*c.BobAmplitude + c.BaseHeight)
	c.position.Y += (wave - c.position.Y) * c.Ease

	c.target = c.Focus.AddScaled(Wander(elapsed), 0.25)
}

// Wander returns the offset the gaze drifts by around the focus.
func Wander(elapsed float64) math.Vec3 {
	return math.V3(
		gomath.Cos(elapsed*0.5)*8,
		gomath.Sin(elapsed*0.35)*1.5,
		gomath.Sin(elapsed*0.5)*8,
	)
}

// Position returns the camera position.
func (c *Cinematic) Position() math.Vec3 { return c.position }

// Target returns the point the camera looks at.
func (c *Cinematic) Target() math.Vec3 { return c.target }

// ViewMatrix returns the view matrix for the current pose.
func (c *Cinematic) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.target, up)
}
