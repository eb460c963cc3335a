package camera

import (
	gomath "math"

	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// Orbit orbits around a center point. Input moves a goal pose; Update eases
// the actual pose toward it.
type Orbit struct {
	Lens

	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch above the horizon (radians)
	RotationY float32 // Yaw (radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping is the fraction of the remaining gap closed per update.
	// Zero or one snaps immediately.
	Damping float32

	goalDistance float32
	goalPitch    float32
	goalYaw      float32
}

// NewOrbit creates an orbit camera around (0, 12, 0). Pitch is limited to
// polar angles [pi/4, pi/2.15] from the zenith and distance to [40, 140].
func NewOrbit() *Orbit {
	c := &Orbit{
		Lens:            DefaultLens(),
		Center:          math.Vec3{X: 0, Y: 12, Z: 0},
		Distance:        90,
		RotationX:       0.3,
		RotationY:       gomath.Pi / 4,
		MinDistance:     40,
		MaxDistance:     140,
		MinPitch:        float32(gomath.Pi/2 - gomath.Pi/2.15),
		MaxPitch:        float32(gomath.Pi / 4),
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         0.05,
	}
	c.goalDistance, c.goalPitch, c.goalYaw = c.Distance, c.RotationX, c.RotationY
	return c
}

// Position returns the camera position in world space.
func (c *Orbit) Position() math.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	return math.Vec3{
		X: c.Center.X + c.Distance*float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		Y: c.Center.Y + c.Distance*float32(gomath.Sin(pitch)),
		Z: c.Center.Z + c.Distance*float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, up)
}

// HandleDrag updates the goal rotation based on mouse drag delta.
func (c *Orbit) HandleDrag(deltaX, deltaY float32) {
	c.goalYaw -= deltaX * c.DragSensitivity
	c.goalPitch = clamp(c.goalPitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates the goal distance based on scroll wheel delta.
func (c *Orbit) HandleZoom(delta float32) {
	c.goalDistance -= delta * c.goalDistance * c.ZoomSensitivity
	c.goalDistance = clamp(c.goalDistance, c.MinDistance, c.MaxDistance)
}

// Update eases the pose toward the goal.
func (c *Orbit) Update(float64) {
	k := c.Damping
	if k <= 0 || k >= 1 {
		k = 1
	}
	c.Distance += (c.goalDistance - c.Distance) * k
	c.RotationX += (c.goalPitch - c.RotationX) * k
	c.RotationY += (c.goalYaw - c.RotationY) * k
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
