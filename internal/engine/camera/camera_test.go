package camera

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/voxel-citadel/pkg/math"
)

func TestCinematicStartPose(t *testing.T) {
	c := NewCinematic()
	assert.Equal(t, math.Vec3{X: 60, Y: 36, Z: 60}, c.Position())
	assert.Equal(t, math.Vec3{X: 0, Y: 12, Z: 0}, c.Target())
	assert.Equal(t, 55.0, c.FovY)
	assert.Equal(t, float32(400), c.Far)
}

func TestCinematicUpdate(t *testing.T) {
	c := NewCinematic()
	c.Update(0)

	p := c.Position()
	assert.InDelta(t, 90, p.X, 1e-4)
	assert.InDelta(t, 0, p.Z, 1e-4)
	// y eases 2% of the way from 36 toward 34.
	assert.InDelta(t, 35.96, p.Y, 1e-4)

	// Gaze offset at t=0 is (8, 0, 0) scaled by a quarter.
	assert.InDelta(t, 2, c.Target().X, 1e-5)
	assert.InDelta(t, 12, c.Target().Y, 1e-5)
	assert.InDelta(t, 0, c.Target().Z, 1e-5)
}

func TestCinematicEllipse(t *testing.T) {
	c := NewCinematic()
	quarter := gomath.Pi / 2 / 0.12
	c.Update(quarter)

	p := c.Position()
	assert.InDelta(t, 0, p.X, 1e-3)
	assert.InDelta(t, 76.5, p.Z, 1e-3)
}

func TestCinematicHeightConverges(t *testing.T) {
	c := NewCinematic()
	// At t where sin(0.35t)=0 the goal is 34; holding t there converges.
	for i := 0; i < 2000; i++ {
		c.Update(0)
	}
	assert.InDelta(t, 34, c.Position().Y, 1e-3)
}

func TestLensAspect(t *testing.T) {
	l := DefaultLens()
	l.SetAspect(1920, 1080)
	assert.InDelta(t, 16.0/9.0, l.Aspect, 1e-6)

	l.SetAspect(0, 100)
	assert.InDelta(t, 16.0/9.0, l.Aspect, 1e-6, "zero width must be ignored")

	// The near plane maps to depth -1.
	near := l.ProjectionMatrix().Project(math.Vec3{Z: -0.1})
	assert.InDelta(t, -1, near.Z, 1e-4)
}

func TestCinematicViewLooksAtTarget(t *testing.T) {
	c := NewCinematic()
	c.Update(3)

	v := c.ViewMatrix().Project(c.Target())
	assert.InDelta(t, 0, v.X, 1e-3)
	assert.InDelta(t, 0, v.Y, 1e-3)
	assert.Less(t, v.Z, float32(0))
}

func TestOrbitClamps(t *testing.T) {
	o := NewOrbit()
	o.Damping = 1

	o.HandleZoom(100)
	o.Update(0)
	assert.Equal(t, float32(40), o.Distance)

	o.HandleZoom(-100)
	o.Update(0)
	assert.Equal(t, float32(140), o.Distance)

	o.HandleDrag(0, 1e6)
	o.Update(0)
	assert.InDelta(t, gomath.Pi/4, o.RotationX, 1e-6)

	o.HandleDrag(0, -1e6)
	o.Update(0)
	assert.InDelta(t, gomath.Pi/2-gomath.Pi/2.15, o.RotationX, 1e-6)
}

func TestOrbitDamping(t *testing.T) {
	o := NewOrbit()
	start := o.Distance

	o.HandleZoom(0.2)
	goal := start - 0.2*start*o.ZoomSensitivity
	o.Update(0)

	require.Less(t, o.Distance, start)
	assert.Greater(t, o.Distance, goal)
	assert.InDelta(t, start+(goal-start)*0.05, o.Distance, 1e-4)

	for i := 0; i < 500; i++ {
		o.Update(0)
	}
	assert.InDelta(t, goal, o.Distance, 1e-3)
}

func TestOrbitPosition(t *testing.T) {
	o := NewOrbit()
	o.RotationX = 0
	o.RotationY = 0
	o.Distance = 50

	assert.Equal(t, math.Vec3{X: 0, Y: 12, Z: 50}, o.Position())

	var _ Controller = o
	var _ Controller = NewCinematic()
}
