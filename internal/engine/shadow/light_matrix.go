package shadow

import (
	"github.com/Faultbox/voxel-citadel/internal/engine/lighting"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// LightMatrix computes the view-projection used to render and sample the
// sun's shadow map: an orthographic box of +-ShadowExtent around the sun's
// line of sight.
func LightMatrix(sun lighting.Sun) math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	dir := sun.Position.Sub(sun.Target).Normalize()
	// If light is nearly vertical, use a different up vector
	if abs32(dir.Y) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}

	view := math.LookAt(sun.Position, sun.Target, up)
	e := sun.ShadowExtent
	proj := math.Ortho(-e, e, -e, e, sun.ShadowNear, sun.ShadowFar)

	return proj.Mul(view)
}

// abs32 returns the absolute value of a float32.
func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
