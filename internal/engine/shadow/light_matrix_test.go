package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/voxel-citadel/internal/engine/lighting"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

func inClip(p math.Vec3) bool {
	return p.X >= -1 && p.X <= 1 && p.Y >= -1 && p.Y <= 1 && p.Z >= -1 && p.Z <= 1
}

func TestLightMatrixCoversCastle(t *testing.T) {
	m := LightMatrix(lighting.DefaultRig().Sun)

	// The sun target projects to the centre of the map.
	c := m.Project(math.Vec3{})
	assert.InDelta(t, 0, c.X, 1e-4)
	assert.InDelta(t, 0, c.Y, 1e-4)

	for _, p := range []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 11.2, Y: 30, Z: 11.2},
		{X: -11.2, Y: 0, Z: -11.2},
		{X: 35, Y: 0, Z: 27},
	} {
		assert.True(t, inClip(m.Project(p)), "point %v outside shadow box", p)
	}
}

func TestLightMatrixVerticalSun(t *testing.T) {
	sun := lighting.DefaultRig().Sun
	sun.Position = math.Vec3{X: 0, Y: 100, Z: 0}

	c := LightMatrix(sun).Project(math.Vec3{})
	assert.InDelta(t, 0, c.X, 1e-4)
	assert.InDelta(t, 0, c.Y, 1e-4)
	assert.False(t, c.Z != c.Z, "NaN depth")
}

func TestMapWithoutGL(t *testing.T) {
	var missing *Map
	assert.False(t, missing.IsValid())

	m := &Map{Resolution: 2048}
	assert.False(t, m.IsValid())
	assert.InDelta(t, 1.0/2048, m.Texel(), 1e-9)
	assert.NoError(t, m.Release())
}
