package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/voxel-citadel/internal/engine/scene"
	"github.com/Faultbox/voxel-citadel/internal/voxel"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

func TestMaterialBlock(t *testing.T) {
	block := materialBlock(&scene.Material{Appearance: voxel.Lookup(voxel.Flag)})

	// 0xf25f5c in linear light.
	assert.InDelta(t, 0.8879, block[0], 1e-3)
	assert.InDelta(t, 0.1144, block[1], 1e-3)
	assert.InDelta(t, 0.1070, block[2], 1e-3)
	assert.Equal(t, float32(1), block[3])

	// Emissive is premultiplied by its intensity.
	assert.Greater(t, block[4], float32(0))
	assert.Equal(t, float32(0), block[5])
	assert.Equal(t, float32(0.45), block[8])
}

func TestMaterialBlockWater(t *testing.T) {
	app := voxel.Lookup(voxel.Water)
	block := materialBlock(&scene.Material{Appearance: app})
	assert.Equal(t, app.Opacity, block[3])
	assert.Equal(t, app.Transmission, block[10])
	assert.Equal(t, app.Clearcoat, block[11])
}

func TestInstanceData(t *testing.T) {
	data := instanceData([]math.Vec3{{X: 1, Y: 2, Z: 3}, {X: -4, Y: 0.5, Z: 6}})
	require.Len(t, data, 6)
	assert.Equal(t, []float32{1, 2, 3, -4, 0.5, 6}, data)
	assert.Empty(t, instanceData(nil))
}

func TestOverlayRect(t *testing.T) {
	rect := overlayRect(200, 100, 1000, 500, 1)

	// Left edge sits 24px in, top edge 24px down.
	assert.InDelta(t, -1+48.0/1000, rect[0], 1e-6)
	assert.InDelta(t, 0.4, rect[2], 1e-6)
	assert.InDelta(t, 0.4, rect[3], 1e-6)
	assert.InDelta(t, 1-48.0/500, rect[1]+rect[3], 1e-6)

	retina := overlayRect(200, 100, 2000, 1000, 2)
	assert.InDelta(t, rect[2], retina[2], 1e-6)
	assert.InDelta(t, rect[1], retina[1], 1e-6)

	assert.Equal(t, [4]float32{}, overlayRect(10, 10, 0, 0, 1))
}
