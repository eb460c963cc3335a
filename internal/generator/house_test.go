package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

func TestBuildHouseCounts(t *testing.T) {
	house := BuildHouse(HouseSpec{Center: voxel.At(16, 0, 12), Width: 3, Depth: 3, Levels: 3})

	// Body 49*3, roof 49+25+9, two gable accents.
	assert.Equal(t, 232, house.Len())
	assert.Empty(t, house.Duplicates())
	assert.Equal(t, 83, house.CountByTag()[voxel.Roof])
}

func TestHouseChamferIsWall(t *testing.T) {
	specs := []HouseSpec{
		{Width: 3, Depth: 3, Levels: 3},
		{Width: 3, Depth: 2, Levels: 3},
		{Width: 4, Depth: 3, Levels: 4},
		{Width: 2, Depth: 2, Levels: 2},
	}
	for _, spec := range specs {
		house := BuildHouse(spec)
		for _, sx := range []int{-1, 1} {
			for _, sz := range []int{-1, 1} {
				x, z := sx*(spec.Width-1), sz*(spec.Depth-1)
				for y := 1; y <= spec.Levels; y++ {
					v, ok := house.At(voxel.At(x, y, z))
					require.True(t, ok)
					assert.Equal(t, voxel.Wall, v.Tag, "%+v chamfer (%d,%d,%d)", spec, x, y, z)
				}
			}
		}

		// The centre is interior accent.
		v, ok := house.At(voxel.At(0, 1, 0))
		require.True(t, ok)
		assert.Equal(t, voxel.Vegetation, v.Tag)
	}
}

func TestRoofFootprint(t *testing.T) {
	spec := HouseSpec{Width: 4, Depth: 3, Levels: 4}
	house := BuildHouse(spec)

	for layer := 0; layer < spec.Levels; layer++ {
		fx, fz := RoofFootprint(spec, layer)
		assert.Equal(t, 2*(spec.Width-layer)+1, fx)
		assert.Equal(t, 2*(spec.Depth-layer)+1, fz)

		y := spec.Levels + layer + 1
		n := 0
		house.Each(func(v voxel.Voxel) {
			if v.Pos.Y == y && v.Tag == voxel.Roof {
				n++
			}
		})
		assert.Equal(t, fx*fz, n, "roof layer %d", layer)
	}

	fx, fz := RoofFootprint(HouseSpec{Width: 2, Depth: 1, Levels: 3}, 2)
	assert.Zero(t, fx)
	assert.Zero(t, fz)
}

func TestGableHeightRoundsHalfUp(t *testing.T) {
	cases := map[int]int{2: 2, 3: 3, 4: 3}
	for levels, want := range cases {
		house := BuildHouse(HouseSpec{Width: 2, Depth: 2, Levels: levels})
		for _, z := range []int{3, -3} {
			v, ok := house.At(voxel.At(0, want, z))
			require.True(t, ok, "levels=%d gable z=%d", levels, z)
			assert.Equal(t, voxel.Vegetation, v.Tag)
		}
	}
}
