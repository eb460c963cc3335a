package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/voxel-citadel/internal/generator"
	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

func TestComposeCastle(t *testing.T) {
	castle := ComposeCastle(generator.DefaultCastle())

	assert.Equal(t, "castle", castle.Name)
	require.Len(t, castle.Members, 6)
	assert.Equal(t, 2820, castle.Count())
	assert.Empty(t, castle.Paths)

	keep, ok := castle.Structure("keep")
	require.True(t, ok)
	assert.Equal(t, voxel.Lattice{}, keep.Offset)
}

func TestDefaultPaths(t *testing.T) {
	layout := DefaultVillage()
	require.Len(t, layout.Paths, 2)

	east := layout.Paths[0].Cells()
	north := layout.Paths[1].Cells()
	assert.Len(t, east, 51+25)
	assert.Len(t, north, 20+7)

	// x=-24 is even: the shoulder follows its main cell.
	assert.Equal(t, voxel.PathCell{X: -24, Z: 6}, east[1])
	assert.Equal(t, 5, east[2].Z)
	assert.InDelta(t, 0.0996, east[2].Elevation, 1e-3)

	// z=6 shoulder sits at x=-6 with cosine jitter.
	assert.Equal(t, voxel.PathCell{X: -5, Z: 6}, north[0])
	assert.Equal(t, -6, north[1].X)
	assert.InDelta(t, 0.0434, north[1].Elevation, 1e-3)

	for _, c := range east {
		if c.Z == 6 {
			assert.Zero(t, c.Elevation)
		}
	}
}

func TestComposeVillage(t *testing.T) {
	village := ComposeVillage(DefaultVillage())

	assert.Equal(t, "village", village.Name)
	assert.Len(t, village.Members, 12)
	assert.Len(t, village.Paths, 103)

	first := village.Members[0]
	assert.Equal(t, voxel.At(16, 0, 12), first.Offset)
	assert.Equal(t, 232, first.Structure.Len())

	// Trees: 70 + 127 + 70 + 69 + 32 + 69.
	trees := 0
	for _, m := range village.Members[6:] {
		trees += m.Structure.Len()
	}
	assert.Equal(t, 437, trees)

	counts := village.CountByTag()
	assert.Equal(t, 103, counts[voxel.Path])
	assert.Equal(t, 3+3+3+2+2+2, counts[voxel.Trunk])
}

func TestVillageEachTranslates(t *testing.T) {
	layout := VillageLayout{
		Houses: []generator.HouseSpec{{Center: voxel.At(10, 0, -4), Width: 1, Depth: 1, Levels: 1}},
	}
	village := ComposeVillage(layout)

	var seen []voxel.Lattice
	village.Each(func(pos voxel.Lattice, v voxel.Voxel) {
		assert.Equal(t, v.Pos.Add(voxel.At(10, 0, -4)), pos)
		seen = append(seen, pos)
	})
	assert.Contains(t, seen, voxel.At(10, 1, -4))
	assert.Equal(t, village.Count(), len(seen))
}

func TestCrossingPathsKeepRepeats(t *testing.T) {
	village := ComposeVillage(DefaultVillage())

	seen := make(map[[2]int]int)
	for _, c := range village.Paths {
		seen[[2]int{c.X, c.Z}]++
	}
	assert.Equal(t, 2, seen[[2]int{-5, 6}])
	assert.Equal(t, 2, seen[[2]int{-6, 6}])
}

func TestCompose(t *testing.T) {
	d := Compose(DefaultSpec())
	require.NotNil(t, d.Castle)
	require.NotNil(t, d.Village)
	assert.Equal(t, []*Group{d.Castle, d.Village}, d.Groups())

	again := Compose(DefaultSpec())
	assert.Equal(t, d.Castle.Count(), again.Castle.Count())
	assert.Equal(t, d.Village.Paths, again.Village.Paths)
}
