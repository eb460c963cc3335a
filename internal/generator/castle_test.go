package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

func TestBuildWallsCounts(t *testing.T) {
	spec := DefaultCastle()
	walls := BuildWalls(spec)

	// 225 floor + 57 studs + 64 columns of 7 + 64 capstones.
	assert.Equal(t, 794, walls.Len())
	assert.Empty(t, walls.Duplicates())

	counts := walls.CountByTag()
	assert.Equal(t, 225+64*6, counts[voxel.Stone])
	assert.Equal(t, 57+64+64, counts[voxel.Accent])
}

func TestPerimeterColumnsComplete(t *testing.T) {
	spec := DefaultCastle()
	r, h := spec.BaseRadius, spec.WallHeight
	walls := BuildWalls(spec)
	CutGate(walls, spec)

	inGate := func(x, y, z int) bool {
		return z == r && x >= -spec.GateWidth && x <= spec.GateWidth && y >= 1 && y <= h-2
	}

	columns := 0
	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			if chebyshev(x, z) != r {
				continue
			}
			columns++
			for y := 0; y < h; y++ {
				_, ok := walls.At(voxel.At(x, y, z))
				if inGate(x, y, z) {
					assert.False(t, ok, "gate voxel left at (%d,%d,%d)", x, y, z)
					continue
				}
				require.True(t, ok, "wall column (%d,%d) missing y=%d", x, z, y)
			}
		}
	}
	assert.Equal(t, 8*r, columns)
}

func TestCutGate(t *testing.T) {
	spec := DefaultCastle()
	walls := BuildWalls(spec)

	removed := CutGate(walls, spec)
	assert.Equal(t, 35, removed)
	assert.Equal(t, 794-35, walls.Len())

	for y := 1; y <= spec.WallHeight-2; y++ {
		for x := -3; x <= 3; x++ {
			_, ok := walls.At(voxel.At(x, y, spec.BaseRadius))
			assert.False(t, ok, "voxel remains at (%d,%d,%d)", x, y, spec.BaseRadius)
		}
	}

	// The lintel course and the capstones above the gate stay.
	v, ok := walls.At(voxel.At(0, spec.WallHeight-1, spec.BaseRadius))
	require.True(t, ok)
	assert.Equal(t, voxel.Accent, v.Tag)
	_, ok = walls.At(voxel.At(0, 0, spec.BaseRadius))
	assert.True(t, ok)

	// A second cut finds nothing left.
	assert.Zero(t, CutGate(walls, spec))
}

func TestBuildTower(t *testing.T) {
	spec := DefaultCastle()
	center := voxel.At(8, 0, -8)
	tower := BuildTower(center, spec.WallHeight, spec.Tower)

	assert.Equal(t, "tower-ne", tower.Name)
	assert.Equal(t, 374, tower.Len())
	assert.Empty(t, tower.Duplicates())

	counts := tower.CountByTag()
	assert.Equal(t, 2, counts[voxel.Flag])
	assert.Equal(t, 48+6, counts[voxel.Accent])

	top := spec.Tower.Height + 5
	for _, p := range []voxel.Lattice{
		voxel.At(9, top, -8),
		voxel.At(10, top-1, -8),
	} {
		v, ok := tower.At(p)
		require.True(t, ok, "flag missing at %v", p)
		assert.Equal(t, voxel.Flag, v.Tag)
	}

	min, max, ok := tower.Bounds()
	require.True(t, ok)
	assert.Equal(t, voxel.At(5, spec.WallHeight, -11), min)
	assert.Equal(t, voxel.At(11, top, -5), max)
}

func TestBuildKeep(t *testing.T) {
	keep := BuildKeep(DefaultCastle().Keep)

	assert.Equal(t, 565, keep.Len())
	assert.Equal(t, 50, keep.CountByTag()[voxel.Accent])

	// Ring stops three courses short; core reaches the top.
	_, ok := keep.At(voxel.At(3, 9+2, 0))
	assert.True(t, ok)
	_, ok = keep.At(voxel.At(3, 10+2, 0))
	assert.False(t, ok)
	v, ok := keep.At(voxel.At(2, 12+2, 2))
	require.True(t, ok)
	assert.Equal(t, voxel.Accent, v.Tag)

	min, _, _ := keep.Bounds()
	assert.Equal(t, 2, min.Y)
}

func TestBuildCastle(t *testing.T) {
	parts := BuildCastle(DefaultCastle())
	require.Len(t, parts, 6)

	names := make([]string, len(parts))
	total := 0
	for i, p := range parts {
		names[i] = p.Name
		total += p.Len()
		assert.Empty(t, p.Duplicates(), "%s has duplicate positions", p.Name)
	}
	assert.Equal(t, []string{"walls", "tower-se", "tower-sw", "tower-ne", "tower-nw", "keep"}, names)
	assert.Equal(t, 2820, total)
}

func TestCastleNegativeStudRemainder(t *testing.T) {
	// (x+z) = -4 must still produce a stud.
	walls := BuildWalls(DefaultCastle())
	v, ok := walls.At(voxel.At(-1, 1, -3))
	require.True(t, ok)
	assert.Equal(t, voxel.Accent, v.Tag)

	_, ok = walls.At(voxel.At(-1, 1, -2))
	assert.False(t, ok)
}
