package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructurePlaceKeepsOrder(t *testing.T) {
	s := NewStructure("test")
	s.Place(At(0, 0, 0), Stone)
	s.Place(At(1, 0, 0), Accent)
	s.Place(At(2, 0, 0), Flag)

	require.Equal(t, 3, s.Len())
	got := s.Voxels()
	assert.Equal(t, []Voxel{
		{Pos: At(0, 0, 0), Tag: Stone},
		{Pos: At(1, 0, 0), Tag: Accent},
		{Pos: At(2, 0, 0), Tag: Flag},
	}, got)

	// Voxels hands out a copy.
	got[0].Tag = Roof
	v, ok := s.At(At(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, Stone, v.Tag)
}

func TestStructureRemove(t *testing.T) {
	s := NewStructure("test")
	for x := 0; x < 5; x++ {
		s.Place(At(x, 0, 0), Stone)
	}

	assert.True(t, s.Remove(At(2, 0, 0)))
	assert.False(t, s.Remove(At(2, 0, 0)), "second removal should be a silent skip")
	assert.False(t, s.Remove(At(9, 9, 9)))

	var xs []int
	s.Each(func(v Voxel) { xs = append(xs, v.Pos.X) })
	assert.Equal(t, []int{0, 1, 3, 4}, xs)

	// Indexes after the removed slot must still resolve.
	v, ok := s.At(At(4, 0, 0))
	require.True(t, ok)
	assert.Equal(t, At(4, 0, 0), v.Pos)
}

func TestStructureBounds(t *testing.T) {
	s := NewStructure("empty")
	_, _, ok := s.Bounds()
	assert.False(t, ok)

	s.Place(At(-2, 0, 3), Stone)
	s.Place(At(4, 7, -1), Stone)
	min, max, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, At(-2, 0, -1), min)
	assert.Equal(t, At(4, 7, 3), max)
}

func TestStructureDuplicates(t *testing.T) {
	s := NewStructure("dups")
	s.Place(At(0, 0, 0), Stone)
	s.Place(At(1, 0, 0), Stone)
	assert.Empty(t, s.Duplicates())

	s.Place(At(0, 0, 0), Accent)
	s.Place(At(0, 0, 0), Flag)
	assert.Equal(t, []Lattice{At(0, 0, 0)}, s.Duplicates())

	counts := s.CountByTag()
	assert.Equal(t, 2, counts[Stone])
	assert.Equal(t, 1, counts[Accent])
	assert.Equal(t, 1, counts[Flag])
}

func TestLookupSharesDescriptor(t *testing.T) {
	a := Lookup(Stone)
	b := Lookup(Stone)
	assert.Same(t, a, b)
	assert.NotSame(t, Lookup(Stone), Lookup(Wall))
	assert.Nil(t, Lookup(MaterialTag(200)))

	assert.True(t, Lookup(Water).Transparent())
	assert.False(t, Lookup(Ground).Transparent())
}

func TestParseTag(t *testing.T) {
	for _, tag := range Tags() {
		got, err := ParseTag(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, got)
	}

	_, err := ParseTag("marble")
	assert.Error(t, err)
}

func TestWorldPosition(t *testing.T) {
	p := WorldPosition(At(1, 0, -2))
	assert.InDelta(t, 1.4, p.X, 1e-6)
	assert.InDelta(t, 0.7, p.Y, 1e-6)
	assert.InDelta(t, -2.8, p.Z, 1e-6)

	c := PathCell{X: 2, Z: 1, Elevation: 0.1}.WorldPosition()
	assert.InDelta(t, 2.8, c.X, 1e-6)
	assert.InDelta(t, 0.24, c.Y, 1e-6)
	assert.InDelta(t, 1.4, c.Z, 1e-6)
}
