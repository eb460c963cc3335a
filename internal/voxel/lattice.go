// Package voxel defines the voxel primitives the generators emit: lattice
// coordinates, material tags with their shared appearances, structures and
// path cells.
package voxel

import "github.com/Faultbox/voxel-citadel/pkg/math"

// UnitSize is the world-space edge length of one voxel.
const UnitSize = 1.4

// PathHeight is the height of a path cell relative to UnitSize.
const PathHeight = 0.2

// Lattice is an integer voxel coordinate.
type Lattice struct {
	X, Y, Z int
}

// At is shorthand for Lattice{x, y, z}.
func At(x, y, z int) Lattice {
	return Lattice{X: x, Y: y, Z: z}
}

// Add returns l + o.
func (l Lattice) Add(o Lattice) Lattice {
	return Lattice{l.X + o.X, l.Y + o.Y, l.Z + o.Z}
}

// WorldPosition returns the centre of the voxel in world space. The half-unit
// lift makes y=0 voxels sit on the ground plane.
func WorldPosition(l Lattice) math.Vec3 {
	return math.V3(
		float64(l.X)*UnitSize,
		float64(l.Y)*UnitSize+UnitSize/2,
		float64(l.Z)*UnitSize,
	)
}

// Voxel is one placed unit cube.
type Voxel struct {
	Pos Lattice
	Tag MaterialTag
}

// PathCell is a flattened ground tile with a small elevation jitter.
type PathCell struct {
	X, Z      int
	Elevation float64
}

// WorldPosition returns the centre of the path slab in world space.
func (c PathCell) WorldPosition() math.Vec3 {
	return math.V3(
		float64(c.X)*UnitSize,
		c.Elevation+UnitSize*PathHeight/2,
		float64(c.Z)*UnitSize,
	)
}
