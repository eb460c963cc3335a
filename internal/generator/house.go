package generator

import (
	"fmt"

	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

// HouseSpec places one village house. Width and Depth are half-extents.
type HouseSpec struct {
	Center voxel.Lattice
	Width  int
	Depth  int
	Levels int
}

// BuildHouse builds a house in local coordinates around (0, 0). The caller
// translates it to Center.
func BuildHouse(spec HouseSpec) *voxel.Structure {
	w, d, levels := spec.Width, spec.Depth, spec.Levels
	house := voxel.NewStructure(fmt.Sprintf("house(%d,%d)", spec.Center.X, spec.Center.Z))

	for x := -w; x <= w; x++ {
		for z := -d; z <= d; z++ {
			tag := voxel.Vegetation
			if isHouseEdge(x, z, w, d) {
				tag = voxel.Wall
			}
			for y := 0; y < levels; y++ {
				house.Place(voxel.At(x, y+1, z), tag)
			}
		}
	}

	for layer := 0; layer < levels; layer++ {
		rw, rd := w-layer, d-layer
		roofY := levels + layer + 1
		for x := -rw; x <= rw; x++ {
			for z := -rd; z <= rd; z++ {
				house.Place(voxel.At(x, roofY, z), voxel.Roof)
			}
		}
	}

	gable := (levels+1)/2 + 1
	house.Place(voxel.At(0, gable, d+1), voxel.Vegetation)
	house.Place(voxel.At(0, gable, -d-1), voxel.Vegetation)

	return house
}

// isHouseEdge reports whether (x, z) is an outer wall cell, including the
// chamfered cells just inside each corner.
func isHouseEdge(x, z, w, d int) bool {
	ax, az := abs(x), abs(z)
	return ax == w || az == d || (ax == w-1 && az == d-1)
}

// RoofFootprint returns the x and z cell counts of roof layer k. A layer
// whose extent goes negative is empty.
func RoofFootprint(spec HouseSpec, layer int) (int, int) {
	rw, rd := spec.Width-layer, spec.Depth-layer
	if rw < 0 || rd < 0 {
		return 0, 0
	}
	return 2*rw + 1, 2*rd + 1
}
