package generator

import (
	"fmt"

	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

// DefaultTreeHeight is used when a tree spec leaves Height at zero.
const DefaultTreeHeight = 5

// TreeSpec places one tree at Base (x, z).
type TreeSpec struct {
	Base   voxel.Lattice
	Height int
}

// CanopyRadius returns the foliage radius of the canopy layer at y.
func CanopyRadius(height, y int) int {
	return max(1, height-y)
}

// BuildTree builds a tree in local coordinates: a trunk for the lower half
// and a tapering diamond canopy above it. Everything sits one voxel up so
// the trunk starts on top of the ground course.
func BuildTree(spec TreeSpec) *voxel.Structure {
	h := spec.Height
	if h == 0 {
		h = DefaultTreeHeight
	}
	tree := voxel.NewStructure(fmt.Sprintf("tree(%d,%d)", spec.Base.X, spec.Base.Z))

	trunk := h / 2
	for y := 0; y < trunk; y++ {
		tree.Place(voxel.At(0, y+1, 0), voxel.Trunk)
	}

	for y := trunk; y < h; y++ {
		r := CanopyRadius(h, y)
		for x := -r; x <= r; x++ {
			for z := -r; z <= r; z++ {
				if abs(x)+abs(z) <= r+1 {
					tree.Place(voxel.At(x, y+1, z), voxel.Foliage)
				}
			}
		}
	}

	return tree
}
