// Package generator builds the voxel structures of the diorama: the castle
// (walls, gate, towers, keep), village houses and trees. Builders are pure
// functions of their spec and never fail.
package generator

import (
	"fmt"

	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

// TowerSpec sizes a corner tower.
type TowerSpec struct {
	Height int
	Radius int
}

// KeepSpec sizes the central keep. Lift raises it off the courtyard floor.
type KeepSpec struct {
	Radius int
	Height int
	Lift   int
}

// CastleSpec holds every castle dimension.
type CastleSpec struct {
	BaseRadius int
	WallHeight int
	GateWidth  int
	Tower      TowerSpec
	Keep       KeepSpec
}

// poleLength is how far a flagpole rises above its tower.
const poleLength = 5

// DefaultCastle returns the stock castle dimensions.
func DefaultCastle() CastleSpec {
	return CastleSpec{
		BaseRadius: 8,
		WallHeight: 7,
		GateWidth:  3,
		Tower:      TowerSpec{Height: 16, Radius: 3},
		Keep:       KeepSpec{Radius: 3, Height: 13, Lift: 2},
	}
}

// chebyshev returns max(|x|, |z|).
func chebyshev(x, z int) int {
	return max(abs(x), abs(z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// BuildWalls lays the courtyard floor and the perimeter wall of the castle.
//
// Inside the perimeter every cell gets a stone floor voxel plus an accent
// stud where (x+z) is a multiple of 4. Perimeter cells get a full stone
// column with an accent top course, and a capstone above it where |x| or
// |z| is even.
func BuildWalls(spec CastleSpec) *voxel.Structure {
	r, h := spec.BaseRadius, spec.WallHeight
	walls := voxel.NewStructure("walls")

	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			edge := chebyshev(x, z)

			if edge < r {
				walls.Place(voxel.At(x, 0, z), voxel.Stone)
				if (x+z)%4 == 0 {
					walls.Place(voxel.At(x, 1, z), voxel.Accent)
				}
			}

			if edge == r {
				for y := 0; y < h; y++ {
					tag := voxel.Stone
					if y == h-1 {
						tag = voxel.Accent
					}
					walls.Place(voxel.At(x, y, z), tag)
				}
				if abs(x)%2 == 0 || abs(z)%2 == 0 {
					walls.Place(voxel.At(x, h, z), voxel.Accent)
				}
			}
		}
	}

	return walls
}

// CutGate opens the gate in the +Z wall and returns how many voxels it removed.
// Positions with nothing to remove are skipped.
func CutGate(walls *voxel.Structure, spec CastleSpec) int {
	removed := 0
	for y := 1; y < spec.WallHeight-1; y++ {
		for x := -spec.GateWidth; x <= spec.GateWidth; x++ {
			if walls.Remove(voxel.At(x, y, spec.BaseRadius)) {
				removed++
			}
		}
	}
	return removed
}

// BuildTower builds a square tower centred on center, rising from the wall
// top to the tower height, crowned with a flagpole and a two-voxel flag.
func BuildTower(center voxel.Lattice, wallHeight int, spec TowerSpec) *voxel.Structure {
	tower := voxel.NewStructure("tower-" + compass(center))
	r, h := spec.Radius, spec.Height

	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			d := chebyshev(x, z)
			ax, az := center.X+x, center.Z+z

			switch {
			case d == r:
				for y := wallHeight; y < h; y++ {
					tag := voxel.Stone
					if y >= h-2 {
						tag = voxel.Accent
					}
					tower.Place(voxel.At(ax, y, az), tag)
				}
			case d < r:
				for y := wallHeight; y < h-3; y++ {
					tower.Place(voxel.At(ax, y, az), voxel.Stone)
				}
			}
		}
	}

	top := h + poleLength
	for y := h; y <= top; y++ {
		tower.Place(voxel.At(center.X, y, center.Z), voxel.Accent)
	}
	tower.Place(voxel.At(center.X+1, top, center.Z), voxel.Flag)
	tower.Place(voxel.At(center.X+2, top-1, center.Z), voxel.Flag)

	return tower
}

// compass names a tower by its quadrant; -Z is north.
func compass(c voxel.Lattice) string {
	ns := "s"
	if c.Z < 0 {
		ns = "n"
	}
	ew := "e"
	if c.X < 0 {
		ew = "w"
	}
	return ns + ew
}

// BuildKeep builds the central keep: a solid core whose outer ring stops
// three courses short of the top, with an accent crown.
func BuildKeep(spec KeepSpec) *voxel.Structure {
	keep := voxel.NewStructure("keep")
	r, h := spec.Radius, spec.Height

	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			d := chebyshev(x, z)
			for y := 0; y < h; y++ {
				if d > r-1 && y >= h-3 {
					continue
				}
				tag := voxel.Stone
				if y >= h-2 {
					tag = voxel.Accent
				}
				keep.Place(voxel.At(x, y+spec.Lift, z), tag)
			}
		}
	}

	return keep
}

// TowerCenters returns the four corner tower positions in build order.
func TowerCenters(baseRadius int) []voxel.Lattice {
	r := baseRadius
	return []voxel.Lattice{
		voxel.At(r, 0, r),
		voxel.At(-r, 0, r),
		voxel.At(r, 0, -r),
		voxel.At(-r, 0, -r),
	}
}

// BuildCastle builds the gated walls, the four towers and the keep, in that
// order. Each part is its own structure so no part holds a position twice.
func BuildCastle(spec CastleSpec) []*voxel.Structure {
	walls := BuildWalls(spec)
	CutGate(walls, spec)

	parts := []*voxel.Structure{walls}
	for _, c := range TowerCenters(spec.BaseRadius) {
		parts = append(parts, BuildTower(c, spec.WallHeight, spec.Tower))
	}
	return append(parts, BuildKeep(spec.Keep))
}

// String describes the castle dimensions for logs.
func (s CastleSpec) String() string {
	return fmt.Sprintf("radius=%d wall=%d gate=%d tower=%dx%d keep=%dx%d",
		s.BaseRadius, s.WallHeight, s.GateWidth,
		s.Tower.Radius, s.Tower.Height, s.Keep.Radius, s.Keep.Height)
}
