package terrain

import (
	"math"

	"github.com/Faultbox/voxel-citadel/internal/generator"
	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

// PathRun is a straight path along one axis with a sparse, jittered
// shoulder lane beside it.
type PathRun struct {
	AlongX bool // run varies x at fixed Fixed (z); otherwise varies z at fixed x
	Fixed  int
	From   int
	To     int

	ShoulderFixed int
	ShoulderEvery int
	Jitter        func(i int) float64
}

// VillageLayout lists everything placed in the village.
type VillageLayout struct {
	Houses []generator.HouseSpec
	Paths  []PathRun
	Trees  []generator.TreeSpec
}

// DefaultVillage returns the stock coastal village.
func DefaultVillage() VillageLayout {
	house := func(cx, cz, w, d, levels int) generator.HouseSpec {
		return generator.HouseSpec{Center: voxel.At(cx, 0, cz), Width: w, Depth: d, Levels: levels}
	}
	tree := func(x, z, h int) generator.TreeSpec {
		return generator.TreeSpec{Base: voxel.At(x, 0, z), Height: h}
	}

	return VillageLayout{
		Houses: []generator.HouseSpec{
			house(16, 12, 3, 3, 3),
			house(-18, 10, 3, 2, 3),
			house(20, -12, 4, 3, 4),
			house(-15, -14, 3, 2, 2),
			house(8, 18, 2, 2, 2),
			house(-8, 19, 2, 2, 3),
		},
		Paths: []PathRun{
			{
				AlongX: true, Fixed: 6, From: -25, To: 25,
				ShoulderFixed: 5, ShoulderEvery: 2,
				Jitter: func(x int) float64 { return math.Sin(float64(x)*0.2) * 0.1 },
			},
			{
				AlongX: false, Fixed: -5, From: 6, To: 25,
				ShoulderFixed: -6, ShoulderEvery: 3,
				Jitter: func(z int) float64 { return math.Cos(float64(z)*0.2) * 0.12 },
			},
		},
		Trees: []generator.TreeSpec{
			tree(22, 18, 6),
			tree(-22, 16, 7),
			tree(24, -16, 6),
			tree(-24, -18, 5),
			tree(6, 24, 4),
			tree(-6, 26, 5),
		},
	}
}

// Cells lays out the run's path cells in order: each main cell, followed
// by its shoulder cell where i is a multiple of ShoulderEvery.
func (r PathRun) Cells() []voxel.PathCell {
	cell := func(along, across int, elev float64) voxel.PathCell {
		if r.AlongX {
			return voxel.PathCell{X: along, Z: across, Elevation: elev}
		}
		return voxel.PathCell{X: across, Z: along, Elevation: elev}
	}

	var cells []voxel.PathCell
	for i := r.From; i <= r.To; i++ {
		cells = append(cells, cell(i, r.Fixed, 0))
		if r.ShoulderEvery > 0 && i%r.ShoulderEvery == 0 {
			elev := 0.0
			if r.Jitter != nil {
				elev = r.Jitter(i)
			}
			cells = append(cells, cell(i, r.ShoulderFixed, elev))
		}
	}
	return cells
}

// ComposeVillage builds every house and tree of the layout and lays its
// paths. Crossing runs may repeat a cell; both copies are kept.
func ComposeVillage(layout VillageLayout) *Group {
	village := &Group{Name: "village"}

	for _, h := range layout.Houses {
		village.Add(generator.BuildHouse(h), voxel.At(h.Center.X, 0, h.Center.Z))
	}
	for _, run := range layout.Paths {
		village.Paths = append(village.Paths, run.Cells()...)
	}
	for _, t := range layout.Trees {
		village.Add(generator.BuildTree(t), voxel.At(t.Base.X, 0, t.Base.Z))
	}

	return village
}
