// Package terrain composes generated structures into the diorama's two
// render groups: the castle and the village with its paths and trees.
package terrain

import (
	"github.com/Faultbox/voxel-citadel/internal/voxel"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// Member is a structure placed at a lattice offset within a group.
type Member struct {
	Structure *voxel.Structure
	Offset    voxel.Lattice
}

// Group is a named set of placed structures plus path cells that render as
// one scene node.
type Group struct {
	Name    string
	Origin  math.Vec3
	Members []Member
	Paths   []voxel.PathCell
}

// Add places s at offset.
func (g *Group) Add(s *voxel.Structure, offset voxel.Lattice) {
	g.Members = append(g.Members, Member{Structure: s, Offset: offset})
}

// Each visits every voxel of every member with its group-space position.
func (g *Group) Each(fn func(pos voxel.Lattice, v voxel.Voxel)) {
	for _, m := range g.Members {
		m.Structure.Each(func(v voxel.Voxel) {
			fn(v.Pos.Add(m.Offset), v)
		})
	}
}

// Count returns the number of voxels, not counting path cells.
func (g *Group) Count() int {
	n := 0
	for _, m := range g.Members {
		n += m.Structure.Len()
	}
	return n
}

// CountByTag tallies voxels per material. Path cells count as Path.
func (g *Group) CountByTag() map[voxel.MaterialTag]int {
	counts := make(map[voxel.MaterialTag]int)
	for _, m := range g.Members {
		for tag, n := range m.Structure.CountByTag() {
			counts[tag] += n
		}
	}
	if len(g.Paths) > 0 {
		counts[voxel.Path] += len(g.Paths)
	}
	return counts
}

// Structure returns the member structure with the given name.
func (g *Group) Structure(name string) (Member, bool) {
	for _, m := range g.Members {
		if m.Structure.Name == name {
			return m, true
		}
	}
	return Member{}, false
}
