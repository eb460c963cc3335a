package voxel

// Structure is a named, ordered collection of voxels sharing a local origin.
// Placement order is preserved; positions are indexed for exact lookup.
type Structure struct {
	Name   string
	voxels []Voxel
	index  map[Lattice]int
}

// NewStructure creates an empty structure.
func NewStructure(name string) *Structure {
	return &Structure{
		Name:  name,
		index: make(map[Lattice]int),
	}
}

// Place appends one voxel. It never validates bounds or fails.
func (s *Structure) Place(pos Lattice, tag MaterialTag) {
	if _, taken := s.index[pos]; !taken {
		s.index[pos] = len(s.voxels)
	}
	s.voxels = append(s.voxels, Voxel{Pos: pos, Tag: tag})
}

// Remove deletes the first voxel at pos, keeping the order of the rest.
// It reports false when nothing occupies pos.
func (s *Structure) Remove(pos Lattice) bool {
	i, ok := s.index[pos]
	if !ok {
		return false
	}
	s.voxels = append(s.voxels[:i], s.voxels[i+1:]...)
	s.reindex()
	return true
}

func (s *Structure) reindex() {
	clear(s.index)
	for i, v := range s.voxels {
		if _, taken := s.index[v.Pos]; !taken {
			s.index[v.Pos] = i
		}
	}
}

// At returns the voxel at pos.
func (s *Structure) At(pos Lattice) (Voxel, bool) {
	i, ok := s.index[pos]
	if !ok {
		return Voxel{}, false
	}
	return s.voxels[i], true
}

// Len returns the number of voxels.
func (s *Structure) Len() int {
	return len(s.voxels)
}

// Voxels returns a copy of the voxels in placement order.
func (s *Structure) Voxels() []Voxel {
	out := make([]Voxel, len(s.voxels))
	copy(out, s.voxels)
	return out
}

// Each calls fn for every voxel in placement order.
func (s *Structure) Each(fn func(Voxel)) {
	for _, v := range s.voxels {
		fn(v)
	}
}

// Bounds returns the inclusive lattice bounding box.
func (s *Structure) Bounds() (min, max Lattice, ok bool) {
	if len(s.voxels) == 0 {
		return Lattice{}, Lattice{}, false
	}
	min, max = s.voxels[0].Pos, s.voxels[0].Pos
	for _, v := range s.voxels[1:] {
		p := v.Pos
		min.X, max.X = minmax(min.X, max.X, p.X)
		min.Y, max.Y = minmax(min.Y, max.Y, p.Y)
		min.Z, max.Z = minmax(min.Z, max.Z, p.Z)
	}
	return min, max, true
}

func minmax(lo, hi, v int) (int, int) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// CountByTag tallies voxels per material.
func (s *Structure) CountByTag() map[MaterialTag]int {
	counts := make(map[MaterialTag]int)
	for _, v := range s.voxels {
		counts[v.Tag]++
	}
	return counts
}

// Duplicates lists positions occupied more than once, in first-seen order.
func (s *Structure) Duplicates() []Lattice {
	if len(s.index) == len(s.voxels) {
		return nil
	}
	seen := make(map[Lattice]int, len(s.voxels))
	var dups []Lattice
	for _, v := range s.voxels {
		seen[v.Pos]++
		if seen[v.Pos] == 2 {
			dups = append(dups, v.Pos)
		}
	}
	return dups
}
