// Package water provides the animated water surface: a subdivided plane
// whose vertices ride a sum of travelling sine waves.
package water

import "math"

// Default surface dimensions.
const (
	DefaultSize     = 260.0
	DefaultSegments = 120
	DefaultLevel    = -0.5
)

// Displacement returns the wave height at (x, z) after t seconds. It is a
// pure function of its arguments.
func Displacement(x, z, t float64) float64 {
	return math.Sin((x+t*8)*0.05)*0.45 +
		math.Cos((z+t*6)*0.05)*0.35 +
		math.Sin((x+z+t*4)*0.04)*0.25
}

// Surface holds the water grid. Positions and normals are flat x,y,z
// arrays; heights are relative to Level, which the renderer applies as the
// instance offset.
type Surface struct {
	Size     float64
	Segments int
	Level    float64

	positions []float32
	base      []float32
	normals   []float32
	indices   []uint32
	dirty     bool
}

// NewSurface builds a flat size x size grid with segments quads per side,
// centred on the origin in the XZ plane.
func NewSurface(size float64, segments int, level float64) *Surface {
	if segments < 1 {
		segments = 1
	}
	n := segments + 1
	s := &Surface{
		Size:      size,
		Segments:  segments,
		Level:     level,
		positions: make([]float32, 0, n*n*3),
		normals:   make([]float32, n*n*3),
		indices:   make([]uint32, 0, segments*segments*6),
		dirty:     true,
	}

	step := size / float64(segments)
	half := size / 2
	for iz := 0; iz < n; iz++ {
		z := float32(-half + float64(iz)*step)
		for ix := 0; ix < n; ix++ {
			x := float32(-half + float64(ix)*step)
			s.positions = append(s.positions, x, 0, z)
		}
	}
	s.base = make([]float32, n*n)

	for iz := 0; iz < segments; iz++ {
		for ix := 0; ix < segments; ix++ {
			a := uint32(iz*n + ix)
			b := uint32((iz+1)*n + ix)
			c := uint32((iz+1)*n + ix + 1)
			d := uint32(iz*n + ix + 1)
			s.indices = append(s.indices, a, b, d, b, c, d)
		}
	}

	s.computeNormals()
	return s
}

// Default returns the stock 260x260 surface.
func Default() *Surface {
	return NewSurface(DefaultSize, DefaultSegments, DefaultLevel)
}

// Update displaces every vertex for the given elapsed time and recomputes
// smooth normals.
func (s *Surface) Update(elapsed float64) {
	for i := range s.base {
		p := s.positions[i*3 : i*3+3]
		p[1] = s.base[i] + float32(Displacement(float64(p[0]), float64(p[2]), elapsed))
	}
	s.computeNormals()
	s.dirty = true
}

// computeNormals accumulates area-weighted face normals per vertex.
func (s *Surface) computeNormals() {
	clear(s.normals)
	pos := s.positions
	for i := 0; i < len(s.indices); i += 3 {
		ia, ib, ic := s.indices[i]*3, s.indices[i+1]*3, s.indices[i+2]*3
		e1x, e1y, e1z := pos[ib]-pos[ia], pos[ib+1]-pos[ia+1], pos[ib+2]-pos[ia+2]
		e2x, e2y, e2z := pos[ic]-pos[ia], pos[ic+1]-pos[ia+1], pos[ic+2]-pos[ia+2]
		nx := e1y*e2z - e1z*e2y
		ny := e1z*e2x - e1x*e2z
		nz := e1x*e2y - e1y*e2x
		for _, v := range [3]uint32{ia, ib, ic} {
			s.normals[v] += nx
			s.normals[v+1] += ny
			s.normals[v+2] += nz
		}
	}
	for i := 0; i < len(s.normals); i += 3 {
		x, y, z := s.normals[i], s.normals[i+1], s.normals[i+2]
		l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
		if l > 0 {
			s.normals[i], s.normals[i+1], s.normals[i+2] = x/l, y/l, z/l
		}
	}
}

// Positions returns the current vertex positions (x,y,z per vertex).
func (s *Surface) Positions() []float32 { return s.positions }

// Normals returns the current vertex normals.
func (s *Surface) Normals() []float32 { return s.normals }

// Indices returns the triangle list.
func (s *Surface) Indices() []uint32 { return s.indices }

// VertexCount returns the number of grid vertices.
func (s *Surface) VertexCount() int { return len(s.base) }

// Height returns the displaced height of vertex i relative to Level.
func (s *Surface) Height(i int) float32 { return s.positions[i*3+1] }

// Dirty reports whether vertices changed since the last ClearDirty.
func (s *Surface) Dirty() bool { return s.dirty }

// ClearDirty marks the current vertices as uploaded.
func (s *Surface) ClearDirty() { s.dirty = false }

// Interleave writes position+normal pairs into dst, growing it as needed,
// and returns it.
func (s *Surface) Interleave(dst []float32) []float32 {
	n := s.VertexCount() * 6
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i := 0; i < s.VertexCount(); i++ {
		copy(dst[i*6:i*6+3], s.positions[i*3:i*3+3])
		copy(dst[i*6+3:i*6+6], s.normals[i*3:i*3+3])
	}
	return dst
}
