package scene

import (
	"github.com/Faultbox/voxel-citadel/internal/engine/gfx"
	"github.com/Faultbox/voxel-citadel/internal/engine/particles"
	"github.com/Faultbox/voxel-citadel/internal/engine/water"
	"github.com/Faultbox/voxel-citadel/internal/voxel"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// GeometryKind identifies the vertex layout and draw mode of a geometry.
type GeometryKind int

const (
	KindCube   GeometryKind = iota // unit voxel box
	KindSlab                       // flattened path box
	KindPlane                      // ground quad
	KindGrid                       // animated water grid
	KindPoints                     // mist point sprites
)

// String returns the kind name.
func (k GeometryKind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindSlab:
		return "slab"
	case KindPlane:
		return "plane"
	case KindGrid:
		return "grid"
	case KindPoints:
		return "points"
	default:
		return "unknown"
	}
}

// Geometry is vertex data shared by any number of batches. Vertices are
// interleaved position+normal, or position+colour for points.
type Geometry struct {
	Name     string
	Kind     GeometryKind
	Vertices []float32
	Indices  []uint32
	Dynamic  bool

	Handle gfx.Resource
}

// FloatsPerVertex is the interleaved stride of every geometry.
const FloatsPerVertex = 6

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / FloatsPerVertex
}

// boxFaces lists each face as normal, u, v with u x v = normal so the
// corner order below winds counter-clockwise seen from outside.
var boxFaces = [6][3]math.Vec3{
	{{X: 1}, {Z: -1}, {Y: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {X: 1}, {Z: -1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {X: -1}, {Y: 1}},
}

// NewBox builds a box of the given size centred on the origin: four
// vertices and two triangles per face.
func NewBox(name string, kind GeometryKind, size math.Vec3) *Geometry {
	half := size.Scale(0.5)
	g := &Geometry{
		Name:     name,
		Kind:     kind,
		Vertices: make([]float32, 0, 24*FloatsPerVertex),
		Indices:  make([]uint32, 0, 36),
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for f, face := range boxFaces {
		n, u, v := face[0], face[1], face[2]
		for _, c := range corners {
			p := n.Add(u.Scale(c[0])).Add(v.Scale(c[1]))
			g.Vertices = append(g.Vertices,
				p.X*half.X, p.Y*half.Y, p.Z*half.Z,
				n.X, n.Y, n.Z)
		}
		base := uint32(f * 4)
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewCube returns the shared voxel cube.
func NewCube() *Geometry {
	u := float32(voxel.UnitSize)
	return NewBox("voxel", KindCube, math.Vec3{X: u, Y: u, Z: u})
}

// NewSlab returns the shared path slab.
func NewSlab() *Geometry {
	u := float32(voxel.UnitSize)
	return NewBox("path", KindSlab, math.Vec3{X: u, Y: u * voxel.PathHeight, Z: u})
}

// NewPlane returns a flat upward-facing square of the given size.
func NewPlane(name string, size float32) *Geometry {
	h := size / 2
	return &Geometry{
		Name: name,
		Kind: KindPlane,
		Vertices: []float32{
			-h, 0, h, 0, 1, 0,
			h, 0, h, 0, 1, 0,
			h, 0, -h, 0, 1, 0,
			-h, 0, -h, 0, 1, 0,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewWaterGrid wraps a water surface. The renderer refreshes its vertices
// whenever the surface is dirty.
func NewWaterGrid(s *water.Surface) *Geometry {
	return &Geometry{
		Name:     "water",
		Kind:     KindGrid,
		Vertices: s.Interleave(nil),
		Indices:  s.Indices(),
		Dynamic:  true,
	}
}

// NewMistPoints wraps a mist field.
func NewMistPoints(f *particles.Field) *Geometry {
	return &Geometry{
		Name:     "mist",
		Kind:     KindPoints,
		Vertices: f.Interleave(nil),
	}
}
