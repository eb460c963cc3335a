// Package scene turns a composed diorama into renderable batches: shared
// geometries, one material per voxel tag, and instance lists per node.
// GPU upload goes through the Device interface so the graph can be built
// and torn down without a GL context.
package scene

import (
	"github.com/Faultbox/voxel-citadel/internal/engine/gfx"
	"github.com/Faultbox/voxel-citadel/internal/engine/lighting"
	"github.com/Faultbox/voxel-citadel/internal/engine/particles"
	"github.com/Faultbox/voxel-citadel/internal/engine/water"
	"github.com/Faultbox/voxel-citadel/internal/terrain"
	"github.com/Faultbox/voxel-citadel/internal/voxel"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// Scene colours.
const (
	BackgroundColor = 0x0c1a2e
	ClearColor      = 0x07101f
	FogColor        = 0x0f243a
	FogDensity      = 0.012
	GroundSize      = 240
)

// Material is the renderable form of one shared appearance.
type Material struct {
	Name       string
	Appearance *voxel.Appearance

	Transparent bool
	DepthWrite  bool
	PointSize   float32

	Handle gfx.Resource
}

// Batch draws one geometry with one material at every instance position.
type Batch struct {
	Name      string
	Geometry  *Geometry
	Material  *Material
	Instances []math.Vec3

	CastShadow    bool
	ReceiveShadow bool

	Handle gfx.Resource
}

// Node groups the batches built from one diorama group.
type Node struct {
	Name    string
	Origin  math.Vec3
	Batches []*Batch
}

// Fog is exponential-squared distance fog.
type Fog struct {
	Enabled bool
	Color   uint32
	Density float32
}

// Scene is the full render description.
type Scene struct {
	Background uint32
	Clear      uint32
	Fog        Fog
	Exposure   float32
	Shadows    bool
	Lights     lighting.Rig

	Ground *Batch
	Nodes  []*Node
	Water  *Batch
	Mist   *Batch

	Surface *water.Surface
	Field   *particles.Field
}

// Options tunes assembly.
type Options struct {
	Fog      bool
	Shadows  bool
	Exposure float32
}

// DefaultOptions enables fog and shadows at exposure 1.1.
func DefaultOptions() Options {
	return Options{Fog: true, Shadows: true, Exposure: 1.1}
}

var mistAppearance = voxel.Appearance{Color: 0xffffff, Opacity: particles.Opacity}

// assembler hands out shared geometries and materials.
type assembler struct {
	cube      *Geometry
	slab      *Geometry
	materials map[*voxel.Appearance]*Material
}

func (a *assembler) material(app *voxel.Appearance, name string) *Material {
	if m, ok := a.materials[app]; ok {
		return m
	}
	m := &Material{
		Name:        name,
		Appearance:  app,
		Transparent: app.Transparent(),
		DepthWrite:  true,
	}
	a.materials[app] = m
	return m
}

func (a *assembler) tagMaterial(tag voxel.MaterialTag) *Material {
	return a.material(voxel.Lookup(tag), tag.String())
}

// node converts a group into one cube batch per tag, in tag order, plus a
// slab batch for its path cells.
func (a *assembler) node(g *terrain.Group) *Node {
	byTag := make(map[voxel.MaterialTag][]math.Vec3)
	g.Each(func(pos voxel.Lattice, v voxel.Voxel) {
		byTag[v.Tag] = append(byTag[v.Tag], voxel.WorldPosition(pos).Add(g.Origin))
	})

	n := &Node{Name: g.Name, Origin: g.Origin}
	for _, tag := range voxel.Tags() {
		inst := byTag[tag]
		if len(inst) == 0 {
			continue
		}
		n.Batches = append(n.Batches, &Batch{
			Name:          g.Name + "/" + tag.String(),
			Geometry:      a.cube,
			Material:      a.tagMaterial(tag),
			Instances:     inst,
			CastShadow:    true,
			ReceiveShadow: true,
		})
	}

	if len(g.Paths) > 0 {
		inst := make([]math.Vec3, len(g.Paths))
		for i, c := range g.Paths {
			inst[i] = c.WorldPosition().Add(g.Origin)
		}
		n.Batches = append(n.Batches, &Batch{
			Name:          g.Name + "/path",
			Geometry:      a.slab,
			Material:      a.tagMaterial(voxel.Path),
			Instances:     inst,
			ReceiveShadow: true,
		})
	}
	return n
}

// Assemble builds the scene for a diorama. surf and mist may be nil, in
// which case the water or mist batch is omitted.
func Assemble(d *terrain.Diorama, surf *water.Surface, mist *particles.Field, opts Options) *Scene {
	a := &assembler{
		cube:      NewCube(),
		slab:      NewSlab(),
		materials: make(map[*voxel.Appearance]*Material),
	}

	s := &Scene{
		Background: BackgroundColor,
		Clear:      ClearColor,
		Fog:        Fog{Enabled: opts.Fog, Color: FogColor, Density: FogDensity},
		Exposure:   opts.Exposure,
		Shadows:    opts.Shadows,
		Lights:     lighting.DefaultRig(),
		Surface:    surf,
		Field:      mist,
	}
	s.Lights.Sun.CastShadow = opts.Shadows

	s.Ground = &Batch{
		Name:          "ground",
		Geometry:      NewPlane("ground", GroundSize),
		Material:      a.tagMaterial(voxel.Ground),
		Instances:     []math.Vec3{{}},
		ReceiveShadow: true,
	}

	if d != nil {
		for _, g := range d.Groups() {
			s.Nodes = append(s.Nodes, a.node(g))
		}
	}

	if surf != nil {
		s.Water = &Batch{
			Name:          "water",
			Geometry:      NewWaterGrid(surf),
			Material:      a.tagMaterial(voxel.Water),
			Instances:     []math.Vec3{{Y: float32(surf.Level)}},
			ReceiveShadow: true,
		}
	}

	if mist != nil {
		m := a.material(&mistAppearance, "mist")
		m.Transparent = true
		m.DepthWrite = false
		m.PointSize = particles.PointSize
		s.Mist = &Batch{
			Name:      "mist",
			Geometry:  NewMistPoints(mist),
			Material:  m,
			Instances: []math.Vec3{{}},
		}
	}

	return s
}

// Batches returns every batch in draw order: ground, nodes, water, mist.
func (s *Scene) Batches() []*Batch {
	var out []*Batch
	if s.Ground != nil {
		out = append(out, s.Ground)
	}
	for _, n := range s.Nodes {
		out = append(out, n.Batches...)
	}
	if s.Water != nil {
		out = append(out, s.Water)
	}
	if s.Mist != nil {
		out = append(out, s.Mist)
	}
	return out
}

// Geometries returns each distinct geometry once, in first-use order.
func (s *Scene) Geometries() []*Geometry {
	seen := make(map[*Geometry]bool)
	var out []*Geometry
	for _, b := range s.Batches() {
		if !seen[b.Geometry] {
			seen[b.Geometry] = true
			out = append(out, b.Geometry)
		}
	}
	return out
}

// Materials returns each distinct material once, in first-use order.
func (s *Scene) Materials() []*Material {
	seen := make(map[*Material]bool)
	var out []*Material
	for _, b := range s.Batches() {
		if !seen[b.Material] {
			seen[b.Material] = true
			out = append(out, b.Material)
		}
	}
	return out
}

// InstanceCount returns the total number of drawn instances.
func (s *Scene) InstanceCount() int {
	n := 0
	for _, b := range s.Batches() {
		n += len(b.Instances)
	}
	return n
}
