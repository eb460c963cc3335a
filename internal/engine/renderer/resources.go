package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/voxel-citadel/internal/engine/gfx"
	"github.com/Faultbox/voxel-citadel/internal/engine/lighting"
	"github.com/Faultbox/voxel-citadel/internal/engine/scene"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// Attribute locations shared by every program.
const (
	attribPosition = 0
	attribNormal   = 1 // colour for point geometries
	attribOffset   = 2
)

// materialBinding is the uniform block binding point of the Material block.
const materialBinding = 0

const vertexStride = scene.FloatsPerVertex * 4

// glGeometry is a vertex buffer plus optional index buffer.
type glGeometry struct {
	vbo, ebo uint32
	vertices int32
	indices  int32
	points   bool
}

// Update replaces the vertex data of a dynamic geometry in place.
func (g *glGeometry) Update(data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (g *glGeometry) Release() error {
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	return nil
}

// glMaterial is a Material uniform buffer.
type glMaterial struct {
	ubo uint32
}

func (m *glMaterial) Release() error {
	if m.ubo != 0 {
		gl.DeleteBuffers(1, &m.ubo)
		m.ubo = 0
	}
	return nil
}

// glBatch is a vertex array wiring one geometry to an instance buffer.
type glBatch struct {
	vao, instances uint32
	count          int32
	geometry       *glGeometry
	material       *glMaterial
}

func (b *glBatch) Release() error {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.instances != 0 {
		gl.DeleteBuffers(1, &b.instances)
		b.instances = 0
	}
	return nil
}

// UploadGeometry creates the vertex and index buffers for g.
func (r *Renderer) UploadGeometry(g *scene.Geometry) (gfx.Resource, error) {
	if len(g.Vertices) == 0 {
		return nil, fmt.Errorf("geometry %s has no vertices", g.Name)
	}

	usage := uint32(gl.STATIC_DRAW)
	if g.Dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	out := &glGeometry{
		vertices: int32(g.VertexCount()),
		indices:  int32(len(g.Indices)),
		points:   g.Kind == scene.KindPoints,
	}
	gl.GenBuffers(1, &out.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, out.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*4, gl.Ptr(g.Vertices), usage)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if len(g.Indices) > 0 {
		gl.GenBuffers(1, &out.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, out.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}

	if err := glError("geometry " + g.Name); err != nil {
		_ = out.Release()
		return nil, err
	}
	return out, nil
}

// UploadMaterial creates the uniform buffer for m.
func (r *Renderer) UploadMaterial(m *scene.Material) (gfx.Resource, error) {
	block := materialBlock(m)

	out := &glMaterial{}
	gl.GenBuffers(1, &out.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, out.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, len(block)*4, gl.Ptr(&block[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	if err := glError("material " + m.Name); err != nil {
		_ = out.Release()
		return nil, err
	}
	return out, nil
}

// UploadBatch creates the vertex array and instance buffer for b. Its
// geometry and material must already be uploaded.
func (r *Renderer) UploadBatch(b *scene.Batch) (gfx.Resource, error) {
	geom, ok := b.Geometry.Handle.(*glGeometry)
	if !ok {
		return nil, fmt.Errorf("batch %s: geometry %s not uploaded", b.Name, b.Geometry.Name)
	}
	mat, ok := b.Material.Handle.(*glMaterial)
	if !ok {
		return nil, fmt.Errorf("batch %s: material %s not uploaded", b.Name, b.Material.Name)
	}

	out := &glBatch{geometry: geom, material: mat, count: int32(len(b.Instances))}
	gl.GenVertexArrays(1, &out.vao)
	gl.BindVertexArray(out.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, geom.vbo)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, vertexStride, 3*4)

	if geom.ebo != 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geom.ebo)
	}

	if !geom.points {
		data := instanceData(b.Instances)
		gl.GenBuffers(1, &out.instances)
		gl.BindBuffer(gl.ARRAY_BUFFER, out.instances)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(attribOffset)
		gl.VertexAttribPointerWithOffset(attribOffset, 3, gl.FLOAT, false, 3*4, 0)
		gl.VertexAttribDivisor(attribOffset, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := glError("batch " + b.Name); err != nil {
		_ = out.Release()
		return nil, err
	}
	return out, nil
}

// draw issues the draw call for an uploaded batch.
func (b *glBatch) draw() {
	gl.BindVertexArray(b.vao)
	switch {
	case b.geometry.points:
		gl.DrawArrays(gl.POINTS, 0, b.geometry.vertices)
	case b.geometry.ebo != 0:
		gl.DrawElementsInstanced(gl.TRIANGLES, b.geometry.indices, gl.UNSIGNED_INT, unsafe.Pointer(nil), b.count)
	default:
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, b.geometry.vertices, b.count)
	}
}

// materialBlock packs m in std140 layout: base colour and opacity,
// emissive radiance, then roughness, metalness, transmission and clearcoat.
func materialBlock(m *scene.Material) [12]float32 {
	a := m.Appearance
	base := lighting.Linear(a.Color)
	emissive := lighting.Linear(a.Emissive)
	opacity := a.Opacity
	if opacity == 0 {
		opacity = 1
	}
	return [12]float32{
		base[0], base[1], base[2], opacity,
		emissive[0] * a.EmissiveIntensity, emissive[1] * a.EmissiveIntensity, emissive[2] * a.EmissiveIntensity, 0,
		a.Roughness, a.Metalness, a.Transmission, a.Clearcoat,
	}
}

// instanceData flattens instance offsets into x,y,z triples.
func instanceData(instances []math.Vec3) []float32 {
	out := make([]float32, 0, len(instances)*3)
	for _, p := range instances {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

// glError reports the first pending GL error, draining the rest.
func glError(what string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("%s: GL error 0x%x", what, code)
}
