// Package particles generates the mist ring that drifts around the diorama.
package particles

import (
	"math"
	"math/rand/v2"
)

// Mist defaults.
const (
	DefaultCount = 1200
	BaseColor    = 0x9fc7ff
	PointSize    = 2.5
	Opacity      = 0.35
	SpinPerFrame = 0.0003
)

// Field is a ring of mist points. Positions and colours are flat x,y,z and
// r,g,b arrays; Rotation spins the whole field around Y.
type Field struct {
	Positions []float32
	Colors    []float32
	Rotation  float64
}

// NewField scatters count points in a ring of radius [140, 180) at heights
// [5, 30). The same seed always yields the same field.
func NewField(count int, seed uint64) *Field {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	f := &Field{
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}

	br := float64(BaseColor>>16&0xff) / 255
	bg := float64(BaseColor>>8&0xff) / 255
	bb := float64(BaseColor&0xff) / 255

	for i := 0; i < count; i++ {
		radius := 140 + rng.Float64()*40
		angle := rng.Float64() * math.Pi * 2
		height := 5 + rng.Float64()*25

		f.Positions[i*3] = float32(math.Cos(angle) * radius)
		f.Positions[i*3+1] = float32(height)
		f.Positions[i*3+2] = float32(math.Sin(angle) * radius)

		intensity := 0.4 + rng.Float64()*0.4
		f.Colors[i*3] = float32(br * intensity)
		f.Colors[i*3+1] = float32(bg * intensity)
		f.Colors[i*3+2] = float32(bb * intensity)
	}

	return f
}

// Len returns the number of points.
func (f *Field) Len() int {
	return len(f.Positions) / 3
}

// Advance spins the field by one frame.
func (f *Field) Advance() {
	f.Rotation += SpinPerFrame
}

// Interleave writes position+colour pairs into dst, growing it as needed.
func (f *Field) Interleave(dst []float32) []float32 {
	n := f.Len() * 6
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i := 0; i < f.Len(); i++ {
		copy(dst[i*6:i*6+3], f.Positions[i*3:i*3+3])
		copy(dst[i*6+3:i*6+6], f.Colors[i*3:i*3+3])
	}
	return dst
}
