// Package lighting describes the diorama's light rig: ambient fill, a
// shadow-casting sun, a cool moon point light and a rim spot light.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// Hex converts 0xRRGGBB to an sRGB float triple in [0, 1].
func Hex(c uint32) [3]float32 {
	return [3]float32{
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

// Linear converts 0xRRGGBB to linear-light RGB for shading.
func Linear(c uint32) [3]float32 {
	s := Hex(c)
	for i, v := range s {
		if v <= 0.04045 {
			s[i] = v / 12.92
		} else {
			s[i] = float32(gomath.Pow((float64(v)+0.055)/1.055, 2.4))
		}
	}
	return s
}

// Ambient is a uniform fill light.
type Ambient struct {
	Color     uint32
	Intensity float32
}

// Sun is a directional light shining from Position toward Target.
type Sun struct {
	Color     uint32
	Intensity float32
	Position  math.Vec3
	Target    math.Vec3

	CastShadow       bool
	ShadowResolution int32
	ShadowExtent     float32 // half-size of the orthographic shadow box
	ShadowNear       float32
	ShadowFar        float32
}

// PointLight radiates from Position, fading to zero at Range.
type PointLight struct {
	Color     uint32
	Intensity float32
	Position  math.Vec3
	Range     float32
	Decay     float32
}

// SpotLight is a cone light aimed at Target.
type SpotLight struct {
	Color     uint32
	Intensity float32
	Position  math.Vec3
	Target    math.Vec3
	Range     float32
	Angle     float32 // cone half-angle, radians
	Penumbra  float32 // fraction of the cone that softens
	Decay     float32

	CastShadow bool
}

// Rig is the full light set.
type Rig struct {
	Ambient Ambient
	Sun     Sun
	Moon    PointLight
	Rim     SpotLight
}

// DefaultRig returns the stock lighting.
func DefaultRig() Rig {
	return Rig{
		Ambient: Ambient{Color: 0xffffff, Intensity: 0.6},
		Sun: Sun{
			Color:            0xfff0e0,
			Intensity:        1.8,
			Position:         math.Vec3{X: 45, Y: 65, Z: 25},
			CastShadow:       true,
			ShadowResolution: 2048,
			ShadowExtent:     80,
			ShadowNear:       0.1,
			ShadowFar:        150,
		},
		Moon: PointLight{
			Color:     0x8bb7ff,
			Intensity: 0.8,
			Position:  math.Vec3{X: -80, Y: 40, Z: -80},
			Range:     180,
			Decay:     2,
		},
		Rim: SpotLight{
			Color:      0x7ec8ff,
			Intensity:  1.4,
			Position:   math.Vec3{X: -60, Y: 55, Z: 20},
			Target:     math.Vec3{X: 0, Y: 10, Z: 0},
			Range:      200,
			Angle:      gomath.Pi / 5,
			Penumbra:   0.4,
			Decay:      1,
			CastShadow: true,
		},
	}
}

// Direction returns the normalized direction toward the sun.
func (r *Rig) Direction() math.Vec3 {
	return r.Sun.Position.Sub(r.Sun.Target).Normalize()
}

// SpotDirection returns the normalized direction the rim light points.
func (r *Rig) SpotDirection() math.Vec3 {
	return r.Rim.Target.Sub(r.Rim.Position).Normalize()
}

// SpotCone returns the cosines of the inner and outer cone edges.
func (s SpotLight) SpotCone() (inner, outer float32) {
	outer = float32(gomath.Cos(float64(s.Angle)))
	inner = float32(gomath.Cos(float64(s.Angle * (1 - s.Penumbra))))
	return inner, outer
}
