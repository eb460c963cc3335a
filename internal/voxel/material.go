package voxel

import "fmt"

// MaterialTag names the surface finish of a voxel.
type MaterialTag uint8

const (
	Stone MaterialTag = iota
	Accent
	Flag
	Wall
	Roof
	Vegetation
	Trunk
	Foliage
	Path
	Water
	Ground

	tagCount
)

var tagNames = [tagCount]string{
	Stone:      "stone",
	Accent:     "accent",
	Flag:       "flag",
	Wall:       "wall",
	Roof:       "roof",
	Vegetation: "vegetation",
	Trunk:      "trunk",
	Foliage:    "foliage",
	Path:       "path",
	Water:      "water",
	Ground:     "ground",
}

// String returns the lowercase tag name.
func (t MaterialTag) String() string {
	if t >= tagCount {
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
	return tagNames[t]
}

// Tags returns every material tag in declaration order.
func Tags() []MaterialTag {
	tags := make([]MaterialTag, tagCount)
	for i := range tags {
		tags[i] = MaterialTag(i)
	}
	return tags
}

// ParseTag resolves a tag from its name.
func ParseTag(name string) (MaterialTag, error) {
	for i, n := range tagNames {
		if n == name {
			return MaterialTag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown material tag %q", name)
}

// Appearance is the visual descriptor shared by every voxel of one tag.
// Colours are 0xRRGGBB in sRGB.
type Appearance struct {
	Color             uint32
	Roughness         float32
	Metalness         float32
	Emissive          uint32
	EmissiveIntensity float32
	Opacity           float32
	Transmission      float32
	Clearcoat         float32
}

// Transparent reports whether the surface needs blending.
func (a *Appearance) Transparent() bool {
	return a.Opacity < 1
}

// palette holds one descriptor per tag. Lookup hands out pointers into it,
// so every voxel of a tag references the same descriptor.
var palette = [tagCount]Appearance{
	Stone:      {Color: 0xb7c1d6, Roughness: 0.55, Metalness: 0.18, Opacity: 1},
	Accent:     {Color: 0x4b5f86, Roughness: 0.4, Metalness: 0.35, Emissive: 0x1d2438, EmissiveIntensity: 0.2, Opacity: 1},
	Flag:       {Color: 0xf25f5c, Roughness: 0.45, Emissive: 0x350000, EmissiveIntensity: 0.45, Opacity: 1},
	Wall:       {Color: 0xd9c7a6, Roughness: 0.75, Metalness: 0.1, Opacity: 1},
	Roof:       {Color: 0xb44b50, Roughness: 0.45, Metalness: 0.2, Emissive: 0x300607, EmissiveIntensity: 0.15, Opacity: 1},
	Vegetation: {Color: 0x3f6f47, Roughness: 0.6, Metalness: 0.05, Opacity: 1},
	Trunk:      {Color: 0x8d5a2b, Roughness: 0.9, Opacity: 1},
	Foliage:    {Color: 0x327345, Roughness: 1, Emissive: 0x1b3d24, EmissiveIntensity: 0.2, Opacity: 1},
	Path:       {Color: 0x7f6a4a, Roughness: 0.9, Opacity: 1},
	Water:      {Color: 0x2364aa, Roughness: 0.22, Metalness: 0.05, Opacity: 0.85, Transmission: 0.85, Clearcoat: 1},
	Ground:     {Color: 0x6ba16d, Roughness: 0.95, Opacity: 1},
}

// Lookup returns the shared appearance for a tag.
func Lookup(t MaterialTag) *Appearance {
	if t >= tagCount {
		return nil
	}
	return &palette[t]
}
