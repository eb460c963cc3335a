// Package shadow provides the sun's shadow map: a depth-only framebuffer and
// the light-space matrix used to render into it and sample it.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is used when the rig asks for a non-positive size.
const DefaultResolution = 2048

// Map is a square depth texture attached to its own framebuffer, sampled
// with hardware comparison.
type Map struct {
	Resolution int32

	fbo   uint32
	depth uint32
	saved [4]int32
}

// NewMap allocates a depth map of resolution x resolution texels.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	m := &Map{Resolution: resolution}

	gl.GenTextures(1, &m.depth)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, resolution, resolution, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	depthSampling()
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &m.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, m.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		_ = m.Release()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}
	return m, nil
}

// depthSampling configures the bound texture for sampler2DShadow lookups.
// Texels outside the light box compare as lit.
func depthSampling() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
}

// Begin redirects drawing into the map and clears it. Front faces are
// culled while casters render.
func (m *Map) Begin() {
	gl.GetIntegerv(gl.VIEWPORT, &m.saved[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.Viewport(0, 0, m.Resolution, m.Resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.CullFace(gl.FRONT)
}

// End restores the default framebuffer, viewport and back-face culling.
func (m *Map) End() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(m.saved[0], m.saved[1], m.saved[2], m.saved[3])
	gl.CullFace(gl.BACK)
}

// Sample binds the depth texture to unit (gl.TEXTURE0 + n).
func (m *Map) Sample(unit uint32) {
	gl.ActiveTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
}

// Texel returns the size of one texel in texture coordinates.
func (m *Map) Texel() float32 {
	return 1 / float32(m.Resolution)
}

// IsValid reports whether m holds live GL objects. A nil map is invalid.
func (m *Map) IsValid() bool {
	return m != nil && m.fbo != 0 && m.depth != 0
}

// Release frees the framebuffer and texture. Safe to call twice.
func (m *Map) Release() error {
	if m.fbo != 0 {
		gl.DeleteFramebuffers(1, &m.fbo)
		m.fbo = 0
	}
	if m.depth != 0 {
		gl.DeleteTextures(1, &m.depth)
		m.depth = 0
	}
	return nil
}
