// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/voxel-citadel/internal/engine/camera"
	"github.com/Faultbox/voxel-citadel/internal/engine/lighting"
	"github.com/Faultbox/voxel-citadel/internal/engine/renderer/shaders"
	"github.com/Faultbox/voxel-citadel/internal/engine/scene"
	"github.com/Faultbox/voxel-citadel/internal/engine/shader"
	"github.com/Faultbox/voxel-citadel/internal/engine/shadow"
	"github.com/Faultbox/voxel-citadel/internal/logger"
	"github.com/Faultbox/voxel-citadel/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	PixelRatio float32 // drawable pixels per window point, already capped
}

// Renderer handles all OpenGL rendering. It implements scene.Device.
type Renderer struct {
	config Config
	log    *zap.Logger

	voxel   *shader.Program
	depth   *shader.Program
	points  *shader.Program
	overlay *shader.Program

	shadowMap *shadow.Map
	emptyVAO  uint32
	hud       *overlayTexture

	scene       *scene.Scene
	opaque      []*scene.Batch
	transparent []*scene.Batch
	casters     []*glBatch
	lightMatrix math.Mat4
	waterBuf    []float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	if err := r.compile(); err != nil {
		_ = r.Release()
		return nil, err
	}
	gl.GenVertexArrays(1, &r.emptyVAO)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

func (r *Renderer) compile() error {
	var err error
	if r.voxel, err = shader.New("voxel", shaders.VoxelVertexShader, shaders.VoxelFragmentShader, shaders.Lighting); err != nil {
		return err
	}
	r.voxel.BindBlock("Material", materialBinding)

	if r.depth, err = shader.New("shadow", shaders.ShadowVertexShader, shaders.ShadowFragmentShader); err != nil {
		return err
	}
	if r.points, err = shader.New("points", shaders.PointsVertexShader, shaders.PointsFragmentShader, shaders.Lighting); err != nil {
		return err
	}
	r.points.BindBlock("Material", materialBinding)

	if r.overlay, err = shader.New("overlay", shaders.OverlayVertexShader, shaders.OverlayFragmentShader); err != nil {
		return err
	}
	return nil
}

// SetScene makes s the scene drawn by Present. s must already be uploaded
// through this renderer. A nil scene clears it. Building the shadow map
// is deferred to here so it follows the scene's shadow settings.
func (r *Renderer) SetScene(s *scene.Scene) error {
	r.scene = s
	r.opaque, r.transparent, r.casters = nil, nil, nil
	if s == nil {
		return nil
	}

	for _, b := range s.Batches() {
		h, ok := b.Handle.(*glBatch)
		if !ok {
			return fmt.Errorf("batch %s not uploaded", b.Name)
		}
		if b.CastShadow {
			r.casters = append(r.casters, h)
		}
		if b.Material.Transparent {
			r.transparent = append(r.transparent, b)
		} else {
			r.opaque = append(r.opaque, b)
		}
	}

	sun := s.Lights.Sun
	r.lightMatrix = shadow.LightMatrix(sun)
	if s.Shadows && sun.CastShadow && r.shadowMap == nil {
		sm, err := shadow.NewMap(sun.ShadowResolution)
		if err != nil {
			// Shadows are optional; draw without them.
			r.log.Warn("shadow map unavailable", zap.Error(err))
		} else {
			r.shadowMap = sm
		}
	}

	r.log.Debug("scene set",
		zap.Int("opaque", len(r.opaque)),
		zap.Int("transparent", len(r.transparent)),
		zap.Int("casters", len(r.casters)),
		zap.Int("instances", s.InstanceCount()),
	)
	return nil
}

// Resize handles window resize. Sizes are drawable pixels.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Present draws one frame of the current scene from view.
func (r *Renderer) Present(view camera.View) {
	s := r.scene
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	if s == nil {
		c := lighting.Hex(scene.ClearColor)
		gl.ClearColor(c[0], c[1], c[2], 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		return
	}

	r.syncWater()

	shadows := s.Shadows && r.shadowMap.IsValid()
	if shadows {
		r.shadowPass()
	}

	bg := lighting.Hex(s.Background)
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewM := view.ViewMatrix()
	proj := view.ProjectionMatrix()
	viewProj := proj.Mul(viewM)
	eye := view.Position()

	// Opaque
	r.voxel.Use()
	r.setFrame(r.voxel, eye)
	gl.UniformMatrix4fv(r.voxel.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.UniformMatrix4fv(r.voxel.Uniform("uLightViewProj"), 1, false, r.lightMatrix.Ptr())
	if shadows {
		r.shadowMap.Sample(gl.TEXTURE0)
		texel := r.shadowMap.Texel()
		gl.Uniform2f(r.voxel.Uniform("uShadowTexel"), texel, texel)
	}
	gl.Uniform1i(r.voxel.Uniform("uShadowMap"), 0)

	gl.Disable(gl.BLEND)
	for _, b := range r.opaque {
		r.drawLit(b, shadows)
	}

	// Transparent, in scene order
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for _, b := range r.transparent {
		gl.DepthMask(b.Material.DepthWrite)
		if b.Geometry.Kind == scene.KindPoints {
			r.drawPoints(b, viewM, proj, eye)
			r.voxel.Use()
			continue
		}
		r.drawLit(b, shadows)
	}
	gl.DepthMask(true)

	r.drawOverlay()
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawLit(b *scene.Batch, shadows bool) {
	h := b.Handle.(*glBatch)
	gl.Uniform1i(r.voxel.Uniform("uReceiveShadow"), boolInt(shadows && b.ReceiveShadow))
	gl.BindBufferBase(gl.UNIFORM_BUFFER, materialBinding, h.material.ubo)
	h.draw()
}

func (r *Renderer) drawPoints(b *scene.Batch, view, proj math.Mat4, eye math.Vec3) {
	h := b.Handle.(*glBatch)
	p := r.points
	p.Use()
	r.setFrame(p, eye)
	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uProj"), 1, false, proj.Ptr())

	rotation := float32(0)
	if r.scene.Field != nil {
		rotation = float32(r.scene.Field.Rotation)
	}
	gl.Uniform1f(p.Uniform("uRotation"), rotation)
	gl.Uniform1f(p.Uniform("uPointSize"), b.Material.PointSize*r.config.PixelRatio)
	gl.Uniform1f(p.Uniform("uPixelScale"), float32(r.config.Height)/2)
	gl.Uniform1f(p.Uniform("uOpacity"), b.Material.Appearance.Opacity)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, materialBinding, h.material.ubo)
	h.draw()
}

// shadowPass renders every caster into the sun's depth map.
func (r *Renderer) shadowPass() {
	r.shadowMap.Begin()
	r.depth.Use()
	gl.UniformMatrix4fv(r.depth.Uniform("uLightViewProj"), 1, false, r.lightMatrix.Ptr())
	for _, b := range r.casters {
		b.draw()
	}
	r.shadowMap.End()
}

// setFrame uploads per-frame lighting and fog uniforms to p.
func (r *Renderer) setFrame(p *shader.Program, eye math.Vec3) {
	s := r.scene
	rig := &s.Lights

	gl.Uniform3f(p.Uniform("uCameraPos"), eye.X, eye.Y, eye.Z)
	gl.Uniform1f(p.Uniform("uExposure"), s.Exposure)

	setColor(p.Uniform("uAmbientColor"), rig.Ambient.Color, rig.Ambient.Intensity)
	sunDir := rig.Direction()
	gl.Uniform3f(p.Uniform("uSunDir"), sunDir.X, sunDir.Y, sunDir.Z)
	setColor(p.Uniform("uSunColor"), rig.Sun.Color, rig.Sun.Intensity)

	m := rig.Moon
	gl.Uniform3f(p.Uniform("uMoonPos"), m.Position.X, m.Position.Y, m.Position.Z)
	setColor(p.Uniform("uMoonColor"), m.Color, m.Intensity)
	gl.Uniform1f(p.Uniform("uMoonRange"), m.Range)
	gl.Uniform1f(p.Uniform("uMoonDecay"), m.Decay)

	rim := rig.Rim
	rimDir := rig.SpotDirection()
	inner, outer := rim.SpotCone()
	gl.Uniform3f(p.Uniform("uRimPos"), rim.Position.X, rim.Position.Y, rim.Position.Z)
	gl.Uniform3f(p.Uniform("uRimDir"), rimDir.X, rimDir.Y, rimDir.Z)
	setColor(p.Uniform("uRimColor"), rim.Color, rim.Intensity)
	gl.Uniform1f(p.Uniform("uRimRange"), rim.Range)
	gl.Uniform1f(p.Uniform("uRimDecay"), rim.Decay)
	gl.Uniform2f(p.Uniform("uRimCone"), inner, outer)

	gl.Uniform1i(p.Uniform("uFogEnabled"), boolInt(s.Fog.Enabled))
	fog := lighting.Hex(s.Fog.Color)
	gl.Uniform3f(p.Uniform("uFogColor"), fog[0], fog[1], fog[2])
	gl.Uniform1f(p.Uniform("uFogDensity"), s.Fog.Density)
}

// syncWater re-uploads the water grid when the surface moved.
func (r *Renderer) syncWater() {
	s := r.scene
	if s.Water == nil || s.Surface == nil || !s.Surface.Dirty() {
		return
	}
	g, ok := s.Water.Geometry.Handle.(*glGeometry)
	if !ok {
		return
	}
	r.waterBuf = s.Surface.Interleave(r.waterBuf)
	g.Update(r.waterBuf)
	s.Surface.ClearDirty()
}

// Release frees the programs, shadow map and overlay. Scene resources
// belong to the arena they were uploaded into.
func (r *Renderer) Release() error {
	r.log.Info("closing renderer")
	r.scene = nil
	r.opaque, r.transparent, r.casters = nil, nil, nil

	var err error
	for _, p := range []*shader.Program{r.voxel, r.depth, r.points, r.overlay} {
		if p != nil {
			err = multierr.Append(err, p.Release())
		}
	}
	if r.shadowMap != nil {
		err = multierr.Append(err, r.shadowMap.Release())
		r.shadowMap = nil
	}
	if r.hud != nil {
		err = multierr.Append(err, r.hud.Release())
		r.hud = nil
	}
	if r.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.emptyVAO)
		r.emptyVAO = 0
	}
	return err
}

func setColor(loc int32, hex uint32, intensity float32) {
	c := lighting.Linear(hex)
	gl.Uniform3f(loc, c[0]*intensity, c[1]*intensity, c[2]*intensity)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
