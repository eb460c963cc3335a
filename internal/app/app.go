// Package app wires generation, scene assembly, GPU upload and the frame
// loop to a host window.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-citadel/internal/animation"
	"github.com/Faultbox/voxel-citadel/internal/config"
	"github.com/Faultbox/voxel-citadel/internal/engine/camera"
	"github.com/Faultbox/voxel-citadel/internal/engine/debug"
	"github.com/Faultbox/voxel-citadel/internal/engine/gfx"
	"github.com/Faultbox/voxel-citadel/internal/engine/input"
	"github.com/Faultbox/voxel-citadel/internal/engine/overlay"
	"github.com/Faultbox/voxel-citadel/internal/engine/particles"
	"github.com/Faultbox/voxel-citadel/internal/engine/scene"
	"github.com/Faultbox/voxel-citadel/internal/engine/water"
	"github.com/Faultbox/voxel-citadel/internal/logger"
	"github.com/Faultbox/voxel-citadel/internal/metrics"
	"github.com/Faultbox/voxel-citadel/internal/terrain"
)

// Host is the window the diorama renders into. Sizes are drawable pixels.
type Host interface {
	Size() (width, height int)
	PixelRatio() float32
	SwapBuffers()
	PollEvents() []input.Event
}

// Renderer draws uploaded scenes. It must be created with the host's GL
// context current.
type Renderer interface {
	scene.Device
	SetScene(s *scene.Scene) error
	SetOverlay(img *image.RGBA) error
	Resize(width, height int)
	Present(view camera.View)
	ReadPixels() ([]byte, int, int)
	Release() error
}

// Options supplies the collaborators App cannot build itself.
type Options struct {
	NewRenderer func(host Host) (Renderer, error)

	// Screenshots receives F12 captures; nil disables them.
	Screenshots *debug.ScreenshotCapture

	// Metrics records frame timings and scene size; nil disables them.
	Metrics *metrics.Recorder

	// Now is the animation clock; time.Now when nil.
	Now func() time.Time
}

// App is one mounted diorama.
type App struct {
	cfg  *config.Config
	opts Options
	log  *zap.Logger

	host       Host
	renderer   Renderer
	arena      *gfx.Arena
	dispatcher *input.Dispatcher
	removers   []func()

	diorama *terrain.Diorama
	scene   *scene.Scene
	camera  camera.Controller
	orbit   *camera.Orbit
	driver  *animation.Driver
	state   *animation.State
	mounted bool
}

// New creates an unmounted app.
func New(cfg *config.Config, opts Options) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{
		cfg:        cfg,
		opts:       opts,
		log:        logger.Named("app"),
		dispatcher: input.NewDispatcher(),
	}
}

// Mount generates the diorama, uploads it and starts the animation clock.
// A nil host is a no-op. On failure every resource created so far is
// released.
func (a *App) Mount(host Host) (err error) {
	if host == nil {
		a.log.Debug("no host, skipping mount")
		return nil
	}
	if a.mounted {
		return errors.New("app already mounted")
	}
	if a.opts.NewRenderer == nil {
		return errors.New("no renderer factory")
	}

	start := time.Now()
	a.host = host
	a.arena = gfx.NewArena()
	defer func() {
		if err != nil {
			err = multierr.Append(err, a.arena.Release())
			a.host, a.renderer, a.scene = nil, nil, nil
		}
	}()

	a.diorama = terrain.Compose(terrain.Spec{
		Castle:  a.cfg.Castle.Spec(),
		Village: terrain.DefaultVillage(),
	})

	surf := water.NewSurface(a.cfg.Water.Size, a.cfg.Water.Segments, a.cfg.Water.Level)
	var mist *particles.Field
	if a.cfg.Mist.Count > 0 {
		mist = particles.NewField(a.cfg.Mist.Count, a.cfg.Mist.Seed)
	}

	a.scene = scene.Assemble(a.diorama, surf, mist, scene.Options{
		Fog:      a.cfg.Render.Fog,
		Shadows:  a.cfg.Render.Shadows,
		Exposure: a.cfg.Render.Exposure,
	})
	a.scene.Lights.Sun.ShadowResolution = int32(a.cfg.Render.ShadowResolution)

	r, err := a.opts.NewRenderer(host)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	a.renderer = r
	// Owned first so it is released after every scene resource.
	a.arena.Own(gfx.Func(r.Release))

	if err := a.scene.Upload(r, a.arena); err != nil {
		return fmt.Errorf("uploading scene: %w", err)
	}
	if err := r.SetScene(a.scene); err != nil {
		return fmt.Errorf("binding scene: %w", err)
	}
	if err := r.SetOverlay(overlay.Default().Render()); err != nil {
		a.log.Warn("overlay unavailable", zap.Error(err))
	}

	a.camera = a.newCamera()
	width, height := host.Size()
	a.resize(width, height)

	a.listen()

	a.driver = &animation.Driver{
		Water:     surf,
		Camera:    a.camera,
		Presenter: r,
		Now:       a.opts.Now,
	}
	if mist != nil {
		a.driver.Mist = mist
	}
	a.state = a.driver.Start()
	a.mounted = true

	if m := a.opts.Metrics; m != nil {
		m.SetScene(a.diorama.Castle.Count(), a.diorama.Village.Count(),
			len(a.scene.Batches()), a.scene.InstanceCount())
	}

	a.log.Info("diorama mounted",
		zap.Int("castle_voxels", a.diorama.Castle.Count()),
		zap.Int("village_voxels", a.diorama.Village.Count()),
		zap.Int("instances", a.scene.InstanceCount()),
		zap.Int("gpu_handles", a.arena.Len()),
		zap.Bool("interactive", a.orbit != nil),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func (a *App) newCamera() camera.Controller {
	if a.cfg.Camera.Interactive {
		o := camera.NewOrbit()
		o.FovY = a.cfg.Camera.FOV
		a.orbit = o
		return o
	}
	c := camera.NewCinematic()
	c.FovY = a.cfg.Camera.FOV
	return c
}

// listen registers the window listeners removed again by Unmount.
func (a *App) listen() {
	on := func(t input.EventType, fn input.Listener) {
		a.removers = append(a.removers, a.dispatcher.On(t, fn))
	}

	on(input.EventWindowResize, func(e input.Event) { a.resize(e.Width, e.Height) })
	on(input.EventQuit, func(input.Event) { a.Stop() })
	on(input.EventKeyDown, func(e input.Event) {
		switch e.Key {
		case input.KeyEscape:
			a.Stop()
		case input.KeyF12:
			a.screenshot()
		}
	})

	if a.orbit != nil {
		on(input.EventMouseMove, func(e input.Event) {
			if e.Button == input.ButtonLeft {
				a.orbit.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}
		})
		on(input.EventMouseWheel, func(e input.Event) { a.orbit.HandleZoom(e.Wheel) })
	}
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.camera.SetAspect(width, height)
	a.renderer.Resize(width, height)
}

func (a *App) screenshot() {
	if a.opts.Screenshots == nil {
		return
	}
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.opts.Screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	if a.opts.Metrics != nil {
		a.opts.Metrics.CountScreenshot()
	}
}

// Frame processes pending events and, unless they stopped the app, runs
// one animation tick and presents it. It reports whether the app is still
// running.
func (a *App) Frame() bool {
	if !a.mounted || !a.state.Running {
		return false
	}
	start := time.Now()
	a.dispatcher.DispatchAll(a.host.PollEvents())
	if !a.driver.Tick(a.state) {
		return false
	}
	a.host.SwapBuffers()
	if a.opts.Metrics != nil {
		a.opts.Metrics.ObserveFrame(time.Since(start))
	}
	return true
}

// Run drives frames until the app stops or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if !a.mounted {
		return nil
	}

	a.log.Info("starting frame loop")
	frames := uint64(0)
	fpsTimer := time.Now()

	for {
		select {
		case <-ctx.Done():
			a.Stop()
			return ctx.Err()
		default:
		}

		if !a.Frame() {
			a.log.Info("frame loop stopped", zap.Uint64("frames", a.state.Frames))
			return nil
		}

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Uint64("count", frames),
				zap.Float64("elapsed", a.state.Elapsed),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// Stop ends the frame loop after the current frame.
func (a *App) Stop() {
	if a.driver != nil {
		a.driver.Stop(a.state)
	}
}

// Unmount stops the loop, removes the window listeners and releases every
// GPU resource exactly once. Calling it again does nothing.
func (a *App) Unmount() error {
	if !a.mounted {
		return nil
	}
	a.mounted = false
	a.Stop()

	for _, remove := range a.removers {
		remove()
	}
	a.removers = nil

	err := a.arena.Release()
	a.renderer, a.scene, a.host = nil, nil, nil
	if err != nil {
		return fmt.Errorf("releasing GPU resources: %w", err)
	}
	a.log.Info("diorama unmounted")
	return nil
}

// Mounted reports whether the app holds a host.
func (a *App) Mounted() bool {
	return a.mounted
}

// State returns the animation state, nil before Mount.
func (a *App) State() *animation.State {
	return a.state
}

// Diorama returns the generated diorama, nil before Mount.
func (a *App) Diorama() *terrain.Diorama {
	return a.diorama
}

// Listeners returns how many window listeners are registered.
func (a *App) Listeners() int {
	return len(a.removers)
}
