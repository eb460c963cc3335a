package app

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/voxel-citadel/internal/config"
	"github.com/Faultbox/voxel-citadel/internal/engine/camera"
	"github.com/Faultbox/voxel-citadel/internal/engine/gfx"
	"github.com/Faultbox/voxel-citadel/internal/engine/input"
	"github.com/Faultbox/voxel-citadel/internal/engine/scene"
	"github.com/Faultbox/voxel-citadel/internal/metrics"
)

type handle struct {
	name     string
	releases int
}

func (h *handle) Release() error {
	h.releases++
	return nil
}

type fakeRenderer struct {
	handles  []*handle
	failOn   string
	scene    *scene.Scene
	overlay  *image.RGBA
	sizes    [][2]int
	presents int
	releases int
}

func (r *fakeRenderer) issue(name string) (gfx.Resource, error) {
	if name == r.failOn {
		return nil, errors.New("device lost")
	}
	h := &handle{name: name}
	r.handles = append(r.handles, h)
	return h, nil
}

func (r *fakeRenderer) UploadGeometry(g *scene.Geometry) (gfx.Resource, error) { return r.issue(g.Name) }
func (r *fakeRenderer) UploadMaterial(m *scene.Material) (gfx.Resource, error) { return r.issue(m.Name) }
func (r *fakeRenderer) UploadBatch(b *scene.Batch) (gfx.Resource, error) { return r.issue(b.Name) }

func (r *fakeRenderer) SetScene(s *scene.Scene) error {
	r.scene = s
	return nil
}

func (r *fakeRenderer) SetOverlay(img *image.RGBA) error {
	r.overlay = img
	return nil
}

func (r *fakeRenderer) Resize(width, height int) { r.sizes = append(r.sizes, [2]int{width, height}) }
func (r *fakeRenderer) Present(camera.View) { r.presents++ }
func (r *fakeRenderer) ReadPixels() ([]byte, int, int) { return nil, 0, 0 }

func (r *fakeRenderer) Release() error {
	r.releases++
	return nil
}

type fakeHost struct {
	width, height int
	queue         [][]input.Event
	swaps         int
}

func (h *fakeHost) Size() (int, int) { return h.width, h.height }
func (h *fakeHost) PixelRatio() float32 { return 1 }
func (h *fakeHost) SwapBuffers() { h.swaps++ }

func (h *fakeHost) PollEvents() []input.Event {
	if len(h.queue) == 0 {
		return nil
	}
	events := h.queue[0]
	h.queue = h.queue[1:]
	return events
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Water.Segments = 8
	cfg.Mist.Count = 20
	return cfg
}

func newTestApp(r *fakeRenderer) *App {
	return New(testConfig(), Options{
		NewRenderer: func(Host) (Renderer, error) { return r, nil },
		Now:         func() time.Time { return time.Unix(0, 0) },
	})
}

func TestMountNilHostIsNoop(t *testing.T) {
	created := false
	a := New(testConfig(), Options{
		NewRenderer: func(Host) (Renderer, error) {
			created = true
			return &fakeRenderer{}, nil
		},
	})

	require.NoError(t, a.Mount(nil))
	assert.False(t, created)
	assert.False(t, a.Mounted())
	assert.Nil(t, a.State())
	require.NoError(t, a.Run(context.Background()))
	require.NoError(t, a.Unmount())
}

func TestMountUploadsScene(t *testing.T) {
	r := &fakeRenderer{}
	host := &fakeHost{width: 1280, height: 720}
	a := newTestApp(r)

	require.NoError(t, a.Mount(host))
	require.True(t, a.Mounted())

	require.NotNil(t, r.scene)
	assert.Len(t, r.handles, len(r.scene.Geometries())+len(r.scene.Materials())+len(r.scene.Batches()))
	assert.NotNil(t, r.overlay)
	assert.Equal(t, [][2]int{{1280, 720}}, r.sizes)
	assert.Equal(t, 2820, a.Diorama().Castle.Count())
	assert.Equal(t, 3, a.Listeners())

	assert.Error(t, a.Mount(host))
	require.NoError(t, a.Unmount())
}

func TestUnmountReleasesOnce(t *testing.T) {
	r := &fakeRenderer{}
	a := newTestApp(r)
	require.NoError(t, a.Mount(&fakeHost{width: 800, height: 600}))

	require.NoError(t, a.Unmount())
	require.NoError(t, a.Unmount())

	assert.Equal(t, 1, r.releases)
	for _, h := range r.handles {
		assert.Equal(t, 1, h.releases, "%s released %d times", h.name, h.releases)
	}
	assert.Equal(t, 0, a.Listeners())
	assert.False(t, a.State().Running)
	assert.False(t, a.Frame())
}

func TestMountFailureReleasesPartialUpload(t *testing.T) {
	r := &fakeRenderer{failOn: "water"}
	a := newTestApp(r)

	err := a.Mount(&fakeHost{width: 800, height: 600})
	require.Error(t, err)
	assert.ErrorContains(t, err, "water")
	assert.False(t, a.Mounted())

	assert.Equal(t, 1, r.releases)
	require.NotEmpty(t, r.handles)
	for _, h := range r.handles {
		assert.Equal(t, 1, h.releases)
	}
}

func TestRendererFactoryError(t *testing.T) {
	a := New(testConfig(), Options{
		NewRenderer: func(Host) (Renderer, error) { return nil, errors.New("no GL") },
	})
	err := a.Mount(&fakeHost{width: 800, height: 600})
	assert.ErrorContains(t, err, "no GL")
	assert.False(t, a.Mounted())
}

func TestRunStopsOnQuit(t *testing.T) {
	r := &fakeRenderer{}
	host := &fakeHost{width: 800, height: 600}
	host.queue = [][]input.Event{
		nil,
		{{Type: input.EventWindowResize, Width: 1024, Height: 512}},
		{{Type: input.EventQuit}},
	}
	a := newTestApp(r)
	require.NoError(t, a.Mount(host))

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 2, r.presents)
	assert.Equal(t, 2, host.swaps)
	assert.Equal(t, uint64(2), a.State().Frames)
	assert.Equal(t, [][2]int{{800, 600}, {1024, 512}}, r.sizes)
	require.NoError(t, a.Unmount())
}

func TestRunStopsOnEscape(t *testing.T) {
	r := &fakeRenderer{}
	host := &fakeHost{width: 800, height: 600}
	host.queue = [][]input.Event{{{Type: input.EventKeyDown, Key: input.KeyEscape}}}
	a := newTestApp(r)
	require.NoError(t, a.Mount(host))

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 0, r.presents)
	require.NoError(t, a.Unmount())
}

func TestRunHonoursContext(t *testing.T) {
	a := newTestApp(&fakeRenderer{})
	require.NoError(t, a.Mount(&fakeHost{width: 800, height: 600}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, a.State().Running)
	require.NoError(t, a.Unmount())
}

func TestResizeListenerRemovedOnUnmount(t *testing.T) {
	r := &fakeRenderer{}
	host := &fakeHost{width: 800, height: 600}
	a := newTestApp(r)
	require.NoError(t, a.Mount(host))
	require.NoError(t, a.Unmount())

	a.dispatcher.Dispatch(input.Event{Type: input.EventWindowResize, Width: 10, Height: 10})
	assert.Equal(t, [][2]int{{800, 600}}, r.sizes)
}

func TestInteractiveRegistersOrbitControls(t *testing.T) {
	cfg := testConfig()
	cfg.Camera.Interactive = true
	r := &fakeRenderer{}
	a := New(cfg, Options{NewRenderer: func(Host) (Renderer, error) { return r, nil }})
	require.NoError(t, a.Mount(&fakeHost{width: 800, height: 600}))

	assert.Equal(t, 5, a.Listeners())
	goal := a.orbit.Distance
	a.dispatcher.Dispatch(input.Event{Type: input.EventMouseWheel, Wheel: 1})
	for range 200 {
		a.orbit.Update(0)
	}
	assert.Less(t, a.orbit.Distance, goal)
	require.NoError(t, a.Unmount())
}

func TestMetricsRecordFrames(t *testing.T) {
	r := &fakeRenderer{}
	rec := metrics.New()
	host := &fakeHost{width: 800, height: 600}
	host.queue = [][]input.Event{nil, nil, nil, {{Type: input.EventQuit}}}

	a := New(testConfig(), Options{
		NewRenderer: func(Host) (Renderer, error) { return r, nil },
		Metrics:     rec,
		Now:         func() time.Time { return time.Unix(0, 0) },
	})
	require.NoError(t, a.Mount(host))
	require.NoError(t, a.Run(context.Background()))

	frames, err := testutil.GatherAndCount(rec.Registry(), "citadel_frames_total")
	require.NoError(t, err)
	assert.Equal(t, 1, frames)

	// Two voxel groups plus batches and instances.
	sizes, err := testutil.GatherAndCount(rec.Registry(), "citadel_voxels", "citadel_draw_batches", "citadel_instances")
	require.NoError(t, err)
	assert.Equal(t, 4, sizes)
	require.NoError(t, a.Unmount())
}
