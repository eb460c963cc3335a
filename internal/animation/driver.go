// Package animation advances the diorama once per frame: water, mist,
// camera, then a render.
package animation

import (
	"time"

	"github.com/Faultbox/voxel-citadel/internal/engine/camera"
)

// State is the mutable loop state owned by whoever drives frames. Clearing
// Running cancels the loop.
type State struct {
	Running bool
	Elapsed float64 // seconds since Start
	Frames  uint64
}

// Surface is an animated mesh such as the water grid.
type Surface interface {
	Update(elapsed float64)
}

// Spinner advances by one frame.
type Spinner interface {
	Advance()
}

// Presenter draws a frame.
type Presenter interface {
	Present(view camera.View)
}

// Driver runs the per-frame update. Nil collaborators are skipped.
type Driver struct {
	Water     Surface
	Mist      Spinner
	Camera    camera.Controller
	Presenter Presenter

	// Now is the clock; time.Now when nil.
	Now func() time.Time

	start time.Time
}

func (d *Driver) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Start resets the clock and returns a running state.
func (d *Driver) Start() *State {
	d.start = d.now()
	return &State{Running: true}
}

// Tick runs one frame: water update, mist rotation, camera update, then
// present. It reports whether a frame ran; a stopped state is left
// untouched.
func (d *Driver) Tick(s *State) bool {
	if s == nil || !s.Running {
		return false
	}
	s.Elapsed = d.now().Sub(d.start).Seconds()

	if d.Water != nil {
		d.Water.Update(s.Elapsed)
	}
	if d.Mist != nil {
		d.Mist.Advance()
	}
	if d.Camera != nil {
		d.Camera.Update(s.Elapsed)
		if d.Presenter != nil {
			d.Presenter.Present(d.Camera)
		}
	}

	s.Frames++
	return true
}

// Stop cancels the loop. Further ticks are no-ops.
func (d *Driver) Stop(s *State) {
	if s != nil {
		s.Running = false
	}
}
