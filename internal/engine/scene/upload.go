package scene

import (
	"fmt"

	"github.com/Faultbox/voxel-citadel/internal/engine/gfx"
)

// Device creates GPU resources for scene parts.
type Device interface {
	UploadGeometry(g *Geometry) (gfx.Resource, error)
	UploadMaterial(m *Material) (gfx.Resource, error)
	UploadBatch(b *Batch) (gfx.Resource, error)
}

// Upload creates one handle per distinct geometry and material and one per
// batch, in that order, and hands each to arena. On failure the handles
// created so far stay in the arena for the caller to release.
func (s *Scene) Upload(dev Device, arena *gfx.Arena) error {
	for _, g := range s.Geometries() {
		h, err := dev.UploadGeometry(g)
		if err != nil {
			return fmt.Errorf("uploading geometry %s: %w", g.Name, err)
		}
		g.Handle = arena.Own(h)
	}

	for _, m := range s.Materials() {
		h, err := dev.UploadMaterial(m)
		if err != nil {
			return fmt.Errorf("uploading material %s: %w", m.Name, err)
		}
		m.Handle = arena.Own(h)
	}

	for _, b := range s.Batches() {
		h, err := dev.UploadBatch(b)
		if err != nil {
			return fmt.Errorf("uploading batch %s: %w", b.Name, err)
		}
		b.Handle = arena.Own(h)
	}

	return nil
}
