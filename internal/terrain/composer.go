package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-citadel/internal/generator"
	"github.com/Faultbox/voxel-citadel/internal/logger"
	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

// Spec drives a full composition.
type Spec struct {
	Castle  generator.CastleSpec
	Village VillageLayout
}

// DefaultSpec returns the stock diorama.
func DefaultSpec() Spec {
	return Spec{
		Castle:  generator.DefaultCastle(),
		Village: DefaultVillage(),
	}
}

// Diorama holds the composed render groups.
type Diorama struct {
	Castle  *Group
	Village *Group
}

// Groups returns the castle and village, in render order.
func (d *Diorama) Groups() []*Group {
	return []*Group{d.Castle, d.Village}
}

// ComposeCastle wraps the castle structures in a group at the world origin.
func ComposeCastle(spec generator.CastleSpec) *Group {
	castle := &Group{Name: "castle"}
	for _, s := range generator.BuildCastle(spec) {
		castle.Add(s, voxel.Lattice{})
	}
	return castle
}

// Compose generates the whole diorama. It never fails.
func Compose(spec Spec) *Diorama {
	log := logger.Named("terrain")

	d := &Diorama{
		Castle:  ComposeCastle(spec.Castle),
		Village: ComposeVillage(spec.Village),
	}

	log.Debug("composed castle",
		zap.Stringer("spec", spec.Castle),
		zap.Int("structures", len(d.Castle.Members)),
		zap.Int("voxels", d.Castle.Count()))
	log.Debug("composed village",
		zap.Int("houses", len(spec.Village.Houses)),
		zap.Int("trees", len(spec.Village.Trees)),
		zap.Int("voxels", d.Village.Count()),
		zap.Int("paths", len(d.Village.Paths)))

	return d
}
