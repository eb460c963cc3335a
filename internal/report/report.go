// Package report summarizes a composed diorama for inspection tools.
package report

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"text/tabwriter"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/voxel-citadel/internal/terrain"
	"github.com/Faultbox/voxel-citadel/internal/voxel"
)

// TagCount is the number of voxels of one material.
type TagCount struct {
	Tag   string `yaml:"tag" json:"tag"`
	Count int    `yaml:"count" json:"count"`
}

// StructureSummary describes one placed structure.
type StructureSummary struct {
	Name       string `yaml:"name" json:"name"`
	Offset     [3]int `yaml:"offset,flow" json:"offset"`
	Voxels     int    `yaml:"voxels" json:"voxels"`
	Duplicates int    `yaml:"duplicates,omitempty" json:"duplicates,omitempty"`
}

// GroupSummary describes one render group.
type GroupSummary struct {
	Name       string             `yaml:"name" json:"name"`
	Voxels     int                `yaml:"voxels" json:"voxels"`
	Paths      int                `yaml:"paths,omitempty" json:"paths,omitempty"`
	Materials  []TagCount         `yaml:"materials" json:"materials"`
	Structures []StructureSummary `yaml:"structures" json:"structures"`
}

// Summary is the whole-diorama report. InstanceBytes is the size of the
// per-instance offsets uploaded for every voxel and path cell.
type Summary struct {
	Castle        string         `yaml:"castle" json:"castle"`
	Fingerprint   string         `yaml:"fingerprint" json:"fingerprint"`
	Voxels        int            `yaml:"voxels" json:"voxels"`
	Paths         int            `yaml:"paths" json:"paths"`
	InstanceBytes uint64         `yaml:"instance_bytes" json:"instance_bytes"`
	Groups        []GroupSummary `yaml:"groups" json:"groups"`
}

// instanceStride is three float32 offsets.
const instanceStride = 12

// LayerCount is the number of voxels at one lattice height.
type LayerCount struct {
	Y     int `yaml:"y" json:"y"`
	Count int `yaml:"count" json:"count"`
}

// StructureDetail is the per-structure report.
type StructureDetail struct {
	Name      string       `yaml:"name" json:"name"`
	Group     string       `yaml:"group" json:"group"`
	Offset    [3]int       `yaml:"offset,flow" json:"offset"`
	Min       [3]int       `yaml:"min,flow" json:"min"`
	Max       [3]int       `yaml:"max,flow" json:"max"`
	Voxels    int          `yaml:"voxels" json:"voxels"`
	Materials []TagCount   `yaml:"materials" json:"materials"`
	Layers    []LayerCount `yaml:"layers" json:"layers"`
}

func lattice(l voxel.Lattice) [3]int {
	return [3]int{l.X, l.Y, l.Z}
}

// tagCounts orders counts by tag and drops empty ones.
func tagCounts(counts map[voxel.MaterialTag]int) []TagCount {
	var out []TagCount
	for _, tag := range voxel.Tags() {
		if n := counts[tag]; n > 0 {
			out = append(out, TagCount{Tag: tag.String(), Count: n})
		}
	}
	return out
}

// Summarize reports group, structure and material counts. castle labels
// the castle dimensions the diorama was built from.
func Summarize(d *terrain.Diorama, castle fmt.Stringer) Summary {
	s := Summary{Fingerprint: Fingerprint(d)}
	if castle != nil {
		s.Castle = castle.String()
	}
	for _, g := range d.Groups() {
		gs := GroupSummary{
			Name:      g.Name,
			Voxels:    g.Count(),
			Paths:     len(g.Paths),
			Materials: tagCounts(g.CountByTag()),
		}
		for _, m := range g.Members {
			gs.Structures = append(gs.Structures, StructureSummary{
				Name:       m.Structure.Name,
				Offset:     lattice(m.Offset),
				Voxels:     m.Structure.Len(),
				Duplicates: len(m.Structure.Duplicates()),
			})
		}
		s.Voxels += gs.Voxels
		s.Paths += gs.Paths
		s.Groups = append(s.Groups, gs)
	}
	s.InstanceBytes = uint64(s.Voxels+s.Paths) * instanceStride
	return s
}

// Fingerprint hashes every placed voxel and path cell in generation order.
// Equal inputs always produce the same fingerprint.
func Fingerprint(d *terrain.Diorama) string {
	h := xxhash.New()
	buf := make([]byte, 0, 32)
	for _, g := range d.Groups() {
		_, _ = h.WriteString(g.Name)
		g.Each(func(pos voxel.Lattice, v voxel.Voxel) {
			buf = buf[:0]
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(pos.X)))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(pos.Y)))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(pos.Z)))
			buf = append(buf, byte(v.Tag))
			_, _ = h.Write(buf)
		})
		for _, c := range g.Paths {
			buf = buf[:0]
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(c.X)))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(c.Z)))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c.Elevation))
			_, _ = h.Write(buf)
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Describe reports bounds, materials and per-layer counts for the first
// structure called name, searching the castle before the village.
func Describe(d *terrain.Diorama, name string) (StructureDetail, error) {
	for _, g := range d.Groups() {
		m, ok := g.Structure(name)
		if !ok {
			continue
		}
		s := m.Structure
		detail := StructureDetail{
			Name:      s.Name,
			Group:     g.Name,
			Offset:    lattice(m.Offset),
			Voxels:    s.Len(),
			Materials: tagCounts(s.CountByTag()),
		}
		if lo, hi, ok := s.Bounds(); ok {
			detail.Min, detail.Max = lattice(lo), lattice(hi)
		}

		layers := make(map[int]int)
		s.Each(func(v voxel.Voxel) { layers[v.Pos.Y]++ })
		for y, n := range layers {
			detail.Layers = append(detail.Layers, LayerCount{Y: y, Count: n})
		}
		slices.SortFunc(detail.Layers, func(a, b LayerCount) int { return a.Y - b.Y })
		return detail, nil
	}
	return StructureDetail{}, fmt.Errorf("no structure named %q", name)
}

// WriteYAML encodes v with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteText prints s as aligned tables.
func (s Summary) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Castle:\t%s\n", s.Castle)
	fmt.Fprintf(tw, "Fingerprint:\t%s\n", s.Fingerprint)
	fmt.Fprintf(tw, "Voxels:\t%s\n", humanize.Comma(int64(s.Voxels)))
	fmt.Fprintf(tw, "Paths:\t%s\n", humanize.Comma(int64(s.Paths)))
	fmt.Fprintf(tw, "Instance data:\t%s\n", humanize.Bytes(s.InstanceBytes))
	for _, g := range s.Groups {
		fmt.Fprintf(tw, "\n[%s]\t%s voxels\t%d paths\n", g.Name, humanize.Comma(int64(g.Voxels)), g.Paths)
		for _, m := range g.Materials {
			fmt.Fprintf(tw, "  %s\t%s\n", m.Tag, humanize.Comma(int64(m.Count)))
		}
		fmt.Fprintln(tw)
		for _, st := range g.Structures {
			fmt.Fprintf(tw, "  %s\t@%v\t%d", st.Name, st.Offset, st.Voxels)
			if st.Duplicates > 0 {
				fmt.Fprintf(tw, "\t(%d repeated)", st.Duplicates)
			}
			fmt.Fprintln(tw)
		}
	}
	return tw.Flush()
}

// WriteText prints d with its per-layer histogram.
func (d StructureDetail) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Structure:\t%s (%s)\n", d.Name, d.Group)
	fmt.Fprintf(tw, "Offset:\t%v\n", d.Offset)
	fmt.Fprintf(tw, "Bounds:\t%v .. %v\n", d.Min, d.Max)
	fmt.Fprintf(tw, "Voxels:\t%d\n", d.Voxels)
	fmt.Fprintln(tw, "\nMaterials:")
	for _, m := range d.Materials {
		fmt.Fprintf(tw, "  %s\t%d\n", m.Tag, m.Count)
	}
	fmt.Fprintln(tw, "\nLayers:")
	for _, l := range d.Layers {
		fmt.Fprintf(tw, "  y=%d\t%d\n", l.Y, l.Count)
	}
	return tw.Flush()
}
