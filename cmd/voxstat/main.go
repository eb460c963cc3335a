// voxstat is a CLI utility for inspecting the generated diorama without
// opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/voxel-citadel/internal/config"
	"github.com/Faultbox/voxel-citadel/internal/report"
	"github.com/Faultbox/voxel-citadel/internal/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "summary", "sum":
		cmdSummary(args)
	case "structure", "st":
		cmdStructure(args)
	case "fingerprint", "fp":
		cmdFingerprint(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voxstat - voxel citadel diorama inspector

Usage:
  voxstat <command> [options]

Commands:
  summary [--config f] [--yaml|--json]           Show group, structure and material counts
  structure [--config f] [--yaml|--json] <name>  Show bounds and layers of one structure
  fingerprint [--config f]                       Print the diorama hash
  init <file.yaml|file.toml>                     Write the default config

Examples:
  voxstat summary
  voxstat structure --json keep
  voxstat fingerprint --config castle.toml
  voxstat init ~/.config/voxel-citadel/config.yaml`)
}

// output picks the encoder requested on the command line.
type output struct {
	yaml, json bool
}

func (o *output) register(fs *flag.FlagSet) {
	fs.BoolVar(&o.yaml, "yaml", false, "Print YAML")
	fs.BoolVar(&o.json, "json", false, "Print JSON")
}

type textWriter interface {
	WriteText(w io.Writer) error
}

func (o output) write(w io.Writer, v textWriter) error {
	switch {
	case o.json:
		return report.WriteJSON(w, v)
	case o.yaml:
		return report.WriteYAML(w, v)
	default:
		return v.WriteText(w)
	}
}

// compose loads the config at path, or the defaults, and generates the
// diorama it describes.
func compose(path string) (*config.Config, *terrain.Diorama) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg, terrain.Compose(terrain.Spec{
		Castle:  cfg.Castle.Spec(),
		Village: terrain.DefaultVillage(),
	})
}

func cmdSummary(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file (defaults when empty)")
	var out output
	out.register(fs)
	fs.Parse(args)

	cfg, d := compose(*cfgPath)
	if err := out.write(os.Stdout, report.Summarize(d, cfg.Castle.Spec())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdStructure(args []string) {
	fs := flag.NewFlagSet("structure", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file (defaults when empty)")
	var out output
	out.register(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: voxstat structure [--yaml|--json] <name>")
		os.Exit(1)
	}

	_, d := compose(*cfgPath)
	detail, err := report.Describe(d, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := out.write(os.Stdout, detail); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdFingerprint(args []string) {
	fs := flag.NewFlagSet("fingerprint", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file (defaults when empty)")
	fs.Parse(args)

	_, d := compose(*cfgPath)
	fmt.Println(report.Fingerprint(d))
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite an existing file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: voxstat init [-f] <file.yaml|file.toml>")
		os.Exit(1)
	}

	path := fs.Arg(0)
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s exists, use -f to overwrite\n", path)
		os.Exit(1)
	}
	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
