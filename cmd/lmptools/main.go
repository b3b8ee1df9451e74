// Command lmptools bundles the small analysis tools of this repository:
// averaging chunked profiles, summarizing thermo logs, counting and
// stride-reducing dump trajectories and converting topologies to .gro.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andersle/lammps-tools/lmpplot"
)

var styleFile string

func main() {
	root := &cobra.Command{
		Use:           "lmptools",
		Short:         "Read, reduce and average LAMMPS text output",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&styleFile, "style", "", "YAML plot style file")
	root.AddCommand(avgCmd(), logCmd(), skipCmd(), dataCmd(), dumpCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// plotConfig resolves the style for every plotting command: the default
// house style unless --style names a YAML file.
func plotConfig() (lmpplot.Config, error) {
	if styleFile == "" {
		return lmpplot.Default(), nil
	}
	return lmpplot.Load(styleFile)
}

// stem returns the input filename without directory and extension, used to
// derive output filenames.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
