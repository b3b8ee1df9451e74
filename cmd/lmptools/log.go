package main

import (
	"fmt"

	"github.com/spf13/cobra"

	lammps "github.com/andersle/lammps-tools"
	"github.com/andersle/lammps-tools/lmpplot"
	"github.com/andersle/lammps-tools/thermo"
)

func logCmd() *cobra.Command {
	var doPlot bool
	var selected []string
	cmd := &cobra.Command{
		Use:   "log <logfile>",
		Short: "Summarize the thermo runs in a log file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(args[0], doPlot, selected)
		},
	}
	cmd.Flags().BoolVarP(&doPlot, "plot", "p", false, "plot the thermo series")
	cmd.Flags().StringSliceVar(&selected, "select", nil, "keys to overlay in a single plot")
	return cmd
}

func runLog(name string, doPlot bool, selected []string) error {
	r, err := thermo.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	base := stem(name)
	for n := 0; ; n++ {
		run, err := r.Next()
		if err != nil {
			if _, ok := err.(lammps.LastFrameError); ok {
				break
			}
			return err
		}
		fmt.Println("Set found")
		fmt.Println("Keys:")
		for _, k := range run.Keys {
			fmt.Printf("- %s\n", k)
		}
		fmt.Printf("Length: %d\n", run.Len())
		if !doPlot {
			continue
		}
		cfg, err := plotConfig()
		if err != nil {
			return err
		}
		x := run.Column("step")
		if x == nil {
			x = make([]float64, run.Len())
			for i := range x {
				x[i] = float64(i)
			}
		}
		cols := run.Columns()
		if len(selected) > 0 {
			name := fmt.Sprintf("%s-run%d-selected.png", base, n)
			if err := lmpplot.Series(cfg, x, cols, selected, true, name); err != nil {
				return err
			}
			fmt.Printf("Wrote %q\n", name)
			continue
		}
		for _, key := range run.Keys {
			if key == "step" {
				continue
			}
			name := fmt.Sprintf("%s-run%d-%s.png", base, n, key)
			if err := lmpplot.Series(cfg, x, cols, []string{key}, true, name); err != nil {
				return err
			}
			fmt.Printf("Wrote %q\n", name)
		}
	}
	return nil
}
