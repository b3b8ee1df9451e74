package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	lammps "github.com/andersle/lammps-tools"
	"github.com/andersle/lammps-tools/lmpplot"
	"github.com/andersle/lammps-tools/profile"
	"github.com/andersle/lammps-tools/stats"
)

func avgCmd() *cobra.Command {
	var infile string
	var split, doPlot bool
	cmd := &cobra.Command{
		Use:   "avg",
		Short: "Average the chunked profiles in a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAvg(infile, split, doPlot)
		},
	}
	cmd.Flags().StringVarP(&infile, "file", "f", "", "profile file to average")
	cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVarP(&split, "split", "s", false, "write a separate file per variable")
	cmd.Flags().BoolVarP(&doPlot, "plot", "p", false, "plot the averaged profiles")
	return cmd
}

func runAvg(infile string, split, doPlot bool) error {
	fmt.Printf("Reading file %q\n", infile)
	r, err := profile.Open(infile)
	if err != nil {
		return err
	}
	defer r.Close()
	acc := stats.New()
	sets := 0
	for {
		chunk, err := r.Next()
		if err != nil {
			if _, ok := err.(lammps.LastFrameError); ok {
				break
			}
			return err
		}
		sets++
		for _, key := range chunk.Fields {
			if err := acc.Update(key, chunk.Column(key)); err != nil {
				log.Printf("avg: %v (set %d, step %d)", err, sets, chunk.Step)
			}
		}
	}
	fmt.Printf("Data sets: %d\n", sets)
	fmt.Println("Variables in sets:")
	keys := acc.Keys()
	for _, k := range keys {
		fmt.Printf("- %q\n", k)
	}
	base := stem(infile)
	if err := writeTable("averaged-"+base+".txt", acc, keys, false); err != nil {
		return err
	}
	if err := writeTable("averaged-error-"+base+".txt", acc, keys, true); err != nil {
		return err
	}
	if split {
		for _, k := range keys {
			if err := writeTable(fmt.Sprintf("averaged-%s-%s.txt", k, base), acc, []string{k}, true); err != nil {
				return err
			}
		}
	}
	if doPlot {
		cfg, err := plotConfig()
		if err != nil {
			return err
		}
		files, err := lmpplot.Profiles(cfg, acc, keys, "profile-"+base)
		for _, f := range files {
			fmt.Printf("Wrote %q\n", f)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTable(name string, acc *stats.Accumulator, keys []string, withErr bool) error {
	fmt.Printf("Writing file %q\n", name)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if withErr {
		err = acc.WriteTableWithError(f, keys)
	} else {
		err = acc.WriteTable(f, keys)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
