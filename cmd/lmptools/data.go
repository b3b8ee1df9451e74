package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andersle/lammps-tools/data"
)

func dataCmd() *cobra.Command {
	var outfile string
	cmd := &cobra.Command{
		Use:   "data <datafile>",
		Short: "Read a data (topology) file and convert it to .gro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outfile
			if out == "" {
				out = stem(args[0]) + ".gro"
			}
			return runData(args[0], out)
		},
	}
	cmd.Flags().StringVarP(&outfile, "output", "o", "", "output .gro file (default <stem>.gro)")
	return cmd
}

func runData(name, outfile string) error {
	top, err := data.Read(name)
	if err != nil {
		return err
	}
	for _, msg := range top.Consistency() {
		fmt.Println(msg)
	}
	if mols := top.Molecules(); mols != nil {
		fmt.Printf("Molecules: %d\n", len(mols))
		ids := make([]int, 0, len(mols))
		for id := range mols {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Printf("\tMolecule %d:\n", id)
			fmt.Printf("\t\tAtoms: %d\n", len(mols[id].Atoms))
			fmt.Printf("\t\tCharge: %g\n", mols[id].Charge())
		}
	}
	names := top.GuessNames()
	if err := top.WriteGroFile(outfile, names); err != nil {
		return err
	}
	fmt.Printf("Wrote %q\n", outfile)
	return nil
}
