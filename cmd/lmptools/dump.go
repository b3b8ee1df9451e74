package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lammps "github.com/andersle/lammps-tools"
	"github.com/andersle/lammps-tools/dump"
)

func dumpCmd() *cobra.Command {
	var outfile string
	var frame int
	cmd := &cobra.Command{
		Use:   "dump <dumpfile>",
		Short: "List the frames of a dump trajectory, optionally writing one as .gro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], outfile, frame)
		},
	}
	cmd.Flags().StringVarP(&outfile, "output", "o", "", "write the selected frame to this .gro file")
	cmd.Flags().IntVar(&frame, "frame", 0, "frame index to convert with -o")
	return cmd
}

func runDump(name, outfile string, frame int) error {
	r, err := dump.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	converted := false
	for i := 0; ; i++ {
		fr, err := r.Next()
		if err != nil {
			if _, ok := err.(lammps.LastFrameError); ok {
				break
			}
			return err
		}
		fmt.Println(i, fr.Timestep, fr.NAtoms)
		if outfile == "" || i != frame {
			continue
		}
		f, err := os.Create(outfile)
		if err != nil {
			return err
		}
		if err := fr.WriteGro(f, nil); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote %q\n", outfile)
		converted = true
	}
	if outfile != "" && !converted {
		return fmt.Errorf("frame %d not found in %s", frame, name)
	}
	return nil
}
