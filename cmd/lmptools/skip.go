package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andersle/lammps-tools/dump"
)

func skipCmd() *cobra.Command {
	var stride int
	cmd := &cobra.Command{
		Use:   "skip <dumpfile>",
		Short: "Write a reduced trajectory keeping every stride-th frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkip(args[0], stride)
		},
	}
	cmd.Flags().IntVar(&stride, "stride", 10, "keep frames with index % stride == 0")
	return cmd
}

func runSkip(name string, stride int) error {
	outfile := fmt.Sprintf("%s-skip-%d.lammpstrj", stem(name), stride)
	fmt.Printf("Skip: %d\n", stride)
	fmt.Printf("Infile: %s\n", name)
	fmt.Printf("Outfile: %s\n", outfile)
	fmt.Println("Getting number of frames in original file...")
	total, err := dump.CountFrames(name)
	if err != nil {
		return err
	}
	fmt.Printf("Frames in original file: %d\n", total)
	if total < 1 {
		fmt.Println("No frames found, exiting...")
		return nil
	}
	written, err := dump.Reduce(name, outfile, stride)
	if err != nil {
		return err
	}
	fmt.Printf("Frames written to new file: %d\n", written)
	return nil
}
