//Package gro writes Gromacs .gro structure files. The format is strictly
//positional: 5-character integer and name fields followed by 8.3f-formatted
//coordinates in nm, and a free-format box line. Values that render wider
//than their field are truncated so the columns always line up.
package gro

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Atom is one line of the coordinate block. Coordinates are in nm; callers
// converting from LAMMPS units scale by 0.1 first.
type Atom struct {
	MolID   int
	MolName string
	Name    string
	ID      int
	X, Y, Z float64
}

//field widths of the coordinate line
var atomFields = [...]int{5, 5, 5, 5, 8, 8, 8}

func formatAtom(a Atom) string {
	cols := [...]string{
		fmt.Sprintf("%5d", a.MolID),
		fmt.Sprintf("%-5s", a.MolName),
		fmt.Sprintf("%5s", a.Name),
		fmt.Sprintf("%5d", a.ID),
		fmt.Sprintf("%8.3f", a.X),
		fmt.Sprintf("%8.3f", a.Y),
		fmt.Sprintf("%8.3f", a.Z),
	}
	var b strings.Builder
	for i, c := range cols {
		if len(c) > atomFields[i] {
			c = c[:atomFields[i]]
		}
		b.WriteString(c)
	}
	return b.String()
}

// Write writes a complete gro file: title line, atom count, one line per
// atom and, if box is not empty, the box line. The box is given as either 3
// lengths (orthogonal cell) or 9 components (triclinic), in nm.
func Write(w io.Writer, title string, atoms []Atom, box []float64) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, len(atoms))
	for _, a := range atoms {
		fmt.Fprintln(bw, formatAtom(a))
	}
	if len(box) > 0 {
		parts := make([]string, len(box))
		for i, v := range box {
			parts[i] = fmt.Sprintf("%15.9f", v)
		}
		fmt.Fprintln(bw, strings.Join(parts, " "))
	}
	return bw.Flush()
}

// WriteFile is Write to a newly created file.
func WriteFile(name, title string, atoms []Atom, box []float64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Write(f, title, atoms, box); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
