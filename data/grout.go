package data

import (
	"fmt"
	"io"
	"os"

	"github.com/andersle/lammps-tools/gro"
)

// WriteGro writes the topology's Atoms section as a Gromacs .gro structure,
// in atom-id order, scaling coordinates and box lengths from Å to nm. The
// optional names map assigns an atom name per atom type (e.g. the result of
// GuessNames); types without a name fall back to the type number itself.
func (t *Topology) WriteGro(w io.Writer, names map[int]string) error {
	table, ids := t.sortedAtomIDs()
	if table == nil {
		return fmt.Errorf("data: topology has no Atoms section")
	}
	atoms := make([]gro.Atom, 0, len(ids))
	for _, id := range ids {
		row := table[id]
		mol, typ := int(row[1]), int(row[2])
		name, ok := names[typ]
		if !ok {
			name = fmt.Sprintf("%d", typ)
		}
		atoms = append(atoms, gro.Atom{
			MolID:   mol,
			MolName: "MOL",
			Name:    name,
			ID:      id,
			X:       row[4] * 0.1,
			Y:       row[5] * 0.1,
			Z:       row[6] * 0.1,
		})
	}
	var box []float64
	if t.Box != nil {
		l := t.Box.Lengths()
		box = []float64{l[0] * 0.1, l[1] * 0.1, l[2] * 0.1}
	}
	return gro.Write(w, "Converted from LAMMPS data", atoms, box)
}

// WriteGroFile is WriteGro to a newly created file.
func (t *Topology) WriteGroFile(name string, names map[int]string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := t.WriteGro(f, names); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
