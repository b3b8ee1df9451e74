package dump

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	lammps "github.com/andersle/lammps-tools"
	"github.com/andersle/lammps-tools/gro"
)

// WriteGro converts the frame to a Gromacs .gro structure. Atoms are
// ordered by their "id" column when one is present; coordinates and box
// lengths are scaled from Å to nm. The optional names slice overrides the
// atom names, indexed by the atom's row in the frame; otherwise the
// "element" column is used, falling back to X<type>.
func (f *Frame) WriteGro(w io.Writer, names []string) error {
	xs, ys, zs := f.Atoms["x"], f.Atoms["y"], f.Atoms["z"]
	if xs == nil || ys == nil || zs == nil {
		return fmt.Errorf("dump: frame at step %d has no x/y/z columns", f.Timestep)
	}
	//a corrupt token widens a coordinate column to String, which has no
	//numeric view; that frame cannot be converted
	for _, c := range []*Column{xs, ys, zs} {
		if c.Kind() == lammps.String {
			return fmt.Errorf("dump: frame at step %d has a non-numeric coordinate column", f.Timestep)
		}
	}
	n := xs.Len()
	if ys.Len() < n {
		n = ys.Len()
	}
	if zs.Len() < n {
		n = zs.Len()
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if id := f.Atoms["id"]; id != nil && id.Len() >= n && id.Kind() != lammps.String {
		sort.Slice(order, func(a, b int) bool {
			return id.Float(order[a]) < id.Float(order[b])
		})
	}
	mol := f.Atoms["mol"]
	typ := f.Atoms["type"]
	elem := f.Atoms["element"]
	atoms := make([]gro.Atom, 0, n)
	for _, i := range order {
		molID := 1
		if mol != nil && mol.Len() > i && mol.Kind() != lammps.String {
			molID = int(mol.Float(i))
		}
		atype := 1
		if typ != nil && typ.Len() > i && typ.Kind() != lammps.String {
			atype = int(typ.Float(i))
		}
		var name string
		switch {
		case names != nil && i < len(names):
			name = names[i]
		case elem != nil && elem.Len() > i:
			name = elem.Str(i)
		default:
			name = "X" + strconv.Itoa(atype)
		}
		atoms = append(atoms, gro.Atom{
			MolID:   molID,
			MolName: "MOL",
			Name:    name,
			ID:      atype,
			X:       xs.Float(i) * 0.1,
			Y:       ys.Float(i) * 0.1,
			Z:       zs.Float(i) * 0.1,
		})
	}
	var box []float64
	if f.Box != nil {
		l := f.Box.Lengths()
		box = []float64{l[0] * 0.1, l[1] * 0.1, l[2] * 0.1}
		if f.Box.Triclinic {
			t := f.Box.Tilt
			box = append(box, 0.0, 0.0, t[0]*0.1, 0.0, t[1]*0.1, t[2]*0.1)
		}
	}
	title := fmt.Sprintf("Converted from LAMMPS dump, step %d", f.Timestep)
	return gro.Write(w, title, atoms, box)
}
