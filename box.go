/*
 * box.go, part of lammps-tools.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package lammps

import (
	"fmt"
	"strconv"
	"strings"
)

// Names for the dimension indexes of Box.Lo, Box.Hi and Box.Tilt.
const (
	X = iota
	Y
	Z
)

// Box holds the simulation cell of one frame or data file: per-dimension
// lower and upper bounds, plus the xy/xz/yz tilt factors of a triclinic
// cell. It is filled once during parsing and not modified afterwards.
type Box struct {
	Lo        [3]float64
	Hi        [3]float64
	Tilt      [3]float64 //xy, xz, yz
	Triclinic bool

	dims int //dimensions assigned so far, for positional dump parsing
}

// Lengths returns the cell length along each dimension.
func (b *Box) Lengths() [3]float64 {
	var l [3]float64
	for i := range l {
		l[i] = b.Hi[i] - b.Lo[i]
	}
	return l
}

// Complete returns true once bounds for all three dimensions have been
// assigned.
func (b *Box) Complete() bool {
	return b.dims >= 3
}

// AddBounds parses one "lo hi [tilt]" line of a dump BOX BOUNDS section and
// assigns it to the first unclaimed dimension: x, then y, then z. The
// optional third value is the tilt factor laid out the way LAMMPS writes
// triclinic boxes (xy on the x line, xz on y, yz on z).
func (b *Box) AddBounds(line string) error {
	f := strings.Fields(line)
	if len(f) < 2 {
		return fmt.Errorf("box bounds line %q: need at least 2 values", strings.TrimSpace(line))
	}
	if b.dims >= 3 {
		return fmt.Errorf("box bounds line %q: all 3 dimensions already assigned", strings.TrimSpace(line))
	}
	lo, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return fmt.Errorf("box bounds line %q: %w", strings.TrimSpace(line), err)
	}
	hi, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return fmt.Errorf("box bounds line %q: %w", strings.TrimSpace(line), err)
	}
	d := b.dims
	b.Lo[d] = lo
	b.Hi[d] = hi
	if len(f) > 2 {
		t, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return fmt.Errorf("box tilt in line %q: %w", strings.TrimSpace(line), err)
		}
		b.Tilt[d] = t
		b.Triclinic = true
	}
	b.dims++
	return nil
}

// SetBounds assigns the bounds of one named dimension, normalizing them so
// Lo <= Hi. Data files declare bounds per dimension ("xlo xhi" lines), not
// positionally, so this is the entry point the data reader uses.
func (b *Box) SetBounds(dim int, lo, hi float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	b.Lo[dim] = lo
	b.Hi[dim] = hi
	if dim >= b.dims {
		b.dims = dim + 1
	}
}
