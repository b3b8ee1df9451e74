/*
 * kind.go, part of lammps-tools.
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

import "strconv"

// Kind is the inferred type of a whitespace-separated field in a LAMMPS
// text file. The constants are ordered from narrowest to widest, so a
// column's kind can be compared and widened but never narrowed.
type Kind int

const (
	Int Kind = iota
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// GuessKind classifies s by trying each variant in widening order: integer
// first, then floating point, then plain string.
func GuessKind(s string) Kind {
	if _, err := strconv.Atoi(s); err == nil {
		return Int
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return Float
	}
	return String
}

// Widen returns the wider of k and n. A memoized column kind goes through
// this, so a column seen as Int can become Float or String later, but a
// column seen as String stays String.
func (k Kind) Widen(n Kind) Kind {
	if n > k {
		return n
	}
	return k
}
