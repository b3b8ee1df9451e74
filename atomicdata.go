/*
 * atomicdata.go, part of lammps-tools.
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

import "math"

//A map for assigning standard atomic weights to elements, used to guess
//element names back from the masses declared in a data file.
var symbolMass = map[string]float64{
	"H": 1.007975, "He": 4.002602, "Li": 6.9675, "Be": 9.0121831,
	"B": 10.8135, "C": 12.0106, "N": 14.006855, "O": 15.9994,
	"F": 18.998403163, "Ne": 20.1797, "Na": 22.98976928, "Mg": 24.3055,
	"Al": 26.9815385, "Si": 28.085, "P": 30.973761998, "S": 32.0675,
	"Cl": 35.4515, "Ar": 39.948, "K": 39.0983, "Ca": 40.078,
	"Sc": 44.955908, "Ti": 47.867, "V": 50.9415, "Cr": 51.9961,
	"Mn": 54.938044, "Fe": 55.845, "Co": 58.933194, "Ni": 58.6934,
	"Cu": 63.546, "Zn": 65.38, "Ga": 69.723, "Ge": 72.63, "As": 74.921595,
	"Se": 78.971, "Br": 79.904, "Kr": 83.798, "Rb": 85.4678, "Sr": 87.62,
	"Y": 88.90584, "Zr": 91.224, "Nb": 92.90637, "Mo": 95.95, "Ru": 101.07,
	"Rh": 102.9055, "Pd": 106.42, "Ag": 107.8682, "Cd": 112.414, "In": 114.818,
	"Sn": 118.71, "Sb": 121.76, "Te": 127.6, "I": 126.90447, "Xe": 131.293,
	"Cs": 132.90545196, "Ba": 137.327, "La": 138.90547, "Ce": 140.116,
	"Pr": 140.90766, "Nd": 144.242, "Sm": 150.36, "Eu": 151.964, "Gd": 157.25,
	"Tb": 158.92535, "Dy": 162.5, "Ho": 164.93033, "Er": 167.259,
	"Tm": 168.93422, "Yb": 173.045, "Lu": 174.9668, "Hf": 178.49,
	"Ta": 180.94788, "W": 183.84, "Re": 186.207, "Os": 190.23, "Ir": 192.217,
	"Pt": 195.084, "Au": 196.966569, "Hg": 200.592, "Tl": 204.3835,
	"Pb": 207.2, "Bi": 208.9804, "Th": 232.0377, "Pa": 231.03588,
	"U": 238.02891,
}

// MassOf returns the standard atomic weight for the given element symbol,
// or 0 and false if the element is not in the table.
func MassOf(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

// NearestElement returns the symbol of the element whose standard atomic
// weight is closest to the given mass. Note that LAMMPS atom types with
// exotic (e.g. coarse-grained) masses will still get some element assigned;
// the caller decides whether the match is close enough to trust.
func NearestElement(mass float64) string {
	best := ""
	diff := math.Inf(1)
	for symbol, m := range symbolMass {
		d := math.Abs(m - mass)
		if d < diff || (d == diff && symbol < best) {
			diff = d
			best = symbol
		}
	}
	return best
}
