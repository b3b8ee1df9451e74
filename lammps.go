/*
 * lammps.go, part of lammps-tools.
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

//Package lammps provides shared types and helpers for reading the text
//formats written by the LAMMPS molecular-dynamics code: chunk-averaged
//profiles, thermo logs, dump trajectories and data (topology) files.
//The readers themselves live in the subpackages profile, thermo, dump
//and data; the streaming statistics used to average profiles live in
//stats. This package only holds what those packages share: the error
//interfaces, the field-type classifier, the simulation box and the
//atomic-mass table.
package lammps

//Errors

// Error is the interface implemented by the errors of all packages in this
// library. The Decorate method adds information to the error as it is passed
// up the call stack, without changing its type or wrapping it in something
// else. Passed an empty string, Decorate just returns the current decoration
// slice. Each element of the slice should name a function in the calling
// stack, optionally followed by extra information ("FunctionName: info").
type Error interface {
	Error() string
	Decorate(string) []string
}

// FileError is the interface for errors produced while reading one of the
// LAMMPS text formats from a file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless method to single out the harmless
// end-of-stream condition, so callers can filter it from real errors with a
// type switch or assertion after each call to a reader's Next method.
type LastFrameError interface {
	FileError
	NormalLastFrameTermination() //does nothing, only separates this interface from other FileErrors
}
