package data

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	lammps "github.com/andersle/lammps-tools"
)

func TestDataFile(t *testing.T) {
	top, err := Read("../test/system.data")
	require.NoError(t, err)

	require.Equal(t, 8, top.Count("atoms"))
	require.Equal(t, 4, top.Count("bonds"))
	require.Equal(t, 2, top.Count("atom types"))
	require.Equal(t, 1, top.Count("bond types"))
	require.Equal(t, 0, top.Count("angles"))

	require.NotNil(t, top.Box)
	require.Equal(t, [3]float64{20, 20, 20}, top.Box.Lengths())

	require.Equal(t, []string{"masses", "atoms", "bonds"}, top.SectionNames())
	atoms := top.Section("atoms")
	require.NotNil(t, atoms)
	require.Len(t, atoms.Rows, 8)
	require.Equal(t, []float64{1, 1, 1, -0.4, 1.0, 1.0, 1.0, 0, 0, 0}, atoms.Rows[0])
	require.Len(t, top.Section("bonds").Rows, 4)
	require.Nil(t, top.Section("velocities"))
}

func TestReadMissing(t *testing.T) {
	_, err := Read("no-such.data")
	require.Error(t, err)
}

func TestConsistency(t *testing.T) {
	top, err := Read("../test/system.data")
	require.NoError(t, err)
	msgs := top.Consistency()
	require.Equal(t, []string{
		"atoms == atoms",
		"atom types == masses",
		"bonds == bonds",
	}, msgs)
}

func TestConsistencyMismatch(t *testing.T) {
	input := `title
2 atoms

Atoms

1 1 1 0.0 1.0 1.0 1.0
`
	top, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	msgs := top.Consistency()
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "** NOT consistent: 2 atoms != 1 atoms rows **")
}

func TestMolecules(t *testing.T) {
	top, err := Read("../test/system.data")
	require.NoError(t, err)
	mols := top.Molecules()
	require.Len(t, mols, 2)
	m1 := mols[1]
	require.Equal(t, []int{1, 2, 3, 4}, m1.Atoms)
	require.Equal(t, []int{1, 2, 2, 2}, m1.Types)
	require.InDelta(t, 0.0, m1.Charge(), 1e-12)
	require.InDelta(t, 0.0, mols[2].Charge(), 1e-12)
}

func TestGuessNames(t *testing.T) {
	top, err := Read("../test/system.data")
	require.NoError(t, err)
	names := top.GuessNames()
	require.Equal(t, map[int]string{1: "C", 2: "H"}, names)
}

func TestGuessNamesNoMasses(t *testing.T) {
	top, err := ReadFrom(strings.NewReader("title\n"))
	require.NoError(t, err)
	require.Nil(t, top.GuessNames())
}

// A section without a fixed schema takes its layout from its first row:
// one integer, the rest floats.
func TestGenericSectionFallback(t *testing.T) {
	input := `title

Pair Coeffs

1 0.2941 3.73
2 0.0660 3.50
`
	top, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	sec := top.Section("pair_coeffs")
	require.NotNil(t, sec)
	require.Equal(t, []lammps.Kind{lammps.Int, lammps.Float, lammps.Float}, sec.Kinds)
	require.Equal(t, [][]float64{{1, 0.2941, 3.73}, {2, 0.0660, 3.50}}, sec.Rows)
}

func TestBadValueBecomesNaN(t *testing.T) {
	input := `title

Atoms

1 1 1 oops 1.0 1.0 1.0 0 0 0
`
	top, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	row := top.Section("atoms").Rows[0]
	require.True(t, math.IsNaN(row[3]))
	require.Equal(t, 1.0, row[0])
}

func TestCommentsStripped(t *testing.T) {
	input := `title
2 atoms # two of them

Masses

1 12.011 # carbon
`
	top, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, top.Count("atoms"))
	require.Equal(t, []float64{1, 12.011}, top.Section("masses").Rows[0])
}

// Header parsing stops at the first section: a stray numeric line inside a
// section must not be mistaken for a count.
func TestHeaderOnlyBeforeFirstSection(t *testing.T) {
	input := `title
1 atoms

Bonds

5 atoms
`
	top, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, top.Count("atoms"))
}

// The title line is skipped outright, even when it happens to contain a
// count phrase.
func TestTitleLineSkipped(t *testing.T) {
	input := `data file with 99 atoms in the title
3 atoms
`
	top, err := ReadFrom(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, top.Count("atoms"))
}

func TestWriteGro(t *testing.T) {
	top, err := Read("../test/system.data")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, top.WriteGro(&sb, top.GuessNames()))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 11) //title, count, 8 atoms, box
	require.Equal(t, "Converted from LAMMPS data", lines[0])
	require.Equal(t, "8", lines[1])
	require.Equal(t, "    1MOL      C    1   0.100   0.100   0.100", lines[2])
	require.Equal(t, "    1MOL      H    2   0.150   0.100   0.100", lines[3])
	require.Equal(t, "    2MOL      C    5   0.500   0.500   0.500", lines[6])
	require.Equal(t, "    2.000000000     2.000000000     2.000000000", lines[10])
}

func TestWriteGroNoNames(t *testing.T) {
	top, err := Read("../test/system.data")
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, top.WriteGro(&sb, nil))
	//type numbers stand in for missing names
	require.Contains(t, sb.String(), "    1MOL      1    1")
}

func TestWriteGroNoAtoms(t *testing.T) {
	top, err := ReadFrom(strings.NewReader("title\n"))
	require.NoError(t, err)
	var sb strings.Builder
	require.Error(t, top.WriteGro(&sb, nil))
}

func TestMoleculeIDsSorted(t *testing.T) {
	top, err := Read("../test/system.data")
	require.NoError(t, err)
	mols := top.Molecules()
	ids := make([]int, 0, len(mols))
	for id := range mols {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	require.Equal(t, []int{1, 2}, ids)
}
