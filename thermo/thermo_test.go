package thermo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	lammps "github.com/andersle/lammps-tools"
)

func drain(t *testing.T, r *Reader) []*Run {
	t.Helper()
	var runs []*Run
	for {
		run, err := r.Next()
		if err != nil {
			_, ok := err.(lammps.LastFrameError)
			require.True(t, ok, "unexpected error: %v", err)
			return runs
		}
		runs = append(runs, run)
	}
}

func TestLogFile(t *testing.T) {
	r, err := Open("../test/log.lammps")
	require.NoError(t, err)
	defer r.Close()
	runs := drain(t, r)
	require.Len(t, runs, 2)

	require.Equal(t, []string{"step", "temp", "e_pair", "toteng"}, runs[0].Keys)
	require.Equal(t, 3, runs[0].Len())
	require.Equal(t, []float64{0, 1000, 2000}, runs[0].Column("step"))
	require.Equal(t, []float64{1.44, 0.70303849, 0.72628044}, runs[0].Column("temp"))

	require.Equal(t, []string{"step", "temp", "e_pair", "toteng", "press"}, runs[1].Keys)
	require.Equal(t, 2, runs[1].Len())
	require.Equal(t, []float64{0.1037, 0.2166}, runs[1].Column("press"))
	require.Nil(t, runs[1].Column("volume"))
}

// A log from a killed run has no "Loop time" line; the next "Step" header
// (or the end of the file) must close the block anyway.
func TestKilledRun(t *testing.T) {
	input := `Step Temp
0 1.0
100 1.1
Step Temp Press
100 1.1 0.5
`
	r := NewReader(strings.NewReader(input), "inline")
	runs := drain(t, r)
	require.Len(t, runs, 2)
	require.Equal(t, []string{"step", "temp"}, runs[0].Keys)
	require.Equal(t, 2, runs[0].Len())
	require.Equal(t, []string{"step", "temp", "press"}, runs[1].Keys)
	require.Equal(t, 1, runs[1].Len())
}

func TestNoiseBetweenBlocks(t *testing.T) {
	input := `Step Temp
0 1.0
WARNING: Pair cutoff < Respa interior cutoff
100 1.1
Loop time of 1.0 on 1 procs
Step Temp
200 1.2
`
	r := NewReader(strings.NewReader(input), "inline")
	runs := drain(t, r)
	require.Len(t, runs, 2)
	//the warning row is non-numeric and must be dropped, not kept as NaN
	require.Equal(t, []float64{1.0, 1.1}, runs[0].Column("temp"))
}

func TestInconsistentRowLengthSkipped(t *testing.T) {
	input := `Step Temp
0 1.0
100 1.1 9.9
200 1.2
Loop time of 1.0 on 1 procs
`
	r := NewReader(strings.NewReader(input), "inline")
	runs := drain(t, r)
	require.Len(t, runs, 1)
	require.Equal(t, []float64{0, 200}, runs[0].Column("step"))
}

func TestEmptyBlockNotYielded(t *testing.T) {
	input := `Step Temp
Loop time of 1.0 on 1 procs
Step Temp
0 1.0
Loop time of 1.0 on 1 procs
`
	r := NewReader(strings.NewReader(input), "inline")
	runs := drain(t, r)
	require.Len(t, runs, 1)
}

func TestColumnsMap(t *testing.T) {
	r := NewReader(strings.NewReader("Step Temp\n0 1.0\n"), "inline")
	runs := drain(t, r)
	require.Len(t, runs, 1)
	m := runs[0].Columns()
	require.Len(t, m, 2)
	require.Equal(t, []float64{1.0}, m["temp"])
}

func TestNextAfterClose(t *testing.T) {
	r := NewReader(strings.NewReader("Step Temp\n0 1.0\n"), "inline")
	drain(t, r)
	_, err := r.Next()
	require.Error(t, err)
	require.Contains(t, err.Error(), "uninitialized")
}

func TestOpenMissing(t *testing.T) {
	_, err := Open("no-such-log.lammps")
	require.Error(t, err)
	fe, ok := err.(lammps.FileError)
	require.True(t, ok)
	require.Equal(t, "no-such-log.lammps", fe.FileName())
	require.True(t, fe.Critical())
}
